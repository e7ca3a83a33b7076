package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/mmr-tortoise/repo-setup/internal/model"
)

// The three prompt texts, in the order they are issued.
const (
	destinationQuestion = "Enter the absolute path for the setup folder"
	urlsQuestion        = "Enter the Git repository URLs (separate multiple links with a semicolon ';')"
	managerQuestion     = "Use 'npm' or 'yarn' to install dependencies?"
)

// ErrSessionClosed is returned when a prompt is attempted after Close.
// The session contract is strict: all interactive input happens before
// the first external-process invocation, never after.
var ErrSessionClosed = errors.New("prompt session is closed")

// Session is the single line-oriented interactive session for a run.
// It wraps the input stream in a scanner and writes prompt questions to
// the output writer. Answers are returned verbatim (minus the trailing
// newline); interpretation is left to the typed prompt methods.
type Session struct {
	scanner *bufio.Scanner
	in      io.Reader
	out     io.Writer
	closed  bool
}

// NewSession opens a prompt session reading answers from in and writing
// questions to out. Typically in is the process stdin and out is stdout.
func NewSession(in io.Reader, out io.Writer) *Session {
	return &Session{
		scanner: bufio.NewScanner(in),
		in:      in,
		out:     out,
	}
}

// Close releases the session. When the underlying input stream is an
// io.Closer (e.g. os.Stdin), it is closed as well, making any later
// prompt attempt fail fast. Close is idempotent.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	if closer, ok := s.in.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// ask prints the question and reads one line of input.
// Returns an error when the session is closed or the input stream ends
// before an answer is read.
func (s *Session) ask(question string) (string, error) {
	if s.closed {
		return "", ErrSessionClosed
	}

	fmt.Fprintln(s.out, question)

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read answer: %w", err)
		}
		return "", fmt.Errorf("input stream ended before an answer was read")
	}
	return s.scanner.Text(), nil
}

// DestinationPath prompts for the setup folder and returns the raw answer.
// Path normalization and directory creation are handled by the caller —
// they are filesystem concerns, not input concerns.
func (s *Session) DestinationPath() (string, error) {
	answer, err := s.ask(destinationQuestion)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(answer), nil
}

// RepositoryURLs prompts for the semicolon-delimited URL list and returns
// the parsed entries. The returned slice may be empty; deciding whether
// that is fatal belongs to the caller.
func (s *Session) RepositoryURLs() ([]string, error) {
	answer, err := s.ask(urlsQuestion)
	if err != nil {
		return nil, err
	}
	return ParseURLList(answer), nil
}

// ManagerChoice prompts for the package-manager preference. The second
// return value reports whether the answer matched a supported manager;
// when false the returned kind is the npm default and the caller should
// print a notice (a fallback, not an error).
func (s *Session) ManagerChoice() (model.ManagerKind, bool, error) {
	answer, err := s.ask(managerQuestion)
	if err != nil {
		return "", false, err
	}
	kind, recognized := model.ParseManagerKind(answer)
	return kind, recognized, nil
}

// ParseURLList splits a semicolon-delimited URL string into individual
// URLs. Each segment is whitespace-trimmed and empty segments are dropped.
// Order is preserved and duplicates are kept — a URL listed twice is
// cloned twice, with whatever consequences the git client produces for
// the second attempt.
func ParseURLList(raw string) []string {
	var urls []string
	for _, segment := range strings.Split(raw, ";") {
		url := strings.TrimSpace(segment)
		if url == "" {
			continue
		}
		urls = append(urls, url)
	}
	return urls
}
