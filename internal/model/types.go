// Package model defines the domain types for the repo-setup CLI.
//
// All entities here are transient, in-memory, single-run values. The tool
// has no persistent state of its own — the only durable side effects of a
// run are whatever the invoked tools (git, npm, yarn) leave on disk.
package model

import (
	"fmt"
	"strings"
)

// ManagerKind identifies which package manager performs dependency installs
// for the run. It is resolved once from the operator's answer (or a flag)
// and never changes afterwards.
type ManagerKind string

const (
	// ManagerNpm is the primary manager and the default for any
	// unrecognized preference input.
	ManagerNpm ManagerKind = "npm"

	// ManagerYarn is the secondary manager. Choosing it activates the
	// tooling verification step, because yarn may not be installed.
	ManagerYarn ManagerKind = "yarn"
)

// String returns the string representation of ManagerKind.
// This is also the executable name invoked for the manager.
func (m ManagerKind) String() string {
	return string(m)
}

// IsValid checks whether the ManagerKind value is one of the
// two supported managers.
func (m ManagerKind) IsValid() bool {
	switch m {
	case ManagerNpm, ManagerYarn:
		return true
	default:
		return false
	}
}

// ParseManagerKind converts the operator's free-text answer to a ManagerKind.
// Matching is case-insensitive and whitespace-tolerant. Any unrecognized
// input — including an empty answer — resolves to npm; the second return
// value reports whether the input actually matched a supported manager, so
// the caller can print a notice for the fallback. Fallback is not an error.
func ParseManagerKind(s string) (ManagerKind, bool) {
	kind := ManagerKind(strings.ToLower(strings.TrimSpace(s)))
	if kind.IsValid() {
		return kind, true
	}
	return ManagerNpm, false
}

// SetupRequest holds the operator-supplied inputs for a single run.
type SetupRequest struct {
	// DestinationPath is the absolute, normalized path of the folder that
	// receives all clones. It is created (with parents) if absent.
	DestinationPath string

	// RepositoryURLs is the ordered list of repository URLs to clone.
	// Segments are trimmed and empty entries dropped, but duplicates are
	// kept — a duplicate URL is simply processed twice.
	RepositoryURLs []string
}

// CloneOutcome records the per-URL result of the clone step. Exactly one
// outcome is produced for every input URL, in input order; only outcomes
// with OK set propagate to the install step.
type CloneOutcome struct {
	// URL is the repository URL as supplied by the operator.
	URL string

	// Folder is the local folder name derived from the URL (last path
	// segment, trailing ".git" stripped).
	Folder string

	// OK reports whether the clone command exited successfully.
	OK bool
}

// ExitCode defines the CLI exit codes. Zero is reserved for normal
// completion, which includes partial per-repository failures and the
// all-clones-failed soft stop.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInputError indicates the operator input was unusable —
	// no valid repository URL remained after filtering.
	ExitInputError ExitCode = 2

	// ExitFilesystemError indicates the destination folder could not
	// be created.
	ExitFilesystemError ExitCode = 3

	// ExitToolingError indicates the chosen package manager was missing
	// and installing it failed. Fatal, because every subsequent install
	// step depends on the manager being present.
	ExitToolingError ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
