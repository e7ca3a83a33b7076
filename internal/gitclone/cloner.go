package gitclone

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmr-tortoise/repo-setup/internal/execx"
	"github.com/mmr-tortoise/repo-setup/internal/model"
)

// Cloner clones a sequence of repositories into a destination folder
// by invoking the git CLI once per URL.
type Cloner struct {
	runner execx.Runner

	// errOut receives per-URL failure reports. Defaults to os.Stderr.
	errOut io.Writer
}

// NewCloner creates a Cloner that streams git output to the console.
func NewCloner() *Cloner {
	return &Cloner{runner: execx.NewRunner(), errOut: os.Stderr}
}

// NewClonerWithRunner creates a Cloner with a custom runner and failure
// writer. Used by tests to observe invocations without running git.
func NewClonerWithRunner(runner execx.Runner, errOut io.Writer) *Cloner {
	return &Cloner{runner: runner, errOut: errOut}
}

// DeriveFolderName derives the local folder name for a repository URL:
// the last /-separated path segment with any trailing ".git" suffixes
// stripped. The derivation is idempotent — applying it to its own output
// yields the same name.
//
// No collision handling happens here. If two URLs derive the same name,
// the second clone targets the same path and its outcome is whatever git
// does with an existing directory (typically a failure, which the clone
// loop tolerates).
func DeriveFolderName(url string) string {
	trimmed := strings.TrimRight(strings.TrimSpace(url), "/")
	segment := trimmed
	if idx := strings.LastIndex(trimmed, "/"); idx != -1 {
		segment = trimmed[idx+1:]
	}
	for strings.HasSuffix(segment, ".git") {
		segment = strings.TrimSuffix(segment, ".git")
	}
	return segment
}

// CloneAll clones every URL in order into destPath, one git invocation
// per URL, output streamed to the console. It returns exactly one
// CloneOutcome per input URL, in input order. A failed clone is reported
// to the error writer with the command and target directory, and the
// loop continues with the next URL.
func (c *Cloner) CloneAll(ctx context.Context, destPath string, urls []string) []model.CloneOutcome {
	outcomes := make([]model.CloneOutcome, 0, len(urls))

	for _, url := range urls {
		folder := DeriveFolderName(url)
		target := filepath.Join(destPath, folder)

		result := c.runner.Run(ctx, "", "git", "clone", url, target)
		if !result.OK {
			fmt.Fprintf(c.errOut, "clone failed for %s: %s\n", url, result)
		}

		outcomes = append(outcomes, model.CloneOutcome{
			URL:    url,
			Folder: folder,
			OK:     result.OK,
		})
	}

	return outcomes
}

// Succeeded filters outcomes down to the folder names that cloned
// successfully, preserving their relative order.
func Succeeded(outcomes []model.CloneOutcome) []string {
	var folders []string
	for _, outcome := range outcomes {
		if outcome.OK {
			folders = append(folders, outcome.Folder)
		}
	}
	return folders
}
