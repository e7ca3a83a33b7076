// Package execx provides the synchronous external-process runner used for
// every tool invocation (git, npm, yarn) in repo-setup.
//
// Every invocation is blocking: the caller suspends until the child process
// exits. No timeout is applied — a hung tool hangs the run, and the only
// way out is an operator interrupt. Failures are not propagated as errors;
// each invocation yields a Result whose OK flag the call site inspects,
// with the command line and working directory retained so failures can be
// reported with enough context to retry manually.
package execx

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Result is the outcome of a single external-process invocation.
// Output is inherited by the console (or suppressed entirely for silent
// probes) rather than captured programmatically; the only signal carried
// back is the boolean exit status plus the invocation context.
type Result struct {
	// OK is true when the process started and exited with status zero.
	OK bool

	// Command is the full command line, e.g. "git clone <url> <dir>".
	Command string

	// Dir is the working directory the command ran in. Empty means the
	// process inherited the current directory.
	Dir string
}

// String returns a human-readable description of the invocation,
// suitable for failure messages: the command, and the working
// directory when one was set.
func (r Result) String() string {
	if r.Dir == "" {
		return fmt.Sprintf("`%s`", r.Command)
	}
	return fmt.Sprintf("`%s` (in %s)", r.Command, r.Dir)
}

// Runner executes external commands. The production implementation streams
// child output to the console; tests substitute recording fakes so command
// invocations can be asserted without running real tools.
type Runner interface {
	// Run executes name with args in dir (empty dir inherits the current
	// directory), streaming stdout and stderr to the console.
	Run(ctx context.Context, dir, name string, args ...string) Result

	// RunSilent executes name with args in dir with all output
	// suppressed. Only the exit status is observable.
	RunSilent(ctx context.Context, dir, name string, args ...string) Result
}

// consoleRunner is the production Runner. Child stdout/stderr are wired
// straight to the configured writers so the operator sees tool output
// exactly as if they had run the command themselves.
type consoleRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRunner creates a Runner that streams child output to the
// process's stdout and stderr.
func NewRunner() Runner {
	return &consoleRunner{stdout: os.Stdout, stderr: os.Stderr}
}

// Run implements Runner.
func (c *consoleRunner) Run(ctx context.Context, dir, name string, args ...string) Result {
	return c.run(ctx, dir, name, args, false)
}

// RunSilent implements Runner.
func (c *consoleRunner) RunSilent(ctx context.Context, dir, name string, args ...string) Result {
	return c.run(ctx, dir, name, args, true)
}

func (c *consoleRunner) run(ctx context.Context, dir, name string, args []string, silent bool) Result {
	result := Result{
		Command: commandLine(name, args),
		Dir:     dir,
	}

	// #nosec G204 — the command name is always one of the fixed tools
	// (git, npm, yarn); only URLs and paths vary, and they are passed
	// as discrete arguments, never through a shell.
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	if !silent {
		cmd.Stdout = c.stdout
		cmd.Stderr = c.stderr
		// Stdin stays disconnected: interactive input is closed before
		// the first invocation, and none of the invoked commands should
		// prompt during a scripted run.
	}

	result.OK = cmd.Run() == nil
	return result
}

// commandLine joins the executable name and arguments into the display
// form used in Result.Command.
func commandLine(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}
