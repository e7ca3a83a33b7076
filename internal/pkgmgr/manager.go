package pkgmgr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mmr-tortoise/repo-setup/internal/execx"
	"github.com/mmr-tortoise/repo-setup/internal/model"
)

// Manager runs the chosen package manager for a single setup run.
// The kind is immutable once resolved from the operator's preference.
type Manager struct {
	kind   model.ManagerKind
	runner execx.Runner

	// out receives progress notices, errOut per-folder failure reports.
	out    io.Writer
	errOut io.Writer
}

// New creates a Manager for the given kind that streams tool output
// to the console.
func New(kind model.ManagerKind) *Manager {
	return &Manager{
		kind:   kind,
		runner: execx.NewRunner(),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

// NewWithRunner creates a Manager with a custom runner and writers.
// Used by tests to observe invocations without running npm or yarn.
func NewWithRunner(kind model.ManagerKind, runner execx.Runner, out, errOut io.Writer) *Manager {
	return &Manager{kind: kind, runner: runner, out: out, errOut: errOut}
}

// Kind returns the manager this instance wraps.
func (m *Manager) Kind() model.ManagerKind {
	return m.kind
}

// EnsureAvailable verifies the chosen manager executable is present.
//
// For npm this is a no-op: npm ships with Node and is also the fallback
// installer, so probing it buys nothing. For yarn, a silent version probe
// decides; when it fails (non-zero exit or executable not found), yarn is
// installed globally through npm with output streamed to the console.
// A failed global install is fatal — every subsequent install step
// depends on the manager being present. On success the run proceeds
// without re-verification.
func (m *Manager) EnsureAvailable(ctx context.Context) error {
	if m.kind != model.ManagerYarn {
		return nil
	}

	probe := m.runner.RunSilent(ctx, "", model.ManagerYarn.String(), "--version")
	if probe.OK {
		return nil
	}

	fmt.Fprintln(m.out, "yarn not found, installing it globally via npm")
	install := m.runner.Run(ctx, "", model.ManagerNpm.String(), "install", "-g", model.ManagerYarn.String())
	if !install.OK {
		return model.NewCLIError(model.ExitToolingError,
			fmt.Sprintf("failed to install yarn globally: %s", install))
	}
	return nil
}

// InstallAll runs the dependency install in each successfully cloned
// folder, in order. A folder without a package.json is skipped with a
// notice — that is not an error, and the repository still counts as set
// up. Install failures are reported per folder with the command and
// working directory, and iteration continues.
//
// The return value is the number of repositories considered successfully
// set up: every processed folder except those whose install failed.
func (m *Manager) InstallAll(ctx context.Context, destPath string, folders []string) int {
	setUp := 0

	for _, folder := range folders {
		dir := filepath.Join(destPath, folder)

		if !HasManifest(dir) {
			fmt.Fprintf(m.out, "no %s in %s, skipping dependency install\n", ManifestFileName, folder)
			setUp++
			continue
		}

		// The manifest is read only to enrich the progress line. A
		// manifest that fails to parse still triggers an install attempt:
		// presence, not validity, is the contract.
		label := folder
		if manifest, err := LoadManifest(dir); err == nil && manifest.Name != "" {
			label = fmt.Sprintf("%s (%s)", folder, manifest.Name)
		} else if err != nil {
			fmt.Fprintf(m.errOut, "warning: unreadable %s in %s: %v\n", ManifestFileName, folder, err)
		}

		fmt.Fprintf(m.out, "installing dependencies for %s with %s\n", label, m.kind)

		result := m.runner.Run(ctx, dir, m.kind.String(), "install")
		if !result.OK {
			fmt.Fprintf(m.errOut, "dependency install failed for %s: %s\n", folder, result)
			continue
		}
		setUp++
	}

	return setUp
}
