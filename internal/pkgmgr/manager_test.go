package pkgmgr

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmr-tortoise/repo-setup/internal/execx"
	"github.com/mmr-tortoise/repo-setup/internal/model"
)

// fakeRunner records invocations (streamed and silent separately) and
// fails any command containing one of the configured substrings.
type fakeRunner struct {
	commands []string
	silent   []string
	dirs     []string
	failOn   []string
}

func (f *fakeRunner) result(dir, name string, args []string) execx.Result {
	command := name + " " + strings.Join(args, " ")
	result := execx.Result{OK: true, Command: command, Dir: dir}
	for _, marker := range f.failOn {
		if strings.Contains(command, marker) {
			result.OK = false
		}
	}
	return result
}

func (f *fakeRunner) Run(_ context.Context, dir, name string, args ...string) execx.Result {
	result := f.result(dir, name, args)
	f.commands = append(f.commands, result.Command)
	f.dirs = append(f.dirs, dir)
	return result
}

func (f *fakeRunner) RunSilent(_ context.Context, dir, name string, args ...string) execx.Result {
	result := f.result(dir, name, args)
	f.silent = append(f.silent, result.Command)
	return result
}

func newTestManager(kind model.ManagerKind, runner *fakeRunner) (*Manager, *bytes.Buffer, *bytes.Buffer) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return NewWithRunner(kind, runner, out, errOut), out, errOut
}

// --- EnsureAvailable (tooling verification) ---

func TestEnsureAvailable_NpmIsNoOp(t *testing.T) {
	runner := &fakeRunner{}
	m, _, _ := newTestManager(model.ManagerNpm, runner)

	require.NoError(t, m.EnsureAvailable(context.Background()))
	assert.Empty(t, runner.commands, "npm needs no verification")
	assert.Empty(t, runner.silent)
}

func TestEnsureAvailable_YarnPresent(t *testing.T) {
	runner := &fakeRunner{}
	m, _, _ := newTestManager(model.ManagerYarn, runner)

	require.NoError(t, m.EnsureAvailable(context.Background()))

	// Only the silent version probe runs; no install is attempted.
	assert.Equal(t, []string{"yarn --version"}, runner.silent)
	assert.Empty(t, runner.commands)
}

func TestEnsureAvailable_YarnMissingInstalledViaNpm(t *testing.T) {
	runner := &fakeRunner{failOn: []string{"yarn --version"}}
	m, out, _ := newTestManager(model.ManagerYarn, runner)

	require.NoError(t, m.EnsureAvailable(context.Background()))

	// The probe failed, so yarn is installed globally through npm with
	// output streamed, and the run proceeds without re-verification.
	assert.Equal(t, []string{"yarn --version"}, runner.silent)
	assert.Equal(t, []string{"npm install -g yarn"}, runner.commands)
	assert.Contains(t, out.String(), "installing it globally via npm")
}

func TestEnsureAvailable_GlobalInstallFailureIsFatal(t *testing.T) {
	runner := &fakeRunner{failOn: []string{"yarn --version", "npm install -g yarn"}}
	m, _, _ := newTestManager(model.ManagerYarn, runner)

	err := m.EnsureAvailable(context.Background())
	require.Error(t, err)

	var cliErr *model.CLIError
	require.ErrorAs(t, err, &cliErr)
	assert.Equal(t, model.ExitToolingError, cliErr.Code)
}

// --- InstallAll (dependency install) ---

// writeManifest drops a minimal package.json into dir.
func writeManifest(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	content := `{"name": "` + name + `", "version": "1.0.0"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte(content), 0644))
}

func TestInstallAll_RunsInFolderOrder(t *testing.T) {
	destPath := t.TempDir()
	writeManifest(t, filepath.Join(destPath, "a"), "pkg-a")
	writeManifest(t, filepath.Join(destPath, "b"), "pkg-b")

	runner := &fakeRunner{}
	m, out, _ := newTestManager(model.ManagerNpm, runner)

	count := m.InstallAll(context.Background(), destPath, []string{"a", "b"})

	assert.Equal(t, 2, count)
	assert.Equal(t, []string{"npm install", "npm install"}, runner.commands)
	assert.Equal(t, []string{filepath.Join(destPath, "a"), filepath.Join(destPath, "b")}, runner.dirs)

	// Manifest names enrich the progress output.
	assert.Contains(t, out.String(), "pkg-a")
	assert.Contains(t, out.String(), "pkg-b")
}

func TestInstallAll_SkipsFolderWithoutManifest(t *testing.T) {
	destPath := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(destPath, "plain"), 0755))
	writeManifest(t, filepath.Join(destPath, "node-proj"), "node-proj")

	runner := &fakeRunner{}
	m, out, _ := newTestManager(model.ManagerYarn, runner)

	count := m.InstallAll(context.Background(), destPath, []string{"plain", "node-proj"})

	// The manifest-less folder is skipped with a notice but still counts
	// as set up; only one install runs.
	assert.Equal(t, 2, count)
	require.Equal(t, []string{"yarn install"}, runner.commands)
	assert.Equal(t, filepath.Join(destPath, "node-proj"), runner.dirs[0])
	assert.Contains(t, out.String(), "skipping dependency install")
}

func TestInstallAll_FailureDoesNotHaltIteration(t *testing.T) {
	destPath := t.TempDir()
	writeManifest(t, filepath.Join(destPath, "a"), "pkg-a")
	writeManifest(t, filepath.Join(destPath, "b"), "pkg-b")

	// Every install invocation fails (same command line for both folders),
	// so failure tolerance shows up as both folders being attempted.
	runner := &fakeRunner{failOn: []string{"npm install"}}
	m, _, errOut := newTestManager(model.ManagerNpm, runner)

	count := m.InstallAll(context.Background(), destPath, []string{"a", "b"})

	assert.Equal(t, 0, count)
	assert.Len(t, runner.commands, 2, "a failed install must not halt the loop")

	// Failures are reported with the working directory for manual retry.
	assert.Contains(t, errOut.String(), filepath.Join(destPath, "a"))
	assert.Contains(t, errOut.String(), filepath.Join(destPath, "b"))
}

func TestInstallAll_BrokenManifestStillTriggersInstall(t *testing.T) {
	destPath := t.TempDir()
	dir := filepath.Join(destPath, "broken")
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ManifestFileName), []byte("{not json"), 0644))

	runner := &fakeRunner{}
	m, _, errOut := newTestManager(model.ManagerNpm, runner)

	count := m.InstallAll(context.Background(), destPath, []string{"broken"})

	// Presence of the manifest, not its validity, gates the install.
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"npm install"}, runner.commands)
	assert.Contains(t, errOut.String(), "unreadable")
}

func TestInstallAll_NoFolders(t *testing.T) {
	runner := &fakeRunner{}
	m, _, _ := newTestManager(model.ManagerNpm, runner)

	count := m.InstallAll(context.Background(), t.TempDir(), nil)
	assert.Equal(t, 0, count)
	assert.Empty(t, runner.commands)
}
