package execx

import (
	"bytes"
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireShell skips the test when no POSIX shell is available.
// The runner tests exercise real child processes through `sh -c`.
func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available on this system")
	}
}

func TestRun_SuccessAndFailure(t *testing.T) {
	requireShell(t)

	r := NewRunner()

	ok := r.Run(context.Background(), "", "sh", "-c", "exit 0")
	assert.True(t, ok.OK)
	assert.Equal(t, "sh -c exit 0", ok.Command)

	failed := r.Run(context.Background(), "", "sh", "-c", "exit 3")
	assert.False(t, failed.OK)
}

func TestRun_MissingExecutable(t *testing.T) {
	r := NewRunner()

	result := r.Run(context.Background(), "", "definitely-not-a-real-tool-xyz", "--version")
	assert.False(t, result.OK, "a missing executable must surface as a failed result")
}

func TestRun_StreamsOutput(t *testing.T) {
	requireShell(t)

	var stdout, stderr bytes.Buffer
	r := &consoleRunner{stdout: &stdout, stderr: &stderr}

	result := r.Run(context.Background(), "", "sh", "-c", "echo out; echo err >&2")
	require.True(t, result.OK)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestRunSilent_SuppressesOutput(t *testing.T) {
	requireShell(t)

	var stdout, stderr bytes.Buffer
	r := &consoleRunner{stdout: &stdout, stderr: &stderr}

	result := r.RunSilent(context.Background(), "", "sh", "-c", "echo out; echo err >&2")
	require.True(t, result.OK)
	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRun_WorkingDirectory(t *testing.T) {
	requireShell(t)

	tmpDir := t.TempDir()

	var stdout bytes.Buffer
	r := &consoleRunner{stdout: &stdout, stderr: &stdout}

	result := r.Run(context.Background(), tmpDir, "sh", "-c", "pwd")
	require.True(t, result.OK)
	assert.Equal(t, tmpDir, result.Dir)
	assert.Contains(t, stdout.String(), tmpDir)
}

func TestResult_String(t *testing.T) {
	withDir := Result{Command: "npm install", Dir: "/tmp/proj/a"}
	assert.Equal(t, "`npm install` (in /tmp/proj/a)", withDir.String())

	withoutDir := Result{Command: "yarn --version"}
	assert.Equal(t, "`yarn --version`", withoutDir.String())
}
