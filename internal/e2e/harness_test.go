package e2e

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"
	"testing"

	"github.com/specialistvlad/gridtask/internal/app"
	"github.com/specialistvlad/gridtask/internal/hcl_adapter"
	"github.com/specialistvlad/gridtask/internal/testutil"
	"github.com/stretchr/testify/require"
)

// fakeInterpreter stands in for a Python interpreter. "-m venv DIR" lays out
// a virtualenv whose python is a copy of this script; every other call is
// appended to $GRIDTASK_FAKE_LOG.
const fakeInterpreter = `#!/bin/sh
if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
  mkdir -p "$3/bin" && cp "$0" "$3/bin/python" && chmod +x "$3/bin/python"
  exit $?
fi
echo "$(basename "$0") $*" >> "$GRIDTASK_FAKE_LOG"
`

// World is a sandbox with fake interpreters on PATH.
type World struct {
	Dir    string
	EnvDir string
	Log    string
}

// newWorld installs fakeinterp plus one fakeinterp<runtime> per runtime on
// PATH. It mutates the process environment, so callers must not be parallel.
func newWorld(t *testing.T, runtimes ...string) *World {
	t.Helper()
	if goruntime.GOOS == "windows" {
		t.Skip("fake interpreters are shell scripts")
	}

	dir := t.TempDir()
	bin := filepath.Join(dir, "bin")
	require.NoError(t, os.MkdirAll(bin, 0o755))
	for _, rt := range append([]string{""}, runtimes...) {
		require.NoError(t, os.WriteFile(filepath.Join(bin, "fakeinterp"+rt), []byte(fakeInterpreter), 0o755))
	}

	w := &World{Dir: dir, EnvDir: filepath.Join(dir, "envs"), Log: filepath.Join(dir, "calls.log")}
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("GRIDTASK_FAKE_LOG", w.Log)
	return w
}

// WriteTaskfile renders content with fmt verbs filled from args and writes
// it into the sandbox.
func (w *World) WriteTaskfile(t *testing.T, content string, args ...any) string {
	t.Helper()
	path := filepath.Join(w.Dir, "gridtask.hcl")
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(content, args...)), 0o600))
	return path
}

// Calls returns the logged interpreter and tool calls.
func (w *World) Calls(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(w.Log)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

// Run builds the real application and runs one task.
func (w *World) Run(t *testing.T, taskfile, task, runtime string) (string, error) {
	t.Helper()
	out := &testutil.SafeBuffer{}
	cfg, err := app.NewConfig(app.Config{
		TaskfilePath: taskfile,
		EnvDir:       w.EnvDir,
		Task:         task,
		Runtime:      runtime,
		LogLevel:     "debug",
		LogFormat:    "text",
		NoColor:      true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("GRIDTASK_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), out.String())
		}
	})

	runErr := app.NewApp(out, cfg, hcl_adapter.NewLoader()).Run(context.Background())
	return out.String(), runErr
}
