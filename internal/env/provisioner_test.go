package env_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/specialistvlad/gridtask/internal/env"
	"github.com/specialistvlad/gridtask/internal/runner"
	"github.com/specialistvlad/gridtask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLookPath(available ...string) func(string) (string, error) {
	return func(name string) (string, error) {
		for _, a := range available {
			if a == name {
				return "/usr/bin/" + name, nil
			}
		}
		return "", errors.New("executable file not found in $PATH")
	}
}

func TestVenv_Provision_CreatesAndInstalls(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	root := t.TempDir()
	fr := &testutil.FakeRunner{}

	v := env.NewVenv(root, "python", fr, false)
	v.SetLookPath(fakeLookPath("python3.9"))

	targets, err := env.ParseTargets([]string{"pylint"})
	require.NoError(t, err)

	e, err := v.Provision(ctx, env.Request{Task: "lint", Runtime: "3.9", Targets: targets})
	require.NoError(t, err)

	assert.Equal(t, "3.9", e.Runtime)
	assert.True(t, strings.HasPrefix(filepath.Base(e.Dir), "lint-3.9-"), e.Dir)
	assert.Equal(t, root, filepath.Dir(e.Dir))

	cmds := fr.Commands()
	require.Len(t, cmds, 2)
	assert.Equal(t, []string{"/usr/bin/python3.9", "-m", "venv", e.Dir}, cmds[0].Argv)
	assert.Equal(t, []string{"python", "-m", "pip", "install", "pylint"}, cmds[1].Argv)
	assert.Equal(t, []string{e.BinDir()}, cmds[1].SearchPath)
	assert.Contains(t, cmds[1].Env, "VIRTUAL_ENV="+e.Dir)
}

func TestVenv_Provision_RelativeRootIsAbsolute(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	work := t.TempDir()
	t.Chdir(work)

	v := env.NewVenv(".gridtask", "python", &testutil.FakeRunner{}, false)
	v.SetLookPath(fakeLookPath("python3.9"))

	e, err := v.Provision(ctx, env.Request{Task: "docs", Runtime: "3.9"})
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(e.Dir), e.Dir)
	assert.Equal(t, filepath.Join(cwd, ".gridtask"), filepath.Dir(e.Dir))
	assert.True(t, filepath.IsAbs(e.BinDir()), e.BinDir())
	assert.DirExists(t, filepath.Join(work, ".gridtask"))
}

func TestVenv_Provision_EnvironmentsAreDistinct(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	v := env.NewVenv(t.TempDir(), "python", &testutil.FakeRunner{}, false)
	v.SetLookPath(fakeLookPath("python3.9"))

	a, err := v.Provision(ctx, env.Request{Task: "test", Runtime: "3.9"})
	require.NoError(t, err)
	b, err := v.Provision(ctx, env.Request{Task: "test", Runtime: "3.9"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Dir, b.Dir)
}

func TestVenv_Provision_MissingRuntime(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	fr := &testutil.FakeRunner{}
	v := env.NewVenv(t.TempDir(), "python", fr, false)
	v.SetLookPath(fakeLookPath())

	_, err := v.Provision(ctx, env.Request{Task: "test", Runtime: "3.6"})

	var provErr *env.ProvisionError
	require.True(t, errors.As(err, &provErr))
	assert.Equal(t, "3.6", provErr.Runtime)
	assert.Contains(t, err.Error(), "runtime unavailable")
	assert.Empty(t, fr.Commands(), "nothing must run when the interpreter is missing")
}

func TestVenv_Provision_InstallFailure(t *testing.T) {
	ctx, _ := testutil.NewContext(t)
	root := t.TempDir()
	fr := (&testutil.FakeRunner{}).FailOn("python -m pip install", 1)
	v := env.NewVenv(root, "python", fr, false)
	v.SetLookPath(fakeLookPath("python"))

	targets, err := env.ParseTargets([]string{"."})
	require.NoError(t, err)
	_, err = v.Provision(ctx, env.Request{Task: "docs", Targets: targets})

	var provErr *env.ProvisionError
	require.True(t, errors.As(err, &provErr))
	var failure *runner.CommandFailure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, 1, failure.ExitCode)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "a failed environment must not be left behind")
}

func TestVenv_Dispose(t *testing.T) {
	ctx, _ := testutil.NewContext(t)

	for _, keep := range []bool{false, true} {
		dir := filepath.Join(t.TempDir(), "env")
		require.NoError(t, os.MkdirAll(dir, 0o755))

		v := env.NewVenv(filepath.Dir(dir), "python", &testutil.FakeRunner{}, keep)
		require.NoError(t, v.Dispose(ctx, &env.Environment{ID: "x", Dir: dir}))

		_, statErr := os.Stat(dir)
		if keep {
			assert.NoError(t, statErr)
		} else {
			assert.True(t, os.IsNotExist(statErr))
		}
	}
}

func TestEnvironment_Command(t *testing.T) {
	bare := &env.Environment{}
	cmd := bare.Command("docs", "make", "html")
	assert.Equal(t, []string{"make", "html"}, cmd.Argv)
	assert.Equal(t, "docs", cmd.Dir)
	assert.Nil(t, cmd.Env)
	assert.Empty(t, cmd.SearchPath)

	venv := &env.Environment{Dir: "/tmp/envs/x"}
	cmd = venv.Command("", "python", "-V")
	require.Len(t, cmd.SearchPath, 1)
	var path string
	for _, kv := range cmd.Env {
		if strings.HasPrefix(kv, "PATH=") {
			path = kv
		}
	}
	assert.True(t, strings.HasPrefix(path, "PATH="+venv.BinDir()), path)
}
