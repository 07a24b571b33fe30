package env

import (
	"os"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/specialistvlad/gridtask/internal/runner"
)

// Environment is an isolated, disposable execution context.
type Environment struct {
	// ID uniquely identifies the environment within a run.
	ID string
	// Task is the name of the task that provisioned it.
	Task string
	// Runtime is the version specifier the interpreter was selected by.
	Runtime string
	// Dir is the virtualenv root. Empty means commands run against the host
	// toolchain unchanged, which is what test doubles rely on.
	Dir string
}

// BinDir returns the directory holding the environment's executables.
func (e *Environment) BinDir() string {
	if e.Dir == "" {
		return ""
	}
	if goruntime.GOOS == "windows" {
		return filepath.Join(e.Dir, "Scripts")
	}
	return filepath.Join(e.Dir, "bin")
}

// Command builds a runner.Command that executes argv inside the environment:
// its bin directory is searched first and exported at the front of PATH, and
// VIRTUAL_ENV points at the environment root.
func (e *Environment) Command(dir string, argv ...string) runner.Command {
	cmd := runner.Command{Argv: argv, Dir: dir}
	if e.Dir == "" {
		return cmd
	}
	bin := e.BinDir()
	cmd.SearchPath = []string{bin}
	cmd.Env = processEnv(bin, e.Dir)
	return cmd
}

func processEnv(bin, root string) []string {
	vars := make([]string, 0, len(os.Environ())+2)
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		switch strings.ToUpper(name) {
		case "PATH", "VIRTUAL_ENV", "PYTHONHOME":
			continue
		}
		vars = append(vars, kv)
	}
	path := bin
	if host := os.Getenv("PATH"); host != "" {
		path += string(os.PathListSeparator) + host
	}
	return append(vars, "PATH="+path, "VIRTUAL_ENV="+root)
}

// InstallArgv returns the argv that installs targets with the environment's pip.
func InstallArgv(targets []Target) []string {
	argv := []string{"python", "-m", "pip", "install"}
	for _, t := range targets {
		argv = append(argv, t.Args()...)
	}
	return argv
}

// UninstallArgv returns the argv that removes packages without prompting.
func UninstallArgv(packages []string) []string {
	return append([]string{"python", "-m", "pip", "uninstall", "--yes"}, packages...)
}
