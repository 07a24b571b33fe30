package env

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/runner"
)

// Request describes the environment a session needs.
type Request struct {
	Task    string
	Runtime string
	Targets []Target
}

// Provisioner creates and disposes of environments.
type Provisioner interface {
	// Provision creates a fresh environment for req.Runtime and installs
	// req.Targets into it, in order, without deduplication. Any failure is a
	// *ProvisionError and leaves nothing behind.
	Provision(ctx context.Context, req Request) (*Environment, error)
	// Dispose releases the environment.
	Dispose(ctx context.Context, e *Environment) error
}

// Venv provisions environments with the standard library venv module of the
// selected interpreter.
type Venv struct {
	// Root is the directory environments are created under.
	Root string
	// Interpreter is the executable name prefix; the runtime version is
	// appended to it, so "python" and "3.9" select "python3.9".
	Interpreter string
	// Keep leaves environment directories in place after Dispose.
	Keep   bool
	Runner runner.Runner

	lookPath func(string) (string, error)
}

// NewVenv creates a virtualenv provisioner.
func NewVenv(root, interpreter string, r runner.Runner, keep bool) *Venv {
	return &Venv{
		Root:        root,
		Interpreter: interpreter,
		Keep:        keep,
		Runner:      r,
		lookPath:    exec.LookPath,
	}
}

// Provision implements Provisioner.
func (v *Venv) Provision(ctx context.Context, req Request) (*Environment, error) {
	ctx, logger := ctxlog.With(ctx, "task", req.Task, "runtime", req.Runtime)
	fail := func(err error) (*Environment, error) {
		return nil, &ProvisionError{Task: req.Task, Runtime: req.Runtime, Err: err}
	}

	interpreter := v.Interpreter + req.Runtime
	path, err := v.lookPath(interpreter)
	if err != nil {
		logger.Debug("Interpreter lookup failed.", "interpreter", interpreter, "error", err)
		return fail(fmt.Errorf("runtime unavailable: %w", err))
	}

	// Commands may run from another working directory, so the environment
	// path must not depend on the current one.
	root, err := filepath.Abs(v.Root)
	if err != nil {
		return fail(fmt.Errorf("resolving environment root: %w", err))
	}

	id := uuid.NewString()
	e := &Environment{
		ID:      id,
		Task:    req.Task,
		Runtime: req.Runtime,
		Dir:     filepath.Join(root, dirName(req.Task, req.Runtime, id)),
	}
	logger = logger.With("env_id", e.ID)
	ctx = ctxlog.WithLogger(ctx, logger)

	if err := os.MkdirAll(root, 0o755); err != nil {
		return fail(fmt.Errorf("creating environment root: %w", err))
	}

	logger.Debug("Creating virtualenv.", "interpreter", path, "dir", e.Dir)
	if err := runner.Check(v.Runner.Run(ctx, runner.Command{Argv: []string{path, "-m", "venv", e.Dir}})); err != nil {
		_ = os.RemoveAll(e.Dir)
		return fail(err)
	}

	if len(req.Targets) > 0 {
		logger.Debug("Installing initial targets.", "targets", len(req.Targets))
		if err := runner.Check(v.Runner.Run(ctx, e.Command("", InstallArgv(req.Targets)...))); err != nil {
			_ = os.RemoveAll(e.Dir)
			return fail(err)
		}
	}

	logger.Info("📦 Environment ready.", "dir", e.Dir)
	return e, nil
}

// Dispose implements Provisioner.
func (v *Venv) Dispose(ctx context.Context, e *Environment) error {
	logger := ctxlog.FromContext(ctx)
	if e == nil || e.Dir == "" {
		return nil
	}
	if v.Keep {
		logger.Debug("Keeping environment directory.", "dir", e.Dir)
		return nil
	}
	if err := os.RemoveAll(e.Dir); err != nil {
		return fmt.Errorf("removing environment %s: %w", e.ID, err)
	}
	logger.Debug("Environment removed.", "dir", e.Dir)
	return nil
}

func dirName(task, runtime, id string) string {
	if runtime == "" {
		runtime = "default"
	}
	short := strings.ReplaceAll(id, "-", "")[:8]
	return fmt.Sprintf("%s-%s-%s", task, runtime, short)
}
