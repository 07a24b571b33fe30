package registry

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/env"
	"github.com/specialistvlad/gridtask/internal/runner"
)

// Session is the handle a task body runs against: one task, one runtime and
// the environment provisioned for them. Every step blocks until its process
// exits and returns the first failure.
type Session struct {
	reg  *Registry
	task *Task
	env  *env.Environment
	dir  string
}

// Name returns the name of the running task.
func (s *Session) Name() string { return s.task.Name }

// Runtime returns the runtime the environment was provisioned for. It is
// empty for the default interpreter.
func (s *Session) Runtime() string { return s.env.Runtime }

// Env returns the session's environment.
func (s *Session) Env() *env.Environment { return s.env }

// Config returns the loaded configuration model.
func (s *Session) Config() *config.Model { return s.reg.model }

// Dir returns the working directory commands currently run in. Empty means
// the process working directory.
func (s *Session) Dir() string { return s.dir }

// Install installs targets into the session's environment. A failing
// install is reported as a *env.ProvisionError.
func (s *Session) Install(ctx context.Context, targets ...string) error {
	parsed, err := env.ParseTargets(targets)
	if err != nil {
		return s.provisionError(err)
	}
	ctxlog.FromContext(ctx).Debug("Installing into session environment.", "targets", targets)
	if err := s.run(ctx, env.InstallArgv(parsed)); err != nil {
		return s.provisionError(err)
	}
	return nil
}

// Uninstall removes packages from the session's environment.
func (s *Session) Uninstall(ctx context.Context, packages ...string) error {
	return s.run(ctx, env.UninstallArgv(packages))
}

// Run executes argv in the session's environment. A non-zero exit is
// returned as a *runner.CommandFailure.
func (s *Session) Run(ctx context.Context, argv ...string) error {
	return s.run(ctx, argv)
}

// RunTool executes a tool argv prefix from the taskfile followed by args.
func (s *Session) RunTool(ctx context.Context, tool []string, args ...string) error {
	if len(tool) == 0 {
		return fmt.Errorf("task %q: required tool is not configured", s.Name())
	}
	argv := append(slices.Clone(tool), args...)
	return s.run(ctx, argv)
}

func (s *Session) run(ctx context.Context, argv []string) error {
	return runner.Check(s.reg.Runner.Run(ctx, s.env.Command(s.dir, argv...)))
}

// InDir runs fn with dir as the working directory of every command. The
// previous directory is restored when fn returns, whether or not it failed.
// A relative dir is resolved against the current one.
func (s *Session) InDir(dir string, fn func() error) error {
	prev := s.dir
	defer func() { s.dir = prev }()

	if !filepath.IsAbs(dir) && prev != "" {
		dir = filepath.Join(prev, dir)
	}
	s.dir = dir
	return fn()
}

// Call runs a declared sub-task inside this session's environment. The
// callee's own install targets and runtime matrix are not applied.
func (s *Session) Call(ctx context.Context, name string) error {
	callee, err := s.callee(name)
	if err != nil {
		return err
	}
	ctx, err = enter(ctx, name)
	if err != nil {
		return err
	}
	ctx, logger := ctxlog.With(ctx, "task", name)
	logger.Debug("Running sub-task in the caller's environment.", "caller", s.Name(), "env_id", s.env.ID)

	sub := &Session{reg: s.reg, task: callee, env: s.env}
	return callee.body(ctx, sub)
}

// Invoke runs a declared sub-task in its own freshly provisioned
// environment(s), exactly as if it had been selected from the command line.
func (s *Session) Invoke(ctx context.Context, name string) error {
	if _, err := s.callee(name); err != nil {
		return err
	}
	return s.reg.Invoke(ctx, name, "")
}

func (s *Session) callee(name string) (*Task, error) {
	if !slices.Contains(s.task.Calls, name) {
		return nil, &UndeclaredCallError{Caller: s.Name(), Callee: name}
	}
	callee, ok := s.reg.tasks[name]
	if !ok {
		return nil, &UnknownTaskError{Name: name}
	}
	return callee, nil
}

func (s *Session) provisionError(err error) error {
	return &env.ProvisionError{Task: s.Name(), Runtime: s.env.Runtime, Err: err}
}
