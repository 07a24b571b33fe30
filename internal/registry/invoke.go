package registry

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/env"
)

type chainKey struct{}

// chainFrom returns the names of the tasks currently in progress, outermost
// first.
func chainFrom(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

// enter pushes name onto the in-progress chain, failing with a *CycleError
// if it is already there.
func enter(ctx context.Context, name string) (context.Context, error) {
	chain := chainFrom(ctx)
	if i := slices.Index(chain, name); i >= 0 {
		path := append(slices.Clone(chain[i:]), name)
		return ctx, &CycleError{Path: path}
	}
	next := append(slices.Clone(chain), name)
	return context.WithValue(ctx, chainKey{}, next), nil
}

// Invoke runs a task by name. With an empty runtime every runtime in the
// task's matrix is run in declared order, each in a freshly provisioned
// environment; all of them are attempted and the failures are returned
// together as a *MatrixError. A non-empty runtime must belong to the matrix
// and selects that single run.
func (r *Registry) Invoke(ctx context.Context, name, runtime string) error {
	t, ok := r.tasks[name]
	if !ok {
		return &UnknownTaskError{Name: name}
	}
	if t.body == nil {
		return fmt.Errorf("task %q has no body bound; was ValidateRegistry called?", name)
	}

	runtimes := t.Runtimes
	if runtime != "" {
		if !slices.Contains(t.Runtimes, runtime) {
			return &UnknownRuntimeError{Task: name, Runtime: runtime, Declared: t.Runtimes}
		}
		runtimes = []string{runtime}
	}
	if len(runtimes) == 0 {
		runtimes = []string{""}
	}

	// Cycles are configuration errors, so both checks happen before anything
	// is provisioned.
	if err := r.checkCycles(name); err != nil {
		return err
	}
	ctx, err := enter(ctx, name)
	if err != nil {
		return err
	}

	targets, err := env.ParseTargets(t.Install)
	if err != nil {
		return err
	}

	results := make([]RuntimeResult, 0, len(runtimes))
	failed := false
	for _, rt := range runtimes {
		start := time.Now()
		err := r.runSession(ctx, t, rt, targets)
		r.Banner.Outcome(sessionName(name, rt), err, time.Since(start))
		results = append(results, RuntimeResult{Runtime: rt, Err: err})
		failed = failed || err != nil
	}

	if len(runtimes) == 1 {
		return results[0].Err
	}
	if failed {
		return &MatrixError{Task: name, Results: results}
	}
	return nil
}

// runSession provisions one environment, runs the body in it and disposes of
// it whatever the outcome.
func (r *Registry) runSession(ctx context.Context, t *Task, runtime string, targets []env.Target) error {
	ctx, logger := ctxlog.With(ctx, "task", t.Name, "runtime", runtime)
	logger.Debug("Provisioning session environment.", "targets", len(targets))

	e, err := r.Provisioner.Provision(ctx, env.Request{Task: t.Name, Runtime: runtime, Targets: targets})
	if err != nil {
		logger.Error("Environment provisioning failed.", "error", err)
		var perr *env.ProvisionError
		if !errors.As(err, &perr) {
			err = &env.ProvisionError{Task: t.Name, Runtime: runtime, Err: err}
		}
		return err
	}
	defer func() {
		if derr := r.Provisioner.Dispose(ctx, e); derr != nil {
			logger.Warn("Failed to dispose of environment.", "env_id", e.ID, "error", derr)
		}
	}()

	s := &Session{reg: r, task: t, env: e}
	if err := t.body(ctx, s); err != nil {
		logger.Debug("Task body failed.", "error", err)
		return err
	}
	logger.Debug("Task body finished.")
	return nil
}

func sessionName(task, runtime string) string {
	if runtime == "" {
		return task
	}
	return task + "-" + runtime
}
