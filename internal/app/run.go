package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/runner"
)

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if a.config.List {
		a.listTasks()
		return nil
	}

	a.logger.Info("🚀 Running task.", "task", a.config.Task, "runtime", a.config.Runtime)
	start := time.Now()
	if err := a.registry.Invoke(ctx, a.config.Task, a.config.Runtime); err != nil {
		a.logger.Error("Task failed.", "task", a.config.Task, "duration", time.Since(start), "error", err)
		return fmt.Errorf("task %q failed: %w", a.config.Task, err)
	}
	a.logger.Info("🏁 Task finished.", "task", a.config.Task, "duration", time.Since(start))

	a.logger.Debug("App.Run method finished.")
	return nil
}

// listTasks prints one line per task with its runtime matrix and description.
func (a *App) listTasks() {
	for _, t := range a.registry.Tasks() {
		line := "* " + t.Name
		if len(t.Runtimes) > 0 {
			line += " [" + strings.Join(t.Runtimes, ", ") + "]"
		}
		if t.Description != "" {
			line += " -> " + t.Description
		}
		fmt.Fprintln(a.outW, line)
	}
}

// ExitCode maps a run error to the process exit status: the exit code of the
// first failing command when one is known, otherwise 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var failure *runner.CommandFailure
	if errors.As(err, &failure) && failure.ExitCode > 0 {
		return failure.ExitCode
	}
	return 1
}
