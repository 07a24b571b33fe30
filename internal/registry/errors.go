package registry

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/gridtask/internal/dag"
)

// CycleError reports a task that would invoke itself, directly or through
// other tasks. Path lists the tasks in call order, starting and ending with
// the repeated one.
type CycleError = dag.CycleError

// UnknownTaskError reports a task name the registry does not know.
type UnknownTaskError struct {
	Name string
}

func (e *UnknownTaskError) Error() string {
	return fmt.Sprintf("unknown task %q", e.Name)
}

// UnknownRuntimeError reports a runtime outside the task's declared matrix.
type UnknownRuntimeError struct {
	Task     string
	Runtime  string
	Declared []string
}

func (e *UnknownRuntimeError) Error() string {
	if len(e.Declared) == 0 {
		return fmt.Sprintf("task %q declares no runtimes, cannot select %q", e.Task, e.Runtime)
	}
	return fmt.Sprintf("task %q does not declare runtime %q (declared: %s)", e.Task, e.Runtime, strings.Join(e.Declared, ", "))
}

// UndeclaredCallError reports a body running a sub-task its task does not
// list in calls.
type UndeclaredCallError struct {
	Caller string
	Callee string
}

func (e *UndeclaredCallError) Error() string {
	return fmt.Sprintf("task %q calls %q, which is not in its declared calls", e.Caller, e.Callee)
}

// RuntimeResult is the outcome of one runtime of a matrix run.
type RuntimeResult struct {
	Runtime string
	Err     error
}

// MatrixError aggregates the failed runtimes of a matrix run. Every runtime
// was attempted.
type MatrixError struct {
	Task    string
	Results []RuntimeResult
}

func (e *MatrixError) Error() string {
	var failed []string
	for _, r := range e.Results {
		if r.Err != nil {
			failed = append(failed, fmt.Sprintf("%s: %v", r.Runtime, r.Err))
		}
	}
	return fmt.Sprintf("task %q failed for %d of %d runtimes:\n  %s", e.Task, len(failed), len(e.Results), strings.Join(failed, "\n  "))
}

// Unwrap exposes every runtime failure, in matrix order, to errors.Is and
// errors.As.
func (e *MatrixError) Unwrap() []error {
	var errs []error
	for _, r := range e.Results {
		if r.Err != nil {
			errs = append(errs, r.Err)
		}
	}
	return errs
}
