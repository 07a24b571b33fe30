package runner

import (
	"fmt"
	"strings"
)

// CommandFailure reports an external command that exited non-zero or could
// not be started.
type CommandFailure struct {
	Argv     []string
	ExitCode int
	Err      error
}

func (e *CommandFailure) Error() string {
	cmdline := strings.Join(e.Argv, " ")
	if e.Err != nil {
		return fmt.Sprintf("command %q failed (exit code %d): %v", cmdline, e.ExitCode, e.Err)
	}
	return fmt.Sprintf("command %q failed with exit code %d", cmdline, e.ExitCode)
}

func (e *CommandFailure) Unwrap() error {
	return e.Err
}

// Check turns the return values of Runner.Run into a single error, escalating
// a non-zero exit status into a *CommandFailure.
func Check(res *Result, err error) error {
	if err != nil {
		failure := &CommandFailure{ExitCode: -1, Err: err}
		if res != nil {
			failure.Argv = res.Argv
			failure.ExitCode = res.ExitCode
		}
		return failure
	}
	if !res.Passed() {
		return &CommandFailure{Argv: res.Argv, ExitCode: res.ExitCode}
	}
	return nil
}
