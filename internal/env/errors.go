package env

import "fmt"

// ProvisionError reports an environment that could not be created or
// populated. It always aborts the owning task.
type ProvisionError struct {
	Task    string
	Runtime string
	Err     error
}

func (e *ProvisionError) Error() string {
	runtime := e.Runtime
	if runtime == "" {
		runtime = "default"
	}
	return fmt.Sprintf("provisioning environment for task %q (runtime %s): %v", e.Task, runtime, e.Err)
}

func (e *ProvisionError) Unwrap() error {
	return e.Err
}
