// Package env materializes isolated Python environments for task sessions.
//
// An Environment is bound to exactly one runtime version and one set of
// installed packages. It is created at the start of a session, owned by that
// session alone, and disposed of when the session ends. Nothing is shared or
// reused between environments, which keeps runtime-matrix runs independent.
package env
