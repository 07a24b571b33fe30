// Package registry provides the central "glue" between the taskfile and the
// compiled task bodies.
//
// The Registry stores mappings between the string identifiers used in the
// taskfile (e.g., "OnRunLint") and the Go functions that implement each task.
// It also holds the parsed, format-agnostic task definitions themselves.
//
// During application startup the registry is populated and then validated so
// that the Go code and the taskfile are in sync: every task is bound to a
// handler, every sub-task call names a declared task, and the call graph is
// acyclic. At run time it resolves a task name to one session per runtime,
// provisions an environment for each, and runs the body against it.
package registry
