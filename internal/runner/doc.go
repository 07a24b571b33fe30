// Package runner executes external commands on behalf of tasks. A command
// runs with an environment's toolchain visible, its output is streamed to the
// caller as it is produced, and the terminal exit status is returned as data.
// Deciding whether a non-zero status fails a task is left to the caller; see
// Check.
package runner
