// Package dag models the static call graph between tasks. Each task is a
// node; an edge records that one task invokes another as a sub-step. The
// graph exists to reject cyclic task configurations before any command runs.
package dag
