// Package config defines the format-agnostic configuration model for the
// application: the project's source locations, the external tool commands,
// the per-location style rules, and the task declarations. It also defines the
// Loader interface that concrete formats implement.
//
// The `config.Model` is the single source of truth for the `registry` package
// and the task modules. It is built once at startup and never mutated after
// validation. The HCL implementation lives in `hcl_adapter`.
package config
