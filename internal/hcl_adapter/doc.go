// Package hcl_adapter loads HCL taskfiles into the format-agnostic
// config.Model. Files are decoded with gohcl against an evaluation context
// exposing the process environment as `env` and a small set of go-cty
// standard library functions. When no taskfile is found, the embedded default
// taskfile is used.
package hcl_adapter
