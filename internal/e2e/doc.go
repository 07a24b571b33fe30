// Package e2e exercises the assembled application against real processes:
// the os/exec runner, the virtualenv provisioner and the HCL loader, with
// shell scripts standing in for the Python toolchain.
package e2e
