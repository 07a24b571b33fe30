// Package tasktest wires the built-in taskfile and every task module to fake
// collaborators, so task pipelines can be asserted command by command.
package tasktest

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/hcl_adapter"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/runner"
	"github.com/specialistvlad/gridtask/internal/testutil"
	"github.com/specialistvlad/gridtask/modules/docs"
	"github.com/specialistvlad/gridtask/modules/format"
	"github.com/specialistvlad/gridtask/modules/generate"
	"github.com/specialistvlad/gridtask/modules/lint"
	"github.com/specialistvlad/gridtask/modules/testsuite"
	"github.com/stretchr/testify/require"
)

// Harness is a validated registry running against fakes.
type Harness struct {
	Ctx         context.Context
	Logs        *testutil.SafeBuffer
	Banner      *bytes.Buffer
	Model       *config.Model
	Registry    *registry.Registry
	Runner      *testutil.FakeRunner
	Provisioner *testutil.FakeProvisioner
}

// Modules returns every task module.
func Modules() []registry.Module {
	return []registry.Module{
		&testsuite.Module{},
		&format.Module{},
		&lint.Module{},
		&docs.Module{},
		&generate.Module{},
	}
}

// New loads the built-in taskfile and builds a registry over fakes. A nil r
// uses a fresh *testutil.FakeRunner, reachable through Harness.Runner.
func New(t *testing.T, r runner.Runner) *Harness {
	t.Helper()
	ctx, logs := testutil.NewContext(t)

	model, err := hcl_adapter.NewLoader().Load(ctx)
	require.NoError(t, err)

	h := &Harness{Ctx: ctx, Logs: logs, Banner: &bytes.Buffer{}, Model: model}
	if r == nil {
		h.Runner = &testutil.FakeRunner{}
		r = h.Runner
	}
	h.Provisioner = &testutil.FakeProvisioner{Runner: r}
	h.Registry = registry.New(h.Provisioner, r, runner.NewBanner(h.Banner, "gridtask", false))
	for _, m := range Modules() {
		m.Register(h.Registry)
	}
	h.Registry.PopulateTasksFromModel(model)
	require.NoError(t, h.Registry.ValidateRegistry(ctx))
	return h
}

// Locations returns the default source locations joined like a command line.
func (h *Harness) Locations() string {
	return strings.Join(h.Model.Project.SourceLocations, " ")
}
