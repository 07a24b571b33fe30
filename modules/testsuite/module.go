// Package testsuite runs the project's test suite once per supported runtime.
package testsuite

import (
	"context"

	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunTest installs the project bare and checks the entry point imports,
// adds the async extra and checks again, then installs the development
// requirements and runs the suite.
func OnRunTest(ctx context.Context, s *registry.Session) error {
	p := s.Config().Project
	logger := ctxlog.FromContext(ctx)

	if err := s.Install(ctx, "."); err != nil {
		return err
	}
	logger.Debug("Checking the client constructs without the optional extra.")
	if err := s.Run(ctx, "python", "-c", p.SyncSmoke); err != nil {
		return err
	}

	if err := s.Install(ctx, ".["+p.AsyncExtra+"]"); err != nil {
		return err
	}
	logger.Debug("Checking the client constructs with the optional extra.", "extra", p.AsyncExtra)
	if err := s.Run(ctx, "python", "-c", p.AsyncSmoke); err != nil {
		return err
	}

	if err := s.Install(ctx, "-r "+p.DevRequirements); err != nil {
		return err
	}
	return s.RunTool(ctx, s.Config().Tools.TestSuite)
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunTest", OnRunTest)
}
