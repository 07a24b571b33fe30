// Package generate regenerates the API surface and normalizes the result.
package generate

import (
	"context"

	"github.com/specialistvlad/gridtask/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunGenerate is the handler for the 'generate' task. Formatting runs in
// its own environment, and it verifies the tree with lint in turn.
func OnRunGenerate(ctx context.Context, s *registry.Session) error {
	cfg := s.Config()

	if err := s.Install(ctx, "-r"+cfg.Project.DevRequirements); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.Generator); err != nil {
		return err
	}
	return s.Invoke(ctx, "format")
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunGenerate", OnRunGenerate)
}
