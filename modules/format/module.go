// Package format rewrites the source tree into canonical form and then
// verifies it with the lint task.
package format

import (
	"context"

	"github.com/specialistvlad/gridtask/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunFormat is the handler for the 'format' task.
func OnRunFormat(ctx context.Context, s *registry.Session) error {
	cfg := s.Config()
	locations := cfg.Project.SourceLocations

	if err := s.Install(ctx, append([]string{"."}, cfg.Tools.FormatPackages...)...); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.ImportSorter, locations...); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.Formatter, locations...); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.LicenseTool, append([]string{"fix"}, locations...)...); err != nil {
		return err
	}

	// The freshly formatted tree must pass every check.
	return s.Call(ctx, "lint")
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunFormat", OnRunFormat)
}
