// Package docs builds the HTML documentation site.
package docs

import (
	"context"

	"github.com/specialistvlad/gridtask/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunDocs is the handler for the 'docs' task. The builder runs inside the
// docs directory.
func OnRunDocs(ctx context.Context, s *registry.Session) error {
	cfg := s.Config()

	if err := s.Install(ctx, "."); err != nil {
		return err
	}
	if err := s.Install(ctx, ".["+cfg.Project.DocsExtra+"]"); err != nil {
		return err
	}
	return s.InDir(cfg.Project.DocsDir, func() error {
		return s.RunTool(ctx, cfg.Tools.DocBuilder)
	})
}

// Register registers the handler with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunDocs", OnRunDocs)
}
