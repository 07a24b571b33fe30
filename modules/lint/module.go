// Package lint checks the source tree without modifying it.
//
// Two handlers live here: OnRunLint for the whole check pipeline and
// OnRunLintPerLocation for the per-location style linter, which the pipeline
// runs as a sub-task inside its own environment.
package lint

import (
	"context"

	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// OnRunLint is the handler for the 'lint' task.
func OnRunLint(ctx context.Context, s *registry.Session) error {
	cfg := s.Config()
	locations := cfg.Project.SourceLocations

	if err := s.Install(ctx, cfg.Tools.LintPackages...); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.ImportSorter, append([]string{"--check"}, locations...)...); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.Formatter, append([]string{"--check"}, locations...)...); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.StyleChecker, locations...); err != nil {
		return err
	}
	if err := s.Call(ctx, "lint-per-location"); err != nil {
		return err
	}
	if err := s.RunTool(ctx, cfg.Tools.LicenseTool, append([]string{"check"}, locations...)...); err != nil {
		return err
	}

	if err := typeCheckWithExtra(ctx, s, cfg); err != nil {
		return err
	}
	return typeCheckWithoutExtra(ctx, s, cfg)
}

// typeCheckWithExtra runs with the network package present. It installs the
// package itself instead of relying on what earlier installs left behind.
func typeCheckWithExtra(ctx context.Context, s *registry.Session, cfg *config.Model) error {
	p := cfg.Project
	ctxlog.FromContext(ctx).Debug("Type checking with the optional extra present.", "package", p.NetworkPackage)

	if p.NetworkPackage != "" {
		if err := s.Install(ctx, p.NetworkPackage); err != nil {
			return err
		}
	}
	targets := [][]string{p.SourceLocations}
	if p.SyncTypeExample != "" {
		targets = append(targets, []string{p.SyncTypeExample})
	}
	if p.AsyncTypeExample != "" {
		targets = append(targets, []string{p.AsyncTypeExample})
	}
	for _, paths := range targets {
		if err := s.RunTool(ctx, cfg.Tools.TypeChecker, paths...); err != nil {
			return err
		}
	}
	return nil
}

// typeCheckWithoutExtra removes the network package and checks that the
// package and the synchronous example still type check, so consumers of the
// type hints are not forced to install the extra.
func typeCheckWithoutExtra(ctx context.Context, s *registry.Session, cfg *config.Model) error {
	p := cfg.Project
	if p.NetworkPackage == "" {
		return nil
	}
	ctxlog.FromContext(ctx).Debug("Type checking with the optional extra absent.", "package", p.NetworkPackage)

	if err := s.Uninstall(ctx, p.NetworkPackage); err != nil {
		return err
	}
	if p.PackageDir != "" {
		if err := s.RunTool(ctx, cfg.Tools.TypeChecker, p.PackageDir); err != nil {
			return err
		}
	}
	if p.SyncTypeExample != "" {
		return s.RunTool(ctx, cfg.Tools.TypeChecker, p.SyncTypeExample)
	}
	return nil
}

// Register registers the handlers with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterHandler("OnRunLint", OnRunLint)
	r.RegisterHandler("OnRunLintPerLocation", OnRunLintPerLocation)
}
