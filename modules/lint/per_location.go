package lint

import (
	"context"

	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
	"github.com/specialistvlad/gridtask/internal/registry"
	"github.com/specialistvlad/gridtask/internal/rules"
)

// OnRunLintPerLocation runs the style linter once per source location with
// that location's effective rule set.
func OnRunLintPerLocation(ctx context.Context, s *registry.Session) error {
	cfg := s.Config()

	resolved := Resolve(cfg)
	style := rules.Style{
		MaxLineLength: cfg.Lint.MaxLineLength,
		NamingPattern: cfg.Lint.NamingPattern,
		Plugins:       cfg.Lint.Plugins,
	}
	ctxlog.FromContext(ctx).Debug("Resolved per-location rule sets.", "locations", len(resolved))

	for _, argv := range style.Invocations(cfg.Tools.Linter, resolved) {
		if err := s.Run(ctx, argv...); err != nil {
			return err
		}
	}
	return nil
}

// Resolve computes the effective rule set of every linted location.
func Resolve(cfg *config.Model) []rules.Resolved {
	overrides := make(map[string]rules.RuleSet, len(cfg.Lint.Overrides))
	for loc, enable := range cfg.Lint.Overrides {
		overrides[loc] = enable
	}
	return rules.Resolve(cfg.Project.SourceLocations, cfg.Lint.DefaultEnable, overrides, cfg.Lint.Exclude)
}
