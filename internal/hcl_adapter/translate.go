// This file contains the logic for translating decoded HCL blocks into the
// format-agnostic configuration model defined in the config package.

package hcl_adapter

import (
	"context"
	"fmt"

	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
)

const (
	defaultInterpreter   = "python"
	defaultMaxLineLength = 100
)

// translate converts the merged HCL blocks into the agnostic model. Missing
// singleton blocks are left nil and reported by config.Model.Validate.
func (l *Loader) translate(ctx context.Context, m *mergedRoot) (*config.Model, error) {
	model := &config.Model{}

	if m.project != nil {
		model.Project = translateProject(m.project)
	}
	if m.tools != nil {
		model.Tools = translateTools(m.tools)
	}
	if m.lint != nil {
		lint, err := translateLintRules(m.lint)
		if err != nil {
			return nil, err
		}
		model.Lint = lint
	}
	for _, t := range m.tasks {
		model.Tasks = append(model.Tasks, translateTask(ctx, t))
	}
	return model, nil
}

func translateProject(p *ProjectBlock) *config.Project {
	out := &config.Project{
		SourceLocations: p.SourceLocations,
		PackageDir:      p.PackageDir,
		DocsDir:         p.DocsDir,
		DevRequirements: p.DevRequirements,
		AsyncExtra:      p.AsyncExtra,
		DocsExtra:       p.DocsExtra,
		NetworkPackage:  p.NetworkPackage,
	}
	if p.TypeExamples != nil {
		out.SyncTypeExample = p.TypeExamples.Sync
		out.AsyncTypeExample = p.TypeExamples.Async
	}
	if p.Smoke != nil {
		out.SyncSmoke = p.Smoke.Sync
		out.AsyncSmoke = p.Smoke.Async
	}
	return out
}

func translateTools(t *ToolsBlock) *config.Tools {
	interpreter := t.Interpreter
	if interpreter == "" {
		interpreter = defaultInterpreter
	}
	return &config.Tools{
		Interpreter:    interpreter,
		ImportSorter:   t.ImportSorter,
		Formatter:      t.Formatter,
		StyleChecker:   t.StyleChecker,
		Linter:         t.Linter,
		TypeChecker:    t.TypeChecker,
		LicenseTool:    t.LicenseTool,
		DocBuilder:     t.DocBuilder,
		Generator:      t.Generator,
		TestSuite:      t.TestSuite,
		FormatPackages: t.FormatPackages,
		LintPackages:   t.LintPackages,
	}
}

// translateLintRules builds the override table. A location may carry at most
// one override block.
func translateLintRules(b *LintRulesBlock) (*config.LintRules, error) {
	maxLen := b.MaxLineLength
	if maxLen == 0 {
		maxLen = defaultMaxLineLength
	}
	out := &config.LintRules{
		MaxLineLength: maxLen,
		NamingPattern: b.NamingPattern,
		Plugins:       b.Plugins,
		DefaultEnable: b.DefaultEnable,
		Exclude:       b.Exclude,
		Overrides:     make(map[string][]string, len(b.Overrides)),
	}
	for _, o := range b.Overrides {
		if _, dup := out.Overrides[o.Location]; dup {
			return nil, fmt.Errorf("lint_rules: more than one override for location %q", o.Location)
		}
		enable := o.Enable
		if enable == nil {
			enable = []string{}
		}
		out.Overrides[o.Location] = enable
	}
	return out, nil
}

func translateTask(ctx context.Context, t *TaskBlock) *config.TaskDefinition {
	ctxlog.FromContext(ctx).Debug("Translating HCL task to internal config model.", "task", t.Name, "runtimes", t.Runtimes, "calls", t.Calls)
	return &config.TaskDefinition{
		Name:        t.Name,
		Description: t.Description,
		Runtimes:    t.Runtimes,
		Install:     t.Install,
		Calls:       t.Calls,
		OnRun:       t.OnRun,
	}
}
