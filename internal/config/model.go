package config

import (
	"fmt"
	"slices"
	"strings"
)

// Model is the unified, format-agnostic representation of the entire
// application configuration.
type Model struct {
	Project *Project
	Tools   *Tools
	Lint    *LintRules
	// Tasks keeps declaration order, which is also the listing order.
	Tasks []*TaskDefinition
}

// Project describes the project being orchestrated.
type Project struct {
	// SourceLocations is the fixed, ordered list of paths every formatting
	// and checking tool runs over.
	SourceLocations []string
	PackageDir      string
	DocsDir         string
	DevRequirements string
	AsyncExtra      string
	DocsExtra       string
	// NetworkPackage is the optional dependency pulled in by AsyncExtra.
	NetworkPackage   string
	SyncTypeExample  string
	AsyncTypeExample string
	// SyncSmoke and AsyncSmoke are interpreter snippets proving the primary
	// entry point constructs without and with the optional feature set.
	SyncSmoke  string
	AsyncSmoke string
}

// Tools holds the argv prefix of each external collaborator.
type Tools struct {
	Interpreter    string
	ImportSorter   []string
	Formatter      []string
	StyleChecker   []string
	Linter         []string
	TypeChecker    []string
	LicenseTool    []string
	DocBuilder     []string
	Generator      []string
	TestSuite      []string
	FormatPackages []string
	LintPackages   []string
}

// LintRules is the per-location style policy.
type LintRules struct {
	MaxLineLength int
	NamingPattern string
	Plugins       []string
	DefaultEnable []string
	// Overrides replaces DefaultEnable entirely for the keyed location.
	Overrides map[string][]string
	Exclude   []string
}

// TaskDefinition declares a task and binds it to a Go handler.
type TaskDefinition struct {
	Name        string
	Description string
	// Runtimes is the version matrix; empty means one run on the default
	// interpreter.
	Runtimes []string
	// Install lists targets installed while the task's own environment is
	// provisioned. It is skipped when the task runs inside a caller's
	// environment.
	Install []string
	// Calls lists the tasks this task may invoke as sub-steps.
	Calls []string
	OnRun string
}

// Task looks a task definition up by name.
func (m *Model) Task(name string) (*TaskDefinition, bool) {
	for _, t := range m.Tasks {
		if t.Name == name {
			return t, true
		}
	}
	return nil, false
}

// Validate checks the structural invariants of the model and reports every
// violation at once.
func (m *Model) Validate() error {
	var errs []string

	if m.Project == nil {
		errs = append(errs, "missing 'project' block")
	} else {
		errs = append(errs, m.validateLocations()...)
	}
	if m.Tools == nil {
		errs = append(errs, "missing 'tools' block")
	}
	if m.Lint == nil {
		errs = append(errs, "missing 'lint_rules' block")
	} else if m.Project != nil {
		for loc := range m.Lint.Overrides {
			if !slices.Contains(m.Project.SourceLocations, loc) {
				errs = append(errs, fmt.Sprintf("lint override for %q does not name a source location", loc))
			}
		}
		for _, loc := range m.Lint.Exclude {
			if !slices.Contains(m.Project.SourceLocations, loc) {
				errs = append(errs, fmt.Sprintf("lint exclusion %q does not name a source location", loc))
			}
		}
	}

	seen := make(map[string]bool)
	for _, t := range m.Tasks {
		if seen[t.Name] {
			errs = append(errs, fmt.Sprintf("task %q declared more than once", t.Name))
		}
		seen[t.Name] = true
		if t.OnRun == "" {
			errs = append(errs, fmt.Sprintf("task %q: missing on_run handler", t.Name))
		}
	}
	for _, t := range m.Tasks {
		for _, callee := range t.Calls {
			if _, ok := m.Task(callee); !ok {
				errs = append(errs, fmt.Sprintf("task %q calls undeclared task %q", t.Name, callee))
			}
		}
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func (m *Model) validateLocations() []string {
	if len(m.Project.SourceLocations) == 0 {
		return []string{"project.source_locations must not be empty"}
	}
	var errs []string
	seen := make(map[string]bool)
	for _, loc := range m.Project.SourceLocations {
		if seen[loc] {
			errs = append(errs, fmt.Sprintf("source location %q declared more than once", loc))
		}
		seen[loc] = true
	}
	return errs
}
