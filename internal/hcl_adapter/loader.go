package hcl_adapter

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/gridtask/internal/config"
	"github.com/specialistvlad/gridtask/internal/ctxlog"
)

//go:embed default.hcl
var defaultTaskfile []byte

// defaultTaskfileName is the synthetic filename used in diagnostics for the
// embedded taskfile.
const defaultTaskfileName = "<built-in>/default.hcl"

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL configuration loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses every taskfile reachable from paths and merges them into one
// model. Directories are searched recursively for *.hcl files. When nothing
// is found the embedded default taskfile is loaded instead.
func (l *Loader) Load(ctx context.Context, paths ...string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path_count", len(paths))

	hclFiles, err := l.findAllHCLFiles(paths)
	if err != nil {
		return nil, err
	}
	logger.Debug("Discovered HCL files.", "count", len(hclFiles))

	parser := hclparse.NewParser()
	var files []*hcl.File

	if len(hclFiles) == 0 {
		logger.Warn("No taskfile found, using the built-in default.", "paths", paths)
		file, diags := parser.ParseHCL(defaultTaskfile, defaultTaskfileName)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse built-in taskfile: %w", diags)
		}
		files = append(files, file)
		hclFiles = []string{defaultTaskfileName}
	} else {
		for _, path := range hclFiles {
			file, diags := parser.ParseHCLFile(path)
			if diags.HasErrors() {
				return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
			}
			files = append(files, file)
		}
	}

	evalCtx := newEvalContext()
	m := newMergedRoot()
	for i, file := range files {
		var root fileRoot
		if diags := gohcl.DecodeBody(file.Body, evalCtx, &root); diags.HasErrors() {
			return nil, fmt.Errorf("failed to decode HCL file %s: %w", hclFiles[i], diags)
		}
		if err := m.merge(hclFiles[i], &root); err != nil {
			return nil, err
		}
	}

	model, err := l.translate(ctx, m)
	if err != nil {
		return nil, err
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("HCL loading complete.", "files", len(files), "tasks", len(model.Tasks), "source_locations", len(model.Project.SourceLocations))
	return model, nil
}

// findAllHCLFiles walks all given paths and returns a flat list of all .hcl files found.
func (l *Loader) findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, wasSeen := seen[p]; !wasSeen {
			allFiles = append(allFiles, p)
			seen[p] = struct{}{}
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue // It's not an error if a configured path doesn't exist.
			}
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			if filepath.Ext(path) == ".hcl" {
				add(path)
			}
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(path), "**/*.hcl")
		if err != nil {
			return nil, fmt.Errorf("error searching %s: %w", path, err)
		}
		slices.Sort(matches)
		for _, match := range matches {
			add(filepath.Join(path, filepath.FromSlash(match)))
		}
	}
	return allFiles, nil
}

// mergedRoot accumulates blocks across files, remembering where the
// singleton blocks came from for error messages.
type mergedRoot struct {
	project     *ProjectBlock
	projectFile string
	tools       *ToolsBlock
	toolsFile   string
	lint        *LintRulesBlock
	lintFile    string
	tasks       []*TaskBlock
	taskOrigin  map[string]string
}

func newMergedRoot() *mergedRoot {
	return &mergedRoot{taskOrigin: make(map[string]string)}
}

func (m *mergedRoot) merge(file string, root *fileRoot) error {
	for _, p := range root.Projects {
		if m.project != nil {
			return duplicateBlock("project", file, m.projectFile)
		}
		m.project, m.projectFile = p, file
	}
	for _, t := range root.Tools {
		if m.tools != nil {
			return duplicateBlock("tools", file, m.toolsFile)
		}
		m.tools, m.toolsFile = t, file
	}
	for _, lr := range root.Lint {
		if m.lint != nil {
			return duplicateBlock("lint_rules", file, m.lintFile)
		}
		m.lint, m.lintFile = lr, file
	}
	for _, t := range root.Tasks {
		if first, ok := m.taskOrigin[t.Name]; ok {
			return fmt.Errorf("duplicate task %q in %s (first declared in %s)", t.Name, file, first)
		}
		m.taskOrigin[t.Name] = file
		m.tasks = append(m.tasks, t)
	}
	return nil
}

func duplicateBlock(kind, file, first string) error {
	return fmt.Errorf("duplicate '%s' block in %s (first declared in %s)", kind, file, first)
}
