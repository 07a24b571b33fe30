package hcl_adapter

// fileRoot is a struct used to decode all possible top-level blocks from any file.
type fileRoot struct {
	Projects []*ProjectBlock   `hcl:"project,block"`
	Tools    []*ToolsBlock     `hcl:"tools,block"`
	Lint     []*LintRulesBlock `hcl:"lint_rules,block"`
	Tasks    []*TaskBlock      `hcl:"task,block"`
}

// ProjectBlock represents the `project` block.
type ProjectBlock struct {
	SourceLocations []string   `hcl:"source_locations"`
	PackageDir      string     `hcl:"package_dir,optional"`
	DocsDir         string     `hcl:"docs_dir,optional"`
	DevRequirements string     `hcl:"dev_requirements,optional"`
	AsyncExtra      string     `hcl:"async_extra,optional"`
	DocsExtra       string     `hcl:"docs_extra,optional"`
	NetworkPackage  string     `hcl:"network_package,optional"`
	TypeExamples    *PairBlock `hcl:"type_examples,block"`
	Smoke           *PairBlock `hcl:"smoke,block"`
}

// PairBlock holds a synchronous and an asynchronous variant of one setting.
type PairBlock struct {
	Sync  string `hcl:"sync"`
	Async string `hcl:"async"`
}

// ToolsBlock represents the `tools` block. Every tool is an argv prefix.
type ToolsBlock struct {
	Interpreter    string   `hcl:"interpreter,optional"`
	ImportSorter   []string `hcl:"import_sorter,optional"`
	Formatter      []string `hcl:"formatter,optional"`
	StyleChecker   []string `hcl:"style_checker,optional"`
	Linter         []string `hcl:"linter,optional"`
	TypeChecker    []string `hcl:"type_checker,optional"`
	LicenseTool    []string `hcl:"license_tool,optional"`
	DocBuilder     []string `hcl:"doc_builder,optional"`
	Generator      []string `hcl:"generator,optional"`
	TestSuite      []string `hcl:"test_suite,optional"`
	FormatPackages []string `hcl:"format_packages,optional"`
	LintPackages   []string `hcl:"lint_packages,optional"`
}

// LintRulesBlock represents the `lint_rules` block.
type LintRulesBlock struct {
	MaxLineLength int              `hcl:"max_line_length,optional"`
	NamingPattern string           `hcl:"naming_pattern,optional"`
	Plugins       []string         `hcl:"plugins,optional"`
	DefaultEnable []string         `hcl:"default_enable"`
	Exclude       []string         `hcl:"exclude,optional"`
	Overrides     []*OverrideBlock `hcl:"override,block"`
}

// OverrideBlock replaces the enabled checks for one source location.
type OverrideBlock struct {
	Location string   `hcl:"location,label"`
	Enable   []string `hcl:"enable"`
}

// TaskBlock represents a `task` block.
type TaskBlock struct {
	Name        string   `hcl:"name,label"`
	Description string   `hcl:"description,optional"`
	Runtimes    []string `hcl:"runtimes,optional"`
	Install     []string `hcl:"install,optional"`
	Calls       []string `hcl:"calls,optional"`
	OnRun       string   `hcl:"on_run"`
}
