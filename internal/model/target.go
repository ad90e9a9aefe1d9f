package model

// GenerationTask describes one invocation of the binding generator.
//
// Source and Binding are treated as a single artifact: if either is missing
// or older than any input, both are regenerated.
type GenerationTask struct {
	Interface Path
	Source    Path
	Binding   Path
	Depends   []Path
	Cpp       bool
}

// Inputs returns the interface file followed by its dependencies.
func (t GenerationTask) Inputs() []Path {
	inputs := make([]Path, 0, len(t.Depends)+1)
	inputs = append(inputs, t.Interface)

	return append(inputs, t.Depends...)
}

// ModuleTarget is a buildable unit producing one loadable native module.
type ModuleTarget struct {
	Name               string   `yaml:"name"`
	Sources            []string `yaml:"sources"`
	IncludeDirs        []string `yaml:"include_dirs,omitempty"`
	LibraryDirs        []string `yaml:"library_dirs,omitempty"`
	RuntimeLibraryDirs []string `yaml:"runtime_library_dirs,omitempty"`
	Libraries          []string `yaml:"libraries,omitempty"`
	Depends            []string `yaml:"depends,omitempty"`
}

// Package is an installable pure-language package and its directory.
type Package struct {
	Name string `yaml:"name"`
	Dir  string `yaml:"dir"`
}

// Skip records an interface file excluded by the optional-dependency gate.
type Skip struct {
	Interface Path
	Reason    string
}

// GenerationStatus describes what happened to a generated pair.
type GenerationStatus int

const (
	// UpToDate means the generated files were newer than every input.
	UpToDate GenerationStatus = iota
	// Regenerated means the binding generator was run.
	Regenerated
	// Stale means regeneration is needed but was not run (dry run).
	Stale
)

func (s GenerationStatus) String() string {
	switch s {
	case Regenerated:
		return "regenerated"
	case Stale:
		return "stale"
	default:
		return "up to date"
	}
}
