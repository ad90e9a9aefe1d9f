package model

// VersionManifest is the consolidated revision record of the project.
type VersionManifest struct {
	Full  string `yaml:"full"`
	Short string `yaml:"short"`
}

// BuildPlan is the complete result of an orchestration run, handed to the
// compile and packaging stage.
type BuildPlan struct {
	Manifest VersionManifest `yaml:"manifest"`
	Packages []Package       `yaml:"packages"`
	Targets  []ModuleTarget  `yaml:"targets"`
	Skips    []Skip          `yaml:"-"`
}

// PackageNames returns the names of the registered packages in order.
func (p BuildPlan) PackageNames() []string {
	names := make([]string, 0, len(p.Packages))
	for _, pkg := range p.Packages {
		names = append(names, pkg.Name)
	}

	return names
}

// TargetNames returns the names of the assembled targets in order.
func (p BuildPlan) TargetNames() []string {
	names := make([]string, 0, len(p.Targets))
	for _, target := range p.Targets {
		names = append(names, target.Name)
	}

	return names
}
