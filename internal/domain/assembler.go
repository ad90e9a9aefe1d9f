package domain

import (
	"strings"

	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// TargetName returns the loadable module name for an interface file inside a
// package, e.g. "bar/_foo" for bar/foo.i.
func TargetName(pkg string, iface m.Path) string {
	return pkg + "/_" + strings.TrimSuffix(iface.Base(), ".i")
}

// ExtensionAssembler produces module target descriptors.
type ExtensionAssembler interface {
	// Assemble builds the target for a contrib interface that passed the gate.
	Assemble(mod m.Module, iface m.Path, admission Admission, cfg m.Config) m.ModuleTarget
	// CoreTarget builds the target of the core library.
	CoreTarget(tree m.SourceTree, cfg m.Config) m.ModuleTarget
	// AuxTarget builds the target of the auxiliary geometry library.
	AuxTarget(tree m.SourceTree, cfg m.Config) m.ModuleTarget
}

type extensionAssembler struct{}

// NewExtensionAssembler returns an ExtensionAssembler.
func NewExtensionAssembler() ExtensionAssembler {
	return &extensionAssembler{}
}

func (a *extensionAssembler) Assemble(mod m.Module, iface m.Path, admission Admission, cfg m.Config) m.ModuleTarget {
	glue, _ := GlueFiles(iface, mod.Language)

	target := m.ModuleTarget{
		Name:        TargetName(mod.Name, iface),
		Sources:     withGlue(mod.Sources, glue),
		IncludeDirs: []string{string(mod.Dir), cfg.PythonInclude},
		Depends:     toStrings(mod.Headers),
	}

	if admission.Required {
		target.IncludeDirs = append(target.IncludeDirs, cfg.GSL.IncludeDir())
		target.LibraryDirs = []string{cfg.GSL.LibDir()}
		target.RuntimeLibraryDirs = []string{cfg.GSL.LibDir()}
		target.Libraries = cfg.GSL.Libraries()
	}

	return target
}

func (a *extensionAssembler) CoreTarget(tree m.SourceTree, cfg m.Config) m.ModuleTarget {
	return m.ModuleTarget{
		Name:        cfg.Layout.CorePackage + "/" + cfg.Layout.CoreModule,
		Sources:     withGlue(tree.Core.Sources, cfg.Abs(cfg.Layout.CoreWrapSource)),
		IncludeDirs: []string{cfg.PythonInclude},
		Depends:     toStrings(tree.Core.Headers),
	}
}

func (a *extensionAssembler) AuxTarget(tree m.SourceTree, cfg m.Config) m.ModuleTarget {
	return m.ModuleTarget{
		Name:        cfg.Layout.AuxPackage + "/" + cfg.Layout.AuxModule,
		Sources:     withGlue(tree.Aux.Sources, cfg.Abs(cfg.Layout.AuxWrapSource)),
		IncludeDirs: []string{string(cfg.Abs(cfg.Layout.AuxDir)), cfg.PythonInclude},
		Depends:     toStrings(tree.Aux.Headers),
	}
}

// withGlue copies sources and appends glue unless it is already listed.
func withGlue(sources []m.Path, glue m.Path) []string {
	out := toStrings(sources)

	for _, src := range out {
		if src == string(glue) {
			return out
		}
	}

	return append(out, string(glue))
}

func toStrings(paths []m.Path) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, string(p))
	}

	return out
}
