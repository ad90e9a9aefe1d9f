package domain

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

var (
	cppSourcePatterns = []string{"*.cpp", "*.cc"}
	cSourcePatterns   = []string{"*.c"}
	headerPatterns    = []string{"*.h", "*.hh"}
	scriptPatterns    = []string{"*.py"}
	interfacePattern  = "*.i"
)

// Classify returns the language of a directory from its hand-written source
// files. Any C++ source wins over plain C.
func Classify(sources []m.Path) m.Language {
	lang := m.NonBuildable

	for _, src := range sources {
		switch filepath.Ext(string(src)) {
		case ".cpp", ".cc":
			return m.NativeCpp
		case ".c":
			lang = m.NativeC
		}
	}

	return lang
}

// GlueFiles returns the generated source and binding files for an interface
// file compiled as lang.
func GlueFiles(iface m.Path, lang m.Language) (source, binding m.Path) {
	base := strings.TrimSuffix(string(iface), ".i")

	ext := ".cpp"
	if lang == m.NativeC {
		ext = ".c"
	}

	return m.Path(base + "_wrap" + ext), m.Path(base + ".py")
}

// ModuleDiscoverer snapshots the project source tree.
type ModuleDiscoverer interface {
	// Discover classifies every immediate subdirectory of root. Directories
	// without compilable sources are left out.
	Discover(ctx context.Context, root m.Path) ([]m.Module, error)
	// Scan builds the complete SourceTree for cfg.
	Scan(ctx context.Context, cfg m.Config) (m.SourceTree, error)
}

type moduleDiscoverer struct {
	fs adapter.SourceFSAdapter
}

// NewModuleDiscoverer returns a ModuleDiscoverer listing files through fs.
func NewModuleDiscoverer(fs adapter.SourceFSAdapter) ModuleDiscoverer {
	return &moduleDiscoverer{fs: fs}
}

func (d *moduleDiscoverer) Discover(ctx context.Context, root m.Path) ([]m.Module, error) {
	dirs, err := d.fs.ListDirs(ctx, root)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", root, err)
	}

	modules := make([]m.Module, 0, len(dirs))

	for _, dir := range dirs {
		mod, err := d.inspect(ctx, dir)
		if err != nil {
			return nil, err
		}

		if !mod.Language.Buildable() {
			slog.Debug("Skipping non-buildable directory", "dir", dir)
			continue
		}

		modules = append(modules, mod)
	}

	return modules, nil
}

func (d *moduleDiscoverer) inspect(ctx context.Context, dir m.Path) (m.Module, error) {
	mod := m.Module{Name: dir.Base(), Dir: dir}

	ifaces, err := d.fs.Glob(ctx, dir, interfacePattern)
	if err != nil {
		return mod, fmt.Errorf("list %s: %w", dir, err)
	}

	mod.Interfaces = ifaces

	glue := make(map[m.Path]bool, 2*len(ifaces))
	for _, iface := range ifaces {
		cppGlue, _ := GlueFiles(iface, m.NativeCpp)
		cGlue, _ := GlueFiles(iface, m.NativeC)
		glue[cppGlue] = true
		glue[cGlue] = true
	}

	cppSources, err := d.globAll(ctx, dir, cppSourcePatterns, glue)
	if err != nil {
		return mod, err
	}

	cSources, err := d.globAll(ctx, dir, cSourcePatterns, glue)
	if err != nil {
		return mod, err
	}

	mod.Language = Classify(append(append([]m.Path{}, cppSources...), cSources...))

	switch mod.Language {
	case m.NativeCpp:
		mod.Sources = cppSources
	case m.NativeC:
		mod.Sources = cSources
	default:
		return mod, nil
	}

	if mod.Headers, err = d.globAll(ctx, dir, headerPatterns, nil); err != nil {
		return mod, err
	}

	if mod.Scripts, err = d.globAll(ctx, dir, scriptPatterns, bindingSet(ifaces)); err != nil {
		return mod, err
	}

	return mod, nil
}

func (d *moduleDiscoverer) Scan(ctx context.Context, cfg m.Config) (m.SourceTree, error) {
	layout := cfg.Layout
	tree := m.SourceTree{Root: cfg.Root}

	coreDir := cfg.Abs(layout.CoreDir)
	gslDir := cfg.Abs(layout.CoreGSLDir)
	auxDir := cfg.Abs(layout.AuxDir)

	coreGenerated := map[m.Path]bool{
		cfg.Abs(layout.CoreWrapSource):  true,
		cfg.Abs(layout.CoreWrapBinding): true,
		cfg.Abs(layout.CoreWrapHeader):  true,
		cfg.Abs(layout.VersionFile):     true,
	}

	var err error

	steps := []struct {
		dest     *[]m.Path
		dir      m.Path
		patterns []string
		exclude  map[m.Path]bool
	}{
		{&tree.Core.Sources, coreDir, []string{"*.cpp"}, coreGenerated},
		{&tree.Core.Sources, gslDir, cSourcePatterns, nil},
		{&tree.Core.Headers, coreDir, []string{"*.h"}, coreGenerated},
		{&tree.Core.Headers, gslDir, []string{"*.h"}, nil},
		{&tree.Core.Scripts, coreDir, scriptPatterns, coreGenerated},
		{&tree.Aux.Sources, auxDir, []string{"*.cpp"}, map[m.Path]bool{cfg.Abs(layout.AuxWrapSource): true}},
		{&tree.Aux.Headers, auxDir, []string{"*.h"}, nil},
	}

	for _, step := range steps {
		found, err := d.globAll(ctx, step.dir, step.patterns, step.exclude)
		if err != nil {
			return tree, err
		}

		*step.dest = append(*step.dest, found...)
	}

	tree.Modules, err = d.Discover(ctx, cfg.Abs(layout.ContribDir))
	if err != nil {
		return tree, err
	}

	slog.Debug("Scanned source tree",
		"coreSources", len(tree.Core.Sources),
		"auxSources", len(tree.Aux.Sources),
		"modules", len(tree.Modules))

	return tree, nil
}

// globAll concatenates the matches of every pattern in order, leaving out
// excluded paths.
func (d *moduleDiscoverer) globAll(ctx context.Context, dir m.Path, patterns []string, exclude map[m.Path]bool) ([]m.Path, error) {
	var out []m.Path

	for _, pattern := range patterns {
		matches, err := d.fs.Glob(ctx, dir, pattern)
		if err != nil {
			return nil, fmt.Errorf("list %s/%s: %w", dir, pattern, err)
		}

		for _, match := range matches {
			if !exclude[match] {
				out = append(out, match)
			}
		}
	}

	return out, nil
}

func bindingSet(ifaces []m.Path) map[m.Path]bool {
	set := make(map[m.Path]bool, len(ifaces))
	for _, iface := range ifaces {
		_, binding := GlueFiles(iface, m.NativeCpp)
		set[binding] = true
	}

	return set
}
