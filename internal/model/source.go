// Package model defines the data structures shared by the build orchestrator.
package model

import "path/filepath"

// Path represents a file system path.
type Path string

// Join appends path elements to p.
func (p Path) Join(elem ...string) Path {
	return Path(filepath.Join(append([]string{string(p)}, elem...)...))
}

// Base returns the last element of p.
func (p Path) Base() string {
	return filepath.Base(string(p))
}

// Dir returns all but the last element of p.
func (p Path) Dir() Path {
	return Path(filepath.Dir(string(p)))
}

// Language classifies the native sources of a module directory.
type Language int

const (
	// NonBuildable marks a directory without any compilable source. It
	// contributes no module.
	NonBuildable Language = iota
	// NativeC marks a directory compiled as plain C.
	NativeC
	// NativeCpp marks a directory with at least one C++ source.
	NativeCpp
)

func (l Language) String() string {
	switch l {
	case NativeC:
		return "c"
	case NativeCpp:
		return "c++"
	default:
		return "none"
	}
}

// Buildable reports whether the language yields a module.
func (l Language) Buildable() bool {
	return l == NativeC || l == NativeCpp
}

// Module is one discovered contrib package directory.
type Module struct {
	Name       string
	Dir        Path
	Language   Language
	Sources    []Path
	Headers    []Path
	Scripts    []Path
	Interfaces []Path
}

// Library groups the sources of one of the built-in libraries.
type Library struct {
	Sources []Path
	Headers []Path
	Scripts []Path
}

// SourceTree is the snapshot of project files taken once at startup. It is
// never modified after discovery.
type SourceTree struct {
	Root    Path
	Core    Library
	Aux     Library
	Modules []Module
}

// CatalogFiles returns the files scanned for revision tags in scan order. The
// core library comes first, then every module, each as sources followed by
// headers followed by scripts.
func (t SourceTree) CatalogFiles() []Path {
	var files []Path

	files = append(files, t.Core.Sources...)
	files = append(files, t.Core.Headers...)
	files = append(files, t.Core.Scripts...)

	for _, mod := range t.Modules {
		files = append(files, mod.Sources...)
		files = append(files, mod.Headers...)
		files = append(files, mod.Scripts...)
	}

	return files
}
