package model

import "path/filepath"

// Layout holds the project-relative locations of the built-in libraries and
// their generated files.
type Layout struct {
	CoreDir         string
	CoreGSLDir      string
	AuxDir          string
	ContribDir      string
	VersionFile     string
	CoreInterface   string
	CoreTypemaps    string
	CoreWrapSource  string
	CoreWrapBinding string
	CoreWrapHeader  string
	AuxInterface    string
	AuxWrapSource   string
	AuxWrapBinding  string
	CorePackage     string
	CoreModule      string
	AuxPackage      string
	AuxModule       string
}

// DefaultLayout is the layout of the synthLISA source distribution.
func DefaultLayout() Layout {
	return Layout{
		CoreDir:         "lisasim",
		CoreGSLDir:      "lisasim/GSL",
		AuxDir:          "lisasim/healpix",
		ContribDir:      "contrib",
		VersionFile:     "lisasim/version.py",
		CoreInterface:   "lisasim/lisasim-swig.i",
		CoreTypemaps:    "lisasim/lisasim-typemaps.i",
		CoreWrapSource:  "lisasim/lisasim-swig_wrap.cpp",
		CoreWrapBinding: "lisasim/lisaswig.py",
		CoreWrapHeader:  "lisasim/lisasim-swig_wrap.h",
		AuxInterface:    "lisasim/healpix/healpix.i",
		AuxWrapSource:   "lisasim/healpix/healpix_wrap.cpp",
		AuxWrapBinding:  "lisasim/healpix/healpix.py",
		CorePackage:     "synthlisa",
		CoreModule:      "_lisaswig",
		AuxPackage:      "healpix",
		AuxModule:       "_healpix",
	}
}

// OptionalLibraryConfig locates the optional GSL installation.
type OptionalLibraryConfig struct {
	Prefix string
}

// Configured reports whether an installation prefix was supplied.
func (c OptionalLibraryConfig) Configured() bool {
	return c.Prefix != ""
}

// IncludeDir returns the header directory of the installation.
func (c OptionalLibraryConfig) IncludeDir() string {
	return filepath.Join(c.Prefix, "include")
}

// LibDir returns the library directory of the installation.
func (c OptionalLibraryConfig) LibDir() string {
	return filepath.Join(c.Prefix, "lib")
}

// Libraries returns the libraries linked by modules requiring GSL.
func (c OptionalLibraryConfig) Libraries() []string {
	return []string{"gsl", "gslcblas"}
}

// Config is the immutable configuration threaded through every component.
type Config struct {
	Root          Path
	Layout        Layout
	Generator     string
	PythonInclude string
	GSL           OptionalLibraryConfig
	Release       string
	TargetsFile   Path
}

// Abs resolves a layout-relative path against the project root.
func (c Config) Abs(rel string) Path {
	return c.Root.Join(rel)
}
