package domain

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// newProject lays out a small source distribution: the core library with its
// GSL sources, the healpix library, and three contrib directories of which
// only alpha and beta are buildable. beta needs GSL.
func newProject(t *testing.T) m.Config {
	t.Helper()

	root := t.TempDir()

	files := map[string]string{
		"lisasim/lisasim-lisa.cpp":    "/* $Id: lisasim-lisa.cpp,v 1.2 vallis $ */\n#include \"lisasim-lisa.h\"\n",
		"lisasim/lisasim-lisa.h":      "// $Id: lisasim-lisa.h,v 1.2 vallis $\n",
		"lisasim/lisasim-swig.i":      "%module lisaswig\n%include lisasim-typemaps.i\n",
		"lisasim/lisasim-typemaps.i":  "%typemap(in) double *;\n",
		"lisasim/synthlisa.py":        "# $Id: synthlisa.py,v 1.5 vallis $\n",
		"lisasim/GSL/rng.c":           "/* $Id: rng.c,v 1.1 $ */\n",
		"lisasim/GSL/rng.h":           "int rng(void);\n",
		"lisasim/healpix/healpix.cpp": "// healpix\n",
		"lisasim/healpix/healpix.h":   "// healpix header\n",
		"lisasim/healpix/healpix.i":   "%module healpix\n",
		"contrib/alpha/alpha.cpp":     "// $Id: alpha.cpp 7 $\n",
		"contrib/alpha/alpha.h":       "void alpha(void);\n",
		"contrib/alpha/mod.i":         "%module mod\n",
		"contrib/alpha/helpers.py":    "# $Id: helpers.py 3 $\n",
		"contrib/beta/beta.cpp":       "// beta\n",
		"contrib/beta/mod.i":          "%module mod\n/* requires GSL */\n",
		"contrib/docs/README":         "documentation only\n",
		"contrib/docs/notes.py":       "# not a module\n",
	}

	for rel, contents := range files {
		writeFile(t, root, rel, contents)
	}

	return m.Config{
		Root:          m.Path(root),
		Layout:        m.DefaultLayout(),
		Generator:     "swig",
		PythonInclude: "/usr/include/python3.12",
		Release:       "1.3.1",
		TargetsFile:   m.Path(filepath.Join(root, "build", "targets.yaml")),
	}
}

// stubGenerator writes both glue files for every interface it is asked to
// process, the way the binding generator does.
type stubGenerator struct {
	t        *testing.T
	bindings map[m.Path]m.Path
	fail     map[m.Path]bool
	calls    []m.Path
}

var errExit = errors.New("exit status 1")

func newStubGenerator(t *testing.T, cfg m.Config) *stubGenerator {
	t.Helper()

	return &stubGenerator{
		t: t,
		bindings: map[m.Path]m.Path{
			cfg.Abs(cfg.Layout.CoreInterface): cfg.Abs(cfg.Layout.CoreWrapBinding),
			cfg.Abs(cfg.Layout.AuxInterface):  cfg.Abs(cfg.Layout.AuxWrapBinding),
		},
		fail: map[m.Path]bool{},
	}
}

func (s *stubGenerator) Run(_ context.Context, _ string, args ...string) (string, error) {
	s.t.Helper()
	require.GreaterOrEqual(s.t, len(args), 3)

	iface := m.Path(args[len(args)-1])
	source := m.Path(args[len(args)-2])

	s.calls = append(s.calls, iface)

	if s.fail[iface] {
		return iface.Base() + ":1: Error: Syntax error in input(1).", errExit
	}

	binding, ok := s.bindings[iface]
	if !ok {
		binding = m.Path(strings.TrimSuffix(string(iface), ".i") + ".py")
	}

	writeFile(s.t, "/", string(source), "// generated\n")
	writeFile(s.t, "/", string(binding), "# generated\n")

	return "", nil
}

