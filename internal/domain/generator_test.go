package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	adaptermocks "synthlisa.dev/pkg/lisabuild/internal/adapter/mocks"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

func TestGeneratorArgs(t *testing.T) {
	task := m.GenerationTask{Interface: "contrib/alpha/mod.i", Source: "contrib/alpha/mod_wrap.cpp", Cpp: true}
	assert.Equal(t, []string{"-w402", "-c++", "-python", "-o", "contrib/alpha/mod_wrap.cpp", "contrib/alpha/mod.i"}, GeneratorArgs(task))

	task = m.GenerationTask{Interface: "contrib/gamma/mod.i", Source: "contrib/gamma/mod_wrap.c"}
	assert.Equal(t, []string{"-w402", "-python", "-o", "contrib/gamma/mod_wrap.c", "contrib/gamma/mod.i"}, GeneratorArgs(task))
}

type generatorFixture struct {
	task m.GenerationTask
	base time.Time
}

// newGeneratorFixture writes an interface file and one dependency, both dated
// at base.
func newGeneratorFixture(t *testing.T) generatorFixture {
	t.Helper()

	root := t.TempDir()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	iface := writeFile(t, root, "mod.i", "%module mod\n")
	header := writeFile(t, root, "mod.h", "void f(void);\n")
	setMTime(t, iface, base)
	setMTime(t, header, base)

	return generatorFixture{
		task: m.GenerationTask{
			Interface: iface,
			Source:    m.Path(filepath.Join(root, "mod_wrap.cpp")),
			Binding:   m.Path(filepath.Join(root, "mod.py")),
			Depends:   []m.Path{header},
			Cpp:       true,
		},
		base: base,
	}
}

func (f generatorFixture) writeOutputs(t *testing.T, at time.Time) {
	t.Helper()

	for _, out := range []m.Path{f.task.Source, f.task.Binding} {
		require.NoError(t, os.WriteFile(string(out), []byte("generated\n"), 0o644))
		setMTime(t, out, at)
	}
}

func setMTime(t *testing.T, path m.Path, at time.Time) {
	t.Helper()
	require.NoError(t, os.Chtimes(string(path), at, at))
}

func TestStaleCodeGenerator_IsStale(t *testing.T) {
	ctx := context.Background()
	fs := adapter.NewLocalSourceFSAdapter()

	t.Run("missing outputs", func(t *testing.T) {
		f := newGeneratorFixture(t)
		gen := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t))

		stale, err := gen.IsStale(ctx, f.task)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("only binding missing", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.writeOutputs(t, f.base.Add(time.Minute))
		require.NoError(t, os.Remove(string(f.task.Binding)))

		stale, err := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t)).IsStale(ctx, f.task)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("outputs newer than inputs", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.writeOutputs(t, f.base.Add(time.Minute))

		stale, err := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t)).IsStale(ctx, f.task)
		require.NoError(t, err)
		assert.False(t, stale)
	})

	t.Run("equal timestamps are up to date", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.writeOutputs(t, f.base)

		stale, err := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t)).IsStale(ctx, f.task)
		require.NoError(t, err)
		assert.False(t, stale)
	})

	t.Run("dependency touched", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.writeOutputs(t, f.base.Add(time.Minute))
		setMTime(t, f.task.Depends[0], f.base.Add(2*time.Minute))

		stale, err := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t)).IsStale(ctx, f.task)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("older output governs", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.writeOutputs(t, f.base.Add(3*time.Minute))
		setMTime(t, f.task.Binding, f.base.Add(-time.Minute))

		stale, err := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t)).IsStale(ctx, f.task)
		require.NoError(t, err)
		assert.True(t, stale)
	})

	t.Run("missing dependency is fatal", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.writeOutputs(t, f.base.Add(time.Minute))
		f.task.Depends = append(f.task.Depends, f.task.Interface.Dir().Join("gone.h"))

		_, err := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t)).IsStale(ctx, f.task)
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestStaleCodeGenerator_EnsureGenerated(t *testing.T) {
	ctx := context.Background()
	fs := adapter.NewLocalSourceFSAdapter()

	expectRun := func(runner *adaptermocks.MockGeneratorAdapter, task m.GenerationTask) *adaptermocks.MockGeneratorAdapter_Run_Call {
		return runner.EXPECT().Run(mock.Anything, "swig",
			"-w402", "-c++", "-python", "-o", string(task.Source), string(task.Interface))
	}

	t.Run("regenerates then idles", func(t *testing.T) {
		f := newGeneratorFixture(t)
		runner := adaptermocks.NewMockGeneratorAdapter(t)
		expectRun(runner, f.task).RunAndReturn(func(context.Context, string, ...string) (string, error) {
			f.writeOutputs(t, f.base.Add(time.Minute))
			return "", nil
		}).Once()

		gen := NewStaleCodeGenerator(fs, runner)

		regenerated, err := gen.EnsureGenerated(ctx, "swig", f.task)
		require.NoError(t, err)
		assert.True(t, regenerated)

		regenerated, err = gen.EnsureGenerated(ctx, "swig", f.task)
		require.NoError(t, err)
		assert.False(t, regenerated, "second run must not invoke the generator")
	})

	t.Run("up to date pair is left alone", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.writeOutputs(t, f.base.Add(time.Minute))

		regenerated, err := NewStaleCodeGenerator(fs, adaptermocks.NewMockGeneratorAdapter(t)).EnsureGenerated(ctx, "swig", f.task)
		require.NoError(t, err)
		assert.False(t, regenerated)
	})

	t.Run("c mode omits c++ flag", func(t *testing.T) {
		f := newGeneratorFixture(t)
		f.task.Cpp = false
		f.task.Source = f.task.Interface.Dir().Join("mod_wrap.c")

		runner := adaptermocks.NewMockGeneratorAdapter(t)
		runner.EXPECT().Run(mock.Anything, "swig",
			"-w402", "-python", "-o", string(f.task.Source), string(f.task.Interface)).
			RunAndReturn(func(context.Context, string, ...string) (string, error) {
				f.writeOutputs(t, f.base.Add(time.Minute))
				return "", nil
			}).Once()

		regenerated, err := NewStaleCodeGenerator(fs, runner).EnsureGenerated(ctx, "swig", f.task)
		require.NoError(t, err)
		assert.True(t, regenerated)
	})

	t.Run("generator failure", func(t *testing.T) {
		f := newGeneratorFixture(t)
		runner := adaptermocks.NewMockGeneratorAdapter(t)
		expectRun(runner, f.task).Return("mod.i:3: Error: Syntax error", errors.New("exit status 1")).Once()

		regenerated, err := NewStaleCodeGenerator(fs, runner).EnsureGenerated(ctx, "swig", f.task)
		require.Error(t, err)
		assert.False(t, regenerated)
		assert.Contains(t, err.Error(), "unable to generate bindings for "+string(f.task.Interface))
		assert.Contains(t, err.Error(), "Syntax error")
	})

	t.Run("generator writes only one file", func(t *testing.T) {
		f := newGeneratorFixture(t)
		runner := adaptermocks.NewMockGeneratorAdapter(t)
		expectRun(runner, f.task).RunAndReturn(func(context.Context, string, ...string) (string, error) {
			require.NoError(t, os.WriteFile(string(f.task.Source), []byte("generated\n"), 0o644))
			return "", nil
		}).Once()

		_, err := NewStaleCodeGenerator(fs, runner).EnsureGenerated(ctx, "swig", f.task)
		require.Error(t, err)
		assert.Contains(t, err.Error(), string(f.task.Binding))
	})
}
