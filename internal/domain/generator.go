package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// GeneratorArgs returns the binding generator command line for task.
func GeneratorArgs(task m.GenerationTask) []string {
	args := []string{"-w402"}
	if task.Cpp {
		args = append(args, "-c++")
	}

	return append(args, "-python", "-o", string(task.Source), string(task.Interface))
}

// StaleCodeGenerator regenerates glue code whose inputs changed.
type StaleCodeGenerator interface {
	// IsStale reports whether task's generated pair must be regenerated.
	IsStale(ctx context.Context, task m.GenerationTask) (bool, error)
	// EnsureGenerated runs the generator when IsStale holds and reports
	// whether it did.
	EnsureGenerated(ctx context.Context, generator string, task m.GenerationTask) (bool, error)
}

type staleCodeGenerator struct {
	fs     adapter.SourceFSAdapter
	runner adapter.GeneratorAdapter
}

// NewStaleCodeGenerator returns a StaleCodeGenerator backed by fs and runner.
func NewStaleCodeGenerator(fs adapter.SourceFSAdapter, runner adapter.GeneratorAdapter) StaleCodeGenerator {
	return &staleCodeGenerator{fs: fs, runner: runner}
}

func (g *staleCodeGenerator) IsStale(ctx context.Context, task m.GenerationTask) (bool, error) {
	oldest, missing, err := g.oldestOutput(ctx, task)
	if err != nil {
		return false, err
	}

	if missing {
		return true, nil
	}

	for _, input := range task.Inputs() {
		modTime, err := g.fs.ModTime(ctx, input)
		if err != nil {
			slog.Error("Failed to stat generator input", "path", input, "error", err)
			return false, fmt.Errorf("stat %s: %w", input, err)
		}

		if modTime.After(oldest) {
			slog.Debug("Generated file out of date", "interface", task.Interface, "newer", input)
			return true, nil
		}
	}

	return false, nil
}

// oldestOutput returns the older modification time of the generated pair, or
// missing when either file does not exist.
func (g *staleCodeGenerator) oldestOutput(ctx context.Context, task m.GenerationTask) (time.Time, bool, error) {
	var oldest time.Time

	for _, output := range []m.Path{task.Source, task.Binding} {
		exists, err := g.fs.Exists(ctx, output)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("stat %s: %w", output, err)
		}

		if !exists {
			slog.Debug("Generated file missing", "path", output)
			return time.Time{}, true, nil
		}

		modTime, err := g.fs.ModTime(ctx, output)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("stat %s: %w", output, err)
		}

		if oldest.IsZero() || modTime.Before(oldest) {
			oldest = modTime
		}
	}

	return oldest, false, nil
}

func (g *staleCodeGenerator) EnsureGenerated(ctx context.Context, generator string, task m.GenerationTask) (bool, error) {
	stale, err := g.IsStale(ctx, task)
	if err != nil {
		return false, err
	}

	if !stale {
		return false, nil
	}

	args := GeneratorArgs(task)
	slog.Info("Running binding generator", "generator", generator, "args", strings.Join(args, " "))

	output, err := g.runner.Run(ctx, generator, args...)
	if err != nil {
		slog.Error("Binding generator failed", "interface", task.Interface, "error", err, "output", output)
		return false, fmt.Errorf("unable to generate bindings for %s: %w\n%s", task.Interface, err, output)
	}

	for _, produced := range []m.Path{task.Source, task.Binding} {
		exists, err := g.fs.Exists(ctx, produced)
		if err != nil {
			return false, fmt.Errorf("stat %s: %w", produced, err)
		}

		if !exists {
			slog.Error("Binding generator did not produce file", "interface", task.Interface, "path", produced)
			return false, fmt.Errorf("unable to generate bindings for %s: %s was not written", task.Interface, produced)
		}
	}

	return true, nil
}
