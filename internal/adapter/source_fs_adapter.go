// Package adapter contains the filesystem and subprocess adapters used by the
// build orchestrator.
package adapter

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// SourceFSAdapter abstracts filesystem-specific operations that the domain layer
// relies on when scanning the source tree. It hides direct `os` access so the
// discovery and staleness logic can be tested against synthetic trees.
//
//nolint:interfacebloat // A richer interface keeps workflow logic decoupled from os/fs.
type SourceFSAdapter interface {
	// Glob returns the files directly inside dir whose base name matches
	// pattern, sorted lexicographically. Directories are never returned.
	Glob(ctx context.Context, dir m.Path, pattern string) ([]m.Path, error)

	// ListDirs returns the immediate subdirectories of root, sorted. A missing
	// root yields no directories and no error.
	ListDirs(ctx context.Context, root m.Path) ([]m.Path, error)

	// ReadLines returns at most limit lines of the file. A limit <= 0 reads
	// the whole file.
	ReadLines(ctx context.Context, path m.Path, limit int) ([]string, error)

	// ReadFile loads a file from disk and returns its contents.
	ReadFile(ctx context.Context, path m.Path) ([]byte, error)

	// ModTime returns the modification time of path. A missing path reports
	// an error wrapping fs.ErrNotExist.
	ModTime(ctx context.Context, path m.Path) (time.Time, error)

	// Exists reports whether path exists.
	Exists(ctx context.Context, path m.Path) (bool, error)

	// WriteFile writes content to a file, creating parent directories.
	WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error
}

// LocalSourceFSAdapter is the os-backed SourceFSAdapter.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter instance ready to
// be wired into the workflow.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Glob lists regular files in dir matching pattern.
func (a *LocalSourceFSAdapter) Glob(ctx context.Context, dir m.Path, pattern string) ([]m.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
	}

	entries, err := os.ReadDir(string(dir))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var matches []m.Path

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		if ok, _ := filepath.Match(pattern, entry.Name()); ok {
			matches = append(matches, dir.Join(entry.Name()))
		}
	}

	sortPaths(matches)

	return matches, nil
}

// ListDirs lists the immediate subdirectories of root.
func (a *LocalSourceFSAdapter) ListDirs(ctx context.Context, root m.Path) ([]m.Path, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(string(root))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}

		return nil, err
	}

	var dirs []m.Path

	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, root.Join(entry.Name()))
		}
	}

	sortPaths(dirs)

	return dirs, nil
}

// ReadLines reads up to limit lines from path.
func (a *LocalSourceFSAdapter) ReadLines(ctx context.Context, path m.Path, limit int) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G304 - path comes from the project source tree
	f, err := os.Open(string(path))
	if err != nil {
		return nil, err
	}

	defer func() {
		_ = f.Close()
	}()

	var lines []string

	// Lines are unbounded: an interface file may carry arbitrarily long lines.
	reader := bufio.NewReader(f)

	for limit <= 0 || len(lines) < limit {
		line, err := reader.ReadString('\n')
		if line != "" {
			line = strings.TrimSuffix(line, "\n")
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}

		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}
	}

	return lines, nil
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(ctx context.Context, path m.Path) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return os.ReadFile(string(path))
}

// ModTime returns the modification time of path.
func (a *LocalSourceFSAdapter) ModTime(ctx context.Context, path m.Path) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(string(path))
	if err != nil {
		return time.Time{}, err
	}

	return info.ModTime(), nil
}

// Exists reports whether path exists.
func (a *LocalSourceFSAdapter) Exists(ctx context.Context, path m.Path) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	_, err := os.Stat(string(path))
	if err == nil {
		return true, nil
	}

	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	return false, err
}

// WriteFile writes content to a file with the given permissions.
func (a *LocalSourceFSAdapter) WriteFile(ctx context.Context, path m.Path, content []byte, perm os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(string(path)), 0o750); err != nil {
		return err
	}

	return os.WriteFile(string(path), content, perm)
}

func sortPaths(paths []m.Path) {
	sort.Slice(paths, func(i, j int) bool {
		return paths[i] < paths[j]
	})
}
