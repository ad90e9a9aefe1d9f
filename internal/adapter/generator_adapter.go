package adapter

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// GeneratorAdapter abstracts execution of the external binding generator and
// other build-time tools.
type GeneratorAdapter interface {
	// Run executes bin with args and waits for it to exit. It returns the
	// combined stdout/stderr output and any launch or exit error.
	Run(ctx context.Context, bin string, args ...string) (output string, err error)
}

// LocalGeneratorAdapter provides a concrete implementation using os/exec.
// It imposes no timeout: a hung tool hangs the build.
type LocalGeneratorAdapter struct {
	dir string
}

// NewLocalGeneratorAdapter constructs a LocalGeneratorAdapter running tools
// in dir (the current directory when empty).
func NewLocalGeneratorAdapter(dir string) *LocalGeneratorAdapter {
	return &LocalGeneratorAdapter{dir: dir}
}

// Run executes the tool and captures its output.
func (a *LocalGeneratorAdapter) Run(ctx context.Context, bin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Dir = a.dir

	var stdout, stderr bytes.Buffer

	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	output := stdout.String() + stderr.String()

	return output, err
}

// PythonIncludeDir asks the interpreter for its C header directory.
func PythonIncludeDir(ctx context.Context, runner GeneratorAdapter, python string) (string, error) {
	out, err := runner.Run(ctx, python, "-c", "import sysconfig; print(sysconfig.get_paths()['include'])")
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(out), nil
}
