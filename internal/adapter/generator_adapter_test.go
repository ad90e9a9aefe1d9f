package adapter

import (
	"context"
	"errors"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// These tests drive LocalGeneratorAdapter with small shell scripts standing in
// for the binding generator.

func fakeTool(t *testing.T, body string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}

	path := filepath.Join(t.TempDir(), "fake-tool")
	writeTestFile(t, path, "#!/bin/sh\n"+body+"\n")
	if err := exec.Command("chmod", "755", path).Run(); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}

	return path
}

func TestLocalGeneratorAdapter_Run_Success(t *testing.T) {
	tool := fakeTool(t, `echo "args: $*"; echo "warn" >&2`)
	adapter := NewLocalGeneratorAdapter("")

	out, err := adapter.Run(context.Background(), tool, "-w402", "-python")
	if err != nil {
		t.Fatalf("Run() error = %v, output = %s", err, out)
	}

	if !strings.Contains(out, "args: -w402 -python") {
		t.Fatalf("Run() output = %q, want echoed args", out)
	}

	if !strings.Contains(out, "warn") {
		t.Fatalf("Run() output = %q, want stderr captured", out)
	}
}

func TestLocalGeneratorAdapter_Run_WorkDir(t *testing.T) {
	tool := fakeTool(t, `pwd`)
	dir := t.TempDir()
	adapter := NewLocalGeneratorAdapter(dir)

	out, err := adapter.Run(context.Background(), tool)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	resolved, _ := filepath.EvalSymlinks(dir)
	got, _ := filepath.EvalSymlinks(strings.TrimSpace(out))
	if got != resolved {
		t.Fatalf("Run() ran in %q, want %q", got, resolved)
	}
}

func TestLocalGeneratorAdapter_Run_Failure(t *testing.T) {
	tool := fakeTool(t, `echo "syntax error in input" >&2; exit 3`)
	adapter := NewLocalGeneratorAdapter("")

	out, err := adapter.Run(context.Background(), tool)
	if err == nil {
		t.Fatalf("Run() expected error for non-zero exit")
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) || exitErr.ExitCode() != 3 {
		t.Fatalf("Run() error = %v, want exit status 3", err)
	}

	if !strings.Contains(out, "syntax error") {
		t.Fatalf("Run() output = %q, want diagnostic output", out)
	}
}

func TestLocalGeneratorAdapter_Run_MissingBinary(t *testing.T) {
	adapter := NewLocalGeneratorAdapter("")

	_, err := adapter.Run(context.Background(), filepath.Join(t.TempDir(), "no-such-swig"))
	if err == nil {
		t.Fatalf("Run() expected error for missing binary")
	}
}

func TestPythonIncludeDir(t *testing.T) {
	tool := fakeTool(t, `echo "  /opt/python/include/python3.12  "`)

	got, err := PythonIncludeDir(context.Background(), NewLocalGeneratorAdapter(""), tool)
	if err != nil {
		t.Fatalf("PythonIncludeDir() error = %v", err)
	}

	if got != "/opt/python/include/python3.12" {
		t.Fatalf("PythonIncludeDir() = %q", got)
	}
}
