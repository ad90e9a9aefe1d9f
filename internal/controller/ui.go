// Package controller provides output adapters for displaying build progress
// and the assembled target list.
package controller

import (
	"context"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// UI defines the interface for reporting an orchestration run.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	DisplayManifest(ctx context.Context, manifest m.VersionManifest)
	DisplayGeneration(ctx context.Context, iface m.Path, status m.GenerationStatus)
	DisplaySkip(ctx context.Context, skip m.Skip)
	DisplayPlan(ctx context.Context, plan m.BuildPlan) error
	DisplayDiff(ctx context.Context, diff string)
}

// NewUI returns a TUI when writing to a terminal and a SimpleUI otherwise.
func NewUI(cmd *cobra.Command, tty bool) UI {
	if tty {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY reports whether f is connected to a terminal.
func IsTTY(f *os.File) bool {
	if f == nil {
		return false
	}

	return term.IsTerminal(f.Fd())
}
