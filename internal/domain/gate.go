package domain

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// OptionalLibMarker is the phrase an interface file carries when its module
// links against GSL.
const OptionalLibMarker = "requires GSL"

// RequiresOptionalLib reports whether any line carries OptionalLibMarker.
func RequiresOptionalLib(lines []string) bool {
	for _, line := range lines {
		if strings.Contains(line, OptionalLibMarker) {
			return true
		}
	}

	return false
}

// Admission is the gate's verdict for one interface file.
type Admission struct {
	// Required is true when the interface file needs the optional library.
	Required bool
	// Skip is set when the module must not be built.
	Skip *m.Skip
}

// OptionalDependencyGate decides whether an interface file's module can be built
// with the configured optional library.
type OptionalDependencyGate interface {
	Admit(ctx context.Context, iface m.Path, lib m.OptionalLibraryConfig) (Admission, error)
}

type optionalDependencyGate struct {
	fs adapter.SourceFSAdapter
}

// NewOptionalDependencyGate returns a gate reading interface files through fs.
func NewOptionalDependencyGate(fs adapter.SourceFSAdapter) OptionalDependencyGate {
	return &optionalDependencyGate{fs: fs}
}

func (g *optionalDependencyGate) Admit(ctx context.Context, iface m.Path, lib m.OptionalLibraryConfig) (Admission, error) {
	lines, err := g.fs.ReadLines(ctx, iface, 0)
	if err != nil {
		slog.Error("Failed to read interface file", "path", iface, "error", err)
		return Admission{}, fmt.Errorf("read interface file %s: %w", iface, err)
	}

	required := RequiresOptionalLib(lines)
	if required && !lib.Configured() {
		slog.Info("No GSL, skipping interface file", "path", iface)

		return Admission{
			Required: true,
			Skip:     &m.Skip{Interface: iface, Reason: "GSL not configured"},
		}, nil
	}

	return Admission{Required: required}, nil
}
