// Package domain implements the build orchestration logic: version catalog
// extraction, staleness-driven glue generation, contrib discovery, optional
// dependency gating and module target assembly.
package domain

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// TagScanLines is the number of leading lines searched for a revision tag.
const TagScanLines = 5

var revisionTag = regexp.MustCompile(`^.*\$(Id.*)\$.*$`)

// ExtractTag returns the payload of the first revision tag among the first
// TagScanLines lines.
func ExtractTag(lines []string) (string, bool) {
	for i, line := range lines {
		if i >= TagScanLines {
			break
		}

		if match := revisionTag.FindStringSubmatch(line); match != nil {
			return match[1], true
		}
	}

	return "", false
}

// CatalogExtractor builds the version manifest from per-file revision tags.
type CatalogExtractor interface {
	Extract(ctx context.Context, files []m.Path, release string) (m.VersionManifest, error)
}

type catalogExtractor struct {
	fs adapter.SourceFSAdapter
}

// NewCatalogExtractor returns a CatalogExtractor reading through fs.
func NewCatalogExtractor(fs adapter.SourceFSAdapter) CatalogExtractor {
	return &catalogExtractor{fs: fs}
}

// Extract scans files in order. Any unreadable file aborts the extraction.
func (c *catalogExtractor) Extract(ctx context.Context, files []m.Path, release string) (m.VersionManifest, error) {
	tags := make([]string, 0, len(files))

	for _, file := range files {
		lines, err := c.fs.ReadLines(ctx, file, TagScanLines)
		if err != nil {
			slog.Error("Failed to read version-tagged file", "path", file, "error", err)
			return m.VersionManifest{}, fmt.Errorf("read revision tag from %s: %w", file, err)
		}

		if tag, ok := ExtractTag(lines); ok {
			tags = append(tags, tag)
		}
	}

	slog.Debug("Extracted version catalog", "files", len(files), "tags", len(tags))

	return m.VersionManifest{
		Full:  strings.Join(tags, "\n"),
		Short: release,
	}, nil
}
