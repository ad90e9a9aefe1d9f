package adapter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// PlanStore persists the generated artifacts of a run: the target descriptor
// list and the version manifest module.
type PlanStore interface {
	SavePlan(ctx context.Context, path m.Path, plan m.BuildPlan) error
	LoadPlan(ctx context.Context, path m.Path) (m.BuildPlan, error)
	SaveManifest(ctx context.Context, path m.Path, manifest m.VersionManifest) error
}

type planStore struct {
	fs SourceFSAdapter
}

// NewPlanStore returns a PlanStore writing through fs.
func NewPlanStore(fs SourceFSAdapter) PlanStore {
	return &planStore{fs: fs}
}

// MarshalPlan renders the descriptor list as YAML.
func MarshalPlan(plan m.BuildPlan) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(plan); err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode plan: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderManifest renders the manifest as the python module imported by the
// installed package.
func RenderManifest(manifest m.VersionManifest) []byte {
	full := strings.ReplaceAll(manifest.Full, `\`, `\\`)
	full = strings.ReplaceAll(full, `"`, `\"`)

	var b strings.Builder

	fmt.Fprintf(&b, "version_full = \"\"\"%s\"\"\"\n\n", full)
	fmt.Fprintf(&b, "version_short = %q\n\n", manifest.Short)

	return []byte(b.String())
}

func (s *planStore) SavePlan(ctx context.Context, path m.Path, plan m.BuildPlan) error {
	data, err := MarshalPlan(plan)
	if err != nil {
		return err
	}

	if err := s.fs.WriteFile(ctx, path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}

func (s *planStore) LoadPlan(ctx context.Context, path m.Path) (m.BuildPlan, error) {
	data, err := s.fs.ReadFile(ctx, path)
	if err != nil {
		return m.BuildPlan{}, err
	}

	var plan m.BuildPlan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return m.BuildPlan{}, fmt.Errorf("decode %s: %w", path, err)
	}

	return plan, nil
}

func (s *planStore) SaveManifest(ctx context.Context, path m.Path, manifest m.VersionManifest) error {
	if err := s.fs.WriteFile(ctx, path, RenderManifest(manifest), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	return nil
}
