package domain

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pmezard/go-difflib/difflib"
	"synthlisa.dev/pkg/lisabuild/internal/adapter"
	"synthlisa.dev/pkg/lisabuild/internal/controller"
	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

// BuildArgs contains the arguments for a full orchestration run.
type BuildArgs struct {
	Config m.Config
}

// PlanArgs contains the arguments for a dry run.
type PlanArgs struct {
	Config m.Config
	// Diff compares the fresh plan with the stored target list.
	Diff bool
}

// CatalogArgs contains the arguments for printing the version manifest.
type CatalogArgs struct {
	Config m.Config
}

// Workflow defines the build orchestration entry points.
type Workflow interface {
	// Build writes the manifest, regenerates stale glue code and stores the
	// target list. Nothing is stored when any step fails.
	Build(ctx context.Context, args BuildArgs) error
	// Plan assembles the target list without running the generator or
	// writing any file.
	Plan(ctx context.Context, args PlanArgs) error
	// Catalog extracts and displays the version manifest.
	Catalog(ctx context.Context, args CatalogArgs) error
}

type workflow struct {
	adapter.PlanStore
	controller.UI
	ModuleDiscoverer
	CatalogExtractor
	StaleCodeGenerator
	OptionalDependencyGate
	ExtensionAssembler
}

// NewWorkflow creates a new Workflow instance with the provided dependencies.
func NewWorkflow(
	planStore adapter.PlanStore,
	ui controller.UI,
	discoverer ModuleDiscoverer,
	catalog CatalogExtractor,
	generator StaleCodeGenerator,
	gate OptionalDependencyGate,
	assembler ExtensionAssembler,
) Workflow {
	return &workflow{
		PlanStore:              planStore,
		UI:                     ui,
		ModuleDiscoverer:       discoverer,
		CatalogExtractor:       catalog,
		StaleCodeGenerator:     generator,
		OptionalDependencyGate: gate,
		ExtensionAssembler:     assembler,
	}
}

func (w *workflow) Build(ctx context.Context, args BuildArgs) error {
	cfg := args.Config

	tree, err := w.Scan(ctx, cfg)
	if err != nil {
		return fmt.Errorf("scan source tree: %w", err)
	}

	manifest, err := w.Extract(ctx, tree.CatalogFiles(), cfg.Release)
	if err != nil {
		return fmt.Errorf("extract version catalog: %w", err)
	}

	if err := w.SaveManifest(ctx, cfg.Abs(cfg.Layout.VersionFile), manifest); err != nil {
		return fmt.Errorf("save version manifest: %w", err)
	}

	w.DisplayManifest(ctx, manifest)

	plan, err := w.assemble(ctx, cfg, tree, true)
	if err != nil {
		return err
	}

	plan.Manifest = manifest

	if err := w.SavePlan(ctx, cfg.TargetsFile, plan); err != nil {
		return fmt.Errorf("save target list: %w", err)
	}

	slog.Info("Build plan written", "path", cfg.TargetsFile, "targets", len(plan.Targets), "skipped", len(plan.Skips))

	return w.DisplayPlan(ctx, plan)
}

func (w *workflow) Plan(ctx context.Context, args PlanArgs) error {
	cfg := args.Config

	tree, err := w.Scan(ctx, cfg)
	if err != nil {
		return fmt.Errorf("scan source tree: %w", err)
	}

	manifest, err := w.Extract(ctx, tree.CatalogFiles(), cfg.Release)
	if err != nil {
		return fmt.Errorf("extract version catalog: %w", err)
	}

	plan, err := w.assemble(ctx, cfg, tree, false)
	if err != nil {
		return err
	}

	plan.Manifest = manifest

	if err := w.DisplayPlan(ctx, plan); err != nil {
		return err
	}

	if !args.Diff {
		return nil
	}

	diff, err := w.diffStored(ctx, cfg.TargetsFile, plan)
	if err != nil {
		return fmt.Errorf("diff target list: %w", err)
	}

	w.DisplayDiff(ctx, diff)

	return nil
}

func (w *workflow) Catalog(ctx context.Context, args CatalogArgs) error {
	tree, err := w.Scan(ctx, args.Config)
	if err != nil {
		return fmt.Errorf("scan source tree: %w", err)
	}

	manifest, err := w.Extract(ctx, tree.CatalogFiles(), args.Config.Release)
	if err != nil {
		return fmt.Errorf("extract version catalog: %w", err)
	}

	w.DisplayManifest(ctx, manifest)

	return nil
}

// assemble produces the core, auxiliary and contrib targets. With generate
// unset the staleness of each pair is only reported.
func (w *workflow) assemble(ctx context.Context, cfg m.Config, tree m.SourceTree, generate bool) (m.BuildPlan, error) {
	layout := cfg.Layout
	plan := m.BuildPlan{}

	coreTask := m.GenerationTask{
		Interface: cfg.Abs(layout.CoreInterface),
		Source:    cfg.Abs(layout.CoreWrapSource),
		Binding:   cfg.Abs(layout.CoreWrapBinding),
		Depends:   append(append([]m.Path{}, tree.Core.Headers...), cfg.Abs(layout.CoreTypemaps)),
		Cpp:       true,
	}
	if err := w.generate(ctx, cfg, coreTask, generate); err != nil {
		return plan, err
	}

	auxTask := m.GenerationTask{
		Interface: cfg.Abs(layout.AuxInterface),
		Source:    cfg.Abs(layout.AuxWrapSource),
		Binding:   cfg.Abs(layout.AuxWrapBinding),
		Depends:   tree.Aux.Headers,
		Cpp:       true,
	}
	if err := w.generate(ctx, cfg, auxTask, generate); err != nil {
		return plan, err
	}

	plan.Targets = append(plan.Targets, w.CoreTarget(tree, cfg), w.AuxTarget(tree, cfg))
	plan.Packages = append(plan.Packages,
		m.Package{Name: layout.CorePackage, Dir: string(cfg.Abs(layout.CoreDir))},
		m.Package{Name: layout.AuxPackage, Dir: string(cfg.Abs(layout.AuxDir))},
	)

	for _, mod := range tree.Modules {
		registered := false

		for _, iface := range mod.Interfaces {
			admission, err := w.Admit(ctx, iface, cfg.GSL)
			if err != nil {
				return plan, err
			}

			if admission.Skip != nil {
				plan.Skips = append(plan.Skips, *admission.Skip)
				w.DisplaySkip(ctx, *admission.Skip)

				continue
			}

			source, binding := GlueFiles(iface, mod.Language)
			task := m.GenerationTask{
				Interface: iface,
				Source:    source,
				Binding:   binding,
				Depends:   mod.Headers,
				Cpp:       mod.Language == m.NativeCpp,
			}
			if err := w.generate(ctx, cfg, task, generate); err != nil {
				return plan, err
			}

			plan.Targets = append(plan.Targets, w.Assemble(mod, iface, admission, cfg))

			if !registered {
				plan.Packages = append(plan.Packages, m.Package{Name: mod.Name, Dir: string(mod.Dir)})
				registered = true
			}
		}
	}

	return plan, nil
}

func (w *workflow) generate(ctx context.Context, cfg m.Config, task m.GenerationTask, run bool) error {
	if !run {
		stale, err := w.IsStale(ctx, task)
		if err != nil {
			return err
		}

		status := m.UpToDate
		if stale {
			status = m.Stale
		}

		w.DisplayGeneration(ctx, task.Interface, status)

		return nil
	}

	regenerated, err := w.EnsureGenerated(ctx, cfg.Generator, task)
	if err != nil {
		return err
	}

	status := m.UpToDate
	if regenerated {
		status = m.Regenerated
	}

	w.DisplayGeneration(ctx, task.Interface, status)

	return nil
}

// diffStored returns a unified diff from the stored target list to plan. A
// missing stored list diffs against an empty file.
func (w *workflow) diffStored(ctx context.Context, path m.Path, plan m.BuildPlan) (string, error) {
	fresh, err := adapter.MarshalPlan(plan)
	if err != nil {
		return "", err
	}

	var stored []byte

	previous, err := w.LoadPlan(ctx, path)

	switch {
	case err == nil:
		if stored, err = adapter.MarshalPlan(previous); err != nil {
			return "", err
		}
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("No stored target list", "path", path)
	default:
		return "", err
	}

	return difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(stored)),
		B:        difflib.SplitLines(string(fresh)),
		FromFile: string(path),
		ToFile:   "plan",
		Context:  3,
	})
}
