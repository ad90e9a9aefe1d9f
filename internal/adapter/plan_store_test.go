package adapter

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	m "synthlisa.dev/pkg/lisabuild/internal/model"
)

func samplePlan() m.BuildPlan {
	return m.BuildPlan{
		Manifest: m.VersionManifest{Full: "Id: a.cpp 1\nId: b.h 2", Short: "1.3.1"},
		Packages: []m.Package{{Name: "synthlisa", Dir: "lisasim"}, {Name: "alpha", Dir: "contrib/alpha"}},
		Targets: []m.ModuleTarget{
			{
				Name:        "alpha/_mod",
				Sources:     []string{"contrib/alpha/a.cpp", "contrib/alpha/mod_wrap.cpp"},
				IncludeDirs: []string{"contrib/alpha", "/usr/include/python3"},
				Depends:     []string{"contrib/alpha/a.h"},
			},
		},
		Skips: []m.Skip{{Interface: "contrib/beta/mod.i", Reason: "GSL not configured"}},
	}
}

func TestPlanStore_SaveAndLoad(t *testing.T) {
	store := NewPlanStore(NewLocalSourceFSAdapter())
	ctx := context.Background()
	path := m.Path(filepath.Join(t.TempDir(), "build", "targets.yaml"))

	plan := samplePlan()
	if err := store.SavePlan(ctx, path, plan); err != nil {
		t.Fatalf("SavePlan() error = %v", err)
	}

	loaded, err := store.LoadPlan(ctx, path)
	if err != nil {
		t.Fatalf("LoadPlan() error = %v", err)
	}

	if loaded.Manifest != plan.Manifest {
		t.Fatalf("manifest = %+v, want %+v", loaded.Manifest, plan.Manifest)
	}

	if len(loaded.Targets) != 1 || loaded.Targets[0].Name != "alpha/_mod" {
		t.Fatalf("targets = %+v", loaded.Targets)
	}

	if len(loaded.Targets[0].LibraryDirs) != 0 {
		t.Fatalf("unexpected library dirs %v", loaded.Targets[0].LibraryDirs)
	}

	if len(loaded.Skips) != 0 {
		t.Fatalf("skips must not be persisted, got %v", loaded.Skips)
	}
}

func TestPlanStore_LoadInvalid(t *testing.T) {
	store := NewPlanStore(NewLocalSourceFSAdapter())
	path := filepath.Join(t.TempDir(), "targets.yaml")
	writeTestFile(t, path, "targets: [unterminated\n")

	if _, err := store.LoadPlan(context.Background(), m.Path(path)); err == nil {
		t.Fatalf("LoadPlan() expected error for invalid yaml")
	}
}

func TestMarshalPlan_Deterministic(t *testing.T) {
	first, err := MarshalPlan(samplePlan())
	if err != nil {
		t.Fatalf("MarshalPlan() error = %v", err)
	}

	second, err := MarshalPlan(samplePlan())
	if err != nil {
		t.Fatalf("MarshalPlan() error = %v", err)
	}

	if string(first) != string(second) {
		t.Fatalf("MarshalPlan() not deterministic:\n%s\n---\n%s", first, second)
	}

	if !strings.Contains(string(first), "name: alpha/_mod") {
		t.Fatalf("MarshalPlan() = %s", first)
	}
}

func TestPlanStore_SaveManifest(t *testing.T) {
	store := NewPlanStore(NewLocalSourceFSAdapter())
	path := filepath.Join(t.TempDir(), "lisasim", "version.py")

	manifest := m.VersionManifest{Full: "Id: a.cpp 1\nId: b.h 2", Short: "1.3.1"}
	if err := store.SaveManifest(context.Background(), m.Path(path), manifest); err != nil {
		t.Fatalf("SaveManifest() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}

	want := "version_full = \"\"\"Id: a.cpp 1\nId: b.h 2\"\"\"\n\nversion_short = \"1.3.1\"\n\n"
	if string(got) != want {
		t.Fatalf("manifest file = %q, want %q", got, want)
	}
}

func TestRenderManifest_EscapesQuotesAndBackslashes(t *testing.T) {
	manifest := m.VersionManifest{Full: `Id: a.cpp "quoted"` + "\n" + `Id: c:\src\b.h 2"`, Short: "1.3.1"}

	got := string(RenderManifest(manifest))

	want := `version_full = """Id: a.cpp \"quoted\"` + "\n" + `Id: c:\\src\\b.h 2\""""` + "\n\n" + `version_short = "1.3.1"` + "\n\n"
	if got != want {
		t.Fatalf("RenderManifest() = %q, want %q", got, want)
	}

	if strings.Contains(got, `2""""`) {
		t.Fatalf("RenderManifest() left a quote that closes the string early: %q", got)
	}
}
