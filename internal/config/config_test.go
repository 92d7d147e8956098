package config

import (
	"math"
	"path/filepath"
	"testing"

	"dikesim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Grid.Nx < 3 || cfg.Grid.Nz < 3 {
		t.Error("default grid below stencil minimum")
	}
	if cfg.Material.KRock <= 0 || cfg.Material.Rho <= 0 {
		t.Error("default material should be physical")
	}
	if cfg.Run.MaxKyr <= 0 {
		t.Error("default run length should be positive")
	}
}

func TestBuildOptions(t *testing.T) {
	cfg := DefaultConfig()
	opts, err := cfg.BuildOptions()
	if err != nil {
		t.Fatalf("build options: %v", err)
	}

	if opts.Grid.Nx != cfg.Grid.Nx {
		t.Errorf("grid nx mismatch: %d vs %d", opts.Grid.Nx, cfg.Grid.Nx)
	}

	wantInterval := cfg.Intrusion.IntervalYears * sim.SecondsPerYear
	if math.Abs(opts.Intrusion.Interval-wantInterval) > wantInterval*1e-12 {
		t.Errorf("interval conversion: expected %g, got %g", wantInterval, opts.Intrusion.Interval)
	}

	wantBottom := cfg.Boundary.Top + cfg.Boundary.Geotherm*opts.Grid.Depth()
	if math.Abs(opts.Boundary.Bottom-wantBottom) > 1e-9 {
		t.Errorf("geotherm bottom: expected %g, got %g", wantBottom, opts.Boundary.Bottom)
	}

	if opts.Intrusion.AngleMin >= opts.Intrusion.AngleMax {
		t.Error("angle range should be non-degenerate")
	}
}

func TestBuildOptionsBadShape(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Intrusion.Shape = "hexagon"
	if _, err := cfg.BuildOptions(); err == nil {
		t.Error("expected error for unknown shape")
	}
}

func TestBuildOptionsBadGrid(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grid.Nx = 1
	if _, err := cfg.BuildOptions(); err == nil {
		t.Error("expected error for degenerate grid")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.Run.Seed = 777
	cfg.Intrusion.Shape = "lens"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Run.Seed != 777 {
		t.Errorf("expected seed 777, got %d", loaded.Run.Seed)
	}
	if loaded.Intrusion.Shape != "lens" {
		t.Errorf("expected lens shape, got %q", loaded.Intrusion.Shape)
	}
	if loaded.Material.KRock != cfg.Material.KRock {
		t.Error("material should round-trip")
	}
}

func TestGetPreset(t *testing.T) {
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}

	c := GetPreset("coarse")
	if c == nil {
		t.Fatal("expected coarse preset")
	}
	if c.Grid.Nx != 50 {
		t.Errorf("expected 50-wide coarse grid, got %d", c.Grid.Nx)
	}

	// Presets hand out fresh configs, not shared state.
	c.Grid.Nx = 999
	if GetPreset("coarse").Grid.Nx == 999 {
		t.Error("preset mutated by caller")
	}

	if _, err := GetPreset("hot").BuildOptions(); err != nil {
		t.Errorf("hot preset should build: %v", err)
	}
}
