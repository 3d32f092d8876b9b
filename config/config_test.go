package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}

	if cfg.Simulation.MaxParticles != 50 {
		t.Errorf("MaxParticles = %d, want 50", cfg.Simulation.MaxParticles)
	}
	if cfg.Simulation.MaxClusters != 10 {
		t.Errorf("MaxClusters = %d, want 10", cfg.Simulation.MaxClusters)
	}
	if cfg.Clustering.ProximityMultiplier != 1.5 {
		t.Errorf("ProximityMultiplier = %v, want 1.5", cfg.Clustering.ProximityMultiplier)
	}
	if cfg.Gesture.ResetDelay != 1.0 {
		t.Errorf("ResetDelay = %v, want 1.0", cfg.Gesture.ResetDelay)
	}
	if len(cfg.Derived.Palette) != PaletteSize {
		t.Fatalf("derived palette has %d colors, want %d", len(cfg.Derived.Palette), PaletteSize)
	}

	// #4A90E2
	blue := cfg.Derived.Palette[0]
	if math.Abs(blue.R-0x4A/255.0) > 1e-9 || math.Abs(blue.G-0x90/255.0) > 1e-9 || math.Abs(blue.B-0xE2/255.0) > 1e-9 {
		t.Errorf("palette[0] = %v, want #4A90E2", blue.Hex())
	}
	if got := cfg.Derived.DefaultClusterColor.Hex(); got != "#8a2be2" {
		t.Errorf("DefaultClusterColor = %s, want #8a2be2", got)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := []byte("simulation:\n  max_particles: 120\nclustering:\n  index: grid\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Simulation.MaxParticles != 120 {
		t.Errorf("MaxParticles = %d, want 120", cfg.Simulation.MaxParticles)
	}
	// Keys not named in the overlay keep their defaults
	if cfg.Simulation.MaxClusters != 10 {
		t.Errorf("MaxClusters = %d, want 10", cfg.Simulation.MaxClusters)
	}
	if cfg.Clustering.Index != "grid" {
		t.Errorf("Index = %q, want grid", cfg.Clustering.Index)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"short palette", "palette: [\"#ffffff\"]\n", ErrPaletteSize},
		{"inverted range", "burst:\n  size_min: 2\n  size_max: 1\n", ErrBadRange},
		{"zero cap", "simulation:\n  max_clusters: 0\n", ErrBadCap},
		{"unknown index", "clustering:\n  index: octree\n", ErrBadIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Gesture.ForceScale = 3.5

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load written config: %v", err)
	}
	if loaded.Gesture.ForceScale != 3.5 {
		t.Errorf("ForceScale = %v, want 3.5", loaded.Gesture.ForceScale)
	}
}

func TestMustInit(t *testing.T) {
	prev := global
	t.Cleanup(func() { global = prev })

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("gesture:\n  force_scale: 2.5\n"), 0644); err != nil {
		t.Fatal(err)
	}
	MustInit(path)
	if got := Cfg().Gesture.ForceScale; got != 2.5 {
		t.Errorf("ForceScale = %v, want 2.5", got)
	}

	defer func() {
		if recover() == nil {
			t.Error("expected panic for missing file")
		}
	}()
	MustInit(filepath.Join(t.TempDir(), "nope.yaml"))
}
