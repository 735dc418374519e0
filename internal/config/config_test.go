package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"citywalk/internal/city"
	"citywalk/internal/terrain"
	"citywalk/internal/vegetation"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigKeepsDefaults(t *testing.T) {
	path := writeFile(t, "config.yaml", "city:\n  grid_size: 3\n  seed: 99\n")
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.City.GridSize != 3 || cfg.City.Seed != 99 {
		t.Errorf("city section not applied: %+v", cfg.City)
	}
	if cfg.City.StreetWidth != 10 || cfg.Parks.Probability != 0.20 || cfg.LOD.Medium != 100 {
		t.Errorf("defaults lost: %+v %+v %+v", cfg.City, cfg.Parks, cfg.LOD)
	}
	if GlobalConfig != cfg {
		t.Errorf("GlobalConfig not set")
	}
}

func TestLoadConfigErrors(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Errorf("missing file should fail")
	}
	path := writeFile(t, "bad.yaml", "city: [not, a, map")
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "failed to parse config") {
		t.Errorf("malformed yaml error = %v", err)
	}

	defer func() {
		if recover() == nil {
			t.Errorf("MustLoadConfig should panic on a missing file")
		}
	}()
	MustLoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
}

func TestClamp(t *testing.T) {
	cfg := Default()
	cfg.City.GridSize = 0
	cfg.City.MaxBuildingHeight = 1
	cfg.Terrain.Smoothing = 42
	cfg.Parks.Probability = 1.5
	cfg.Water.Probability = -0.2
	cfg.Trees.Species = []int{1, 9, -1, 3}
	cfg.LOD = LODConfig{High: 80, Medium: 40}
	cfg.Terrain.Noise = "perlin"
	cfg.Clamp()

	if cfg.Terrain.Noise != "trig" {
		t.Errorf("unknown noise should fall back to trig, got %q", cfg.Terrain.Noise)
	}

	if cfg.City.GridSize != MinGridSize {
		t.Errorf("grid size %d", cfg.City.GridSize)
	}
	if cfg.City.MaxBuildingHeight != MinHeight {
		t.Errorf("max height %v", cfg.City.MaxBuildingHeight)
	}
	if cfg.Terrain.Smoothing != MaxSmoothing {
		t.Errorf("smoothing %d", cfg.Terrain.Smoothing)
	}
	if cfg.Parks.Probability != 1 || cfg.Water.Probability != 0 {
		t.Errorf("probabilities %v %v", cfg.Parks.Probability, cfg.Water.Probability)
	}
	if len(cfg.Trees.Species) != 2 || cfg.Trees.Species[0] != 1 || cfg.Trees.Species[1] != 3 {
		t.Errorf("species %v", cfg.Trees.Species)
	}
	if cfg.LOD.Medium < cfg.LOD.High {
		t.Errorf("LOD thresholds out of order: %+v", cfg.LOD)
	}

	cfg.City.GridSize = 12
	cfg.Trees.Species = []int{7}
	cfg.Clamp()
	if cfg.City.GridSize != MaxGridSize {
		t.Errorf("grid size %d", cfg.City.GridSize)
	}
	if len(cfg.Trees.Species) != vegetation.SpeciesCount {
		t.Errorf("empty species list should fall back to the whole catalog, got %v", cfg.Trees.Species)
	}
}

func TestCityParams(t *testing.T) {
	cfg := Default()
	cfg.Water.Enabled = false
	p := cfg.CityParams()

	if p.GridSize != 5 || p.BlockSize() != 30 || p.WaterEnabled {
		t.Errorf("unexpected params %+v", p)
	}
	if len(p.TreeSpecies) != 4 || p.TreeSpecies[2] != vegetation.Palm {
		t.Errorf("species %v", p.TreeSpecies)
	}
	if p.Terrain.Noise != terrain.NoiseTrig {
		t.Errorf("noise %q", p.Terrain.Noise)
	}
	if p.LOD.High != 50 || p.Lamps.Far != 100 {
		t.Errorf("thresholds %+v %+v", p.LOD, p.Lamps)
	}
	if got := cfg.GetTotalSize(); got != 5*30+6*10 {
		t.Errorf("total size %v", got)
	}

	cp := cfg.CollisionParams()
	if cp.Bounds.MaxX != 250 || math.Abs(cp.Clearance()-0.8) > 1e-9 {
		t.Errorf("collision params %+v", cp)
	}
	if s := cfg.CameraSettings(); s.FlySpeed != 30 || s.EyeHeight != 2 {
		t.Errorf("camera settings %+v", s)
	}
}

func TestTerrainSizeBoundsCity(t *testing.T) {
	cfg := Default()
	cfg.Terrain.Size = 300
	cfg.Terrain.Segments = 32
	cfg.City.Seed = 11
	cfg.Clamp()

	m := city.New(nil, city.WithCollisionParams(cfg.CollisionParams()))
	m.Regenerate(cfg.CityParams())

	half := m.Field().WorldSize() / 2
	bounds := cfg.CollisionParams().Bounds
	if half != 150 || bounds.MaxX != half || bounds.MinZ != -half {
		t.Fatalf("bounds %+v, terrain half %v", bounds, half)
	}
	if m.Extent() != 300 {
		t.Errorf("extent %v, want 300", m.Extent())
	}
	for i, tr := range m.Trees() {
		if math.Abs(tr.Position[0]) > half || math.Abs(tr.Position[2]) > half {
			t.Errorf("tree %d at %v outside the walkable square", i, tr.Position)
		}
	}

	cfg.Terrain.Enabled = false
	m.Regenerate(cfg.CityParams())
	if m.Field() != nil || m.Extent() != 300 {
		t.Errorf("flat terrain extent %v", m.Extent())
	}
}

func TestPresets(t *testing.T) {
	path := writeFile(t, "presets.yaml", `presets:
  flat:
    description: "flat and small"
    grid_size: 2
    terrain_height: 0
    trees: 5
  huge:
    grid_size: 30
`)
	if _, err := LoadPresets(path); err != nil {
		t.Fatalf("LoadPresets: %v", err)
	}
	if names := PresetNames(); len(names) != 2 || names[0] != "flat" {
		t.Errorf("names %v", names)
	}

	base := Default()
	flat, err := base.WithPreset("flat")
	if err != nil {
		t.Fatalf("WithPreset: %v", err)
	}
	if flat.City.GridSize != 2 || flat.Terrain.Enabled || flat.Trees.Count != 5 {
		t.Errorf("preset not applied: %+v %+v", flat.City, flat.Terrain)
	}
	if base.City.GridSize != 5 || !base.Terrain.Enabled {
		t.Errorf("preset modified the base config")
	}

	huge, _ := base.WithPreset("huge")
	if huge.City.GridSize != MaxGridSize {
		t.Errorf("preset grid size not clamped: %d", huge.City.GridSize)
	}

	if _, err := base.WithPreset("nope"); err == nil {
		t.Errorf("unknown preset should fail")
	}
}
