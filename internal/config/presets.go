package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Preset overrides the city section with a named variation.
// Zero fields keep the value of the base configuration.
type Preset struct {
	Description       string   `yaml:"description"`
	GridSize          int      `yaml:"grid_size,omitempty"`
	StreetWidth       float64  `yaml:"street_width,omitempty"`
	BuildingSize      float64  `yaml:"building_size,omitempty"`
	MaxBuildingHeight float64  `yaml:"max_building_height,omitempty"`
	TerrainHeight     *float64 `yaml:"terrain_height,omitempty"` // 0 flattens the terrain
	ParkProbability   *float64 `yaml:"park_probability,omitempty"`
	LakeProbability   *float64 `yaml:"lake_probability,omitempty"`
	Trees             *int     `yaml:"trees,omitempty"`
}

// PresetConfig is the root of the presets file
type PresetConfig struct {
	Presets map[string]Preset `yaml:"presets"`
}

var presetConfig *PresetConfig

// LoadPresets loads named city presets from YAML.
func LoadPresets(filename string) (*PresetConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets: %w", err)
	}

	var cfg PresetConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse presets: %w", err)
	}
	presetConfig = &cfg
	return &cfg, nil
}

// MustLoadPresets loads presets or panics.
func MustLoadPresets(filename string) *PresetConfig {
	cfg, err := LoadPresets(filename)
	if err != nil {
		panic(err)
	}
	return cfg
}

// PresetNames returns the loaded preset names in sorted order.
func PresetNames() []string {
	if presetConfig == nil {
		return nil
	}
	names := make([]string, 0, len(presetConfig.Presets))
	for name := range presetConfig.Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// WithPreset returns a clamped copy of c with the named preset applied.
func (c *Config) WithPreset(name string) (*Config, error) {
	if presetConfig == nil {
		return nil, fmt.Errorf("no presets loaded")
	}
	p, ok := presetConfig.Presets[name]
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}

	out := *c
	out.Trees.Species = append([]int(nil), c.Trees.Species...)
	if p.GridSize != 0 {
		out.City.GridSize = p.GridSize
	}
	if p.StreetWidth != 0 {
		out.City.StreetWidth = p.StreetWidth
	}
	if p.BuildingSize != 0 {
		out.City.BuildingSize = p.BuildingSize
	}
	if p.MaxBuildingHeight != 0 {
		out.City.MaxBuildingHeight = p.MaxBuildingHeight
	}
	if p.TerrainHeight != nil {
		out.Terrain.Height = *p.TerrainHeight
		out.Terrain.Enabled = *p.TerrainHeight > 0
	}
	if p.ParkProbability != nil {
		out.Parks.Enabled = true
		out.Parks.Probability = *p.ParkProbability
	}
	if p.LakeProbability != nil {
		out.Water.Enabled = true
		out.Water.Probability = *p.LakeProbability
	}
	if p.Trees != nil {
		out.Trees.Count = *p.Trees
	}
	out.Clamp()
	return &out, nil
}
