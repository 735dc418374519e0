package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"citywalk/internal/camera"
	"citywalk/internal/city"
	"citywalk/internal/collision"
	"citywalk/internal/lod"
	"citywalk/internal/mathutil"
	"citywalk/internal/terrain"
	"citywalk/internal/vegetation"
)

// Config holds all city and viewer configuration values
type Config struct {
	Display    DisplayConfig   `yaml:"display"`
	City       CityConfig      `yaml:"city"`
	Terrain    TerrainConfig   `yaml:"terrain"`
	Parks      FeatureConfig   `yaml:"parks"`
	Water      FeatureConfig   `yaml:"water"`
	Trees      TreeConfig      `yaml:"trees"`
	LOD        LODConfig       `yaml:"lod"`
	LampLights LampConfig      `yaml:"lamp_lights"`
	Collision  CollisionConfig `yaml:"collision"`
	Movement   MovementConfig  `yaml:"movement"`
}

type DisplayConfig struct {
	ScreenWidth  int    `yaml:"screen_width"`
	ScreenHeight int    `yaml:"screen_height"`
	WindowTitle  string `yaml:"window_title"`
	Resizable    bool   `yaml:"resizable"`
}

type CityConfig struct {
	GridSize          int     `yaml:"grid_size"`
	StreetWidth       float64 `yaml:"street_width"`
	BuildingSize      float64 `yaml:"building_size"`
	MaxBuildingHeight float64 `yaml:"max_building_height"`
	Seed              int64   `yaml:"seed"` // 0 picks a new city every run
}

type TerrainConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Height    float64 `yaml:"height"`
	Smoothing int     `yaml:"smoothing"`
	Size      float64 `yaml:"size"`
	Segments  int     `yaml:"segments"`
	Noise     string  `yaml:"noise"` // trig or simplex
}

// FeatureConfig switches a block land use and sets its draw probability
type FeatureConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Probability float64 `yaml:"probability"`
}

type TreeConfig struct {
	Count   int   `yaml:"count"`
	Species []int `yaml:"species"` // catalog indices: 0 pine, 1 oak, 2 palm, 3 birch
}

type LODConfig struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
}

type LampConfig struct {
	High   float64 `yaml:"high"`
	Medium float64 `yaml:"medium"`
	Low    float64 `yaml:"low"`
}

type CollisionConfig struct {
	CameraRadius float64 `yaml:"camera_radius"`
	Margin       float64 `yaml:"margin"`
	Ceiling      float64 `yaml:"ceiling"`
}

type MovementConfig struct {
	WalkSpeed float64 `yaml:"walk_speed"`
	FlySpeed  float64 `yaml:"fly_speed"`
	EyeHeight float64 `yaml:"eye_height"`
}

const (
	MinGridSize  = 1
	MaxGridSize  = 7
	MinSmoothing = 1
	MaxSmoothing = 10
	MinHeight    = 5.0
	MinSegments  = 8
	MaxSegments  = 256
)

var GlobalConfig *Config

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:  1280,
			ScreenHeight: 800,
			WindowTitle:  "citywalk",
			Resizable:    true,
		},
		City: CityConfig{
			GridSize:          5,
			StreetWidth:       10,
			BuildingSize:      10,
			MaxBuildingHeight: 30,
		},
		Terrain: TerrainConfig{
			Enabled:   true,
			Height:    20,
			Smoothing: 5,
			Size:      500,
			Segments:  128,
			Noise:     "trig",
		},
		Parks:      FeatureConfig{Enabled: true, Probability: 0.20},
		Water:      FeatureConfig{Enabled: true, Probability: 0.15},
		Trees:      TreeConfig{Count: 50, Species: []int{0, 1, 2, 3}},
		LOD:        LODConfig{High: 50, Medium: 100},
		LampLights: LampConfig{High: 30, Medium: 50, Low: 100},
		Collision:  CollisionConfig{CameraRadius: 0.5, Margin: 0.3, Ceiling: 150},
		Movement:   MovementConfig{WalkSpeed: 10, FlySpeed: 30, EyeHeight: 2},
	}
}

// LoadConfig loads the configuration from a YAML file over the defaults and clamps it
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}
	config.Clamp()

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Clamp forces every value into its safe range. The generator assumes clamped input.
func (c *Config) Clamp() {
	c.City.GridSize = mathutil.IntClamp(c.City.GridSize, MinGridSize, MaxGridSize)
	c.City.StreetWidth = max(c.City.StreetWidth, 1)
	c.City.BuildingSize = max(c.City.BuildingSize, 1)
	c.City.MaxBuildingHeight = max(c.City.MaxBuildingHeight, MinHeight)

	c.Terrain.Height = max(c.Terrain.Height, 0)
	c.Terrain.Smoothing = mathutil.IntClamp(c.Terrain.Smoothing, MinSmoothing, MaxSmoothing)
	c.Terrain.Segments = mathutil.IntClamp(c.Terrain.Segments, MinSegments, MaxSegments)
	if c.Terrain.Size <= 0 {
		c.Terrain.Size = 500
	}
	if !terrain.Noise(c.Terrain.Noise).Valid() {
		c.Terrain.Noise = string(terrain.NoiseTrig)
	}

	c.Parks.Probability = mathutil.Clamp(c.Parks.Probability, 0, 1)
	c.Water.Probability = mathutil.Clamp(c.Water.Probability, 0, 1)

	c.Trees.Count = max(c.Trees.Count, 0)
	species := c.Trees.Species[:0]
	for _, s := range c.Trees.Species {
		if vegetation.SpeciesID(s).Valid() {
			species = append(species, s)
		}
	}
	if len(species) == 0 {
		species = append(species, 0, 1, 2, 3)
	}
	c.Trees.Species = species

	c.LOD.High = max(c.LOD.High, 0)
	c.LOD.Medium = max(c.LOD.Medium, c.LOD.High)
	c.LampLights.High = max(c.LampLights.High, 0)
	c.LampLights.Medium = max(c.LampLights.Medium, c.LampLights.High)
	c.LampLights.Low = max(c.LampLights.Low, c.LampLights.Medium)

	c.Collision.CameraRadius = max(c.Collision.CameraRadius, 0)
	c.Collision.Margin = max(c.Collision.Margin, 0)

	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		c.Display.ScreenWidth, c.Display.ScreenHeight = 1280, 800
	}
}

// CityParams snapshots the city section for one generation run
func (c *Config) CityParams() city.Params {
	species := make([]vegetation.SpeciesID, 0, len(c.Trees.Species))
	for _, s := range c.Trees.Species {
		species = append(species, vegetation.SpeciesID(s))
	}
	return city.Params{
		GridSize:          c.City.GridSize,
		StreetWidth:       c.City.StreetWidth,
		BuildingSize:      c.City.BuildingSize,
		MaxBuildingHeight: c.City.MaxBuildingHeight,
		Terrain: city.TerrainParams{
			Enabled:   c.Terrain.Enabled,
			Size:      c.Terrain.Size,
			Height:    c.Terrain.Height,
			Smoothing: c.Terrain.Smoothing,
			Segments:  c.Terrain.Segments,
			Noise:     terrain.Noise(c.Terrain.Noise),
		},
		ParksEnabled:    c.Parks.Enabled,
		ParkProbability: c.Parks.Probability,
		WaterEnabled:    c.Water.Enabled,
		LakeProbability: c.Water.Probability,
		TreeCount:       c.Trees.Count,
		TreeSpecies:     species,
		LOD:             lod.Thresholds{High: c.LOD.High, Medium: c.LOD.Medium},
		Lamps:           lod.LampThresholds{Light: c.LampLights.High, Glow: c.LampLights.Medium, Far: c.LampLights.Low},
		Seed:            c.City.Seed,
	}
}

// CollisionParams returns the navigation clearance, bounded by the terrain square
func (c *Config) CollisionParams() collision.Params {
	return collision.Params{
		CameraRadius: c.Collision.CameraRadius,
		Margin:       c.Collision.Margin,
		Bounds:       collision.Square(c.Terrain.Size),
		Ceiling:      c.Collision.Ceiling,
	}
}

// CameraSettings returns the walker speeds and eye height
func (c *Config) CameraSettings() camera.Settings {
	s := camera.DefaultSettings()
	s.WalkSpeed = c.GetWalkSpeed()
	s.FlySpeed = c.GetFlySpeed()
	s.EyeHeight = c.Movement.EyeHeight
	return s
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetWalkSpeed() float64 {
	return c.Movement.WalkSpeed
}

func (c *Config) GetFlySpeed() float64 {
	return c.Movement.FlySpeed
}

func (c *Config) GetTotalSize() float64 {
	return c.CityParams().TotalSize()
}
