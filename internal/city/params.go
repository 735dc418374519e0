package city

import (
	"citywalk/internal/buildings"
	"citywalk/internal/lod"
	"citywalk/internal/terrain"
	"citywalk/internal/vegetation"
)

// TerrainParams control the height field of one run
type TerrainParams struct {
	Enabled   bool
	// Size is the side of the terrain square; <= 0 means terrain.Size
	Size      float64
	Height    float64
	Smoothing int
	Segments  int
	Noise     terrain.Noise
}

// Params is the immutable input of one generation run.
// Values are expected to be validated by the configuration layer.
type Params struct {
	GridSize          int
	StreetWidth       float64
	BuildingSize      float64
	MaxBuildingHeight float64

	Terrain TerrainParams

	ParksEnabled    bool
	ParkProbability float64
	WaterEnabled    bool
	LakeProbability float64

	TreeCount   int
	TreeSpecies []vegetation.SpeciesID

	LOD   lod.Thresholds
	Lamps lod.LampThresholds

	// Seed fixes the random stream; 0 draws one from the clock
	Seed int64
}

// DefaultParams returns the stock city
func DefaultParams() Params {
	return Params{
		GridSize:          5,
		StreetWidth:       10,
		BuildingSize:      10,
		MaxBuildingHeight: 30,
		Terrain: TerrainParams{
			Enabled:   true,
			Size:      terrain.Size,
			Height:    20,
			Smoothing: 5,
			Segments:  terrain.Segments,
			Noise:     terrain.NoiseTrig,
		},
		ParksEnabled:    true,
		ParkProbability: 0.20,
		WaterEnabled:    true,
		LakeProbability: 0.15,
		TreeCount:       50,
		TreeSpecies:     []vegetation.SpeciesID{vegetation.Pine, vegetation.Oak, vegetation.Palm, vegetation.Birch},
		LOD:             lod.DefaultThresholds(),
		Lamps:           lod.DefaultLampThresholds(),
	}
}

// BlockSize is the side of a block holding PerSide x PerSide buildings
func (p Params) BlockSize() float64 {
	return p.BuildingSize * buildings.PerSide
}

// TotalSize is the side of the city square these params produce
func (p Params) TotalSize() float64 {
	return TotalSize(p.GridSize, p.BlockSize(), p.StreetWidth)
}
