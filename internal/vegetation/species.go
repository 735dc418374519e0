package vegetation

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"citywalk/internal/geometry"
)

// SpeciesID indexes the species catalog
type SpeciesID int

const (
	Pine SpeciesID = iota
	Oak
	Palm
	Birch
)

// FoliageShape is the crown silhouette of a species
type FoliageShape int

const (
	FoliageCone FoliageShape = iota
	FoliageSphere
	FoliagePalm
)

// Species holds the static dimensions and colors of one kind of tree
type Species struct {
	Name            string
	TrunkColor      colorful.Color
	FoliageColor    colorful.Color
	TrunkHeight     float64
	TrunkRadius     float64
	Shape           FoliageShape
	FoliageHeight   float64
	FoliageRadius   float64
	FoliageSegments int
}

var catalog = [...]Species{
	Pine: {
		Name:            "pine",
		TrunkColor:      geometry.Hex(0x8B4513),
		FoliageColor:    geometry.Hex(0x2E8B57),
		TrunkHeight:     3.5,
		TrunkRadius:     0.5,
		Shape:           FoliageCone,
		FoliageHeight:   7,
		FoliageRadius:   2.5,
		FoliageSegments: 8,
	},
	Oak: {
		Name:            "oak",
		TrunkColor:      geometry.Hex(0x8B5A2B),
		FoliageColor:    geometry.Hex(0x228B22),
		TrunkHeight:     2.5,
		TrunkRadius:     0.7,
		Shape:           FoliageSphere,
		FoliageHeight:   6,
		FoliageRadius:   3.5,
		FoliageSegments: 8,
	},
	Palm: {
		Name:            "palm",
		TrunkColor:      geometry.Hex(0xA0522D),
		FoliageColor:    geometry.Hex(0x32CD32),
		TrunkHeight:     5,
		TrunkRadius:     0.4,
		Shape:           FoliagePalm,
		FoliageHeight:   3,
		FoliageRadius:   4,
		FoliageSegments: 8,
	},
	Birch: {
		Name:            "birch",
		TrunkColor:      geometry.Hex(0xF5F5DC),
		FoliageColor:    geometry.Hex(0x9ACD32),
		TrunkHeight:     3,
		TrunkRadius:     0.4,
		Shape:           FoliageSphere,
		FoliageHeight:   5,
		FoliageRadius:   2.5,
		FoliageSegments: 8,
	},
}

// SpeciesCount is the number of catalog entries
const SpeciesCount = len(catalog)

// ParkSpecies are the species planted inside parks
var ParkSpecies = []SpeciesID{Pine, Oak, Birch}

// Lookup returns a copy of the catalog entry
func Lookup(id SpeciesID) Species {
	return catalog[id]
}

// Valid reports whether id names a catalog entry
func (id SpeciesID) Valid() bool {
	return id >= 0 && int(id) < SpeciesCount
}

func (id SpeciesID) String() string {
	if !id.Valid() {
		return "unknown"
	}
	return catalog[id].Name
}

// CollisionRadius is the blocking radius around the trunk, camera clearance included
func (s Species) CollisionRadius() float64 {
	return s.TrunkRadius*1.2 + 0.8
}
