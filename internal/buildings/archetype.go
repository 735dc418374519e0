package buildings

import (
	"math/rand"
)

// Archetype is the structural style of a building
type Archetype int

const (
	Simple Archetype = iota
	Modern
	Skyscraper
	Residential
	Office
	Industrial
	Landmark
)

// ArchetypeCount is the number of archetypes
const ArchetypeCount = 7

func (a Archetype) String() string {
	switch a {
	case Simple:
		return "simple"
	case Modern:
		return "modern"
	case Skyscraper:
		return "skyscraper"
	case Residential:
		return "residential"
	case Office:
		return "office"
	case Industrial:
		return "industrial"
	case Landmark:
		return "landmark"
	default:
		return "unknown"
	}
}

// shaper returns the geometry strategy for the archetype
func (a Archetype) shaper() shaper {
	switch a {
	case Simple:
		return simpleShaper{}
	case Modern:
		return modernShaper{}
	case Skyscraper:
		return skyscraperShaper{}
	case Residential:
		return residentialShaper{}
	case Office:
		return officeShaper{}
	case Industrial:
		return industrialShaper{}
	case Landmark:
		return landmarkShaper{}
	default:
		return simpleShaper{}
	}
}

// Height thresholds for archetype selection
const (
	TallHeight  = 15.0
	ShortHeight = 8.0
)

var rotation = [...]Archetype{Modern, Skyscraper, Residential, Office, Industrial, Landmark}

// Chooser assigns archetypes. Tall and short buildings draw from weighted lists;
// everything in between cycles through a fixed rotation.
type Chooser struct {
	counter int
}

// Choose picks the archetype for a building of the given height.
// The rotation counter advances on every call.
func (c *Chooser) Choose(rng *rand.Rand, height float64) Archetype {
	c.counter = (c.counter + 1) % len(rotation)

	switch {
	case height > TallHeight:
		r := rng.Float64()
		switch {
		case r < 0.6:
			return Skyscraper
		case r < 0.8:
			return Modern
		default:
			return Landmark
		}
	case height < ShortHeight:
		r := rng.Float64()
		switch {
		case r < 0.5:
			return Residential
		case r < 0.8:
			return Industrial
		default:
			return Office
		}
	default:
		return rotation[c.counter]
	}
}

// Reset rewinds the rotation counter
func (c *Chooser) Reset() {
	c.counter = 0
}
