package buildings

import (
	"math"
	"math/rand"

	colorful "github.com/lucasb-eyer/go-colorful"

	"citywalk/internal/geometry"
	"citywalk/internal/mathutil"
)

// Packing constants, relative to the nominal building size
const (
	PerSide        = 3
	PositionJitter = 0.15
	MinSizeRatio   = 0.6
	MaxSizeRatio   = 0.8
	SpacingRatio   = 0.05
	MinHeight      = 5.0
)

// Spec is one packed building footprint
type Spec struct {
	X, Z   float64
	Size   float64
	Height float64
	Color  colorful.Color
}

// Packer lays out a 3x3 cluster of buildings inside one block
type Packer struct {
	BuildingSize float64
	MaxHeight    float64
	Rand         *rand.Rand
}

// MinSpacing is the gap required between two accepted footprints
func (p *Packer) MinSpacing() float64 {
	return p.BuildingSize * SpacingRatio
}

// Pack jitters the nine nominal positions around the block center and keeps each
// candidate that is not too close to one already accepted. Rejected candidates are
// skipped, not retried, so the result holds between 1 and 9 specs.
func (p *Packer) Pack(centerX, centerZ float64) []Spec {
	nominal := p.BuildingSize
	half := nominal * (PerSide - 1) / 2
	spacing := p.MinSpacing()

	specs := make([]Spec, 0, PerSide*PerSide)
	for i := 0; i < PerSide; i++ {
		for j := 0; j < PerSide; j++ {
			x := centerX - half + float64(i)*nominal + mathutil.Jitter(p.Rand, PositionJitter*nominal)
			z := centerZ - half + float64(j)*nominal + mathutil.Jitter(p.Rand, PositionJitter*nominal)
			size := nominal * mathutil.Between(p.Rand, MinSizeRatio, MaxSizeRatio)
			height := mathutil.Between(p.Rand, MinHeight, p.MaxHeight)
			color := geometry.RGB(
				mathutil.Between(p.Rand, 0.5, 0.7),
				mathutil.Between(p.Rand, 0.5, 0.7),
				mathutil.Between(p.Rand, 0.6, 0.9),
			)

			if tooClose(specs, x, z, size, spacing) {
				continue
			}
			specs = append(specs, Spec{X: x, Z: z, Size: size, Height: height, Color: color})
		}
	}
	return specs
}

func tooClose(accepted []Spec, x, z, size, spacing float64) bool {
	for _, s := range accepted {
		if math.Hypot(x-s.X, z-s.Z) < (size+s.Size)/2+spacing {
			return true
		}
	}
	return false
}
