package vegetation

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/mathutil"
	"citywalk/internal/terrain"
)

// ScatterOptions control tree placement around the city
type ScatterOptions struct {
	Count   int
	Species []SpeciesID
	// Extent is the side of the square trees are drawn from, centered at the origin
	Extent float64
	// Exclude rejects positions, typically the city streets and blocks
	Exclude func(x, z float64) bool
}

// AttemptsPerTree bounds rejection sampling to Count*AttemptsPerTree draws
const AttemptsPerTree = 5

// Scatter places up to opts.Count trees uniformly over 90% of the extent.
// When the attempt budget runs out fewer trees are returned.
func Scatter(ground terrain.Sampler, rng *rand.Rand, opts ScatterOptions) []Tree {
	if opts.Count <= 0 || len(opts.Species) == 0 {
		return nil
	}
	half := opts.Extent / 2 * 0.9
	maxAttempts := opts.Count * AttemptsPerTree

	trees := make([]Tree, 0, opts.Count)
	for attempts := 0; len(trees) < opts.Count && attempts < maxAttempts; attempts++ {
		x := mathutil.Jitter(rng, half)
		z := mathutil.Jitter(rng, half)
		if opts.Exclude != nil && opts.Exclude(x, z) {
			continue
		}
		id := opts.Species[rng.Intn(len(opts.Species))]
		trees = append(trees, BuildTree(id, mgl64.Vec3{x, ground.HeightAt(x, z), z}))
	}
	return trees
}
