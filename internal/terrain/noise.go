package terrain

import (
	"github.com/ojrac/opensimplex-go"
)

// Noise selects the generator behind a height field
type Noise string

const (
	// NoiseTrig is the deterministic layered sine/cosine field
	NoiseTrig Noise = "trig"
	// NoiseSimplex is seeded OpenSimplex octave noise
	NoiseSimplex Noise = "simplex"
)

// Valid reports whether n names a known generator
func (n Noise) Valid() bool {
	return n == NoiseTrig || n == NoiseSimplex
}

const simplexFrequency = 0.02

// GenerateSimplex builds a seeded height field from OpenSimplex octaves.
// Smoothing maps to octave count the same way it maps to layers in Generate,
// and the center disk is flattened identically.
func GenerateSimplex(resolution int, size, maxHeight float64, smoothing int, seed int64) *HeightField {
	hf := newField(resolution, size)
	resolution = hf.resolution

	noise := opensimplex.New(seed)
	octaves := max(11-smoothing, 1)
	for x := 0; x < resolution; x++ {
		for y := 0; y < resolution; y++ {
			hf.cells[x*resolution+y] = maxHeight * octaveNoise(noise, float64(x), float64(y), octaves)
		}
	}

	hf.flattenCenter()
	return hf
}

// octaveNoise sums octaves with halving amplitude, normalized to [-1, 1]
func octaveNoise(n opensimplex.Noise, x, y float64, octaves int) float64 {
	total, amplitude, frequency, norm := 0.0, 1.0, simplexFrequency, 0.0
	for i := 0; i < octaves; i++ {
		total += n.Eval2(x*frequency, y*frequency) * amplitude
		norm += amplitude
		amplitude *= 0.5
		frequency *= 2
	}
	return total / norm
}
