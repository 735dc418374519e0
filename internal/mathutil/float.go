package mathutil

import "math/rand"

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Between draws a uniform value in [lo, hi).
func Between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// Jitter draws a uniform value in [-amount, amount).
func Jitter(rng *rand.Rand, amount float64) float64 {
	return (rng.Float64()*2 - 1) * amount
}

// Chance reports true with probability p.
func Chance(rng *rand.Rand, p float64) bool {
	return rng.Float64() < p
}
