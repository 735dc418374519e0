package mathutil

import (
	"math/rand"
	"testing"
)

func TestIntHelpers(t *testing.T) {
	if IntMin(3, 5) != 3 || IntMax(3, 5) != 5 {
		t.Errorf("IntMin/IntMax wrong")
	}
	if IntClamp(9, 1, 7) != 7 || IntClamp(0, 1, 7) != 1 || IntClamp(4, 1, 7) != 4 {
		t.Errorf("IntClamp wrong")
	}
}

func TestFloatHelpers(t *testing.T) {
	if Clamp(-1, 0, 1) != 0 || Clamp(2, 0, 1) != 1 || Clamp(0.5, 0, 1) != 0.5 {
		t.Errorf("Clamp wrong")
	}

	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 1000; i++ {
		if v := Between(rng, 0.6, 0.8); v < 0.6 || v >= 0.8 {
			t.Fatalf("Between out of range: %v", v)
		}
		if v := Jitter(rng, 1.5); v < -1.5 || v >= 1.5 {
			t.Fatalf("Jitter out of range: %v", v)
		}
	}
	if Chance(rng, 0) {
		t.Errorf("Chance(0) returned true")
	}
}
