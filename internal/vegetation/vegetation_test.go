package vegetation

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/terrain"
)

type constGround float64

func (g constGround) HeightAt(x, z float64) float64 { return float64(g) }

func TestCatalog(t *testing.T) {
	if SpeciesCount != 4 {
		t.Fatalf("expected 4 species, got %d", SpeciesCount)
	}
	pine := Lookup(Pine)
	if pine.Shape != FoliageCone || pine.TrunkHeight != 3.5 {
		t.Errorf("unexpected pine entry %+v", pine)
	}

	// Lookup returns a copy; the catalog itself is read-only.
	pine.TrunkHeight = 100
	if Lookup(Pine).TrunkHeight != 3.5 {
		t.Errorf("catalog entry was mutated through Lookup")
	}
	if SpeciesID(7).Valid() || !Birch.Valid() {
		t.Errorf("Valid boundaries wrong")
	}
}

func TestBuildTree(t *testing.T) {
	pos := mgl64.Vec3{10, 3, -4}

	t.Run("pine", func(t *testing.T) {
		tree := BuildTree(Pine, pos)
		if tree.Group.PartCount() != 2 {
			t.Errorf("pine should have trunk and foliage, got %d parts", tree.Group.PartCount())
		}
		b := tree.Group.Bounds()
		if math.Abs(b.Min[1]-3) > 1e-9 {
			t.Errorf("tree should stand on the ground, min y = %v", b.Min[1])
		}
		if math.Abs(b.Max[1]-(3+3.5+7)) > 1e-9 {
			t.Errorf("pine top = %v, want %v", b.Max[1], 3+3.5+7)
		}
		if tree.CollisionCenter != (mgl64.Vec3{10, 3 + 1.75, -4}) {
			t.Errorf("collision center %v", tree.CollisionCenter)
		}
		if math.Abs(tree.CollisionRadius-(0.5*1.2+0.8)) > 1e-9 {
			t.Errorf("collision radius %v", tree.CollisionRadius)
		}
	})

	t.Run("palm", func(t *testing.T) {
		tree := BuildTree(Palm, pos)
		if tree.Group.PartCount() != 1+palmLeaves {
			t.Errorf("palm should have trunk and %d leaves, got %d parts", palmLeaves, tree.Group.PartCount())
		}
	})
}

func TestScatter(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	exclude := func(x, z float64) bool { return math.Abs(x) < 50 && math.Abs(z) < 50 }

	trees := Scatter(constGround(1.5), rng, ScatterOptions{
		Count:   40,
		Species: []SpeciesID{Oak, Birch},
		Extent:  terrain.Size,
		Exclude: exclude,
	})

	if len(trees) == 0 || len(trees) > 40 {
		t.Fatalf("placed %d trees", len(trees))
	}
	limit := terrain.Size / 2 * 0.9
	for _, tr := range trees {
		p := tr.Position
		if exclude(p[0], p[2]) {
			t.Errorf("tree inside excluded area at %v", p)
		}
		if math.Abs(p[0]) > limit || math.Abs(p[2]) > limit {
			t.Errorf("tree outside 90%% extent at %v", p)
		}
		if p[1] != 1.5 {
			t.Errorf("tree not on the ground: %v", p)
		}
		if tr.Species != Oak && tr.Species != Birch {
			t.Errorf("unexpected species %v", tr.Species)
		}
	}
}

func TestScatterGivesUpWhenEverythingExcluded(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	trees := Scatter(constGround(0), rng, ScatterOptions{
		Count:   10,
		Species: []SpeciesID{Pine},
		Extent:  100,
		Exclude: func(x, z float64) bool { return true },
	})
	if len(trees) != 0 {
		t.Errorf("expected no trees, got %d", len(trees))
	}
}
