package city

import (
	"bytes"
	"log"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/camera"
	"citywalk/internal/collision"
	"citywalk/internal/lod"
	"citywalk/internal/scene"
	"citywalk/internal/terrain"
)

func buildingsOnly() LandUsePicker {
	return LandUsePicker{Rand: rand.New(rand.NewSource(1))}
}

func TestPlanTilesTheCity(t *testing.T) {
	for grid := 1; grid <= 7; grid++ {
		for _, street := range []float64{5, 10, 20} {
			block := 30.0
			total, blocks := Plan(grid, block, street, buildingsOnly())

			want := float64(grid)*block + float64(grid+1)*street
			if math.Abs(total-want) > 1e-9 {
				t.Errorf("grid %d street %v: total %v, want %v", grid, street, total, want)
			}
			if len(blocks) != grid*grid {
				t.Fatalf("grid %d: %d blocks", grid, len(blocks))
			}

			half := total / 2
			for i, b := range blocks {
				if math.Abs(b.Center[0]) >= half || math.Abs(b.Center[1]) >= half {
					t.Errorf("block %d center %v outside the city", i, b.Center)
				}
				// a street runs along every block edge
				if b.Center[0]-block/2 < -half+street-1e-9 || b.Center[0]+block/2 > half-street+1e-9 {
					t.Errorf("block %d leaves no street on the x edges", i)
				}
				for j := i + 1; j < len(blocks); j++ {
					o := blocks[j]
					if math.Abs(b.Center[0]-o.Center[0]) < block && math.Abs(b.Center[1]-o.Center[1]) < block {
						t.Errorf("blocks %d and %d overlap", i, j)
					}
				}
			}
		}
	}
}

func TestPlanOrder(t *testing.T) {
	_, blocks := Plan(2, 30, 10, buildingsOnly())
	if blocks[0].Row != 0 || blocks[0].Col != 0 || blocks[1].Col != 1 || blocks[2].Row != 1 {
		t.Errorf("blocks not row-major: %+v", blocks)
	}
	// -45 + 10 + 15
	if !blocks[0].Center.ApproxEqual(mgl64.Vec2{-20, -20}) {
		t.Errorf("first block center %v", blocks[0].Center)
	}
}

func TestLandUsePicker(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	tests := []struct {
		name   string
		picker LandUsePicker
		want   LandUse
	}{
		{"everything disabled", LandUsePicker{ParkProbability: 1, LakeProbability: 1, Rand: rng}, Buildings},
		{"certain park", LandUsePicker{ParksEnabled: true, ParkProbability: 1, WaterEnabled: true, LakeProbability: 1, Rand: rng}, Park},
		{"park never, lake always", LandUsePicker{ParksEnabled: true, WaterEnabled: true, LakeProbability: 1, Rand: rng}, Lake},
		{"water only", LandUsePicker{WaterEnabled: true, LakeProbability: 1, Rand: rng}, Lake},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				if got := tt.picker.Pick(); got != tt.want {
					t.Fatalf("got %v, want %v", got, tt.want)
				}
			}
		})
	}

	t.Run("frequencies", func(t *testing.T) {
		p := LandUsePicker{ParksEnabled: true, ParkProbability: 0.2, WaterEnabled: true, LakeProbability: 0.15, Rand: rand.New(rand.NewSource(9))}
		counts := map[LandUse]int{}
		const n = 20000
		for i := 0; i < n; i++ {
			counts[p.Pick()]++
		}
		park := float64(counts[Park]) / n
		lake := float64(counts[Lake]) / n
		if math.Abs(park-0.2) > 0.02 || math.Abs(lake-0.8*0.15) > 0.02 {
			t.Errorf("park %.3f lake %.3f", park, lake)
		}
	})
}

func TestStreetsAndCorners(t *testing.T) {
	lines := Streets(3, 30, 10)
	if len(lines) != 8 {
		t.Fatalf("got %d streets", len(lines))
	}
	total := TotalSize(3, 30, 10)
	_, blocks := Plan(3, 30, 10, buildingsOnly())
	for i, s := range lines {
		if math.Abs(s.Length()-total) > 1e-9 {
			t.Errorf("street %d length %v", i, s.Length())
		}
		for _, b := range blocks {
			// centerlines never cross a block
			if s.From[1] == s.To[1] && math.Abs(s.From[1]-b.Center[1]) < b.Size/2 {
				t.Errorf("street %d crosses block %v", i, b.Center)
			}
			if s.From[0] == s.To[0] && math.Abs(s.From[0]-b.Center[0]) < b.Size/2 {
				t.Errorf("street %d crosses block %v", i, b.Center)
			}
		}
	}

	corners := Corners(3, 30, 10)
	if len(corners) != 16 {
		t.Fatalf("got %d corners", len(corners))
	}
	if !corners[0].ApproxEqual(mgl64.Vec2{-total/2 + 5, -total/2 + 5}) {
		t.Errorf("first corner %v", corners[0])
	}
}

func smallCity() Params {
	p := DefaultParams()
	p.GridSize = 3
	p.StreetWidth = 10
	p.BuildingSize = 10
	p.MaxBuildingHeight = 20
	p.ParksEnabled = false
	p.WaterEnabled = false
	p.Terrain.Enabled = false
	p.TreeCount = 10
	p.Seed = 42
	return p
}

func TestRegenerateBuildingsOnly(t *testing.T) {
	graph := scene.NewGraph()
	m := New(graph)
	stats := m.Regenerate(smallCity())

	if stats.Blocks != 9 || len(m.Blocks()) != 9 {
		t.Fatalf("got %d blocks, want 9", stats.Blocks)
	}
	perBlock := make(map[int]int)
	for i, b := range m.Blocks() {
		if b.Use != Buildings {
			t.Errorf("block %d is %v", i, b.Use)
		}
	}
	for _, b := range m.Buildings() {
		perBlock[nearestBlock(m.Blocks(), b.Spec.X, b.Spec.Z)]++
	}
	for i := range m.Blocks() {
		if n := perBlock[i]; n < 1 || n > 9 {
			t.Errorf("block %d holds %d buildings", i, n)
		}
	}

	if stats.Roads != 8 || stats.Lamps != 16 {
		t.Errorf("roads %d lamps %d, want 8 and 16", stats.Roads, stats.Lamps)
	}
	if stats.Parks != 0 || stats.Lakes != 0 {
		t.Errorf("parks and water are disabled")
	}
	s := m.Collisions()
	if s.Count(collision.CategoryBuilding) != stats.Buildings || s.Count(collision.CategoryStreetLamp) != 16 || s.Count(collision.CategoryTree) != stats.Trees {
		t.Errorf("volume counts do not match the generated objects")
	}
	if s.Len() != stats.Volumes {
		t.Errorf("stats volumes %d, store %d", stats.Volumes, s.Len())
	}
	// terrain + roads + lamps + buildings + trees
	if want := 1 + 8 + 16 + stats.Buildings + stats.Trees; graph.Len() != want {
		t.Errorf("scene holds %d entries, want %d", graph.Len(), want)
	}

	total := m.TotalSize()
	for _, tr := range m.Trees() {
		if InCity(tr.Position[0], tr.Position[2], total) {
			t.Errorf("tree at %v inside the city", tr.Position)
		}
	}
}

func nearestBlock(blocks []Block, x, z float64) int {
	best, bestD := 0, math.Inf(1)
	for i, b := range blocks {
		if d := math.Hypot(b.Center[0]-x, b.Center[1]-z); d < bestD {
			best, bestD = i, d
		}
	}
	return best
}

func TestResetThenRegenerate(t *testing.T) {
	graph := scene.NewGraph()
	m := New(graph)

	first := smallCity()
	first.ParksEnabled, first.WaterEnabled = true, true
	first.ParkProbability, first.LakeProbability = 0.5, 0.5
	first.Terrain.Enabled = true
	first.Terrain.Segments = 32
	m.Regenerate(first)

	m.Reset()
	m.Reset()
	if m.Collisions().Len() != 0 || graph.Len() != 0 {
		t.Fatalf("reset left %d volumes and %d scene entries", m.Collisions().Len(), graph.Len())
	}

	second := smallCity()
	second.Seed = 7
	stats := m.Regenerate(second)

	fresh := New(nil)
	want := fresh.Regenerate(second)
	if stats.Volumes != want.Volumes || m.Collisions().Len() != want.Volumes {
		t.Errorf("volumes after regenerate %d, fresh city has %d", m.Collisions().Len(), want.Volumes)
	}
}

func TestRegenerateReplacesPreviousCity(t *testing.T) {
	graph := scene.NewGraph()
	m := New(graph)
	p := smallCity()
	a := m.Regenerate(p)
	p.Seed = 8
	b := m.Regenerate(p)
	if m.Collisions().Len() != b.Volumes {
		t.Errorf("store holds %d volumes, second run produced %d (first %d)", m.Collisions().Len(), b.Volumes, a.Volumes)
	}
}

func TestSeededRunsMatch(t *testing.T) {
	p := smallCity()
	p.Terrain.Enabled = true
	p.Terrain.Segments = 32
	a, b := New(nil), New(nil)
	a.Regenerate(p)
	b.Regenerate(p)

	if len(a.Buildings()) != len(b.Buildings()) {
		t.Fatalf("building counts differ: %d vs %d", len(a.Buildings()), len(b.Buildings()))
	}
	for i := range a.Buildings() {
		x, y := a.Buildings()[i], b.Buildings()[i]
		if x.Spec != y.Spec || x.Archetype() != y.Archetype() {
			t.Errorf("building %d differs", i)
		}
	}
	if a.Seed() != 42 {
		t.Errorf("seed %d", a.Seed())
	}

	p.Seed = 0
	c := New(nil)
	c.Regenerate(p)
	if c.Seed() == 0 {
		t.Errorf("zero seed should be replaced by a clock seed")
	}
}

func TestModelCollision(t *testing.T) {
	m := New(nil)
	m.Regenerate(smallCity())
	b := m.Buildings()[0]
	inside := b.Bounds.Center()

	pos := inside
	if !m.CheckCollision(&pos, camera.FirstPerson) {
		t.Errorf("walking into a building should be blocked")
	}
	pos = inside
	if m.CheckCollision(&pos, camera.Fly) {
		t.Errorf("flying through a building should not be blocked")
	}

	far := mgl64.Vec3{1000, 2, 0}
	if !m.CheckCollision(&far, camera.Fly) || far[0] != 250 {
		t.Errorf("leaving the terrain should clamp and block, got %v", far)
	}
}

func TestUpdateLODs(t *testing.T) {
	m := New(nil)
	m.Regenerate(smallCity())
	target := m.Buildings()[0]

	m.UpdateLODs(target.Position, camera.FirstPerson)
	if target.Visible() != lod.High {
		t.Errorf("building under the camera shows %v", target.Visible())
	}

	far := mgl64.Vec3{0, 2000, 0}
	m.UpdateLODs(far, camera.Aerial)
	for _, b := range m.Buildings() {
		if b.Visible() != lod.High {
			t.Fatalf("aerial view shows %v", b.Visible())
		}
	}
	if n := m.UpdateLODs(far, camera.Aerial); n != 0 {
		t.Errorf("repeating a pass should switch nothing, got %d", n)
	}

	m.UpdateLODs(far, camera.Fly)
	for _, b := range m.Buildings() {
		if b.Visible() != lod.Low {
			t.Fatalf("distant building shows %v", b.Visible())
		}
	}
}

func TestUpdateLamps(t *testing.T) {
	m := New(nil)
	m.Regenerate(smallCity())
	lamp := m.Lamps()[0]

	m.UpdateLamps(lamp.Position, 0.5)
	if lamp.State.BulbIntensity != 0.2 {
		t.Errorf("daytime bulb %v", lamp.State.BulbIntensity)
	}
	m.UpdateLamps(lamp.Position, 0.9)
	if !lamp.State.RealLight {
		t.Errorf("nearby lamp should cast real light at night")
	}
}

func TestDegradedPlacementIsLogged(t *testing.T) {
	var buf bytes.Buffer
	m := New(nil, WithLogger(log.New(&buf, "", 0)))
	p := smallCity()
	// a city covering the whole terrain leaves no room for trees
	p.GridSize = 7
	p.BuildingSize = 25
	p.TreeCount = 5
	stats := m.Regenerate(p)

	if stats.Trees != 0 {
		t.Errorf("placed %d trees on a full terrain", stats.Trees)
	}
	if !strings.Contains(buf.String(), "placed 0 of 5 trees") {
		t.Errorf("missing degraded placement message in %q", buf.String())
	}
}

func TestUpdateLODsLargeCity(t *testing.T) {
	p := smallCity()
	p.GridSize = 7
	p.TreeCount = 0
	m := New(nil)
	m.Regenerate(p)

	pos := mgl64.Vec3{30, 2, -45}
	m.UpdateLODs(pos, camera.FirstPerson)
	counts := map[lod.Level]int{}
	for i, b := range m.Buildings() {
		want := lod.Select(b.Distance(pos), camera.FirstPerson, p.LOD)
		if b.Visible() != want {
			t.Fatalf("building %d shows %v, want %v", i, b.Visible(), want)
		}
		counts[want]++
	}
	if counts[lod.High] == 0 || counts[lod.Low] == 0 {
		t.Errorf("expected near and far buildings, got %v", counts)
	}
}

func TestUpdateLampsLargeCity(t *testing.T) {
	p := smallCity()
	p.GridSize = 7
	p.TreeCount = 0
	m := New(nil)
	m.Regenerate(p)
	if len(m.Lamps()) < parallelLampThreshold {
		t.Fatalf("only %d lamps", len(m.Lamps()))
	}

	pos := mgl64.Vec3{30, 2, -45}
	if n := m.UpdateLamps(pos, 0.9); n == 0 {
		t.Error("night pass switched no lamps")
	}
	for i, l := range m.Lamps() {
		want := lod.SelectLamp(l.Distance(pos), true, p.Lamps)
		if l.State != want {
			t.Fatalf("lamp %d state %+v, want %+v", i, l.State, want)
		}
	}
	if n := m.UpdateLamps(pos, 0.9); n != 0 {
		t.Errorf("repeating a pass switched %d lamps", n)
	}
}

func TestSimplexTerrainFollowsSeed(t *testing.T) {
	p := smallCity()
	p.Terrain.Enabled = true
	p.Terrain.Noise = terrain.NoiseSimplex
	p.Terrain.Segments = 32

	a := New(nil)
	a.Regenerate(p)
	b := New(nil)
	b.Regenerate(p)
	p.Seed = 43
	c := New(nil)
	c.Regenerate(p)

	x, z := 180.0, -170.0
	if a.HeightAt(x, z) != b.HeightAt(x, z) {
		t.Error("same seed gave different ground")
	}
	if a.HeightAt(x, z) == c.HeightAt(x, z) && a.HeightAt(-x, z) == c.HeightAt(-x, z) {
		t.Error("different seeds gave the same ground")
	}
}
