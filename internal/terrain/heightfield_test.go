package terrain

import (
	"math"
	"testing"
)

func TestFlatTerrainReturnsZero(t *testing.T) {
	var hf *HeightField
	points := [][2]float64{{0, 0}, {-1000, 3}, {249.9, -249.9}, {1e9, -1e9}, {-0.5, 17.25}}
	for _, p := range points {
		if h := hf.HeightAt(p[0], p[1]); h != 0 {
			t.Errorf("flat HeightAt(%v, %v) = %v, want 0", p[0], p[1], h)
		}
	}

	var s Sampler = hf
	if s.HeightAt(10, 10) != 0 {
		t.Errorf("nil field through Sampler should be flat")
	}
}

func TestCenterIsFlattened(t *testing.T) {
	for _, maxHeight := range []float64{5, 20, 80} {
		for _, smoothing := range []int{1, 5, 10} {
			hf := Generate(Segments+1, Size, maxHeight, smoothing)
			if h := hf.HeightAt(0, 0); math.Abs(h) > 1e-12 {
				t.Errorf("HeightAt(0,0) = %v for height %v smoothing %d, want 0", h, maxHeight, smoothing)
			}
		}
	}
}

func TestFlattenFalloffIsQuadratic(t *testing.T) {
	raw := Generate(Segments+1, Size, 20, 5)
	// Inside the disk each cell is the layer sum scaled by (d/r)^2.
	center := Segments / 2
	radius := float64(Segments+1) / 4
	for dx := 1; dx < int(radius); dx += 5 {
		d := float64(dx)
		f := (d / radius) * (d / radius)
		got := raw.Cell(center+dx, center)
		unflattened := layerSum(center+dx, center, 20, 5)
		if math.Abs(got-unflattened*f) > 1e-9 {
			t.Errorf("cell at distance %v = %v, want %v", d, got, unflattened*f)
		}
	}
}

func layerSum(x, y int, maxHeight float64, smoothing int) float64 {
	var h float64
	for i := 0; i < 11-smoothing; i++ {
		scale := 1.0 / float64(i+1)
		fi := float64(i)
		fx, fy := float64(x), float64(y)
		h += maxHeight * scale * 0.5 * (math.Sin(fx*0.1*scale+fi)*math.Cos(fy*0.1*scale+fi) +
			math.Sin(fx*0.05*scale+fy*0.05*scale+fi*0.5))
	}
	return h
}

func TestHeightAtIsContinuousWithinCell(t *testing.T) {
	hf := Generate(Segments+1, Size, 30, 3)
	spacing := hf.CellSpacing()

	for _, origin := range [][2]float64{{-200, -200}, {100.3, -50.7}, {180, 190}} {
		// Grid index of the cell containing origin.
		ix := int(math.Floor((origin[0] + Size/2) / spacing))
		iz := int(math.Floor((origin[1] + Size/2) / spacing))
		x0 := float64(ix)*spacing - Size/2
		z0 := float64(iz)*spacing - Size/2

		corners := []float64{hf.Cell(ix, iz), hf.Cell(ix+1, iz), hf.Cell(ix, iz+1), hf.Cell(ix+1, iz+1)}
		lo, hi := corners[0], corners[0]
		for _, c := range corners[1:] {
			lo = math.Min(lo, c)
			hi = math.Max(hi, c)
		}

		a := hf.HeightAt(x0+0.1*spacing, z0+0.2*spacing)
		b := hf.HeightAt(x0+0.9*spacing, z0+0.7*spacing)
		if math.Abs(a-b) > hi-lo+1e-9 {
			t.Errorf("samples in one cell differ by %v, corner delta is %v", math.Abs(a-b), hi-lo)
		}
	}
}

func TestHeightAtMatchesGridPoints(t *testing.T) {
	hf := Generate(Segments+1, Size, 25, 4)
	spacing := hf.CellSpacing()
	for _, idx := range [][2]int{{0, 0}, {10, 90}, {127, 3}} {
		x := float64(idx[0])*spacing - Size/2
		z := float64(idx[1])*spacing - Size/2
		if got, want := hf.HeightAt(x, z), hf.Cell(idx[0], idx[1]); math.Abs(got-want) > 1e-9 {
			t.Errorf("HeightAt on grid point %v = %v, want %v", idx, got, want)
		}
	}
}

func TestOffGridReturnsZero(t *testing.T) {
	hf := Generate(Segments+1, Size, 25, 4)
	if h := hf.HeightAt(-260, 0); h != 0 {
		t.Errorf("HeightAt west of the field = %v, want 0", h)
	}
	if h := hf.HeightAt(0, 300); h != 0 {
		t.Errorf("HeightAt south of the field = %v, want 0", h)
	}
}

func TestBuildMesh(t *testing.T) {
	t.Run("flat", func(t *testing.T) {
		m := BuildMesh(nil, 16)
		for _, p := range m.Positions {
			if p[1] != 0 {
				t.Fatalf("flat terrain vertex at height %v", p[1])
			}
		}
		if m.VertexCount() != 17*17 {
			t.Errorf("expected 289 vertices, got %d", m.VertexCount())
		}
	})

	t.Run("relief", func(t *testing.T) {
		hf := Generate(Segments+1, Size, 20, 5)
		m := BuildMesh(hf, Segments)
		lo, hi := hf.MinMax()
		for _, p := range m.Positions {
			if p[1] < lo-1e-9 || p[1] > hi+1e-9 {
				t.Fatalf("vertex height %v outside field range %v..%v", p[1], lo, hi)
			}
		}
	})
}

func TestSimplexFieldIsSeeded(t *testing.T) {
	a := GenerateSimplex(Segments+1, Size, 20, 5, 99)
	b := GenerateSimplex(Segments+1, Size, 20, 5, 99)
	c := GenerateSimplex(Segments+1, Size, 20, 5, 100)

	same, differs := true, false
	for x := 0; x < a.Resolution(); x += 7 {
		for z := 0; z < a.Resolution(); z += 7 {
			if a.Cell(x, z) != b.Cell(x, z) {
				same = false
			}
			if a.Cell(x, z) != c.Cell(x, z) {
				differs = true
			}
		}
	}
	if !same {
		t.Error("same seed produced different fields")
	}
	if !differs {
		t.Error("different seeds produced identical fields")
	}
}

func TestSimplexFieldShape(t *testing.T) {
	const maxHeight = 30.0
	hf := GenerateSimplex(Segments+1, Size, maxHeight, 3, 7)
	if h := hf.HeightAt(0, 0); math.Abs(h) > 1e-12 {
		t.Errorf("center height %v, want 0", h)
	}
	lo, hi := hf.MinMax()
	if lo < -maxHeight*1.1 || hi > maxHeight*1.1 {
		t.Errorf("samples %v..%v exceed +-%v", lo, hi, maxHeight)
	}
	if hi-lo < 1e-6 {
		t.Error("field is flat")
	}
}

func TestNoiseValid(t *testing.T) {
	for _, n := range []Noise{NoiseTrig, NoiseSimplex} {
		if !n.Valid() {
			t.Errorf("%q should be valid", n)
		}
	}
	if Noise("perlin").Valid() {
		t.Error("unknown noise reported valid")
	}
}

func TestGenerateWorldSize(t *testing.T) {
	hf := Generate(33, 300, 20, 5)
	if hf.WorldSize() != 300 {
		t.Errorf("world size %v, want 300", hf.WorldSize())
	}
	if got, want := hf.CellSpacing(), 300.0/32; math.Abs(got-want) > 1e-12 {
		t.Errorf("cell spacing %v, want %v", got, want)
	}
	// the far corner sample maps to the field edge
	if got, want := hf.HeightAt(149.999, 149.999), hf.Cell(32, 32); math.Abs(got-want) > 0.5 {
		t.Errorf("edge height %v, corner cell %v", got, want)
	}
	if h := hf.HeightAt(-200, 0); h != 0 {
		t.Errorf("sample outside a 300 field = %v", h)
	}

	if d := Generate(33, 0, 20, 5); d.WorldSize() != Size {
		t.Errorf("zero size should fall back to %v, got %v", Size, d.WorldSize())
	}
	if s := GenerateSimplex(33, 300, 20, 5, 1); s.WorldSize() != 300 {
		t.Errorf("simplex world size %v", s.WorldSize())
	}
}
