package terrain

import (
	"math"
)

const (
	// Size is the default world extent covered by the terrain along X and Z
	Size = 500.0
	// Segments is the default number of grid cells per side
	Segments = 128
)

// Sampler answers ground height queries at arbitrary world coordinates
type Sampler interface {
	HeightAt(x, z float64) float64
}

// HeightField is a square grid of elevations covering WorldSize x WorldSize units.
// A nil *HeightField is flat terrain: every sample returns 0.
type HeightField struct {
	resolution int
	size       float64
	cells      []float64 // indexed [x*resolution + z]
}

// Generate builds a height field of resolution x resolution samples covering size x size
// world units; size <= 0 means Size. Lower smoothing adds more, rougher layers; the center
// disk is flattened quadratically.
func Generate(resolution int, size, maxHeight float64, smoothing int) *HeightField {
	hf := newField(resolution, size)
	resolution = hf.resolution

	iterations := 11 - smoothing
	for i := 0; i < iterations; i++ {
		scale := 1.0 / float64(i+1)
		fi := float64(i)
		for x := 0; x < resolution; x++ {
			fx := float64(x)
			for y := 0; y < resolution; y++ {
				fy := float64(y)
				hf.cells[x*resolution+y] += maxHeight * scale * 0.5 * (math.Sin(fx*0.1*scale+fi)*math.Cos(fy*0.1*scale+fi) +
					math.Sin(fx*0.05*scale+fy*0.05*scale+fi*0.5))
			}
		}
	}

	hf.flattenCenter()
	return hf
}

func newField(resolution int, size float64) *HeightField {
	if resolution < 2 {
		resolution = 2
	}
	if size <= 0 {
		size = Size
	}
	return &HeightField{
		resolution: resolution,
		size:       size,
		cells:      make([]float64, resolution*resolution),
	}
}

// flattenCenter scales samples inside the central disk by (d/r)^2 so the city sits on level ground
func (hf *HeightField) flattenCenter() {
	resolution := hf.resolution
	// The center cell sits exactly under world origin.
	center := float64(resolution-1) / 2
	flattenRadius := float64(resolution) / 4
	for x := 0; x < resolution; x++ {
		for y := 0; y < resolution; y++ {
			d := math.Hypot(float64(x)-center, float64(y)-center)
			if d < flattenRadius {
				f := d / flattenRadius
				hf.cells[x*resolution+y] *= f * f
			}
		}
	}
}

// FromCells wraps an existing square grid, mostly for tests and tools
func FromCells(resolution int, cells []float64) *HeightField {
	return &HeightField{resolution: resolution, size: Size, cells: cells}
}

// Resolution returns the number of samples per side
func (hf *HeightField) Resolution() int {
	if hf == nil {
		return 0
	}
	return hf.resolution
}

// WorldSize returns the world extent of the field
func (hf *HeightField) WorldSize() float64 {
	if hf == nil {
		return Size
	}
	return hf.size
}

// Cell returns the raw sample at grid index (x, z), or 0 off-grid
func (hf *HeightField) Cell(x, z int) float64 {
	if hf == nil || x < 0 || z < 0 || x >= hf.resolution || z >= hf.resolution {
		return 0
	}
	return hf.cells[x*hf.resolution+z]
}

// CellSpacing returns the world distance between neighbouring samples
func (hf *HeightField) CellSpacing() float64 {
	if hf == nil || hf.resolution < 2 {
		return hf.WorldSize()
	}
	return hf.size / float64(hf.resolution-1)
}

// HeightAt bilinearly interpolates the ground height at world (x, z).
// Coordinates whose lower grid index falls off the field return 0.
func (hf *HeightField) HeightAt(x, z float64) float64 {
	if hf == nil {
		return 0
	}
	segments := hf.resolution - 1
	nx := ((x + hf.size/2) / hf.size) * float64(segments)
	nz := ((z + hf.size/2) / hf.size) * float64(segments)

	x1 := int(math.Floor(nx))
	z1 := int(math.Floor(nz))
	if x1 < 0 || x1 >= hf.resolution || z1 < 0 || z1 >= hf.resolution {
		return 0
	}
	x2 := min(x1+1, segments)
	z2 := min(z1+1, segments)
	wx := nx - float64(x1)
	wz := nz - float64(z1)

	h1 := hf.Cell(x1, z1)
	h2 := hf.Cell(x2, z1)
	h3 := hf.Cell(x1, z2)
	h4 := hf.Cell(x2, z2)

	a := h1*(1-wx) + h2*wx
	b := h3*(1-wx) + h4*wx
	return a*(1-wz) + b*wz
}

// MinMax returns the lowest and highest samples
func (hf *HeightField) MinMax() (lo, hi float64) {
	if hf == nil || len(hf.cells) == 0 {
		return 0, 0
	}
	lo, hi = hf.cells[0], hf.cells[0]
	for _, h := range hf.cells[1:] {
		lo = math.Min(lo, h)
		hi = math.Max(hi, h)
	}
	return lo, hi
}

// Flat reports whether the field represents flat terrain
func (hf *HeightField) Flat() bool {
	return hf == nil
}
