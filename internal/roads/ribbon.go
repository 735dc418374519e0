package roads

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/geometry"
	"citywalk/internal/terrain"
)

const (
	// LengthSteps and WidthSteps subdivide a terrain-following road
	LengthSteps = 40
	WidthSteps  = 8
	// SurfaceOffset lifts the road above the ground to avoid z-fighting
	SurfaceOffset = 0.15
)

// Color is the asphalt tint shared by every road
const Color = 0x333333

// Segment is a street centerline on the XZ plane (Vec2 holds x, z)
type Segment struct {
	From, To mgl64.Vec2
}

// Length returns the horizontal length of the segment
func (s Segment) Length() float64 {
	return s.To.Sub(s.From).Len()
}

// Flat describes the single quad used on flat terrain
type Flat struct {
	Position mgl64.Vec3
	Rotation float64 // atan2(dz, dx)
	Length   float64
}

// Road is one built street
type Road struct {
	Segment Segment
	Width   float64
	Mesh    *geometry.Mesh
	Group   *geometry.Group

	// Flat is set when the road was built without a height field
	Flat *Flat
	// Path is the sampled centerline when the road follows terrain
	Path *Path
}

// Material returns the road surface material
func Material() geometry.Material {
	mat := geometry.Standard(geometry.Hex(Color), 0.9)
	mat.Metalness = 0.1
	return mat
}

// Build creates a road of the given width from p1 to p2.
// Without a height field the road is one flat quad; otherwise it is a ribbon
// of LengthSteps x WidthSteps cells that follows the ground.
func Build(field *terrain.HeightField, p1, p2 mgl64.Vec2, width float64) Road {
	seg := Segment{From: p1, To: p2}
	road := Road{Segment: seg, Width: width, Group: geometry.NewGroup("road")}

	if field == nil {
		d := p2.Sub(p1)
		flat := &Flat{
			Position: mgl64.Vec3{(p1[0] + p2[0]) / 2, SurfaceOffset, (p1[1] + p2[1]) / 2},
			Rotation: math.Atan2(d[1], d[0]),
			Length:   d.Len(),
		}
		road.Flat = flat
		road.Mesh = geometry.Plane(flat.Length, width, 1, 1)
		road.Group.Add("surface", road.Mesh, Material(), geometry.TRS(flat.Position, -flat.Rotation, mgl64.Vec3{1, 1, 1}))
		return road
	}

	road.Path = SamplePath(field, seg, LengthSteps)
	road.Mesh = ribbon(field, road.Path, width)
	road.Group.Add("surface", road.Mesh, Material(), mgl64.Ident4())
	return road
}

// ribbon triangulates a strip along path, sampling the ground under every vertex
func ribbon(ground terrain.Sampler, path *Path, width float64) *geometry.Mesh {
	m := &geometry.Mesh{}
	half := width / 2

	for i := 0; i <= LengthSteps; i++ {
		t := float64(i) / LengthSteps
		p := path.Point(t)
		tan := path.Tangent(t)
		normal := mgl64.Vec3{-tan[2], 0, tan[0]}
		if normal.Len() > 0 {
			normal = normal.Normalize()
		}

		for j := 0; j <= WidthSteps; j++ {
			w := float64(j)/WidthSteps*2 - 1
			x := p[0] + normal[0]*w*half
			z := p[2] + normal[2]*w*half
			y := ground.HeightAt(x, z) + SurfaceOffset
			m.AddVertex(mgl64.Vec3{x, y, z}, mgl64.Vec2{t, float64(j) / WidthSteps})
		}
	}

	row := uint32(WidthSteps + 1)
	for i := uint32(0); i < LengthSteps; i++ {
		for j := uint32(0); j < WidthSteps; j++ {
			a := i*row + j
			b := a + 1
			c := (i+1)*row + j
			d := c + 1
			m.AddTriangle(a, b, c)
			m.AddTriangle(b, d, c)
		}
	}
	m.ComputeNormals()
	return m
}
