package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box creates an axis-aligned box of the given size centered at the origin.
// Each face has its own 4 vertices so shading stays flat.
func Box(w, h, d float64) *Mesh {
	hw, hh, hd := w/2, h/2, d/2
	m := &Mesh{}
	faces := [6][3]mgl64.Vec3{
		{{hw, 0, 0}, {0, 0, -hd}, {0, hh, 0}},
		{{-hw, 0, 0}, {0, 0, hd}, {0, hh, 0}},
		{{0, hh, 0}, {hw, 0, 0}, {0, 0, -hd}},
		{{0, -hh, 0}, {hw, 0, 0}, {0, 0, hd}},
		{{0, 0, hd}, {hw, 0, 0}, {0, hh, 0}},
		{{0, 0, -hd}, {-hw, 0, 0}, {0, hh, 0}},
	}
	for _, f := range faces {
		c, u, v := f[0], f[1], f[2]
		i0 := m.AddVertex(c.Sub(u).Sub(v), mgl64.Vec2{0, 0})
		i1 := m.AddVertex(c.Add(u).Sub(v), mgl64.Vec2{1, 0})
		i2 := m.AddVertex(c.Add(u).Add(v), mgl64.Vec2{1, 1})
		i3 := m.AddVertex(c.Sub(u).Add(v), mgl64.Vec2{0, 1})
		m.AddTriangle(i0, i1, i2)
		m.AddTriangle(i0, i2, i3)
	}
	m.ComputeNormals()
	return m
}

// Cylinder creates a capped cylinder (or frustum) along Y centered at the origin.
// A zero radius omits that cap, which is how Cone is built.
func Cylinder(radiusTop, radiusBottom, height float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	half := height / 2
	ring := func(r, y float64, v float64) []uint32 {
		idx := make([]uint32, segments+1)
		for i := 0; i <= segments; i++ {
			u := float64(i) / float64(segments)
			theta := u * 2 * math.Pi
			idx[i] = m.AddVertex(mgl64.Vec3{r * math.Sin(theta), y, r * math.Cos(theta)}, mgl64.Vec2{u, v})
		}
		return idx
	}

	top := ring(radiusTop, half, 1)
	bottom := ring(radiusBottom, -half, 0)
	for i := 0; i < segments; i++ {
		m.AddTriangle(top[i], bottom[i], bottom[i+1])
		if radiusTop > 0 {
			m.AddTriangle(top[i], bottom[i+1], top[i+1])
		}
	}

	if radiusTop > 0 {
		capRing := ring(radiusTop, half, 1)
		center := m.AddVertex(mgl64.Vec3{0, half, 0}, mgl64.Vec2{0.5, 0.5})
		for i := 0; i < segments; i++ {
			m.AddTriangle(center, capRing[i], capRing[i+1])
		}
	}
	if radiusBottom > 0 {
		capRing := ring(radiusBottom, -half, 0)
		center := m.AddVertex(mgl64.Vec3{0, -half, 0}, mgl64.Vec2{0.5, 0.5})
		for i := 0; i < segments; i++ {
			m.AddTriangle(center, capRing[i+1], capRing[i])
		}
	}
	m.ComputeNormals()
	return m
}

// Cone creates a cone with its base at -height/2 and apex at +height/2
func Cone(radius, height float64, segments int) *Mesh {
	return Cylinder(0, radius, height, segments)
}

// Sphere creates a UV sphere centered at the origin
func Sphere(radius float64, widthSegments, heightSegments int) *Mesh {
	if widthSegments < 3 {
		widthSegments = 3
	}
	if heightSegments < 2 {
		heightSegments = 2
	}
	m := &Mesh{}
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		phi := v * math.Pi
		grid[iy] = make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			theta := u * 2 * math.Pi
			p := mgl64.Vec3{
				-radius * math.Cos(theta) * math.Sin(phi),
				radius * math.Cos(phi),
				radius * math.Sin(theta) * math.Sin(phi),
			}
			grid[iy][ix] = m.AddVertex(p, mgl64.Vec2{u, 1 - v})
		}
	}
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				m.AddTriangle(a, b, d)
			}
			if iy != heightSegments-1 {
				m.AddTriangle(b, c, d)
			}
		}
	}
	// Radial normals are exact for a sphere.
	m.Normals = make([]mgl64.Vec3, len(m.Positions))
	for i, p := range m.Positions {
		m.Normals[i] = safeNormalize(p)
	}
	return m
}

// Plane creates a subdivided rectangle on the XZ plane facing +Y.
// Vertices are laid out row by row: index = iz*(segW+1) + ix.
func Plane(width, depth float64, segW, segD int) *Mesh {
	if segW < 1 {
		segW = 1
	}
	if segD < 1 {
		segD = 1
	}
	m := &Mesh{}
	for iz := 0; iz <= segD; iz++ {
		for ix := 0; ix <= segW; ix++ {
			u := float64(ix) / float64(segW)
			v := float64(iz) / float64(segD)
			m.AddVertex(mgl64.Vec3{-width/2 + u*width, 0, -depth/2 + v*depth}, mgl64.Vec2{u, 1 - v})
		}
	}
	row := uint32(segW + 1)
	for iz := 0; iz < segD; iz++ {
		for ix := 0; ix < segW; ix++ {
			a := uint32(iz)*row + uint32(ix)
			b := a + 1
			c := a + row
			d := c + 1
			m.AddTriangle(a, c, b)
			m.AddTriangle(b, c, d)
		}
	}
	m.ComputeNormals()
	return m
}

// Disk creates a flat triangle fan on the XZ plane facing +Y
func Disk(radius float64, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{}
	center := m.AddVertex(mgl64.Vec3{}, mgl64.Vec2{0.5, 0.5})
	for i := 0; i <= segments; i++ {
		theta := float64(i) / float64(segments) * 2 * math.Pi
		x, z := math.Cos(theta), math.Sin(theta)
		m.AddVertex(mgl64.Vec3{radius * x, 0, radius * z}, mgl64.Vec2{0.5 + x/2, 0.5 + z/2})
	}
	for i := uint32(1); i <= uint32(segments); i++ {
		m.AddTriangle(center, i+1, i)
	}
	m.ComputeNormals()
	return m
}

// Extrude lifts a convex profile given in the XZ plane from y=0 to y=depth.
// The profile is reoriented when needed so the caps face outward.
func Extrude(profile []mgl64.Vec2, depth float64) *Mesh {
	m := &Mesh{}
	n := len(profile)
	if n < 3 {
		return m
	}
	pts := append([]mgl64.Vec2(nil), profile...)
	var area float64
	for i := 0; i < n; i++ {
		a, b := pts[i], pts[(i+1)%n]
		area += a[0]*b[1] - b[0]*a[1]
	}
	if area > 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
	}

	var centroid mgl64.Vec2
	for _, p := range pts {
		centroid = centroid.Add(p)
	}
	centroid = centroid.Mul(1 / float64(n))

	// Sides
	bottom := make([]uint32, n)
	top := make([]uint32, n)
	for i, p := range pts {
		u := float64(i) / float64(n)
		bottom[i] = m.AddVertex(mgl64.Vec3{p[0], 0, p[1]}, mgl64.Vec2{u, 0})
		top[i] = m.AddVertex(mgl64.Vec3{p[0], depth, p[1]}, mgl64.Vec2{u, 1})
	}
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		m.AddTriangle(bottom[i], bottom[j], top[j])
		m.AddTriangle(bottom[i], top[j], top[i])
	}

	// Caps
	for _, y := range []float64{0, depth} {
		c := m.AddVertex(mgl64.Vec3{centroid[0], y, centroid[1]}, mgl64.Vec2{0.5, 0.5})
		ring := make([]uint32, n)
		for i, p := range pts {
			ring[i] = m.AddVertex(mgl64.Vec3{p[0], y, p[1]}, mgl64.Vec2{0.5, 0.5})
		}
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			if y > 0 {
				m.AddTriangle(c, ring[i], ring[j])
			} else {
				m.AddTriangle(c, ring[j], ring[i])
			}
		}
	}
	m.ComputeNormals()
	return m
}

// QuadraticCurve samples a quadratic Bezier from p0 to p2 with control p1.
// The result has segments+1 points including both ends.
func QuadraticCurve(p0, p1, p2 mgl64.Vec2, segments int) []mgl64.Vec2 {
	pts := make([]mgl64.Vec2, 0, segments+1)
	for i := 0; i <= segments; i++ {
		t := float64(i) / float64(segments)
		mt := 1 - t
		pts = append(pts, p0.Mul(mt*mt).Add(p1.Mul(2*mt*t)).Add(p2.Mul(t*t)))
	}
	return pts
}

// Tetrahedron creates a flat-shaded tetrahedron of the given circumradius
func Tetrahedron(radius float64) *Mesh {
	verts := []mgl64.Vec3{{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1}}
	return polyhedron(verts, []uint32{2, 1, 0, 0, 3, 2, 1, 3, 0, 2, 3, 1}, radius)
}

// Octahedron creates a flat-shaded octahedron of the given circumradius
func Octahedron(radius float64) *Mesh {
	verts := []mgl64.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	idx := []uint32{0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2, 1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2}
	return polyhedron(verts, idx, radius)
}

// Icosahedron creates a flat-shaded icosahedron of the given circumradius
func Icosahedron(radius float64) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	verts := []mgl64.Vec3{
		{-1, t, 0}, {1, t, 0}, {-1, -t, 0}, {1, -t, 0},
		{0, -1, t}, {0, 1, t}, {0, -1, -t}, {0, 1, -t},
		{t, 0, -1}, {t, 0, 1}, {-t, 0, -1}, {-t, 0, 1},
	}
	idx := []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}
	return polyhedron(verts, idx, radius)
}

// Dodecahedron creates a flat-shaded dodecahedron of the given circumradius
func Dodecahedron(radius float64) *Mesh {
	t := (1 + math.Sqrt(5)) / 2
	r := 1 / t
	verts := []mgl64.Vec3{
		{-1, -1, -1}, {-1, -1, 1}, {-1, 1, -1}, {-1, 1, 1},
		{1, -1, -1}, {1, -1, 1}, {1, 1, -1}, {1, 1, 1},
		{0, -r, -t}, {0, -r, t}, {0, r, -t}, {0, r, t},
		{-r, -t, 0}, {-r, t, 0}, {r, -t, 0}, {r, t, 0},
		{-t, 0, -r}, {t, 0, -r}, {-t, 0, r}, {t, 0, r},
	}
	// each pentagon is a fan of three triangles
	idx := []uint32{
		3, 11, 7, 3, 7, 15, 3, 15, 13,
		7, 19, 17, 7, 17, 6, 7, 6, 15,
		17, 4, 8, 17, 8, 10, 17, 10, 6,
		8, 0, 16, 8, 16, 2, 8, 2, 10,
		0, 12, 1, 0, 1, 18, 0, 18, 16,
		6, 10, 2, 6, 2, 13, 6, 13, 15,
		2, 16, 18, 2, 18, 3, 2, 3, 13,
		18, 1, 9, 18, 9, 11, 18, 11, 3,
		4, 14, 12, 4, 12, 0, 4, 0, 8,
		11, 9, 5, 11, 5, 19, 11, 19, 7,
		19, 5, 14, 19, 14, 4, 19, 4, 17,
		1, 12, 14, 1, 14, 5, 1, 5, 9,
	}
	return polyhedron(verts, idx, radius)
}

func polyhedron(verts []mgl64.Vec3, idx []uint32, radius float64) *Mesh {
	m := &Mesh{}
	for i := 0; i+2 < len(idx); i += 3 {
		a := m.AddVertex(verts[idx[i]].Normalize().Mul(radius), mgl64.Vec2{0, 0})
		b := m.AddVertex(verts[idx[i+1]].Normalize().Mul(radius), mgl64.Vec2{1, 0})
		c := m.AddVertex(verts[idx[i+2]].Normalize().Mul(radius), mgl64.Vec2{0.5, 1})
		m.AddTriangle(a, b, c)
	}
	m.ComputeNormals()
	return m
}
