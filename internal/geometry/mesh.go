package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is an indexed triangle list.
// Triangles are counter-clockwise when seen from the side their normal points to.
type Mesh struct {
	Positions []mgl64.Vec3
	Normals   []mgl64.Vec3
	UVs       []mgl64.Vec2
	Indices   []uint32
}

// VertexCount returns the number of vertices in the mesh
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of indexed triangles
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// AddVertex appends a vertex and returns its index
func (m *Mesh) AddVertex(p mgl64.Vec3, uv mgl64.Vec2) uint32 {
	m.Positions = append(m.Positions, p)
	m.UVs = append(m.UVs, uv)
	return uint32(len(m.Positions) - 1)
}

// AddTriangle appends one triangle by vertex index
func (m *Mesh) AddTriangle(a, b, c uint32) {
	m.Indices = append(m.Indices, a, b, c)
}

// Triangle returns the three corners of triangle i
func (m *Mesh) Triangle(i int) (a, b, c mgl64.Vec3) {
	return m.Positions[m.Indices[3*i]], m.Positions[m.Indices[3*i+1]], m.Positions[m.Indices[3*i+2]]
}

// FaceNormal returns the unnormalized normal of triangle i (length is twice the area)
func (m *Mesh) FaceNormal(i int) mgl64.Vec3 {
	a, b, c := m.Triangle(i)
	return b.Sub(a).Cross(c.Sub(a))
}

// ComputeNormals sets per-vertex normals to the area-weighted average of adjacent faces
func (m *Mesh) ComputeNormals() {
	normals := make([]mgl64.Vec3, len(m.Positions))
	for i := 0; i < m.TriangleCount(); i++ {
		n := m.FaceNormal(i)
		for k := 0; k < 3; k++ {
			idx := m.Indices[3*i+k]
			normals[idx] = normals[idx].Add(n)
		}
	}
	for i := range normals {
		normals[i] = safeNormalize(normals[i])
	}
	m.Normals = normals
}

// Bounds returns the box around all vertices
func (m *Mesh) Bounds() AABB {
	b := EmptyAABB()
	for _, p := range m.Positions {
		b = b.ExtendPoint(p)
	}
	return b
}

// Transformed returns a copy of the mesh with every vertex multiplied by mat
func (m *Mesh) Transformed(mat mgl64.Mat4) *Mesh {
	out := &Mesh{
		Positions: make([]mgl64.Vec3, len(m.Positions)),
		UVs:       append([]mgl64.Vec2(nil), m.UVs...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
	for i, p := range m.Positions {
		out.Positions[i] = mgl64.TransformCoordinate(p, mat)
	}
	if len(m.Normals) > 0 {
		out.Normals = make([]mgl64.Vec3, len(m.Normals))
		for i, n := range m.Normals {
			out.Normals[i] = safeNormalize(mgl64.TransformNormal(n, mat))
		}
	}
	return out
}

func safeNormalize(v mgl64.Vec3) mgl64.Vec3 {
	l := v.Len()
	if l == 0 {
		return mgl64.Vec3{0, 1, 0}
	}
	return v.Mul(1 / l)
}
