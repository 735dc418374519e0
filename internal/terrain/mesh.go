package terrain

import (
	"citywalk/internal/geometry"
)

// GroundColor is the grass tint of the terrain surface
const GroundColor = 0x1a5e1a

// BuildMesh builds the ground grid. A nil field yields a flat plane.
func BuildMesh(hf *HeightField, segments int) *geometry.Mesh {
	m := geometry.Plane(hf.WorldSize(), hf.WorldSize(), segments, segments)
	if hf == nil {
		return m
	}
	for i, p := range m.Positions {
		m.Positions[i][1] = hf.HeightAt(p[0], p[2])
	}
	m.ComputeNormals()
	return m
}

// Material returns the terrain surface material
func Material() geometry.Material {
	mat := geometry.Standard(geometry.Hex(GroundColor), 0.8)
	mat.Metalness = 0.2
	return mat
}

// Conform raises every vertex of mesh, placed at (ox, oz), onto the ground plus offset.
// The mesh is expected to lie on the XZ plane in its own space.
func Conform(m *geometry.Mesh, ground Sampler, ox, oz, offset float64) {
	for i, p := range m.Positions {
		m.Positions[i][1] = ground.HeightAt(ox+p[0], oz+p[2]) + offset
	}
	m.ComputeNormals()
}
