package vegetation

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/geometry"
)

const palmLeaves = 7

// Tree is one placed tree with its geometry and blocking sphere
type Tree struct {
	Species  SpeciesID
	Position mgl64.Vec3
	Group    *geometry.Group

	CollisionCenter mgl64.Vec3
	CollisionRadius float64
}

// BuildTree creates a tree of the given species standing at pos
func BuildTree(id SpeciesID, pos mgl64.Vec3) Tree {
	s := Lookup(id)
	g := geometry.NewGroup("tree:" + s.Name)

	trunkMat := geometry.Standard(s.TrunkColor, 0.9)
	trunkMat.Metalness = 0.1
	foliageMat := geometry.Standard(s.FoliageColor, 0.8)
	foliageMat.Metalness = 0.1

	trunk := geometry.Cylinder(s.TrunkRadius, s.TrunkRadius*1.2, s.TrunkHeight, 8)
	g.AddAt("trunk", trunk, trunkMat, mgl64.Vec3{0, s.TrunkHeight / 2, 0})

	crownY := s.TrunkHeight + s.FoliageHeight/2
	switch s.Shape {
	case FoliageCone:
		g.AddAt("foliage", geometry.Cone(s.FoliageRadius, s.FoliageHeight, s.FoliageSegments), foliageMat, mgl64.Vec3{0, crownY, 0})
	case FoliageSphere:
		g.AddAt("foliage", geometry.Sphere(s.FoliageRadius, s.FoliageSegments, s.FoliageSegments/2), foliageMat, mgl64.Vec3{0, crownY, 0})
	case FoliagePalm:
		leaf := palmLeaf(s.FoliageRadius*2, s.FoliageRadius/2)
		for i := 0; i < palmLeaves; i++ {
			yaw := float64(i) / palmLeaves * 2 * math.Pi
			m := mgl64.Translate3D(0, s.TrunkHeight+0.2, 0).
				Mul4(mgl64.HomogRotate3DY(yaw)).
				Mul4(mgl64.HomogRotate3DZ(math.Pi / 6))
			g.Add("leaf", leaf, foliageMat, m)
		}
	}

	g.Translate(pos)
	return Tree{
		Species:         id,
		Position:        pos,
		Group:           g,
		CollisionCenter: pos.Add(mgl64.Vec3{0, s.TrunkHeight / 2, 0}),
		CollisionRadius: s.CollisionRadius(),
	}
}

// palmLeaf is a strip along X that droops quadratically away from the trunk
func palmLeaf(length, width float64) *geometry.Mesh {
	m := geometry.Plane(length, width, 10, 1)
	for i, p := range m.Positions {
		if x := p[0]; x > 0 {
			m.Positions[i][1] = -(x / length) * (x / length) * length * 0.5
		}
	}
	m.ComputeNormals()
	return m
}
