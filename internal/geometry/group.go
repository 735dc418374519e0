package geometry

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Part is one renderable piece: a mesh placed by a transform.
// Several parts may point at the same Mesh.
type Part struct {
	Name      string
	Mesh      *Mesh
	Material  Material
	Transform mgl64.Mat4
}

// Bounds returns the part's mesh bounds in group space
func (p Part) Bounds() AABB {
	if p.Mesh == nil {
		return EmptyAABB()
	}
	return p.Mesh.Bounds().Transform(p.Transform)
}

// Group is a named collection of parts that is added to and removed from a scene as one unit
type Group struct {
	Label string
	Parts []Part
}

// NewGroup creates an empty group
func NewGroup(label string) *Group {
	return &Group{Label: label}
}

// Add appends a part placed by transform
func (g *Group) Add(name string, mesh *Mesh, mat Material, transform mgl64.Mat4) {
	g.Parts = append(g.Parts, Part{Name: name, Mesh: mesh, Material: mat, Transform: transform})
}

// AddAt appends a part translated to pos
func (g *Group) AddAt(name string, mesh *Mesh, mat Material, pos mgl64.Vec3) {
	g.Add(name, mesh, mat, mgl64.Translate3D(pos[0], pos[1], pos[2]))
}

// Append copies every part of other into g, transformed by m
func (g *Group) Append(other *Group, m mgl64.Mat4) {
	for _, p := range other.Parts {
		p.Transform = m.Mul4(p.Transform)
		g.Parts = append(g.Parts, p)
	}
}

// PartCount returns the number of parts
func (g *Group) PartCount() int {
	return len(g.Parts)
}

// TriangleCount sums the triangles of every part
func (g *Group) TriangleCount() int {
	n := 0
	for _, p := range g.Parts {
		if p.Mesh != nil {
			n += p.Mesh.TriangleCount()
		}
	}
	return n
}

// Bounds returns the box around every transformed part
func (g *Group) Bounds() AABB {
	b := EmptyAABB()
	for _, p := range g.Parts {
		b = b.Union(p.Bounds())
	}
	return b
}

// Translate moves every part by offset
func (g *Group) Translate(offset mgl64.Vec3) {
	t := mgl64.Translate3D(offset[0], offset[1], offset[2])
	for i := range g.Parts {
		g.Parts[i].Transform = t.Mul4(g.Parts[i].Transform)
	}
}

// Transform applies m to every part
func (g *Group) Transform(m mgl64.Mat4) {
	for i := range g.Parts {
		g.Parts[i].Transform = m.Mul4(g.Parts[i].Transform)
	}
}

// Find returns the first part with the given name
func (g *Group) Find(name string) (Part, bool) {
	for _, p := range g.Parts {
		if p.Name == name {
			return p, true
		}
	}
	return Part{}, false
}

// Translation is a shorthand for a translation matrix
func Translation(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// TRS builds translate * rotateY * scale
func TRS(pos mgl64.Vec3, yaw float64, scale mgl64.Vec3) mgl64.Mat4 {
	return mgl64.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl64.HomogRotate3DY(yaw)).
		Mul4(mgl64.Scale3D(scale[0], scale[1], scale[2]))
}
