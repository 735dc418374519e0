package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// AABB is an axis-aligned bounding box in 3D space
type AABB struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// EmptyAABB returns an inverted box that any Union will replace
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: mgl64.Vec3{inf, inf, inf},
		Max: mgl64.Vec3{-inf, -inf, -inf},
	}
}

// NewAABB creates a box from its center and full size
func NewAABB(center, size mgl64.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{Min: center.Sub(half), Max: center.Add(half)}
}

// Empty reports whether the box encloses no points
func (b AABB) Empty() bool {
	return b.Max[0] < b.Min[0] || b.Max[1] < b.Min[1] || b.Max[2] < b.Min[2]
}

// Center returns the box midpoint
func (b AABB) Center() mgl64.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the extent along each axis
func (b AABB) Size() mgl64.Vec3 {
	if b.Empty() {
		return mgl64.Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// ExtendPoint grows the box to include p
func (b AABB) ExtendPoint(p mgl64.Vec3) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = math.Min(b.Min[i], p[i])
		b.Max[i] = math.Max(b.Max[i], p[i])
	}
	return b
}

// Union returns the smallest box containing both boxes
func (b AABB) Union(o AABB) AABB {
	if o.Empty() {
		return b
	}
	if b.Empty() {
		return o
	}
	return b.ExtendPoint(o.Min).ExtendPoint(o.Max)
}

// Expand grows the box by s on every face
func (b AABB) Expand(s float64) AABB {
	d := mgl64.Vec3{s, s, s}
	return AABB{Min: b.Min.Sub(d), Max: b.Max.Add(d)}
}

// Translate moves the box by offset
func (b AABB) Translate(offset mgl64.Vec3) AABB {
	return AABB{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// Contains checks if p is inside the box or on its boundary
func (b AABB) Contains(p mgl64.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

// ContainsStrict checks if p is inside the box, excluding the boundary
func (b AABB) ContainsStrict(p mgl64.Vec3) bool {
	return p[0] > b.Min[0] && p[0] < b.Max[0] &&
		p[1] > b.Min[1] && p[1] < b.Max[1] &&
		p[2] > b.Min[2] && p[2] < b.Max[2]
}

// Corners returns the 8 box corners
func (b AABB) Corners() [8]mgl64.Vec3 {
	return [8]mgl64.Vec3{
		{b.Min[0], b.Min[1], b.Min[2]},
		{b.Max[0], b.Min[1], b.Min[2]},
		{b.Min[0], b.Max[1], b.Min[2]},
		{b.Max[0], b.Max[1], b.Min[2]},
		{b.Min[0], b.Min[1], b.Max[2]},
		{b.Max[0], b.Min[1], b.Max[2]},
		{b.Min[0], b.Max[1], b.Max[2]},
		{b.Max[0], b.Max[1], b.Max[2]},
	}
}

// Transform returns the axis-aligned box around the transformed corners
func (b AABB) Transform(m mgl64.Mat4) AABB {
	if b.Empty() {
		return b
	}
	out := EmptyAABB()
	for _, c := range b.Corners() {
		out = out.ExtendPoint(mgl64.TransformCoordinate(c, m))
	}
	return out
}
