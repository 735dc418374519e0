package buildings

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"citywalk/internal/geometry"
	"citywalk/internal/lod"
	"citywalk/internal/terrain"
)

// FoundationDepth is how far the foundation slab reaches below the ground
const FoundationDepth = 10.0

// boundsPadding grows every building collision box
const boundsPadding = 0.1

// Model is the geometry of one building in local space, base at the origin
type Model struct {
	Archetype  Archetype
	LOD        [lod.Count]*geometry.Group
	Foundation *geometry.Group
	// Bounds is the local collision box
	Bounds   geometry.AABB
	Landmark LandmarkBase
	Height   float64
}

// Build produces the three detail levels, the foundation and the collision box
func Build(rng *rand.Rand, a Archetype, size, height float64, color colorful.Color) Model {
	in := &shapeInput{rng: rng, size: size, height: height, color: color}
	s := a.shaper()
	full := s.detailed(in)

	m := Model{
		Archetype:  a,
		Foundation: foundation(size),
		Landmark:   in.base,
		Height:     full.height,
	}
	m.LOD[lod.High] = full.group
	m.LOD[lod.Medium] = s.reduced(in, lod.Medium)
	m.LOD[lod.Low] = s.reduced(in, lod.Low)

	if full.solid.Empty() {
		m.Bounds = full.group.Bounds().Union(m.Foundation.Bounds()).Expand(boundsPadding)
	} else {
		m.Bounds = full.solid.Expand(boundsPadding)
	}
	return m
}

func foundation(size float64) *geometry.Group {
	g := geometry.NewGroup("foundation")
	mat := geometry.Standard(geometry.Hex(0x333333), 0.9)
	mat.Metalness = 0.1
	g.AddAt("foundation", geometry.Box(size*1.1, FoundationDepth, size*1.1), mat, mgl64.Vec3{0, -FoundationDepth / 2, 0})
	return g
}

// Building is a placed building: a spec, its model in world space and its visible level
type Building struct {
	Spec     Spec
	Model    Model
	Position mgl64.Vec3
	// Bounds is the world-space collision box
	Bounds geometry.AABB

	visible lod.Level
}

// Place builds the model for spec and moves it onto the ground
func Place(rng *rand.Rand, chooser *Chooser, spec Spec, ground terrain.Sampler) *Building {
	a := chooser.Choose(rng, spec.Height)
	m := Build(rng, a, spec.Size, spec.Height, spec.Color)
	pos := mgl64.Vec3{spec.X, ground.HeightAt(spec.X, spec.Z), spec.Z}

	for _, g := range m.LOD {
		g.Translate(pos)
	}
	m.Foundation.Translate(pos)

	return &Building{
		Spec:     spec,
		Model:    m,
		Position: pos,
		Bounds:   m.Bounds.Translate(pos),
		visible:  lod.High,
	}
}

// Archetype returns the building's archetype
func (b *Building) Archetype() Archetype {
	return b.Model.Archetype
}

// Visible returns the level currently shown
func (b *Building) Visible() lod.Level {
	return b.visible
}

// SetVisible switches the shown level and reports whether it changed
func (b *Building) SetVisible(level lod.Level) bool {
	if b.visible == level {
		return false
	}
	b.visible = level
	return true
}

// VisibleGroup returns the group for the shown level
func (b *Building) VisibleGroup() *geometry.Group {
	return b.Model.LOD[b.visible]
}

// Groups returns the foundation followed by the three detail levels
func (b *Building) Groups() []*geometry.Group {
	return []*geometry.Group{b.Model.Foundation, b.Model.LOD[lod.High], b.Model.LOD[lod.Medium], b.Model.LOD[lod.Low]}
}

// Distance returns the distance from p to the building base
func (b *Building) Distance(p mgl64.Vec3) float64 {
	return p.Sub(b.Position).Len()
}
