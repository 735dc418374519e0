package roads

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/geometry"
	"citywalk/internal/lod"
	"citywalk/internal/terrain"
)

const (
	PoleRadius = 0.25
	PoleHeight = 6.0
	BulbRadius = 0.7
	BulbHeight = 6.2
	GlowSize   = 4.0
	// GroundLightRadius is the lit patch drawn under the lamp at night
	GroundLightRadius = 3.0
	// LampPadding is added to the pole radius for the blocking sphere
	LampPadding = 0.4

	LampColor = 0xFFD366
)

// cornerOffsets pick one of the four sidewalk corners around a crossing
var cornerOffsets = [4]mgl64.Vec2{
	{0.7, 0.7},
	{-0.7, 0.7},
	{-0.7, -0.7},
	{0.7, -0.7},
}

// Lamp is a street lamp standing near a crossing
type Lamp struct {
	Position mgl64.Vec3 // base of the pole
	Group    *geometry.Group
	State    lod.LampState

	CollisionCenter mgl64.Vec3
	CollisionRadius float64
}

// EdgeDistance is how far a lamp stands from the crossing center
func EdgeDistance(streetWidth float64) float64 {
	return streetWidth*0.45 + 1
}

// PlaceLamps puts one lamp at a random corner of every crossing
func PlaceLamps(ground terrain.Sampler, rng *rand.Rand, crossings []mgl64.Vec2, streetWidth float64) []*Lamp {
	lamps := make([]*Lamp, 0, len(crossings))
	edge := EdgeDistance(streetWidth)
	for _, c := range crossings {
		off := cornerOffsets[rng.Intn(len(cornerOffsets))]
		x := c[0] + off[0]*edge
		z := c[1] + off[1]*edge
		y := ground.HeightAt(x, z) + SurfaceOffset
		lamps = append(lamps, BuildLamp(mgl64.Vec3{x, y, z}))
	}
	return lamps
}

// BuildLamp creates a lamp whose pole stands at pos
func BuildLamp(pos mgl64.Vec3) *Lamp {
	g := geometry.NewGroup("street-lamp")

	pole := geometry.Standard(geometry.Hex(0x444444), 0.7)
	pole.Metalness = 0.5
	g.AddAt("pole", geometry.Cylinder(PoleRadius, PoleRadius, PoleHeight, 8), pole, mgl64.Vec3{0, PoleHeight / 2, 0})

	bulb := geometry.Glowing(geometry.Hex(LampColor), geometry.Hex(LampColor), 1.5)
	bulb.Roughness = 0.4
	bulb.Metalness = 0.2
	g.AddAt("bulb", geometry.Sphere(BulbRadius, 12, 12), bulb, mgl64.Vec3{0, BulbHeight, 0})

	glow := geometry.Glowing(geometry.Hex(0xFFFFFF), geometry.Hex(LampColor), 1)
	glow.Opacity = 0.5
	// upright billboard; the renderer turns it toward the viewer
	g.Add("glow", geometry.Plane(GlowSize, GlowSize, 1, 1), glow,
		mgl64.Translate3D(0, BulbHeight, 0).Mul4(mgl64.HomogRotate3DX(mgl64.DegToRad(90))))

	patch := geometry.Glowing(geometry.Hex(LampColor), geometry.Hex(LampColor), 1)
	patch.Opacity = 0.2
	g.AddAt("ground-light", geometry.Disk(GroundLightRadius, 32), patch, mgl64.Vec3{0, 0.1, 0})

	g.Translate(pos)
	return &Lamp{
		Position:        pos,
		Group:           g,
		State:           lod.LampState{BulbIntensity: 1.5},
		CollisionCenter: pos.Add(mgl64.Vec3{0, PoleHeight / 2, 0}),
		CollisionRadius: PoleRadius + LampPadding,
	}
}

// Distance returns the distance from p to the bulb
func (l *Lamp) Distance(p mgl64.Vec3) float64 {
	return p.Sub(l.Position.Add(mgl64.Vec3{0, BulbHeight, 0})).Len()
}

// Apply switches the lamp to state and reports whether anything changed
func (l *Lamp) Apply(state lod.LampState) bool {
	if l.State == state {
		return false
	}
	l.State = state
	return true
}
