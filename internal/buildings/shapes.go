package buildings

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"

	"citywalk/internal/geometry"
	"citywalk/internal/lod"
)

// shapeInput carries the parameters of one building through its shaper
type shapeInput struct {
	rng    *rand.Rand
	size   float64
	height float64
	color  colorful.Color

	// set by the landmark shaper and reused by its reduced levels
	base LandmarkBase
}

// shape is the detailed geometry plus the box used for collision.
// An empty solid means the whole group is solid.
type shape struct {
	group  *geometry.Group
	solid  geometry.AABB
	height float64
}

// shaper builds the detail levels of one archetype
type shaper interface {
	detailed(in *shapeInput) shape
	reduced(in *shapeInput, level lod.Level) *geometry.Group
}

// boxReduction is the medium/low representation shared by every archetype but landmark
type boxReduction struct{}

func (boxReduction) reduced(in *shapeInput, level lod.Level) *geometry.Group {
	g := simpleBox(in.size, in.height, in.color)
	if level == lod.Medium {
		g.Label = "simple+windows"
		addWindowGrid(g, in.rng, in.size, in.height, 0.5)
	}
	return g
}

func simpleBox(size, height float64, color colorful.Color) *geometry.Group {
	g := geometry.NewGroup("simple")
	g.AddAt("main", geometry.Box(size, height, size), geometry.Standard(color, 0.7), mgl64.Vec3{0, height / 2, 0})
	return g
}

type simpleShaper struct{ boxReduction }

func (simpleShaper) detailed(in *shapeInput) shape {
	return shape{group: simpleBox(in.size, in.height, in.color), solid: geometry.EmptyAABB(), height: in.height}
}

type modernShaper struct{ boxReduction }

func (modernShaper) detailed(in *shapeInput) shape {
	g := geometry.NewGroup(Modern.String())
	g.AddAt("main", geometry.Box(in.size, in.height, in.size), geometry.Standard(in.color, 1), mgl64.Vec3{0, in.height / 2, 0})
	addWindowGrid(g, in.rng, in.size, in.height, 1)
	return shape{group: g, solid: geometry.EmptyAABB(), height: in.height}
}

type skyscraperShaper struct{ boxReduction }

func (skyscraperShaper) detailed(in *shapeInput) shape {
	size, h := in.size, in.height
	g := geometry.NewGroup(Skyscraper.String())

	mainHeight := h * 0.9
	mainMat := geometry.Standard(in.color, 0.5)
	mainMat.Metalness = 0.3
	g.AddAt("main", geometry.Box(size, mainHeight, size), mainMat, mgl64.Vec3{0, mainHeight / 2, 0})

	metal := geometry.Standard(geometry.Hex(0xCCCCCC), 0.3)
	metal.Metalness = 0.8
	topRadius := size * 0.7 / 2
	topHeight := h * 0.15
	g.AddAt("capital", geometry.Cylinder(topRadius, topRadius, topHeight, 8), metal, mgl64.Vec3{0, mainHeight + topHeight/2, 0})

	if in.rng.Float64() > 0.5 {
		spireHeight := h * 0.2
		spireMat := geometry.Standard(geometry.Hex(0x888888), 0.3)
		spireMat.Metalness = 0.9
		g.AddAt("spire", geometry.Cylinder(size/30, size/20, spireHeight, 8), spireMat,
			mgl64.Vec3{0, mainHeight + topHeight + spireHeight/2, 0})
	}

	addWindowGrid(g, in.rng, size, mainHeight, 1)
	return shape{group: g, solid: geometry.EmptyAABB(), height: h}
}

type residentialShaper struct{ boxReduction }

func (residentialShaper) detailed(in *shapeInput) shape {
	size, h := in.size, in.height
	g := geometry.NewGroup(Residential.String())

	mainMat := geometry.Standard(in.color, 0.8)
	mainMat.Metalness = 0.1
	g.AddAt("main", geometry.Box(size, h, size), mainMat, mgl64.Vec3{0, h / 2, 0})

	depth := size * 0.15
	balcony := geometry.Box(size*0.3, 0.2, depth)
	balconyMat := geometry.Standard(geometry.Hex(0xFFFFFF), 0.9)
	balconyMat.Metalness = 0.1

	out := size/2 + depth/2
	sides := [4]struct {
		x, z, yaw float64
	}{
		{0, out, 0},
		{0, -out, 0},
		{out, 0, math.Pi / 2},
		{-out, 0, math.Pi / 2},
	}

	floors := int(math.Floor(h / 3))
	for floor := 1; floor < floors; floor++ {
		y := float64(floor)*h/float64(floors) - h/float64(floors)/2
		count := in.rng.Intn(4) + 1
		for _, side := range in.rng.Perm(4)[:count] {
			s := sides[side]
			g.Add("balcony", balcony, balconyMat, geometry.TRS(mgl64.Vec3{s.x, y, s.z}, s.yaw, mgl64.Vec3{1, 1, 1}))
		}
	}

	addWindowGrid(g, in.rng, size, h, 1)
	return shape{group: g, solid: geometry.EmptyAABB(), height: h}
}

const (
	officeFloorHeight = 2.5
	officeWindows     = 6
	officeWindowH     = 1.5
	officeWindowDepth = 0.05
)

type officeShaper struct{ boxReduction }

func (officeShaper) detailed(in *shapeInput) shape {
	size, h := in.size, in.height
	g := geometry.NewGroup(Office.String())

	mainMat := geometry.Standard(geometry.Scale(in.color, 0.8), 0.6)
	mainMat.Metalness = 0.3
	g.AddAt("main", geometry.Box(size, h, size), mainMat, mgl64.Vec3{0, h / 2, 0})

	windowW := size / (officeWindows + 1)
	window := geometry.Box(windowW*0.9, officeWindowH, officeWindowDepth*2)
	divider := geometry.Box(size, 0.2, officeWindowDepth)
	dividerMat := geometry.Standard(geometry.Hex(0x888888), 0.5)
	dividerMat.Metalness = 0.6

	face := size/2 + 0.01
	sides := [4]struct {
		x, z, yaw float64
		front     bool
	}{
		{0, face, 0, true},
		{0, -face, math.Pi, true},
		{face, 0, math.Pi / 2, false},
		{-face, 0, -math.Pi / 2, false},
	}

	floors := int(math.Floor(h / officeFloorHeight))
	for _, s := range sides {
		for floor := 0; floor < floors; floor++ {
			y := float64(floor)*officeFloorHeight + 1.2
			for w := 0; w < officeWindows; w++ {
				offset := (float64(w) - officeWindows/2.0 + 0.5) * (windowW * 1.1)
				pos := mgl64.Vec3{s.x, y, s.z}
				if s.front {
					pos[0] = offset
				} else {
					pos[2] = offset
				}

				mat := geometry.Standard(geometry.Hex(0x333333), 0.3)
				mat.Metalness = 0.8
				mat.Opacity = 0.7
				if in.rng.Float64() > 0.7 {
					mat.Color = geometry.RGB(0.2+in.rng.Float64()*0.2, 0.2+in.rng.Float64()*0.2, 0.3+in.rng.Float64()*0.3)
				}
				if in.rng.Float64() > 0.7 {
					mat.Emissive = geometry.Hex(0xFFDD99)
					mat.EmissiveIntensity = 0.3
				}
				g.Add("window", window, mat, geometry.TRS(pos, s.yaw, mgl64.Vec3{1, 1, 1}))
			}

			if s.front {
				pos := mgl64.Vec3{0, y - officeWindowH/2 - 0.1, s.z}
				g.Add("divider", divider, dividerMat, geometry.TRS(pos, s.yaw, mgl64.Vec3{1, 1, 1}))
			}
		}
	}
	return shape{group: g, solid: geometry.EmptyAABB(), height: h}
}

// IndustrialMaxHeight caps industrial buildings
const IndustrialMaxHeight = 10.0

type industrialShaper struct{ boxReduction }

func (industrialShaper) detailed(in *shapeInput) shape {
	size := in.size
	h := math.Min(in.height, IndustrialMaxHeight)
	in.height = h // reduced levels use the capped height too
	g := geometry.NewGroup(Industrial.String())

	mainMat := geometry.Standard(geometry.Scale(in.color, 0.7), 0.9)
	mainMat.Metalness = 0.2
	body := geometry.Box(size*1.2, h, size*1.2)
	g.AddAt("main", body, mainMat, mgl64.Vec3{0, h / 2, 0})
	solid := body.Bounds().Translate(mgl64.Vec3{0, h / 2, 0})

	roofHeight := h * 0.3
	roofMat := geometry.Standard(geometry.Hex(0x333333), 0.8)
	roofMat.Metalness = 0.2
	g.Add("roof", geometry.Cone(size*0.9, roofHeight, 4), roofMat,
		geometry.TRS(mgl64.Vec3{0, h + roofHeight/2, 0}, math.Pi/4, mgl64.Vec3{1, 1, 1}))

	if in.rng.Float64() > 0.6 {
		chimneyHeight := h * 0.6
		r := size * 0.1
		chimneyMat := geometry.Standard(geometry.Hex(0x993333), 0.9)
		chimneyMat.Metalness = 0.1
		g.AddAt("chimney", geometry.Cylinder(r, r, chimneyHeight, 8), chimneyMat,
			mgl64.Vec3{size * 0.4, h + chimneyHeight/2, size * 0.4})
	}
	return shape{group: g, solid: solid, height: h}
}
