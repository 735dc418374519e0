package buildings

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/geometry"
	"citywalk/internal/lod"
)

// LandmarkBase is the silhouette of a landmark building
type LandmarkBase int

const (
	LandmarkNone LandmarkBase = iota
	LandmarkCone
	LandmarkCylinder
	LandmarkPyramid
	LandmarkCurved
	LandmarkStacked
)

const landmarkBaseCount = 5

// LandmarkMinHeight is the minimum landmark height
const LandmarkMinHeight = 15.0

func (b LandmarkBase) String() string {
	switch b {
	case LandmarkNone:
		return "none"
	case LandmarkCone:
		return "cone"
	case LandmarkCylinder:
		return "cylinder"
	case LandmarkPyramid:
		return "pyramid"
	case LandmarkCurved:
		return "curved"
	case LandmarkStacked:
		return "stacked"
	default:
		return "unknown"
	}
}

// Label is the group label shared by every detail level of the landmark
func (b LandmarkBase) Label() string {
	return Landmark.String() + ":" + b.String()
}

type landmarkShaper struct{}

func (landmarkShaper) detailed(in *shapeInput) shape {
	in.height = math.Max(in.height, LandmarkMinHeight)
	in.color = geometry.Floor(in.color, 1.2, 0.6)
	in.base = LandmarkBase(1 + in.rng.Intn(landmarkBaseCount))
	return shape{group: landmarkGroup(in, false), solid: geometry.EmptyAABB(), height: in.height}
}

// reduced rebuilds the same base shape in low-detail mode
func (landmarkShaper) reduced(in *shapeInput, level lod.Level) *geometry.Group {
	return landmarkGroup(in, true)
}

func landmarkGroup(in *shapeInput, lowDetail bool) *geometry.Group {
	size, h := in.size, in.height
	g := geometry.NewGroup(in.base.Label())

	mat := geometry.Standard(in.color, 0.5)
	mat.Metalness = 0.4
	center := mgl64.Vec3{0, h / 2, 0}

	switch in.base {
	case LandmarkCone:
		segments := 6
		if lowDetail {
			segments = 4
		}
		g.AddAt("main", geometry.Cone(size/2, h, segments), mat, center)
	case LandmarkCylinder:
		segments := 16
		if lowDetail {
			segments = 8
		}
		g.AddAt("main", geometry.Cylinder(size/2, size/2, h, segments), mat, center)
	case LandmarkPyramid:
		g.AddAt("main", geometry.Cone(size/2, h, 4), mat, center)
	case LandmarkCurved:
		if lowDetail {
			g.AddAt("main", geometry.Box(size, h, size), mat, center)
			break
		}
		g.AddAt("main", geometry.Extrude(curvedProfile(size), h), mat, mgl64.Vec3{})
	case LandmarkStacked:
		if lowDetail {
			g.AddAt("main", geometry.Box(size, h, size), mat, center)
			break
		}
		n := in.rng.Intn(3) + 3
		segH := h / float64(n)
		for i := 0; i < n; i++ {
			segSize := size * (1 - float64(i)*0.2)
			segMat := mat
			segMat.Color = geometry.ShiftHue(in.color, float64(i)/float64(n)*0.1)
			g.AddAt("segment", geometry.Box(segSize, segH, segSize), segMat, mgl64.Vec3{0, float64(i)*segH + segH/2, 0})
		}
	default:
		g.AddAt("main", geometry.Box(size, h, size), mat, center)
	}
	return g
}

// curvedProfile is a footprint with one quadratic side bulging outward
func curvedProfile(size float64) []mgl64.Vec2 {
	s := size / 2
	curve := geometry.QuadraticCurve(mgl64.Vec2{-s, -s}, mgl64.Vec2{s, -size}, mgl64.Vec2{s, s}, 12)
	pts := append(curve, mgl64.Vec2{-s, s})
	// The footprint is mirrored onto the ground plane: (x, y) -> (x, -y).
	for i := range pts {
		pts[i][1] = -pts[i][1]
	}
	return pts
}
