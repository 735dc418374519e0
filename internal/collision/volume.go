package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"citywalk/internal/geometry"
)

// Kind is the shape of a collision volume
type Kind int

const (
	KindBox Kind = iota
	KindSphere
)

// Category groups volumes for selective querying
type Category int

const (
	CategoryBuilding Category = iota
	CategoryTree
	CategoryParkProp
	CategoryLakeRock
	CategoryStreetLamp
)

// AllCategories lists every category in query order
var AllCategories = []Category{CategoryBuilding, CategoryTree, CategoryParkProp, CategoryLakeRock, CategoryStreetLamp}

func (c Category) String() string {
	switch c {
	case CategoryBuilding:
		return "building"
	case CategoryTree:
		return "tree"
	case CategoryParkProp:
		return "park-prop"
	case CategoryLakeRock:
		return "lake-rock"
	case CategoryStreetLamp:
		return "street-lamp"
	default:
		return "unknown"
	}
}

// Volume is either a box or a sphere, tagged with its category
type Volume struct {
	ID       uuid.UUID
	Kind     Kind
	Category Category

	// Box is set for KindBox
	Box geometry.AABB

	// Center and Radius are set for KindSphere
	Center mgl64.Vec3
	Radius float64
}

// NewBox creates a box volume
func NewBox(category Category, box geometry.AABB) Volume {
	return Volume{ID: uuid.New(), Kind: KindBox, Category: category, Box: box}
}

// NewSphere creates a sphere volume
func NewSphere(category Category, center mgl64.Vec3, radius float64) Volume {
	return Volume{ID: uuid.New(), Kind: KindSphere, Category: category, Center: center, Radius: radius}
}

// Contains tests p against the volume grown by pad.
// Boxes exclude their boundary; spheres use distance < radius + pad.
func (v Volume) Contains(p mgl64.Vec3, pad float64) bool {
	switch v.Kind {
	case KindBox:
		return v.Box.Expand(pad).ContainsStrict(p)
	case KindSphere:
		return p.Sub(v.Center).Len() < v.Radius+pad
	default:
		return false
	}
}

// Middle returns the center of the volume
func (v Volume) Middle() mgl64.Vec3 {
	if v.Kind == KindBox {
		return v.Box.Center()
	}
	return v.Center
}

// Reach returns the largest XZ distance from Middle to the volume's surface
func (v Volume) Reach() float64 {
	if v.Kind == KindBox {
		size := v.Box.Size()
		return math.Hypot(size[0]/2, size[2]/2)
	}
	return v.Radius
}
