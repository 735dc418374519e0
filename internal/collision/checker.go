package collision

import (
	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/camera"
)

// Rect is an axis-aligned rectangle on the XZ plane
type Rect struct {
	MinX, MinZ float64
	MaxX, MaxZ float64
}

// Square returns a rectangle of the given side centered at the origin
func Square(side float64) Rect {
	h := side / 2
	return Rect{MinX: -h, MinZ: -h, MaxX: h, MaxZ: h}
}

// Params tune the navigation predicates
type Params struct {
	CameraRadius float64
	Margin       float64
	Bounds       Rect
	Ceiling      float64
}

// DefaultParams returns radius 0.5, margin 0.3 and a 500 unit square with a 150 ceiling
func DefaultParams() Params {
	return Params{CameraRadius: 0.5, Margin: 0.3, Bounds: Square(500), Ceiling: 150}
}

// Clearance is the distance kept between the camera and solid surfaces
func (p Params) Clearance() float64 {
	return p.CameraRadius + p.Margin
}

// Checker answers "is this camera position blocked" for one city
type Checker struct {
	Store  *Store
	Params Params
}

// NewChecker creates a checker over store
func NewChecker(store *Store, params Params) *Checker {
	return &Checker{Store: store, Params: params}
}

// CategoriesFor returns the categories queried in a navigation mode.
// Only first-person movement collides with objects.
func CategoriesFor(mode camera.Mode) []Category {
	if mode == camera.FirstPerson {
		return AllCategories
	}
	return nil
}

// ClampBounds clamps pos to the city rectangle and ceiling in place.
// Returns true when any coordinate was clamped.
func (c *Checker) ClampBounds(pos *mgl64.Vec3) bool {
	b := c.Params.Bounds
	blocked := false
	if pos[0] < b.MinX {
		pos[0], blocked = b.MinX, true
	} else if pos[0] > b.MaxX {
		pos[0], blocked = b.MaxX, true
	}
	if pos[2] < b.MinZ {
		pos[2], blocked = b.MinZ, true
	} else if pos[2] > b.MaxZ {
		pos[2], blocked = b.MaxZ, true
	}
	if c.Params.Ceiling > 0 && pos[1] > c.Params.Ceiling {
		pos[1], blocked = c.Params.Ceiling, true
	}
	return blocked
}

// Check reports whether moving to pos is blocked. The boundary applies in every mode
// and clamps pos in place; object volumes apply only in first-person mode.
func (c *Checker) Check(pos *mgl64.Vec3, mode camera.Mode) bool {
	blocked := c.ClampBounds(pos)
	if blocked {
		return true
	}
	categories := CategoriesFor(mode)
	if len(categories) == 0 || c.Store == nil {
		return false
	}
	_, hit := c.Store.Hit(*pos, c.Params.Clearance(), c.pad, categories...)
	return hit
}

// pad is the clearance added per volume. Buildings and lake rocks grow by the camera
// clearance; trees, park props and lamps already carry it in their radius.
func (c *Checker) pad(v Volume) float64 {
	switch v.Category {
	case CategoryBuilding, CategoryLakeRock:
		return c.Params.Clearance()
	default:
		return 0
	}
}
