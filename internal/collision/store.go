package collision

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"

	"citywalk/internal/geometry"
)

// Store is the single set of collision volumes for one city
type Store struct {
	volumes []Volume
	counts  map[Category]int
	// reach is the largest XZ distance from a volume's center to its surface
	reach float64
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{counts: make(map[Category]int)}
}

// Add inserts a volume and returns its ID
func (s *Store) Add(v Volume) uuid.UUID {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	s.volumes = append(s.volumes, v)
	s.counts[v.Category]++
	s.reach = max(s.reach, v.Reach())
	return v.ID
}

// AddBox inserts a box volume
func (s *Store) AddBox(category Category, box geometry.AABB) uuid.UUID {
	return s.Add(NewBox(category, box))
}

// AddSphere inserts a sphere volume
func (s *Store) AddSphere(category Category, center mgl64.Vec3, radius float64) uuid.UUID {
	return s.Add(NewSphere(category, center, radius))
}

// Len returns the total number of volumes
func (s *Store) Len() int {
	return len(s.volumes)
}

// Count returns the number of volumes in a category
func (s *Store) Count(c Category) int {
	return s.counts[c]
}

// Volumes returns the volumes in insertion order. The slice must not be modified.
func (s *Store) Volumes() []Volume {
	return s.volumes
}

// Clear removes every volume
func (s *Store) Clear() {
	s.volumes = s.volumes[:0]
	clear(s.counts)
	s.reach = 0
}

// Hit returns the first volume of the given categories that blocks p.
// pad returns the extra clearance added around each volume and must not exceed maxPad;
// nil means none. No categories means all of them.
func (s *Store) Hit(p mgl64.Vec3, maxPad float64, pad func(Volume) float64, categories ...Category) (Volume, bool) {
	want := categoryMask(categories)
	// A box grown by pad reaches at most pad*sqrt2 further at its corners.
	for _, v := range s.Nearby(p, s.reach+maxPad*math.Sqrt2) {
		if want&(1<<uint(v.Category)) == 0 {
			continue
		}
		var extra float64
		if pad != nil {
			extra = pad(v)
		}
		if v.Contains(p, extra) {
			return v, true
		}
	}
	return Volume{}, false
}

// Nearby returns volumes whose center lies within radius of p on the XZ plane
func (s *Store) Nearby(p mgl64.Vec3, radius float64) []Volume {
	var out []Volume
	for _, v := range s.volumes {
		c := v.Middle()
		dx, dz := c[0]-p[0], c[2]-p[2]
		if dx*dx+dz*dz <= radius*radius {
			out = append(out, v)
		}
	}
	return out
}

func categoryMask(categories []Category) uint {
	if len(categories) == 0 {
		categories = AllCategories
	}
	var m uint
	for _, c := range categories {
		m |= 1 << uint(c)
	}
	return m
}
