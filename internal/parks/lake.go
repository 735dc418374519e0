package parks

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/geometry"
	"citywalk/internal/mathutil"
	"citywalk/internal/terrain"
)

const (
	LakeSegments = 32
	// lakeRings is the number of concentric vertex rings inside a terrain-following lake
	lakeRings = 4

	flatWaterHeight = 0.2
	waterOffset     = 0.3
	wallDepth       = 10.0
	lakeDepth       = 1.5

	RockCount       = 25
	rockEdgeSpread  = 0.15
	rockMinSize     = 0.3
	rockMaxSize     = 1.2
	rockMinDistance = 0.8
	// rockCollisionScale inflates the rock size into its blocking radius
	rockCollisionScale = 1.2
)

var rockColors = [...]uint32{0x7D7D7D, 0x9E9E9E, 0x5D5D5D, 0x8D8D8D, 0x6D6D6D}

// Lake is a city block turned into a pond ringed by rocks
type Lake struct {
	Center mgl64.Vec2
	Radius float64
	Group  *geometry.Group
	Rocks  []Sphere
}

// LakeRadius is the water radius for a block of the given size
func LakeRadius(size float64) float64 {
	return size * 0.4
}

// BuildLake fills a block of side size centered at (cx, cz) with water
func BuildLake(field *terrain.HeightField, rng *rand.Rand, cx, cz, size float64) *Lake {
	l := &Lake{
		Center: mgl64.Vec2{cx, cz},
		Radius: LakeRadius(size),
		Group:  geometry.NewGroup("lake"),
	}

	water := geometry.Standard(geometry.Hex(0x3498db), 0)
	water.Metalness = 0.5
	water.Opacity = 0.8

	if field.Flat() {
		l.Group.AddAt("water", geometry.Disk(l.Radius, LakeSegments), water, mgl64.Vec3{0, flatWaterHeight, 0})
	} else {
		l.Group.AddAt("water", waterSurface(field, cx, cz, l.Radius, 0), water, mgl64.Vec3{})

		wall := water
		wall.Opacity = 1
		l.Group.AddAt("wall", lakeWall(field, cx, cz, l.Radius), wall, mgl64.Vec3{})

		bottom := geometry.Standard(geometry.Hex(0x2980b9), 0.8)
		bottom.Metalness = 0.1
		l.Group.AddAt("bottom", waterSurface(field, cx, cz, l.Radius, lakeDepth), bottom, mgl64.Vec3{})
	}

	l.Rocks = addRocks(l.Group, field, rng, cx, cz, l.Radius)
	l.Group.Translate(mgl64.Vec3{cx, 0, cz})
	return l
}

// waterSurface builds a disk of concentric rings in lake space, every vertex
// sitting waterOffset above the ground, lowered by depth
func waterSurface(ground terrain.Sampler, cx, cz, radius, depth float64) *geometry.Mesh {
	m := &geometry.Mesh{}
	sample := func(x, z float64) mgl64.Vec3 {
		return mgl64.Vec3{x, ground.HeightAt(cx+x, cz+z) + waterOffset - depth, z}
	}

	center := m.AddVertex(sample(0, 0), mgl64.Vec2{0.5, 0.5})
	for ring := 1; ring <= lakeRings; ring++ {
		r := radius * float64(ring) / lakeRings
		for i := 0; i < LakeSegments; i++ {
			angle := float64(i) / LakeSegments * 2 * math.Pi
			c, s := math.Cos(angle), math.Sin(angle)
			frac := r / radius
			m.AddVertex(sample(c*r, s*r), mgl64.Vec2{0.5 + c*frac/2, 0.5 + s*frac/2})
		}
	}

	at := func(ring, i int) uint32 {
		return 1 + uint32((ring-1)*LakeSegments+i%LakeSegments)
	}
	for i := 0; i < LakeSegments; i++ {
		m.AddTriangle(center, at(1, i+1), at(1, i))
	}
	for ring := 1; ring < lakeRings; ring++ {
		for i := 0; i < LakeSegments; i++ {
			a, b := at(ring, i), at(ring, i+1)
			c, d := at(ring+1, i), at(ring+1, i+1)
			m.AddTriangle(a, b, c)
			m.AddTriangle(b, d, c)
		}
	}
	m.ComputeNormals()
	return m
}

// lakeWall is the skirt hanging wallDepth below the shore line
func lakeWall(ground terrain.Sampler, cx, cz, radius float64) *geometry.Mesh {
	m := &geometry.Mesh{}
	for i := 0; i <= LakeSegments; i++ {
		angle := float64(i) / LakeSegments * 2 * math.Pi
		x, z := math.Cos(angle)*radius, math.Sin(angle)*radius
		y := ground.HeightAt(cx+x, cz+z) + waterOffset
		u := float64(i) / LakeSegments
		m.AddVertex(mgl64.Vec3{x, y, z}, mgl64.Vec2{u, 1})
		m.AddVertex(mgl64.Vec3{x, y - wallDepth, z}, mgl64.Vec2{u, 0})
	}
	for i := uint32(0); i < LakeSegments; i++ {
		top, bottom := i*2, i*2+1
		nextTop, nextBottom := (i+1)*2, (i+1)*2+1
		m.AddTriangle(top, bottom, nextTop)
		m.AddTriangle(bottom, nextBottom, nextTop)
	}
	m.ComputeNormals()
	return m
}

// addRocks rings the shore with rocks and returns their blocking spheres in world space.
// Placement gives up after RockCount*20 draws.
func addRocks(g *geometry.Group, ground terrain.Sampler, rng *rand.Rand, cx, cz, radius float64) []Sphere {
	shapes := [...]*geometry.Mesh{
		geometry.Icosahedron(1),
		geometry.Tetrahedron(1),
		geometry.Octahedron(1),
		geometry.Dodecahedron(1),
	}

	rocks := make([]Sphere, 0, RockCount)
	placed := make([]mgl64.Vec2, 0, RockCount)
	for attempts := 0; len(rocks) < RockCount && attempts < RockCount*20; attempts++ {
		angle := rng.Float64() * 2 * math.Pi
		r := radius * (1 + rng.Float64()*rockEdgeSpread)
		pos := mgl64.Vec2{math.Cos(angle) * r, math.Sin(angle) * r}
		if tooClose(placed, pos, rockMinDistance) {
			continue
		}

		h := ground.HeightAt(cx+pos[0], cz+pos[1])
		size := mathutil.Between(rng, rockMinSize, rockMaxSize)
		mesh := shapes[rng.Intn(len(shapes))]
		mat := geometry.Standard(geometry.Hex(rockColors[rng.Intn(len(rockColors))]), 0.9)
		mat.Metalness = 0.1

		squash := mathutil.Between(rng, 0.7, 1.3)
		rot := mgl64.HomogRotate3DX(rng.Float64() * math.Pi).
			Mul4(mgl64.HomogRotate3DY(rng.Float64() * math.Pi)).
			Mul4(mgl64.HomogRotate3DZ(rng.Float64() * math.Pi))
		m := mgl64.Translate3D(pos[0], h+size*0.5, pos[1]).
			Mul4(rot).
			Mul4(mgl64.Scale3D(size, size*squash, size))
		g.Add("rock", mesh, mat, m)

		placed = append(placed, pos)
		rocks = append(rocks, Sphere{
			Center: mgl64.Vec3{cx + pos[0], h + size*0.5, cz + pos[1]},
			Radius: size * rockCollisionScale,
		})
	}
	return rocks
}

func tooClose(placed []mgl64.Vec2, p mgl64.Vec2, minDistance float64) bool {
	for _, q := range placed {
		if q.Sub(p).Len() < minDistance {
			return true
		}
	}
	return false
}
