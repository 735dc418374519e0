package parks

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/geometry"
	"citywalk/internal/mathutil"
	"citywalk/internal/terrain"
	"citywalk/internal/vegetation"
)

const (
	groundSegments = 20
	groundOffset   = 0.05
	pathOffset     = 0.06

	gazeboColumns      = 6
	gazeboColumnHeight = 4.5
	gazeboColumnRadius = 0.1

	// MaxTreeAttempts bounds the rejection sampling for each park tree
	MaxTreeAttempts = 50
)

// Options tune park contents
type Options struct {
	Species []vegetation.SpeciesID
}

// DefaultOptions plants the park species
func DefaultOptions() Options {
	return Options{Species: vegetation.ParkSpecies}
}

// Sphere is a blocking sphere contributed by a park or lake
type Sphere struct {
	Center mgl64.Vec3
	Radius float64
}

// Park is a city block turned into green space
type Park struct {
	Center mgl64.Vec2
	Size   float64
	Group  *geometry.Group
	Trees  []vegetation.Tree
	// Gazebo blocks walking through the pavilion in the middle
	Gazebo Sphere
}

// PathWidth is the width of the two crossing paths
func PathWidth(size float64) float64 {
	return size / 10
}

// GazeboSize is the radius of the central pavilion
func GazeboSize(size float64) float64 {
	return size / 10
}

// BuildPark lays out a park of side size centered at (cx, cz)
func BuildPark(field *terrain.HeightField, rng *rand.Rand, cx, cz, size float64, opts Options) *Park {
	p := &Park{
		Center: mgl64.Vec2{cx, cz},
		Size:   size,
		Group:  geometry.NewGroup("park"),
	}

	ground := geometry.Plane(size, size, groundSegments, groundSegments)
	terrain.Conform(ground, field, cx, cz, groundOffset)
	grass := geometry.Standard(geometry.Hex(0x4CBB17), 0.8)
	grass.Metalness = 0.1
	p.Group.AddAt("ground", ground, grass, mgl64.Vec3{})

	addPaths(p.Group, field, cx, cz, size)
	p.Gazebo = addGazebo(p.Group, field, cx, cz, GazeboSize(size))
	addBenches(p.Group, field, cx, cz, size)

	p.Group.Translate(mgl64.Vec3{cx, 0, cz})
	p.Trees = plantTrees(field, rng, cx, cz, size, opts.Species)
	return p
}

func addPaths(g *geometry.Group, field *terrain.HeightField, cx, cz, size float64) {
	width := PathWidth(size)
	gravel := geometry.Standard(geometry.Hex(0xC2B280), 1)

	horizontal := geometry.Plane(size*0.8, width, 20, 4)
	terrain.Conform(horizontal, field, cx, cz, pathOffset)
	g.AddAt("path", horizontal, gravel, mgl64.Vec3{})

	vertical := geometry.Plane(width, size*0.8, 4, 20)
	terrain.Conform(vertical, field, cx, cz, pathOffset)
	g.AddAt("path", vertical, gravel, mgl64.Vec3{})
}

func addGazebo(g *geometry.Group, field *terrain.HeightField, cx, cz, size float64) Sphere {
	base := field.HeightAt(cx, cz)

	wood := geometry.Standard(geometry.Hex(0xA0522D), 0.8)
	wood.Metalness = 0.2
	g.AddAt("gazebo-base", geometry.Cylinder(size, size, 0.5, 8), wood, mgl64.Vec3{0, base + 0.25, 0})

	column := geometry.Cylinder(gazeboColumnRadius, gazeboColumnRadius, gazeboColumnHeight, 8)
	for i := 0; i < gazeboColumns; i++ {
		angle := float64(i) / gazeboColumns * 2 * math.Pi
		x := math.Sin(angle) * size * 0.8
		z := math.Cos(angle) * size * 0.8
		h := field.HeightAt(cx+x, cz+z)
		g.AddAt("gazebo-column", column, wood, mgl64.Vec3{x, h + gazeboColumnHeight/2 + 0.5, z})
	}

	roof := geometry.Standard(geometry.Hex(0x8B4513), 0.9)
	roof.Metalness = 0.1
	g.AddAt("gazebo-roof", geometry.Cone(size*1.2, size, 8), roof,
		mgl64.Vec3{0, base + gazeboColumnHeight + 0.6 + size/4, 0})

	return Sphere{Center: mgl64.Vec3{cx, base + 2, cz}, Radius: size * 1.2}
}

func addBenches(g *geometry.Group, field *terrain.HeightField, cx, cz, size float64) {
	mat := geometry.Standard(geometry.Hex(0x8B4513), 0.9)
	mat.Metalness = 0.1

	bench := geometry.NewGroup("bench")
	bench.AddAt("seat", geometry.Box(size/8, 0.1, size/20), mat, mgl64.Vec3{0, 0.2, 0})
	leg := geometry.Box(0.1, 0.4, size/20)
	for _, side := range []float64{-1, 1} {
		bench.AddAt("leg", leg, mat, mgl64.Vec3{side * size / 20, -0.1, 0})
	}
	bench.AddAt("back", geometry.Box(size/8, 0.2, 0.05), mat, mgl64.Vec3{0, 0.3, -size / 40})

	spots := [4]mgl64.Vec2{{size * 0.3, 0}, {-size * 0.3, 0}, {0, size * 0.3}, {0, -size * 0.3}}
	for _, s := range spots {
		h := field.HeightAt(cx+s[0], cz+s[1])
		// faces the park center
		yaw := math.Atan2(-s[0], -s[1])
		g.Append(bench, geometry.TRS(mgl64.Vec3{s[0], h + 0.3, s[1]}, yaw, mgl64.Vec3{1, 1, 1}))
	}
}

// plantTrees scatters floor(size/3) trees off the paths and away from the gazebo.
// Trees whose attempt budget runs out are skipped.
func plantTrees(field *terrain.HeightField, rng *rand.Rand, cx, cz, size float64, species []vegetation.SpeciesID) []vegetation.Tree {
	if len(species) == 0 {
		return nil
	}
	want := int(math.Floor(size / 3))
	clearance := PathWidth(size) * 0.7
	trees := make([]vegetation.Tree, 0, want)

	for i := 0; i < want; i++ {
		for attempt := 0; attempt < MaxTreeAttempts; attempt++ {
			rx := mathutil.Jitter(rng, 0.45*size)
			rz := mathutil.Jitter(rng, 0.45*size)
			if !treeSpot(rx, rz, clearance, size) {
				continue
			}
			x, z := cx+rx, cz+rz
			id := species[rng.Intn(len(species))]
			trees = append(trees, vegetation.BuildTree(id, mgl64.Vec3{x, field.HeightAt(x, z), z}))
			break
		}
	}
	return trees
}

// treeSpot reports whether a park-relative position is clear of paths and the gazebo
func treeSpot(rx, rz, clearance, size float64) bool {
	if math.Abs(rx) < clearance || math.Abs(rz) < clearance {
		return false
	}
	return math.Hypot(rx, rz) >= size/5
}
