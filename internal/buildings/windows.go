package buildings

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/geometry"
)

// windowsPerSide returns the lattice width for a given density
func windowsPerSide(density float64) int {
	return max(2, int(math.Floor(3*density)))
}

// addWindowGrid decorates the four faces of a size x height x size box standing at the origin.
// Each floor band of about 3 units holds an n x n lattice of windows; each is kept with
// probability density. All windows share one mesh.
func addWindowGrid(g *geometry.Group, rng *rand.Rand, size, height, density float64) {
	floors := int(math.Floor(height / 3))
	if floors == 0 {
		return
	}
	n := windowsPerSide(density)
	floorH := height / float64(floors)
	step := size / float64(n+1)
	depth := size * 0.02
	windowW := size * 0.1
	windowH := math.Min(windowW, 0.8*floorH/float64(n+1))
	mesh := geometry.Box(windowW, windowH, depth)

	out := size/2 + depth/2
	for side := 0; side < 4; side++ {
		for floor := 0; floor < floors; floor++ {
			for wx := 0; wx < n; wx++ {
				for wy := 0; wy < n; wy++ {
					if rng.Float64() <= 1-density {
						continue
					}
					along := float64(wx+1)*step - size/2
					y := float64(floor)*floorH + float64(wy+1)*floorH/float64(n+1)

					var pos mgl64.Vec3
					var yaw float64
					switch side {
					case 0: // front
						pos = mgl64.Vec3{along, y, out}
					case 1: // back
						pos = mgl64.Vec3{-along, y, -out}
						yaw = math.Pi
					case 2: // right
						pos = mgl64.Vec3{out, y, -along}
						yaw = math.Pi / 2
					case 3: // left
						pos = mgl64.Vec3{-out, y, along}
						yaw = -math.Pi / 2
					}
					g.Add("window", mesh, windowMaterial(rng), geometry.TRS(pos, yaw, mgl64.Vec3{1, 1, 1}))
				}
			}
		}
	}
}

// windowMaterial is dark glass; about 30% get a tint and about 30% are lit
func windowMaterial(rng *rand.Rand) geometry.Material {
	mat := geometry.Standard(geometry.Hex(0x111111), 0.3)
	mat.Metalness = 0.8
	mat.Opacity = 0.8
	if rng.Float64() > 0.7 {
		mat.Color = geometry.Tint(0.55+rng.Float64()*0.15, 0.4, 0.15+rng.Float64()*0.15)
	}
	if rng.Float64() > 0.7 {
		mat.Color = geometry.Hex(0xFFDD99)
		mat.Emissive = geometry.Hex(0xFFDD99)
		mat.EmissiveIntensity = 0.5
	}
	return mat
}
