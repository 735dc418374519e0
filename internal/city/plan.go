package city

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/mathutil"
	"citywalk/internal/roads"
)

// LandUse is what a block is turned into
type LandUse int

const (
	Buildings LandUse = iota
	Park
	Lake
)

func (u LandUse) String() string {
	switch u {
	case Buildings:
		return "buildings"
	case Park:
		return "park"
	case Lake:
		return "lake"
	}
	return "unknown"
}

// Block is one cell of the city grid
type Block struct {
	Row, Col int
	Center   mgl64.Vec2 // x, z
	Size     float64
	Use      LandUse
}

// Contains reports whether (x, z) falls inside the block footprint
func (b Block) Contains(x, z float64) bool {
	h := b.Size / 2
	return x >= b.Center[0]-h && x <= b.Center[0]+h && z >= b.Center[1]-h && z <= b.Center[1]+h
}

// LandUsePicker draws the land use of each block.
// The park draw happens first; the lake draw only runs when it fails.
type LandUsePicker struct {
	ParksEnabled    bool
	ParkProbability float64
	WaterEnabled    bool
	LakeProbability float64
	Rand            *rand.Rand
}

// Pick returns the land use of the next block
func (p LandUsePicker) Pick() LandUse {
	if p.ParksEnabled && mathutil.Chance(p.Rand, p.ParkProbability) {
		return Park
	}
	if p.WaterEnabled && mathutil.Chance(p.Rand, p.LakeProbability) {
		return Lake
	}
	return Buildings
}

// TotalSize is the side of the city square: blocks plus the streets around them
func TotalSize(gridSize int, blockSize, streetWidth float64) float64 {
	return float64(gridSize)*blockSize + float64(gridSize+1)*streetWidth
}

// Plan lays out gridSize x gridSize blocks separated by streets, row by row
func Plan(gridSize int, blockSize, streetWidth float64, pick LandUsePicker) (float64, []Block) {
	total := TotalSize(gridSize, blockSize, streetWidth)
	half := total / 2
	pitch := blockSize + streetWidth

	blocks := make([]Block, 0, gridSize*gridSize)
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			blocks = append(blocks, Block{
				Row: i,
				Col: j,
				Center: mgl64.Vec2{
					-half + streetWidth + float64(i)*pitch + blockSize/2,
					-half + streetWidth + float64(j)*pitch + blockSize/2,
				},
				Size: blockSize,
				Use:  pick.Pick(),
			})
		}
	}
	return total, blocks
}

// streetOffset is the centerline coordinate of the i-th street on either axis
func streetOffset(i int, blockSize, streetWidth, half float64) float64 {
	return -half + float64(i)*(blockSize+streetWidth) + streetWidth/2
}

// Streets returns the street centerlines: gridSize+1 running along X, then gridSize+1 along Z
func Streets(gridSize int, blockSize, streetWidth float64) []roads.Segment {
	half := TotalSize(gridSize, blockSize, streetWidth) / 2
	lines := make([]roads.Segment, 0, 2*(gridSize+1))
	for i := 0; i <= gridSize; i++ {
		z := streetOffset(i, blockSize, streetWidth, half)
		lines = append(lines, roads.Segment{From: mgl64.Vec2{-half, z}, To: mgl64.Vec2{half, z}})
	}
	for i := 0; i <= gridSize; i++ {
		x := streetOffset(i, blockSize, streetWidth, half)
		lines = append(lines, roads.Segment{From: mgl64.Vec2{x, -half}, To: mgl64.Vec2{x, half}})
	}
	return lines
}

// Corners returns the (gridSize+1)^2 street crossings
func Corners(gridSize int, blockSize, streetWidth float64) []mgl64.Vec2 {
	half := TotalSize(gridSize, blockSize, streetWidth) / 2
	corners := make([]mgl64.Vec2, 0, (gridSize+1)*(gridSize+1))
	for i := 0; i <= gridSize; i++ {
		for j := 0; j <= gridSize; j++ {
			corners = append(corners, mgl64.Vec2{
				streetOffset(i, blockSize, streetWidth, half),
				streetOffset(j, blockSize, streetWidth, half),
			})
		}
	}
	return corners
}

// InCity reports whether (x, z) lies on the city square of side total
func InCity(x, z, total float64) bool {
	half := total / 2
	return x >= -half && x <= half && z >= -half && z <= half
}
