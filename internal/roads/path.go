package roads

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/terrain"
)

// Path is a polyline sampled at uniform parameter steps
type Path struct {
	Points []mgl64.Vec3
}

// SamplePath samples steps+1 points along seg, lifted onto the ground
func SamplePath(ground terrain.Sampler, seg Segment, steps int) *Path {
	if steps < 1 {
		steps = 1
	}
	p := &Path{Points: make([]mgl64.Vec3, 0, steps+1)}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := seg.From[0] + (seg.To[0]-seg.From[0])*t
		z := seg.From[1] + (seg.To[1]-seg.From[1])*t
		p.Points = append(p.Points, mgl64.Vec3{x, ground.HeightAt(x, z) + SurfaceOffset, z})
	}
	return p
}

// span maps t in [0,1] to a polyline segment index and the local fraction along it
func (p *Path) span(t float64) (int, float64) {
	n := len(p.Points) - 1
	t = math.Max(0, math.Min(1, t))
	f := t * float64(n)
	k := min(int(math.Floor(f)), n-1)
	return k, f - float64(k)
}

// Point returns the position at parameter t in [0,1]
func (p *Path) Point(t float64) mgl64.Vec3 {
	switch len(p.Points) {
	case 0:
		return mgl64.Vec3{}
	case 1:
		return p.Points[0]
	}
	k, f := p.span(t)
	a, b := p.Points[k], p.Points[k+1]
	return a.Add(b.Sub(a).Mul(f))
}

// Tangent returns the unit direction of travel at t
func (p *Path) Tangent(t float64) mgl64.Vec3 {
	if len(p.Points) < 2 {
		return mgl64.Vec3{1, 0, 0}
	}
	k, _ := p.span(t)
	d := p.Points[k+1].Sub(p.Points[k])
	if d.Len() == 0 {
		return mgl64.Vec3{1, 0, 0}
	}
	return d.Normalize()
}
