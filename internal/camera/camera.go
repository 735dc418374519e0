package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/terrain"
)

// Mode is the navigation mode of the camera
type Mode int

const (
	FirstPerson Mode = iota
	Fly
	Aerial
)

func (m Mode) String() string {
	switch m {
	case FirstPerson:
		return "first-person"
	case Fly:
		return "fly"
	case Aerial:
		return "aerial"
	default:
		return "unknown"
	}
}

// Movement tuning
type Settings struct {
	WalkSpeed float64
	FlySpeed  float64
	EyeHeight float64
	// FlyFloor is the minimum clearance above ground while flying
	FlyFloor float64
}

// DefaultSettings returns walk 10, fly 30, eye height 2
func DefaultSettings() Settings {
	return Settings{WalkSpeed: 10, FlySpeed: 30, EyeHeight: 2, FlyFloor: 2}
}

// Input is one frame of movement intent. Axes are in [-1, 1].
type Input struct {
	Forward float64
	Strafe  float64
	Rise    float64
	Turn    float64
}

// CollisionFunc reports whether pos is blocked; it may clamp pos in place
type CollisionFunc func(pos *mgl64.Vec3, mode Mode) bool

// Camera tracks the viewer position and heading
type Camera struct {
	Position mgl64.Vec3
	Yaw      float64
	Pitch    float64
	Mode     Mode
	Settings Settings

	lastGood mgl64.Vec3
}

// New creates a first-person camera at pos
func New(pos mgl64.Vec3, settings Settings) *Camera {
	return &Camera{Position: pos, Mode: FirstPerson, Settings: settings, lastGood: pos}
}

// Forward returns the horizontal heading as a unit vector.
// Yaw 0 looks down -Z.
func (c *Camera) Forward() mgl64.Vec3 {
	return mgl64.Vec3{-math.Sin(c.Yaw), 0, -math.Cos(c.Yaw)}
}

// Right returns the horizontal right vector
func (c *Camera) Right() mgl64.Vec3 {
	return mgl64.Vec3{math.Cos(c.Yaw), 0, -math.Sin(c.Yaw)}
}

// Speed returns the movement speed for the current mode
func (c *Camera) Speed() float64 {
	if c.Mode == FirstPerson {
		return c.Settings.WalkSpeed
	}
	return c.Settings.FlySpeed
}

// Step advances the camera by one frame. A blocked move reverts to the last good position.
// Returns true when the move was blocked.
func (c *Camera) Step(in Input, dt float64, ground terrain.Sampler, check CollisionFunc) bool {
	c.Yaw += in.Turn * dt * 1.5
	if c.Mode == Aerial {
		return false
	}

	move := c.Forward().Mul(in.Forward).Add(c.Right().Mul(in.Strafe))
	if l := move.Len(); l > 1 {
		move = move.Mul(1 / l)
	}
	next := c.Position.Add(move.Mul(c.Speed() * dt))

	switch c.Mode {
	case FirstPerson:
		next[1] = ground.HeightAt(next[0], next[2]) + c.Settings.EyeHeight
	case Fly:
		next[1] += in.Rise * c.Speed() * dt
		if floor := ground.HeightAt(next[0], next[2]) + c.Settings.FlyFloor; next[1] < floor {
			next[1] = floor
		}
	}

	if check != nil && check(&next, c.Mode) {
		c.Position = c.lastGood
		return true
	}
	c.Position = next
	c.lastGood = next
	return false
}

// SetMode switches the navigation mode. Entering first-person snaps to eye height.
func (c *Camera) SetMode(m Mode, ground terrain.Sampler) {
	c.Mode = m
	if m == FirstPerson {
		c.Position[1] = ground.HeightAt(c.Position[0], c.Position[2]) + c.Settings.EyeHeight
		c.lastGood = c.Position
	}
}

// Teleport moves the camera without a collision check
func (c *Camera) Teleport(pos mgl64.Vec3) {
	c.Position = pos
	c.lastGood = pos
}

// AerialPose returns the overhead viewpoint for a city of the given total size
func AerialPose(totalSize float64) mgl64.Vec3 {
	return mgl64.Vec3{0, totalSize * 0.8, 0}
}

// SpawnPose returns the start position just outside the city corner
func SpawnPose(totalSize float64) mgl64.Vec3 {
	half := totalSize / 2
	return mgl64.Vec3{-half - 20, 20, -half - 20}
}
