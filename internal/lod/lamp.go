package lod

// LampThresholds control which light parts a street lamp shows at night
type LampThresholds struct {
	Light float64
	Glow  float64
	Far   float64
}

// DefaultLampThresholds returns 30 / 50 / 100
func DefaultLampThresholds() LampThresholds {
	return LampThresholds{Light: 30, Glow: 50, Far: 100}
}

// LampState is the visibility of each lamp light part
type LampState struct {
	RealLight     bool
	Glow          bool
	GroundLight   bool
	BulbIntensity float64
}

// IsNight reports whether lamps are on for a day fraction in [0,1)
func IsNight(timeOfDay float64) bool {
	return timeOfDay < 0.22 || timeOfDay > 0.80
}

// SelectLamp returns the light parts to show for a lamp at distance d
func SelectLamp(d float64, night bool, th LampThresholds) LampState {
	if !night {
		return LampState{BulbIntensity: 0.2}
	}
	switch {
	case d < th.Light:
		return LampState{RealLight: true, BulbIntensity: 1.5}
	case d < th.Glow:
		return LampState{Glow: true, GroundLight: true, BulbIntensity: 1.5}
	case d < th.Far:
		return LampState{BulbIntensity: 1.5}
	default:
		return LampState{BulbIntensity: 0.7}
	}
}
