package lod

import (
	"citywalk/internal/camera"
)

// Level is one of the three precomputed detail levels
type Level int

const (
	High Level = iota
	Medium
	Low
)

// Count is the number of detail levels
const Count = 3

func (l Level) String() string {
	switch l {
	case High:
		return "high"
	case Medium:
		return "medium"
	case Low:
		return "low"
	default:
		return "unknown"
	}
}

// Thresholds are the distances at which detail drops
type Thresholds struct {
	High   float64
	Medium float64
}

// DefaultThresholds returns 50 / 100
func DefaultThresholds() Thresholds {
	return Thresholds{High: 50, Medium: 100}
}

// Select picks the visible level for a building at distance d.
// Aerial view always shows full detail.
func Select(d float64, mode camera.Mode, th Thresholds) Level {
	if mode == camera.Aerial {
		return High
	}
	switch {
	case d < th.High:
		return High
	case d < th.Medium:
		return Medium
	default:
		return Low
	}
}
