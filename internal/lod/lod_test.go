package lod

import (
	"testing"

	"citywalk/internal/camera"
)

func TestSelect(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		name     string
		distance float64
		mode     camera.Mode
		want     Level
	}{
		{"near walking", 10, camera.FirstPerson, High},
		{"middle walking", 60, camera.FirstPerson, Medium},
		{"far walking", 150, camera.FirstPerson, Low},
		{"near flying", 10, camera.Fly, High},
		{"middle flying", 60, camera.Fly, Medium},
		{"far flying", 150, camera.Fly, Low},
		{"exactly high threshold", 50, camera.FirstPerson, Medium},
		{"exactly medium threshold", 100, camera.FirstPerson, Low},
		{"near aerial", 10, camera.Aerial, High},
		{"middle aerial", 60, camera.Aerial, High},
		{"far aerial", 150, camera.Aerial, High},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Select(tt.distance, tt.mode, th); got != tt.want {
				t.Errorf("Select(%v, %v) = %v, want %v", tt.distance, tt.mode, got, tt.want)
			}
		})
	}
}

func TestSelectLamp(t *testing.T) {
	th := DefaultLampThresholds()

	if s := SelectLamp(10, false, th); s.RealLight || s.Glow || s.GroundLight || s.BulbIntensity != 0.2 {
		t.Errorf("daytime lamp should be dark, got %+v", s)
	}
	if s := SelectLamp(10, true, th); !s.RealLight || s.Glow {
		t.Errorf("close lamp at night should use a real light, got %+v", s)
	}
	if s := SelectLamp(40, true, th); s.RealLight || !s.Glow || !s.GroundLight {
		t.Errorf("mid lamp should use glow and ground light, got %+v", s)
	}
	if s := SelectLamp(80, true, th); s.Glow || s.BulbIntensity != 1.5 {
		t.Errorf("far lamp should be emissive only, got %+v", s)
	}
	if s := SelectLamp(200, true, th); s.BulbIntensity != 0.7 {
		t.Errorf("very far lamp should dim, got %+v", s)
	}

	if !IsNight(0.1) || !IsNight(0.9) || IsNight(0.5) {
		t.Errorf("IsNight boundaries wrong")
	}
}
