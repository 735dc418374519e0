package game

import (
	"testing"

	"citywalk/internal/camera"
	"citywalk/internal/config"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.City.GridSize = 2
	cfg.City.Seed = 7
	cfg.Terrain.Enabled = false
	cfg.Trees.Count = 5
	return cfg
}

func TestNewCityWalkerSpawnsOutsideCity(t *testing.T) {
	g := NewCityWalker(testConfig())
	defer g.Shutdown()

	if g.model.Stats().Blocks != 4 {
		t.Errorf("blocks = %d, want 4", g.model.Stats().Blocks)
	}
	if g.camera.Mode != camera.FirstPerson {
		t.Errorf("mode = %v, want first-person", g.camera.Mode)
	}
	half := g.model.TotalSize() / 2
	if g.camera.Position[0] >= -half || g.camera.Position[2] >= -half {
		t.Errorf("spawn %v should be outside the south-west corner", g.camera.Position)
	}
	if g.camera.Position[1] != 2 {
		t.Errorf("eye height on flat ground = %v, want 2", g.camera.Position[1])
	}
	if len(g.messages) != 1 {
		t.Errorf("expected one generation message, got %v", g.messages)
	}
}

func TestRegenerateSwapsInBackgroundCity(t *testing.T) {
	g := NewCityWalker(testConfig())
	defer g.Shutdown()

	old := g.model
	if !g.Regenerate("next") {
		t.Fatal("first regenerate should start")
	}
	if g.Regenerate("again") {
		t.Error("second regenerate should be refused while busy")
	}
	g.pool.Wait()
	g.swapPending()

	if g.busy {
		t.Error("busy flag not cleared after swap")
	}
	if g.model == old {
		t.Error("model not replaced")
	}
	if old.Stats().Buildings != 0 || old.Collisions().Len() != 0 {
		t.Error("previous city not torn down")
	}
	if g.graph.Len() == 0 {
		t.Error("new graph is empty")
	}
}

func TestClearRemovesCity(t *testing.T) {
	g := NewCityWalker(testConfig())
	defer g.Shutdown()

	g.Clear()
	s := g.model.Stats()
	if s.Buildings != 0 || s.Roads != 0 || s.Volumes != 0 {
		t.Errorf("city not cleared: %+v", s)
	}
	if g.graph.Len() != 0 {
		t.Errorf("graph still holds %d entries", g.graph.Len())
	}
}

func TestApplyPresetUnknown(t *testing.T) {
	g := NewCityWalker(testConfig())
	defer g.Shutdown()

	if err := g.ApplyPreset("no-such-preset"); err == nil {
		t.Error("expected error for unknown preset")
	}
	if g.busy {
		t.Error("failed preset should not start a build")
	}
}

func TestCancelledBuildIsDropped(t *testing.T) {
	g := NewCityWalker(testConfig())
	defer g.Shutdown()
	old := g.model
	g.cancel()

	if !g.Regenerate("late") {
		t.Fatal("regenerate should be accepted")
	}
	g.pool.Wait()
	g.swapPending()
	if g.model != old {
		t.Error("build queued after cancel should not be swapped in")
	}
}

func TestToggleDetailedMetrics(t *testing.T) {
	g := NewCityWalker(testConfig())
	defer g.Shutdown()

	g.ToggleDetailedMetrics()
	if g.monitor.DetailedLogging() {
		t.Error("first toggle should turn detailed metrics off")
	}
	g.ToggleDetailedMetrics()
	if !g.monitor.DetailedLogging() {
		t.Error("second toggle should turn detailed metrics back on")
	}
	if last := g.messages[len(g.messages)-1]; last != "detailed metrics on" {
		t.Errorf("last message = %q", last)
	}
}

func TestAddMessageKeepsTail(t *testing.T) {
	g := &CityWalker{}
	for i := 0; i < maxMessages+3; i++ {
		g.AddMessage(string(rune('a' + i)))
	}
	if len(g.messages) != maxMessages {
		t.Fatalf("kept %d messages, want %d", len(g.messages), maxMessages)
	}
	if g.messages[0] != "d" {
		t.Errorf("oldest kept = %q, want d", g.messages[0])
	}
}

func TestClock(t *testing.T) {
	tests := []struct {
		tod  float64
		want string
	}{
		{0, "00:00"},
		{0.5, "12:00"},
		{0.75, "18:00"},
		{0.999, "23:58"},
	}
	for _, tt := range tests {
		if got := clock(tt.tod); got != tt.want {
			t.Errorf("clock(%v) = %q, want %q", tt.tod, got, tt.want)
		}
	}
}

func TestWorldToMap(t *testing.T) {
	x, y := worldToMap(0, 0, 100, 160)
	if x != 80 || y != 80 {
		t.Errorf("center maps to (%v,%v), want (80,80)", x, y)
	}
	x, y = worldToMap(-50, 50, 100, 160)
	if x != 0 || y != 160 {
		t.Errorf("corner maps to (%v,%v), want (0,160)", x, y)
	}
	x, y = worldToMap(10, 10, 0, 160)
	if x != 80 || y != 80 {
		t.Errorf("empty city should map to the middle, got (%v,%v)", x, y)
	}
}
