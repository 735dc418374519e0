package game

import (
	"citywalk/internal/camera"
	"citywalk/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var presetKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// InputHandler handles all user input for the walker
type InputHandler struct {
	game *CityWalker
}

// NewInputHandler creates a new input handler
func NewInputHandler(game *CityWalker) *InputHandler {
	return &InputHandler{game: game}
}

// HandleInput processes the one-shot keys for the current frame
func (ih *InputHandler) HandleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	ih.handleModeInput()
	ih.handleCityInput()
	ih.handleViewInput()
	return nil
}

// Movement samples held keys into a camera input
func (ih *InputHandler) Movement() camera.Input {
	var in camera.Input
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyUp) {
		in.Forward++
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyDown) {
		in.Forward--
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Strafe++
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Strafe--
	}
	if ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyE) {
		in.Turn--
	}
	if ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		in.Turn++
	}
	if ebiten.IsKeyPressed(ebiten.KeySpace) {
		in.Rise++
	}
	if ebiten.IsKeyPressed(ebiten.KeyShift) {
		in.Rise--
	}
	return in
}

// handleModeInput switches between first-person, fly and aerial views
func (ih *InputHandler) handleModeInput() {
	g := ih.game
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.camera.SetMode(camera.FirstPerson, g.model)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		if g.camera.Mode == camera.Fly {
			g.camera.SetMode(camera.FirstPerson, g.model)
		} else {
			g.camera.SetMode(camera.Fly, g.model)
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyV):
		g.camera.SetMode(camera.Aerial, g.model)
		g.camera.Teleport(camera.AerialPose(g.model.TotalSize()))
	}
}

// handleCityInput regenerates, clears or switches presets
func (ih *InputHandler) handleCityInput() {
	g := ih.game
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		label := g.preset
		if label == "" {
			label = "new"
		}
		g.Regenerate(label)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.Clear()
	}
	if inpututil.IsKeyJustPressed(ebiten.Key0) {
		_ = g.ApplyPreset("")
	}

	names := config.PresetNames()
	for i, key := range presetKeys {
		if i >= len(names) {
			break
		}
		if inpututil.IsKeyJustPressed(key) {
			if err := g.ApplyPreset(names[i]); err != nil {
				g.AddMessage(err.Error())
			}
		}
	}
}

// handleViewInput covers zoom, time of day and overlays
func (ih *InputHandler) handleViewInput() {
	g := ih.game
	if _, wy := ebiten.Wheel(); wy != 0 {
		if wy > 0 {
			g.zoom *= 1.1
		} else {
			g.zoom /= 1.1
		}
		g.zoom = max(0.5, min(g.zoom, 20))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.timeOfDay = 0.0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.timeOfDay = 0.5
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) {
		g.dayCycle = !g.dayCycle
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHelp = !g.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.ToggleDetailedMetrics()
	}
}
