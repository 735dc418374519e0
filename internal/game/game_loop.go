package game

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// dayLength is the real-time length of one day cycle
const dayLength = 240.0

// GameLoop runs the per-frame update and render cycle
type GameLoop struct {
	game         *CityWalker
	inputHandler *InputHandler
	renderer     *Renderer
	ui           *UISystem
	perf         perfWatch
}

// NewGameLoop creates a new game loop manager
func NewGameLoop(game *CityWalker) *GameLoop {
	return &GameLoop{
		game:         game,
		inputHandler: NewInputHandler(game),
		renderer:     NewRenderer(game),
		ui:           NewUISystem(game),
	}
}

// Update handles all walker logic for one frame
func (gl *GameLoop) Update() error {
	frameTimer := gl.game.monitor.StartFrame()
	defer frameTimer.EndFrame()

	gl.game.swapPending()

	if err := gl.inputHandler.HandleInput(); err != nil {
		return err
	}

	dt := 1.0 / float64(ebiten.TPS())
	gl.game.blocked = gl.game.camera.Step(gl.inputHandler.Movement(), dt, gl.game.model, gl.game.model.CheckCollision)

	if gl.game.dayCycle {
		gl.game.timeOfDay = math.Mod(gl.game.timeOfDay+dt/dayLength, 1)
	}

	pos := gl.game.camera.Position
	gl.game.model.UpdateLODs(pos, gl.game.camera.Mode)
	gl.game.model.UpdateLamps(pos, gl.game.timeOfDay)

	gl.maybeLogPerfAlerts()
	return nil
}

// Draw renders the map and the HUD
func (gl *GameLoop) Draw(screen *ebiten.Image) {
	gl.renderer.Render(screen)
	gl.ui.Draw(screen)
}
