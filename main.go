package main

import (
	"log"

	"citywalk/internal/config"
	"citywalk/internal/game"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := config.MustLoadConfig("config.yaml")

	if _, err := config.LoadPresets("assets/presets.yaml"); err != nil {
		log.Printf("Warning: Failed to load presets: %v", err)
	}

	ebiten.SetWindowSize(cfg.GetScreenWidth(), cfg.GetScreenHeight())
	ebiten.SetWindowTitle(cfg.Display.WindowTitle)
	if cfg.Display.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	g := game.NewCityWalker(cfg)
	defer g.Shutdown()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}
