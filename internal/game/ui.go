package game

import (
	"fmt"
	"image/color"
	"strings"

	"citywalk/internal/city"
	"citywalk/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	ebitext "github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	UIPanelWidth  = 300
	UIRowHeight   = 16
	UIMinimapSize = 160
)

var (
	UIColorPanel   = color.RGBA{0, 0, 0, 160}
	UIColorText    = color.RGBA{230, 230, 230, 255}
	UIColorWarning = color.RGBA{255, 170, 60, 255}
	UIColorMode    = color.RGBA{120, 200, 255, 255}
)

// UISystem draws the HUD over the map
type UISystem struct {
	game *CityWalker
}

// NewUISystem creates the HUD
func NewUISystem(game *CityWalker) *UISystem {
	return &UISystem{game: game}
}

// Draw draws every HUD element
func (ui *UISystem) Draw(screen *ebiten.Image) {
	ui.drawStatusPanel(screen)
	ui.drawMinimap(screen)
	ui.drawMessages(screen)
	if ui.game.showHelp {
		ui.drawInstructions(screen)
	}
}

type coloredTextSegment struct {
	text  string
	color color.Color
}

func drawColoredTextSegments(screen *ebiten.Image, x, y int, segments []coloredTextSegment) {
	face := basicfont.Face7x13
	baseline := y + face.Ascent
	curX := x
	for _, seg := range segments {
		ebitext.Draw(screen, seg.text, face, curX, baseline, seg.color)
		curX += font.MeasureString(face, seg.text).Round()
	}
}

func (ui *UISystem) drawStatusPanel(screen *ebiten.Image) {
	g := ui.game
	stats := g.model.Stats()
	metrics := g.monitor.GetCurrentMetrics()
	pos := g.camera.Position

	lines := []string{
		fmt.Sprintf("Seed %d  grid %dx%d", stats.Seed, g.model.Params().GridSize, g.model.Params().GridSize),
		fmt.Sprintf("Buildings %d  Parks %d  Lakes %d", stats.Buildings, stats.Parks, stats.Lakes),
		fmt.Sprintf("Trees %d  Lamps %d  Volumes %d", stats.Trees, stats.Lamps, stats.Volumes),
		fmt.Sprintf("Pos %.1f %.1f %.1f", pos[0], pos[1], pos[2]),
		fmt.Sprintf("FPS %.0f  gen %v  lod %v", ebiten.ActualFPS(), metrics.GenerationTime.Round(1e6), metrics.LODUpdateTime),
		fmt.Sprintf("Checks %d  blocked %d  mem %dMB", metrics.CollisionChecks, metrics.BlockedMoves, metrics.MemoryUsageMB),
	}

	height := (len(lines)+2)*UIRowHeight + 8
	vector.DrawFilledRect(screen, 8, 8, UIPanelWidth, float32(height), UIColorPanel, false)

	preset := g.preset
	if preset == "" {
		preset = "default"
	}
	mode := []coloredTextSegment{
		{"Mode: ", UIColorText},
		{g.camera.Mode.String(), UIColorMode},
		{fmt.Sprintf("  %s  %s", preset, clock(g.timeOfDay)), UIColorText},
	}
	if g.blocked {
		mode = append(mode, coloredTextSegment{"  blocked", UIColorWarning})
	}
	drawColoredTextSegments(screen, 16, 14, mode)

	y := 14 + UIRowHeight
	for _, line := range lines {
		ebitext.Draw(screen, line, basicfont.Face7x13, 16, y+basicfont.Face7x13.Ascent, UIColorText)
		y += UIRowHeight
	}
	if g.busy {
		ebitext.Draw(screen, "generating...", basicfont.Face7x13, 16, y+basicfont.Face7x13.Ascent, UIColorWarning)
	}
}

// clock formats a day fraction as hh:mm
func clock(timeOfDay float64) string {
	minutes := int(timeOfDay * 24 * 60)
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func (ui *UISystem) drawMinimap(screen *ebiten.Image) {
	g := ui.game
	total := g.model.TotalSize()
	size := float32(UIMinimapSize)
	ox := float32(screen.Bounds().Dx()) - size - 8
	oy := float32(8)

	vector.DrawFilledRect(screen, ox, oy, size, size, UIColorPanel, false)
	vector.StrokeRect(screen, ox, oy, size, size, 1, UIColorText, false)
	if total <= 0 {
		return
	}

	for _, b := range g.model.Blocks() {
		x, y := worldToMap(b.Center[0]-b.Size/2, b.Center[1]-b.Size/2, total, size)
		w := float32(b.Size/total) * size
		vector.DrawFilledRect(screen, ox+x, oy+y, w, w, minimapColor(b.Use), false)
	}

	px, py := worldToMap(g.camera.Position[0], g.camera.Position[2], total, size)
	px = max(0, min(px, size))
	py = max(0, min(py, size))
	vector.DrawFilledCircle(screen, ox+px, oy+py, 3, viewerColor, true)
}

func minimapColor(u city.LandUse) color.RGBA {
	switch u {
	case city.Park:
		return parkColor
	case city.Lake:
		return waterColor
	default:
		return color.RGBA{170, 170, 190, 255}
	}
}

func (ui *UISystem) drawMessages(screen *ebiten.Image) {
	h := screen.Bounds().Dy()
	y := h - 8 - len(ui.game.messages)*UIRowHeight
	for _, msg := range ui.game.messages {
		ebitext.Draw(screen, msg, basicfont.Face7x13, 16, y+basicfont.Face7x13.Ascent, UIColorText)
		y += UIRowHeight
	}
}

func (ui *UISystem) drawInstructions(screen *ebiten.Image) {
	lines := []string{
		"WASD/arrows move, Q/E turn",
		"Space/Shift climb (fly)",
		"P walk  F fly  V aerial",
		"R regenerate  C clear",
		"N night  M noon  T day cycle",
		"Wheel zoom  H help  L metrics  Esc quit",
	}
	if names := config.PresetNames(); len(names) > 0 {
		var b strings.Builder
		b.WriteString("0 default")
		for i, name := range names {
			if i >= len(presetKeys) {
				break
			}
			fmt.Fprintf(&b, "  %d %s", i+1, name)
		}
		lines = append(lines, b.String())
	}

	x := screen.Bounds().Dx() - UIPanelWidth - 8
	y := UIMinimapSize + 24
	vector.DrawFilledRect(screen, float32(x), float32(y), UIPanelWidth, float32(len(lines)*UIRowHeight+8), UIColorPanel, false)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+8, y+4+i*UIRowHeight)
	}
}
