package main

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"os"
	"path/filepath"

	"citywalk/internal/city"
	"citywalk/internal/config"
	"citywalk/internal/mathutil"
	"citywalk/internal/terrain"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
)

var (
	lowColor  = colorful.Color{R: 0.10, G: 0.37, B: 0.10}
	highColor = colorful.Color{R: 0.55, G: 0.45, B: 0.30}
)

type viewer struct {
	cfg     *config.Config
	seed    int64
	field   *terrain.HeightField
	heights *ebiten.Image
	total   float64
	blocks  []city.Block
	overlay bool
	lo, hi  float64
}

func main() {
	ensureRuntimeCWD()

	cfg := config.MustLoadConfig("config.yaml")

	v := &viewer{cfg: cfg, seed: cfg.City.Seed, overlay: true}
	if v.seed == 0 {
		v.seed = 1
	}
	v.rebuild()

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("citywalk height field viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

// rebuild regenerates the field image and the block plan from the current settings
func (v *viewer) rebuild() {
	t := v.cfg.Terrain
	v.field = nil
	if t.Enabled && t.Height > 0 {
		if terrain.Noise(t.Noise) == terrain.NoiseSimplex {
			v.field = terrain.GenerateSimplex(t.Segments+1, t.Size, t.Height, t.Smoothing, v.seed)
		} else {
			v.field = terrain.Generate(t.Segments+1, t.Size, t.Height, t.Smoothing)
		}
	}
	v.lo, v.hi = v.field.MinMax()

	res := max(v.field.Resolution(), 2)
	pix := make([]byte, res*res*4)
	for x := 0; x < res; x++ {
		for z := 0; z < res; z++ {
			c := v.shade(v.field.Cell(x, z))
			r, g, b := c.RGB255()
			i := (z*res + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = r, g, b, 255
		}
	}
	v.heights = ebiten.NewImage(res, res)
	v.heights.WritePixels(pix)

	p := v.cfg.CityParams()
	v.total, v.blocks = city.Plan(p.GridSize, p.BlockSize(), p.StreetWidth, city.LandUsePicker{
		ParksEnabled:    p.ParksEnabled,
		ParkProbability: p.ParkProbability,
		WaterEnabled:    p.WaterEnabled,
		LakeProbability: p.LakeProbability,
		Rand:            rand.New(rand.NewSource(v.seed)),
	})
}

func (v *viewer) shade(h float64) colorful.Color {
	if v.hi-v.lo < 1e-9 {
		return lowColor
	}
	return lowColor.BlendLab(highColor, (h-v.lo)/(v.hi-v.lo)).Clamped()
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	t := &v.cfg.Terrain
	changed := false
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd):
		t.Height += 5
		t.Enabled = true
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract):
		t.Height = max(t.Height-5, 0)
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft):
		t.Smoothing = mathutil.IntClamp(t.Smoothing-1, config.MinSmoothing, config.MaxSmoothing)
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyBracketRight):
		t.Smoothing = mathutil.IntClamp(t.Smoothing+1, config.MinSmoothing, config.MaxSmoothing)
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		v.cfg.City.GridSize = v.cfg.City.GridSize%config.MaxGridSize + 1
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.seed++
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		if terrain.Noise(t.Noise) == terrain.NoiseSimplex {
			t.Noise = string(terrain.NoiseTrig)
		} else {
			t.Noise = string(terrain.NoiseSimplex)
		}
		changed = true
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		v.overlay = !v.overlay
	}
	if changed {
		v.rebuild()
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	screenW, screenH := screen.Bounds().Dx(), screen.Bounds().Dy()
	padding := 16
	areaW := screenW - sidebarWidth - padding*3
	areaH := screenH - padding*2
	side := min(areaW, areaH)
	originX, originY := padding, padding

	res := v.heights.Bounds().Dx()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(side)/float64(res), float64(side)/float64(res))
	op.GeoM.Translate(float64(originX), float64(originY))
	screen.DrawImage(v.heights, op)
	drawRectBorder(screen, originX, originY, side, side, 2, color.RGBA{70, 70, 90, 255})

	if v.overlay {
		v.drawPlan(screen, originX, originY, side)
	}
	v.drawSidebar(screen, originX+areaW+padding, padding, sidebarWidth, areaH)
}

// drawPlan projects the city square and its blocks onto the terrain panel
func (v *viewer) drawPlan(screen *ebiten.Image, ox, oy, side int) {
	world := v.field.WorldSize()
	scale := float32(side) / float32(world)
	toScreen := func(x, z float64) (float32, float32) {
		return float32(ox) + float32(x+world/2)*scale, float32(oy) + float32(z+world/2)*scale
	}

	half := v.total / 2
	x0, y0 := toScreen(-half, -half)
	vector.DrawFilledRect(screen, x0, y0, float32(v.total)*scale, float32(v.total)*scale, color.RGBA{60, 60, 60, 160}, false)

	for _, b := range v.blocks {
		bx, by := toScreen(b.Center[0]-b.Size/2, b.Center[1]-b.Size/2)
		w := float32(b.Size) * scale
		vector.DrawFilledRect(screen, bx, by, w, w, landUseColor(b.Use), false)
	}
	cx, cy := toScreen(0, 0)
	vector.StrokeCircle(screen, cx, cy, float32(world/4)*scale, 1, color.RGBA{255, 255, 255, 90}, true)
}

func landUseColor(u city.LandUse) color.RGBA {
	switch u {
	case city.Park:
		return color.RGBA{76, 187, 23, 220}
	case city.Lake:
		return color.RGBA{52, 152, 219, 220}
	default:
		return color.RGBA{150, 150, 170, 220}
	}
}

func (v *viewer) drawSidebar(screen *ebiten.Image, x, y, w, h int) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	counts := map[city.LandUse]int{}
	for _, b := range v.blocks {
		counts[b.Use]++
	}
	t := v.cfg.Terrain
	lines := []string{
		fmt.Sprintf("Resolution: %d  Noise: %s", v.field.Resolution(), t.Noise),
		fmt.Sprintf("World: %.0f  Spacing: %.2f", v.field.WorldSize(), v.field.CellSpacing()),
		fmt.Sprintf("Max height: %.0f  Smoothing: %d", t.Height, t.Smoothing),
		fmt.Sprintf("Samples: %.1f .. %.1f", v.lo, v.hi),
		fmt.Sprintf("Center height: %.2f", v.field.HeightAt(0, 0)),
		"",
		fmt.Sprintf("Grid: %dx%d  City: %.0f", v.cfg.City.GridSize, v.cfg.City.GridSize, v.total),
		fmt.Sprintf("Buildings: %d  Parks: %d  Lakes: %d", counts[city.Buildings], counts[city.Park], counts[city.Lake]),
		fmt.Sprintf("Seed: %d", v.seed),
		"",
		"+/-  relief",
		"[ ]  smoothing",
		"G    grid size",
		"R    reseed",
		"N    trig / simplex noise",
		"Tab  toggle plan overlay",
		"Esc  quit",
	}
	row := y + 12
	for _, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.RGBA) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
