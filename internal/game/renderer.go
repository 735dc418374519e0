package game

import (
	"image/color"
	"math"

	"citywalk/internal/camera"
	"citywalk/internal/city"
	"citywalk/internal/geometry"
	"citywalk/internal/lod"
	"citywalk/internal/terrain"
	"citywalk/internal/vegetation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	colorful "github.com/lucasb-eyer/go-colorful"
)

var (
	groundLow   = colorful.Color{R: 0.24, G: 0.42, B: 0.18}
	groundHigh  = colorful.Color{R: 0.52, G: 0.47, B: 0.33}
	streetColor = color.RGBA{51, 51, 51, 255}
	cityColor   = color.RGBA{90, 90, 90, 255}
	parkColor   = color.RGBA{76, 187, 23, 255}
	waterColor  = color.RGBA{52, 152, 219, 255}
	rockColor   = color.RGBA{128, 128, 128, 255}
	gazeboColor = color.RGBA{245, 222, 179, 255}
	lampColor   = color.RGBA{255, 211, 102, 255}
	viewerColor = color.RGBA{220, 40, 40, 255}
)

// levelShade dims buildings drawn at reduced detail
var levelShade = [lod.Count]float64{1, 0.8, 0.6}

// Renderer draws the city as a top-down map around the camera
type Renderer struct {
	game *CityWalker

	ground      *ebiten.Image
	groundField *terrain.HeightField
	groundBuilt bool
}

// NewRenderer creates a new renderer
func NewRenderer(game *CityWalker) *Renderer {
	return &Renderer{game: game}
}

// view maps world XZ to screen pixels
type view struct {
	cx, cz  float64
	scale   float64
	originX float64
	originY float64
}

func (v view) point(x, z float64) (float32, float32) {
	return float32(v.originX + (x-v.cx)*v.scale), float32(v.originY + (z-v.cz)*v.scale)
}

func (v view) length(l float64) float32 {
	return float32(l * v.scale)
}

func (r *Renderer) view(screen *ebiten.Image) view {
	w, h := float64(screen.Bounds().Dx()), float64(screen.Bounds().Dy())
	cam := r.game.camera
	v := view{originX: w / 2, originY: h / 2}
	if cam.Mode == camera.Aerial {
		extent := math.Max(r.game.model.TotalSize(), 50) * 1.1
		v.scale = math.Min(w, h) / extent
		return v
	}
	v.cx, v.cz = cam.Position[0], cam.Position[2]
	v.scale = r.game.zoom
	if cam.Mode == camera.Fly {
		// higher flight shows more of the city
		v.scale /= 1 + math.Max(cam.Position[1]-r.game.model.HeightAt(v.cx, v.cz), 0)/40
	}
	return v
}

// Render draws one frame of the map
func (r *Renderer) Render(screen *ebiten.Image) {
	m := r.game.model
	v := r.view(screen)

	screen.Fill(color.RGBA{30, 60, 25, 255})
	r.drawGround(screen, v)

	half := m.TotalSize() / 2
	if half > 0 {
		x, y := v.point(-half, -half)
		vector.DrawFilledRect(screen, x, y, v.length(m.TotalSize()), v.length(m.TotalSize()), cityColor, false)
	}

	r.drawBlocks(screen, v)
	r.drawRoads(screen, v)
	r.drawBuildings(screen, v)
	r.drawTrees(screen, v)
	r.drawLamps(screen, v)
	r.drawNightShade(screen)
	r.drawViewer(screen, v)
}

// drawGround draws the height field as a shaded image, rebuilt when the field changes
func (r *Renderer) drawGround(screen *ebiten.Image, v view) {
	field := r.game.model.Field()
	if !r.groundBuilt || field != r.groundField {
		r.ground = shadeField(field)
		r.groundField = field
		r.groundBuilt = true
	}
	if r.ground == nil {
		extent := r.game.model.Extent()
		x, y := v.point(-extent/2, -extent/2)
		vector.DrawFilledRect(screen, x, y, v.length(extent), v.length(extent), groundLow, false)
		return
	}

	size := field.WorldSize()
	res := float64(r.ground.Bounds().Dx())
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size*v.scale/res, size*v.scale/res)
	x, y := v.point(-size/2, -size/2)
	op.GeoM.Translate(float64(x), float64(y))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(r.ground, op)
}

func shadeField(field *terrain.HeightField) *ebiten.Image {
	if field.Flat() {
		return nil
	}
	lo, hi := field.MinMax()
	res := field.Resolution()
	pix := make([]byte, res*res*4)
	for x := 0; x < res; x++ {
		for z := 0; z < res; z++ {
			t := 0.0
			if hi > lo {
				t = (field.Cell(x, z) - lo) / (hi - lo)
			}
			cr, cg, cb := groundLow.BlendLab(groundHigh, t).Clamped().RGB255()
			i := (z*res + x) * 4
			pix[i], pix[i+1], pix[i+2], pix[i+3] = cr, cg, cb, 255
		}
	}
	img := ebiten.NewImage(res, res)
	img.WritePixels(pix)
	return img
}

func (r *Renderer) drawBlocks(screen *ebiten.Image, v view) {
	m := r.game.model
	for _, b := range m.Blocks() {
		if b.Use != city.Park {
			continue
		}
		x, y := v.point(b.Center[0]-b.Size/2, b.Center[1]-b.Size/2)
		vector.DrawFilledRect(screen, x, y, v.length(b.Size), v.length(b.Size), parkColor, false)
	}
	for _, p := range m.Parks() {
		x, y := v.point(p.Gazebo.Center[0], p.Gazebo.Center[2])
		vector.DrawFilledCircle(screen, x, y, v.length(p.Gazebo.Radius/1.2), gazeboColor, true)
	}
	for _, l := range m.Lakes() {
		x, y := v.point(l.Center[0], l.Center[1])
		vector.DrawFilledCircle(screen, x, y, v.length(l.Radius), waterColor, true)
		for _, rock := range l.Rocks {
			rx, ry := v.point(rock.Center[0], rock.Center[2])
			vector.DrawFilledCircle(screen, rx, ry, max(v.length(rock.Radius/1.2), 1), rockColor, true)
		}
	}
}

func (r *Renderer) drawRoads(screen *ebiten.Image, v view) {
	for _, road := range r.game.model.Roads() {
		x1, y1 := v.point(road.Segment.From[0], road.Segment.From[1])
		x2, y2 := v.point(road.Segment.To[0], road.Segment.To[1])
		vector.StrokeLine(screen, x1, y1, x2, y2, v.length(road.Width), streetColor, false)
	}
}

func (r *Renderer) drawBuildings(screen *ebiten.Image, v view) {
	for _, b := range r.game.model.Buildings() {
		box := b.Bounds
		x, y := v.point(box.Min[0], box.Min[2])
		w := v.length(box.Max[0] - box.Min[0])
		h := v.length(box.Max[2] - box.Min[2])
		c := geometry.Scale(b.Spec.Color, levelShade[b.Visible()])
		vector.DrawFilledRect(screen, x, y, w, h, c, false)
		if b.Visible() == lod.High {
			vector.StrokeRect(screen, x, y, w, h, 1, color.RGBA{20, 20, 20, 255}, false)
		}
	}
}

func (r *Renderer) drawTrees(screen *ebiten.Image, v view) {
	for _, t := range r.game.model.Trees() {
		x, y := v.point(t.Position[0], t.Position[2])
		s := vegetation.Lookup(t.Species)
		vector.DrawFilledCircle(screen, x, y, max(v.length(t.CollisionRadius*1.5), 1.5), s.FoliageColor, true)
	}
}

func (r *Renderer) drawLamps(screen *ebiten.Image, v view) {
	for _, l := range r.game.model.Lamps() {
		x, y := v.point(l.Position[0], l.Position[2])
		if l.State.Glow || l.State.RealLight {
			glow := color.RGBA{255, 211, 102, 60}
			vector.DrawFilledCircle(screen, x, y, v.length(4), glow, true)
		}
		radius := float32(1.5 * math.Max(l.State.BulbIntensity, 0.5))
		vector.DrawFilledCircle(screen, x, y, radius, lampColor, true)
	}
}

// drawNightShade darkens the map between dusk and dawn
func (r *Renderer) drawNightShade(screen *ebiten.Image) {
	if !lod.IsNight(r.game.timeOfDay) {
		return
	}
	b := screen.Bounds()
	vector.DrawFilledRect(screen, 0, 0, float32(b.Dx()), float32(b.Dy()), color.RGBA{0, 0, 30, 110}, false)
}

func (r *Renderer) drawViewer(screen *ebiten.Image, v view) {
	cam := r.game.camera
	x, y := v.point(cam.Position[0], cam.Position[2])
	tip := cam.Position.Add(cam.Forward().Mul(12 / v.scale))
	tx, ty := v.point(tip[0], tip[2])

	clr := viewerColor
	if r.game.blocked {
		clr = color.RGBA{255, 160, 0, 255}
	}
	vector.StrokeLine(screen, x, y, tx, ty, 2, clr, true)
	vector.DrawFilledCircle(screen, x, y, 4, clr, true)
}

// worldToMap places world (x, z) on a square minimap of the given pixel size
func worldToMap(x, z, total float64, size float32) (float32, float32) {
	if total <= 0 {
		return size / 2, size / 2
	}
	return float32(x/total+0.5) * size, float32(z/total+0.5) * size
}
