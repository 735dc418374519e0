package game

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"citywalk/internal/camera"
	"citywalk/internal/city"
	"citywalk/internal/collision"
	"citywalk/internal/config"
	"citywalk/internal/monitoring"
	"citywalk/internal/scene"
	"citywalk/internal/workers"

	"github.com/hajimehoshi/ebiten/v2"
)

const maxMessages = 6

// generated is a city built off the game loop, waiting to be swapped in
type generated struct {
	model *city.Model
	graph *scene.Graph
	stats city.Stats
	label string
}

// CityWalker is the ebiten game: one generated city and a camera walking it
type CityWalker struct {
	config  *config.Config
	base    *config.Config
	preset  string

	model  *city.Model
	graph  *scene.Graph
	camera *camera.Camera
	logger *log.Logger

	monitor *monitoring.PerformanceMonitor
	pool    *workers.Pool
	ctx     context.Context
	cancel  context.CancelFunc
	pending chan generated
	busy    bool

	timeOfDay float64
	dayCycle  bool
	zoom      float64
	showHelp  bool
	blocked   bool

	messages []string
	loop     *GameLoop
}

// NewCityWalker builds the first city from cfg and places the camera at the spawn pose
func NewCityWalker(cfg *config.Config) *CityWalker {
	g := &CityWalker{
		config:    cfg,
		base:      cfg,
		logger:    log.New(os.Stderr, "citywalk: ", log.LstdFlags),
		monitor:   monitoring.NewPerformanceMonitor(),
		pool:      workers.NewPool(1),
		pending:   make(chan generated, 1),
		timeOfDay: 0.5,
		dayCycle:  true,
		zoom:      4,
		showHelp:  true,
	}
	g.ctx, g.cancel = context.WithCancel(context.Background())
	g.pool.Start()

	g.graph = scene.NewGraph()
	g.model = g.newModel(g.graph, cfg.CollisionParams())
	stats := g.model.Regenerate(cfg.CityParams())
	g.camera = camera.New(g.model.SpawnPose(), cfg.CameraSettings())
	g.camera.SetMode(camera.FirstPerson, g.model)
	g.AddMessage(summary("generated", stats))

	g.loop = NewGameLoop(g)
	return g
}

func (g *CityWalker) newModel(graph *scene.Graph, cp collision.Params) *city.Model {
	return city.New(graph,
		city.WithLogger(g.logger),
		city.WithMonitor(g.monitor),
		city.WithCollisionParams(cp),
	)
}

// Regenerate builds a new city in the background with a fresh seed.
// It returns false while a previous build is still running.
func (g *CityWalker) Regenerate(label string) bool {
	if g.busy {
		return false
	}
	g.busy = true

	params := g.config.CityParams()
	params.Seed = time.Now().UnixNano()
	cp := g.config.CollisionParams()
	g.AddMessage(fmt.Sprintf("generating %s city...", label))

	g.pool.SubmitWithContext(g.ctx, func() {
		graph := scene.NewGraph()
		m := g.newModel(graph, cp)
		stats := m.Regenerate(params)
		g.pending <- generated{model: m, graph: graph, stats: stats, label: label}
	})
	return true
}

// swapPending installs a finished background build, if any
func (g *CityWalker) swapPending() {
	select {
	case next := <-g.pending:
		g.model.Reset()
		g.model = next.model
		g.graph = next.graph
		g.busy = false
		g.camera.Teleport(g.model.SpawnPose())
		g.camera.SetMode(g.camera.Mode, g.model)
		g.AddMessage(summary(next.label, next.stats))
	default:
	}
}

// Clear removes the current city, leaving empty ground
func (g *CityWalker) Clear() {
	if g.busy {
		return
	}
	g.model.Reset()
	g.AddMessage("city cleared")
}

// ApplyPreset switches to the named preset and regenerates; "" restores the loaded config
func (g *CityWalker) ApplyPreset(name string) error {
	if g.busy {
		return nil
	}
	if name == "" {
		g.config, g.preset = g.base, ""
		g.Regenerate("default")
		return nil
	}
	next, err := g.base.WithPreset(name)
	if err != nil {
		return err
	}
	g.config, g.preset = next, name
	g.camera.Settings = next.CameraSettings()
	g.Regenerate(name)
	return nil
}

// AddMessage appends a line to the on-screen log
func (g *CityWalker) AddMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

func summary(label string, s city.Stats) string {
	return fmt.Sprintf("%s: %d buildings, %d parks, %d lakes, %d trees in %v",
		label, s.Buildings, s.Parks, s.Lakes, s.Trees, s.Elapsed.Round(time.Millisecond))
}

func (g *CityWalker) Update() error {
	return g.loop.Update()
}

func (g *CityWalker) Draw(screen *ebiten.Image) {
	g.loop.Draw(screen)
}

func (g *CityWalker) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.config.GetScreenWidth(), g.config.GetScreenHeight()
}

// ToggleDetailedMetrics switches the monitor's moving averages on or off
func (g *CityWalker) ToggleDetailedMetrics() {
	on := !g.monitor.DetailedLogging()
	g.monitor.EnableDetailedLogging(on)
	if on {
		g.AddMessage("detailed metrics on")
	} else {
		g.AddMessage("detailed metrics off")
	}
}

// Shutdown drops queued builds and stops the background worker
func (g *CityWalker) Shutdown() {
	g.cancel()
	g.pool.Stop()
}
