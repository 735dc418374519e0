package city

import (
	"io"
	"log"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"citywalk/internal/buildings"
	"citywalk/internal/camera"
	"citywalk/internal/collision"
	"citywalk/internal/geometry"
	"citywalk/internal/lod"
	"citywalk/internal/monitoring"
	"citywalk/internal/parks"
	"citywalk/internal/roads"
	"citywalk/internal/scene"
	"citywalk/internal/terrain"
	"citywalk/internal/vegetation"
	"citywalk/internal/workers"
)

// Stats summarizes one generation run
type Stats struct {
	Seed      int64
	TotalSize float64
	Blocks    int
	Parks     int
	Lakes     int
	Buildings int
	Roads     int
	Lamps     int
	Trees     int
	Volumes   int
	Elapsed   time.Duration
}

const (
	// parallelLODThreshold is the building count above which level selection fans out
	parallelLODThreshold = 256
	// parallelLampThreshold is the lamp count above which lamp updates fan out
	parallelLampThreshold = 64
)

// Option configures a Model
type Option func(*Model)

// WithLogger routes generation messages to l
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithMonitor records generation, LOD and collision metrics on pm
func WithMonitor(pm *monitoring.PerformanceMonitor) Option {
	return func(m *Model) { m.monitor = pm }
}

// WithCollisionParams overrides the navigation clearance and bounds
func WithCollisionParams(p collision.Params) Option {
	return func(m *Model) { m.collisionParams = p }
}

// Model owns everything one generated city consists of
type Model struct {
	sink            scene.Sink
	logger          *log.Logger
	monitor         *monitoring.PerformanceMonitor
	collisionParams collision.Params

	params  Params
	seed    int64
	rng     *rand.Rand
	chooser buildings.Chooser

	field     *terrain.HeightField
	extent    float64
	total     float64
	blocks    []Block
	buildings []*buildings.Building
	roads     []roads.Road
	lamps     []*roads.Lamp
	parks     []*parks.Park
	lakes     []*parks.Lake
	trees     []vegetation.Tree

	store   *collision.Store
	checker *collision.Checker
	handles []scene.Handle
}

// New creates an empty city that publishes its geometry to sink
func New(sink scene.Sink, opts ...Option) *Model {
	if sink == nil {
		sink = scene.Discard{}
	}
	m := &Model{
		sink:            sink,
		logger:          log.New(io.Discard, "", 0),
		collisionParams: collision.DefaultParams(),
		store:           collision.NewStore(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.checker = collision.NewChecker(m.store, m.collisionParams)
	return m
}

// Reset removes every generated object and collision volume. Calling it twice is harmless.
func (m *Model) Reset() {
	for _, h := range m.handles {
		m.sink.Remove(h)
	}
	m.handles = nil
	m.store.Clear()

	m.field = nil
	m.extent = 0
	m.total = 0
	m.blocks = nil
	m.buildings = nil
	m.roads = nil
	m.lamps = nil
	m.parks = nil
	m.lakes = nil
	m.trees = nil
}

// Regenerate replaces the current city with a new one built from p
func (m *Model) Regenerate(p Params) Stats {
	start := time.Now()
	m.Reset()

	m.params = p
	m.seed = p.Seed
	if m.seed == 0 {
		m.seed = time.Now().UnixNano()
	}
	m.rng = rand.New(rand.NewSource(m.seed))
	m.chooser.Reset()

	m.extent = p.Terrain.Size
	if m.extent <= 0 {
		m.extent = terrain.Size
	}
	if p.Terrain.Enabled && p.Terrain.Height > 0 {
		m.field = generateField(p.Terrain, m.seed)
	}
	m.publish("terrain", groundGroup(m.field, p.Terrain.Segments))

	blockSize := p.BlockSize()
	m.total, m.blocks = Plan(p.GridSize, blockSize, p.StreetWidth, LandUsePicker{
		ParksEnabled:    p.ParksEnabled,
		ParkProbability: p.ParkProbability,
		WaterEnabled:    p.WaterEnabled,
		LakeProbability: p.LakeProbability,
		Rand:            m.rng,
	})

	m.buildStreets(p, blockSize)
	for _, b := range m.blocks {
		switch b.Use {
		case Park:
			m.addPark(b)
		case Lake:
			m.addLake(b)
		default:
			m.addBuildings(b, p)
		}
	}
	m.scatterTrees(p)

	stats := m.Stats()
	stats.Elapsed = time.Since(start)
	m.logger.Printf("generated city seed=%d size=%.0f: %d buildings, %d parks, %d lakes, %d trees, %d volumes in %v",
		stats.Seed, stats.TotalSize, stats.Buildings, stats.Parks, stats.Lakes, stats.Trees, stats.Volumes, stats.Elapsed)
	if m.monitor != nil {
		m.monitor.RecordGeneration(stats.Elapsed, monitoring.CityCounts{
			Buildings: stats.Buildings,
			Trees:     stats.Trees,
			Parks:     stats.Parks,
			Lakes:     stats.Lakes,
			Lamps:     stats.Lamps,
			Volumes:   stats.Volumes,
		})
	}
	return stats
}

func generateField(t TerrainParams, seed int64) *terrain.HeightField {
	if t.Noise == terrain.NoiseSimplex {
		return terrain.GenerateSimplex(t.Segments+1, t.Size, t.Height, t.Smoothing, seed)
	}
	return terrain.Generate(t.Segments+1, t.Size, t.Height, t.Smoothing)
}

func groundGroup(field *terrain.HeightField, segments int) *geometry.Group {
	g := geometry.NewGroup("terrain")
	g.Add("ground", terrain.BuildMesh(field, segments), terrain.Material(), mgl64.Ident4())
	return g
}

func (m *Model) publish(name string, groups ...*geometry.Group) {
	m.handles = append(m.handles, m.sink.Add(name, groups...))
}

func (m *Model) buildStreets(p Params, blockSize float64) {
	m.roads = roads.StreetGrid(m.field, Streets(p.GridSize, blockSize, p.StreetWidth), p.StreetWidth)
	for _, r := range m.roads {
		m.publish("road", r.Group)
	}

	m.lamps = roads.PlaceLamps(m.field, m.rng, Corners(p.GridSize, blockSize, p.StreetWidth), p.StreetWidth)
	for _, l := range m.lamps {
		m.publish("street-lamp", l.Group)
		m.store.AddSphere(collision.CategoryStreetLamp, l.CollisionCenter, l.CollisionRadius)
	}
}

func (m *Model) addPark(b Block) {
	park := parks.BuildPark(m.field, m.rng, b.Center[0], b.Center[1], b.Size, parks.DefaultOptions())
	m.parks = append(m.parks, park)
	m.publish("park", park.Group)
	m.store.AddSphere(collision.CategoryParkProp, park.Gazebo.Center, park.Gazebo.Radius)

	want := int(b.Size / 3)
	if len(park.Trees) < want {
		m.logger.Printf("park at (%.0f, %.0f): placed %d of %d trees", b.Center[0], b.Center[1], len(park.Trees), want)
	}
	for _, t := range park.Trees {
		m.addTree(t)
	}
}

func (m *Model) addLake(b Block) {
	lake := parks.BuildLake(m.field, m.rng, b.Center[0], b.Center[1], b.Size)
	m.lakes = append(m.lakes, lake)
	m.publish("lake", lake.Group)
	for _, r := range lake.Rocks {
		m.store.AddSphere(collision.CategoryLakeRock, r.Center, r.Radius)
	}
}

func (m *Model) addBuildings(b Block, p Params) {
	packer := &buildings.Packer{BuildingSize: p.BuildingSize, MaxHeight: p.MaxBuildingHeight, Rand: m.rng}
	for _, spec := range packer.Pack(b.Center[0], b.Center[1]) {
		bld := buildings.Place(m.rng, &m.chooser, spec, m.field)
		m.buildings = append(m.buildings, bld)
		m.publish("building:"+bld.Archetype().String(), bld.Groups()...)
		m.store.AddBox(collision.CategoryBuilding, bld.Bounds)
	}
}

func (m *Model) scatterTrees(p Params) {
	total := m.total
	trees := vegetation.Scatter(m.field, m.rng, vegetation.ScatterOptions{
		Count:   p.TreeCount,
		Species: p.TreeSpecies,
		Extent:  m.extent,
		Exclude: func(x, z float64) bool { return InCity(x, z, total) },
	})
	if len(trees) < p.TreeCount {
		m.logger.Printf("placed %d of %d trees", len(trees), p.TreeCount)
	}
	for _, t := range trees {
		m.addTree(t)
	}
}

func (m *Model) addTree(t vegetation.Tree) {
	m.trees = append(m.trees, t)
	m.publish("tree", t.Group)
	m.store.AddSphere(collision.CategoryTree, t.CollisionCenter, t.CollisionRadius)
}

// CheckCollision reports whether pos is blocked in mode, clamping it to the city bounds in place
func (m *Model) CheckCollision(pos *mgl64.Vec3, mode camera.Mode) bool {
	blocked := m.checker.Check(pos, mode)
	if m.monitor != nil {
		m.monitor.RecordCollisionCheck(blocked)
	}
	return blocked
}

// UpdateLODs picks the visible level of every building for a camera at pos.
// It returns the number of buildings that switched level.
func (m *Model) UpdateLODs(pos mgl64.Vec3, mode camera.Mode) int {
	start := time.Now()
	th := m.params.LOD
	pick := func(b *buildings.Building) lod.Level { return lod.Select(b.Distance(pos), mode, th) }

	var levels []lod.Level
	if len(m.buildings) >= parallelLODThreshold {
		levels = workers.ParallelMap(m.buildings, pick)
	} else {
		levels = make([]lod.Level, len(m.buildings))
		for i, b := range m.buildings {
			levels[i] = pick(b)
		}
	}

	switched := 0
	for i, b := range m.buildings {
		if b.SetVisible(levels[i]) {
			switched++
		}
	}
	if m.monitor != nil {
		m.monitor.RecordLODUpdate(time.Since(start), switched)
	}
	return switched
}

// UpdateLamps switches street lamp light parts for a camera at pos
func (m *Model) UpdateLamps(pos mgl64.Vec3, timeOfDay float64) int {
	night := lod.IsNight(timeOfDay)
	if len(m.lamps) < parallelLampThreshold {
		switched := 0
		for _, l := range m.lamps {
			if l.Apply(lod.SelectLamp(l.Distance(pos), night, m.params.Lamps)) {
				switched++
			}
		}
		return switched
	}

	var switched atomic.Int64
	workers.ParallelForEach(m.lamps, func(l *roads.Lamp) {
		if l.Apply(lod.SelectLamp(l.Distance(pos), night, m.params.Lamps)) {
			switched.Add(1)
		}
	})
	return int(switched.Load())
}

// Stats describes the current city
func (m *Model) Stats() Stats {
	return Stats{
		Seed:      m.seed,
		TotalSize: m.total,
		Blocks:    len(m.blocks),
		Parks:     len(m.parks),
		Lakes:     len(m.lakes),
		Buildings: len(m.buildings),
		Roads:     len(m.roads),
		Lamps:     len(m.lamps),
		Trees:     len(m.trees),
		Volumes:   m.store.Len(),
	}
}

// TotalSize returns the side of the city square
func (m *Model) TotalSize() float64 { return m.total }

// Extent returns the side of the terrain square
func (m *Model) Extent() float64 { return m.extent }

// Field returns the height field, nil for flat terrain
func (m *Model) Field() *terrain.HeightField { return m.field }

// HeightAt samples the current ground
func (m *Model) HeightAt(x, z float64) float64 { return m.field.HeightAt(x, z) }

// Params returns the params of the last run
func (m *Model) Params() Params { return m.params }

// Seed returns the seed of the last run
func (m *Model) Seed() int64 { return m.seed }

func (m *Model) Blocks() []Block                  { return m.blocks }
func (m *Model) Buildings() []*buildings.Building { return m.buildings }
func (m *Model) Roads() []roads.Road              { return m.roads }
func (m *Model) Lamps() []*roads.Lamp             { return m.lamps }
func (m *Model) Parks() []*parks.Park             { return m.parks }
func (m *Model) Lakes() []*parks.Lake             { return m.lakes }
func (m *Model) Trees() []vegetation.Tree         { return m.trees }

// Collisions exposes the collision store, read-only by convention
func (m *Model) Collisions() *collision.Store { return m.store }

// SpawnPose is where a walker starts: outside the south-west corner
func (m *Model) SpawnPose() mgl64.Vec3 {
	return camera.SpawnPose(m.total)
}
