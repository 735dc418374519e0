package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"citywalk/internal/city"
	"citywalk/internal/collision"
	"citywalk/internal/config"
	"citywalk/internal/monitoring"
	"citywalk/internal/scene"
)

func main() {
	configPath := flag.String("config", "config.yaml", "configuration file")
	presetsPath := flag.String("presets", "assets/presets.yaml", "presets file")
	preset := flag.String("preset", "", "preset to apply")
	seed := flag.Int64("seed", 0, "city seed, 0 keeps the configured one")
	runs := flag.Int("runs", 1, "number of cities to generate")
	verbose := flag.Bool("v", false, "log placement messages")
	flag.Parse()

	cfg := config.MustLoadConfig(*configPath)
	if *preset != "" {
		if _, err := config.LoadPresets(*presetsPath); err != nil {
			log.Fatalf("Failed to load presets: %v", err)
		}
		next, err := cfg.WithPreset(*preset)
		if err != nil {
			log.Fatal(err)
		}
		cfg = next
	}

	params := cfg.CityParams()
	if *seed != 0 {
		params.Seed = *seed
	}

	logger := log.New(os.Stderr, "citywalk: ", 0)
	opts := []city.Option{city.WithCollisionParams(cfg.CollisionParams())}
	pm := monitoring.NewPerformanceMonitor()
	opts = append(opts, city.WithMonitor(pm))
	if *verbose {
		opts = append(opts, city.WithLogger(logger))
	}

	graph := scene.NewGraph()
	m := city.New(graph, opts...)

	for i := 0; i < *runs; i++ {
		var stats city.Stats
		wall := pm.ProfiledFunction("generation", func() { stats = m.Regenerate(params) })
		printStats(m, graph, stats)
		fmt.Printf("Wall time:   %v\n\n", wall)
		params.Seed = 0
	}

	fmt.Println("Monitor:")
	stats := pm.GetDetailedStats()
	keys := make([]string, 0, len(stats))
	for k := range stats {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %-20s %v\n", k, stats[k])
	}
}

func printStats(m *city.Model, graph *scene.Graph, s city.Stats) {
	fmt.Printf("City seed %d\n", s.Seed)
	fmt.Println("==============================")
	fmt.Printf("Size:        %.0f x %.0f\n", s.TotalSize, s.TotalSize)
	fmt.Printf("Blocks:      %d (%d parks, %d lakes)\n", s.Blocks, s.Parks, s.Lakes)
	fmt.Printf("Buildings:   %d\n", s.Buildings)
	fmt.Printf("Roads:       %d\n", s.Roads)
	fmt.Printf("Lamps:       %d\n", s.Lamps)
	fmt.Printf("Trees:       %d\n", s.Trees)
	fmt.Printf("Scene:       %d entries\n", graph.Len())
	fmt.Printf("Elapsed:     %v\n", s.Elapsed)

	lo, hi := m.Field().MinMax()
	fmt.Printf("Terrain:     %.1f .. %.1f over %.0f\n", lo, hi, m.Extent())

	archetypes := map[string]int{}
	for _, b := range m.Buildings() {
		archetypes[b.Archetype().String()]++
	}
	fmt.Println("\nArchetypes:")
	for _, name := range sortedKeys(archetypes) {
		fmt.Printf("  %-12s %d\n", name, archetypes[name])
	}

	fmt.Println("\nCollision volumes:")
	for _, c := range []collision.Category{
		collision.CategoryBuilding,
		collision.CategoryTree,
		collision.CategoryParkProp,
		collision.CategoryLakeRock,
		collision.CategoryStreetLamp,
	} {
		fmt.Printf("  %-12s %d\n", c, m.Collisions().Count(c))
	}
	fmt.Println()
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
