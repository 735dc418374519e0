package monitoring

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

// PerformanceMonitor tracks frame, generation and navigation metrics
type PerformanceMonitor struct {
	// Frame metrics
	frameCount atomic.Uint64
	frameTime  atomic.Uint64 // nanoseconds

	// City metrics
	generationTime atomic.Uint64
	lodUpdateTime  atomic.Uint64
	lodSwitches    atomic.Uint64
	generations    atomic.Uint64

	// Navigation metrics
	collisionChecks atomic.Uint64
	blockedMoves    atomic.Uint64

	// Last generation counts
	mutex     sync.RWMutex
	lastCity  CityCounts
	avgLOD    float64
	startTime time.Time

	enableDetailed bool
}

// CityCounts summarizes what the last generation produced
type CityCounts struct {
	Buildings int
	Trees     int
	Parks     int
	Lakes     int
	Lamps     int
	Volumes   int
}

// NewPerformanceMonitor creates a new performance monitor
func NewPerformanceMonitor() *PerformanceMonitor {
	return &PerformanceMonitor{
		startTime:      time.Now(),
		enableDetailed: true,
	}
}

// FrameTimer helps measure frame timing
type FrameTimer struct {
	monitor   *PerformanceMonitor
	startTime time.Time
}

// StartFrame begins frame timing
func (pm *PerformanceMonitor) StartFrame() *FrameTimer {
	return &FrameTimer{
		monitor:   pm,
		startTime: time.Now(),
	}
}

// EndFrame completes frame timing
func (ft *FrameTimer) EndFrame() {
	ft.monitor.frameTime.Store(uint64(time.Since(ft.startTime).Nanoseconds()))
	ft.monitor.frameCount.Add(1)
}

// RecordGeneration stores the duration and result of a city generation
func (pm *PerformanceMonitor) RecordGeneration(d time.Duration, counts CityCounts) {
	pm.generationTime.Store(uint64(d.Nanoseconds()))
	pm.generations.Add(1)

	pm.mutex.Lock()
	pm.lastCity = counts
	pm.mutex.Unlock()
}

// RecordLODUpdate stores the duration of one LOD pass and how many buildings switched level
func (pm *PerformanceMonitor) RecordLODUpdate(d time.Duration, switches int) {
	pm.lodUpdateTime.Store(uint64(d.Nanoseconds()))
	pm.lodSwitches.Add(uint64(switches))

	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	if !pm.enableDetailed {
		return
	}
	// exponential moving average, in nanoseconds
	if pm.avgLOD == 0 {
		pm.avgLOD = float64(d.Nanoseconds())
	} else {
		pm.avgLOD = pm.avgLOD*0.9 + float64(d.Nanoseconds())*0.1
	}
}

// RecordCollisionCheck counts one navigation query
func (pm *PerformanceMonitor) RecordCollisionCheck(blocked bool) {
	pm.collisionChecks.Add(1)
	if blocked {
		pm.blockedMoves.Add(1)
	}
}

// CityMetrics is the snapshot shown on the walker HUD
type CityMetrics struct {
	FramesPerSecond float64
	GenerationTime  time.Duration
	LODUpdateTime   time.Duration
	CollisionChecks uint64
	BlockedMoves    uint64
	MemoryUsageMB   uint64
	City            CityCounts
}

// GetCurrentMetrics returns current performance metrics
func (pm *PerformanceMonitor) GetCurrentMetrics() CityMetrics {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	frameTime := pm.frameTime.Load()
	fps := 0.0
	if frameTime > 0 {
		fps = 1000000000.0 / float64(frameTime)
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return CityMetrics{
		FramesPerSecond: fps,
		GenerationTime:  time.Duration(pm.generationTime.Load()),
		LODUpdateTime:   time.Duration(pm.lodUpdateTime.Load()),
		CollisionChecks: pm.collisionChecks.Load(),
		BlockedMoves:    pm.blockedMoves.Load(),
		MemoryUsageMB:   memStats.Alloc / 1024 / 1024,
		City:            pm.lastCity,
	}
}

// GetDetailedStats returns detailed performance statistics
func (pm *PerformanceMonitor) GetDetailedStats() map[string]interface{} {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	return map[string]interface{}{
		"uptime_seconds":     time.Since(pm.startTime).Seconds(),
		"frame_count":        pm.frameCount.Load(),
		"generations":        pm.generations.Load(),
		"generation_time_ms": float64(pm.generationTime.Load()) / 1000000,
		"avg_lod_update_ms":  pm.avgLOD / 1000000,
		"lod_switches":       pm.lodSwitches.Load(),
		"collision_checks":   pm.collisionChecks.Load(),
		"blocked_moves":      pm.blockedMoves.Load(),
		"buildings":          pm.lastCity.Buildings,
		"trees":              pm.lastCity.Trees,
		"collision_volumes":  pm.lastCity.Volumes,
		"memory_alloc_mb":    memStats.Alloc / 1024 / 1024,
		"gc_cycles":          memStats.NumGC,
		"goroutines":         runtime.NumGoroutine(),
	}
}

// PerformanceAlert represents a performance warning
type PerformanceAlert struct {
	Type      string
	Message   string
	Value     float64
	Threshold float64
	Timestamp time.Time
}

// CheckPerformanceAlerts checks for performance issues and returns alerts
func (pm *PerformanceMonitor) CheckPerformanceAlerts() []PerformanceAlert {
	alerts := make([]PerformanceAlert, 0)
	now := time.Now()

	if frameTime := pm.frameTime.Load(); frameTime > 0 {
		fps := 1000000000.0 / float64(frameTime)
		if fps < 30 {
			alerts = append(alerts, PerformanceAlert{
				Type:      "low_fps",
				Message:   "Frame rate is below 30 FPS",
				Value:     fps,
				Threshold: 30,
				Timestamp: now,
			})
		}
	}

	if gen := time.Duration(pm.generationTime.Load()); gen > 2*time.Second {
		alerts = append(alerts, PerformanceAlert{
			Type:      "slow_generation",
			Message:   "City generation took more than 2 seconds",
			Value:     gen.Seconds(),
			Threshold: 2,
			Timestamp: now,
		})
	}

	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	if memoryMB := float64(memStats.Alloc) / 1024 / 1024; memoryMB > 500 {
		alerts = append(alerts, PerformanceAlert{
			Type:      "high_memory",
			Message:   "Memory usage is above 500MB",
			Value:     memoryMB,
			Threshold: 500,
			Timestamp: now,
		})
	}
	return alerts
}

// EnableDetailedLogging enables/disables the moving averages
func (pm *PerformanceMonitor) EnableDetailedLogging(enabled bool) {
	pm.mutex.Lock()
	defer pm.mutex.Unlock()
	pm.enableDetailed = enabled
}

// DetailedLogging reports whether the moving averages are kept
func (pm *PerformanceMonitor) DetailedLogging() bool {
	pm.mutex.RLock()
	defer pm.mutex.RUnlock()
	return pm.enableDetailed
}

// Reset resets all performance counters
func (pm *PerformanceMonitor) Reset() {
	pm.frameCount.Store(0)
	pm.frameTime.Store(0)
	pm.generationTime.Store(0)
	pm.lodUpdateTime.Store(0)
	pm.lodSwitches.Store(0)
	pm.generations.Store(0)
	pm.collisionChecks.Store(0)
	pm.blockedMoves.Store(0)

	pm.mutex.Lock()
	pm.lastCity = CityCounts{}
	pm.avgLOD = 0
	pm.startTime = time.Now()
	pm.mutex.Unlock()
}

// ProfiledFunction wraps a function with performance timing
func (pm *PerformanceMonitor) ProfiledFunction(name string, fn func()) time.Duration {
	start := time.Now()
	fn()
	duration := time.Since(start)

	switch name {
	case "generation":
		pm.generationTime.Store(uint64(duration.Nanoseconds()))
	case "lod_update":
		pm.lodUpdateTime.Store(uint64(duration.Nanoseconds()))
	}
	return duration
}
