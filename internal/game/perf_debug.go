package game

import (
	"time"
)

const perfLogInterval = 5 * time.Second

type perfWatch struct {
	lastLog time.Time
}

// maybeLogPerfAlerts logs monitor alerts, at most once per interval
func (gl *GameLoop) maybeLogPerfAlerts() {
	now := time.Now()
	if !gl.perf.lastLog.IsZero() && now.Sub(gl.perf.lastLog) < perfLogInterval {
		return
	}

	alerts := gl.game.monitor.CheckPerformanceAlerts()
	if len(alerts) == 0 {
		return
	}
	gl.perf.lastLog = now
	for _, a := range alerts {
		gl.game.logger.Printf("[PERF] %s: %s (%.1f, limit %.1f)", a.Type, a.Message, a.Value, a.Threshold)
	}
}
