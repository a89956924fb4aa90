package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks presented-frame rate and memory statistics for the
// demand-driven render loop, where most loop iterations draw nothing.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	presentedCount int
	idleCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler() *Profiler {
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
	}
}

// Tick should be called once per render loop iteration. Logs performance
// statistics when the update interval has elapsed: presented FPS, the share
// of iterations that drew a frame, heap usage, allocation rate, and GC
// pause times.
//
// Parameters:
//   - rendered: true if this iteration presented a frame
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick(rendered bool) bool {
	if rendered {
		p.presentedCount++
	} else {
		p.idleCount++
	}
	currentTime := time.Now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed >= p.updateInterval {
		fps := float64(p.presentedCount) / elapsed.Seconds()
		total := p.presentedCount + p.idleCount
		busyPct := 0.0
		if total > 0 {
			busyPct = float64(p.presentedCount) / float64(total) * 100
		}

		runtime.ReadMemStats(&p.memStats)
		// Alloc: bytes of live heap objects.
		// TotalAlloc: cumulative heap allocations (tracks churn).
		// Sys: total memory obtained from the OS.
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024

		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		// GC pause stats: last pause and max pause since the previous log.
		gcCount := p.memStats.NumGC
		var lastPauseUs, maxPauseUs uint64
		if gcCount > 0 {
			// PauseNs is a circular buffer of the last 256 GC pauses.
			lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

			startIdx := p.lastGCCount
			if gcCount-startIdx > 256 {
				startIdx = gcCount - 256
			}
			for i := startIdx; i < gcCount; i++ {
				pause := p.memStats.PauseNs[i%256] / 1000
				if pause > maxPauseUs {
					maxPauseUs = pause
				}
			}
		}

		log.Printf("[Profiler] FPS: %.2f | Busy: %.1f%% | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			fps, busyPct, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

		p.presentedCount = 0
		p.idleCount = 0
		p.lastTime = currentTime
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
		return true
	}

	return false
}
