package metrics

import (
	"runtime"
	"time"

	"github.com/rs/zerolog"
)

// MemorySnapshot holds a point-in-time runtime reading.
type MemorySnapshot struct {
	HeapAlloc   uint64        // bytes in use by the application
	HeapObjects uint64        // number of allocated heap objects
	Sys         uint64        // total bytes obtained from the OS
	NumGC       uint32        // number of completed GC cycles
	PauseTotal  time.Duration // cumulative GC pause time
	Goroutines  int
}

// MarshalZerologObject implements zerolog.LogObjectMarshaler.
func (s MemorySnapshot) MarshalZerologObject(e *zerolog.Event) {
	e.Uint64("heap_alloc", s.HeapAlloc).
		Uint64("heap_objects", s.HeapObjects).
		Uint64("sys", s.Sys).
		Uint32("num_gc", s.NumGC).
		Dur("gc_pause_total", s.PauseTotal).
		Int("goroutines", s.Goroutines)
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. It stops the world briefly, so
// callers sample it at human rates only.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		HeapObjects: m.HeapObjects,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		PauseTotal:  time.Duration(m.PauseTotalNs),
		Goroutines:  runtime.NumGoroutine(),
	}
}
