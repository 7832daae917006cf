package metrics

import (
	"runtime"
	"time"
)

// MemorySnapshot holds a point-in-time reading of the Go heap and of the
// CPU time consumed by the process.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use
	Sys          uint64 // total bytes obtained from the OS
	NumGC        uint32 // completed GC cycles
	NumGoroutine int    // live goroutines
	UserCPU      time.Duration
	SystemCPU    time.Duration
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct{}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{}
}

// Snapshot reads current memory statistics. CPU times stay zero where the
// platform does not report them.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	snap := MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		NumGC:        m.NumGC,
		NumGoroutine: runtime.NumGoroutine(),
	}
	if user, system, ok := ProcessCPUTime(); ok {
		snap.UserCPU, snap.SystemCPU = user, system
	}
	return snap
}
