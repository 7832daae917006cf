package tui

import (
	"sync"

	"github.com/agbru/primecalc/internal/sink"
)

// freshCapacity bounds the discoveries kept between two ticks. Extra
// discoveries are still counted.
const freshCapacity = 32

// discoveryFeed collects immediate-mode discoveries from the engine workers.
// The model polls it on every tick, so workers never block on the UI.
type discoveryFeed struct {
	mu      sync.Mutex
	total   int64
	largest int64
	fresh   []sink.PrimeRecord
}

func newDiscoveryFeed() *discoveryFeed {
	return &discoveryFeed{}
}

// Observe records a discovery. It satisfies sink.Observer.
func (f *discoveryFeed) Observe(rec sink.PrimeRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total++
	f.largest = max(f.largest, rec.Value)
	if len(f.fresh) < freshCapacity {
		f.fresh = append(f.fresh, rec)
	}
}

// discoverySnapshot is a consistent view of the feed.
type discoverySnapshot struct {
	Total   int64
	Largest int64
	// Fresh holds the first discoveries made since the previous snapshot,
	// in arrival order.
	Fresh []sink.PrimeRecord
}

// Snapshot returns the counters and the discoveries made since the last
// call.
func (f *discoveryFeed) Snapshot() discoverySnapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := discoverySnapshot{Total: f.total, Largest: f.largest, Fresh: f.fresh}
	f.fresh = nil
	return snap
}

// Reset clears the feed for a restarted run.
func (f *discoveryFeed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.total = 0
	f.largest = 0
	f.fresh = nil
}
