package sink

import (
	"slices"
	"sync"
)

// Deferred buffers reported primes and releases them, sorted ascending, when
// the run is over.
type Deferred struct {
	mu      sync.Mutex
	primes  []int64
	drained bool
}

// NewDeferred returns an empty deferred sink.
func NewDeferred() *Deferred {
	return &Deferred{}
}

// Report appends value to the buffer. Reports after Drain are ignored.
func (s *Deferred) Report(value int64, _ string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.drained {
		return
	}
	s.primes = append(s.primes, value)
}

// Len returns the number of buffered primes.
func (s *Deferred) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.primes)
}

// Drain sorts the buffer ascending and returns it. The sort happens once;
// later calls return the same slice. The result is never nil.
func (s *Deferred) Drain() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drained {
		slices.Sort(s.primes)
		if s.primes == nil {
			s.primes = []int64{}
		}
		s.drained = true
	}
	return s.primes
}
