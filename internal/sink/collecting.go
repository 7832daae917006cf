package sink

import (
	"slices"
	"sync"
	"time"
)

// Collecting keeps every PrimeRecord it receives, in arrival order.
type Collecting struct {
	mu      sync.Mutex
	records []PrimeRecord
}

// NewCollecting returns an empty collecting sink.
func NewCollecting() *Collecting {
	return &Collecting{}
}

// Report records the discovery with the current time.
func (s *Collecting) Report(value int64, worker string) {
	s.Observe(PrimeRecord{Value: value, Worker: worker, FoundAt: time.Now()})
}

// Observe records rec as-is. It satisfies Observer, so a Collecting sink can
// be attached to an Immediate sink.
func (s *Collecting) Observe(rec PrimeRecord) {
	s.mu.Lock()
	s.records = append(s.records, rec)
	s.mu.Unlock()
}

// Records returns a copy of the records in arrival order.
func (s *Collecting) Records() []PrimeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.records)
}

// Values returns the recorded primes sorted ascending.
func (s *Collecting) Values() []int64 {
	s.mu.Lock()
	vals := make([]int64, len(s.records))
	for i, r := range s.records {
		vals[i] = r.Value
	}
	s.mu.Unlock()
	slices.Sort(vals)
	return vals
}
