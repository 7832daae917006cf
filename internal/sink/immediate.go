package sink

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Immediate writes one line per discovery as soon as it is reported. Lines
// from different workers interleave in discovery order; a line is never torn.
type Immediate struct {
	mu        sync.Mutex
	out       io.Writer
	observers []Observer
	now       func() time.Time
	count     int64
}

// ImmediateOption configures an Immediate sink.
type ImmediateOption func(*Immediate)

// WithObserver registers fn to receive every PrimeRecord. Observers run under
// the sink lock, in discovery order, and must not block for long.
func WithObserver(fn Observer) ImmediateOption {
	return func(s *Immediate) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

// WithClock overrides the time source used to stamp discoveries.
func WithClock(now func() time.Time) ImmediateOption {
	return func(s *Immediate) {
		if now != nil {
			s.now = now
		}
	}
}

// NewImmediate returns a sink that prints to out. A nil out discards lines
// while still notifying observers.
func NewImmediate(out io.Writer, opts ...ImmediateOption) *Immediate {
	if out == nil {
		out = io.Discard
	}
	s := &Immediate{out: out, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report prints "[<worker>] Found prime: <n> (time=<unix seconds>)".
func (s *Immediate) Report(value int64, worker string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := PrimeRecord{Value: value, Worker: worker, FoundAt: s.now()}
	fmt.Fprintf(s.out, "[%s] Found prime: %d (time=%d)\n", worker, value, rec.FoundAt.Unix())
	s.count++
	for _, fn := range s.observers {
		fn(rec)
	}
}

// Count returns the number of primes reported so far.
func (s *Immediate) Count() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count
}
