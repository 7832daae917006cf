package scheme

import "sync"

// CompositeFlag records that a divisor of the current candidate was found.
// It is shared by the workers of one candidate and only ever goes from unset
// to set.
type CompositeFlag struct {
	mu  sync.Mutex
	set bool
}

// Set marks the candidate as composite.
func (f *CompositeFlag) Set() {
	f.mu.Lock()
	f.set = true
	f.mu.Unlock()
}

// IsSet reports whether a divisor has been found.
func (f *CompositeFlag) IsSet() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.set
}
