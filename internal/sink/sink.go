//go:generate mockgen -source=sink.go -destination=mocks/mock_sink.go -package=mocks

package sink

import "time"

// Sink receives every prime discovered by an engine. Implementations must be
// safe for concurrent use by any number of workers.
type Sink interface {
	// Report records that value is prime. worker identifies the reporter,
	// e.g. "Thread 3" or "B-scheme".
	Report(value int64, worker string)
}

// PrimeRecord is a single discovery event.
type PrimeRecord struct {
	Value   int64
	Worker  string
	FoundAt time.Time
}

// Observer is notified of each discovery made through an Immediate sink.
type Observer func(PrimeRecord)
