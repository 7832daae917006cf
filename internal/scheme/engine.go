package scheme

import (
	"context"
	"sync/atomic"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/sink"
)

// Engine finds every prime in [1, UpperBound] and reports it to a sink.
type Engine interface {
	// Name returns the registry key of the engine ("range", "divisor").
	Name() string
	// Description returns a human-readable label for reports.
	Description() string
	// Run executes the engine to completion. Cancellation of ctx is observed
	// between candidates; a cancelled run returns ctx.Err().
	Run(ctx context.Context, opts Options, s sink.Sink, report progress.ProgressCallback) error
}

// Options configures a single engine run.
type Options struct {
	// Threads is the number of workers. Must be at least 1.
	Threads int
	// UpperBound is the inclusive end of the search space. Values below 2
	// produce an empty result.
	UpperBound int64
	// Stats, when non-nil, receives counters for the run.
	Stats *RunStats
}

// Validate checks the options before any worker is started.
func (o Options) Validate() error {
	if o.Threads < 1 {
		return apperrors.ValidationError{Field: "threads", Message: "must be at least 1"}
	}
	return nil
}

// RunStats holds counters updated by an engine while it runs.
type RunStats struct {
	// CandidatesExamined is the number of candidates the engine finished.
	CandidatesExamined atomic.Int64
	// WorkersSpawned is the number of worker goroutines started.
	WorkersSpawned atomic.Int64
}

func (s *RunStats) addExamined(n int64) {
	if s != nil {
		s.CandidatesExamined.Add(n)
	}
}

func (s *RunStats) addWorkers(n int64) {
	if s != nil {
		s.WorkersSpawned.Add(n)
	}
}
