package orchestration

import (
	"time"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/progress"
)

// ProgressAggregator combines the progress of concurrent runs into one
// average with an ETA. Both the CLI and the TUI consume it.
type ProgressAggregator struct {
	state   *format.ProgressWithETA
	numRuns int
}

// NewProgressAggregator creates an aggregator for numRuns runs. Returns nil
// if numRuns <= 0.
func NewProgressAggregator(numRuns int) *ProgressAggregator {
	if numRuns <= 0 {
		return nil
	}
	return &ProgressAggregator{
		state:   format.NewProgressWithETA(numRuns),
		numRuns: numRuns,
	}
}

// AggregatedProgress is the result of processing one progress update.
type AggregatedProgress struct {
	RunIndex        int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// Update processes a single progress update.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.RunIndex, update.Value)
	return AggregatedProgress{
		RunIndex:        update.RunIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// CalculateAverage returns the current average without updating.
func (a *ProgressAggregator) CalculateAverage() float64 {
	return a.state.CalculateAverage()
}

// GetETA returns the current ETA without updating.
func (a *ProgressAggregator) GetETA() time.Duration {
	return a.state.GetETA()
}

// NumRuns returns the number of runs being tracked.
func (a *ProgressAggregator) NumRuns() int { return a.numRuns }

// DrainChannel reads all updates until the channel is closed.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
