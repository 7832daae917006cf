package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/agbru/primecalc/internal/progress"
)

// RunResult is the outcome of a single engine run.
type RunResult struct {
	// Name is the registry key of the engine ("range", "divisor").
	Name string
	// Description is the human-readable engine label.
	Description string
	// Primes holds every prime found, ascending. Nil if the run failed.
	Primes []int64
	// Duration is the wall-clock time of the run.
	Duration time.Duration
	// CandidatesExamined is the number of candidates the engine decided.
	CandidatesExamined int64
	// WorkersSpawned is the number of goroutines the engine started.
	WorkersSpawned int64
	// Err is the error that ended the run, if any.
	Err error
}

// Count returns the number of primes found.
func (r RunResult) Count() int { return len(r.Primes) }

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	UpperBound int64
	Threads    int
	Delivery   string
	Verbose    bool
}

// ProgressReporter displays run progress.
//
// DisplayProgress runs in its own goroutine until progressChan is closed and
// must call wg.Done when it returns.
type ProgressReporter interface {
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer)
}

// ProgressReporterFunc adapts a function to ProgressReporter.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer) {
	f(wg, progressChan, numRuns, out)
}

// NullProgressReporter drains the progress channel without displaying
// anything. Used in quiet and immediate modes and in tests.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	DrainChannel(progressChan)
}

// ResultPresenter displays run results.
type ResultPresenter interface {
	// PresentComparisonTable displays a summary row per run.
	PresentComparisonTable(results []RunResult, out io.Writer)
	// PresentResult displays the primes and statistics of one run.
	PresentResult(result RunResult, opts PresentationOptions, out io.Writer)
}

// ErrorHandler maps run errors to exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
