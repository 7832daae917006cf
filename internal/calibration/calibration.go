package calibration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/scheme"
	"github.com/agbru/primecalc/internal/sink"
)

// DefaultUpperBound is the search bound used for calibration runs.
const DefaultUpperBound int64 = 20000

// Options configures a calibration pass.
type Options struct {
	// UpperBound is the search bound of every benchmark run.
	UpperBound int64
	// Candidates are the thread counts to try. Empty means
	// GenerateThreadCandidates.
	Candidates []int
	// Logger receives one debug entry per measurement. Nil disables it.
	Logger logging.Logger
}

// Result is one benchmark measurement.
type Result struct {
	Scheme   string
	Threads  int
	Duration time.Duration
	Err      error
}

// Best is the fastest thread count found for one scheme.
type Best struct {
	Scheme   string
	Threads  int
	Duration time.Duration
}

// Measure runs every engine once per candidate thread count and returns the
// measurements in engine order, then candidate order. Primes are discarded.
// It stops at the first context error.
func Measure(ctx context.Context, engines []scheme.Engine, opts Options, report progress.ProgressCallback) ([]Result, error) {
	candidates := opts.Candidates
	if len(candidates) == 0 {
		candidates = GenerateThreadCandidates()
	}
	total := len(engines) * len(candidates)
	results := make([]Result, 0, total)

	for _, e := range engines {
		for _, threads := range candidates {
			start := time.Now()
			err := e.Run(ctx, scheme.Options{Threads: threads, UpperBound: opts.UpperBound}, sink.Discard, nil)
			res := Result{Scheme: e.Name(), Threads: threads, Duration: time.Since(start), Err: err}
			results = append(results, res)
			if opts.Logger != nil {
				opts.Logger.Debug("calibration measurement",
					logging.String("scheme", res.Scheme),
					logging.Int("threads", threads),
					logging.Duration("duration", res.Duration))
			}
			if report != nil && total > 0 {
				report(float64(len(results)) / float64(total))
			}
			if apperrors.IsContextError(err) {
				return results, err
			}
		}
	}
	return results, nil
}

// FindBest returns the fastest successful measurement of each scheme,
// ordered by scheme name. Ties go to the smaller thread count.
func FindBest(results []Result) []Best {
	best := make(map[string]Best)
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		cur, ok := best[r.Scheme]
		if !ok || r.Duration < cur.Duration || (r.Duration == cur.Duration && r.Threads < cur.Threads) {
			best[r.Scheme] = Best{Scheme: r.Scheme, Threads: r.Threads, Duration: r.Duration}
		}
	}
	out := make([]Best, 0, len(best))
	for _, b := range best {
		out = append(out, b)
	}
	slices.SortFunc(out, func(a, b Best) int { return cmp.Compare(a.Scheme, b.Scheme) })
	return out
}

// RunCalibration benchmarks every engine over the candidate thread counts,
// prints a summary table and the recommended thread count per scheme.
//
// Parameters:
//   - ctx: Cancellation for the whole pass.
//   - out: The writer for the report.
//   - engines: The engines to benchmark.
//   - opts: Bound, candidates and logger.
//   - reporter: Displays overall progress.
//   - errHandler: Maps a failed pass to an exit code.
//
// Returns:
//   - int: The exit code.
func RunCalibration(ctx context.Context, out io.Writer, engines []scheme.Engine, opts Options, reporter orchestration.ProgressReporter, errHandler orchestration.ErrorHandler) int {
	if opts.UpperBound < 2 {
		opts.UpperBound = DefaultUpperBound
	}
	if len(opts.Candidates) == 0 {
		opts.Candidates = GenerateThreadCandidates()
	}
	fmt.Fprintf(out, "--- Calibration ---\nBenchmarking %d scheme(s) up to %d with thread counts %v.\n",
		len(engines), opts.UpperBound, opts.Candidates)

	progressChan := make(chan progress.ProgressUpdate, orchestration.ProgressBufferMultiplier)
	var wg sync.WaitGroup
	wg.Add(1)
	go reporter.DisplayProgress(&wg, progressChan, 1, out)

	start := time.Now()
	results, err := Measure(ctx, engines, opts, func(v float64) {
		select {
		case progressChan <- progress.ProgressUpdate{RunIndex: 0, Value: v}:
		default:
		}
	})
	close(progressChan)
	wg.Wait()

	if err != nil {
		return errHandler.HandleError(err, time.Since(start), out)
	}

	bests := FindBest(results)
	for _, e := range engines {
		printCalibrationResults(out, e.Description(), filterScheme(results, e.Name()), bestFor(bests, e.Name()))
	}
	printCalibrationOutput(out, bests)
	return apperrors.ExitSuccess
}

func filterScheme(results []Result, name string) []Result {
	var out []Result
	for _, r := range results {
		if r.Scheme == name {
			out = append(out, r)
		}
	}
	return out
}

func bestFor(bests []Best, name string) int {
	for _, b := range bests {
		if b.Scheme == name {
			return b.Threads
		}
	}
	return -1
}

func sortedInts(s []int) []int {
	slices.Sort(s)
	return s
}
