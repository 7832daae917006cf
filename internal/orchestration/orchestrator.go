package orchestration

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/scheme"
	"github.com/agbru/primecalc/internal/sink"
)

const tracerName = "github.com/agbru/primecalc/internal/orchestration"

// ProgressBufferMultiplier sizes the progress channel relative to the number
// of runs so that engines rarely find it full.
const ProgressBufferMultiplier = 5

// RunOptions configures ExecuteRuns.
type RunOptions struct {
	Threads    int
	UpperBound int64
	// Delivery selects the sink: "immediate" prints each discovery to Lines
	// as it happens, "deferred" buffers and sorts.
	Delivery string
	// Lines receives immediate discovery lines. Nil discards them.
	Lines io.Writer
	// Observer receives every discovery in immediate mode.
	Observer sink.Observer
	// Metrics, when non-nil, records per-run counters.
	Metrics *metrics.Collector
}

// ExecuteRuns runs every engine concurrently, each with its own sink, and
// returns one RunResult per engine in input order.
//
// Parameters:
//   - ctx: Cancellation and deadline for all runs.
//   - engines: The engines to execute.
//   - opts: Bound, thread count, delivery and optional observers.
//   - progressReporter: Displays progress (NullProgressReporter for none).
//   - out: The writer for progress output.
//
// Returns:
//   - []RunResult: The result of each run.
func ExecuteRuns(ctx context.Context, engines []scheme.Engine, opts RunOptions, progressReporter ProgressReporter, out io.Writer) []RunResult {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]RunResult, len(engines))
	progressChan := make(chan progress.ProgressUpdate, len(engines)*ProgressBufferMultiplier)

	if opts.Metrics != nil {
		opts.Metrics.SetRunConfig(opts.Threads, opts.UpperBound)
	}

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, len(engines), out)

	for i, e := range engines {
		g.Go(func() error {
			results[i] = runEngine(ctx, i, e, opts, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()
	return results
}

func runEngine(ctx context.Context, index int, e scheme.Engine, opts RunOptions, progressChan chan<- progress.ProgressUpdate) RunResult {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "primecalc.run",
		trace.WithAttributes(
			attribute.String("scheme", e.Name()),
			attribute.Int("threads", opts.Threads),
			attribute.Int64("upper_bound", opts.UpperBound),
			attribute.String("delivery", opts.Delivery),
		))
	defer span.End()

	report := func(fraction float64) {
		select {
		case progressChan <- progress.ProgressUpdate{RunIndex: index, Value: fraction}:
		default:
		}
	}

	var stats scheme.RunStats
	s, collect := buildSink(e, opts)

	start := time.Now()
	err := e.Run(ctx, scheme.Options{Threads: opts.Threads, UpperBound: opts.UpperBound, Stats: &stats}, s, report)
	res := RunResult{
		Name:               e.Name(),
		Description:        e.Description(),
		Duration:           time.Since(start),
		CandidatesExamined: stats.CandidatesExamined.Load(),
		WorkersSpawned:     stats.WorkersSpawned.Load(),
		Err:                err,
	}
	if err == nil {
		res.Primes = collect()
	}

	span.SetAttributes(
		attribute.Int("primes_found", res.Count()),
		attribute.Int64("candidates_examined", res.CandidatesExamined),
		attribute.Int64("workers_spawned", res.WorkersSpawned),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	if opts.Metrics != nil {
		opts.Metrics.ObserveRun(metrics.RunSample{
			Scheme:             res.Name,
			Duration:           res.Duration,
			CandidatesExamined: res.CandidatesExamined,
			WorkersSpawned:     res.WorkersSpawned,
			Status:             runStatus(err),
		})
	}
	return res
}

// buildSink returns the sink for one run and a function yielding the sorted
// primes once the run is over.
func buildSink(e scheme.Engine, opts RunOptions) (sink.Sink, func() []int64) {
	var s sink.Sink
	var collect func() []int64

	if opts.Delivery == config.DeliveryImmediate {
		collected := sink.NewCollecting()
		imm := sink.NewImmediate(opts.Lines,
			sink.WithObserver(collected.Observe),
			sink.WithObserver(opts.Observer),
		)
		s, collect = imm, collected.Values
	} else {
		deferred := sink.NewDeferred()
		s, collect = deferred, deferred.Drain
	}

	if opts.Metrics != nil {
		s = sink.Counting(s, opts.Metrics.PrimeCounter(e.Name()))
	}
	return s, collect
}

func runStatus(err error) string {
	switch {
	case err == nil:
		return metrics.StatusSuccess
	case apperrors.IsContextError(err):
		return metrics.StatusCanceled
	default:
		return metrics.StatusError
	}
}

// AnalyzeComparisonResults presents the results of several runs and checks
// that every successful run found the same primes.
//
// Results are sorted successful-first, then by duration. The fastest
// successful result is presented in full.
//
// Parameters:
//   - results: The run results to analyze.
//   - opts: Presentation options for the final result.
//   - presenter: The result presenter.
//   - errHandler: Maps the first error to an exit code when every run failed.
//   - out: The writer for the report.
//
// Returns:
//   - int: apperrors.ExitSuccess, ExitErrorMismatch, or the error handler's code.
func AnalyzeComparisonResults(results []RunResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	slices.SortStableFunc(results, func(a, b RunResult) int {
		if (a.Err == nil) != (b.Err == nil) {
			if a.Err == nil {
				return -1
			}
			return 1
		}
		return cmp.Compare(a.Duration, b.Duration)
	})

	var firstValid *RunResult
	var firstError error
	var firstErrorDuration time.Duration
	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
				firstErrorDuration = results[i].Duration
			}
			continue
		}
		if firstValid == nil {
			firstValid = &results[i]
		}
	}

	presenter.PresentComparisonTable(results, out)

	if firstValid == nil {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No scheme completed the run.\n")
		return errHandler.HandleError(firstError, firstErrorDuration, out)
	}

	for _, res := range results {
		if res.Err == nil && !slices.Equal(res.Primes, firstValid.Primes) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The schemes disagree on the primes up to %d.\n", opts.UpperBound)
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All completed schemes agree.\n")
	presenter.PresentResult(*firstValid, opts, out)
	return apperrors.ExitSuccess
}

// FirstError returns the first run error, wrapped with its scheme name.
func FirstError(results []RunResult) error {
	for _, r := range results {
		if r.Err != nil {
			return apperrors.RunError{Scheme: r.Name, Cause: r.Err}
		}
	}
	return nil
}
