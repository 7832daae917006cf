package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/primecalc/internal/cli"
	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/ui"
)

// runSearch orchestrates a line-oriented prime search.
func (a *Application) runSearch(ctx context.Context, out io.Writer, collector *metrics.Collector) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	engines := orchestration.GetEnginesToRun(a.Config.Scheme, a.Factory)
	if len(engines) == 0 {
		return apperrors.HandleRunError(apperrors.NewConfigError("unknown scheme %q", a.Config.Scheme), 0, a.ErrWriter, ui.ColorProvider{})
	}

	immediate := a.Config.Delivery == config.DeliveryImmediate
	if !a.Config.Quiet {
		cli.PrintConfigSummary(a.Config, out)
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(engines, out)
	}

	// Immediate lines and the spinner would interleave on the same terminal.
	var progressReporter orchestration.ProgressReporter = cli.CLIProgressReporter{}
	progressOut := out
	if a.Config.Quiet || immediate {
		progressReporter = orchestration.NullProgressReporter{}
		progressOut = io.Discard
	}

	start := time.Now()
	if !a.Config.Quiet {
		cli.PrintRunStarted(start, out)
	}
	a.Logger.Info("run started",
		logging.String("scheme", a.Config.Scheme),
		logging.String("delivery", a.Config.Delivery),
		logging.Int("threads", a.Config.Threads),
		logging.Int64("max", a.Config.MaxNumber))

	opts := orchestration.RunOptions{
		Threads:    a.Config.Threads,
		UpperBound: a.Config.MaxNumber,
		Delivery:   a.Config.Delivery,
		Lines:      out,
		Metrics:    collector,
	}
	results := orchestration.ExecuteRuns(ctx, engines, opts, progressReporter, progressOut)

	end := time.Now()
	a.Logger.Info("run finished", logging.Duration("elapsed", end.Sub(start)), logging.Int("runs", len(results)))

	exitCode := a.analyzeResults(results, out)

	if !a.Config.Quiet {
		if a.Config.Verbose {
			cli.DisplayMemoryStats(metrics.NewMemoryCollector().Snapshot(), out)
		}
		cli.PrintRunEnded(end, end.Sub(start), out)
	}
	return exitCode
}

// analyzeResults reports the runs and returns the exit code.
func (a *Application) analyzeResults(results []orchestration.RunResult, out io.Writer) int {
	best, ok := findBestResult(results)
	if !ok {
		return a.handleFailure(results, out)
	}

	presOpts := orchestration.PresentationOptions{
		UpperBound: a.Config.MaxNumber,
		Threads:    a.Config.Threads,
		Delivery:   a.Config.Delivery,
		Verbose:    a.Config.Verbose,
	}

	if len(results) > 1 {
		reportOut := out
		if a.Config.Quiet {
			reportOut = io.Discard
		}
		presenter := comparisonPresenter{}
		if code := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, reportOut); code != apperrors.ExitSuccess {
			if a.Config.Quiet {
				fmt.Fprintf(a.ErrWriter, "The schemes disagree on the primes up to %d.\n", a.Config.MaxNumber)
			}
			return code
		}
	}

	outputCfg := cli.OutputConfig{OutputFile: a.Config.OutputFile, Quiet: a.Config.Quiet}
	if err := cli.DisplayResultWithConfig(out, best, presOpts, outputCfg); err != nil {
		err = apperrors.WrapError(err, "saving primes to %s", a.Config.OutputFile)
		a.Logger.Error("cannot save primes", err)
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}

	if a.Config.Verify {
		return a.verify(best, out)
	}
	return apperrors.ExitSuccess
}

// handleFailure maps the first run error to an exit code. A deadline becomes
// a TimeoutError carrying the configured limit.
func (a *Application) handleFailure(results []orchestration.RunResult, out io.Writer) int {
	err := orchestration.FirstError(results)
	var elapsed time.Duration
	for _, r := range results {
		elapsed = max(elapsed, r.Duration)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		err = apperrors.TimeoutError{Operation: "prime search", Limit: a.Config.Timeout}
	}
	a.Logger.Error("run failed", err, logging.Duration("elapsed", elapsed))

	errOut := out
	if a.Config.Quiet {
		errOut = a.ErrWriter
	}
	return cli.CLIResultPresenter{}.HandleError(err, elapsed, errOut)
}

// verify checks result against the sequential sieve.
func (a *Application) verify(result orchestration.RunResult, out io.Writer) int {
	if err := orchestration.VerifyPrimes(result.Primes, a.Config.MaxNumber); err != nil {
		fmt.Fprintf(a.ErrWriter, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return apperrors.ExitErrorMismatch
	}
	if !a.Config.Quiet {
		fmt.Fprintf(out, "%s✓ Verified against a sequential sieve.%s\n", ui.ColorGreen(), ui.ColorReset())
	}
	return apperrors.ExitSuccess
}

// findBestResult returns the fastest successful run.
func findBestResult(results []orchestration.RunResult) (orchestration.RunResult, bool) {
	var best orchestration.RunResult
	found := false
	for _, r := range results {
		if r.Err == nil && (!found || r.Duration < best.Duration) {
			best, found = r, true
		}
	}
	return best, found
}

// comparisonPresenter prints the comparison table only; the selected result
// is displayed afterwards with the output options.
type comparisonPresenter struct {
	cli.CLIResultPresenter
}

func (comparisonPresenter) PresentResult(orchestration.RunResult, orchestration.PresentationOptions, io.Writer) {
}
