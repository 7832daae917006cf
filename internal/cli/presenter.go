package cli

import (
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during runs.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing runs.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, numRuns, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable displays the comparison summary table with scheme
// names, durations, prime counts and status in a tabular layout.
// Uses manual padding to correctly handle ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := 6     // "Scheme"
	maxDurationLen := 8 // "Duration"
	maxPrimesLen := 6   // "Primes"
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(tableDuration(res.Duration)))
		maxPrimesLen = max(maxPrimesLen, len(tableCount(res)))
	}

	fmt.Fprintf(out, "%sScheme%s%s   %sDuration%s%s   %sPrimes%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-6),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-8),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxPrimesLen-6),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := tableDuration(res.Duration)
		count := tableCount(res)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			count, padRight("", maxPrimesLen-len(count)),
			status)
	}
}

func tableDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func tableCount(res orchestration.RunResult) string {
	if res.Err != nil {
		return "-"
	}
	return strconv.Itoa(res.Count())
}

// padRight returns s followed by length spaces.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the primes of a deferred run, followed by a
// summary line and, in verbose mode, the run statistics. Immediate runs have
// already printed their primes line by line.
func (CLIResultPresenter) PresentResult(result orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	if opts.Delivery != config.DeliveryImmediate {
		DisplayPrimes(out, result.Primes)
	}
	DisplaySummary(out, result, opts)
}

// DisplaySummary prints the prime count and, in verbose mode, the run
// statistics.
func DisplaySummary(out io.Writer, result orchestration.RunResult, opts orchestration.PresentationOptions) {
	fmt.Fprintf(out, "\n%s%s%s primes up to %s%s%s found by %s%s%s in %s%s%s.\n",
		ui.ColorGreen(), format.FormatInt(int64(result.Count())), ui.ColorReset(),
		ui.ColorMagenta(), format.FormatInt(opts.UpperBound), ui.ColorReset(),
		ui.ColorBlue(), result.Description, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(result.Duration), ui.ColorReset())
	if !opts.Verbose {
		return
	}
	fmt.Fprintf(out, "\n--- Run Statistics ---\n")
	fmt.Fprintf(out, "  Threads:             %d\n", opts.Threads)
	fmt.Fprintf(out, "  Candidates examined: %s\n", format.FormatInt(result.CandidatesExamined))
	fmt.Fprintf(out, "  Workers spawned:     %s\n", format.FormatInt(result.WorkersSpawned))
	if n := len(result.Primes); n > 0 {
		fmt.Fprintf(out, "  Largest prime:       %s\n", format.FormatInt(result.Primes[n-1]))
	}
	if result.Duration > 0 {
		rate := float64(result.CandidatesExamined) / result.Duration.Seconds()
		fmt.Fprintf(out, "  Throughput:          %.0f candidates/s\n", rate)
	}
}

// HandleError handles run errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleRunError(err, duration, out, ui.ColorProvider{})
}

// DisplayMemoryStats shows process memory statistics after a run.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use: %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  System:      %s\n", format.FormatBytes(snap.Sys))
	fmt.Fprintf(out, "  GC cycles:   %d\n", snap.NumGC)
	fmt.Fprintf(out, "  Goroutines:  %d\n", snap.NumGoroutine)
	if snap.UserCPU > 0 || snap.SystemCPU > 0 {
		fmt.Fprintf(out, "  CPU time:    %s user, %s system\n",
			format.FormatExecutionDuration(snap.UserCPU), format.FormatExecutionDuration(snap.SystemCPU))
	}
}
