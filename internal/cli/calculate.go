package cli

import (
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/agbru/primecalc/internal/config"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/scheme"
	"github.com/agbru/primecalc/internal/ui"
)

// PrintConfigSummary prints the resolved thread count and bound in the
// classic one-line form.
func PrintConfigSummary(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "Config says: threads=%d, maxNumber=%d\n\n", cfg.Threads, cfg.MaxNumber)
}

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the search bound, thread count, delivery mode, timeout and
// environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Searching primes up to %s%s%s with %s%d%s threads and a timeout of %s%s%s.\n",
		ui.ColorMagenta(), format.FormatInt(cfg.MaxNumber), ui.ColorReset(),
		ui.ColorCyan(), cfg.Threads, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Delivery: %s%s%s.\n", ui.ColorCyan(), cfg.Delivery, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single scheme vs comparison).
//
// Parameters:
//   - engines: The engines that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(engines []scheme.Engine, out io.Writer) {
	var modeDesc string
	switch len(engines) {
	case 0:
		modeDesc = "No scheme selected"
	case 1:
		modeDesc = fmt.Sprintf("Single run with %s%s%s",
			ui.ColorGreen(), engines[0].Description(), ui.ColorReset())
	default:
		modeDesc = "Parallel comparison of all schemes"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
}

// PrintRunStarted prints the wall-clock start of a run.
func PrintRunStarted(start time.Time, out io.Writer) {
	fmt.Fprintf(out, "\n=== Run started at %s\n\n", start.Format(time.ANSIC))
}

// PrintRunEnded prints the wall-clock end of a run and its elapsed time in
// milliseconds.
func PrintRunEnded(end time.Time, elapsed time.Duration, out io.Writer) {
	fmt.Fprintf(out, "\n=== Run ended at %s\n\n", end.Format(time.ANSIC))
	fmt.Fprintf(out, "Total elapsed time: %d ms\n\n", elapsed.Milliseconds())
}
