package calibration

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/ui"
)

// printCalibrationResults formats and prints the calibration table of one scheme.
func printCalibrationResults(out io.Writer, title string, results []Result, bestThreads int) {
	fmt.Fprintf(out, "\n--- %s ---\n", title)
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sThreads%s      │ %sExecution Time%s\n", ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s\n", strings.Repeat("─", 14), strings.Repeat("─", 25))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				durationStr = "< 1µs"
			}
		}
		highlight := ""
		if res.Threads == bestThreads && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-12d%s │ %s%s%s%s\n", ui.ColorCyan(), res.Threads, ui.ColorReset(), ui.ColorYellow(), durationStr, ui.ColorReset(), highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the recommended thread count of each scheme.
func printCalibrationOutput(out io.Writer, bests []Best) {
	if len(bests) == 0 {
		fmt.Fprintf(out, "\n%sCalibration%s: no successful measurement.\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	parts := make([]string, 0, len(bests))
	for _, b := range bests {
		parts = append(parts, fmt.Sprintf("%s=%s%d%s", b.Scheme, ui.ColorYellow(), b.Threads, ui.ColorReset()))
	}
	fmt.Fprintf(out, "\n%sCalibration%s: best thread count %s\n", ui.ColorGreen(), ui.ColorReset(), strings.Join(parts, ", "))
}
