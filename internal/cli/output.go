// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayPrimes], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatPrimes].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultToFile].

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/primecalc/internal/config"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the primes (empty for no file output).
	OutputFile string
	// Quiet mode prints only the primes.
	Quiet bool
}

// FormatPrimes joins primes with single spaces.
func FormatPrimes(primes []int64) string {
	var b strings.Builder
	b.Grow(len(primes) * 7)
	for i, p := range primes {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strconv.FormatInt(p, 10))
	}
	return b.String()
}

// DisplayPrimes prints the "=== Primes found:" block of a deferred run.
func DisplayPrimes(out io.Writer, primes []int64) {
	fmt.Fprintf(out, "\n=== Primes found:\n%s\n", FormatPrimes(primes))
}

// DisplayQuietResult prints the primes on a single line for scripting.
func DisplayQuietResult(out io.Writer, primes []int64) {
	fmt.Fprintln(out, FormatPrimes(primes))
}

// WriteResultToFile writes the primes of a run to oc.OutputFile, one per
// line after a commented header.
//
// Parameters:
//   - result: The run whose primes are written.
//   - upperBound: The inclusive bound of the search.
//   - oc: Output configuration.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(result orchestration.RunResult, upperBound int64, oc OutputConfig) error {
	if oc.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(oc.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(oc.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "# Prime Search Result\n")
	fmt.Fprintf(w, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(w, "# Scheme: %s\n", result.Description)
	fmt.Fprintf(w, "# Duration: %s\n", result.Duration)
	fmt.Fprintf(w, "# Upper bound: %d\n", upperBound)
	fmt.Fprintf(w, "# Count: %d\n", result.Count())
	fmt.Fprintf(w, "\n")
	for _, p := range result.Primes {
		w.WriteString(strconv.FormatInt(p, 10))
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// DisplayResultWithConfig displays a single successful run with the given
// output configuration and saves it to a file when requested.
//
// Parameters:
//   - out: The output writer.
//   - result: The run to display.
//   - opts: Presentation options.
//   - oc: Output configuration.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result orchestration.RunResult, opts orchestration.PresentationOptions, oc OutputConfig) error {
	if oc.Quiet {
		if opts.Delivery != config.DeliveryImmediate {
			DisplayQuietResult(out, result.Primes)
		}
	} else {
		CLIResultPresenter{}.PresentResult(result, opts, out)
	}
	return SaveResult(out, result, opts.UpperBound, oc)
}

// SaveResult writes the result file when one is configured and reports
// where it went unless quiet.
func SaveResult(out io.Writer, result orchestration.RunResult, upperBound int64, oc OutputConfig) error {
	if oc.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(result, upperBound, oc); err != nil {
		return err
	}
	if !oc.Quiet {
		fmt.Fprintf(out, "\n%s✓ Primes saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), oc.OutputFile, ui.ColorReset())
	}
	return nil
}
