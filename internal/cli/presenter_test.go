package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
)

func sampleResult() orchestration.RunResult {
	return orchestration.RunResult{
		Name:               "range",
		Description:        "Range Partition (Scheme A)",
		Primes:             []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29},
		Duration:           3 * time.Millisecond,
		CandidatesExamined: 30,
		WorkersSpawned:     4,
	}
}

func TestPresentComparisonTable(t *testing.T) {
	t.Parallel()
	results := []orchestration.RunResult{
		sampleResult(),
		{Name: "divisor", Duration: 0, Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Scheme", "Duration", "Primes", "Status", "range", "divisor", "3ms", "10", "< 1µs", "Success", "Failure (boom)"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q:\n%s", want, out)
		}
	}

	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected title, header and 2 rows, got %d lines:\n%s", len(lines), out)
	}
	// Columns are aligned: "Duration" starts at the same offset in every row.
	header, row := lines[1], lines[2]
	if strings.Index(header, "Duration") != strings.Index(row, "3ms") {
		t.Errorf("misaligned columns:\n%s\n%s", header, row)
	}
}

func TestPresentResult(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		opts        orchestration.PresentationOptions
		contains    []string
		notContains []string
	}{
		{
			name:        "deferred prints primes",
			opts:        orchestration.PresentationOptions{UpperBound: 30, Threads: 4, Delivery: config.DeliveryDeferred},
			contains:    []string{"=== Primes found:", "2 3 5 7 11 13 17 19 23 29", "10 primes up to 30"},
			notContains: []string{"Run Statistics"},
		},
		{
			name:        "immediate skips the block",
			opts:        orchestration.PresentationOptions{UpperBound: 30, Threads: 4, Delivery: config.DeliveryImmediate},
			contains:    []string{"10 primes up to 30", "Range Partition (Scheme A)"},
			notContains: []string{"=== Primes found:"},
		},
		{
			name:     "verbose adds statistics",
			opts:     orchestration.PresentationOptions{UpperBound: 30, Threads: 4, Delivery: config.DeliveryDeferred, Verbose: true},
			contains: []string{"Run Statistics", "Threads:             4", "Candidates examined: 30", "Workers spawned:     4", "Largest prime:       29", "candidates/s"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			CLIResultPresenter{}.PresentResult(sampleResult(), tt.opts, &buf)
			out := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(out, s) {
					t.Errorf("expected %q in:\n%s", s, out)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in:\n%s", s, out)
				}
			}
		})
	}
}

func TestHandleError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"config", apperrors.NewConfigError("bad"), apperrors.ExitErrorConfig},
		{"generic", errors.New("x"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if got := (CLIResultPresenter{}).HandleError(tt.err, time.Second, &buf); got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestDisplayMemoryStats(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayMemoryStats(metrics.MemorySnapshot{HeapAlloc: 2048, Sys: 3 << 20, NumGC: 7, NumGoroutine: 5}, &buf)
	out := buf.String()
	for _, want := range []string{"Memory Stats", "2.0 KB", "3.0 MB", "GC cycles:   7", "Goroutines:  5"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "CPU time") {
		t.Errorf("CPU line should be omitted without CPU times:\n%s", out)
	}

	buf.Reset()
	DisplayMemoryStats(metrics.MemorySnapshot{UserCPU: 1500 * time.Millisecond, SystemCPU: 20 * time.Millisecond}, &buf)
	if !strings.Contains(buf.String(), "CPU time:    1.5s user, 20ms system") {
		t.Errorf("missing CPU line:\n%s", buf.String())
	}
}
