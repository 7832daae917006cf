package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/scheme"
	"github.com/agbru/primecalc/internal/sink"
)

// stubEngine reports a fixed list of values, or blocks until cancellation.
type stubEngine struct {
	name   string
	primes []int64
	err    error
	block  bool
}

func (e stubEngine) Name() string        { return e.name }
func (e stubEngine) Description() string { return "Stub " + e.name }

func (e stubEngine) Run(ctx context.Context, _ scheme.Options, s sink.Sink, report progress.ProgressCallback) error {
	if e.block {
		<-ctx.Done()
		return ctx.Err()
	}
	if e.err != nil {
		return e.err
	}
	for _, p := range e.primes {
		s.Report(p, "Thread-0")
	}
	if report != nil {
		report(1)
	}
	return nil
}

type stubFactory []scheme.Engine

func (f stubFactory) Get(name string) (scheme.Engine, error) {
	for _, e := range f {
		if e.Name() == name {
			return e, nil
		}
	}
	return nil, fmt.Errorf("unknown scheme %q", name)
}

func (f stubFactory) List() []string {
	names := make([]string, len(f))
	for i, e := range f {
		names[i] = e.Name()
	}
	slices.Sort(names)
	return names
}

func quietLogger() logging.Logger {
	return logging.NewStdLoggerAdapter(log.New(io.Discard, "", 0))
}

// runApp builds and runs the application, returning stdout, stderr and the
// exit code.
func runApp(t *testing.T, args []string, opts ...AppOption) (string, string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	opts = append([]AppOption{WithInput(strings.NewReader("")), WithLogger(quietLogger())}, opts...)
	application, err := New(append([]string{"primecalc", "--no-color"}, args...), &stderr, opts...)
	require.NoError(t, err)
	code := application.Run(context.Background(), &stdout)
	return stdout.String(), stderr.String(), code
}

const primesTo30 = "2 3 5 7 11 13 17 19 23 29"

func TestNew(t *testing.T) {
	t.Run("parses flags", func(t *testing.T) {
		app, err := New([]string{"primecalc", "-t", "3", "-n", "500", "--scheme", "divisor"}, io.Discard)
		require.NoError(t, err)
		require.Equal(t, 3, app.Config.Threads)
		require.Equal(t, int64(500), app.Config.MaxNumber)
		require.Equal(t, "divisor", app.Config.Scheme)
		require.NotNil(t, app.Logger)
		require.NotNil(t, app.Factory)
	})

	t.Run("help", func(t *testing.T) {
		_, err := New([]string{"primecalc", "--help"}, io.Discard)
		require.True(t, IsHelpError(err))
	})

	t.Run("invalid config", func(t *testing.T) {
		var stderr bytes.Buffer
		_, err := New([]string{"primecalc", "-t", "0"}, &stderr)
		require.Error(t, err)
		require.False(t, IsHelpError(err))
		var cfgErr apperrors.ConfigError
		require.ErrorAs(t, err, &cfgErr)
		require.Contains(t, stderr.String(), "invalid thread count")
	})
}

func TestRun_Deferred(t *testing.T) {
	out, _, code := runApp(t, []string{"-t", "4", "-n", "30", "--scheme", "range", "--delivery", "deferred"})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, "Config says: threads=4, maxNumber=30")
	require.Contains(t, out, "=== Run started at")
	require.Contains(t, out, "=== Primes found:\n"+primesTo30+"\n")
	require.Contains(t, out, "Total elapsed time:")
}

func TestRun_Immediate(t *testing.T) {
	out, _, code := runApp(t, []string{"-t", "2", "-n", "30", "--scheme", "divisor", "--delivery", "immediate"})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, "Found prime: 29")
	require.NotContains(t, out, "=== Primes found:")
	require.Contains(t, out, "10 primes up to 30")
}

func TestRun_Comparison(t *testing.T) {
	out, _, code := runApp(t, []string{"-t", "3", "-n", "30", "--scheme", "all", "--verify"})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, "Global Status: Success")
	require.Contains(t, out, "range")
	require.Contains(t, out, "divisor")
	require.Equal(t, 1, strings.Count(out, "=== Primes found:"))
	require.Contains(t, out, "Verified against a sequential sieve")
}

func TestRun_Quiet(t *testing.T) {
	out, _, code := runApp(t, []string{"-q", "-n", "30", "--scheme", "all"})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Equal(t, primesTo30+"\n", out)
}

func TestRun_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "primes.txt")
	out, _, code := runApp(t, []string{"-n", "30", "--scheme", "range", "--delivery", "deferred", "-o", path})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, "Primes saved to: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "\n29\n")
}

func TestRun_OutputFileError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	path := filepath.Join(blocker, "primes.txt")

	_, stderr, code := runApp(t, []string{"-n", "30", "--scheme", "range", "-o", path})
	require.Equal(t, apperrors.ExitErrorGeneric, code)
	require.Contains(t, stderr, "saving primes to "+path)
}

func TestRun_Interactive(t *testing.T) {
	out, stderr, code := runApp(t, []string{"-i", "-n", "30"}, WithInput(strings.NewReader("9\nfour\n4\n")))
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Equal(t, 2, strings.Count(stderr, "Invalid choice"))
	require.Contains(t, out, "Choose approach:")
	require.Contains(t, out, "Divisor Splitting")
	require.Contains(t, out, "=== Primes found:\n"+primesTo30)
}

func TestRun_InteractiveEOF(t *testing.T) {
	_, _, code := runApp(t, []string{"-i", "-n", "30"})
	require.Equal(t, apperrors.ExitErrorConfig, code)
}

func TestRun_DefaultsWithoutTerminal(t *testing.T) {
	out, _, code := runApp(t, []string{"-n", "30"})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, "Range Partition")
	require.Contains(t, out, "=== Primes found:")
}

func TestRun_Mismatch(t *testing.T) {
	factory := stubFactory{
		stubEngine{name: "a", primes: []int64{2, 3, 5}},
		stubEngine{name: "b", primes: []int64{2, 3}},
	}
	out, _, code := runApp(t, []string{"-n", "5", "--scheme", "all"}, WithFactory(factory))
	require.Equal(t, apperrors.ExitErrorMismatch, code)
	require.Contains(t, out, "CRITICAL ERROR")
}

func TestRun_VerifyFailure(t *testing.T) {
	factory := stubFactory{stubEngine{name: "a", primes: []int64{2, 3, 4}}}
	_, stderr, code := runApp(t, []string{"-n", "5", "--scheme", "a", "--verify"}, WithFactory(factory))
	require.Equal(t, apperrors.ExitErrorMismatch, code)
	require.Contains(t, stderr, "verification against the sieve failed")
}

func TestRun_Timeout(t *testing.T) {
	factory := stubFactory{stubEngine{name: "slow", block: true}}
	out, _, code := runApp(t, []string{"-n", "5", "--scheme", "slow", "--timeout", "20ms"}, WithFactory(factory))
	require.Equal(t, apperrors.ExitErrorTimeout, code)
	require.Contains(t, out, "time limit was exceeded")
}

func TestRun_EngineFailure(t *testing.T) {
	factory := stubFactory{stubEngine{name: "bad", err: errors.New("boom")}}
	_, stderr, code := runApp(t, []string{"-q", "-n", "5", "--scheme", "bad"}, WithFactory(factory))
	require.Equal(t, apperrors.ExitErrorGeneric, code)
	require.Contains(t, stderr, "boom")
}

func TestRun_Completion(t *testing.T) {
	out, _, code := runApp(t, []string{"--completion", "bash"})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, "primecalc")
	require.Contains(t, out, "--scheme")
}

func TestRun_Calibrate(t *testing.T) {
	factory := stubFactory{
		stubEngine{name: "a", primes: []int64{2}},
		stubEngine{name: "b", primes: []int64{2}},
	}
	out, _, code := runApp(t, []string{"--calibrate"}, WithFactory(factory))
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, "Calibration")
}

func TestRun_MetricsServer(t *testing.T) {
	out, _, code := runApp(t, []string{"-n", "30", "--scheme", "range", "--metrics-addr", "127.0.0.1:0"})
	require.Equal(t, apperrors.ExitSuccess, code)
	require.Contains(t, out, primesTo30)
}

func TestRun_MetricsServerBindError(t *testing.T) {
	_, _, code := runApp(t, []string{"-n", "30", "--scheme", "range", "--metrics-addr", "127.0.0.1:99999"})
	require.Equal(t, apperrors.ExitErrorConfig, code)
}

func TestFindBestResult(t *testing.T) {
	t.Parallel()
	_, ok := findBestResult(nil)
	require.False(t, ok)
}
