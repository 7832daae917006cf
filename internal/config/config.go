package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/primecalc/internal/errors"
	"github.com/agbru/primecalc/internal/logging"
)

// EnvPrefix prefixes every environment variable read by primecalc.
const EnvPrefix = "PRIMECALC_"

const (
	// DefaultMaxNumber is the upper bound used when none is configured.
	DefaultMaxNumber int64 = 100000
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 5 * time.Minute
)

// Scheme selectors.
const (
	SchemeRange   = "range"
	SchemeDivisor = "divisor"
	SchemeAll     = "all"
)

// Delivery modes.
const (
	DeliveryImmediate = "immediate"
	DeliveryDeferred  = "deferred"
)

// AppConfig aggregates the application's configuration parameters.
type AppConfig struct {
	// Threads is the worker count handed to the engines.
	Threads int
	// MaxNumber is the inclusive upper bound of the search space.
	MaxNumber int64
	// Scheme is "range", "divisor" or "all". Empty until selected.
	Scheme string
	// Delivery is "immediate" or "deferred". Empty until selected.
	Delivery string
	// ConfigFile is the optional properties file with threads= and maxNumber=.
	ConfigFile string
	// Interactive forces the scheme/delivery menu.
	Interactive bool
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Verify compares the result with a sequential sieve.
	Verify bool
	// Quiet prints only the primes.
	Quiet bool
	// Verbose adds run statistics to the report.
	Verbose bool
	// NoColor disables ANSI colors.
	NoColor bool
	// OutputFile, when set, receives the primes of the run.
	OutputFile string
	// MetricsAddr, when set, serves Prometheus metrics on that address.
	MetricsAddr string
	// TUI launches the dashboard instead of the line-oriented CLI.
	TUI bool
	// Calibrate benchmarks thread counts for both schemes and exits.
	Calibrate bool
	// LogLevel is the zerolog level name for diagnostics on stderr.
	LogLevel string
	// Completion, when set, prints a shell completion script and exits.
	Completion string
}

// NeedsSelection reports whether the scheme or the delivery mode is still
// unset and must come from the interactive menu or the defaults.
func (c AppConfig) NeedsSelection() bool {
	return c.Scheme == "" || c.Delivery == ""
}

// WithSelectionDefaults fills an unset scheme and delivery mode with
// "range" and "deferred". Comparison runs always use deferred delivery.
func (c AppConfig) WithSelectionDefaults() AppConfig {
	if c.Scheme == "" {
		c.Scheme = SchemeRange
	}
	if c.Delivery == "" || c.Scheme == SchemeAll {
		c.Delivery = DeliveryDeferred
	}
	return c
}

// ParseConfig parses the command-line arguments and resolves the remaining
// values from the environment, the config file and the defaults.
//
// Parameters:
//   - programName: The program name used in usage messages.
//   - args: The command-line arguments, without the program name.
//   - errorWriter: Where usage and parse errors are written.
//   - availableSchemes: The engine names accepted by --scheme.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp for -h, or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableSchemes []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	var cfg AppConfig
	registerFlags(fs, &cfg, availableSchemes)
	fs.Usage = func() {
		fmt.Fprintf(errorWriter, "Usage: %s [options]\n\nFinds every prime up to a bound with two parallel schemes.\n\nOptions:\n", programName)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return cfg, err
		}
		return cfg, apperrors.NewConfigError("%v", err)
	}
	if fs.NArg() > 0 {
		return cfg, apperrors.NewConfigError("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if err := applyEnvOverrides(&cfg, fs); err != nil {
		return cfg, err
	}

	if cfg.ConfigFile != "" {
		fileCfg, err := LoadFile(cfg.ConfigFile)
		if err != nil {
			return cfg, err
		}
		applyFile(&cfg, fileCfg, fs)
	}

	if !isExplicit(fs, envThreads) && cfg.Threads == 0 {
		cfg.Threads = EstimateOptimalThreadCount()
	}
	if !isExplicit(fs, envMaxNumber) && cfg.MaxNumber == 0 {
		cfg.MaxNumber = DefaultMaxNumber
	}

	cfg.Scheme = strings.ToLower(cfg.Scheme)
	cfg.Delivery = strings.ToLower(cfg.Delivery)
	if err := cfg.Validate(availableSchemes); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func registerFlags(fs *flag.FlagSet, cfg *AppConfig, availableSchemes []string) {
	schemes := strings.Join(append(slices.Clone(availableSchemes), SchemeAll), ", ")

	fs.IntVar(&cfg.Threads, "threads", 0, "Number of worker goroutines (default: adaptive to CPU count).")
	fs.IntVar(&cfg.Threads, "t", 0, "Shorthand for --threads.")
	fs.Int64Var(&cfg.MaxNumber, "max", 0, fmt.Sprintf("Inclusive upper bound of the search (default: %d).", DefaultMaxNumber))
	fs.Int64Var(&cfg.MaxNumber, "n", 0, "Shorthand for --max.")
	fs.StringVar(&cfg.Scheme, "scheme", "", fmt.Sprintf("Partitioning scheme: %s.", schemes))
	fs.StringVar(&cfg.Delivery, "delivery", "", "Result delivery: immediate or deferred.")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Properties file providing threads= and maxNumber=.")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "Choose scheme and delivery from a menu.")
	fs.BoolVar(&cfg.Interactive, "i", false, "Shorthand for --interactive.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of the run.")
	fs.BoolVar(&cfg.Verify, "verify", false, "Check the result against a sequential sieve.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print only the primes.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for --quiet.")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Show run statistics.")
	fs.BoolVar(&cfg.Verbose, "v", false, "Shorthand for --verbose.")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the primes to this file.")
	fs.StringVar(&cfg.OutputFile, "o", "", "Shorthand for --output.")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address (e.g. :9090).")
	fs.BoolVar(&cfg.TUI, "tui", false, "Run with the interactive dashboard.")
	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Benchmark thread counts for both schemes and exit.")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Diagnostic log level: debug, info, warn, error.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script for bash, zsh or fish.")
}

// Validate checks the configuration for semantic errors.
func (c AppConfig) Validate(availableSchemes []string) error {
	if c.Threads < 1 {
		return apperrors.NewConfigError("invalid thread count %d: must be a positive integer", c.Threads)
	}
	if c.MaxNumber < 2 {
		return apperrors.NewConfigError("invalid max number %d: must be greater than 1", c.MaxNumber)
	}
	if c.Scheme != "" && c.Scheme != SchemeAll && !slices.Contains(availableSchemes, c.Scheme) {
		return apperrors.NewConfigError("unknown scheme %q (available: %s, %s)", c.Scheme, strings.Join(availableSchemes, ", "), SchemeAll)
	}
	switch c.Delivery {
	case "", DeliveryImmediate, DeliveryDeferred:
	default:
		return apperrors.NewConfigError("unknown delivery mode %q (expected %s or %s)", c.Delivery, DeliveryImmediate, DeliveryDeferred)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return apperrors.NewConfigError("invalid log level %q", c.LogLevel)
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported shell %q for completion (expected bash, zsh or fish)", c.Completion)
	}
	if c.TUI && c.Quiet {
		return apperrors.NewConfigError("--tui and --quiet cannot be combined")
	}
	return nil
}
