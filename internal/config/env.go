// This file contains the environment variable overrides.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/agbru/primecalc/internal/errors"
)

const (
	envThreads   = "THREADS"
	envMaxNumber = "MAX_NUMBER"
)

// isFlagSet checks if a flag was explicitly set on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny checks if any of the specified flags were explicitly set.
// Aliased flags may be given in either the short or the long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override: the env key
// (without EnvPrefix), the CLI flag names that take precedence over it and
// the function applying its value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string) error
}

// envOverrides is the declarative table of all environment variable overrides.
var envOverrides = []envOverride{
	// Numeric overrides
	{envThreads, []string{"threads", "t"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return apperrors.NewConfigError("invalid %s%s value %q", EnvPrefix, envThreads, v)
		}
		c.Threads = parsed
		return nil
	}},
	{envMaxNumber, []string{"max", "n"}, func(c *AppConfig, v string) error {
		parsed, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return apperrors.NewConfigError("invalid %s%s value %q", EnvPrefix, envMaxNumber, v)
		}
		c.MaxNumber = parsed
		return nil
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) error {
		parsed, err := time.ParseDuration(v)
		if err != nil {
			return apperrors.NewConfigError("invalid %sTIMEOUT value %q", EnvPrefix, v)
		}
		c.Timeout = parsed
		return nil
	}},

	// String overrides
	{"SCHEME", []string{"scheme"}, func(c *AppConfig, v string) error {
		c.Scheme = v
		return nil
	}},
	{"DELIVERY", []string{"delivery"}, func(c *AppConfig, v string) error {
		c.Delivery = v
		return nil
	}},
	{"CONFIG", []string{"config"}, func(c *AppConfig, v string) error {
		c.ConfigFile = v
		return nil
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) error {
		c.OutputFile = v
		return nil
	}},
	{"METRICS_ADDR", []string{"metrics-addr"}, func(c *AppConfig, v string) error {
		c.MetricsAddr = v
		return nil
	}},
	{"LOG_LEVEL", []string{"log-level"}, func(c *AppConfig, v string) error {
		c.LogLevel = v
		return nil
	}},

	// Boolean overrides
	{"VERIFY", []string{"verify"}, func(c *AppConfig, v string) error {
		c.Verify = parseBoolEnv(v, c.Verify)
		return nil
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) error {
		c.Quiet = parseBoolEnv(v, c.Quiet)
		return nil
	}},
	{"VERBOSE", []string{"verbose", "v"}, func(c *AppConfig, v string) error {
		c.Verbose = parseBoolEnv(v, c.Verbose)
		return nil
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) error {
		c.TUI = parseBoolEnv(v, c.TUI)
		return nil
	}},
	{"NO_COLOR", []string{"no-color"}, func(c *AppConfig, v string) error {
		c.NoColor = parseBoolEnv(v, c.NoColor)
		return nil
	}},
}

// parseBoolEnv accepts "true", "1", "yes" as true and "false", "0", "no" as
// false (case-insensitive). Unrecognized values return defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides applies environment variable values to the configuration
// for any flags that were not explicitly set on the command line.
// This implements the priority: CLI flags > Environment variables > file > defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) error {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			if err := o.apply(config, val); err != nil {
				return err
			}
		}
	}
	return nil
}

// isExplicit reports whether the value behind envKey was given on the command
// line or in the environment.
func isExplicit(fs *flag.FlagSet, envKey string) bool {
	for _, o := range envOverrides {
		if o.envKey != envKey {
			continue
		}
		return isFlagSetAny(fs, o.flags...) || os.Getenv(EnvPrefix+envKey) != ""
	}
	return false
}
