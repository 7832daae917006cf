package config

import (
	"flag"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	apperrors "github.com/agbru/primecalc/internal/errors"
)

// FileConfig holds the values read from a properties config file such as:
//
//	threads=4
//	maxNumber=100000
type FileConfig struct {
	Threads   int
	MaxNumber int64
}

// LoadFile reads a properties file. Both keys are required; threads must be
// a positive integer and maxNumber an integer greater than 1.
func LoadFile(path string) (FileConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("properties")
	if err := v.ReadInConfig(); err != nil {
		return FileConfig{}, apperrors.NewConfigError("could not read config file %s: %v", path, err)
	}

	// viper keys are case-insensitive: "maxNumber" is stored as "maxnumber".
	if !v.IsSet("threads") || !v.IsSet("maxnumber") {
		return FileConfig{}, apperrors.NewConfigError("config file %s is missing 'threads=' or 'maxNumber=' entries", path)
	}

	var fc FileConfig
	raw := strings.TrimSpace(v.GetString("threads"))
	threads, err := strconv.Atoi(raw)
	if err != nil || threads <= 0 {
		return FileConfig{}, apperrors.NewConfigError("invalid thread count in config: %s", raw)
	}
	fc.Threads = threads

	raw = strings.TrimSpace(v.GetString("maxnumber"))
	maxNumber, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || maxNumber <= 1 {
		return FileConfig{}, apperrors.NewConfigError("invalid max number in config: %s", raw)
	}
	fc.MaxNumber = maxNumber
	return fc, nil
}

// applyFile copies file values into cfg for the settings that were not given
// on the command line or in the environment.
func applyFile(cfg *AppConfig, fc FileConfig, fs *flag.FlagSet) {
	if !isExplicit(fs, envThreads) {
		cfg.Threads = fc.Threads
	}
	if !isExplicit(fs, envMaxNumber) {
		cfg.MaxNumber = fc.MaxNumber
	}
}
