// Package config resolves the primecalc configuration from command-line
// flags, PRIMECALC_* environment variables, an optional properties file and
// hardware-aware defaults, in that order of priority.
package config
