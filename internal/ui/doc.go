// Package ui holds the color themes shared by the CLI and the TUI dashboard.
// Colors are exposed as functions so that --no-color and NO_COLOR take effect
// everywhere once InitTheme has run.
package ui
