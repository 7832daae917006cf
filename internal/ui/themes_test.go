package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/primecalc/internal/errors"
)

var _ apperrors.ColorProvider = ColorProvider{}

// The tests below mutate the package theme and therefore do not run in
// parallel.

func TestInitTheme_NoColorFlag(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	InitTheme(true)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("theme = %q, want none", got)
	}
	if ColorRed() != "" || ColorReset() != "" {
		t.Error("colors should be empty when disabled")
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.NoColor); !ok {
		t.Error("TUI theme should be NoColor when colors are disabled")
	}
}

func TestInitTheme_NoColorEnv(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	t.Setenv("NO_COLOR", "")
	InitTheme(false)
	if got := GetCurrentTheme().Name; got != "none" {
		t.Errorf("NO_COLOR present: theme = %q, want none", got)
	}
}

func TestSetTheme(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	tests := []struct {
		name string
		want Theme
	}{
		{"dark", DarkTheme},
		{"light", LightTheme},
		{"none", NoColorTheme},
		{"solarized", DarkTheme},
	}
	for _, tt := range tests {
		SetTheme(tt.name)
		if got := GetCurrentTheme(); got != tt.want {
			t.Errorf("SetTheme(%q) selected %q", tt.name, got.Name)
		}
	}
}

func TestColorAccessors(t *testing.T) {
	defer SetCurrentTheme(GetCurrentTheme())

	SetCurrentTheme(DarkTheme)
	if ColorRed() != DarkTheme.Error || ColorGreen() != DarkTheme.Success || ColorReset() != "\033[0m" {
		t.Error("accessors should follow the dark theme")
	}
	var p ColorProvider
	if p.Yellow() != DarkTheme.Warning || p.Red() != DarkTheme.Error || p.Reset() != DarkTheme.Reset {
		t.Error("ColorProvider should follow the active theme")
	}
	if _, ok := GetCurrentTUITheme().Accent.(lipgloss.Color); !ok {
		t.Error("TUI theme should carry colors when enabled")
	}
}
