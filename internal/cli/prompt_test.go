package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/agbru/primecalc/internal/config"
	apperrors "github.com/agbru/primecalc/internal/errors"
)

func TestPromptSelection(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		input    string
		want     Selection
		invalids int
	}{
		{"choice 1", "1\n", Selection{config.SchemeRange, config.DeliveryImmediate}, 0},
		{"choice 2", "2\n", Selection{config.SchemeRange, config.DeliveryDeferred}, 0},
		{"choice 3", "3\n", Selection{config.SchemeDivisor, config.DeliveryImmediate}, 0},
		{"choice 4 without newline", "4", Selection{config.SchemeDivisor, config.DeliveryDeferred}, 0},
		{"surrounding spaces", "  2 \n", Selection{config.SchemeRange, config.DeliveryDeferred}, 0},
		{"retries until valid", "0\nabc\n5\n\n3\n", Selection{config.SchemeDivisor, config.DeliveryImmediate}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out, errOut bytes.Buffer
			got, err := PromptSelection(strings.NewReader(tt.input), &out, &errOut)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
			if n := strings.Count(errOut.String(), "Invalid choice. Please enter a number between 1 and 4."); n != tt.invalids {
				t.Errorf("got %d invalid-choice messages, want %d", n, tt.invalids)
			}
			if n := strings.Count(out.String(), "Choose approach:"); n != tt.invalids+1 {
				t.Errorf("menu printed %d times, want %d", n, tt.invalids+1)
			}
		})
	}
}

func TestPromptSelection_EOF(t *testing.T) {
	t.Parallel()
	var out, errOut bytes.Buffer
	_, err := PromptSelection(strings.NewReader("9\n"), &out, &errOut)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigError at end of input, got %v", err)
	}
}

func TestShouldPrompt(t *testing.T) {
	original := isTerminal
	t.Cleanup(func() { isTerminal = original })

	tests := []struct {
		name     string
		cfg      config.AppConfig
		terminal bool
		want     bool
	}{
		{"forced", config.AppConfig{Interactive: true, Scheme: "range", Delivery: "deferred"}, false, true},
		{"incomplete on terminal", config.AppConfig{}, true, true},
		{"incomplete off terminal", config.AppConfig{}, false, false},
		{"complete on terminal", config.AppConfig{Scheme: "range", Delivery: "immediate"}, true, false},
		{"quiet", config.AppConfig{Quiet: true}, true, false},
		{"tui", config.AppConfig{TUI: true}, true, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isTerminal = func(int) bool { return tt.terminal }
			if got := ShouldPrompt(tt.cfg, 0); got != tt.want {
				t.Errorf("ShouldPrompt() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestApplySelection(t *testing.T) {
	t.Parallel()
	cfg := ApplySelection(config.AppConfig{Threads: 3}, Selection{Scheme: config.SchemeDivisor, Delivery: config.DeliveryImmediate})
	if cfg.Threads != 3 || cfg.Scheme != config.SchemeDivisor || cfg.Delivery != config.DeliveryImmediate {
		t.Errorf("unexpected config %+v", cfg)
	}
}
