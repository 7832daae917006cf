package tui

import (
	"slices"
	"testing"
	"unicode/utf8"
)

func TestHistory_PushWrapsOldestFirst(t *testing.T) {
	t.Parallel()
	h := NewHistory(3)
	for _, v := range []float64{1, 2, 3, 4, 5} {
		h.Push(v)
	}
	if h.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", h.Len())
	}
	if got := h.Values(); !slices.Equal(got, []float64{3, 4, 5}) {
		t.Errorf("Values() = %v, want [3 4 5]", got)
	}
	if h.Last() != 5 {
		t.Errorf("Last() = %v, want 5", h.Last())
	}
	if h.Max() != 5 {
		t.Errorf("Max() = %v, want 5", h.Max())
	}
}

func TestHistory_EmptyAndReset(t *testing.T) {
	t.Parallel()
	h := NewHistory(4)
	if h.Last() != 0 || h.Max() != 0 || len(h.Values()) != 0 {
		t.Fatal("empty history should report zeros")
	}
	h.Push(7)
	h.Reset()
	if h.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", h.Len())
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		values  []float64
		ceiling float64
		width   int
		want    string
	}{
		{"empty", nil, 100, 10, ""},
		{"zero width", []float64{50}, 100, 0, ""},
		{"extremes", []float64{0, 100}, 100, 10, "▁█"},
		{"clamped", []float64{-5, 250}, 100, 10, "▁█"},
		{"flat without ceiling", []float64{3, 9}, 0, 10, "▁▁"},
		{"keeps the tail", []float64{0, 0, 100, 100}, 100, 2, "██"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RenderSparkline(tt.values, tt.ceiling, tt.width); got != tt.want {
				t.Errorf("RenderSparkline() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderSparkline_WidthBound(t *testing.T) {
	t.Parallel()
	values := make([]float64, 50)
	if got := utf8.RuneCountInString(RenderSparkline(values, 1, 20)); got != 20 {
		t.Errorf("rendered %d runes, want 20", got)
	}
}
