package orchestration

import (
	"testing"

	"github.com/agbru/primecalc/internal/progress"
)

func TestNewProgressAggregator(t *testing.T) {
	t.Parallel()

	tests := []struct {
		numRuns int
		wantNil bool
	}{
		{numRuns: 2},
		{numRuns: 1},
		{numRuns: 0, wantNil: true},
		{numRuns: -1, wantNil: true},
	}
	for _, tt := range tests {
		agg := NewProgressAggregator(tt.numRuns)
		if (agg == nil) != tt.wantNil {
			t.Fatalf("NewProgressAggregator(%d) nil = %v, want %v", tt.numRuns, agg == nil, tt.wantNil)
		}
		if agg == nil {
			continue
		}
		if agg.NumRuns() != tt.numRuns {
			t.Errorf("NewProgressAggregator(%d): NumRuns=%d", tt.numRuns, agg.NumRuns())
		}
	}
}

func TestProgressAggregator_Update(t *testing.T) {
	t.Parallel()

	agg := NewProgressAggregator(2)
	if avg := agg.CalculateAverage(); avg != 0 {
		t.Fatalf("initial average = %f, want 0", avg)
	}
	if eta := agg.GetETA(); eta != 0 {
		t.Errorf("initial ETA = %v, want 0", eta)
	}

	ap := agg.Update(progress.ProgressUpdate{RunIndex: 0, Value: 0.5})
	if ap.RunIndex != 0 || ap.Value != 0.5 || ap.AverageProgress != 0.25 {
		t.Errorf("after first update: %+v", ap)
	}
	ap = agg.Update(progress.ProgressUpdate{RunIndex: 1, Value: 1.0})
	if ap.AverageProgress != 0.75 {
		t.Errorf("AverageProgress = %f, want 0.75", ap.AverageProgress)
	}
	if agg.CalculateAverage() != 0.75 {
		t.Errorf("CalculateAverage = %f, want 0.75", agg.CalculateAverage())
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()

	ch := make(chan progress.ProgressUpdate, 3)
	ch <- progress.ProgressUpdate{Value: 0.1}
	ch <- progress.ProgressUpdate{Value: 0.2}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Errorf("channel should be empty, has %d", len(ch))
	}
}
