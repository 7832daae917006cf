package tui

import (
	"time"

	"github.com/agbru/primecalc/internal/metrics"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/sysmon"
)

// ProgressMsg carries one aggregated progress update.
type ProgressMsg struct {
	RunIndex        int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that the progress channel was closed.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the summary of every run.
type ComparisonResultsMsg struct {
	Results []orchestration.RunResult
}

// FinalResultMsg carries the result presented to the user.
type FinalResultMsg struct {
	Result orchestration.RunResult
	Opts   orchestration.PresentationOptions
}

// ErrorMsg reports a failed run.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory snapshot.
type MemStatsMsg metrics.MemorySnapshot

// SysStatsMsg carries a system load sample.
type SysStatsMsg sysmon.Stats

// RunCompleteMsg is sent when the orchestration of a generation finished.
type RunCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg is sent when the context of a generation ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
