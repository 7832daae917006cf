package progress

import "sync/atomic"

// ProgressUpdate is a progress notification for one run.
type ProgressUpdate struct {
	// RunIndex identifies the run (engine) that sent the update.
	RunIndex int
	// Value is the completed fraction, from 0.0 to 1.0.
	Value float64
}

// ProgressCallback receives the completed fraction of a run.
type ProgressCallback func(fraction float64)

// ReportSteps is the number of progress notifications a Tracker emits over
// a complete run.
const ReportSteps = 100

// Tracker counts examined candidates and notifies its callback each time the
// completed fraction crosses one of ReportSteps equal steps. It is safe for
// concurrent use.
type Tracker struct {
	total  int64
	step   int64
	done   atomic.Int64
	report ProgressCallback
}

// NewTracker returns a tracker for a run over total candidates. report may
// be nil.
func NewTracker(total int64, report ProgressCallback) *Tracker {
	if total < 0 {
		total = 0
	}
	step := total / ReportSteps
	if step < 1 {
		step = 1
	}
	return &Tracker{total: total, step: step, report: report}
}

// Advance records n more examined candidates.
func (t *Tracker) Advance(n int64) {
	if n <= 0 {
		return
	}
	done := t.done.Add(n)
	if t.report == nil {
		return
	}
	if done >= t.total || done/t.step != (done-n)/t.step {
		t.report(t.fraction(done))
	}
}

// Examined returns the number of candidates recorded so far.
func (t *Tracker) Examined() int64 { return t.done.Load() }

// Fraction returns the completed fraction, clamped to [0, 1].
func (t *Tracker) Fraction() float64 { return t.fraction(t.done.Load()) }

func (t *Tracker) fraction(done int64) float64 {
	if t.total == 0 || done >= t.total {
		return 1
	}
	return float64(done) / float64(t.total)
}
