package format

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// maxETA caps the displayed estimate; anything beyond is noise.
const maxETA = 24 * time.Hour

// ProgressState tracks the completed fraction of several concurrent runs.
type ProgressState struct {
	progresses []float64
	numRuns    int
}

// NewProgressState returns a state tracking numRuns runs, all at 0.
func NewProgressState(numRuns int) *ProgressState {
	if numRuns < 0 {
		numRuns = 0
	}
	return &ProgressState{progresses: make([]float64, numRuns), numRuns: numRuns}
}

// Update sets the progress of run index, clamped to [0, 1]. Out-of-range
// indexes are ignored.
func (p *ProgressState) Update(index int, value float64) {
	if index < 0 || index >= p.numRuns {
		return
	}
	p.progresses[index] = clamp01(value)
}

// CalculateAverage returns the mean progress across runs.
func (p *ProgressState) CalculateAverage() float64 {
	if p.numRuns == 0 {
		return 0
	}
	var total float64
	for _, v := range p.progresses {
		total += v
	}
	return total / float64(p.numRuns)
}

// ProgressWithETA extends ProgressState with an exponentially smoothed
// progress rate used to estimate the remaining time.
type ProgressWithETA struct {
	*ProgressState
	mu           sync.Mutex
	startTime    time.Time
	lastUpdate   time.Time
	lastProgress float64
	progressRate float64 // fraction per second
}

// NewProgressWithETA returns a tracker for numRuns runs starting now.
func NewProgressWithETA(numRuns int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numRuns),
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a progress value and returns the new average and
// the estimated time remaining.
func (p *ProgressWithETA) UpdateWithETA(index int, value float64) (float64, time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.Update(index, value)
	avg := p.CalculateAverage()

	now := time.Now()
	if elapsed := now.Sub(p.lastUpdate).Seconds(); elapsed > 0 && avg > p.lastProgress {
		rate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = rate
		} else {
			p.progressRate = 0.3*rate + 0.7*p.progressRate
		}
		p.lastUpdate = now
		p.lastProgress = avg
	}
	return avg, p.etaLocked(avg)
}

// GetETA returns the current estimate without recording an update.
func (p *ProgressWithETA) GetETA() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.etaLocked(p.CalculateAverage())
}

func (p *ProgressWithETA) etaLocked(avg float64) time.Duration {
	if p.progressRate <= 0 || avg >= 1 {
		return 0
	}
	seconds := (1 - avg) / p.progressRate
	if seconds >= maxETA.Seconds() {
		return maxETA
	}
	return time.Duration(seconds * float64(time.Second))
}

// FormatETA renders an estimate as "45s", "2m30s" or "1h15m".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}
	eta = eta.Round(time.Second)
	h := int(eta / time.Hour)
	m := int((eta % time.Hour) / time.Minute)
	s := int((eta % time.Minute) / time.Second)
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ProgressBar renders a bar of length cells for a fraction in [0, 1].
func ProgressBar(progress float64, length int) string {
	if length <= 0 {
		return ""
	}
	filled := int(clamp01(progress) * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA renders "[bar]  42.0% ETA: 1m3s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), clamp01(progress)*100, FormatETA(eta))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
