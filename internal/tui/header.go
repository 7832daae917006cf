package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecalc/internal/format"
)

// HeaderModel renders the top bar: title, version, run parameters and
// elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	summary   string
	width     int
}

// NewHeaderModel creates a new header. summary describes the run, e.g.
// "range · deferred · 8 threads · ≤ 100,000".
func NewHeaderModel(version, summary string) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		version:   version,
		summary:   summary,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = time.Now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the run started, frozen once done.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "primecalc Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	pipe := separatorStyle.Render(" | ")

	row := titleStyle.Render(titleText) + pipe +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.Elapsed())))
	if h.summary != "" {
		row += pipe + separatorStyle.Render(h.summary)
	}
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += strings.Repeat(" ", gap)
	}
	return headerStyle.Width(h.width).Render(row)
}

// runSummary formats the run parameters for the header.
func runSummary(schemeName, delivery string, threads int, upperBound int64) string {
	return fmt.Sprintf("%s · %s · %d threads · ≤ %s", schemeName, delivery, threads, format.FormatInt(upperBound))
}
