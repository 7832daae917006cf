package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/primecalc/internal/format"
)

// MetricsModel displays runtime memory statistics and discovery counters.
type MetricsModel struct {
	mem        MemStatsMsg
	rss        uint64
	threads    int32
	found      int64
	largest    int64
	rate       float64 // discoveries per second
	lastTotal  int64
	lastSample time.Time
	width      int
	height     int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{lastSample: time.Now()}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg
}

// UpdateProcess updates the process-level counters.
func (m *MetricsModel) UpdateProcess(rss uint64, threads int32) {
	m.rss = rss
	m.threads = threads
}

// UpdateDiscoveries records the discovery counters sampled at now and
// returns the smoothed discovery rate.
func (m *MetricsModel) UpdateDiscoveries(total, largest int64, now time.Time) float64 {
	if dt := now.Sub(m.lastSample).Seconds(); dt > 0.05 {
		instant := float64(total-m.lastTotal) / dt
		if m.rate > 0 {
			m.rate = 0.7*m.rate + 0.3*instant
		} else {
			m.rate = instant
		}
		m.lastTotal = total
		m.lastSample = now
	}
	m.found = total
	m.largest = largest
	return m.rate
}

// SetResult replaces the counters with those of a finished run.
func (m *MetricsModel) SetResult(count int, largest int64) {
	m.found = int64(count)
	m.largest = largest
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-6)/2, 0)
	rows := [][2]string{
		{
			formatMetricCol("Primes:", format.FormatInt(m.found), colWidth),
			formatMetricCol("Largest:", format.FormatInt(m.largest), colWidth),
		},
		{
			formatMetricCol("Rate:", fmt.Sprintf("%.0f/s", m.rate), colWidth),
			formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.mem.NumGoroutine), colWidth),
		},
		{
			formatMetricCol("Heap:", format.FormatBytes(m.mem.HeapAlloc), colWidth),
			formatMetricCol("GC:", fmt.Sprintf("%d", m.mem.NumGC), colWidth),
		},
		{
			formatMetricCol("RSS:", format.FormatBytes(m.rss), colWidth),
			formatMetricCol("OS threads:", fmt.Sprintf("%d", m.threads), colWidth),
		},
	}

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Metrics"))
	for _, r := range rows {
		b.WriteString("\n")
		b.WriteString(r[0])
		b.WriteString(r[1])
	}
	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(b.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
