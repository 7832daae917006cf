package tui

import (
	"fmt"
	"strings"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/ui"
)

// historySize is the number of samples kept per sparkline.
const historySize = 120

// ChartModel shows overall progress and the load history: system CPU,
// system memory and the discovery rate.
type ChartModel struct {
	bar      bprogress.Model
	progress float64
	eta      time.Duration
	cpu      *History
	mem      *History
	rate     *History
	done     bool
	elapsed  time.Duration
	width    int
	height   int
}

// NewChartModel creates a new chart panel.
func NewChartModel() ChartModel {
	return ChartModel{
		bar:  newProgressBar(),
		cpu:  NewHistory(historySize),
		mem:  NewHistory(historySize),
		rate: NewHistory(historySize),
	}
}

func newProgressBar() bprogress.Model {
	if ui.GetCurrentTheme().Name == ui.NoColorTheme.Name {
		return bprogress.New(bprogress.WithoutPercentage(), bprogress.WithSolidFill("7"))
	}
	return bprogress.New(bprogress.WithoutPercentage(), bprogress.WithDefaultGradient())
}

// SetSize updates dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.bar.Width = max(w-24, 10)
}

// AddDataPoint records the aggregated progress and ETA.
func (c *ChartModel) AddDataPoint(avg float64, eta time.Duration) {
	c.progress = avg
	c.eta = eta
}

// UpdateSysStats records a system load sample.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpu.Push(cpuPercent)
	c.mem.Push(memPercent)
}

// AddRate records a discovery rate sample.
func (c *ChartModel) AddRate(r float64) {
	c.rate.Push(r)
}

// SetDone marks the run finished after elapsed.
func (c *ChartModel) SetDone(elapsed time.Duration) {
	c.done = true
	c.elapsed = elapsed
	c.progress = 1
}

// Reset clears progress and history.
func (c *ChartModel) Reset() {
	c.progress, c.eta = 0, 0
	c.done, c.elapsed = false, 0
	c.cpu.Reset()
	c.mem.Reset()
	c.rate.Reset()
}

// View renders the chart panel.
func (c ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Progress"))
	b.WriteString("\n ")
	b.WriteString(c.bar.ViewAs(c.progress))
	if c.done {
		b.WriteString(fmt.Sprintf(" 100.0%% in %s", format.FormatExecutionDuration(c.elapsed)))
	} else {
		b.WriteString(fmt.Sprintf(" %5.1f%% ETA %s", c.progress*100, format.FormatETA(c.eta)))
	}

	sparkWidth := max(c.width-22, 1)
	b.WriteString("\n\n")
	b.WriteString(sparkRow("CPU", cpuSparklineStyle.Render(RenderSparkline(c.cpu.Values(), 100, sparkWidth)), fmt.Sprintf("%5.1f%%", c.cpu.Last())))
	b.WriteString("\n")
	b.WriteString(sparkRow("MEM", memSparklineStyle.Render(RenderSparkline(c.mem.Values(), 100, sparkWidth)), fmt.Sprintf("%5.1f%%", c.mem.Last())))
	b.WriteString("\n")
	b.WriteString(sparkRow("Primes/s", rateSparklineStyle.Render(RenderSparkline(c.rate.Values(), c.rate.Max(), sparkWidth)), format.FormatInt(int64(c.rate.Last()))))

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}

func sparkRow(label, spark, value string) string {
	return fmt.Sprintf(" %s %s %s", metricLabelStyle.Render(fmt.Sprintf("%-9s", label)), spark, metricValueStyle.Render(value))
}
