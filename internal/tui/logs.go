package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/primecalc/internal/config"
	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/sink"
)

const (
	// maxLogLines bounds the log history.
	maxLogLines = 500
	// progressMilestone is the progress step between two progress entries.
	progressMilestone = 0.10
	// previewPrimes is the number of primes shown from a deferred result.
	previewPrimes = 20
)

// LogsModel is the scrollable run log: configuration, progress milestones,
// discoveries and results.
type LogsModel struct {
	viewport   viewport.Model
	lines      []string
	runNames   []string
	milestones []float64
	now        func() time.Time
}

// NewLogsModel creates a log panel for the given runs.
func NewLogsModel(runNames []string) LogsModel {
	return LogsModel{
		viewport:   viewport.New(0, 0),
		runNames:   runNames,
		milestones: make([]float64, len(runNames)),
		now:        time.Now,
	}
}

// SetSize updates the panel dimensions, borders included.
func (l *LogsModel) SetSize(w, h int) {
	l.viewport.Width = max(w-2, 0)
	l.viewport.Height = max(h-3, 0)
	l.refresh(true)
}

// Lines returns the raw log lines.
func (l LogsModel) Lines() []string { return l.lines }

func (l *LogsModel) add(line string) {
	follow := l.viewport.AtBottom()
	l.lines = append(l.lines, logTimeStyle.Render(l.now().Format("15:04:05"))+" "+line)
	if over := len(l.lines) - maxLogLines; over > 0 {
		l.lines = l.lines[over:]
	}
	l.refresh(follow)
}

func (l *LogsModel) refresh(follow bool) {
	l.viewport.SetContent(strings.Join(l.lines, "\n"))
	if follow {
		l.viewport.GotoBottom()
	}
}

func (l LogsModel) runName(i int) string {
	if i >= 0 && i < len(l.runNames) {
		return l.runNames[i]
	}
	return fmt.Sprintf("run %d", i)
}

// AddExecutionConfig logs the run parameters.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.add(logInfoStyle.Render(fmt.Sprintf("Config: threads=%d, maxNumber=%s, delivery=%s, timeout=%s",
		cfg.Threads, format.FormatInt(cfg.MaxNumber), cfg.Delivery, cfg.Timeout)))
	l.add(logInfoStyle.Render("Schemes: " + strings.Join(l.runNames, ", ")))
}

// AddProgressEntry logs a run each time it crosses a 10% milestone.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	if msg.RunIndex < 0 || msg.RunIndex >= len(l.milestones) {
		return
	}
	if msg.Value < l.milestones[msg.RunIndex]+progressMilestone && msg.Value < 1 {
		return
	}
	if msg.Value >= 1 && l.milestones[msg.RunIndex] >= 1 {
		return
	}
	l.milestones[msg.RunIndex] = msg.Value
	l.add(fmt.Sprintf("%s %s", logWorkerStyle.Render(l.runName(msg.RunIndex)),
		format.FormatProgressBarWithETA(msg.Value, msg.ETA, 20)))
}

// AddDiscoveries logs immediate-mode discoveries.
func (l *LogsModel) AddDiscoveries(records []sink.PrimeRecord) {
	for _, r := range records {
		l.add(fmt.Sprintf("%s found %s", logWorkerStyle.Render("["+r.Worker+"]"), logPrimeStyle.Render(format.FormatInt(r.Value))))
	}
}

// AddResults logs one summary line per run.
func (l *LogsModel) AddResults(results []orchestration.RunResult) {
	for _, r := range results {
		if r.Err != nil {
			l.add(logErrorStyle.Render(fmt.Sprintf("%s failed after %s: %v", r.Name, format.FormatExecutionDuration(r.Duration), r.Err)))
			continue
		}
		l.add(logSuccessStyle.Render(fmt.Sprintf("%s: %s primes in %s", r.Name, format.FormatInt(int64(r.Count())), format.FormatExecutionDuration(r.Duration))))
	}
}

// AddFinalResult logs the presented result with a preview of its largest
// primes.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	r := msg.Result
	l.add(logSuccessStyle.Render(fmt.Sprintf("%s primes up to %s found by %s",
		format.FormatInt(int64(r.Count())), format.FormatInt(msg.Opts.UpperBound), r.Description)))
	if n := len(r.Primes); n > 0 {
		tail := r.Primes[max(n-previewPrimes, 0):]
		parts := make([]string, len(tail))
		for i, p := range tail {
			parts[i] = format.FormatInt(p)
		}
		prefix := ""
		if n > previewPrimes {
			prefix = "… "
		}
		l.add(logPrimeStyle.Render(prefix + strings.Join(parts, " ")))
	}
}

// AddError logs a failed run.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logErrorStyle.Render(fmt.Sprintf("Error after %s: %v", format.FormatExecutionDuration(msg.Duration), msg.Err)))
}

// Reset clears the log for a restarted run.
func (l *LogsModel) Reset() {
	l.lines = nil
	clear(l.milestones)
	l.refresh(true)
}

// Update forwards scroll keys to the viewport.
func (l *LogsModel) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.viewport, cmd = l.viewport.Update(msg)
	return cmd
}

// View renders the panel.
func (l LogsModel) View() string {
	body := panelTitleStyle.Render("Run log") + "\n" + l.viewport.View()
	return panelStyle.Width(l.viewport.Width).Render(body)
}
