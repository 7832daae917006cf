package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders the key hints and the run status.
type FooterModel struct {
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a new footer.
func NewFooterModel() FooterModel { return FooterModel{} }

// SetPaused toggles the paused indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone toggles the done indicator.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError toggles the error indicator.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	default:
		return "RUNNING"
	}
}

// View renders the footer.
func (f FooterModel) View() string {
	keys := []string{
		footerKeyStyle.Render("q") + footerDescStyle.Render(" quit"),
		footerKeyStyle.Render("space") + footerDescStyle.Render(" pause"),
		footerKeyStyle.Render("r") + footerDescStyle.Render(" restart"),
		footerKeyStyle.Render("↑↓") + footerDescStyle.Render(" scroll"),
	}
	left := " " + strings.Join(keys, "  ")

	var status string
	switch f.Status() {
	case "ERROR":
		status = statusErrorStyle.Render("● ERROR")
	case "DONE":
		status = statusDoneStyle.Render("● DONE")
	case "PAUSED":
		status = statusPausedStyle.Render("● PAUSED")
	default:
		status = statusRunningStyle.Render("● RUNNING")
	}

	gap := max(f.width-lipgloss.Width(left)-lipgloss.Width(status)-1, 1)
	return left + strings.Repeat(" ", gap) + status
}
