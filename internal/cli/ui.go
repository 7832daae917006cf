//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/primecalc/internal/format"
	"github.com/agbru/primecalc/internal/orchestration"
	"github.com/agbru/primecalc/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts `spinner.Spinner` to the `Spinner` interface.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// progressLabel returns the text shown before the progress bar.
func progressLabel(numRuns int) string {
	if numRuns > 1 {
		return fmt.Sprintf(" Comparing %d schemes ", numRuns)
	}
	return " Searching primes "
}

// DisplayProgress renders a spinner and an aggregated progress bar with ETA
// until progressChan is closed. It calls wg.Done when it returns.
//
// Parameters:
//   - wg: The wait group to signal on completion.
//   - progressChan: The channel of progress updates from the runs.
//   - numRuns: The number of concurrent runs reporting on the channel.
//   - out: The writer the spinner draws on.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numRuns int, out io.Writer) {
	defer wg.Done()
	if numRuns <= 0 {
		orchestration.DrainChannel(progressChan)
		return
	}

	agg := orchestration.NewProgressAggregator(numRuns)
	label := progressLabel(agg.NumRuns())
	s := newSpinner(spinner.WithWriter(out))
	s.UpdateSuffix(label + format.FormatProgressBarWithETA(0, 0, ProgressBarWidth))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				avg := agg.CalculateAverage()
				fmt.Fprintf(out, "%s[%s] %5.1f%%\n", label, format.ProgressBar(avg, ProgressBarWidth), avg*100)
				return
			}
			agg.Update(update)
		case <-ticker.C:
			s.UpdateSuffix(label + format.FormatProgressBarWithETA(agg.CalculateAverage(), agg.GetETA(), ProgressBarWidth))
		}
	}
}
