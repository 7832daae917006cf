package scheme

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/primecalc/internal/partition"
	"github.com/agbru/primecalc/internal/primality"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/sink"
)

// progressBatch is the number of candidates a range worker scans between
// progress flushes.
const progressBatch = 1024

// RangePartition is the search-space partitioning engine (Scheme A).
type RangePartition struct{}

// Name implements Engine.
func (RangePartition) Name() string { return "range" }

// Description implements Engine.
func (RangePartition) Description() string { return "Range Partition (Scheme A)" }

// WorkerLabel returns the label reported by range worker i.
func WorkerLabel(i int) string { return fmt.Sprintf("Thread %d", i) }

// Run starts exactly opts.Threads workers, one per chunk of [1, UpperBound],
// and waits for all of them. Chunks may be empty when Threads exceeds the
// bound; their workers exit immediately.
func (RangePartition) Run(ctx context.Context, opts Options, s sink.Sink, report progress.ProgressCallback) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	tracker := progress.NewTracker(max(opts.UpperBound, 0), report)
	chunks := partition.RangeChunks(max(opts.UpperBound, 0), opts.Threads)
	opts.Stats.addWorkers(int64(len(chunks)))

	g, ctx := errgroup.WithContext(ctx)
	for _, chunk := range chunks {
		g.Go(func() error {
			return scanChunk(ctx, chunk, s, tracker, opts.Stats)
		})
	}
	return g.Wait()
}

func scanChunk(ctx context.Context, chunk partition.WorkChunk, s sink.Sink, tracker *progress.Tracker, stats *RunStats) error {
	label := WorkerLabel(chunk.Owner)
	done := ctx.Done()
	var pending int64
	flush := func() {
		tracker.Advance(pending)
		stats.addExamined(pending)
		pending = 0
	}
	defer flush()

	for n := chunk.Start; n <= chunk.End; n++ {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		if primality.IsPrime(n) {
			s.Report(n, label)
		}
		pending++
		if pending == progressBatch {
			flush()
		}
	}
	return nil
}
