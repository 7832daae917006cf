package scheme

import (
	"context"
	"sync"

	"github.com/agbru/primecalc/internal/partition"
	"github.com/agbru/primecalc/internal/progress"
	"github.com/agbru/primecalc/internal/sink"
)

// DivisorLabel is the worker label of every prime reported by
// DivisorSplitting.
const DivisorLabel = "B-scheme"

// DivisorSplitting is the per-candidate divisor-splitting engine (Scheme B).
type DivisorSplitting struct{}

// Name implements Engine.
func (DivisorSplitting) Name() string { return "divisor" }

// Description implements Engine.
func (DivisorSplitting) Description() string { return "Divisor Splitting (Scheme B)" }

// Run tests the candidates 2..UpperBound in ascending order. All workers of
// a candidate are joined before the next candidate starts, so primes reach
// the sink in ascending order.
func (DivisorSplitting) Run(ctx context.Context, opts Options, s sink.Sink, report progress.ProgressCallback) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	tracker := progress.NewTracker(max(opts.UpperBound-1, 0), report)
	done := ctx.Done()

	for n := int64(2); n <= opts.UpperBound; n++ {
		select {
		case <-done:
			return ctx.Err()
		default:
		}
		prime, spawned := SplitTest(n, opts.Threads)
		opts.Stats.addWorkers(int64(spawned))
		if prime {
			s.Report(n, DivisorLabel)
		}
		tracker.Advance(1)
		opts.Stats.addExamined(1)
	}
	return nil
}

// SplitTest decides whether n is prime by splitting its odd divisors
// [3, ISqrt(n)] across at most threads workers. Every worker checks the
// shared CompositeFlag before each divisor and returns once it is set; the
// worker that finds a divisor sets it. It returns the verdict and the number
// of workers started.
func SplitTest(n int64, threads int) (prime bool, spawned int) {
	switch {
	case n < 2:
		return false, 0
	case n == 2:
		return true, 0
	case n%2 == 0:
		return false, 0
	}

	chunks := partition.DivisorChunks(n, threads)
	if len(chunks) == 0 {
		return true, 0
	}

	var flag CompositeFlag
	var wg sync.WaitGroup
	for _, chunk := range chunks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for d := chunk.Start; d <= chunk.End; d += 2 {
				if flag.IsSet() {
					return
				}
				if n%d == 0 {
					flag.Set()
					return
				}
			}
		}()
	}
	wg.Wait()
	return !flag.IsSet(), len(chunks)
}
