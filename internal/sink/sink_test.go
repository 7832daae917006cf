package sink

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time { return time.Unix(1700000000, 0) }

func TestImmediate_ReportFormat(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewImmediate(&buf, WithClock(fixedClock))
	s.Report(7, "Thread 0")
	s.Report(11, "B-scheme")

	want := "[Thread 0] Found prime: 7 (time=1700000000)\n" +
		"[B-scheme] Found prime: 11 (time=1700000000)\n"
	require.Equal(t, want, buf.String())
	require.EqualValues(t, 2, s.Count())
}

func TestImmediate_Observers(t *testing.T) {
	t.Parallel()

	collected := NewCollecting()
	var calls int
	s := NewImmediate(nil,
		WithClock(fixedClock),
		WithObserver(collected.Observe),
		WithObserver(func(PrimeRecord) { calls++ }),
		WithObserver(nil),
	)
	s.Report(3, "Thread 1")

	recs := collected.Records()
	require.Len(t, recs, 1)
	require.Equal(t, PrimeRecord{Value: 3, Worker: "Thread 1", FoundAt: fixedClock()}, recs[0])
	require.Equal(t, 1, calls)
}

// TestImmediate_ConcurrentLinesNotTorn checks that concurrent reporters never
// interleave within a line.
func TestImmediate_ConcurrentLinesNotTorn(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	s := NewImmediate(&buf, WithClock(fixedClock))

	const workers, perWorker = 8, 200
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				s.Report(int64(w*perWorker+i), fmt.Sprintf("Thread %d", w))
			}
		}(w)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, workers*perWorker)
	for _, line := range lines {
		var w int
		var n, ts int64
		_, err := fmt.Sscanf(line, "[Thread %d] Found prime: %d (time=%d)", &w, &n, &ts)
		require.NoError(t, err, "malformed line %q", line)
		require.Equal(t, int64(w), n/perWorker)
	}
	require.EqualValues(t, workers*perWorker, s.Count())
}

func TestDeferred_DrainSortsOnce(t *testing.T) {
	t.Parallel()

	s := NewDeferred()
	for _, v := range []int64{13, 2, 7, 5, 3, 11} {
		s.Report(v, "Thread 0")
	}
	require.Equal(t, 6, s.Len())

	first := s.Drain()
	require.Equal(t, []int64{2, 3, 5, 7, 11, 13}, first)

	s.Report(17, "late")
	second := s.Drain()
	require.Equal(t, first, second)
	require.Len(t, second, 6)
}

func TestDeferred_EmptyDrain(t *testing.T) {
	t.Parallel()

	got := NewDeferred().Drain()
	require.NotNil(t, got)
	require.Empty(t, got)
}

func TestDeferred_ConcurrentReports(t *testing.T) {
	t.Parallel()

	s := NewDeferred()
	var wg sync.WaitGroup
	for w := 0; w < 16; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Report(int64(i*16+w), "w")
			}
		}(w)
	}
	wg.Wait()

	got := s.Drain()
	require.Len(t, got, 1600)
	for i, v := range got {
		require.EqualValues(t, i, v)
	}
}

func TestCollecting_Values(t *testing.T) {
	t.Parallel()

	s := NewCollecting()
	s.Report(5, "a")
	s.Report(2, "b")
	s.Report(3, "a")

	require.Equal(t, []int64{2, 3, 5}, s.Values())
	recs := s.Records()
	require.Len(t, recs, 3)
	require.Equal(t, int64(5), recs[0].Value)
	require.Equal(t, "b", recs[1].Worker)
	require.False(t, recs[2].FoundAt.IsZero())
}

type atomicCounter struct{ n atomic.Int64 }

func (c *atomicCounter) Inc() { c.n.Add(1) }

func TestCounting(t *testing.T) {
	t.Parallel()

	next := NewDeferred()
	c := &atomicCounter{}
	s := Counting(next, c)
	s.Report(2, "x")
	s.Report(3, "x")

	require.EqualValues(t, 2, c.n.Load())
	require.Equal(t, []int64{2, 3}, next.Drain())

	require.Same(t, Sink(next), Counting(next, nil))
}

func TestDiscard(t *testing.T) {
	t.Parallel()
	require.NotPanics(t, func() { Discard.Report(2, "x") })
}
