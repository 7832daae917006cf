package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCollector_ObserveRun(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.ObserveRun(RunSample{Scheme: "range", Duration: 5 * time.Millisecond, CandidatesExamined: 100, WorkersSpawned: 4})
	c.ObserveRun(RunSample{Scheme: "divisor", Duration: time.Millisecond, CandidatesExamined: 99, WorkersSpawned: 12, Status: StatusCanceled})

	if got := testutil.ToFloat64(c.candidatesExamined.WithLabelValues("range")); got != 100 {
		t.Errorf("candidates_examined_total{range} = %v, want 100", got)
	}
	if got := testutil.ToFloat64(c.workersSpawned.WithLabelValues("divisor")); got != 12 {
		t.Errorf("workers_spawned_total{divisor} = %v, want 12", got)
	}
	if got := testutil.ToFloat64(c.runs.WithLabelValues("range", StatusSuccess)); got != 1 {
		t.Errorf("runs_total{range,success} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(c.runs.WithLabelValues("divisor", StatusCanceled)); got != 1 {
		t.Errorf("runs_total{divisor,canceled} = %v, want 1", got)
	}
	if n := testutil.CollectAndCount(c.runDuration); n != 2 {
		t.Errorf("expected 2 duration series, got %d", n)
	}
}

func TestCollector_PrimeCounter(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	counter := c.PrimeCounter("range")
	for i := 0; i < 10; i++ {
		counter.Inc()
	}
	if got := testutil.ToFloat64(c.PrimeCounter("range")); got != 10 {
		t.Errorf("primes_found_total{range} = %v, want 10", got)
	}
}

func TestCollector_RunConfigExposition(t *testing.T) {
	t.Parallel()

	c := NewCollector()
	c.SetRunConfig(8, 100000)

	expected := `
# HELP primecalc_threads Configured worker count.
# TYPE primecalc_threads gauge
primecalc_threads 8
# HELP primecalc_upper_bound Upper bound of the current search space.
# TYPE primecalc_upper_bound gauge
primecalc_upper_bound 100000
`
	err := testutil.GatherAndCompare(c.Registry(), strings.NewReader(expected), "primecalc_threads", "primecalc_upper_bound")
	if err != nil {
		t.Error(err)
	}
}

func TestCollector_IndependentRegistries(t *testing.T) {
	t.Parallel()

	a, b := NewCollector(), NewCollector()
	a.PrimeCounter("range").Inc()
	if got := testutil.ToFloat64(b.PrimeCounter("range")); got != 0 {
		t.Errorf("collectors should not share state, got %v", got)
	}
}
