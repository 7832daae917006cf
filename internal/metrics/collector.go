package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Namespace prefixes every metric exported by primecalc.
const Namespace = "primecalc"

// Run status label values.
const (
	StatusSuccess  = "success"
	StatusError    = "error"
	StatusCanceled = "canceled"
)

// RunSample is what a finished run contributes to the collector.
type RunSample struct {
	Scheme             string
	Duration           time.Duration
	CandidatesExamined int64
	WorkersSpawned     int64
	Status             string
}

// Collector owns a private Prometheus registry holding the run metrics, the
// Go runtime collector and the process collector. A private registry keeps
// tests and repeated runs independent of the global default registry.
type Collector struct {
	registry *prometheus.Registry

	primesFound        *prometheus.CounterVec
	candidatesExamined *prometheus.CounterVec
	workersSpawned     *prometheus.CounterVec
	runs               *prometheus.CounterVec
	runDuration        *prometheus.HistogramVec
	upperBound         prometheus.Gauge
	threads            prometheus.Gauge
}

// NewCollector creates a collector with all metrics registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		primesFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "primes_found_total",
			Help:      "Number of primes reported to a sink.",
		}, []string{"scheme"}),
		candidatesExamined: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "candidates_examined_total",
			Help:      "Number of candidates whose primality was decided.",
		}, []string{"scheme"}),
		workersSpawned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workers_spawned_total",
			Help:      "Number of worker goroutines started by an engine.",
		}, []string{"scheme"}),
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "runs_total",
			Help:      "Number of engine runs by outcome.",
		}, []string{"scheme", "status"}),
		runDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of engine runs.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}, []string{"scheme"}),
		upperBound: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "upper_bound",
			Help:      "Upper bound of the current search space.",
		}),
		threads: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "threads",
			Help:      "Configured worker count.",
		}),
	}
	c.registry.MustRegister(
		c.primesFound,
		c.candidatesExamined,
		c.workersSpawned,
		c.runs,
		c.runDuration,
		c.upperBound,
		c.threads,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Registry returns the registry backing the collector, for exposition.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// SetRunConfig records the configured bound and worker count.
func (c *Collector) SetRunConfig(threads int, upperBound int64) {
	c.threads.Set(float64(threads))
	c.upperBound.Set(float64(upperBound))
}

// PrimeCounter returns the primes-found counter for scheme. It is meant to be
// passed to sink.Counting.
func (c *Collector) PrimeCounter(scheme string) prometheus.Counter {
	return c.primesFound.WithLabelValues(scheme)
}

// ObserveRun records a finished run.
func (c *Collector) ObserveRun(s RunSample) {
	status := s.Status
	if status == "" {
		status = StatusSuccess
	}
	c.runs.WithLabelValues(s.Scheme, status).Inc()
	c.runDuration.WithLabelValues(s.Scheme).Observe(s.Duration.Seconds())
	c.candidatesExamined.WithLabelValues(s.Scheme).Add(float64(s.CandidatesExamined))
	c.workersSpawned.WithLabelValues(s.Scheme).Add(float64(s.WorkersSpawned))
}
