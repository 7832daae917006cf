package sink

// Counter is the subset of a metrics counter used by Counting.
// prometheus.Counter satisfies it.
type Counter interface {
	Inc()
}

type counting struct {
	next    Sink
	counter Counter
}

// Counting wraps next so that every report also increments counter.
// A nil counter returns next unchanged.
func Counting(next Sink, counter Counter) Sink {
	if counter == nil {
		return next
	}
	return &counting{next: next, counter: counter}
}

func (c *counting) Report(value int64, worker string) {
	c.counter.Inc()
	c.next.Report(value, worker)
}

// Discard is a Sink that drops every report.
var Discard Sink = discard{}

type discard struct{}

func (discard) Report(int64, string) {}
