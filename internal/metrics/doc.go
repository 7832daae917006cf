// Package metrics collects run metrics for primecalc: Prometheus counters and
// histograms per scheme, Go runtime memory snapshots and process CPU time.
package metrics
