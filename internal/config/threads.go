package config

import "runtime"

// EstimateOptimalThreadCount provides a heuristic worker count without
// running benchmarks: one worker per logical CPU, at least 2 and at most 64.
func EstimateOptimalThreadCount() int {
	numCPU := runtime.NumCPU()
	switch {
	case numCPU <= 1:
		return 2
	case numCPU > 64:
		return 64
	default:
		return numCPU
	}
}
