package calibration

import "runtime"

// maxCandidateThreads caps the thread counts tried during calibration.
const maxCandidateThreads = 64

// GenerateThreadCandidates returns the thread counts to benchmark, based on
// the number of available CPU cores: powers of two up to twice the core
// count, plus the core count itself. 1 and 2 are always included.
func GenerateThreadCandidates() []int {
	return threadCandidatesFor(runtime.NumCPU())
}

func threadCandidatesFor(numCPU int) []int {
	limit := min(max(2*numCPU, 2), maxCandidateThreads)
	var candidates []int
	for n := 1; n <= limit; n *= 2 {
		candidates = append(candidates, n)
	}
	if numCPU > 1 && numCPU <= limit && !isPowerOfTwo(numCPU) {
		candidates = append(candidates, numCPU)
	}
	return sortedInts(candidates)
}

func isPowerOfTwo(n int) bool { return n > 0 && n&(n-1) == 0 }
