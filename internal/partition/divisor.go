package partition

import "github.com/agbru/primecalc/internal/primality"

// DivisorChunk is an inclusive range of odd divisors [Start, End] tested by
// one worker for a single candidate.
type DivisorChunk struct {
	Start int64
	End   int64
}

// DivisorChunks splits the odd divisor sequence [3, 5, ..., ISqrt(n)] of n
// into at most workers contiguous chunks.
//
// With total divisors and size = total/workers, chunk i covers indices
// [i*size, (i+1)*size-1] and the last chunk runs to the end of the sequence.
// If size is 0 (more workers than divisors) the whole sequence collapses into
// a single chunk. An empty sequence yields no chunks.
func DivisorChunks(n int64, workers int) []DivisorChunk {
	total := primality.OddDivisorCount(n)
	if total == 0 || workers < 1 {
		return nil
	}
	count := int64(workers)
	size := total / count
	if size == 0 {
		size = total
		count = 1
	}

	chunks := make([]DivisorChunk, 0, count)
	startIdx := int64(0)
	for i := int64(0); i < count; i++ {
		endIdx := startIdx + size - 1
		if i == count-1 {
			endIdx = total - 1
		}
		chunks = append(chunks, DivisorChunk{
			Start: primality.OddDivisorAt(startIdx),
			End:   primality.OddDivisorAt(endIdx),
		})
		startIdx = endIdx + 1
	}
	return chunks
}
