package partition

// WorkChunk is the contiguous slice of candidates scanned by one worker.
// A chunk with Start > End is empty.
type WorkChunk struct {
	Owner int
	Start int64
	End   int64
}

// Len returns the number of candidates in the chunk.
func (c WorkChunk) Len() int64 {
	if c.Start > c.End {
		return 0
	}
	return c.End - c.Start + 1
}

// Empty reports whether the chunk holds no candidates.
func (c WorkChunk) Empty() bool { return c.Start > c.End }

// RangeChunks splits [1, upperBound] into exactly workers chunks.
//
// Worker i < workers-1 receives [1+i*size, (i+1)*size] with
// size = upperBound/workers; the last worker receives everything from its
// start up to upperBound. When workers > upperBound, size is 0 and every chunk
// but the last is inverted (empty). workers < 1 yields no chunks.
func RangeChunks(upperBound int64, workers int) []WorkChunk {
	if workers < 1 {
		return nil
	}
	size := upperBound / int64(workers)
	chunks := make([]WorkChunk, workers)
	start := int64(1)
	for i := 0; i < workers; i++ {
		end := start + size - 1
		if i == workers-1 {
			end = upperBound
		}
		chunks[i] = WorkChunk{Owner: i, Start: start, End: end}
		start = end + 1
	}
	return chunks
}
