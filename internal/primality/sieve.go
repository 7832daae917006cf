package primality

// Sieve returns every prime in [2, limit] in ascending order using the sieve
// of Eratosthenes. It is the reference the engines are verified against.
func Sieve(limit int64) []int64 {
	if limit < 2 {
		return []int64{}
	}
	composite := make([]bool, limit+1)
	for i := int64(2); i*i <= limit; i++ {
		if composite[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			composite[j] = true
		}
	}

	// π(x) < 1.26·x/ln(x); a rough preallocation is enough here.
	primes := make([]int64, 0, estimateCount(limit))
	for i := int64(2); i <= limit; i++ {
		if !composite[i] {
			primes = append(primes, i)
		}
	}
	return primes
}

// SequentialPrimes returns the primes in [1, limit] by calling IsPrime on each
// candidate in order. It is the single-threaded baseline of both engines.
func SequentialPrimes(limit int64) []int64 {
	primes := []int64{}
	for n := int64(1); n <= limit; n++ {
		if IsPrime(n) {
			primes = append(primes, n)
		}
	}
	return primes
}

func estimateCount(limit int64) int {
	if limit < 17 {
		return 8
	}
	bits := 0
	for v := limit; v > 0; v >>= 1 {
		bits++
	}
	// ln(x) ≈ 0.693·bits
	return int(float64(limit) * 1.26 / (0.693 * float64(bits)))
}

// SegmentSize is the number of integers SieveFunc marks at a time.
const SegmentSize int64 = 1 << 18

// SieveFunc calls fn for every prime in [2, limit] in ascending order and
// stops early when fn returns false. It sieves one segment at a time, so
// memory stays proportional to ISqrt(limit) plus SegmentSize.
func SieveFunc(limit int64, fn func(p int64) bool) {
	if limit < 2 {
		return
	}
	base := Sieve(ISqrt(limit))
	composite := make([]bool, min(SegmentSize, limit-1))

	for low := int64(2); ; low += SegmentSize {
		high := limit
		if limit-low >= SegmentSize {
			high = low + SegmentSize - 1
		}
		seg := composite[:high-low+1]
		clear(seg)
		for _, p := range base {
			if p > high/p {
				break
			}
			start := max(p*p, low/p*p)
			if start < low {
				start += p
			}
			if start > high {
				continue
			}
			for j := start; ; j += p {
				seg[j-low] = true
				if high-j < p {
					break
				}
			}
		}
		for k, c := range seg {
			if !c && !fn(low+int64(k)) {
				return
			}
		}
		if high == limit {
			return
		}
	}
}
