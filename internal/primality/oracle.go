package primality

import "math"

// ISqrt returns floor(sqrt(n)) for n >= 0 and 0 for negative n.
//
// The float64 estimate can be off by one for large n (float64 carries 53 bits
// of mantissa), so the result is corrected until r*r <= n < (r+1)*(r+1).
// Without the correction the last divisor of a large perfect square could be
// skipped.
func ISqrt(n int64) int64 {
	if n < 2 {
		if n < 0 {
			return 0
		}
		return n
	}
	r := int64(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	return r
}

// IsPrime reports whether n is prime by trial division with odd divisors up
// to ISqrt(n). It has no side effects and is safe for concurrent use.
func IsPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n == 2 {
		return true
	}
	if n%2 == 0 {
		return false
	}
	limit := ISqrt(n)
	for d := int64(3); d <= limit; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

// OddDivisorCount returns the length of the odd divisor sequence
// [3, 5, ..., ISqrt(n)] tested for n. It is 0 when ISqrt(n) < 3.
func OddDivisorCount(n int64) int64 {
	limit := ISqrt(n)
	if limit < 3 {
		return 0
	}
	return (limit-3)/2 + 1
}

// OddDivisorAt returns the i-th (0-based) element of the odd divisor sequence.
func OddDivisorAt(i int64) int64 {
	return 3 + 2*i
}
