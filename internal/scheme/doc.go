// Package scheme implements the two parallel prime-finding engines.
//
// RangePartition splits the search space [1, upperBound] into one contiguous
// chunk per worker. DivisorSplitting walks the candidates in ascending order
// and, for each one, splits the trial-division work across short-lived
// workers that stop cooperatively once any of them finds a divisor.
//
// Both engines report primes to an injected sink.Sink and share no state
// between runs.
package scheme
