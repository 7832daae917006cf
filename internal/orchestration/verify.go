package orchestration

import (
	"errors"
	"fmt"

	"github.com/agbru/primecalc/internal/primality"
)

// ErrVerificationFailed is returned by VerifyPrimes when a result differs
// from the sieve.
var ErrVerificationFailed = errors.New("verification against the sieve failed")

// VerifyPrimes compares primes with a segmented sequential sieve up to
// upperBound. The returned error wraps ErrVerificationFailed and names the
// first difference.
func VerifyPrimes(primes []int64, upperBound int64) error {
	var (
		matched  int
		expected int
		mismatch error
	)
	primality.SieveFunc(upperBound, func(p int64) bool {
		expected++
		if mismatch != nil || matched >= len(primes) {
			return true
		}
		if primes[matched] != p {
			mismatch = fmt.Errorf("%w: position %d is %d, expected %d", ErrVerificationFailed, matched, primes[matched], p)
			return false
		}
		matched++
		return true
	})
	if mismatch != nil {
		return mismatch
	}
	if len(primes) != expected {
		return fmt.Errorf("%w: found %d primes, expected %d", ErrVerificationFailed, len(primes), expected)
	}
	return nil
}
