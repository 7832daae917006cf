// Package primality implements the sequential primality oracle shared by both
// parallel engines, plus the exact integer square root it depends on and a
// sieve of Eratosthenes used as a reference when verifying runs.
package primality
