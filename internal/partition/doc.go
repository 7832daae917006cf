// Package partition computes how work is split among workers.
//
// RangeChunks divides the search space [1, upperBound] for the range-partition
// engine; DivisorChunks divides the odd divisor sequence of a single candidate
// for the divisor-splitting engine. Both give the last chunk the remainder of
// the integer division.
package partition
