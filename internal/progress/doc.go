// Package progress defines the progress updates exchanged between the
// prime-finding engines and the presentation layer, and a Tracker that
// converts examined-candidate counts into fractional progress.
package progress
