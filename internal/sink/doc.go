// Package sink provides the synchronized destinations that prime-finding
// engines report discoveries to: an immediate sink that prints each prime as
// it is found, a deferred sink that buffers and sorts at the end of a run,
// and small helpers for collecting and counting reports.
package sink
