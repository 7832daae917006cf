//go:build !unix

package metrics

import "time"

// ProcessCPUTime is not available on this platform.
func ProcessCPUTime() (user, system time.Duration, ok bool) {
	return 0, 0, false
}
