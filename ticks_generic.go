//go:build !amd64 || noasm

package blendmark

import "time"

var tickEpoch = time.Now()

// Ticks falls back to the monotonic clock in nanoseconds where no cycle
// counter is wired up. Ratios between two measurements remain meaningful,
// absolute values are not CPU cycles.
func Ticks() uint64 {
	return uint64(time.Since(tickEpoch))
}
