//go:build !linux && !windows

package platform

import "github.com/tetratelabs/instant/sys"

// MonotonicRaw returns Nanotime, as only Linux is guaranteed to share an
// epoch between clock_gettime(CLOCK_MONOTONIC) and runtime.nanotime.
func MonotonicRaw() int64 {
	return Nanotime()
}

// NanotimeResolution returns 1ns, the granularity of runtime.nanotime.
func NanotimeResolution() sys.ClockResolution {
	return 1
}
