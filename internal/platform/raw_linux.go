package platform

import (
	"fmt"

	"golang.org/x/sys/unix"

	"github.com/tetratelabs/instant/sys"
)

// MonotonicRaw reads CLOCK_MONOTONIC with clock_gettime, bypassing the Go
// runtime. Its epoch matches runtime.nanotime on Linux.
//
// A failed read panics: there is no way to continue without a clock.
func MonotonicRaw() int64 {
	var ts unix.Timespec
	if err := unix.ClockGettime(unix.CLOCK_MONOTONIC, &ts); err != nil {
		panic(fmt.Errorf("clock_gettime(CLOCK_MONOTONIC): %w", err))
	}
	return int64(ts.Sec)*1e9 + int64(ts.Nsec)
}

// NanotimeResolution returns the resolution of CLOCK_MONOTONIC as reported by
// clock_getres, or 1 if it could not be read.
func NanotimeResolution() sys.ClockResolution {
	var ts unix.Timespec
	if err := unix.ClockGetres(unix.CLOCK_MONOTONIC, &ts); err != nil {
		return 1
	}
	if res := ts.Nano(); res > 0 {
		return sys.ClockResolution(res)
	}
	return 1
}
