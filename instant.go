// Package instant reads the host's monotonic clock as a count of nanoseconds,
// for benchmarks that need a cheap timestamp unrelated to wall time.
//
// An Instant is only meaningful relative to another Instant read in the same
// process. Here's an example:
//
//	start := instant.Now()
//	work()
//	fmt.Printf("took %.3fms\n", instant.ElapsedMs(start))
package instant

import (
	"time"

	"github.com/tetratelabs/instant/internal/platform"
)

// nanosPerMilli is a float64, so the only rounding in a conversion is the
// final division.
const nanosPerMilli = float64(time.Millisecond)

// Instant is nanoseconds since an unspecified, process-local epoch. Its
// absolute value carries no meaning: only differences between two Instant
// values from the same process do.
//
// Instant is an int64, so it crosses a C ABI as an int64_t unchanged.
type Instant int64

// Now reads the platform monotonic clock. Successive calls on the same
// goroutine never decrease.
//
// Note: No ordering is implied between goroutines unless the caller
// synchronizes them.
func Now() Instant {
	return Instant(platform.Nanotime())
}

// ElapsedMs reads the clock again and returns the milliseconds since start.
//
// The difference is taken in int64 nanoseconds, then divided once as a
// float64. start is not validated: one from the future, or not produced by
// Now, gives a negative or otherwise meaningless result.
func ElapsedMs(start Instant) float64 {
	return MillisecondsBetween(start, Now())
}

// Since returns the time.Duration elapsed since start.
func Since(start Instant) time.Duration {
	return Now().Sub(start)
}

// Sub returns the duration i-start.
func (i Instant) Sub(start Instant) time.Duration {
	return time.Duration(i - start)
}

// MillisecondsBetween converts end-start to milliseconds, as ElapsedMs does.
func MillisecondsBetween(start, end Instant) float64 {
	return float64(end-start) / nanosPerMilli
}
