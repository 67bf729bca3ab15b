// Package sys includes constants and types used by both public and internal APIs.
package sys

// ClockResolution is a positive granularity of clock precision in
// nanoseconds. For example, if the resolution is 1us, this returns 1000.
//
// Note: Some implementations return arbitrary resolution because there's
// no perfect alternative. For example, windows reports the frequency of
// QueryPerformanceCounter, which is rarely finer than 100ns.
type ClockResolution uint32

// Nanotime returns nanoseconds since an arbitrary start point, used to
// measure elapsed time. This is sometimes referred to as a tick or monotonic
// time.
//
// Note: There are no constraints on the value return except that it
// increments. For example, -1 is a valid if the next value is >= 0.
type Nanotime func() int64
