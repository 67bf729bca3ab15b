package platform

import (
	"sync/atomic"
	"time"

	"github.com/tetratelabs/instant/sys"
)

const ms = int64(time.Millisecond)

// NewFakeNanotime implements sys.Nanotime that increases by 1ms each reading.
func NewFakeNanotime() *sys.Nanotime {
	// Start at zero so a reading is never mistaken for a real one.
	var nt int64
	var nanotime sys.Nanotime = func() int64 {
		return atomic.AddInt64(&nt, ms) - ms
	}
	return &nanotime
}

// nanoBase uses time.Now to ensure a monotonic clock reading on all platforms
// via time.Since.
var nanoBase = time.Now()

// nanotimePortable implements sys.Nanotime with time.Since. Its epoch is the
// start of this process, unlike runtime.nanotime.
func nanotimePortable() int64 {
	return time.Since(nanoBase).Nanoseconds()
}

// Nanotime implements sys.Nanotime with runtime.nanotime() if CGO is available
// and time.Since if not. Windows reads QueryPerformanceCounter instead.
func Nanotime() int64 {
	return nanotime()
}

// Nanosleep implements sys.Nanosleep with time.Sleep.
func Nanosleep(ns int64) {
	time.Sleep(time.Duration(ns))
}
