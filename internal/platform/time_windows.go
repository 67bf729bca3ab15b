//go:build windows

package platform

import (
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/tetratelabs/instant/sys"
)

// On Windows, time.Time handled in time package cannot have the nanosecond precision.
// The reason is that by default, it doesn't use QueryPerformanceCounter[1], but instead, use "interrupt time"
// which doesn't support nanoseconds precision (though it is a monotonic) [2].
//
// [1] https://learn.microsoft.com/en-us/windows/win32/api/profileapi/nf-profileapi-queryperformancecounter
// [2] http://web.archive.org/web/20210411000829/https://wrkhpi.wordpress.com/2007/08/09/getting-os-information-the-kuser_shared_data-structure/
//
// Therefore, on Windows, we read QueryPerformanceCounter directly instead of
// neither time.Now nor runtime.nanotime.
var (
	kernel32       = windows.NewLazySystemDLL("kernel32.dll")
	procQPC        = kernel32.NewProc("QueryPerformanceCounter")
	procQPF        = kernel32.NewProc("QueryPerformanceFrequency")
	qpcFrequency   = queryPerformanceFrequency()
	qpcNanosPerSec = int64(time.Second)
)

func queryPerformanceFrequency() int64 {
	var freq int64
	if r, _, err := procQPF.Call(uintptr(unsafe.Pointer(&freq))); r == 0 {
		panic(err)
	}
	return freq
}

func nanotime() int64 {
	var counter int64
	if r, _, err := procQPC.Call(uintptr(unsafe.Pointer(&counter))); r == 0 {
		panic(err)
	}
	// Split whole seconds from the remainder so counter*1e9 can't overflow.
	sec, rem := counter/qpcFrequency, counter%qpcFrequency
	return sec*qpcNanosPerSec + rem*qpcNanosPerSec/qpcFrequency
}

// NanotimeResolution returns the period of QueryPerformanceCounter, rounded
// up to a whole nanosecond.
func NanotimeResolution() sys.ClockResolution {
	res := (qpcNanosPerSec + qpcFrequency - 1) / qpcFrequency
	return sys.ClockResolution(res)
}

// MonotonicRaw returns Nanotime, as QueryPerformanceCounter is already the
// platform clock.
func MonotonicRaw() int64 {
	return nanotime()
}
