// Command instantffi exports the monotonic clock to C callers, such as a
// benchmark harness written in another language. Build it as a shared
// library, which also writes libinstant.h:
//
//	go build -buildmode=c-shared -o libinstant.so ./cmd/instantffi
//
// The exported symbols are:
//
//	int64_t instant_now_ffi(void);
//	double  instant_elapsed_ms_ffi(int64_t start);
package main

/*
#include <stdint.h>
*/
import "C"

import "github.com/tetratelabs/instant"

// instant_now_ffi returns instant.Now as nanoseconds.
//
//export instant_now_ffi
func instant_now_ffi() C.int64_t {
	return C.int64_t(instant.Now())
}

// instant_elapsed_ms_ffi returns instant.ElapsedMs of a value previously
// returned by instant_now_ffi in the same process.
//
//export instant_elapsed_ms_ffi
func instant_elapsed_ms_ffi(start C.int64_t) C.double {
	return C.double(instant.ElapsedMs(instant.Instant(start)))
}

// main is required by -buildmode=c-shared, but never runs.
func main() {}
