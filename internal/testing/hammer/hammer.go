// Package hammer runs a test body concurrently, to surface data races and
// ordering assumptions that a sequential test can't.
package hammer

import (
	"runtime"
	"sync"
	"testing"
)

// Hammer invokes a test concurrently in P goroutines N times per goroutine.
//
// Here's an example:
//
//	P := 4               // max count of goroutines
//	N := 10000           // work per goroutine
//	if testing.Short() { // Adjust down if `-test.short`
//		N = 1000
//	}
//
//	hammer.NewHammer(t, P, N).Run(func(p, n int) {
//		// Do test using p if something needs to be owned by one goroutine.
//	}, nil)
//
//	if t.Failed() {
//		return // At least one test failed, so return now.
//	}
type Hammer interface {
	// Run invokes a concurrency test.
	//
	//   - test is concurrently run in P goroutines, each looping N times.
	//     p is the index of the goroutine and n the iteration within it.
	//   - onRunning is any function to run after all goroutines are running,
	//     but before test executes.
	Run(test func(p, n int), onRunning func())
}

// NewHammer returns a Hammer initialized to indicated count of goroutines (P) and iterations per goroutine (N).
func NewHammer(t testing.TB, P, N int) Hammer {
	return &hammer{t: t, P: P, N: N}
}

// hammer implements Hammer
type hammer struct {
	// t is the calling test
	t testing.TB
	// P is the max count of goroutines
	P int
	// N is the work per goroutine
	N int
}

// Run implements Hammer.Run
func (h *hammer) Run(test func(p, n int), onRunning func()) {
	if procs := h.P / 2; procs > 0 {
		defer runtime.GOMAXPROCS(runtime.GOMAXPROCS(procs)) // Ensure goroutines have to switch cores.
	}

	var running, finished sync.WaitGroup
	start := make(chan struct{})

	running.Add(h.P)
	finished.Add(h.P)
	for p := 0; p < h.P; p++ {
		p := p // pin p, so it is stable inside the goroutine.

		go func() {
			defer finished.Done()
			defer func() { // Ensure each require.XX failure is visible on hammer test fail.
				if recovered := recover(); recovered != nil {
					h.t.Error(recovered)
				}
			}()
			running.Done()

			<-start // Wait to be released
			for n := 0; n < h.N; n++ {
				test(p, n)
			}
		}()
	}

	running.Wait()

	if onRunning != nil {
		onRunning()
	}

	close(start) // Release all goroutines at the same time.
	finished.Wait()
}
