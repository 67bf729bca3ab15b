// Package check exercises a live instant.Clock against the properties its
// callers rely on: monotonic reads, correct units and non-negative elapsed
// times. It backs the "check" command, so a harness author can verify a host
// before trusting its measurements.
package check

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tetratelabs/instant"
	"github.com/tetratelabs/instant/internal/logging"
	"github.com/tetratelabs/instant/internal/platform"
)

const (
	// maxBackToBack bounds two adjacent reads on a responsive host.
	maxBackToBack = 10 * time.Millisecond
	// sleepTolerance is how far below the requested duration a sleep may
	// measure, as a fraction of it.
	sleepTolerance = 0.05
	// sleepCeiling is how far past the requested duration a sleep may
	// measure, to absorb scheduler jitter.
	sleepCeiling = 150 * time.Millisecond
	// maxZeroSleepMs bounds a zero-length sleep.
	maxZeroSleepMs = 5.0
)

// Result is the outcome of one scenario.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

func (r Result) String() string {
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}
	return fmt.Sprintf("%s\t%s\t%s", status, r.Name, r.Detail)
}

// Config controls the scenarios run by Run.
type Config struct {
	// Goroutines is the count of goroutines reading the clock concurrently.
	Goroutines int
	// Reads is the count of reads per goroutine.
	Reads int
	// Sleep is the duration of the measured sleep.
	Sleep time.Duration
	// Nanosleep defaults to platform.Nanosleep.
	Nanosleep func(ns int64)
	// Log, when set, logs each sleep.
	Log logging.Writer
}

// NewConfig returns the defaults: 4 goroutines reading 10000 times, and a
// 100ms sleep.
func NewConfig() Config {
	return Config{Goroutines: 4, Reads: 10_000, Sleep: 100 * time.Millisecond}
}

type runner struct {
	clock *instant.Clock
	cfg   Config
}

// Run runs every scenario against clock, in order, and returns their results.
// Scenarios not started before ctx is done are omitted.
func Run(ctx context.Context, clock *instant.Clock, cfg Config) []Result {
	if cfg.Nanosleep == nil {
		cfg.Nanosleep = platform.Nanosleep
	}
	r := &runner{clock: clock, cfg: cfg}

	scenarios := []func(context.Context) Result{
		r.backToBack,
		r.sleep,
		r.zeroSleep,
		r.parallel,
		r.repeatElapsed,
	}
	results := make([]Result, 0, len(scenarios))
	for _, s := range scenarios {
		if ctx.Err() != nil {
			break
		}
		results = append(results, s(ctx))
	}
	return results
}

// Passed returns true if every result passed.
func Passed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func (r *runner) nanosleep(ns int64) {
	if r.cfg.Log != nil {
		logging.LogCall(r.cfg.Log, "instant.nanosleep", []logging.Value{logging.I64("ns", ns)}, nil)
	}
	r.cfg.Nanosleep(ns)
}

func (r *runner) backToBack(context.Context) Result {
	a := r.clock.Now()
	b := r.clock.Now()
	delta := b.Sub(a)
	return Result{
		Name:   "back-to-back",
		Passed: b >= a && delta < maxBackToBack,
		Detail: fmt.Sprintf("delta=%dns", delta.Nanoseconds()),
	}
}

func (r *runner) sleep(context.Context) Result {
	d := r.cfg.Sleep
	minMs := float64(d) * (1 - sleepTolerance) / float64(time.Millisecond)
	maxMs := float64(d+sleepCeiling) / float64(time.Millisecond)

	s := r.clock.Now()
	r.nanosleep(int64(d))
	m := r.clock.ElapsedMs(s)
	return Result{
		Name:   "sleep",
		Passed: m >= minMs && m <= maxMs,
		Detail: fmt.Sprintf("slept=%s elapsed=%.3fms want=[%.3f,%.3f]", d, m, minMs, maxMs),
	}
}

func (r *runner) zeroSleep(context.Context) Result {
	s := r.clock.Now()
	r.nanosleep(0)
	m := r.clock.ElapsedMs(s)
	return Result{
		Name:   "zero-sleep",
		Passed: m >= 0 && m < maxZeroSleepMs,
		Detail: fmt.Sprintf("elapsed=%.3fms", m),
	}
}

// parallel checks each goroutine observes its own reads in order. There is
// no assertion across goroutines, as reads don't synchronize them.
func (r *runner) parallel(ctx context.Context) Result {
	g, ctx := errgroup.WithContext(ctx)
	for p := 0; p < r.cfg.Goroutines; p++ {
		p := p
		g.Go(func() error {
			prev := r.clock.Now()
			for n := 1; n < r.cfg.Reads; n++ {
				if n%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				next := r.clock.Now()
				if next < prev {
					return fmt.Errorf("goroutine %d read %d after %d", p, next, prev)
				}
				prev = next
			}
			return nil
		})
	}

	res := Result{Name: "parallel", Passed: true,
		Detail: fmt.Sprintf("goroutines=%d reads=%d", r.cfg.Goroutines, r.cfg.Reads)}
	if err := g.Wait(); err != nil {
		res.Passed = false
		res.Detail = err.Error()
	}
	return res
}

func (r *runner) repeatElapsed(context.Context) Result {
	s := r.clock.Now()
	m1 := r.clock.ElapsedMs(s)
	m2 := r.clock.ElapsedMs(s)
	return Result{
		Name:   "repeat-elapsed",
		Passed: m2 >= m1 && m1 >= 0,
		Detail: fmt.Sprintf("first=%.6fms second=%.6fms", m1, m2),
	}
}
