package instant

import (
	"time"

	"github.com/tetratelabs/instant/internal/logging"
	"github.com/tetratelabs/instant/sys"
)

const (
	fnNow       = "instant.now"
	fnElapsedMs = "instant.elapsed_ms"
)

// Clock reads Instant values from the source chosen by its ClockConfig. The
// package-level Now and ElapsedMs behave like a Clock built from
// NewClockConfig, without the indirection.
//
// Clock is safe for concurrent use.
type Clock struct {
	nanotime   sys.Nanotime
	resolution sys.ClockResolution
	log        logging.Writer
}

// NewClock returns a Clock configured by config, or an error if config is
// invalid.
func NewClock(config ClockConfig) (*Clock, error) {
	c := config.(*clockConfig)
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &Clock{nanotime: *c.nanotime, resolution: c.nanotimeResolution, log: c.logWriter}, nil
}

// Now is like the package-level Now, but reads this clock.
func (c *Clock) Now() Instant {
	now := Instant(c.nanotime())
	if c.log != nil {
		logging.LogCall(c.log, fnNow, nil, []logging.Value{logging.I64("instant", int64(now))})
	}
	return now
}

// ElapsedMs is like the package-level ElapsedMs, but reads this clock.
func (c *Clock) ElapsedMs(start Instant) float64 {
	ms := MillisecondsBetween(start, Instant(c.nanotime()))
	if c.log != nil {
		logging.LogCall(c.log, fnElapsedMs,
			[]logging.Value{logging.I64("start", int64(start))},
			[]logging.Value{logging.F64("ms", ms)})
	}
	return ms
}

// Since returns the time.Duration elapsed since start on this clock.
func (c *Clock) Since(start Instant) time.Duration {
	return Instant(c.nanotime()).Sub(start)
}

// Resolution returns the granularity of this clock in nanoseconds.
func (c *Clock) Resolution() sys.ClockResolution {
	return c.resolution
}
