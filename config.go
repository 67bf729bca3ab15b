package instant

import (
	"errors"
	"fmt"
	"io"

	"github.com/tetratelabs/instant/internal/logging"
	"github.com/tetratelabs/instant/internal/platform"
	"github.com/tetratelabs/instant/sys"
)

// ClockConfig controls how a Clock reads time, with the default
// implementation as NewClockConfig.
//
// Note: ClockConfig is immutable. Each WithXXX function returns a new
// instance including the corresponding change.
type ClockConfig interface {
	// WithNanotime replaces the clock read by Clock.Now, for example with a
	// fake clock in tests. The resolution is reported by Clock.Resolution
	// and must be positive.
	//
	// Note: The Instant values produced are only comparable with others read
	// from the same nanotime.
	WithNanotime(nanotime sys.Nanotime, resolution sys.ClockResolution) ClockConfig

	// WithRawNanotime reads CLOCK_MONOTONIC directly with clock_gettime,
	// instead of through the Go runtime. This costs a system call or vDSO
	// entry per read, and is mainly useful to cross-check the default.
	//
	// Note: This is only different from the default on Linux.
	WithRawNanotime() ClockConfig

	// WithLogging writes each clock call and its result to w. Defaults to
	// no logging.
	WithLogging(w io.Writer) ClockConfig
}

type clockConfig struct {
	nanotime           *sys.Nanotime
	nanotimeResolution sys.ClockResolution
	logWriter          logging.Writer
}

var (
	sysNanotime sys.Nanotime = platform.Nanotime
	rawNanotime sys.Nanotime = platform.MonotonicRaw
)

// NewClockConfig returns a ClockConfig that reads the platform monotonic
// clock, the same one read by Now.
func NewClockConfig() ClockConfig {
	return &clockConfig{
		nanotime:           &sysNanotime,
		nanotimeResolution: platform.NanotimeResolution(),
	}
}

// clone ensures all fields are copied even if nil.
func (c *clockConfig) clone() *clockConfig {
	ret := *c
	return &ret
}

// WithNanotime implements ClockConfig.WithNanotime
func (c *clockConfig) WithNanotime(nanotime sys.Nanotime, resolution sys.ClockResolution) ClockConfig {
	ret := c.clone()
	ret.nanotime = &nanotime
	ret.nanotimeResolution = resolution
	return ret
}

// WithRawNanotime implements ClockConfig.WithRawNanotime
func (c *clockConfig) WithRawNanotime() ClockConfig {
	ret := c.clone()
	ret.nanotime = &rawNanotime
	ret.nanotimeResolution = platform.NanotimeResolution()
	return ret
}

// WithLogging implements ClockConfig.WithLogging
func (c *clockConfig) WithLogging(w io.Writer) ClockConfig {
	ret := c.clone()
	ret.logWriter = toLogWriter(w)
	return ret
}

func (c *clockConfig) validate() error {
	if c.nanotime == nil || *c.nanotime == nil {
		return errors.New("invalid Nanotime: nil")
	}
	if c.nanotimeResolution == 0 {
		return fmt.Errorf("invalid Nanotime resolution: %d", c.nanotimeResolution)
	}
	return nil
}

// stringWriter adds io.StringWriter to writers that don't implement it.
type stringWriter struct {
	io.Writer
}

func (w stringWriter) WriteString(s string) (int, error) {
	return w.Write([]byte(s))
}

func toLogWriter(w io.Writer) logging.Writer {
	switch w := w.(type) {
	case nil:
		return nil
	case logging.Writer:
		return w
	default:
		return stringWriter{w}
	}
}
