package instant

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tetratelabs/instant/internal/platform"
)

func newFakeClock(t *testing.T) *Clock {
	clock, err := NewClock(NewClockConfig().WithNanotime(*platform.NewFakeNanotime(), 1))
	require.NoError(t, err)
	return clock
}

func TestClock_fake(t *testing.T) {
	clock := newFakeClock(t)

	start := clock.Now()
	require.Equal(t, Instant(0), start)

	// Each read advances the fake clock by 1ms.
	require.Equal(t, 1.0, clock.ElapsedMs(start))
	require.Equal(t, 2*time.Millisecond, clock.Since(start))
	require.Equal(t, Instant(3*time.Millisecond), clock.Now())
}

func TestClock_sys(t *testing.T) {
	clock, err := NewClock(NewClockConfig())
	require.NoError(t, err)
	require.Equal(t, platform.NanotimeResolution(), clock.Resolution())

	s := clock.Now()
	m1 := clock.ElapsedMs(s)
	m2 := clock.ElapsedMs(s)
	require.GreaterOrEqual(t, m1, 0.0)
	require.GreaterOrEqual(t, m2, m1)

	// The package-level clock reads the same source.
	require.GreaterOrEqual(t, Now(), s)
}

func TestClock_raw(t *testing.T) {
	clock, err := NewClock(NewClockConfig().WithRawNanotime())
	require.NoError(t, err)

	s := clock.Now()
	time.Sleep(10 * time.Millisecond)
	require.GreaterOrEqual(t, clock.ElapsedMs(s), 9.5)
}

func TestClock_logging(t *testing.T) {
	var log bytes.Buffer
	clock, err := NewClock(NewClockConfig().
		WithNanotime(*platform.NewFakeNanotime(), 1).
		WithLogging(&log))
	require.NoError(t, err)

	start := clock.Now()
	clock.ElapsedMs(start)
	clock.Since(start) // not logged

	require.Equal(t, `==> instant.now()
<== instant=0
==> instant.elapsed_ms(start=0)
<== ms=1
`, log.String())
}
