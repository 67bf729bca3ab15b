//go:build cgo

package platform

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_MonotonicRaw_sharesEpoch ensures runtime.nanotime and a direct
// clock_gettime(CLOCK_MONOTONIC) read agree, by sandwiching one between two
// readings of the other.
func Test_MonotonicRaw_sharesEpoch(t *testing.T) {
	for i := 0; i < 1000; i++ {
		before := MonotonicRaw()
		nanos := Nanotime()
		after := MonotonicRaw()

		require.LessOrEqual(t, before, nanos)
		require.LessOrEqual(t, nanos, after)
	}
}
