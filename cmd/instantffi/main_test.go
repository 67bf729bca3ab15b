//go:build cgo

package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Tests can't import "C", but can call the exported functions and convert
// their results.

func TestInstantNowFFI(t *testing.T) {
	a := int64(instant_now_ffi())
	b := int64(instant_now_ffi())
	require.GreaterOrEqual(t, b, a)
	require.Less(t, b-a, int64(10*time.Millisecond))
}

func TestInstantElapsedMsFFI(t *testing.T) {
	s := instant_now_ffi()
	time.Sleep(100 * time.Millisecond)
	m := float64(instant_elapsed_ms_ffi(s))
	require.GreaterOrEqual(t, m, 95.0)
	require.LessOrEqual(t, m, 250.0)
}

func TestInstantElapsedMsFFI_repeat(t *testing.T) {
	s := instant_now_ffi()
	m1 := float64(instant_elapsed_ms_ffi(s))
	m2 := float64(instant_elapsed_ms_ffi(s))
	require.GreaterOrEqual(t, m1, 0.0)
	require.GreaterOrEqual(t, m2, m1)
}

func TestInstantElapsedMsFFI_future(t *testing.T) {
	// A start one second ahead isn't rejected.
	s := instant_now_ffi() + 1_000_000_000
	require.Less(t, float64(instant_elapsed_ms_ffi(s)), 0.0)
}
