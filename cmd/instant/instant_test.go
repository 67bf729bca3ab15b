package main

import (
	"bytes"
	"flag"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNow(t *testing.T) {
	exitCode, stdOut, stdErr := runMain(t, []string{"now"})
	require.Equal(t, 0, exitCode)
	require.Empty(t, stdErr)

	_, err := strconv.ParseInt(strings.TrimSpace(stdOut), 10, 64)
	require.NoError(t, err)
}

func TestNow_hostlogging(t *testing.T) {
	exitCode, stdOut, stdErr := runMain(t, []string{"now", "-raw", "-hostlogging=clock"})
	require.Equal(t, 0, exitCode)

	now := strings.TrimSpace(stdOut)
	require.Equal(t, "==> instant.now()\n<== instant="+now+"\n", stdErr)
}

func TestElapsed(t *testing.T) {
	// A reading from the raw clock compares across processes on Linux, but
	// here it's the same process anyway.
	_, stdOut, _ := runMain(t, []string{"now", "-raw"})
	start := strings.TrimSpace(stdOut)

	exitCode, stdOut, stdErr := runMain(t, []string{"elapsed", "-raw", start})
	require.Equal(t, 0, exitCode)
	require.Empty(t, stdErr)

	ms, err := strconv.ParseFloat(strings.TrimSpace(stdOut), 64)
	require.NoError(t, err)
	require.GreaterOrEqual(t, ms, 0.0)
}

func TestCheck(t *testing.T) {
	exitCode, stdOut, stdErr := runMain(t, []string{"check", "-p=2", "-n=100", "-sleep=10ms", "-hostlogging=sleep"})
	require.Equal(t, 0, exitCode, stdOut)
	require.Contains(t, stdOut, "resolution\t")
	for _, name := range []string{"back-to-back", "sleep", "zero-sleep", "parallel", "repeat-elapsed"} {
		require.Contains(t, stdOut, "PASS\t"+name+"\t")
	}
	require.Equal(t, "==> instant.nanosleep(ns=10000000)\n<==\n==> instant.nanosleep(ns=0)\n<==\n", stdErr)
}

func TestVersion(t *testing.T) {
	exitCode, stdOut, _ := runMain(t, []string{"version"})
	require.Equal(t, 0, exitCode)
	require.NotEmpty(t, strings.TrimSpace(stdOut))
}

func TestHelp(t *testing.T) {
	exitCode, _, stdErr := runMain(t, []string{"-h"})
	require.Equal(t, 0, exitCode)
	require.Contains(t, stdErr, "instant CLI\n\nUsage:")
}

func TestSubcommandHelp(t *testing.T) {
	for _, cmd := range []string{"now", "elapsed", "check"} {
		tc := cmd
		t.Run(tc, func(t *testing.T) {
			exitCode, _, stdErr := runMain(t, []string{tc, "-h"})
			require.Equal(t, 0, exitCode)
			require.Contains(t, stdErr, "Usage:\n  instant "+tc+" <options>")
			require.Contains(t, stdErr, "-raw")
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		message string
		args    []string
	}{
		{
			message: "invalid command",
			args:    []string{"later"},
		},
		{
			message: "missing start instant",
			args:    []string{"elapsed"},
		},
		{
			message: `invalid start instant: "soon" is not a 64-bit integer`,
			args:    []string{"elapsed", "soon"},
		},
		{
			message: "value out of range",
			args:    []string{"elapsed", "9223372036854775808"},
		},
		{
			message: "invalid -p or -n: must be positive",
			args:    []string{"check", "-p=0"},
		},
		{
			message: "invalid -sleep: must not be negative",
			args:    []string{"check", "-sleep=-1s"},
		},
	}

	for _, tc := range tests {
		tt := tc
		t.Run(tt.message, func(t *testing.T) {
			exitCode, _, stdErr := runMain(t, tt.args)

			require.Equal(t, 1, exitCode)
			require.Contains(t, stdErr, tt.message)
		})
	}
}

func TestLogScopesFlag(t *testing.T) {
	var f logScopesFlag
	require.NoError(t, f.Set("clock,,sleep"))
	require.Equal(t, "clock|sleep", f.String())

	require.EqualError(t, f.Set("filesystem"), "not a log scope")
}

func runMain(t *testing.T, args []string) (int, string, string) {
	t.Helper()
	oldArgs := os.Args
	t.Cleanup(func() {
		os.Args = oldArgs
	})
	os.Args = append([]string{"instant"}, args...)

	var exitCode int
	stdOut := &bytes.Buffer{}
	stdErr := &bytes.Buffer{}
	var exited bool
	func() {
		defer func() {
			if r := recover(); r != nil {
				exited = true
			}
		}()
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
		doMain(stdOut, stdErr, func(code int) {
			exitCode = code
			panic(code)
		})
	}()

	require.True(t, exited)

	return exitCode, stdOut.String(), stdErr.String()
}
