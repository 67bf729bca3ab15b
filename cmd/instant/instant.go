package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/tetratelabs/instant"
	"github.com/tetratelabs/instant/internal/check"
	"github.com/tetratelabs/instant/internal/logging"
	"github.com/tetratelabs/instant/internal/version"
)

func main() {
	doMain(os.Stdout, os.Stderr, os.Exit)
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut io.Writer, stdErr logging.Writer, exit func(code int)) {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "print usage")

	flag.Parse()

	if help || flag.NArg() == 0 {
		printUsage(stdErr)
		exit(0)
	}

	subCmd := flag.Arg(0)
	switch subCmd {
	case "now":
		doNow(flag.Args()[1:], stdOut, stdErr, exit)
	case "elapsed":
		doElapsed(flag.Args()[1:], stdOut, stdErr, exit)
	case "check":
		doCheck(flag.Args()[1:], stdOut, stdErr, exit)
	case "version":
		fmt.Fprintln(stdOut, version.GetInstantVersion())
		exit(0)
	default:
		fmt.Fprintln(stdErr, "invalid command")
		printUsage(stdErr)
		exit(1)
	}
}

// clockFlags are common to every command that reads the clock.
type clockFlags struct {
	raw         bool
	hostlogging logScopesFlag
}

func (c *clockFlags) register(flags *flag.FlagSet) {
	flags.BoolVar(&c.raw, "raw", false, "read CLOCK_MONOTONIC with clock_gettime instead of through the Go runtime")
	flags.Var(&c.hostlogging, "hostlogging",
		"A comma-separated list of scopes to log to stderr. "+
			"This may be specified multiple times. Supported values: all,clock,sleep")
}

func (c *clockFlags) newClock(stdErr logging.Writer, exit func(code int)) *instant.Clock {
	config := instant.NewClockConfig()
	if c.raw {
		config = config.WithRawNanotime()
	}
	if logging.LogScopes(c.hostlogging).IsEnabled(logging.LogScopeClock) {
		config = config.WithLogging(stdErr)
	}
	clock, err := instant.NewClock(config)
	if err != nil {
		fmt.Fprintf(stdErr, "error creating clock: %v\n", err)
		exit(1)
	}
	return clock
}

func doNow(args []string, stdOut io.Writer, stdErr logging.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("now", flag.ExitOnError)
	flags.SetOutput(stdErr)

	var help bool
	flags.BoolVar(&help, "h", false, "print usage")

	var cf clockFlags
	cf.register(flags)

	_ = flags.Parse(args)

	if help {
		printNowUsage(stdErr, flags)
		exit(0)
	}

	clock := cf.newClock(stdErr, exit)
	fmt.Fprintln(stdOut, int64(clock.Now()))
	exit(0)
}

func doElapsed(args []string, stdOut io.Writer, stdErr logging.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("elapsed", flag.ExitOnError)
	flags.SetOutput(stdErr)

	var help bool
	flags.BoolVar(&help, "h", false, "print usage")

	var cf clockFlags
	cf.register(flags)

	_ = flags.Parse(args)

	if help {
		printElapsedUsage(stdErr, flags)
		exit(0)
	}

	if flags.NArg() < 1 {
		fmt.Fprintln(stdErr, "missing start instant")
		printElapsedUsage(stdErr, flags)
		exit(1)
	}

	start, err := parseInstant(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stdErr, "invalid start instant: %v\n", err)
		exit(1)
	}

	clock := cf.newClock(stdErr, exit)
	fmt.Fprintln(stdOut, strconv.FormatFloat(clock.ElapsedMs(start), 'f', -1, 64))
	exit(0)
}

func parseInstant(s string) (instant.Instant, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a 64-bit integer: %w", s, err)
	}
	return instant.Instant(i), nil
}

func doCheck(args []string, stdOut io.Writer, stdErr logging.Writer, exit func(code int)) {
	flags := flag.NewFlagSet("check", flag.ExitOnError)
	flags.SetOutput(stdErr)

	var help bool
	flags.BoolVar(&help, "h", false, "print usage")

	cfg := check.NewConfig()
	flags.IntVar(&cfg.Goroutines, "p", cfg.Goroutines, "count of goroutines reading the clock concurrently")
	flags.IntVar(&cfg.Reads, "n", cfg.Reads, "count of reads per goroutine")
	flags.DurationVar(&cfg.Sleep, "sleep", cfg.Sleep, "duration of the measured sleep")

	var cf clockFlags
	cf.register(flags)

	_ = flags.Parse(args)

	if help {
		printCheckUsage(stdErr, flags)
		exit(0)
	}

	if cfg.Goroutines < 1 || cfg.Reads < 1 {
		fmt.Fprintln(stdErr, "invalid -p or -n: must be positive")
		exit(1)
	}
	if cfg.Sleep < 0 {
		fmt.Fprintln(stdErr, "invalid -sleep: must not be negative")
		exit(1)
	}

	if logging.LogScopes(cf.hostlogging).IsEnabled(logging.LogScopeSleep) {
		cfg.Log = stdErr
	}
	clock := cf.newClock(stdErr, exit)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(stdOut, "resolution\t%dns\n", clock.Resolution())
	results := check.Run(ctx, clock, cfg)
	for _, r := range results {
		fmt.Fprintln(stdOut, r)
	}

	if ctx.Err() != nil {
		fmt.Fprintln(stdErr, "interrupted")
		exit(1)
	}
	if !check.Passed(results) {
		exit(1)
	}
	exit(0)
}

func printUsage(stdErr io.Writer) {
	fmt.Fprintln(stdErr, "instant CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  instant <command>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Commands:")
	fmt.Fprintln(stdErr, "  now\t\tPrints the monotonic clock in nanoseconds")
	fmt.Fprintln(stdErr, "  elapsed\tPrints the milliseconds since a previous reading")
	fmt.Fprintln(stdErr, "  check\t\tVerifies the monotonic clock of this host")
	fmt.Fprintln(stdErr, "  version\tDisplays the version of instant CLI")
}

func printNowUsage(stdErr io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(stdErr, "instant CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  instant now <options>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flags.PrintDefaults()
}

func printElapsedUsage(stdErr io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(stdErr, "instant CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  instant elapsed <options> [--] <start>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "<start> is a reading from \"instant now\". Readings only compare across")
	fmt.Fprintln(stdErr, "processes when both use -raw on Linux.")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flags.PrintDefaults()
}

func printCheckUsage(stdErr io.Writer, flags *flag.FlagSet) {
	fmt.Fprintln(stdErr, "instant CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  instant check <options>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Options:")
	flags.PrintDefaults()
}

type logScopesFlag logging.LogScopes

func (f *logScopesFlag) String() string {
	return logging.LogScopes(*f).String()
}

func (f *logScopesFlag) Set(input string) error {
	for _, s := range strings.Split(input, ",") {
		if s == "" {
			continue
		}
		scope, ok := logging.ParseScope(s)
		if !ok {
			return errors.New("not a log scope")
		}
		*f |= logScopesFlag(scope)
	}
	return nil
}
