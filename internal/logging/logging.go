// Package logging includes utilities used to log clock calls. This is in
// an independent package to avoid dependency cycles.
package logging

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

type LogScopes uint64

const (
	LogScopeNone            = LogScopes(0)
	LogScopeClock LogScopes = 1 << iota
	LogScopeSleep
	LogScopeAll = LogScopes(0xffffffffffffffff)
)

func scopeName(s LogScopes) string {
	switch s {
	case LogScopeClock:
		return "clock"
	case LogScopeSleep:
		return "sleep"
	default:
		return fmt.Sprintf("<unknown=%d>", s)
	}
}

// ParseScope returns the scope named s, or false if there is none.
func ParseScope(s string) (LogScopes, bool) {
	switch s {
	case "all":
		return LogScopeAll, true
	case "clock":
		return LogScopeClock, true
	case "sleep":
		return LogScopeSleep, true
	}
	return LogScopeNone, false
}

// IsEnabled returns true if the scope (or group of scopes) is enabled.
func (f LogScopes) IsEnabled(scope LogScopes) bool {
	return f&scope != 0
}

// String implements fmt.Stringer by returning each enabled log scope.
func (f LogScopes) String() string {
	if f == LogScopeAll {
		return "all"
	}
	var builder strings.Builder
	for i := 0; i <= 63; i++ { // cycle through all bits to reduce code and maintenance
		target := LogScopes(1 << i)
		if f.IsEnabled(target) {
			if name := scopeName(target); name != "" {
				if builder.Len() > 0 {
					builder.WriteByte('|')
				}
				builder.WriteString(name)
			}
		}
	}
	return builder.String()
}

type Writer interface {
	io.Writer
	io.StringWriter
}

// Value is a named parameter or result of a logged call.
type Value struct {
	name string
	val  string
}

// I64 formats v as a signed integer.
func I64(name string, v int64) Value {
	return Value{name: name, val: strconv.FormatInt(v, 10)}
}

// F64 formats v the shortest way that round-trips.
func F64(name string, v float64) Value {
	return Value{name: name, val: strconv.FormatFloat(v, 'g', -1, 64)}
}

// LogCall writes the call to fnName with its params on one line, and its
// results on the next. For example:
//
//	==> instant.elapsed_ms(start=1000000)
//	<== ms=1.5
func LogCall(w Writer, fnName string, params, results []Value) {
	var b strings.Builder
	b.WriteString("==> ")
	b.WriteString(fnName)
	b.WriteByte('(')
	writeValues(&b, params)
	b.WriteString(")\n<==")
	if len(results) > 0 {
		b.WriteByte(' ')
		writeValues(&b, results)
	}
	b.WriteByte('\n')
	// Write once, so concurrent callers sharing w don't interleave lines.
	_, _ = w.WriteString(b.String())
}

func writeValues(b *strings.Builder, vals []Value) {
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(v.name)
		b.WriteByte('=')
		b.WriteString(v.val)
	}
}
