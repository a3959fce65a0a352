package pipeline

import (
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// The package logger is a nop unless configured. SetDebug wires a
// console logger for interactive use; applications embedding the
// engine pass their own logger through SetLogger.
var (
	logMu sync.RWMutex
	log   = zerolog.Nop()
)

// SetLogger replaces the package logger. Call at startup, before any
// Apply.
func SetLogger(l zerolog.Logger) {
	logMu.Lock()
	defer logMu.Unlock()
	log = l
}

// SetDebug toggles step-by-step logging of every Apply on a console
// writer. Intended for interactive sessions and debugging, not for
// production logging.
func SetDebug(on bool) {
	if !on {
		SetLogger(zerolog.Nop())
		return
	}
	l := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
	SetLogger(l)
}

func logger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return log
}

// previewLines and previewChars cap how much of an intermediate value a
// trace or debug line shows.
const (
	previewLines = 20
	previewChars = 1600
	previewMore  = "..."
)

// Preview renders a truncated, single-purpose view of a value for trace
// and debug output.
func Preview(v Value) string {
	switch v.Shape() {
	case Text:
		return truncate(v.Text())
	case Lines:
		lines := v.Lines()
		if len(lines) > previewLines {
			return fmt.Sprintf("%q %s (%d lines)", lines[:previewLines], previewMore, len(lines))
		}
		return fmt.Sprintf("%q", lines)
	case Mapping:
		return truncate(v.Map().String())
	default:
		return truncate(fmt.Sprintf("%v", v.Scalar()))
	}
}

func truncate(s string) string {
	if len(s) > previewChars {
		return s[:previewChars] + previewMore
	}
	return s
}

// stepTrace records one intermediate value during a traced run.
type stepTrace struct {
	step  int    // step index; -1 for the materialized input
	op    string // operation name; "input" for the materialized input
	value Value
}

// newRunID tags the log lines of one traced Apply so interleaved runs
// stay distinguishable.
func newRunID() string {
	return uuid.NewString()
}

// emitTrace logs the recorded intermediate values of a failed traced
// run, oldest first.
func emitTrace(runID string, chain *Chain, traces []stepTrace, failedStep int, cause error) {
	l := logger()
	l.Error().
		Str("run", runID).
		Str("chain", chain.String()).
		Int("failed_step", failedStep).
		Err(cause).
		Msg("chain failed, tracing intermediate values")
	for _, t := range traces {
		l.Error().
			Str("run", runID).
			Int("step", t.step).
			Str("op", t.op).
			Str("shape", t.value.Shape().String()).
			Str("value", Preview(t.value)).
			Msg("trace")
	}
}

// debugStep logs one completed step when debug logging is enabled.
func debugStep(runID string, step int, s Step, out Value) {
	l := logger()
	e := l.Debug()
	if !e.Enabled() {
		return
	}
	e.Str("run", runID).
		Int("step", step).
		Str("op", formatStep(s)).
		Str("shape", out.Shape().String()).
		Str("value", Preview(out)).
		Msg("step")
}
