package desim

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Logger is the structured logger type accepted throughout this package: a
// logiface.Logger configured with stumpy's Event implementation, matching
// how the rest of this module's teacher lineage wires structured logging.
type Logger = logiface.Logger[*stumpy.Event]

// NewDefaultLogger builds a Logger writing newline-delimited JSON to w at
// the given minimum level. Passing a nil w defaults to os.Stderr (stumpy's
// own default).
func NewDefaultLogger(w io.Writer, level logiface.Level) *Logger {
	var stumpyOpts []stumpy.Option
	if w != nil {
		stumpyOpts = append(stumpyOpts, stumpy.WithWriter(w))
	}
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpyOpts...),
		logiface.WithLevel[*stumpy.Event](level),
	)
}

// logSchedule emits a trace-level record describing an event admitted to
// the queue. It is a no-op when no logger is configured.
func (env *Environment) logSchedule(e *Event, priority Priority, at float64) {
	if env.logger == nil {
		return
	}
	env.logger.Trace().
		Float64(`time`, at).
		Int64(`priority`, int64(priority)).
		Str(`event`, e.String()).
		Log(`schedule`)
}

// logStep emits a trace-level record describing the event the Environment
// just popped off the queue and processed.
func (env *Environment) logStep(e *Event) {
	if env.logger == nil {
		return
	}
	ev := env.logger.Trace().
		Float64(`time`, env.now).
		Str(`event`, e.String()).
		Bool(`ok`, e.ok)
	ev.Log(`step`)
}

// logInterrupt emits a debug-level record describing an interrupt
// delivered to a process.
func (env *Environment) logInterrupt(p *Process, cause any) {
	if env.logger == nil {
		return
	}
	env.logger.Debug().
		Str(`process`, p.String()).
		Str(`cause`, fmtCause(cause)).
		Log(`interrupt`)
}

// logConditionShortCircuit emits a debug-level record when a failing child
// causes a Condition to fail immediately, short-circuiting its evaluator.
func (c *Condition) logConditionShortCircuit(child *Event) {
	if c.env.logger == nil {
		return
	}
	c.env.logger.Debug().
		Str(`condition`, c.String()).
		Str(`child`, child.String()).
		Log(`condition short-circuit`)
}

// logPropagatingFailure emits an err-level record just before Step returns a
// non-defused failure out to Run.
func (env *Environment) logPropagatingFailure(e *Event, err error) {
	if env.logger == nil {
		return
	}
	env.logger.Err().
		Str(`event`, e.String()).
		Err(err).
		Log(`unhandled failure propagating out of run`)
}

func fmtCause(cause any) string {
	if cause == nil {
		return ``
	}
	if s, ok := cause.(string); ok {
		return s
	}
	if s, ok := cause.(interface{ String() string }); ok {
		return s.String()
	}
	return `(unprintable)`
}
