package desim

import (
	"container/heap"
	"errors"
	"fmt"
	"math"
)

// Environment is the simulation kernel: it owns virtual time, the event
// priority queue, the event sequence counter, and a reference to whichever
// Process is currently being resumed (nil between resumes).
type Environment struct {
	now    float64
	queue  eventHeap
	seq    uint64
	active *Process

	logger *Logger
}

// NewEnvironment constructs an Environment, applying the given options.
func NewEnvironment(opts ...EnvOption) *Environment {
	cfg := resolveEnvOptions(opts)
	env := &Environment{
		now:    cfg.initialTime,
		logger: cfg.logger,
	}
	return env
}

// Now returns the environment's current virtual time.
func (env *Environment) Now() float64 { return env.now }

// ActiveProcess returns the Process currently being resumed, or nil if no
// process is active (e.g. when called from outside a RoutineFunc).
func (env *Environment) ActiveProcess() *Process { return env.active }

// schedule admits event into the priority queue at env.now+delay, at the
// given priority, assigning the next sequence number so that events
// sharing a (time, priority) pair retain a deterministic relative order.
func (env *Environment) schedule(event *Event, priority Priority, delay float64) {
	at := env.now + delay
	heap.Push(&env.queue, scheduledItem{
		time:     at,
		priority: priority,
		sequence: env.seq,
		event:    event,
	})
	env.seq++
	env.logSchedule(event, priority, at)
}

// Peek returns the time of the next scheduled event, or +Inf if the queue
// is empty.
func (env *Environment) Peek() float64 {
	if len(env.queue) == 0 {
		return math.Inf(1)
	}
	return env.queue[0].time
}

// stopSignal is panicked by the internal stop-callback installed by Run to
// unwind out of Step as soon as the target event fires, without waiting
// for the rest of that event's callback list to run its course — mirroring
// how the original's equivalent callback raises EmptySchedule to unwind
// out of its step loop immediately.
type stopSignal struct{}

// exitSignal is panicked by Environment.Exit to end the active process's
// routine immediately with a return value, without requiring the routine
// body itself to return.
type exitSignal struct{ value any }

// Exit ends the currently-executing process's routine immediately with
// value as its return value. Exit must only be called from within a
// running RoutineFunc; it is equivalent to returning (value, nil) from
// that function directly; most routines should simply do that instead.
func (env *Environment) Exit(value any) {
	panic(exitSignal{value: value})
}

// Step pops and processes the single earliest-scheduled event: it
// advances now to the event's time, takes the event's callbacks and closes
// its callback list, then invokes those callbacks in registration order.
// If the event ends up
// failed and its failure was not defused by any callback, Step returns
// that failure. Step returns ErrEmptySchedule if the queue is empty.
func (env *Environment) Step() (err error) {
	if len(env.queue) == 0 {
		return ErrEmptySchedule
	}

	item := heap.Pop(&env.queue).(scheduledItem)
	env.now = item.time
	e := item.event

	callbacks := e.callbacks
	e.callbacks = nil
	e.processed = true
	env.logStep(e)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(stopSignal); ok {
				err = ErrEmptySchedule
				return
			}
			panic(r)
		}
	}()

	for _, entry := range callbacks {
		entry.fn(e)
	}

	if !e.ok && !e.defused {
		e.defused = true
		propagating := fmt.Errorf("desim: event %s failed with non-error value %v", e.String(), e.value)
		if asErr, ok := e.value.(error); ok {
			propagating = asErr
		}
		env.logPropagatingFailure(e, propagating)
		return propagating
	}
	return nil
}

// Run steps the environment until the given criterion is met:
//
//   - until == nil: steps until the queue drains (ErrEmptySchedule),
//     returning (nil, nil).
//   - until is an *Event, *Condition, or *Process: steps until that event
//     is processed, returning (event.Value(), nil) if it succeeded, or
//     (nil, failure) if it failed; if the queue drains first without the
//     event ever firing, returns (nil, nil).
//   - until is a number (float64, float32, int, int32, int64, uint, uint32
//     or uint64): steps until env.now reaches until, returning (nil, nil).
//     until must be strictly greater than env.now, or Run returns
//     *ValueError. Any other type of until also yields *ValueError.
func (env *Environment) Run(until any) (any, error) {
	var stopEvent *Event

	switch u := until.(type) {
	case nil:
		stopEvent = newEvent(env)
	case *Event:
		stopEvent = u
	case *Condition:
		stopEvent = &u.Event
	case *Process:
		stopEvent = &u.Event
	default:
		at, ok := toFloat64(until)
		if !ok {
			return nil, &ValueError{Message: fmt.Sprintf("until must be nil, an event, or a number, got %T", until)}
		}
		if at <= env.now {
			return nil, &ValueError{Message: fmt.Sprintf("until(=%v) should be > the current simulation time", at)}
		}
		stopEvent = &Event{env: env, triggered: true, ok: true, desc: "RunUntil"}
		env.schedule(stopEvent, PriorityHigh, at-env.now)
	}

	if err := stopEvent.addCallback(func(*Event) { panic(stopSignal{}) }); err != nil {
		return nil, err
	}

	for {
		stepErr := env.Step()
		if stepErr == nil {
			continue
		}
		if errors.Is(stepErr, ErrEmptySchedule) {
			break
		}
		return nil, stepErr
	}

	if stopEvent.triggered {
		if !stopEvent.ok {
			if failure, ok := stopEvent.value.(error); ok {
				return nil, failure
			}
		}
		return stopEvent.value, nil
	}
	return nil, nil
}

// toFloat64 converts any of Go's built-in numeric kinds to float64, for
// Environment.Run's until parameter.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}
