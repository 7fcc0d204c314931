package desim

import (
	"fmt"
)

// RoutineFunc is the body of a Process: it runs cooperatively, suspending
// at each call to Process.Yield, and finishes by returning a final value
// or an error.
//
// Go has no native generators, so a RoutineFunc's single suspension point
// is rendered as a goroutine parked on a channel receive; the kernel's own
// scheduling stays a single-threaded priority queue.
// RoutineFunc must call Process.Yield (directly or transitively) to
// suspend; it must never retain p.Yield's returned event across a second,
// concurrent yield, since the Process drives one outstanding target at a
// time.
type RoutineFunc func(p *Process) (any, error)

// resumeMsg is sent into a parked routine goroutine to wake it: either a
// value to return from Yield, or an error for Yield to return as a thrown
// exception (mirroring generator.throw in the original).
type resumeMsg struct {
	value any
	err   error
}

// routineResult is sent out of a routine goroutine: either a yielded
// target event (done is false), or a final outcome (done is true).
type routineResult struct {
	target *Event
	value  any
	err    error
	done   bool
}

// routine is the goroutine-backed coroutine substrate driving a single
// Process's body.
type routine struct {
	fn   RoutineFunc
	toR  chan resumeMsg
	fromR chan routineResult

	started bool
}

func newRoutine(fn RoutineFunc) *routine {
	return &routine{
		fn:    fn,
		toR:   make(chan resumeMsg),
		fromR: make(chan routineResult),
	}
}

// start launches the routine's goroutine and blocks until it either
// yields its first target event or finishes outright.
func (r *routine) start(p *Process) routineResult {
	r.started = true
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				if es, ok := rec.(exitSignal); ok {
					r.fromR <- routineResult{value: es.value, done: true}
					return
				}
				r.fromR <- routineResult{err: fmt.Errorf("desim: process panicked: %v", rec), done: true}
			}
		}()
		value, err := r.fn(p)
		r.fromR <- routineResult{value: value, err: err, done: true}
	}()
	return <-r.fromR
}

// resume wakes a parked routine with a value to return from its last
// Yield call, and blocks until the routine yields again or finishes.
func (r *routine) resume(value any) routineResult {
	r.toR <- resumeMsg{value: value}
	return <-r.fromR
}

// throwInto wakes a parked routine with an error for its last Yield call
// to return, and blocks until the routine yields again or finishes.
func (r *routine) throwInto(err error) routineResult {
	r.toR <- resumeMsg{err: err}
	return <-r.fromR
}

// yield is called from within the routine's own goroutine (via
// Process.Yield) to suspend on target and wait for the next resume/throw.
func (r *routine) yield(target *Event) (any, error) {
	r.fromR <- routineResult{target: target}
	msg := <-r.toR
	return msg.value, msg.err
}
