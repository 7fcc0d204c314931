package desim

import "fmt"

// Process is both a running routine and the Event representing its
// eventual termination: other code can yield a *Process the same way it
// yields any other Event, and is resumed once the process's routine
// returns, with the process's return value (or a failure, if the routine
// returned a non-nil error).
type Process struct {
	Event

	routine *routine
	target  *Event
	isAlive bool
}

// NewProcess constructs a Process running fn and schedules its bootstrap
// (Initialize) event at the current time with PriorityHigh. It panics with
// *ValueError if fn is nil, the same way Environment.Timeout panics on a
// negative delay.
func NewProcess(env *Environment, fn RoutineFunc) *Process {
	if fn == nil {
		panic(&ValueError{Message: "a process requires a non-nil RoutineFunc"})
	}
	p := &Process{
		Event:   Event{env: env, desc: "Process"},
		routine: newRoutine(fn),
		isAlive: true,
	}
	newInitialize(env, p)
	return p
}

// Process is the Environment factory for NewProcess.
func (env *Environment) Process(fn RoutineFunc) *Process {
	return NewProcess(env, fn)
}

// IsAlive reports whether the process's routine has not yet returned.
func (p *Process) IsAlive() bool { return p.isAlive }

// Target returns the event the process is currently suspended on, or nil
// if the process has not yet started or has already terminated.
func (p *Process) Target() *Event { return p.target }

// Yield suspends the calling routine until target is processed, and
// returns target's outcome: (value, nil) on success, or (nil, err) if
// target failed, where err is the thrown value inside the routine. Yield
// must only be called from within the routine's own goroutine (i.e. from
// code running as, or called by, the RoutineFunc passed to NewProcess).
func (p *Process) Yield(target *Event) (any, error) {
	return p.routine.yield(target)
}

// Interrupt delivers an asynchronous interruption into p's routine: p's
// current Yield call returns an *Interrupt error whose Cause is the given
// value. Interrupt fails with *RuntimeError if p has
// already terminated, or if p is the currently active process (a process
// cannot interrupt itself).
func (p *Process) Interrupt(cause any) error {
	if !p.isAlive {
		return &RuntimeError{Message: fmt.Sprintf("%s has already terminated and cannot be interrupted", p.String())}
	}
	if p.env.active == p {
		return &RuntimeError{Message: "a process is not allowed to interrupt itself"}
	}

	p.env.logInterrupt(p, cause)

	interrupt := &Event{env: p.env, desc: "Interrupt(" + p.String() + ")"}
	if err := interrupt.addCallbackOwned(p.resume, p); err != nil {
		return err
	}
	interrupt.triggered = true
	interrupt.ok = false
	interrupt.value = &Interrupt{Cause: cause}
	interrupt.defused = true

	p.env.schedule(interrupt, PriorityHigh, 0)
	return nil
}

// resume is the callback registered (with owner p) on whatever event p is
// currently waiting on — the Initialize event, a yielded target, or an
// interrupt. It drives the routine forward by exactly one step and
// dispatches the step's outcome via drive.
func (p *Process) resume(e *Event) {
	// Ignore dead processes. Multiple concurrently scheduled interrupts
	// cause this: if the process dies while handling the first one, the
	// remaining interrupts must be discarded.
	if !p.isAlive {
		return
	}

	// If the event being delivered isn't the one p.target currently
	// records, that recorded target has been superseded by this delivery
	// (an interrupt overtaking a yielded target, or a second interrupt
	// overtaking a still-pending first one) — drop its now-stale
	// registration so it cannot resume p a second time when it fires.
	if p.target != nil && p.target != e {
		p.target.removeCallback(p)
	}

	prevActive := p.env.active
	p.env.active = p
	defer func() { p.env.active = prevActive }()

	var result routineResult
	switch {
	case !p.routine.started:
		result = p.routine.start(p)
	case e.ok:
		result = p.routine.resume(e.value)
	default:
		err, _ := e.value.(error)
		if err == nil {
			err = fmt.Errorf("%v", e.value)
		}
		e.defused = true
		result = p.routine.throwInto(err)
	}

	p.drive(result)
}

// drive dispatches one routine step's result: termination (success or
// failure of the process itself), or a new yielded target to wait on.
// Chained already-processed targets are handled iteratively rather than
// by recursion.
func (p *Process) drive(result routineResult) {
	for {
		if result.done {
			p.isAlive = false
			p.target = nil
			if result.err != nil {
				_, _ = p.Fail(result.err)
			} else {
				_, _ = p.Succeed(result.value)
			}
			return
		}

		target := result.target
		if target == nil {
			p.isAlive = false
			p.target = nil
			_, _ = p.Fail(&RuntimeError{Message: p.String() + " yielded a nil event"})
			return
		}
		p.target = target

		if target.processed {
			// The yielded event already ran its callbacks before the
			// routine had a chance to register one: step it inline
			// instead of attaching a callback that would never fire.
			if target.ok {
				result = p.routine.resume(target.value)
			} else {
				err, _ := target.value.(error)
				target.defused = true
				result = p.routine.throwInto(err)
			}
			continue
		}

		if err := target.addCallbackOwned(p.resume, p); err != nil {
			p.isAlive = false
			p.target = nil
			_, _ = p.Fail(err)
			return
		}
		return
	}
}
