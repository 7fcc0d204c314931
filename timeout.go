package desim

import "fmt"

// NewTimeout constructs an Event that is already triggered successfully
// with value, and already scheduled at env.now+delay with PriorityLow —
// so that simultaneous plain events (PriorityDefault) and interrupts/inits
// (PriorityHigh) fire before equally-timed timeouts.
//
// NewTimeout returns *ValueError if delay is negative.
func NewTimeout(env *Environment, delay float64, value any) (*Event, error) {
	if delay < 0 {
		return nil, &ValueError{Message: fmt.Sprintf("negative delay %v", delay)}
	}
	e := &Event{
		env:       env,
		triggered: true,
		ok:        true,
		value:     value,
		desc:      fmt.Sprintf("Timeout(%v)", delay),
	}
	env.schedule(e, PriorityLow, delay)
	return e, nil
}

// Timeout is the Environment factory for NewTimeout. It panics if delay is
// negative, mirroring how the original raises ValueError synchronously
// from the constructor rather than returning it — callers who need the
// error value should use NewTimeout directly.
func (env *Environment) Timeout(delay float64, value any) *Event {
	e, err := NewTimeout(env, delay, value)
	if err != nil {
		panic(err)
	}
	return e
}
