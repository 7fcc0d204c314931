package desim

// Callback is invoked with the event it was registered on, once that
// event is processed (its callback list is drained in registration order
// at that moment, then closed).
type Callback func(e *Event)

// callbackEntry pairs a callback with the Process it resumes, if any.
// Tracking ownership lets Process.resume remove a stale registration
// (e.g. an interrupt superseding a timeout target) without requiring
// Callback values to be comparable.
type callbackEntry struct {
	fn    Callback
	owner *Process
}

// Event is a one-shot value carrier with a callback fan-out, processed at
// a scheduled (time, priority). Succeed and Fail move an event from
// pending to triggered and refuse an event that is already triggered;
// Trigger does not check, so calling it on a triggered event sets and
// schedules the event again. An event is processed when the Environment
// pops it off the queue and drains its callbacks.
type Event struct {
	env *Environment

	triggered bool
	ok        bool
	value     any

	callbacks []callbackEntry
	processed bool

	defused bool

	// conditionOwner is non-nil when this Event is the embedded Event of a
	// Condition, letting code that only holds an *Event (e.g. another
	// Condition admitting it as a child) recover the owning *Condition for
	// flattening, without a type switch on every Event user.
	conditionOwner *Condition

	// desc is an optional human-readable label used by String(); purely
	// cosmetic, mirroring the original's _desc() debugging helper.
	desc string
}

// newEvent constructs a pending Event owned by env.
func newEvent(env *Environment) *Event {
	return &Event{env: env}
}

// Event constructs a new pending Event owned by this Environment. This is
// the factory method exposed via Environment.Event / Environment.Suspend.
func (env *Environment) Event() *Event {
	return newEvent(env)
}

// Suspend is an alias of Event, matching the factory surface described in
// spec.md §4.6.
func (env *Environment) Suspend() *Event {
	return env.Event()
}

// Env returns the Environment that owns this event.
func (e *Event) Env() *Environment { return e.env }

// Triggered reports whether the event's value has been set (success or
// failure), regardless of whether its callbacks have run yet.
func (e *Event) Triggered() bool { return e.triggered }

// Processed reports whether the event's callbacks have been drained and
// its callback list closed.
func (e *Event) Processed() bool { return e.processed }

// Ok reports whether the event succeeded. It is only meaningful once
// Triggered is true.
func (e *Event) Ok() bool { return e.ok }

// Defused reports whether a failed event's failure has been handled
// elsewhere (by an interrupt target, or by a Condition that took over the
// failure), and therefore will not abort Environment.Run.
func (e *Event) Defused() bool { return e.defused }

// Value returns the event's value. Per spec.md §9's resolution of an
// under-specified point in the original, Value returns the payload
// uniformly regardless of defusal: a failed event's Value is its error
// payload whether or not that failure was later defused.
//
// Value returns ErrValueNotReady if the event has not yet been triggered.
func (e *Event) Value() (any, error) {
	if !e.triggered {
		return nil, ErrValueNotReady
	}
	return e.value, nil
}

// String returns a short debugging description, mirroring the original
// implementation's _desc() helper.
func (e *Event) String() string {
	if e.desc != "" {
		return e.desc
	}
	return "Event()"
}

// addCallback appends cb to the event's callback list. It is an error to
// append to an event whose callbacks have already been drained.
func (e *Event) addCallback(cb Callback) error {
	return e.addCallbackOwned(cb, nil)
}

// addCallbackOwned is addCallback plus an optional Process owner, used so
// a stale registration can later be found and removed by removeCallback.
func (e *Event) addCallbackOwned(cb Callback, owner *Process) error {
	if e.processed {
		return &RuntimeError{Message: "event " + e.String() + " has already been processed"}
	}
	e.callbacks = append(e.callbacks, callbackEntry{fn: cb, owner: owner})
	return nil
}

// removeCallback removes the first callback owned by the given process.
// Used by Process.resume when an interrupt supersedes the process's
// current target, so the stale target does not resume the process again.
func (e *Event) removeCallback(target *Process) {
	for i, entry := range e.callbacks {
		if entry.owner == target {
			e.callbacks = append(e.callbacks[:i], e.callbacks[i+1:]...)
			return
		}
	}
}

// Succeed marks the event successful with the given value and schedules
// it at the environment's current time with PriorityDefault. It fails
// with *RuntimeError if the event has already been triggered.
func (e *Event) Succeed(value any) (*Event, error) {
	if e.triggered {
		return nil, &RuntimeError{Message: e.String() + " has already been triggered"}
	}
	e.triggered = true
	e.ok = true
	e.value = value
	e.env.schedule(e, PriorityDefault, 0)
	return e, nil
}

// Fail marks the event failed with the given error and schedules it at
// the environment's current time with PriorityDefault. It fails with
// *RuntimeError if the event has already been triggered.
func (e *Event) Fail(err error) (*Event, error) {
	if err == nil {
		return nil, &ValueError{Message: "fail requires a non-nil error"}
	}
	if e.triggered {
		return nil, &RuntimeError{Message: e.String() + " has already been triggered"}
	}
	e.triggered = true
	e.ok = false
	e.value = err
	e.env.schedule(e, PriorityDefault, 0)
	return e, nil
}

// Trigger copies the outcome (ok, value) from another event and schedules
// self. Designed to be registered as a callback that forwards another
// event's outcome. Unlike Succeed and Fail, Trigger does not check whether
// e has already been triggered.
func (e *Event) Trigger(other *Event) {
	e.triggered = true
	e.ok = other.ok
	e.value = other.value
	e.env.schedule(e, PriorityDefault, 0)
}

// And constructs a new Condition over [e, other] using the all-of
// predicate. Equivalent to the `&` operator in the original implementation.
func (e *Event) And(other *Event) *Condition {
	return NewCondition(e.env, EvaluateAllOf, []*Event{e, other})
}

// Or constructs a new Condition over [e, other] using the any-of
// predicate. Equivalent to the `|` operator in the original implementation.
func (e *Event) Or(other *Event) *Condition {
	return NewCondition(e.env, EvaluateAnyOf, []*Event{e, other})
}
