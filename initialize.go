package desim

// newInitialize constructs the Event that kicks a freshly created Process's
// routine into motion. It is scheduled at the process's creation time with
// PriorityHigh, so a process starts running before any plain event or
// timeout scheduled for the same instant, matching how the original
// prioritizes Initialize above Timeout.
func newInitialize(env *Environment, process *Process) *Event {
	e := &Event{env: env, desc: "Initialize(" + process.String() + ")"}
	if err := e.addCallbackOwned(process.resume, process); err != nil {
		panic(err)
	}
	e.triggered = true
	e.ok = true
	env.schedule(e, PriorityHigh, 0)
	return e
}
