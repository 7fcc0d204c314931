// Package desim provides a single-threaded, deterministic discrete-event
// simulation kernel. It drives cooperatively-scheduled [Process] routines
// over a virtual time axis by draining a priority queue of scheduled
// [Event] values.
//
// # Architecture
//
// An [Environment] owns the virtual clock, the event priority queue, and
// the currently-active [Process] (if any). User code constructs [Event]
// (timeouts included), [Process], and [Condition] values through the Environment's
// factory methods ([Environment.Event], [Environment.Timeout],
// [Environment.Process], [Environment.AllOf], [Environment.AnyOf]); each
// scheduled event is pushed onto the queue keyed by
// (time, priority, sequence). [Environment.Step] pops the earliest event
// and invokes its callbacks in registration order, which typically resume
// suspended processes. A resumed process yields a new target event and
// the cycle continues until the queue drains or a stop condition fires.
//
// # Priority tiers
//
// Three priority tiers break ties at equal virtual time:
//   - [PriorityHigh]: process bootstrap and interrupts
//   - [PriorityDefault]: plain events (Succeed/Fail/Trigger)
//   - [PriorityLow]: timeouts
//
// Within a (time, priority) pair, events fire in scheduling order via a
// monotonically increasing sequence counter.
//
// # Coroutine substrate
//
// A [Process] drives a [RoutineFunc]: a user-supplied function running on
// its own goroutine, suspended at explicit "yield an event" points (via
// [Process.Yield]) and resumed with either a success value or a thrown
// error.
//
// # Usage
//
//	env := desim.NewEnvironment()
//	env.Process(func(p *desim.Process) (any, error) {
//		for i := 0; i < 3; i++ {
//			if _, err := p.Yield(env.Timeout(1, nil)); err != nil {
//				return nil, err
//			}
//		}
//		return "done", nil
//	})
//	if _, err := env.Run(nil); err != nil {
//		log.Fatal(err)
//	}
//
// # Error handling
//
// Failures come in two flavors: *local* failures thrown into a process's
// routine (which the routine may recover from), and *global* failures that
// escape [Environment.Step] because nothing defused them — these abort
// [Environment.Run]. See [ValueError], [RuntimeError], and [Interrupt].
package desim
