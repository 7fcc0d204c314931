package desim

import "fmt"

// Evaluator decides whether a Condition has been satisfied, given its full
// child list and a map of the values collected so far from children that
// have already completed.
type Evaluator func(children []*Event, interim map[*Event]any) bool

// EvaluateAllOf is the all-of predicate: true once every child has
// completed (vacuously true for zero children).
func EvaluateAllOf(children []*Event, interim map[*Event]any) bool {
	return len(interim) == len(children)
}

// EvaluateAnyOf is the any-of predicate: true once at least one child has
// completed, or there were no children to begin with.
func EvaluateAnyOf(children []*Event, interim map[*Event]any) bool {
	return len(interim) > 0 || len(children) == 0
}

// Condition is a composite Event over a list of children, triggered when
// an and/or predicate over those children becomes true, and failed (with
// the child's error, and the child marked defused) as soon as any child
// fails. Conditions may nest: a Condition that is itself a child of
// another Condition is flattened away when results are collected, so the
// outer Condition's final value always maps leaf events to their values.
type Condition struct {
	Event

	evaluate      Evaluator
	children      []*Event
	subConditions []*Condition
	interim       map[*Event]any
}

// NewCondition constructs a Condition over children, consulting evaluate
// as each child completes. Each child must belong to env and must not
// already have been processed (a triggered child that is still waiting in
// the queue, such as a fresh timeout, is admitted); violating either admits a kernel invariant
// violation and NewCondition panics with *RuntimeError, the same way
// Environment.Timeout panics on a negative delay. Callers that need the
// error-returning form (e.g. when merging into an existing Condition
// in-place) should use (*Condition).And / (*Condition).Or instead, which
// surface *RuntimeError as a normal return value.
//
// If evaluate is already satisfied by the (still empty) interim map —
// possible for EvaluateAllOf with zero children, or EvaluateAnyOf with
// zero children — the Condition succeeds immediately with an empty result
// map.
func NewCondition(env *Environment, evaluate Evaluator, children []*Event) *Condition {
	c := &Condition{
		Event:    Event{env: env, desc: "Condition"},
		evaluate: evaluate,
		interim:  make(map[*Event]any),
	}
	c.conditionOwner = c
	for _, child := range children {
		if err := c.addEvent(child); err != nil {
			// Admission errors are kernel invariant violations (mixing
			// environments, adding an already-processed child) and are
			// raised synchronously, matching the original's
			// RuntimeError-on-construction behavior.
			panic(err)
		}
	}

	if err := c.addCallback(c.collectValues); err != nil {
		panic(err)
	}

	if c.evaluate(c.children, c.interim) {
		_, _ = c.Succeed(map[*Event]any{})
	}

	return c
}

// NewAllOf constructs a Condition that succeeds once every child has
// succeeded, or fails as soon as any child fails.
func NewAllOf(env *Environment, children []*Event) *Condition {
	return NewCondition(env, EvaluateAllOf, children)
}

// NewAnyOf constructs a Condition that succeeds as soon as any child
// succeeds, or fails as soon as any child fails.
func NewAnyOf(env *Environment, children []*Event) *Condition {
	return NewCondition(env, EvaluateAnyOf, children)
}

// AllOf is the Environment factory for NewAllOf.
func (env *Environment) AllOf(children []*Event) *Condition {
	return NewAllOf(env, children)
}

// AnyOf is the Environment factory for NewAnyOf.
func (env *Environment) AnyOf(children []*Event) *Condition {
	return NewAnyOf(env, children)
}

// addEvent admits a single child into the Condition: env must match, the
// child must not already have been processed, and — if the child is itself
// a Condition — it is recorded for later flattening.
func (c *Condition) addEvent(child *Event) error {
	if c.env != child.env {
		return &RuntimeError{Message: "it is not allowed to mix events from different environments"}
	}
	if child.processed {
		return &RuntimeError{Message: "event " + child.String() + " has already been triggered"}
	}

	if sub, ok := childAsCondition(child); ok {
		c.subConditions = append(c.subConditions, sub)
	}

	c.children = append(c.children, child)
	if err := child.addCallback(c.check); err != nil {
		return err
	}
	return nil
}

// childAsCondition reports whether e is (the Event embedded in) a
// Condition, recovering the *Condition pointer if so.
func childAsCondition(e *Event) (*Condition, bool) {
	if e.conditionOwner != nil {
		return e.conditionOwner, true
	}
	return nil, false
}

// check is registered as a callback on every child. When a child
// completes, it records the child's value, and if the child failed,
// defuses it and fails the Condition (short-circuiting); otherwise it
// re-consults evaluate and succeeds the Condition if satisfied.
func (c *Condition) check(child *Event) {
	c.interim[child] = child.value

	if c.triggered {
		return
	}

	if !child.ok {
		child.defused = true
		c.logConditionShortCircuit(child)
		_, _ = c.Fail(child.value.(error))
		return
	}

	if c.evaluate(c.children, c.interim) {
		_, _ = c.Succeed(map[*Event]any{})
	}
}

// collectValues is registered as a callback on the Condition itself. On
// the success path, it replaces the placeholder empty map set by Succeed
// with a flat map of leaf-event -> value, recursively pulling in and
// discarding the entries of any nested sub-conditions.
func (c *Condition) collectValues(self *Event) {
	if !self.ok {
		return
	}
	self.value = c.flattenedValues()
}

// flattenedValues recursively flattens nested Conditions' interim values
// into a single map keyed by leaf event.
func (c *Condition) flattenedValues() map[*Event]any {
	values := make(map[*Event]any, len(c.interim))
	for k, v := range c.interim {
		values[k] = v
	}
	for _, sub := range c.subConditions {
		delete(values, &sub.Event)
		for k, v := range sub.flattenedValues() {
			values[k] = v
		}
	}
	return values
}

// And merges other into this Condition's own child list in-place if this
// is an all-of Condition; otherwise And falls back to constructing a new
// all-of Condition over [c, other] (the non-in-place `&` form). Use
// c.Event.And / c.Event.Or for the non-in-place form explicitly.
func (c *Condition) And(other *Event) (*Condition, error) {
	if !c.isSameKind(EvaluateAllOf) {
		return NewCondition(c.env, EvaluateAllOf, []*Event{&c.Event, other}), nil
	}
	if err := c.addEvent(other); err != nil {
		return nil, err
	}
	return c, nil
}

// Or merges other into this Condition in-place if this is an any-of
// Condition; otherwise it falls back to constructing a new any-of
// Condition over [c, other].
func (c *Condition) Or(other *Event) (*Condition, error) {
	if !c.isSameKind(EvaluateAnyOf) {
		return NewCondition(c.env, EvaluateAnyOf, []*Event{&c.Event, other}), nil
	}
	if err := c.addEvent(other); err != nil {
		return nil, err
	}
	return c, nil
}

// isSameKind reports whether this Condition's evaluator is the very same
// function as want (e.g. EvaluateAllOf vs EvaluateAllOf). Go func values
// are not comparable with ==, so identity is taken via each value's entry
// point address instead — stable for any two references to the same
// top-level function, which is how NewAllOf/NewAnyOf and Environment.AllOf/
// AnyOf always construct Conditions.
func (c *Condition) isSameKind(want Evaluator) bool {
	return evaluatorAddr(c.evaluate) == evaluatorAddr(want)
}

func evaluatorAddr(e Evaluator) string {
	return fmt.Sprintf("%p", e)
}

// String returns a short debugging description.
func (c *Condition) String() string {
	return fmt.Sprintf("Condition(%d children)", len(c.children))
}
