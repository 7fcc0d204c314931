package desim

import (
	"sort"
	"testing"
)

func TestCondition_AllOfOverTimeouts(t *testing.T) {
	env := NewEnvironment()
	var timeouts []*Event
	for i := 0; i < 10; i++ {
		timeouts = append(timeouts, env.Timeout(float64(i), i))
	}

	cond := env.AllOf(timeouts)
	val, err := env.Run(cond)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	values := val.(map[*Event]any)
	if len(values) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(values))
	}
	for i, e := range timeouts {
		if values[e] != i {
			t.Fatalf("expected timeouts[%d] == %d, got %v", i, i, values[e])
		}
	}
	if env.Now() != 9 {
		t.Fatalf("expected now == 9, got %v", env.Now())
	}
}

func TestCondition_AllOfWithFailingChild(t *testing.T) {
	env := NewEnvironment()
	t0 := env.Timeout(1, 1)
	t2 := env.Timeout(3, 3)

	proc := env.Process(func(p *Process) (any, error) {
		if _, err := p.Yield(env.Timeout(2, nil)); err != nil {
			return nil, err
		}
		return nil, &ValueError{Message: "crashing"}
	})

	cond := env.AllOf([]*Event{t0, &proc.Event, t2})
	_, err := env.Run(cond)
	if err == nil {
		t.Fatal("expected the all-of to fail")
	}
	if env.Now() != 2 {
		t.Fatalf("expected now == 2, got %v", env.Now())
	}
}

func TestCondition_AnyOf(t *testing.T) {
	env := NewEnvironment()
	var timeouts []*Event
	for i := 0; i < 10; i++ {
		timeouts = append(timeouts, env.Timeout(float64(i), i))
	}

	cond := env.AnyOf(timeouts)
	val, err := env.Run(cond)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	values := val.(map[*Event]any)
	if len(values) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(values))
	}
	if values[timeouts[0]] != 0 {
		t.Fatalf("expected timeouts[0] == 0, got %v", values[timeouts[0]])
	}
	if env.Now() != 0 {
		t.Fatalf("expected now == 0, got %v", env.Now())
	}
}

func TestCondition_NestedMixedComposite(t *testing.T) {
	env := NewEnvironment()
	t0 := env.Timeout(0, 0)
	t1 := env.Timeout(1, 1)
	t2 := env.Timeout(2, 2)

	merged := t0.And(t2)
	cond, err := merged.Or(t1)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}
	val, err := env.Run(cond)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	values := val.(map[*Event]any)
	if len(values) != 2 {
		t.Fatalf("expected 2 entries, got %d: %v", len(values), values)
	}
	if values[t0] != 0 || values[t1] != 1 {
		t.Fatalf("unexpected values: %v", values)
	}
	if _, present := values[t2]; present {
		t.Fatalf("t2 should not have fired yet: %v", values)
	}
	if env.Now() != 1 {
		t.Fatalf("expected now == 1, got %v", env.Now())
	}
}

func TestCondition_ChainingFlattensSubConditions(t *testing.T) {
	env := NewEnvironment()
	a := env.AllOf([]*Event{env.Timeout(0, 0), env.Timeout(1, 1)})
	b := env.AllOf([]*Event{env.Timeout(0, 0), env.Timeout(1, 1)})

	merged, err := a.And(&b.Event)
	if err != nil {
		t.Fatalf("merge: %v", err)
	}

	val, err := env.Run(merged)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	values := val.(map[*Event]any)
	var got []int
	for _, v := range values {
		got = append(got, v.(int))
	}
	sort.Ints(got)
	want := []int{0, 0, 1, 1}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestCondition_ResultIsImmutableAfterProcessing(t *testing.T) {
	env := NewEnvironment()
	t0 := env.Timeout(0, 0)
	t1 := env.Timeout(1, 1)
	t2 := env.Timeout(2, 2)

	sub := t1.And(t2)
	cond := t0.Or(&sub.Event)
	val, err := env.Run(cond)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	first := val.(map[*Event]any)
	if len(first) != 1 || first[t0] != 0 {
		t.Fatalf("expected {t0: 0}, got %v", first)
	}
	if env.Now() != 0 {
		t.Fatalf("expected now == 0, got %v", env.Now())
	}

	if _, err := env.Run(2); err != nil {
		t.Fatalf("run: %v", err)
	}

	again, err := cond.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	second := again.(map[*Event]any)
	if len(second) != 1 || second[t0] != 0 {
		t.Fatalf("expected the captured result to stay {t0: 0}, got %v", second)
	}
}

func TestCondition_RejectsAlreadyTriggeredChild(t *testing.T) {
	env := NewEnvironment()
	e := env.Event()
	if _, err := e.Succeed(1); err != nil {
		t.Fatalf("succeed: %v", err)
	}
	if _, err := env.Run(nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic admitting an already-triggered child")
		}
		if _, ok := r.(*RuntimeError); !ok {
			t.Fatalf("expected *RuntimeError, got %T", r)
		}
	}()
	env.AllOf([]*Event{e})
}

func TestCondition_RejectsMixedEnvironments(t *testing.T) {
	env1 := NewEnvironment()
	env2 := NewEnvironment()
	e1 := env1.Event()
	e2 := env2.Event()

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic mixing environments")
		}
		if _, ok := r.(*RuntimeError); !ok {
			t.Fatalf("expected *RuntimeError, got %T", r)
		}
	}()
	env1.AllOf([]*Event{e1, e2})
}
