package desim

import (
	"errors"
	"testing"
)

func TestEvent_ValueBeforeTrigger(t *testing.T) {
	env := NewEnvironment()
	e := env.Event()

	if _, err := e.Value(); !errors.Is(err, ErrValueNotReady) {
		t.Fatalf("expected ErrValueNotReady, got %v", err)
	}
}

func TestEvent_SucceedSchedulesAndSetsValue(t *testing.T) {
	env := NewEnvironment()
	e := env.Event()

	if _, err := e.Succeed(42); err != nil {
		t.Fatalf("succeed: %v", err)
	}
	if !e.Triggered() {
		t.Fatal("expected event to be triggered immediately")
	}
	if env.Peek() != 0 {
		t.Fatalf("expected event scheduled at now (0), got %v", env.Peek())
	}

	if _, err := env.Run(nil); err != nil {
		t.Fatalf("run: %v", err)
	}

	v, err := e.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	if v != 42 {
		t.Fatalf("expected value 42, got %v", v)
	}
}

func TestEvent_DoubleSucceedFails(t *testing.T) {
	env := NewEnvironment()
	e := env.Event()

	if _, err := e.Succeed(1); err != nil {
		t.Fatalf("first succeed: %v", err)
	}

	_, err := e.Succeed(2)
	var rerr *RuntimeError
	if !errors.As(err, &rerr) {
		t.Fatalf("expected *RuntimeError on double succeed, got %v", err)
	}
}

func TestEvent_FailRequiresNonNilError(t *testing.T) {
	env := NewEnvironment()
	e := env.Event()

	_, err := e.Fail(nil)
	var verr *ValueError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValueError for nil fail, got %v", err)
	}
}

func TestEvent_UnhandledFailurePropagatesFromRun(t *testing.T) {
	env := NewEnvironment()
	e := env.Event()
	boom := errors.New("boom")

	if _, err := e.Fail(boom); err != nil {
		t.Fatalf("fail: %v", err)
	}

	_, err := env.Run(nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected run to propagate boom, got %v", err)
	}
}

func TestEvent_AndProducesAllOfCondition(t *testing.T) {
	env := NewEnvironment()
	a := env.Timeout(1, "a")
	b := env.Timeout(2, "b")

	cond := a.And(b)
	val, err := env.Run(cond)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	values, ok := val.(map[*Event]any)
	if !ok {
		t.Fatalf("expected map[*Event]any, got %T", val)
	}
	if values[a] != "a" || values[b] != "b" {
		t.Fatalf("unexpected flattened values: %v", values)
	}
}
