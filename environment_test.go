package desim

import (
	"errors"
	"math"
	"testing"
)

func TestEnvironment_PeekIsInfiniteWhenEmpty(t *testing.T) {
	env := NewEnvironment()
	if !math.IsInf(env.Peek(), 1) {
		t.Fatalf("expected +Inf, got %v", env.Peek())
	}
}

func TestEnvironment_RunNilDrainsQueue(t *testing.T) {
	env := NewEnvironment()
	env.Timeout(1, nil)
	env.Timeout(2, nil)

	val, err := env.Run(nil)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if val != nil {
		t.Fatalf("expected nil, got %v", val)
	}
	if env.Now() != 2 {
		t.Fatalf("expected now == 2, got %v", env.Now())
	}
}

func TestEnvironment_RunUntilNumberStopsEarly(t *testing.T) {
	env := NewEnvironment()
	env.Timeout(5, "late")
	env.Timeout(10, "later")

	val, err := env.Run(5)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if val != nil {
		t.Fatalf("expected nil, got %v", val)
	}
	if env.Now() > 5 {
		t.Fatalf("expected now <= 5, got %v", env.Now())
	}
}

func TestEnvironment_RunRejectsPastUntil(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Run(5); err != nil {
		t.Fatalf("run: %v", err)
	}

	_, err := env.Run(5)
	var verr *ValueError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValueError, got %v", err)
	}
}

func TestEnvironment_WithInitialTime(t *testing.T) {
	env := NewEnvironment(WithInitialTime(100))
	if env.Now() != 100 {
		t.Fatalf("expected now == 100, got %v", env.Now())
	}
}

func TestEnvironment_ExitStopsProcessEarly(t *testing.T) {
	env := NewEnvironment()
	proc := env.Process(func(p *Process) (any, error) {
		env.Exit("early")
		panic("unreachable")
	})

	val, err := env.Run(proc)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if val != "early" {
		t.Fatalf("expected %q, got %v", "early", val)
	}
}
