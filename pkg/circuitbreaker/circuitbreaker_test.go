package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return NewCircuitBreaker("test", Config{
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	})
}

func TestCircuitBreaker_TripsAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(time.Minute)
	boom := errors.New("downstream unavailable")

	for i := 0; i < 3; i++ {
		if err := cb.Execute(func() error { return boom }); !errors.Is(err, boom) {
			t.Fatalf("Execute() error = %v, want %v", err, boom)
		}
	}

	if got := cb.State(); got != StateOpen {
		t.Fatalf("State() = %v, want OPEN", got)
	}

	// 打开后快速失败，不再调用下游
	called := false
	err := cb.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("Execute() error = %v, want ErrOpenState", err)
	}
	if called {
		t.Error("request should not reach downstream while open")
	}
}

func TestCircuitBreaker_SuccessResetsConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(time.Minute)
	boom := errors.New("fail")

	cb.Execute(func() error { return boom })
	cb.Execute(func() error { return boom })
	cb.Execute(func() error { return nil })
	cb.Execute(func() error { return boom })
	cb.Execute(func() error { return boom })

	if got := cb.State(); got != StateClosed {
		t.Fatalf("State() = %v, want CLOSED", got)
	}
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(20 * time.Millisecond)
	boom := errors.New("fail")

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return boom })
	}
	if got := cb.State(); got != StateOpen {
		t.Fatalf("State() = %v, want OPEN", got)
	}

	time.Sleep(30 * time.Millisecond)

	if got := cb.State(); got != StateHalfOpen {
		t.Fatalf("State() = %v, want HALF_OPEN", got)
	}

	// 探测成功，恢复CLOSED
	if err := cb.Execute(func() error { return nil }); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}
	if got := cb.State(); got != StateClosed {
		t.Errorf("State() = %v, want CLOSED", got)
	}
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(20 * time.Millisecond)
	boom := errors.New("fail")

	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return boom })
	}

	time.Sleep(30 * time.Millisecond)

	cb.Execute(func() error { return boom })
	if got := cb.State(); got != StateOpen {
		t.Errorf("State() = %v, want OPEN", got)
	}
}

func TestCircuitBreaker_StateChangeCallback(t *testing.T) {
	cb := newTestBreaker(time.Minute)

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from State, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	boom := errors.New("fail")
	for i := 0; i < 3; i++ {
		cb.Execute(func() error { return boom })
	}

	if len(transitions) != 1 || transitions[0] != "CLOSED->OPEN" {
		t.Errorf("transitions = %v, want [CLOSED->OPEN]", transitions)
	}
}
