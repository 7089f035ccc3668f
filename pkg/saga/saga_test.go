package saga

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSaga_Execute_Success(t *testing.T) {
	var executed []string

	s := NewSaga(5 * time.Second)
	s.AddStep("reserve stock",
		func(ctx context.Context) error {
			executed = append(executed, "reserve stock")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "release stock")
			return nil
		},
	)
	s.AddStep("create order",
		func(ctx context.Context) error {
			executed = append(executed, "create order")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "delete order")
			return nil
		},
	)

	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v, want nil", err)
	}

	want := []string{"reserve stock", "create order"}
	if len(executed) != len(want) {
		t.Fatalf("executed = %v, want %v", executed, want)
	}
	for i := range want {
		if executed[i] != want[i] {
			t.Errorf("executed[%d] = %s, want %s", i, executed[i], want[i])
		}
	}
}

func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	var executed []string
	boom := errors.New("payment declined")

	s := NewSaga(5 * time.Second)
	s.AddStep("reserve stock",
		func(ctx context.Context) error {
			executed = append(executed, "reserve stock")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "release stock")
			return nil
		},
	)
	s.AddStep("create order",
		func(ctx context.Context) error {
			executed = append(executed, "create order")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "delete order")
			return nil
		},
	)
	s.AddStep("charge payment",
		func(ctx context.Context) error {
			return boom
		},
		func(ctx context.Context) error {
			t.Error("compensate should not run for the failed step itself")
			return nil
		},
	)

	err := s.Execute(context.Background())
	if err == nil {
		t.Fatal("Execute() error = nil, want failure")
	}
	if !errors.Is(err, boom) {
		t.Errorf("Execute() error = %v, want wrapped %v", err, boom)
	}

	// 补偿按逆序执行，且不包含失败步骤本身
	want := []string{"reserve stock", "create order", "delete order", "release stock"}
	if len(executed) != len(want) {
		t.Fatalf("executed = %v, want %v", executed, want)
	}
	for i := range want {
		if executed[i] != want[i] {
			t.Errorf("executed[%d] = %s, want %s", i, executed[i], want[i])
		}
	}
}

func TestSaga_Execute_Timeout(t *testing.T) {
	var compensated bool

	s := NewSaga(50 * time.Millisecond)
	s.AddStep("slow step",
		func(ctx context.Context) error {
			select {
			case <-time.After(time.Second):
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		},
		func(ctx context.Context) error {
			compensated = true
			return nil
		},
	)

	err := s.Execute(context.Background())
	if err == nil {
		t.Fatal("Execute() error = nil, want timeout")
	}
	if compensated {
		t.Error("failed step itself should not be compensated")
	}
}
