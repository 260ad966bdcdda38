package search

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSingleLimits(t *testing.T) {
	limiter := LimiterLike(NewLimiter())
	limiter.Reset()

	if !limiter.Ok(1000000) {
		t.Error("Default limiter should search infinitely")
	}

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset()
	if ok := limiter.Ok(101); ok {
		t.Errorf("<Nodes=%d: ok=%v, want=%v", 101, ok, !ok)
	}

	if ok := limiter.Ok(99); !ok {
		t.Errorf(">Nodes=%d: ok=%v, want=%v", 99, ok, !ok)
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(100))
	limiter.Reset()
	time.Sleep(time.Millisecond * 101)

	if ok := limiter.Ok(1); ok {
		t.Errorf("<Movetime: ok=%v, want=%v", ok, !ok)
	}

	limiter.Reset()
	if ok := limiter.Ok(1); !ok {
		t.Errorf(">Movetime: ok=%v, want=%v", ok, !ok)
	}
}

func TestLimiterStopReason(t *testing.T) {
	limiter := LimiterLike(NewLimiter())
	limiter.SetLimits(DefaultLimits().SetNodes(10).SetMovetime(50))
	limiter.Reset()
	time.Sleep(time.Millisecond * 51)

	limiter.EvaluateStopReason(20)
	if reason := limiter.StopReason(); reason != StopMovetime|StopNodes {
		t.Errorf("reason=%s, want Movetime|Nodes", reason)
	}

	ctx, cancel := context.WithCancel(context.Background())
	limiter.SetContext(ctx)
	limiter.SetLimits(DefaultLimits())
	limiter.Reset()
	cancel()

	if limiter.Ok(1) {
		t.Error("cancelled context should stop the limiter")
	}
	limiter.EvaluateStopReason(1)
	if reason := limiter.StopReason(); reason != StopInterrupt {
		t.Errorf("reason=%s, want Interrupt", reason)
	}
}

func TestStopReasonString(t *testing.T) {
	tests := map[StopReason]string{
		StopNone:                     "None",
		StopInterrupt:                "Interrupt",
		StopMovetime | StopNodes:     "Movetime|Nodes",
		StopInterrupt | StopMovetime: "Interrupt|Movetime",
	}

	for reason, want := range tests {
		if got := reason.String(); got != want {
			t.Errorf("%d.String()=%q, want %q", int(reason), got, want)
		}
	}
}

func TestLimitsInfinite(t *testing.T) {
	limits := DefaultLimits()
	if !limits.Infinite {
		t.Fatal("default limits should be infinite")
	}

	limits.SetMovetime(10)
	if limits.Infinite {
		t.Error("movetime should make the limits finite")
	}

	limits.SetMovetime(-5).SetNodes(0)
	if !limits.Infinite || limits.Movetime != DefaultMovetimeLimit {
		t.Errorf("clearing every limit should make them infinite again, got %s", limits)
	}
}
