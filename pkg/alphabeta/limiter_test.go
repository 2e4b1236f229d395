package alphabeta

import (
	"context"
	"testing"
	"time"
)

func TestLimiterSingleLimits(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Reset()

	for i := 0; i < 1000; i++ {
		if !limiter.Step() || !limiter.Depth(uint32(i)) {
			t.Fatal("Default limiter should search infinitely")
		}
	}

	limiter.SetLimits(DefaultLimits().SetNodes(100))
	limiter.Reset()
	for i := 0; i < 99; i++ {
		if !limiter.Step() {
			t.Fatalf("<Nodes=%d: ok=false, want=true", i+1)
		}
	}
	if limiter.Step() {
		t.Errorf(">=Nodes=%d: ok=true, want=false", limiter.Nodes())
	}
	if limiter.StopReason() != StopNodes {
		t.Errorf("StopReason=%v, want=%v", limiter.StopReason(), StopNodes)
	}

	limiter.SetLimits(DefaultLimits().SetDepth(3))
	limiter.Reset()
	if !limiter.Depth(2) {
		t.Errorf("<Depth: ok=false, want=true")
	}
	if limiter.Depth(3) {
		t.Errorf(">=Depth: ok=true, want=false")
	}
	// steps don't care about the depth
	if !limiter.Step() {
		t.Errorf("Step after depth limit: ok=false, want=true")
	}

	limiter.SetLimits(DefaultLimits().SetMovetime(50))
	limiter.Reset()
	time.Sleep(time.Millisecond * 51)

	if limiter.Step() {
		t.Errorf(">Movetime: ok=true, want=false")
	}

	limiter.Reset()
	if !limiter.Step() {
		t.Errorf("<Movetime: ok=false, want=true")
	}
}

func TestLimiterCombos(t *testing.T) {
	limiter := NewLimiter(DefaultLimits().SetNodes(10).SetMovetime(50))
	limiter.Reset()

	for i := 0; i < 9; i++ {
		limiter.Step()
	}
	time.Sleep(time.Millisecond * 51)
	if limiter.Step() {
		t.Fatal("Nodes+Movetime: ok=true, want=false")
	}

	want := StopNodes | StopMovetime
	if limiter.StopReason() != want {
		t.Errorf("StopReason=%v, want=%v", limiter.StopReason(), want)
	}
	if s := limiter.StopReason().String(); s != "Movetime|Nodes" {
		t.Errorf("StopReason.String()=%q", s)
	}
}

func TestLimiterInfiniteIgnoresLimits(t *testing.T) {
	limiter := NewLimiter(DefaultLimits().SetNodes(1).SetDepth(1).SetInfinite(true))
	limiter.Reset()

	if !limiter.Step() || !limiter.Step() || !limiter.Depth(5) {
		t.Fatal("Infinite limiter stopped on limits")
	}

	limiter.SetStop(true)
	if limiter.Step() {
		t.Error("Infinite limiter ignored the stop signal")
	}
	if limiter.StopReason() != StopInterrupt {
		t.Errorf("StopReason=%v, want=%v", limiter.StopReason(), StopInterrupt)
	}
}

func TestLimiterContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	limiter := NewLimiter(nil)
	limiter.SetContext(ctx)
	limiter.Reset()

	if !limiter.Step() {
		t.Fatal("Step before cancel: ok=false, want=true")
	}
	cancel()
	if limiter.Depth(1) {
		t.Error("Depth after cancel: ok=true, want=false")
	}
	if !limiter.Stop() {
		t.Error("Stop() should report the cancelled context")
	}
}
