package flappy

import (
	"testing"
	"time"
)

func TestFrameSchedulerGenerations(t *testing.T) {
	s := NewFrameScheduler()
	if s.Active() || s.Fire(s.Generation()) {
		t.Fatal("new scheduler should be idle")
	}

	var a, b int
	cancelA := s.Schedule(func() { a++ })
	genA := s.Generation()
	if !s.Fire(genA) || a != 1 {
		t.Fatalf("first loop did not fire: a=%d", a)
	}

	cancelA()
	if s.Active() || s.Fire(genA) {
		t.Error("cancelled loop still fires")
	}

	cancelB := s.Schedule(func() { b++ })
	genB := s.Generation()
	if genB == genA {
		t.Fatal("generation did not advance")
	}
	if s.Fire(genA) {
		t.Error("stale generation fired the new loop")
	}

	// A late cancel from an older loop must not stop the current one.
	cancelA()
	if !s.Fire(genB) || b != 1 {
		t.Errorf("current loop stopped by stale cancel: b=%d", b)
	}

	cancelB()
	cancelB()
	if s.Active() {
		t.Error("still active after cancel")
	}
}

func TestFrameSchedulerCancelFromFrame(t *testing.T) {
	s := NewFrameScheduler()
	var cancel CancelFunc
	cancel = s.Schedule(func() { cancel() })

	if !s.Fire(s.Generation()) {
		t.Fatal("frame did not run")
	}
	if s.Active() {
		t.Error("frame that cancelled itself left the loop active")
	}
}

func TestManualClock(t *testing.T) {
	c := NewManualClock(testEpoch)
	c.Advance(1500 * time.Millisecond)
	if got := c.Now().Sub(testEpoch); got != 1500*time.Millisecond {
		t.Errorf("elapsed = %v, want 1.5s", got)
	}
	c.Set(testEpoch)
	if !c.Now().Equal(testEpoch) {
		t.Errorf("Now = %v after Set", c.Now())
	}
}

func TestPhaseAndSourceNames(t *testing.T) {
	names := map[string]string{
		PhaseIdle.String():     "idle",
		PhasePlaying.String():  "playing",
		PhaseGameOver.String(): "game_over",
		HitTop.String():        "top",
		HitBottom.String():     "bottom",
		HitBounds.String():     "bounds",
	}
	for got, want := range names {
		if got != want {
			t.Errorf("name = %q, want %q", got, want)
		}
	}
}
