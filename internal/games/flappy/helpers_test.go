package flappy

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// scriptedRand replays vals in a loop.
type scriptedRand struct {
	vals []float64
	i    int
}

func (r *scriptedRand) Float64() float64 {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v
}

var testEpoch = time.Unix(1_700_000_000, 0)

// newTestEngine builds an engine on a 400x600 playfield with a manual clock,
// a frame scheduler and a rand that always yields 0.5 (gap top 160, widths
// 100, offsets 0).
func newTestEngine(t *testing.T, cfg config.FlappyConfig, opts ...Option) (*Engine, *ManualClock, *FrameScheduler) {
	t.Helper()
	clock := NewManualClock(testEpoch)
	sched := NewFrameScheduler()
	base := []Option{
		WithClock(clock),
		WithScheduler(sched),
		WithRand(&scriptedRand{vals: []float64{0.5}}),
		WithViewport(400, 600),
	}
	return New(cfg, append(base, opts...)...), clock, sched
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func ptr(v float64) *float64 { return &v }

// recorder collects every hook call in order.
type recorder struct {
	events []Event
}

func (r *recorder) hooks() Hooks {
	return Hooks{
		OnCollision:      func(ev CollisionEvent) { r.events = append(r.events, ev) },
		OnScoreIncrement: func(ev ScoreEvent) { r.events = append(r.events, ev) },
		OnGameOver:       func(ev GameOverEvent) { r.events = append(r.events, ev) },
		OnRestart:        func(ev RestartEvent) { r.events = append(r.events, ev) },
		OnPhaseChange:    func(ev PhaseChangeEvent) { r.events = append(r.events, ev) },
	}
}

func countOf[T Event](r *recorder) int {
	n := 0
	for _, ev := range r.events {
		if _, ok := ev.(T); ok {
			n++
		}
	}
	return n
}
