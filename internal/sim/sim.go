// Package sim plays the game headlessly with a simple autopilot. Runs are
// deterministic for a given seed: time comes from a manual clock advanced
// one frame per step.
package sim

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/logging"
)

// Options configures a simulation.
type Options struct {
	Config   config.FlappyConfig
	Seed     int64
	MaxTicks int     // Stop after this many frames; 0 means DefaultMaxTicks
	Width    float64 // Playfield size in px; 0 uses the viewport maximum
	Height   float64
	Pilot    Autopilot
	Logger   *log.Logger
}

// DefaultMaxTicks bounds a simulation that never loses.
const DefaultMaxTicks = 60 * 60 * 5

// ctxCheckEvery is how often, in frames, the loop looks at ctx.
const ctxCheckEvery = 1024

// Summary describes a finished simulation.
type Summary struct {
	Seed          int64
	Ticks         int
	Score         int
	Lives         int
	Collisions    int
	Flaps         int
	ObstaclesSeen int
	Elapsed       time.Duration // Simulated time
	GameOver      bool
}

// Autopilot flaps whenever the bird's centre sinks below the centre of
// the next gap while falling.
type Autopilot struct {
	Margin float64 // Dead zone around the gap centre, in px
}

// ShouldFlap decides the input for one frame.
func (a Autopilot) ShouldFlap(s flappy.Snapshot) bool {
	target := s.Field.Height / 2
	if next, ok := s.NextObstacle(); ok {
		target = (next.GapTop + next.GapBottom) / 2
	}
	centre := s.Bird.Position + s.BirdSize/2
	return s.Bird.Velocity >= 0 && centre > target+a.Margin
}

// Run plays one game until it ends, MaxTicks frames pass, or ctx is done.
func Run(ctx context.Context, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	maxTicks := opts.MaxTicks
	if maxTicks <= 0 {
		maxTicks = DefaultMaxTicks
	}
	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = opts.Config.Viewport.MaxWidth
	}
	if height <= 0 {
		height = opts.Config.Viewport.MaxHeight
	}

	start := time.Unix(0, 0).UTC()
	clock := flappy.NewManualClock(start)
	sched := flappy.NewFrameScheduler()
	sum := Summary{Seed: opts.Seed}
	seen := make(map[uint64]struct{})

	e := flappy.New(opts.Config,
		flappy.WithClock(clock),
		flappy.WithScheduler(sched),
		flappy.WithSeed(opts.Seed),
		flappy.WithViewport(width, height),
		flappy.WithLogger(logger),
		flappy.WithHooks(flappy.Hooks{
			OnCollision: func(ev flappy.CollisionEvent) {
				sum.Collisions++
				logger.Debug("collision", "source", ev.Source, "lives", ev.LivesLeft)
			},
			OnGameOver: func(flappy.GameOverEvent) { sum.GameOver = true },
		}),
	)

	e.Start()
	frame := opts.Config.Physics.Frame
	for sum.Ticks < maxTicks && sched.Active() {
		if sum.Ticks%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
		}

		snap := e.Snapshot()
		for _, o := range snap.Obstacles {
			seen[o.ID] = struct{}{}
		}
		if opts.Pilot.ShouldFlap(snap) {
			e.Jump()
			sum.Flaps++
		}

		clock.Advance(frame)
		sched.Fire(sched.Generation())
		sum.Ticks++
	}

	for _, o := range e.Snapshot().Obstacles {
		seen[o.ID] = struct{}{}
	}
	sum.Score = e.Score()
	sum.Lives = e.Lives()
	sum.ObstaclesSeen = len(seen)
	sum.Elapsed = clock.Now().Sub(start)

	logger.Info("simulation finished",
		"seed", sum.Seed,
		"ticks", sum.Ticks,
		"score", sum.Score,
		"lives", sum.Lives,
		"collisions", sum.Collisions,
		"obstacles", sum.ObstaclesSeen,
	)
	return sum, nil
}
