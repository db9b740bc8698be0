// Package flappy implements the side-scrolling avoidance game engine:
// a bird under gravity, a track of paired obstacles, debounced collisions,
// scoring and the idle/playing/game-over lifecycle.
//
// The engine is not safe for concurrent use. Every method, including the
// frame callback handed to the Scheduler, must run on one goroutine.
package flappy

import (
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for frame deltas and cooldowns.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithRand sets the random source used for obstacle generation.
func WithRand(r RandSource) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds a private math/rand source.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

// WithScheduler sets the frame scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithHooks registers a hook set.
func WithHooks(h Hooks) Option {
	return func(e *Engine) { e.hooks = append(e.hooks, h) }
}

// WithLogger sets the logger for lifecycle and collision debug output.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// WithViewport sets the initial playfield size in px.
func WithViewport(width, height float64) Option {
	return func(e *Engine) { e.width, e.height = width, height }
}

// Playfield is the sanitized geometry used for one tick.
type Playfield struct {
	Width  float64
	Height float64
}

// Engine runs one game session.
type Engine struct {
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager
	clock      Clock
	rng        RandSource
	sched      Scheduler
	logger     *log.Logger
	hooks      []Hooks

	body     Body
	track    *Track
	detector Detector
	scorer   Scorer

	phase         Phase
	score         int
	lives         int
	lastCollision time.Time

	// Raw viewport as last reported; sanitized on use.
	width  float64
	height float64

	// Per-run bookkeeping.
	cancel     CancelFunc
	lastTick   time.Time
	startedAt  time.Time
	ticks      int
	collisions int

	// Events collected by the call in progress.
	pending []Event
}

// New creates an engine in the Idle phase.
func New(cfg config.FlappyConfig, opts ...Option) *Engine {
	e := &Engine{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		width:      cfg.Viewport.MaxWidth,
		height:     cfg.Viewport.MaxHeight,
		detector:   Detector{Cooldown: cfg.Session.CollisionCooldown},
		scorer:     Scorer{BirdLeft: cfg.Bird.Left},
		track:      NewTrack(cfg.Obstacles),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if e.sched == nil {
		e.sched = NewFrameScheduler()
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}

	e.body = NewBody(cfg.Physics.Gravity, cfg.Physics.JumpStrength, 0)
	e.reset()
	return e
}

// AddHooks registers another hook set. Hook sets run in registration order.
func (e *Engine) AddHooks(h Hooks) {
	e.hooks = append(e.hooks, h)
}

// Config returns the engine configuration.
func (e *Engine) Config() config.FlappyConfig { return e.cfg }

// Phase returns the current phase.
func (e *Engine) Phase() Phase { return e.phase }

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// Playfield returns the sanitized playfield for the current viewport.
func (e *Engine) Playfield() Playfield {
	w, h := e.width, e.height
	if !core.Finite(w) || w < e.cfg.Playfield.MinWidth {
		w = e.cfg.Playfield.MinWidth
	}
	if minH := e.cfg.MinViableHeight(); !core.Finite(h) || h < minH {
		h = minH
	}
	return Playfield{Width: w, Height: h}
}

func (e *Engine) floor(field Playfield) float64 {
	return math.Max(0, field.Height-e.cfg.Bird.Size)
}

// Resize records a new viewport. It never resets the game; the bird is only
// pulled back inside the playfield if the new height requires it.
func (e *Engine) Resize(width, height float64) {
	e.width, e.height = width, height
	e.body.Position = core.ClampF(e.body.Position, 0, e.floor(e.Playfield()))
}

// PlaceObstacle appends a consumer-described obstacle to the track.
func (e *Engine) PlaceObstacle(spec ObstacleSpec) Obstacle {
	return e.track.Add(spec)
}

// Start begins a game from Idle without a flap.
func (e *Engine) Start() {
	if e.phase != PhaseIdle {
		return
	}
	e.transitionStart()
	e.flush()
}

// Jump flaps. From Idle it also starts the game.
func (e *Engine) Jump() {
	switch e.phase {
	case PhaseIdle:
		e.transitionJumpStart()
		e.flush()
	case PhasePlaying:
		e.body.ApplyImpulse()
	}
}

// Restart resets a finished game back to Idle. It does nothing in any
// other phase.
func (e *Engine) Restart() {
	if e.phase != PhaseGameOver {
		return
	}
	e.reset()
	e.setPhase(PhaseIdle)
	e.emit(RestartEvent{})
	e.flush()
}

func (e *Engine) transitionStart() {
	e.enterPlaying()
}

func (e *Engine) transitionJumpStart() {
	e.enterPlaying()
	e.body.ApplyImpulse()
}

func (e *Engine) enterPlaying() {
	now := e.clock.Now()
	e.lastTick = now
	e.startedAt = now
	e.ticks = 0
	e.collisions = 0
	e.setPhase(PhasePlaying)
	e.cancel = e.sched.Schedule(e.frame)
}

func (e *Engine) frame() {
	e.Tick()
}

// Tick advances by the wall time elapsed since the previous tick, measured
// in normalized frames.
func (e *Engine) Tick() TickResult {
	if e.phase != PhasePlaying {
		return TickResult{Phase: e.phase}
	}
	now := e.clock.Now()
	elapsed := now.Sub(e.lastTick)
	e.lastTick = now

	var dt float64
	if e.cfg.Physics.Frame > 0 {
		dt = float64(elapsed) / float64(e.cfg.Physics.Frame)
	}
	return e.advance(dt, now)
}

// Advance runs one tick with an explicit normalized delta. The clock is
// still read for the collision cooldown.
func (e *Engine) Advance(dt float64) TickResult {
	if e.phase != PhasePlaying {
		return TickResult{Phase: e.phase}
	}
	now := e.clock.Now()
	e.lastTick = now
	return e.advance(dt, now)
}

func (e *Engine) sanitizeDelta(dt float64) float64 {
	if !core.Finite(dt) || dt < 0 {
		return 0
	}
	if limit := e.cfg.Physics.MaxDelta; limit > 0 && dt > limit {
		return limit
	}
	return dt
}

func (e *Engine) advance(dt float64, now time.Time) TickResult {
	dt = e.sanitizeDelta(dt)
	field := e.Playfield()
	e.ticks++

	e.body.Integrate(dt, e.floor(field))

	speed := e.difficulty.Speed(e.cfg.Physics.ObstacleSpeed, e.score, e.ticks)
	e.track.Advance(dt, speed)
	threshold := e.difficulty.SpawnThreshold(e.cfg.Obstacles.SpawnThreshold, e.score, e.ticks)
	e.track.MaybeSpawn(field.Width, field.Height, threshold, e.rng)

	obstacles := e.track.Obstacles()
	eval := e.detector.Evaluate(e.birdBox(), obstacles, field.Height, now, &e.lastCollision)
	for _, c := range eval.Counted() {
		if e.lives > 0 {
			e.lives--
		}
		e.collisions++
		e.logger.Debug("collision", "source", c.Source, "obstacle", c.ObstacleID, "lives", e.lives)
		e.emit(CollisionEvent{
			Source:     c.Source,
			ObstacleID: c.ObstacleID,
			LivesLeft:  e.lives,
			At:         now,
		})
	}

	for _, id := range e.scorer.Update(obstacles, eval.Overlapping) {
		e.score++
		e.emit(ScoreEvent{ObstacleID: id, Score: e.score})
	}

	if e.lives <= 0 {
		e.enterGameOver(now)
	}

	return TickResult{Delta: dt, Events: e.flush(), Phase: e.phase}
}

func (e *Engine) enterGameOver(now time.Time) {
	e.stopLoop()
	e.setPhase(PhaseGameOver)
	e.emit(GameOverEvent{
		Score:      e.score,
		Collisions: e.collisions,
		Ticks:      e.ticks,
		Duration:   now.Sub(e.startedAt),
	})
}

func (e *Engine) stopLoop() {
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
}

// reset restores the initial session state without touching the phase.
func (e *Engine) reset() {
	e.stopLoop()
	e.score = 0
	e.lives = e.cfg.Session.MaxLives
	e.lastCollision = time.Time{}
	e.track.Reset()
	field := e.Playfield()
	e.body.Reset(core.ClampF(field.Height/2, 0, e.floor(field)))
}

func (e *Engine) birdBox() Box {
	return Box{
		X: core.NewSpan(e.cfg.Bird.Left, e.cfg.Bird.Size),
		Y: core.NewSpan(e.body.Position, e.cfg.Bird.Size),
	}
}

func (e *Engine) setPhase(to Phase) {
	from := e.phase
	if from == to {
		return
	}
	e.phase = to
	e.logger.Debug("phase change", "from", from, "to", to, "score", e.score)
	e.emit(PhaseChangeEvent{From: from, To: to})
}

// emit dispatches ev to every hook set and queues it for the current call.
func (e *Engine) emit(ev Event) {
	e.pending = append(e.pending, ev)
	for _, h := range e.hooks {
		h.dispatch(ev)
	}
}

// flush returns and clears the events queued by the current call.
func (e *Engine) flush() []Event {
	events := e.pending
	e.pending = nil
	return events
}
