package flappy

import "time"

// Event is anything the engine reports while running.
type Event interface {
	isEvent()
}

// HitSource names what the bird ran into.
type HitSource int

const (
	HitTop HitSource = iota
	HitBottom
	HitBounds
)

// String returns the source name.
func (s HitSource) String() string {
	switch s {
	case HitTop:
		return "top"
	case HitBottom:
		return "bottom"
	case HitBounds:
		return "bounds"
	default:
		return "unknown"
	}
}

// CollisionEvent is a counted collision.
type CollisionEvent struct {
	Source     HitSource
	ObstacleID uint64 // 0 for bounds hits
	LivesLeft  int
	At         time.Time
}

// ScoreEvent is one point scored by passing an obstacle.
type ScoreEvent struct {
	ObstacleID uint64
	Score      int // Score after the increment
}

// GameOverEvent closes a run.
type GameOverEvent struct {
	Score      int
	Collisions int
	Ticks      int
	Duration   time.Duration
}

// RestartEvent is reported after a reset back to Idle.
type RestartEvent struct{}

// PhaseChangeEvent is reported on every phase transition.
type PhaseChangeEvent struct {
	From Phase
	To   Phase
}

func (CollisionEvent) isEvent()   {}
func (ScoreEvent) isEvent()       {}
func (GameOverEvent) isEvent()    {}
func (RestartEvent) isEvent()     {}
func (PhaseChangeEvent) isEvent() {}

// Hooks are synchronous callbacks invoked from inside the engine call that
// produced the event. Nil fields are skipped.
type Hooks struct {
	OnCollision      func(CollisionEvent)
	OnScoreIncrement func(ScoreEvent)
	OnGameOver       func(GameOverEvent)
	OnRestart        func(RestartEvent)
	OnPhaseChange    func(PhaseChangeEvent)
}

func (h Hooks) dispatch(ev Event) {
	switch e := ev.(type) {
	case CollisionEvent:
		if h.OnCollision != nil {
			h.OnCollision(e)
		}
	case ScoreEvent:
		if h.OnScoreIncrement != nil {
			h.OnScoreIncrement(e)
		}
	case GameOverEvent:
		if h.OnGameOver != nil {
			h.OnGameOver(e)
		}
	case RestartEvent:
		if h.OnRestart != nil {
			h.OnRestart(e)
		}
	case PhaseChangeEvent:
		if h.OnPhaseChange != nil {
			h.OnPhaseChange(e)
		}
	}
}

// TickResult is what one tick produced.
type TickResult struct {
	Delta  float64 // Normalized frame delta actually applied
	Events []Event
	Phase  Phase // Phase after the tick
}
