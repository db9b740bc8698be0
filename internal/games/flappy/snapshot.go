package flappy

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	Phase     Phase
	Bird      BirdState
	BirdLeft  float64
	BirdSize  float64
	Obstacles []Obstacle
	Score     int
	Lives     int
	MaxLives  int
	Field     Playfield
	Ticks     int
}

// Snapshot copies the current state. The obstacle slice is fresh on every
// call and may be kept by the caller.
func (e *Engine) Snapshot() Snapshot {
	obstacles := make([]Obstacle, e.track.Len())
	copy(obstacles, e.track.Obstacles())
	return Snapshot{
		Phase:     e.phase,
		Bird:      e.body.BirdState,
		BirdLeft:  e.cfg.Bird.Left,
		BirdSize:  e.cfg.Bird.Size,
		Obstacles: obstacles,
		Score:     e.score,
		Lives:     e.lives,
		MaxLives:  e.cfg.Session.MaxLives,
		Field:     e.Playfield(),
		Ticks:     e.ticks,
	}
}

// NextObstacle returns the oldest obstacle the bird has not yet passed.
func (s Snapshot) NextObstacle() (Obstacle, bool) {
	for _, o := range s.Obstacles {
		if o.TrailingEdge() >= s.BirdLeft {
			return o, true
		}
	}
	return Obstacle{}, false
}
