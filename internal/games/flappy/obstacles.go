package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Obstacle is a pair of pieces around a gap. The two pieces have independent
// widths and horizontal offsets; the gap is the only thing they share.
type Obstacle struct {
	ID           uint64
	X            float64 // Horizontal position of the pair
	GapTop       float64
	GapBottom    float64
	TopWidth     float64
	BottomWidth  float64
	TopOffset    float64
	BottomOffset float64
	Scored       bool // Passed and counted (set once)
	Collided     bool // A collision with this obstacle was counted this pass
}

// TopSpan returns the horizontal extent of the top piece.
func (o Obstacle) TopSpan() core.Span {
	return core.NewSpan(o.X+o.TopOffset, o.TopWidth)
}

// BottomSpan returns the horizontal extent of the bottom piece.
func (o Obstacle) BottomSpan() core.Span {
	return core.NewSpan(o.X+o.BottomOffset, o.BottomWidth)
}

// TrailingEdge returns the right-most edge of either piece.
func (o Obstacle) TrailingEdge() float64 {
	return math.Max(o.TopSpan().Max, o.BottomSpan().Max)
}

// ObstacleSpec describes an obstacle supplied by a consumer.
// Nil widths default to the base width and nil offsets default to 0.
type ObstacleSpec struct {
	X            float64
	GapTop       float64
	TopWidth     *float64
	BottomWidth  *float64
	TopOffset    *float64
	BottomOffset *float64
}

// NewObstacle builds an obstacle from a spec, filling in defaults once.
// Widths that are missing, non-positive or non-finite fall back to the base
// width so a hit box is never empty.
func NewObstacle(id uint64, spec ObstacleSpec, cfg config.Obstacles) Obstacle {
	width := func(v *float64) float64 {
		if v == nil || !core.Finite(*v) || *v <= 0 {
			return cfg.BaseWidth
		}
		return *v
	}
	offset := func(v *float64) float64 {
		if v == nil || !core.Finite(*v) {
			return 0
		}
		return *v
	}

	return Obstacle{
		ID:           id,
		X:            spec.X,
		GapTop:       spec.GapTop,
		GapBottom:    spec.GapTop + cfg.GapSize,
		TopWidth:     width(spec.TopWidth),
		BottomWidth:  width(spec.BottomWidth),
		TopOffset:    offset(spec.TopOffset),
		BottomOffset: offset(spec.BottomOffset),
	}
}

// Track moves, spawns and retires obstacles. Obstacles are kept in spawn
// order, so the newest one is always last.
type Track struct {
	obstacles []Obstacle
	nextID    uint64
	cfg       config.Obstacles
}

// NewTrack creates an empty track.
func NewTrack(cfg config.Obstacles) *Track {
	return &Track{
		obstacles: make([]Obstacle, 0, 8),
		nextID:    1,
		cfg:       cfg,
	}
}

// Reset drops every obstacle. IDs keep increasing across resets.
func (t *Track) Reset() {
	t.obstacles = t.obstacles[:0]
}

// Obstacles returns the live obstacles, oldest first.
// The slice is owned by the track.
func (t *Track) Obstacles() []Obstacle {
	return t.obstacles
}

// Len returns the number of live obstacles.
func (t *Track) Len() int {
	return len(t.obstacles)
}

// Advance moves every obstacle left by speed*dt, then drops the ones that
// are fully off screen.
func (t *Track) Advance(dt, speed float64) {
	for i := range t.obstacles {
		t.obstacles[i].X -= speed * dt
	}

	limit := -(t.cfg.BaseWidth + t.cfg.OffscreenMargin)
	kept := t.obstacles[:0]
	for _, o := range t.obstacles {
		if o.X > limit {
			kept = append(kept, o)
		}
	}
	// Zero the tail so dropped obstacles don't linger in the backing array.
	for i := len(kept); i < len(t.obstacles); i++ {
		t.obstacles[i] = Obstacle{}
	}
	t.obstacles = kept
}

// ShouldSpawn reports whether a new obstacle is due: the track is empty or
// the newest obstacle has moved past width - threshold.
func (t *Track) ShouldSpawn(width, threshold float64) bool {
	if len(t.obstacles) == 0 {
		return true
	}
	return t.obstacles[len(t.obstacles)-1].X < width-threshold
}

// MaybeSpawn appends a randomized obstacle at x = width when one is due.
// Random draws happen in a fixed order: gap top, top width, bottom width,
// top offset, bottom offset.
func (t *Track) MaybeSpawn(width, height, threshold float64, rng RandSource) (Obstacle, bool) {
	if !t.ShouldSpawn(width, threshold) {
		return Obstacle{}, false
	}

	minGapTop := t.cfg.MinGapTop
	maxGapTop := height - t.cfg.GapSize - minGapTop
	if maxGapTop < minGapTop {
		maxGapTop = minGapTop
	}
	gapTop := minGapTop + rng.Float64()*(maxGapTop-minGapTop)

	v := t.cfg.WidthVariance
	topWidth := t.cfg.BaseWidth + (rng.Float64()*2*v - v)
	bottomWidth := t.cfg.BaseWidth + (rng.Float64()*2*v - v)

	r := t.cfg.OffsetRange
	topOffset := rng.Float64()*2*r - r
	bottomOffset := rng.Float64()*2*r - r

	o := t.Add(ObstacleSpec{
		X:            width,
		GapTop:       gapTop,
		TopWidth:     &topWidth,
		BottomWidth:  &bottomWidth,
		TopOffset:    &topOffset,
		BottomOffset: &bottomOffset,
	})
	return o, true
}

// Add appends an obstacle built from spec with a fresh ID.
func (t *Track) Add(spec ObstacleSpec) Obstacle {
	o := NewObstacle(t.nextID, spec, t.cfg)
	t.nextID++
	t.obstacles = append(t.obstacles, o)
	return o
}
