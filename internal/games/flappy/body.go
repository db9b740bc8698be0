package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// BirdState is the simulated vertical state of the bird.
// Position is the offset of the bird's top edge from the playfield top.
type BirdState struct {
	Position float64
	Velocity float64
}

// Body integrates the bird under gravity.
type Body struct {
	BirdState
	gravity float64
	jump    float64
}

// NewBody creates a body at rest at the given position.
func NewBody(gravity, jumpStrength, position float64) Body {
	return Body{
		BirdState: BirdState{Position: position},
		gravity:   gravity,
		jump:      jumpStrength,
	}
}

// Integrate advances the body by dt normalized frames and clamps the position
// into [0, floor]. The clamp never touches velocity: a bird resting on the
// floor keeps its downward velocity until something else changes it.
func (b *Body) Integrate(dt, floor float64) {
	b.Velocity += b.gravity * dt
	b.Position += b.Velocity * dt
	b.Position = core.ClampF(b.Position, 0, floor)
}

// ApplyImpulse overwrites the velocity with the jump strength, so every flap
// has the same height regardless of the current fall speed.
func (b *Body) ApplyImpulse() {
	b.Velocity = b.jump
}

// Reset places the body at position with zero velocity.
func (b *Body) Reset(position float64) {
	b.BirdState = BirdState{Position: position}
}
