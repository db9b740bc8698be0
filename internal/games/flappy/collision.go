package flappy

import (
	"time"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Box is an axis-aligned hit box.
type Box struct {
	X core.Span
	Y core.Span
}

// Contact is one overlap found during an evaluation.
type Contact struct {
	Source     HitSource
	ObstacleID uint64
	Counted    bool
}

// Evaluation is the outcome of checking one bird box against the track.
type Evaluation struct {
	Contacts []Contact
	// Overlapping is aligned with the evaluated obstacle slice.
	Overlapping []bool
}

// Counted returns the contacts that cost a life.
func (ev Evaluation) Counted() []Contact {
	var out []Contact
	for _, c := range ev.Contacts {
		if c.Counted {
			out = append(out, c)
		}
	}
	return out
}

// Detector tests the bird against obstacle pieces and the playfield edges.
// The pieces are treated as full-height zones above and below the gap.
type Detector struct {
	Cooldown time.Duration
}

// ready reports whether the cooldown since last has elapsed.
// A zero last means no collision has been counted yet.
func (d Detector) ready(now, last time.Time) bool {
	return last.IsZero() || now.Sub(last) > d.Cooldown
}

// Evaluate checks box against obstacles, oldest first, then against the
// playfield bounds. Counted obstacle hits set the obstacle's Collided flag;
// every counted hit writes now into *last, so later checks in the same call
// see the cooldown running.
func (d Detector) Evaluate(box Box, obstacles []Obstacle, height float64, now time.Time, last *time.Time) Evaluation {
	ev := Evaluation{Overlapping: make([]bool, len(obstacles))}

	for i := range obstacles {
		o := &obstacles[i]
		topHit := box.X.Overlaps(o.TopSpan()) && box.Y.Min < o.GapTop
		bottomHit := box.X.Overlaps(o.BottomSpan()) && box.Y.Max > o.GapBottom
		if !topHit && !bottomHit {
			continue
		}
		ev.Overlapping[i] = true

		source := HitTop
		if !topHit {
			source = HitBottom
		}
		counted := !o.Collided && d.ready(now, *last)
		if counted {
			o.Collided = true
			*last = now
		}
		ev.Contacts = append(ev.Contacts, Contact{Source: source, ObstacleID: o.ID, Counted: counted})
	}

	if box.Y.Max >= height || box.Y.Min <= 0 {
		counted := d.ready(now, *last)
		if counted {
			*last = now
		}
		ev.Contacts = append(ev.Contacts, Contact{Source: HitBounds, Counted: counted})
	}

	return ev
}
