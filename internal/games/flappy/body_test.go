package flappy

import "testing"

func TestBodyIntegrate(t *testing.T) {
	tests := []struct {
		name    string
		start   BirdState
		dt      float64
		floor   float64
		wantPos float64
		wantVel float64
	}{
		{"one frame from rest", BirdState{Position: 300}, 1, 550, 300.3, 0.3},
		{"half frame", BirdState{Position: 300, Velocity: 2}, 0.5, 550, 301.075, 2.15},
		{"zero dt", BirdState{Position: 300, Velocity: 5}, 0, 550, 300, 5},
		{"clamped at floor keeps velocity", BirdState{Position: 540, Velocity: 20}, 1, 550, 550, 20.3},
		{"clamped at ceiling keeps velocity", BirdState{Position: 3, Velocity: -9}, 1, 550, 0, -8.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBody(0.3, -9, 0)
			b.BirdState = tt.start
			b.Integrate(tt.dt, tt.floor)
			if !approx(b.Position, tt.wantPos) {
				t.Errorf("Position = %v, want %v", b.Position, tt.wantPos)
			}
			if !approx(b.Velocity, tt.wantVel) {
				t.Errorf("Velocity = %v, want %v", b.Velocity, tt.wantVel)
			}
		})
	}
}

func TestBodyApplyImpulseOverwrites(t *testing.T) {
	for _, v := range []float64{-20, 0, 15} {
		b := NewBody(0.3, -9, 100)
		b.Velocity = v
		b.ApplyImpulse()
		if b.Velocity != -9 {
			t.Errorf("from %v: Velocity = %v, want -9", v, b.Velocity)
		}
	}
}

func TestBodyReset(t *testing.T) {
	b := NewBody(0.3, -9, 10)
	b.Velocity = 4
	b.Reset(300)
	if b.Position != 300 || b.Velocity != 0 {
		t.Errorf("Reset = %+v, want {300 0}", b.BirdState)
	}
}
