package config

import "testing"

func TestDifficultyDisabledKeepsBaseValues(t *testing.T) {
	d := NewDifficultyManager(DefaultFlappyConfig().Difficulty)

	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if got := d.Speed(2.5, 100, 10000); got != 2.5 {
		t.Errorf("Speed() = %v, expected base 2.5", got)
	}
	if got := d.SpawnThreshold(350, 100, 10000); got != 350 {
		t.Errorf("SpawnThreshold() = %v, expected base 350", got)
	}
}

func TestDifficultyScoreProgression(t *testing.T) {
	cfg := DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, ThresholdReduction: 100},
	}
	d := NewDifficultyManager(cfg)

	tests := []struct {
		score     int
		level     float64
		speed     float64
		threshold float64
	}{
		{0, 0.0, 2.0, 350},
		{5, 0.5, 3.0, 300},
		{10, 1.0, 4.0, 250},
		{50, 1.0, 4.0, 250}, // clamped past max_at
	}

	for _, tc := range tests {
		if got := d.Level(tc.score, 0); got != tc.level {
			t.Errorf("Level(%d) = %v, expected %v", tc.score, got, tc.level)
		}
		if got := d.Speed(2.0, tc.score, 0); got != tc.speed {
			t.Errorf("Speed(score=%d) = %v, expected %v", tc.score, got, tc.speed)
		}
		if got := d.SpawnThreshold(350, tc.score, 0); got != tc.threshold {
			t.Errorf("SpawnThreshold(score=%d) = %v, expected %v", tc.score, got, tc.threshold)
		}
	}
}

func TestDifficultyThresholdFloor(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 1.0,
		Progression:  ProgressionConfig{Type: "time", MaxAt: 1},
		Scaling:      ScalingConfig{ThresholdReduction: 1000},
	})

	if got := d.SpawnThreshold(350, 0, 0); got != minSpawnThreshold {
		t.Errorf("SpawnThreshold() = %v, expected floor %v", got, float64(minSpawnThreshold))
	}
}
