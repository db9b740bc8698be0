package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It mirrors
// defaults/flappy.yaml and is the fallback when that file cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: Physics{
			Gravity:       0.3,
			JumpStrength:  -9,
			ObstacleSpeed: 2.5,
			Frame:         16670 * time.Microsecond,
			MaxDelta:      0,
		},
		Obstacles: Obstacles{
			BaseWidth:       100,
			WidthVariance:   25,
			OffsetRange:     75,
			GapSize:         280,
			MinGapTop:       50,
			SpawnThreshold:  350,
			OffscreenMargin: 200,
		},
		Bird: Bird{
			Left: 50,
			Size: 50,
		},
		Session: Session{
			MaxLives:          4,
			CollisionCooldown: time.Second,
		},
		Playfield: Playfield{
			MinWidth:  200,
			MinHeight: 380,
		},
		Viewport: Viewport{
			CellWidth:  6,
			CellHeight: 25,
			MaxWidth:   500,
			MaxHeight:  800,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "none",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:    0.6,
				ThresholdReduction: 100,
			},
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
