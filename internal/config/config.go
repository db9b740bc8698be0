// Package config provides YAML-based game configuration loading, environment
// overrides and difficulty management.
package config

import (
	"errors"
	"fmt"
	"time"
)

// FlappyConfig contains all tunables for the flappy engine and its frontend.
type FlappyConfig struct {
	Physics    Physics          `yaml:"physics"`
	Obstacles  Obstacles        `yaml:"obstacles"`
	Bird       Bird             `yaml:"bird"`
	Session    Session          `yaml:"session"`
	Playfield  Playfield        `yaml:"playfield"`
	Viewport   Viewport         `yaml:"viewport"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Physics defines integration parameters. Velocities are in px per
// normalized frame; Frame is the wall-clock length of one normalized frame.
type Physics struct {
	Gravity       float64       `yaml:"gravity"`
	JumpStrength  float64       `yaml:"jump_strength"` // negative = up
	ObstacleSpeed float64       `yaml:"obstacle_speed"`
	Frame         time.Duration `yaml:"frame"`
	MaxDelta      float64       `yaml:"max_delta"` // 0 disables the cap
}

// Obstacles defines obstacle geometry and spawn policy.
type Obstacles struct {
	BaseWidth       float64 `yaml:"base_width"`
	WidthVariance   float64 `yaml:"width_variance"`
	OffsetRange     float64 `yaml:"offset_range"`
	GapSize         float64 `yaml:"gap_size"`
	MinGapTop       float64 `yaml:"min_gap_top"`
	SpawnThreshold  float64 `yaml:"spawn_threshold"`
	OffscreenMargin float64 `yaml:"offscreen_margin"`
}

// Bird defines the fixed horizontal placement and hitbox of the bird.
type Bird struct {
	Left float64 `yaml:"left"`
	Size float64 `yaml:"size"`
}

// Session defines the life and collision policy.
type Session struct {
	MaxLives          int           `yaml:"max_lives"`
	CollisionCooldown time.Duration `yaml:"collision_cooldown"`
}

// Playfield defines the smallest geometry the engine accepts.
type Playfield struct {
	MinWidth  float64 `yaml:"min_width"`
	MinHeight float64 `yaml:"min_height"`
}

// Viewport maps terminal cells to playfield pixels.
type Viewport struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	MaxWidth   float64 `yaml:"max_width"`
	MaxHeight  float64 `yaml:"max_height"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier    float64 `yaml:"speed_multiplier"`    // Added to the speed factor at max difficulty
	ThresholdReduction float64 `yaml:"threshold_reduction"` // Spawn threshold reduction at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// MinViableHeight returns the smallest playfield height that still fits a
// full gap and the bird.
func (c FlappyConfig) MinViableHeight() float64 {
	h := c.Playfield.MinHeight
	if need := c.Obstacles.GapSize + 2*c.Obstacles.MinGapTop; need > h {
		h = need
	}
	if c.Bird.Size > h {
		h = c.Bird.Size
	}
	return h
}

// Validate reports every setting that would make the game unplayable.
func (c FlappyConfig) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}

	positive("physics.gravity", c.Physics.Gravity)
	positive("physics.obstacle_speed", c.Physics.ObstacleSpeed)
	if c.Physics.JumpStrength >= 0 {
		errs = append(errs, fmt.Errorf("physics.jump_strength must be negative (up), got %v", c.Physics.JumpStrength))
	}
	if c.Physics.Frame <= 0 {
		errs = append(errs, fmt.Errorf("physics.frame must be positive, got %v", c.Physics.Frame))
	}
	if c.Physics.MaxDelta < 0 {
		errs = append(errs, fmt.Errorf("physics.max_delta must not be negative, got %v", c.Physics.MaxDelta))
	}

	positive("obstacles.base_width", c.Obstacles.BaseWidth)
	positive("obstacles.gap_size", c.Obstacles.GapSize)
	if c.Obstacles.WidthVariance < 0 || c.Obstacles.WidthVariance >= c.Obstacles.BaseWidth {
		errs = append(errs, fmt.Errorf("obstacles.width_variance must be in [0, base_width), got %v", c.Obstacles.WidthVariance))
	}
	if c.Obstacles.OffsetRange < 0 {
		errs = append(errs, fmt.Errorf("obstacles.offset_range must not be negative, got %v", c.Obstacles.OffsetRange))
	}
	if c.Obstacles.MinGapTop < 0 {
		errs = append(errs, fmt.Errorf("obstacles.min_gap_top must not be negative, got %v", c.Obstacles.MinGapTop))
	}
	positive("obstacles.spawn_threshold", c.Obstacles.SpawnThreshold)
	if c.Obstacles.OffscreenMargin < 0 {
		errs = append(errs, fmt.Errorf("obstacles.offscreen_margin must not be negative, got %v", c.Obstacles.OffscreenMargin))
	}

	positive("bird.size", c.Bird.Size)
	if c.Bird.Left < 0 {
		errs = append(errs, fmt.Errorf("bird.left must not be negative, got %v", c.Bird.Left))
	}

	if c.Session.MaxLives <= 0 {
		errs = append(errs, fmt.Errorf("session.max_lives must be positive, got %d", c.Session.MaxLives))
	}
	if c.Session.CollisionCooldown < 0 {
		errs = append(errs, fmt.Errorf("session.collision_cooldown must not be negative, got %v", c.Session.CollisionCooldown))
	}

	positive("playfield.min_width", c.Playfield.MinWidth)
	positive("viewport.cell_width", c.Viewport.CellWidth)
	positive("viewport.cell_height", c.Viewport.CellHeight)
	if c.Viewport.MaxHeight > 0 && c.Viewport.MaxHeight < c.MinViableHeight() {
		errs = append(errs, fmt.Errorf("viewport.max_height %v is below the minimum viable height %v",
			c.Viewport.MaxHeight, c.MinViableHeight()))
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: invalid flappy config: %w", errors.Join(errs...))
}
