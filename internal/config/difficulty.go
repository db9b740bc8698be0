package config

import "math"

// Minimum spawn threshold the progression may shrink to, in px.
const minSpawnThreshold = 150

// DifficultyManager calculates dynamic obstacle parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
// With progression disabled the level is 0 so every parameter keeps its base value.
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return 0
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed returns the obstacle speed for the current difficulty level.
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// SpawnThreshold returns the spawn threshold for the current difficulty level.
// A smaller threshold packs obstacles closer together.
func (d *DifficultyManager) SpawnThreshold(base float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	result := base - level*d.cfg.Scaling.ThresholdReduction
	if result < minSpawnThreshold {
		result = math.Min(base, minSpawnThreshold)
	}
	return result
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
