package config

import (
	"math"
	"time"
)

// DifficultyManager calculates dynamic run parameters based on score/time.
// Stage tables set the base values; the manager ramps them up as the run goes on.
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
func (d *DifficultyManager) Level(score int, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1
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

// Speed returns the ramped obstacle speed for a stage base speed.
// Speed grows from base to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(baseSpeed float64, score int, ticks int) float64 {
	level := d.Level(score, ticks)
	return baseSpeed * (1.0 + level*d.cfg.Scaling.SpeedMultiplier)
}

// minSpawnGap keeps spawns from stacking into an unjumpable wall.
const minSpawnGap = 300 * time.Millisecond

// SpawnGap returns the ramped minimum gap between obstacle spawns.
func (d *DifficultyManager) SpawnGap(baseGap time.Duration, score int, ticks int) time.Duration {
	if d.cfg.Scaling.GapReductionMS <= 0 {
		return baseGap
	}
	level := d.Level(score, ticks)
	reduction := time.Duration(level * float64(d.cfg.Scaling.GapReductionMS) * float64(time.Millisecond))
	result := baseGap - reduction
	if result < minSpawnGap {
		result = minSpawnGap
	}
	return result
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
