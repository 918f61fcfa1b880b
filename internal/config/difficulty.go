package config

import (
	"math"
	"time"
)

// DifficultyManager derives the gravity interval from progress through a game.
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

// Level returns the current difficulty level (0.0 to 1.0) based on cleared
// lines or locked pieces.
func (d *DifficultyManager) Level(lines, pieces int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "lines":
		progress = float64(lines) / maxAt
	case "pieces":
		progress = float64(pieces) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GravityInterval returns the time between gravity ticks. Without
// progression it is base; otherwise gravity speeds up to
// base / (1 + speedMultiplier) at max difficulty, never below
// min_gravity_ms.
func (d *DifficultyManager) GravityInterval(base time.Duration, lines, pieces int) time.Duration {
	if !d.IsEnabled() {
		return base
	}
	level := d.Level(lines, pieces)
	interval := time.Duration(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier))

	floor := time.Duration(d.cfg.Scaling.MinGravityMs) * time.Millisecond
	if interval < floor {
		interval = floor
	}
	return interval
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
