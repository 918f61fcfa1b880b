// Package config provides YAML-based configuration loading and difficulty
// management for the tetris game.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// TetrisConfig contains all configuration for a tetris session.
type TetrisConfig struct {
	Board      BoardConfig      `yaml:"board"`
	Timing     TimingConfig     `yaml:"timing"`
	Queue      QueueConfig      `yaml:"queue"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the well dimensions in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// TimingConfig defines driver intervals.
type TimingConfig struct {
	GravityMs int `yaml:"gravity_ms"` // time between gravity ticks
	PollMs    int `yaml:"poll_ms"`    // input poll interval of the classic driver
}

// Gravity returns the base gravity interval.
func (t TimingConfig) Gravity() time.Duration {
	return time.Duration(t.GravityMs) * time.Millisecond
}

// Poll returns the input poll interval.
func (t TimingConfig) Poll() time.Duration {
	return time.Duration(t.PollMs) * time.Millisecond
}

// QueueConfig defines the look-ahead queue.
type QueueConfig struct {
	Size int `yaml:"size"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases during a game.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "pieces", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/pieces at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Gravity speed-up at max difficulty
	MinGravityMs    int     `yaml:"min_gravity_ms"`   // Floor for the gravity interval
}

// Validate checks that the configuration describes a playable game.
func (c TetrisConfig) Validate() error {
	switch {
	case c.Board.Width < 4:
		return fmt.Errorf("config: board width %d is below 4", c.Board.Width)
	case c.Board.Height < 4:
		return fmt.Errorf("config: board height %d is below 4", c.Board.Height)
	case c.Timing.GravityMs <= 0:
		return fmt.Errorf("config: gravity_ms must be positive, got %d", c.Timing.GravityMs)
	case c.Timing.PollMs <= 0:
		return fmt.Errorf("config: poll_ms must be positive, got %d", c.Timing.PollMs)
	case c.Queue.Size < 0:
		return fmt.Errorf("config: queue size must not be negative, got %d", c.Queue.Size)
	}
	switch c.Difficulty.Progression.Type {
	case "", "none", "lines", "pieces":
	default:
		return fmt.Errorf("config: unknown progression type %q", c.Difficulty.Progression.Type)
	}
	return nil
}

// Runtime converts the configuration into the parameters handed to
// Game.Reset.
func (c TetrisConfig) Runtime(screenW, screenH int, seed int64) core.RuntimeConfig {
	return core.RuntimeConfig{
		ScreenW:   screenW,
		ScreenH:   screenH,
		BoardW:    c.Board.Width,
		BoardH:    c.Board.Height,
		QueueSize: c.Queue.Size,
		Seed:      seed,
	}
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value to a preset. The empty string selects
// the fixed preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyFixed, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
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

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
