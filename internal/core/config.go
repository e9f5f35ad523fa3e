package core

import "time"

// RuntimeConfig contains configuration passed to the game at initialization.
// The game uses this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Rate returns the tick rate, defaulting to 60.
func (c RuntimeConfig) Rate() int {
	if c.TickRate <= 0 {
		return 60
	}
	return c.TickRate
}

// TickDuration returns the simulated time covered by one tick, truncated
// to the nanosecond. Use Elapsed to convert tick counts.
func (c RuntimeConfig) TickDuration() time.Duration {
	return time.Second / time.Duration(c.Rate())
}

// Elapsed returns the simulated time after ticks. It is exact on whole
// seconds at any rate.
func (c RuntimeConfig) Elapsed(ticks int) time.Duration {
	return time.Duration(ticks) * time.Second / time.Duration(c.Rate())
}

// Seconds returns Elapsed(ticks) in seconds.
func (c RuntimeConfig) Seconds(ticks int) float64 {
	return float64(ticks) / float64(c.Rate())
}

// Ticks converts a duration to a whole number of ticks, rounding to nearest.
func (c RuntimeConfig) Ticks(d time.Duration) int {
	tick := c.TickDuration()
	return int((d + tick/2) / tick)
}

// MinSafePadding is the smallest top inset reserved for the HUD.
const MinSafePadding = 20

// Viewport is the logical drawing area reported by the sizing collaborator.
// All values are logical pixels.
type Viewport struct {
	Width       float64
	Height      float64
	SafePadding float64 // Top inset reserved for notches or host chrome
}

// NewViewport builds a viewport, raising the inset to MinSafePadding.
func NewViewport(width, height, topInset float64) Viewport {
	return Viewport{
		Width:       width,
		Height:      height,
		SafePadding: max(topInset, MinSafePadding),
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score, floored
	Hits     int  // Obstacle hits taken this run
	Stage    int  // Current stage index
	GameOver bool // Whether the run has ended (lost or cleared)
	Cleared  bool // Whether the run ended by surviving the full session
	Paused   bool // Whether the game is paused
	Playing  bool // Whether the simulation is running
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
