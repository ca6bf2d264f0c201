package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic boards
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

// TickDuration returns the wall time covered by one simulation tick.
func (c RuntimeConfig) TickDuration() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// GameState represents the current state of a game.
type GameState struct {
	Score    int  // Moves used in the current round
	GameOver bool // Whether the round reached a terminal outcome
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}

// ProgressBackend is durable storage for level-unlock progress.
// Each key holds one integer; an absent key reads as 0.
type ProgressBackend interface {
	LoadProgress(key string) (int, error)
	SaveProgress(key string, level int) error
}

// RoundResult describes a finished round for history recording.
type RoundResult struct {
	RoundID  string
	Profile  string
	Level    int // 0 for classic mode
	Won      bool
	Moves    int
	Pairs    int
	Duration time.Duration
}
