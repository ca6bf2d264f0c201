package config

import "math"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset maps a flag value to a preset. Empty and unknown values are normal.
func ParsePreset(s string) DifficultyPreset {
	switch DifficultyPreset(s) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(s)
	default:
		return DifficultyNormal
	}
}

// budgetMultiplier returns how a preset scales level move budgets.
func budgetMultiplier(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 1.5
	case DifficultyHard:
		return 0.75
	default:
		return 1.0
	}
}

// ScaleMoveBudget applies a preset to a single level budget.
// Unlimited budgets stay unlimited, and a limited budget never drops below
// the pair count, the fewest moves that can clear the board.
func ScaleMoveBudget(moves, pairs int, preset DifficultyPreset) int {
	if moves <= 0 {
		return moves
	}
	scaled := int(math.Round(float64(moves) * budgetMultiplier(preset)))
	if scaled < pairs {
		scaled = pairs
	}
	return scaled
}

// ApplyPairsPreset modifies the level budgets based on a difficulty preset.
func ApplyPairsPreset(cfg *PairsConfig, preset DifficultyPreset) {
	for i := range cfg.Levels {
		cfg.Levels[i].Moves = ScaleMoveBudget(cfg.Levels[i].Moves, cfg.Levels[i].Pairs, preset)
	}
}
