// Package config provides YAML-based configuration loading for the pairs
// game: the level catalog, the symbol pool and timing.
package config

import "time"

// PairsConfig contains all configuration for the pairs game.
type PairsConfig struct {
	RevertDelayMS int           `yaml:"revert_delay_ms"` // How long a mismatched pair stays face up
	Symbols       []SymbolEntry `yaml:"symbols"`
	Levels        []LevelEntry  `yaml:"levels"`
	Classic       ClassicEntry  `yaml:"classic"`
}

// SymbolEntry is one face in the symbol pool.
type SymbolEntry struct {
	ID    string `yaml:"id"`
	Glyph string `yaml:"glyph"` // Single rune drawn on a revealed card
}

// LevelEntry defines one level of level mode. Ordinals are assigned from
// list position, starting at 1.
type LevelEntry struct {
	Name    string `yaml:"name"`
	Pairs   int    `yaml:"pairs"`
	Moves   int    `yaml:"moves"`   // Move budget; 0 means unlimited
	Columns int    `yaml:"columns"` // Layout hint for the card grid
}

// ClassicEntry defines the single unlimited-moves board of classic mode.
type ClassicEntry struct {
	Pairs   int `yaml:"pairs"`
	Columns int `yaml:"columns"`
}

// RevertDelay returns the mismatch revert delay as a duration.
func (c PairsConfig) RevertDelay() time.Duration {
	if c.RevertDelayMS <= 0 {
		return DefaultRevertDelay
	}
	return time.Duration(c.RevertDelayMS) * time.Millisecond
}
