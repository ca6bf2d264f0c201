package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pairs.yaml
var defaultPairsYAML []byte

// DefaultRevertDelay is how long a mismatched pair stays revealed.
const DefaultRevertDelay = 1200 * time.Millisecond

// DefaultPairsConfig returns the hardcoded pairs configuration, used when
// the embedded YAML cannot be parsed.
func DefaultPairsConfig() PairsConfig {
	return PairsConfig{
		RevertDelayMS: int(DefaultRevertDelay / time.Millisecond),
		Symbols: []SymbolEntry{
			{ID: "star", Glyph: "★"},
			{ID: "heart", Glyph: "♥"},
			{ID: "diamond", Glyph: "♦"},
			{ID: "club", Glyph: "♣"},
			{ID: "spade", Glyph: "♠"},
			{ID: "sun", Glyph: "☀"},
			{ID: "umbrella", Glyph: "☂"},
			{ID: "note", Glyph: "♪"},
			{ID: "flower", Glyph: "✿"},
			{ID: "yinyang", Glyph: "☯"},
			{ID: "knight", Glyph: "♞"},
			{ID: "moon", Glyph: "☾"},
			{ID: "cross", Glyph: "✚"},
			{ID: "gem", Glyph: "◆"},
			{ID: "circle", Glyph: "●"},
			{ID: "triangle", Glyph: "▲"},
		},
		Levels: []LevelEntry{
			{Name: "First Flip", Pairs: 3, Moves: 10, Columns: 3},
			{Name: "Warm Hands", Pairs: 4, Moves: 12, Columns: 4},
			{Name: "Sharp Eyes", Pairs: 6, Moves: 18, Columns: 4},
			{Name: "Full Deck", Pairs: 8, Moves: 24, Columns: 4},
			{Name: "Crowded Table", Pairs: 10, Moves: 28, Columns: 5},
			{Name: "Total Recall", Pairs: 12, Moves: 32, Columns: 6},
		},
		Classic: ClassicEntry{Pairs: 8, Columns: 4},
	}
}
