package pairs

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/vovakirdan/tui-pairs/internal/config"
)

// ErrLevelNotFound is returned for ordinals outside the catalog.
var ErrLevelNotFound = errors.New("level not found")

// SymbolID identifies a card face. Two cards match when their symbols are equal.
type SymbolID string

// Symbol is one entry of the symbol pool.
type Symbol struct {
	ID    SymbolID
	Glyph rune
}

// LevelSpec defines one level.
type LevelSpec struct {
	Ordinal    int // 1-based position in the catalog
	Name       string
	PairCount  int
	MoveBudget int // 0 means unlimited moves
	LayoutHint int // Preferred number of card columns
}

// Unlimited reports whether the level has no move budget.
func (l LevelSpec) Unlimited() bool {
	return l.MoveBudget == 0
}

// Columns returns the card grid width for this level.
func (l LevelSpec) Columns() int {
	if l.LayoutHint > 0 {
		return l.LayoutHint
	}
	return 4
}

// Catalog is the immutable, ordered list of levels plus the symbol pool
// boards are drawn from.
type Catalog struct {
	levels  []LevelSpec
	symbols []Symbol
	glyphs  map[SymbolID]rune
}

// NewCatalog validates and builds a catalog. Ordinals must run 1..n in
// order and the symbol pool must be large enough for the biggest level.
func NewCatalog(levels []LevelSpec, symbols []Symbol) (*Catalog, error) {
	if len(levels) == 0 {
		return nil, errors.New("pairs: catalog has no levels")
	}

	maxPairs := 0
	for i, l := range levels {
		if l.Ordinal != i+1 {
			return nil, fmt.Errorf("pairs: level at position %d has ordinal %d, want %d", i+1, l.Ordinal, i+1)
		}
		if l.PairCount < 1 {
			return nil, fmt.Errorf("pairs: level %d: pair count must be at least 1", l.Ordinal)
		}
		if l.MoveBudget < 0 {
			return nil, fmt.Errorf("pairs: level %d: negative move budget", l.Ordinal)
		}
		if l.PairCount > maxPairs {
			maxPairs = l.PairCount
		}
	}

	glyphs := make(map[SymbolID]rune, len(symbols))
	for _, s := range symbols {
		if s.ID == "" {
			return nil, errors.New("pairs: symbol with empty id")
		}
		if _, dup := glyphs[s.ID]; dup {
			return nil, fmt.Errorf("pairs: duplicate symbol %q", s.ID)
		}
		glyphs[s.ID] = s.Glyph
	}
	if len(symbols) < maxPairs {
		return nil, fmt.Errorf("pairs: symbol pool has %d symbols, levels need %d", len(symbols), maxPairs)
	}

	return &Catalog{
		levels:  append([]LevelSpec(nil), levels...),
		symbols: append([]Symbol(nil), symbols...),
		glyphs:  glyphs,
	}, nil
}

// ByOrdinal returns the level with the given ordinal.
func (c *Catalog) ByOrdinal(n int) (LevelSpec, error) {
	if n < 1 || n > len(c.levels) {
		return LevelSpec{}, fmt.Errorf("pairs: level %d: %w", n, ErrLevelNotFound)
	}
	return c.levels[n-1], nil
}

// Next returns the level after l, or false when l is the last one.
func (c *Catalog) Next(l LevelSpec) (LevelSpec, bool) {
	if l.Ordinal < 1 || l.Ordinal >= len(c.levels) {
		return LevelSpec{}, false
	}
	return c.levels[l.Ordinal], true
}

// MaxOrdinal returns the ordinal of the last level.
func (c *Catalog) MaxOrdinal() int {
	return len(c.levels)
}

// IsFinal reports whether l is the last level of the catalog.
func (c *Catalog) IsFinal(l LevelSpec) bool {
	return l.Ordinal == len(c.levels)
}

// Levels returns a copy of all levels in order.
func (c *Catalog) Levels() []LevelSpec {
	return append([]LevelSpec(nil), c.levels...)
}

// Symbols returns a copy of the symbol pool.
func (c *Catalog) Symbols() []Symbol {
	return append([]Symbol(nil), c.symbols...)
}

// Glyph returns the rune drawn for a symbol, or '?' for unknown symbols.
func (c *Catalog) Glyph(id SymbolID) rune {
	if g, ok := c.glyphs[id]; ok {
		return g
	}
	return '?'
}

// CatalogFromConfig builds the level mode catalog from a loaded configuration.
func CatalogFromConfig(cfg config.PairsConfig) (*Catalog, error) {
	symbols, err := symbolsFromConfig(cfg.Symbols)
	if err != nil {
		return nil, err
	}

	levels := make([]LevelSpec, len(cfg.Levels))
	for i, l := range cfg.Levels {
		levels[i] = LevelSpec{
			Ordinal:    i + 1,
			Name:       l.Name,
			PairCount:  l.Pairs,
			MoveBudget: l.Moves,
			LayoutHint: l.Columns,
		}
	}
	return NewCatalog(levels, symbols)
}

// ClassicCatalog builds the single-level, unlimited-moves catalog of classic mode.
func ClassicCatalog(cfg config.PairsConfig) (*Catalog, error) {
	symbols, err := symbolsFromConfig(cfg.Symbols)
	if err != nil {
		return nil, err
	}

	level := LevelSpec{
		Ordinal:    1,
		Name:       "Classic",
		PairCount:  cfg.Classic.Pairs,
		MoveBudget: 0,
		LayoutHint: cfg.Classic.Columns,
	}
	return NewCatalog([]LevelSpec{level}, symbols)
}

// LoadCatalog loads the configuration (see config.LoadPairs), applies the
// difficulty preset and builds the level mode catalog.
func LoadCatalog(path string, preset config.DifficultyPreset) (*Catalog, error) {
	cfg, err := config.LoadPairs(path)
	if err != nil {
		return nil, err
	}
	config.ApplyPairsPreset(&cfg, preset)
	return CatalogFromConfig(cfg)
}

func symbolsFromConfig(entries []config.SymbolEntry) ([]Symbol, error) {
	symbols := make([]Symbol, len(entries))
	for i, e := range entries {
		r, size := utf8.DecodeRuneInString(e.Glyph)
		if size == 0 || r == utf8.RuneError {
			return nil, fmt.Errorf("pairs: symbol %q has no glyph", e.ID)
		}
		symbols[i] = Symbol{ID: SymbolID(e.ID), Glyph: r}
	}
	return symbols, nil
}
