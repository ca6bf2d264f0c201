package pairs

import (
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pairs/internal/core"
)

// DefaultProfile is the progress profile used for local play.
const DefaultProfile = "local"

// ProgressKey returns the storage key holding a profile's unlocked level.
func ProgressKey(profile string) string {
	if profile == "" {
		profile = DefaultProfile
	}
	return "pairs:" + profile
}

// ProgressStore tracks the highest unlocked level.
type ProgressStore interface {
	// Get returns the highest unlocked ordinal, at least 1.
	Get() int
	// Unlock advances progress past level if level is the current frontier.
	Unlock(level LevelSpec)
}

// Progress is a ProgressStore over a durable backend.
// Backend failures never reach the caller: reads fall back to level 1 and
// failed writes still count for the rest of the session.
type Progress struct {
	backend core.ProgressBackend
	key     string
	max     int
	logger  *log.Logger

	session int // Frontier reached this session
}

// NewProgress creates a progress store for profile, clamped to maxOrdinal.
func NewProgress(backend core.ProgressBackend, profile string, maxOrdinal int, logger *log.Logger) *Progress {
	if logger == nil {
		logger = log.Default()
	}
	return &Progress{
		backend: backend,
		key:     ProgressKey(profile),
		max:     core.Max(maxOrdinal, 1),
		logger:  logger,
	}
}

// Get returns the highest unlocked level.
func (p *Progress) Get() int {
	stored, err := p.backend.LoadProgress(p.key)
	if err != nil {
		p.logger.Warn("progress read failed, using level 1", "key", p.key, "err", err)
		stored = 1
	}
	if stored < 1 {
		stored = 1
	}
	return core.Clamp(core.Max(stored, p.session), 1, p.max)
}

// Unlock advances progress by one level when level is the frontier.
// Replaying an earlier level or clearing the last one changes nothing.
func (p *Progress) Unlock(level LevelSpec) {
	current := p.Get()
	if level.Ordinal != current || level.Ordinal >= p.max {
		return
	}

	next := level.Ordinal + 1
	p.session = next
	if err := p.backend.SaveProgress(p.key, next); err != nil {
		p.logger.Warn("progress write failed", "key", p.key, "level", next, "err", err)
		return
	}
	p.logger.Debug("level unlocked", "key", p.key, "level", next)
}

// openProgress is used when no progress is tracked: every level is open
// and nothing is persisted.
type openProgress struct {
	max int
}

func (o openProgress) Get() int           { return o.max }
func (o openProgress) Unlock(_ LevelSpec) {}

// MemoryBackend is an in-memory core.ProgressBackend.
// It keeps the highest value saved per key, like the sqlite store, and is
// used in tests and when the database cannot be opened.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]int
}

// NewMemoryBackend creates an empty backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{values: make(map[string]int)}
}

// LoadProgress returns the stored value, 0 when absent.
func (m *MemoryBackend) LoadProgress(key string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key], nil
}

// SaveProgress stores level unless a higher value is already stored.
func (m *MemoryBackend) SaveProgress(key string, level int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if level > m.values[key] {
		m.values[key] = level
	}
	return nil
}
