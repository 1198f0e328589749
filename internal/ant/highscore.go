package ant

import "sync"

// HighScores persists the single best score across sessions.
//
// Save is called from inside Step whenever the high score improves, so it
// must return promptly and handle its own failures; the engine never waits
// on or inspects the result of a write.
type HighScores interface {
	Load() (int, error)
	Save(score int)
}

// MemoryScores is an in-process HighScores, used when no database is
// available and in tests.
type MemoryScores struct {
	mu    sync.Mutex
	best  int
	saves int
}

// NewMemoryScores creates a store holding the given initial value.
func NewMemoryScores(initial int) *MemoryScores {
	return &MemoryScores{best: initial}
}

// Load returns the stored value.
func (m *MemoryScores) Load() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// Save stores score if it beats the current value.
func (m *MemoryScores) Save(score int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	if score > m.best {
		m.best = score
	}
}

// Saves returns how many times Save was called.
func (m *MemoryScores) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

var _ HighScores = (*MemoryScores)(nil)
