package storage

import (
	"sync"

	"github.com/charmbracelet/log"
)

// HighScoreWriter persists the high score in the background.
// Save never blocks: pending values are coalesced and only the largest is
// written. Write failures are logged and otherwise ignored.
type HighScoreWriter struct {
	store *Store
	key   string

	mu      sync.Mutex
	pending int
	dirty   bool
	closed  bool

	wake chan struct{}
	done chan struct{}
}

// NewHighScoreWriter starts a writer for key on store.
func NewHighScoreWriter(store *Store, key string) *HighScoreWriter {
	if key == "" {
		key = HighScoreKey
	}
	w := &HighScoreWriter{
		store: store,
		key:   key,
		wake:  make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
	go w.loop()
	return w
}

// Load reads the stored high score.
func (w *HighScoreWriter) Load() (int, error) {
	v, err := w.store.HighScore(w.key)
	if err != nil {
		log.Warn("high score not loaded", "key", w.key, "err", err)
	}
	return v, err
}

// Save queues score for writing and returns immediately.
func (w *HighScoreWriter) Save(score int) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	if !w.dirty || score > w.pending {
		w.pending = score
	}
	w.dirty = true

	select {
	case w.wake <- struct{}{}:
	default:
	}
	w.mu.Unlock()
}

// Close flushes the pending value and stops the writer.
// The underlying store is not closed.
func (w *HighScoreWriter) Close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.wake)
	<-w.done
}

func (w *HighScoreWriter) loop() {
	defer close(w.done)
	for range w.wake {
		w.flush()
	}
	w.flush()
}

func (w *HighScoreWriter) flush() {
	w.mu.Lock()
	score, dirty := w.pending, w.dirty
	w.dirty = false
	w.mu.Unlock()

	if !dirty {
		return
	}
	if err := w.store.SetHighScore(w.key, score); err != nil {
		log.Warn("high score not saved", "score", score, "err", err)
	}
}
