package storage

import (
	"testing"

	"github.com/vovakirdan/chromatic-ant/internal/ant"
	"github.com/vovakirdan/chromatic-ant/internal/rules"
)

var _ ant.HighScores = (*HighScoreWriter)(nil)

func TestHighScoreWriterFlushOnClose(t *testing.T) {
	store := openTestStore(t)
	w := NewHighScoreWriter(store, "")

	for _, v := range []int{10, 20, 15, 30} {
		w.Save(v)
	}
	w.Close()

	high, err := store.HighScore(HighScoreKey)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 30 {
		t.Errorf("Expected 30 after flush, got %d", high)
	}

	// Saves after close are dropped
	w.Save(99)
	w.Close()
	if high, _ := store.HighScore(HighScoreKey); high != 30 {
		t.Errorf("Save after Close should be ignored, got %d", high)
	}
}

func TestHighScoreWriterLoad(t *testing.T) {
	store := openTestStore(t)
	store.SetHighScore("custom", 42)

	w := NewHighScoreWriter(store, "custom")
	defer w.Close()

	got, err := w.Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got != 42 {
		t.Errorf("Load() = %d, expected 42", got)
	}
}

func TestHighScoreWriterWithEngine(t *testing.T) {
	store := openTestStore(t)
	store.SetHighScore(HighScoreKey, 5)

	w := NewHighScoreWriter(store, HighScoreKey)
	e := ant.New(ant.DefaultConfig(), rules.Classic, w)
	if e.HighScore() != 5 {
		t.Fatalf("engine high score = %d, expected 5", e.HighScore())
	}

	for range 3 {
		e.Step()
	}
	w.Close()

	if high, _ := store.HighScore(HighScoreKey); high != 30 {
		t.Errorf("persisted high score = %d, expected 30", high)
	}
}
