package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	// Nothing stored yet
	high, err := store.HighScore(HighScoreKey)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty store, got %d", high)
	}

	for _, v := range []int{100, 300, 200} {
		if err := store.SetHighScore(HighScoreKey, v); err != nil {
			t.Fatalf("SetHighScore() failed: %v", err)
		}
	}

	high, err = store.HighScore(HighScoreKey)
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	// Other keys are independent
	high, _ = store.HighScore("other")
	if high != 0 {
		t.Errorf("Expected 0 for other key, got %d", high)
	}

	if err := store.ClearHighScore(HighScoreKey); err != nil {
		t.Fatalf("ClearHighScore() failed: %v", err)
	}
	high, _ = store.HighScore(HighScoreKey)
	if high != 0 {
		t.Errorf("Expected 0 after clear, got %d", high)
	}
}

func TestStoreSaveAndRetrieveRuns(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		{Rule: "classic", Score: 100, Steps: 90, Coverage: 3.5},
		{Rule: "classic", Score: 50, Steps: 50, Coverage: 1.2},
		{Rule: "classic", Score: 200, Steps: 180, Coverage: 25.1, Completed: true},
		{Rule: "weaver", Score: 500, Steps: 400, Coverage: 12},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	classic, err := store.TopRuns("classic", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(classic) != 3 {
		t.Fatalf("Expected 3 classic runs, got %d", len(classic))
	}

	// Should be sorted descending
	if classic[0].Score != 200 || classic[1].Score != 100 || classic[2].Score != 50 {
		t.Errorf("Runs not in expected order: %v", classic)
	}
	if !classic[0].Completed || classic[1].Completed {
		t.Errorf("Completed flags not round-tripped: %v", classic)
	}
	if classic[0].Steps != 180 || classic[0].Coverage != 25.1 {
		t.Errorf("Run fields not round-tripped: %+v", classic[0])
	}

	all, err := store.TopRuns("", 2)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(all) != 2 || all[0].Rule != "weaver" || all[1].Score != 200 {
		t.Errorf("Unexpected top runs across rules: %v", all)
	}
}

func TestStoreTopRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Rule: "test", Score: (i + 1) * 100})
	}

	runs, err := store.TopRuns("test", 3)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("Expected 3 runs with limit, got %d", len(runs))
	}

	// Non-positive limit falls back to 10
	runs, _ = store.TopRuns("test", 0)
	if len(runs) != 5 {
		t.Errorf("Expected 5 runs with default limit, got %d", len(runs))
	}
}

func TestStoreRuleStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Rule: "weaver", Score: 40, Steps: 10})
	store.SaveRun(Run{Rule: "classic", Score: 100, Steps: 10, Completed: true})
	store.SaveRun(Run{Rule: "classic", Score: 300, Steps: 30})

	stats, err := store.AllRuleStats()
	if err != nil {
		t.Fatalf("AllRuleStats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected stats for 2 rules, got %d", len(stats))
	}

	c := stats[0]
	if c.Rule != "classic" {
		t.Fatalf("Expected rules ordered by name, got %s first", c.Rule)
	}
	if c.Runs != 2 || c.Completions != 1 || c.BestScore != 300 || c.AvgScore != 200 {
		t.Errorf("Unexpected classic stats: %+v", c)
	}
	if c.LastPlayed.IsZero() {
		t.Error("Expected LastPlayed to be set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Rule: "classic", Score: 100})
	store.SetHighScore(HighScoreKey, 100)

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, _ := store.TopRuns("", 10)
	if len(runs) != 0 {
		t.Errorf("Expected 0 runs after clear, got %d", len(runs))
	}

	// High score is kept separately
	if high, _ := store.HighScore(HighScoreKey); high != 100 {
		t.Errorf("High score should survive ClearRuns, got %d", high)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
