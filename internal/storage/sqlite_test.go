package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/hexpop/internal/multiplayer"
)

func openTemp(t *testing.T) *Store {
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

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTemp(t)

	for _, score := range []int64{100, 50, 200} {
		if _, err := store.SaveScore("arcade", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("puzzle", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("arcade", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in descending order: %v", scores)
	}

	top, err := store.TopScores("arcade", 2)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 2 {
		t.Errorf("Expected 2 scores with limit, got %d", len(top))
	}

	puzzle, _ := store.TopScores("puzzle", 10)
	if len(puzzle) != 1 {
		t.Errorf("Expected 1 puzzle score, got %d", len(puzzle))
	}
}

func TestStoreHighScoreAndStats(t *testing.T) {
	store := openTemp(t)

	high, err := store.HighScore("zen")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty mode, got %d", high)
	}

	store.SaveScore("zen", 100)
	store.SaveScore("zen", 300)
	store.SaveScore("zen", 200)

	high, err = store.HighScore("zen")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}

	stats, err := store.Stats("zen")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.TotalScore != 600 || stats.AvgScore != 200 {
		t.Errorf("Unexpected stats: %+v", stats)
	}

	empty, err := store.Stats("versus")
	if err != nil {
		t.Fatalf("Stats() on empty mode failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Unexpected empty stats: %+v", empty)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTemp(t)

	store.SaveScore("arcade", 100)
	store.SaveScore("arcade", 200)
	store.SaveScore("puzzle", 300)

	if err := store.ClearScores("arcade"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	arcade, _ := store.TopScores("arcade", 10)
	if len(arcade) != 0 {
		t.Errorf("Expected 0 arcade scores after clear, got %d", len(arcade))
	}
	puzzle, _ := store.TopScores("puzzle", 10)
	if len(puzzle) != 1 {
		t.Errorf("Puzzle scores should not be affected by clearing arcade")
	}
}

func TestStoreSessions(t *testing.T) {
	store := openTemp(t)

	rec := SessionRecord{
		Mode:     "arcade",
		Seed:     42,
		Frames:   3600,
		Score:    1234,
		Shots:    57,
		Checksum: 0xfeedfacecafebeef,
		Outcome:  "lost:overflow",
	}
	id, err := store.SaveSession(rec)
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if len(id) != 36 {
		t.Errorf("Expected a generated UUID, got %q", id)
	}

	got, err := store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if got.Checksum != rec.Checksum || got.Seed != 42 || got.Frames != 3600 || got.Difficulty != "normal" {
		t.Errorf("Round-tripped session differs: %+v", got)
	}

	if _, err := store.Session("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}

	store.SaveSession(SessionRecord{Mode: "puzzle", Outcome: "won"})
	all, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(all))
	}
	arcade, _ := store.RecentSessions("arcade", 10)
	if len(arcade) != 1 || arcade[0].ID != id {
		t.Errorf("Mode filter returned %+v", arcade)
	}
}

func TestStoreSessionLayout(t *testing.T) {
	store := openTemp(t)

	layout := "R R R . . . . .\n G G . . . . .\n"
	id, err := store.SaveSession(SessionRecord{Mode: "puzzle", Seed: 7, Outcome: "won", Layout: layout})
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	got, err := store.Session(id)
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if got.Layout != layout {
		t.Errorf("Layout = %q, want %q", got.Layout, layout)
	}
}

func TestStoreMigratesSessionLayout(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("sql.Open() failed: %v", err)
	}
	_, err = db.Exec(`CREATE TABLE sessions (
		id TEXT PRIMARY KEY,
		mode TEXT NOT NULL,
		difficulty TEXT NOT NULL DEFAULT 'normal',
		seed INTEGER NOT NULL,
		frames INTEGER NOT NULL,
		score INTEGER NOT NULL DEFAULT 0,
		shots INTEGER NOT NULL DEFAULT 0,
		checksum TEXT NOT NULL,
		outcome TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	INSERT INTO sessions (id, mode, seed, frames, checksum, outcome)
	VALUES ('old', 'arcade', 1, 10, 'ff', 'quit');`)
	db.Close()
	if err != nil {
		t.Fatalf("creating old schema failed: %v", err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	got, err := store.Session("old")
	if err != nil {
		t.Fatalf("Session() failed: %v", err)
	}
	if got.Layout != "" || got.Checksum != 0xff {
		t.Errorf("Migrated session = %+v", got)
	}
	if _, err := store.SaveSession(SessionRecord{Mode: "puzzle", Layout: "R\n"}); err != nil {
		t.Errorf("SaveSession() after migration failed: %v", err)
	}
}

func TestStoreMatchResult(t *testing.T) {
	store := openTemp(t)

	data := multiplayer.MatchResultData{
		MatchID:   "m-1",
		Mode:      "versus",
		Seed:      7,
		Score1:    500,
		Score2:    320,
		Winner:    1,
		EndReason: "completed",
		Ticks:     4200,
		Checksum:  1 << 63,
	}
	if err := store.SaveMatchResult(data); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	m, err := store.Match("m-1")
	if err != nil {
		t.Fatalf("Match() failed: %v", err)
	}
	if m.Winner != 1 || m.Ticks != 4200 || m.Checksum != 1<<63 || m.Score2 != 320 {
		t.Errorf("Round-tripped match differs: %+v", m)
	}

	if err := store.SaveMatchResult(data); err == nil {
		t.Error("Expected duplicate match ID to fail")
	}
	if _, err := store.Match("m-2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}
