// Package storage provides SQLite-based persistence for scores, recorded
// sessions and versus matches.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/hexpop/internal/multiplayer"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("storage: not found")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	Mode      string
	Score     int64
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_mode ON scores(mode);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(mode, score DESC);

		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT 'normal',
			seed INTEGER NOT NULL,
			frames INTEGER NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			shots INTEGER NOT NULL DEFAULT 0,
			checksum TEXT NOT NULL,
			outcome TEXT NOT NULL,
			layout TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions(mode);

		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			match_id TEXT NOT NULL UNIQUE,
			mode TEXT NOT NULL,
			seed INTEGER NOT NULL,
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			winner INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			checksum TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.ensureColumn("sessions", "layout", `TEXT NOT NULL DEFAULT ''`)
}

// ensureColumn adds a column to tables created before it existed.
func (s *Store) ensureColumn(table, column, decl string) error {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?`, table, column,
	).Scan(&n)
	if err != nil || n > 0 {
		return err
	}
	_, err = s.db.Exec(`ALTER TABLE ` + table + ` ADD COLUMN ` + column + ` ` + decl)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a new score for the given mode.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(mode string, score int64) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (mode, score) VALUES (?, ?)",
		mode, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given mode.
// Results are ordered by score descending.
func (s *Store) TopScores(mode string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, mode, score, created_at
		 FROM scores
		 WHERE mode = ?
		 ORDER BY score DESC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Mode, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given mode.
// Returns 0 if no scores exist.
func (s *Store) HighScore(mode string) (int64, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE mode = ?",
		mode,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return score.Int64, nil
}

// ClearScores deletes all scores for the given mode.
func (s *Store) ClearScores(mode string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ModeStats contains aggregated statistics for a mode.
type ModeStats struct {
	Mode       string
	GamesCount int
	HighScore  int64
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Stats retrieves aggregated statistics for a specific mode.
func (s *Store) Stats(mode string) (*ModeStats, error) {
	stats := &ModeStats{Mode: mode}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE mode = ?`,
		mode,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles both time.Time and the SQLite text form.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func formatChecksum(sum uint64) string {
	return strconv.FormatUint(sum, 16)
}

func parseChecksum(s string) (uint64, error) {
	sum, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("storage: bad checksum %q: %w", s, err)
	}
	return sum, nil
}

// SessionRecord is everything needed to re-run a headless session and
// check that it reproduces.
type SessionRecord struct {
	ID         string
	Mode       string
	Difficulty string
	Seed       int64
	Frames     int
	Score      int64
	Shots      int
	Checksum   uint64
	Outcome    string
	Layout     string // starting board as Board.String() rows, empty for a generated board
	CreatedAt  time.Time
}

// SaveSession stores a session record. An empty ID is replaced by a new
// UUID, which is returned.
func (s *Store) SaveSession(rec SessionRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.Difficulty == "" {
		rec.Difficulty = "normal"
	}
	_, err := s.db.Exec(
		`INSERT INTO sessions (id, mode, difficulty, seed, frames, score, shots, checksum, outcome, layout)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Mode, rec.Difficulty, rec.Seed, rec.Frames, rec.Score, rec.Shots,
		formatChecksum(rec.Checksum), rec.Outcome, rec.Layout,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save session: %w", err)
	}
	return rec.ID, nil
}

const sessionColumns = `id, mode, difficulty, seed, frames, score, shots, checksum, outcome, layout, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (SessionRecord, error) {
	var rec SessionRecord
	var checksum string
	var createdAt any
	if err := row.Scan(&rec.ID, &rec.Mode, &rec.Difficulty, &rec.Seed, &rec.Frames,
		&rec.Score, &rec.Shots, &checksum, &rec.Outcome, &rec.Layout, &createdAt); err != nil {
		return rec, err
	}
	sum, err := parseChecksum(checksum)
	if err != nil {
		return rec, err
	}
	rec.Checksum = sum
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// Session retrieves a session record by ID. Returns ErrNotFound if absent.
func (s *Store) Session(id string) (*SessionRecord, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	rec, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: session %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &rec, nil
}

// RecentSessions retrieves the most recent sessions, optionally filtered
// by mode.
func (s *Store) RecentSessions(mode string, limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions
		 WHERE ? = '' OR mode = ?
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		rec, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return out, nil
}

// MatchRecord is the stored outcome of a versus match.
type MatchRecord struct {
	ID        int64
	MatchID   string
	Mode      string
	Seed      int64
	Score1    int64
	Score2    int64
	Winner    int // 0 for a draw
	EndReason string
	Ticks     uint64
	Checksum  uint64
	CreatedAt time.Time
}

// SaveMatch records the result of a versus match.
// Returns the ID of the inserted record.
func (s *Store) SaveMatch(m MatchRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO matches
		 (match_id, mode, seed, score1, score2, winner, end_reason, ticks, checksum)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.MatchID, m.Mode, m.Seed, m.Score1, m.Score2, m.Winner, m.EndReason,
		int64(m.Ticks), formatChecksum(m.Checksum), //#nosec G115 -- tick counts fit in int64
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Match retrieves a versus match by its match ID. Returns ErrNotFound if
// absent.
func (s *Store) Match(matchID string) (*MatchRecord, error) {
	var m MatchRecord
	var ticks int64
	var checksum string
	var createdAt any

	err := s.db.QueryRow(
		`SELECT id, match_id, mode, seed, score1, score2, winner, end_reason, ticks, checksum, created_at
		 FROM matches
		 WHERE match_id = ?`,
		matchID,
	).Scan(&m.ID, &m.MatchID, &m.Mode, &m.Seed, &m.Score1, &m.Score2, &m.Winner,
		&m.EndReason, &ticks, &checksum, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: match %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}

	if m.Checksum, err = parseChecksum(checksum); err != nil {
		return nil, err
	}
	m.Ticks = uint64(ticks) //#nosec G115 -- stored from a uint64
	m.CreatedAt = parseTime(createdAt)
	return &m, nil
}

// SaveMatchResult implements multiplayer.ResultSaver.
// This adapter allows a match to save its result without a direct storage dependency.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveMatch(MatchRecord{
		MatchID:   data.MatchID,
		Mode:      data.Mode,
		Seed:      data.Seed,
		Score1:    data.Score1,
		Score2:    data.Score2,
		Winner:    data.Winner,
		EndReason: data.EndReason,
		Ticks:     data.Ticks,
		Checksum:  data.Checksum,
	})
	return err
}

// Ensure Store implements ResultSaver
var _ multiplayer.ResultSaver = (*Store)(nil)
