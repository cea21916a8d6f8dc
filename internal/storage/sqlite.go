// Package storage provides SQLite-based persistence for finished games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only summaries are stored; boards themselves are never saved.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/session"
)

// Store manages the SQLite database connection for game results.
type Store struct {
	db *sql.DB
}

// Result is one finished game.
type Result struct {
	ID        int64     `json:"id"`
	Mode      string    `json:"mode"` // Registry ID, "2048" or "2048_endless"
	Moves     int       `json:"moves"`
	MaxTile   int       `json:"max_tile"`
	Tiles     int       `json:"tiles"`
	Won       bool      `json:"won"`
	Outcome   string    `json:"outcome"`
	Seed      int64     `json:"seed"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats aggregates the results of one mode.
type Stats struct {
	Mode       string    `json:"mode"`
	Games      int       `json:"games"`
	Wins       int       `json:"wins"`
	BestTile   int       `json:"best_tile"`
	AvgMoves   float64   `json:"avg_moves"`
	TotalMoves int64     `json:"total_moves"`
	LastPlayed time.Time `json:"last_played"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := config.ExpandHome(dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
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
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			mode TEXT NOT NULL,
			moves INTEGER NOT NULL,
			max_tile INTEGER NOT NULL,
			tiles INTEGER NOT NULL,
			won INTEGER NOT NULL DEFAULT 0,
			outcome TEXT NOT NULL,
			seed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_mode ON results(mode);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(mode, won DESC, max_tile DESC, moves ASC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game and returns its row ID.
func (s *Store) SaveResult(r Result) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO results (mode, moves, max_tile, tiles, won, outcome, seed)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Mode, r.Moves, r.MaxTile, r.Tiles, r.Won, r.Outcome, r.Seed,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// SaveSummary implements session.ResultSaver.
func (s *Store) SaveSummary(sum session.Summary) error {
	_, err := s.SaveResult(Result{
		Mode:    sum.Mode.ID(),
		Moves:   sum.Moves,
		MaxTile: sum.MaxTile,
		Tiles:   sum.Tiles,
		Won:     sum.Won,
		Outcome: string(sum.Outcome),
		Seed:    sum.Seed,
	})
	return err
}

// Ensure Store implements ResultSaver
var _ session.ResultSaver = (*Store)(nil)

const resultColumns = `id, mode, moves, max_tile, tiles, won, outcome, seed, created_at`

// TopResults retrieves the best N results for a mode:
// wins first, then the highest tile, then the fewest moves.
func (s *Store) TopResults(mode string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE mode = ?
		 ORDER BY won DESC, max_tile DESC, moves ASC, id ASC
		 LIMIT ?`,
		mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		r, err := scanResult(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return results, nil
}

// BestResult returns the top result for a mode, or false if none exist.
func (s *Store) BestResult(mode string) (Result, bool, error) {
	row := s.db.QueryRow(
		`SELECT `+resultColumns+`
		 FROM results
		 WHERE mode = ?
		 ORDER BY won DESC, max_tile DESC, moves ASC, id ASC
		 LIMIT 1`,
		mode,
	)

	r, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Result{}, false, nil
	}
	if err != nil {
		return Result{}, false, err
	}
	return r, true, nil
}

// ClearResults deletes all results for a mode.
func (s *Store) ClearResults(mode string) error {
	_, err := s.db.Exec("DELETE FROM results WHERE mode = ?", mode)
	if err != nil {
		return fmt.Errorf("storage: cannot clear results: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a mode.
func (s *Store) Stats(mode string) (*Stats, error) {
	stats := &Stats{Mode: mode}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(won), 0), COALESCE(MAX(max_tile), 0),
		        COALESCE(AVG(moves), 0), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM results WHERE mode = ?`,
		mode,
	).Scan(&stats.Games, &stats.Wins, &stats.BestTile, &stats.AvgMoves, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every mode that has been played.
func (s *Store) AllStats() (map[string]*Stats, error) {
	rows, err := s.db.Query(
		`SELECT mode, COUNT(*), SUM(won), MAX(max_tile), AVG(moves), SUM(moves), MAX(created_at)
		 FROM results
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	all := make(map[string]*Stats)
	for rows.Next() {
		var st Stats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Games, &st.Wins, &st.BestTile, &st.AvgMoves, &st.TotalMoves, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		all[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(row scanner) (Result, error) {
	var r Result
	var createdAt any
	err := row.Scan(&r.ID, &r.Mode, &r.Moves, &r.MaxTile, &r.Tiles, &r.Won, &r.Outcome, &r.Seed, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return r, err
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles the driver returning either time.Time or text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
