// Package storage keeps a ledger of finished games for the lifetime of the
// process. Uses the pure-Go modernc.org/sqlite driver with an in-memory
// database, so nothing is written to disk.
package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/touchtris/internal/games/tetris"
)

// memoryDSN names a private in-memory database.
const memoryDSN = ":memory:"

// Store manages the in-memory results database. It is safe for concurrent
// use by several game sessions.
type Store struct {
	db *sql.DB
}

// ResultEntry represents a single finished game.
type ResultEntry struct {
	ID         int64
	Player     string
	Singles    int
	Doubles    int
	Triples    int
	Tetrises   int
	Lines      int
	DurationMs int64
	CreatedAt  time.Time
}

// Open creates an empty results ledger.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	// Run migrations
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			singles INTEGER NOT NULL DEFAULT 0,
			doubles INTEGER NOT NULL DEFAULT 0,
			triples INTEGER NOT NULL DEFAULT 0,
			tetrises INTEGER NOT NULL DEFAULT 0,
			lines INTEGER NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_results_top ON results(lines DESC, duration_ms DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection. The ledger is gone afterwards.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveResult records a finished game.
func (s *Store) SaveResult(r tetris.SessionResult) error {
	_, err := s.Insert(r)
	return err
}

// Insert records a finished game and returns its ID.
func (s *Store) Insert(r tetris.SessionResult) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO results (player, singles, doubles, triples, tetrises, lines, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Score.Singles(), r.Score.Doubles(), r.Score.Triples(), r.Score.Tetrises(),
		r.Score.Lines(), int64(r.DurationMs),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save result: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// BestLines returns the most lines cleared in any recorded game.
// Returns 0 if no games were recorded.
func (s *Store) BestLines() (int, error) {
	var lines sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(lines) FROM results").Scan(&lines); err != nil {
		return 0, fmt.Errorf("storage: cannot query best result: %w", err)
	}

	if !lines.Valid {
		return 0, nil
	}

	return int(lines.Int64), nil
}

// TopResults retrieves the best N games, most lines first, longer games
// breaking ties.
func (s *Store) TopResults(limit int) ([]ResultEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, singles, doubles, triples, tetrises, lines, duration_ms, created_at
		 FROM results
		 ORDER BY lines DESC, duration_ms DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query results: %w", err)
	}
	defer rows.Close()

	var entries []ResultEntry
	for rows.Next() {
		var e ResultEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Singles, &e.Doubles, &e.Triples, &e.Tetrises,
			&e.Lines, &e.DurationMs, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}

		// Parse the datetime - handle both time.Time and string
		switch v := createdAt.(type) {
		case time.Time:
			e.CreatedAt = v
		case string:
			if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
				e.CreatedAt = parsed
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// Count returns how many games were recorded.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM results").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count results: %w", err)
	}
	return n, nil
}
