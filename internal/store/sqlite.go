// internal/store/sqlite.go
//
// SQLite persistence for finished games.
// Responsibilities:
//   - Opening the database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations from sql/*.sql (idempotent, recorded in _migrations).
//   - Recording results and computing aggregate stats.

package store

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed sql/*.sql
var migrations embed.FS

// Modes a result can be recorded under.
const (
	ModeFree  = "free"
	ModeDaily = "daily"
)

// OpenDB opens (and creates if missing) a SQLite database file and applies
// migrations. ":memory:" is accepted for tests.
func OpenDB(dsn string) (*sql.DB, error) {
	if dsn != ":memory:" {
		dir := filepath.Dir(dsn)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("mkdir %s: %w", dir, err)
			}
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, err
	}
	if dsn == ":memory:" {
		// every pooled connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Migrate applies embedded migrations in lexical order, each inside its own
// transaction, skipping files already recorded in _migrations.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(migrations, "sql/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		body, err := migrations.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(body)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", strings.TrimPrefix(f, "sql/")).Msg("applied")
	}
	return nil
}

// Result is one finished game.
type Result struct {
	GameID    string `json:"gameId"`
	PlayerID  string `json:"playerId"`
	Mode      string `json:"mode"`
	Date      string `json:"date"` // YYYY-MM-DD, UTC
	Target    string `json:"target"`
	Status    string `json:"status"` // won | lost
	Guesses   int    `json:"guesses"`
	ElapsedMs int64  `json:"elapsedMs"`
}

// Summary aggregates finished games.
type Summary struct {
	Played       int         `json:"played"`
	Wins         int         `json:"wins"`
	Losses       int         `json:"losses"`
	Distribution map[int]int `json:"distribution"` // guesses → wins
}

// Results records and queries finished games.
type Results struct{ db *sql.DB }

// NewResults wraps an open database.
func NewResults(db *sql.DB) *Results { return &Results{db: db} }

// Insert records r. Inserting the same game twice, or a second daily result
// for the same player and date, is silently ignored.
// It reports whether a row was written.
func (s *Results) Insert(ctx context.Context, r Result) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO results
            (game_id, player_id, mode, date, target, status, guesses, elapsed_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.GameID, r.PlayerID, r.Mode, r.Date, r.Target, r.Status, r.Guesses, r.ElapsedMs,
	)
	if err != nil {
		return false, fmt.Errorf("insert result: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Summary aggregates results, for one player when playerID is set.
func (s *Results) Summary(ctx context.Context, playerID string) (Summary, error) {
	q := `SELECT status, guesses, COUNT(1) FROM results`
	var args []any
	if playerID != "" {
		q += ` WHERE player_id=?`
		args = append(args, playerID)
	}
	q += ` GROUP BY status, guesses`

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return Summary{}, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	out := Summary{Distribution: map[int]int{}}
	for rows.Next() {
		var status string
		var guesses, n int
		if err := rows.Scan(&status, &guesses, &n); err != nil {
			return Summary{}, err
		}
		out.Played += n
		if status == "won" {
			out.Wins += n
			out.Distribution[guesses] += n
		} else {
			out.Losses += n
		}
	}
	return out, rows.Err()
}
