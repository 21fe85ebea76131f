// internal/store/sqlite.go
//
// SQLite-backed session log.
// Responsibilities:
//   - Opening SQLite database with safe defaults (WAL, busy timeout, foreign keys).
//   - Applying embedded migrations (idempotent, recorded in _migrations).
//   - Appending finished games and reading them back, including the
//     per-day leaderboard for daily games.

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
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// SQLiteLog is a Log stored in the games table.
type SQLiteLog struct {
	db *sql.DB
}

// OpenSQLite opens (creating if missing) the database at dsn and migrates it.
func OpenSQLite(dsn string) (*SQLiteLog, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db, migrations); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteLog{db: db}, nil
}

func (l *SQLiteLog) Close() error { return l.db.Close() }

/**
 * openDB opens (and creates if missing) a SQLite database file.
 *
 * - Ensures parent directory exists for relative DSNs (e.g. ./data/app.db).
 * - Configures busy timeout and WAL journaling mode.
 * - Enforces foreign keys.
 */
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

/**
 * migrate applies the *.sql files of fsys in lexical order.
 *
 * - Uses a _migrations table to track applied files.
 * - Each file runs in its own transaction together with its _migrations row.
 */
func migrate(db *sql.DB, fsys fs.FS) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	files, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		name := filepath.Base(f)
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, name).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", name).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(fsys, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", name, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, name); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", name, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", name, err)
		}
		log.Info().Str("migration", name).Msg("applied")
	}
	return nil
}

// Append inserts e. Appending the same ID twice is ignored.
func (l *SQLiteLog) Append(ctx context.Context, e Entry) error {
	var daily any
	if e.Daily != "" {
		daily = e.Daily
	}
	_, err := l.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO games
            (id, answer, guesses, tries, won, hard, daily, finished_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, strings.ToUpper(e.Answer), strings.ToUpper(strings.Join(e.Guesses, " ")),
		e.Tries(), e.Won, e.Hard, daily, e.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append game %s: %w", e.ID, err)
	}
	return nil
}

// Entries returns every logged game in insertion order.
func (l *SQLiteLog) Entries(ctx context.Context) ([]Entry, error) {
	return l.query(ctx, `
        SELECT id, answer, guesses, won, hard, COALESCE(daily, ''), finished_at
        FROM games ORDER BY seq ASC`)
}

/**
 * Leaderboard returns the won daily games for date.
 *
 * - Ordered by tries ASC, then finish time ASC.
 * - Default limit is 20 if not specified.
 */
func (l *SQLiteLog) Leaderboard(ctx context.Context, date string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	return l.query(ctx, `
        SELECT id, answer, guesses, won, hard, COALESCE(daily, ''), finished_at
        FROM games
        WHERE daily=? AND won=1
        ORDER BY tries ASC, finished_at ASC
        LIMIT ?`, date, limit)
}

func (l *SQLiteLog) query(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := l.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var guesses, finished string
		if err := rows.Scan(&e.ID, &e.Answer, &guesses, &e.Won, &e.Hard, &e.Daily, &finished); err != nil {
			return nil, err
		}
		e.Guesses = strings.Fields(guesses)
		e.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, e)
	}
	return out, rows.Err()
}
