// Package sqlite provides an embedded database.DB backend for local runs and tests.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"facility-registry/internal/config"
	"facility-registry/internal/database"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Schema mirrors migrations/V1__facilities.sql for the embedded backend.
const Schema = `
CREATE TABLE IF NOT EXISTS facilities_master (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	unique_name TEXT UNIQUE,
	json_data   TEXT NOT NULL,
	created_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS suggested_edits (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	master_id        TEXT NOT NULL DEFAULT '',
	edited_json_data TEXT,
	reason           TEXT NOT NULL DEFAULT '',
	submitter_ip     TEXT NOT NULL DEFAULT '',
	status           TEXT NOT NULL DEFAULT 'pending',
	created_at       TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
	reviewed_at      TEXT
);

CREATE INDEX IF NOT EXISTS idx_suggested_edits_status ON suggested_edits (status);
`

type DB struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at path and applies Schema.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	path := strings.TrimSpace(cfg.DBPath)
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, fmt.Errorf("create dirs: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Driver() string { return config.DriverSQLite }

func (d *DB) Ping(ctx context.Context) error {
	if d == nil || d.db == nil {
		return database.ErrNilDB
	}
	return d.db.PingContext(ctx)
}

func (d *DB) Close() error {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.Close()
}

func (d *DB) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	if d == nil || d.db == nil {
		return 0, database.ErrNilDB
	}
	return execer(ctx, d.db, query, args...)
}

func (d *DB) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	if d == nil || d.db == nil {
		return nil, database.ErrNilDB
	}
	r, err := d.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows{r: r}, nil
}

func (d *DB) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	if d == nil || d.db == nil {
		return errRow{err: database.ErrNilDB}
	}
	return d.db.QueryRowxContext(ctx, query, args...)
}

func (d *DB) Begin(ctx context.Context) (database.Tx, error) {
	if d == nil || d.db == nil {
		return nil, database.ErrNilDB
	}
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return txx{tx: tx}, nil
}

func (d *DB) SQLDB() *sql.DB {
	if d == nil || d.db == nil {
		return nil
	}
	return d.db.DB
}

type execContexter interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func execer(ctx context.Context, e execContexter, query string, args ...any) (int64, error) {
	res, err := e.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}
	return n, nil
}

type txx struct {
	tx *sqlx.Tx
}

func (t txx) Exec(ctx context.Context, query string, args ...any) (int64, error) {
	return execer(ctx, t.tx, query, args...)
}

func (t txx) Query(ctx context.Context, query string, args ...any) (database.Rows, error) {
	r, err := t.tx.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return rows{r: r}, nil
}

func (t txx) QueryRow(ctx context.Context, query string, args ...any) database.Row {
	return t.tx.QueryRowxContext(ctx, query, args...)
}

func (t txx) Commit(_ context.Context) error {
	return t.tx.Commit()
}

func (t txx) Rollback(_ context.Context) error {
	err := t.tx.Rollback()
	if err == sql.ErrTxDone {
		return nil
	}
	return err
}

type rows struct {
	r *sqlx.Rows
}

func (r rows) Close() {
	_ = r.r.Close()
}

func (r rows) Next() bool {
	return r.r.Next()
}

func (r rows) Scan(dest ...any) error {
	return r.r.Scan(dest...)
}

func (r rows) Err() error {
	return r.r.Err()
}

type errRow struct {
	err error
}

func (r errRow) Scan(_ ...any) error {
	return r.err
}
