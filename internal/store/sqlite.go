package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the value as one row of a settings table, keyed by
// slot name, so several tools can share a database file.
type SQLiteBackend struct {
	db   *sql.DB
	path string
	slot string
}

// OpenSQLite opens (creating when missing) the database at path and prepares
// the settings table.
func OpenSQLite(ctx context.Context, path, slot string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}
	// modernc.org/sqlite registers itself as "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	stmts := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA busy_timeout=5000;",
		`CREATE TABLE IF NOT EXISTS settings (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("prepare sqlite store: %w", err)
		}
	}
	return &SQLiteBackend{db: db, path: path, slot: slot}, nil
}

func (b *SQLiteBackend) Read(ctx context.Context) (string, error) {
	var value string
	err := b.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE name = ?`, b.slot).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (b *SQLiteBackend) Write(ctx context.Context, value string) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO settings (name, value) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value`,
		b.slot, value)
	return err
}

func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}

func (b *SQLiteBackend) Describe() string {
	return fmt.Sprintf("sqlite:%s#%s", b.path, b.slot)
}
