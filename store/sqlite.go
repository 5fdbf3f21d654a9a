package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/etnz/stacker"
	_ "modernc.org/sqlite"
)

// SQLite stores documents in a single table of a SQLite database.
type SQLite struct {
	db *sql.DB
}

const createStacks = `
CREATE TABLE IF NOT EXISTS stacks (
	email TEXT PRIMARY KEY,
	document TEXT NOT NULL,
	updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// OpenSQLite opens or creates the database at path. Use ":memory:" for a
// transient database.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create database folder: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases alive and serializes
	// writers.
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(createStacks); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database at %s: %w", path, err)
	}
	return &SQLite{db: db}, nil
}

// Load reads the document of user.
func (s *SQLite) Load(ctx context.Context, user string) (stacker.Document, error) {
	if err := checkUser(user); err != nil {
		return stacker.Document{}, err
	}
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT document FROM stacks WHERE email = ?`, user).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return stacker.Document{}, nil
	}
	if err != nil {
		return stacker.Document{}, fmt.Errorf("cannot read stack of %q: %w", user, err)
	}
	doc, err := stacker.DecodeDocument(strings.NewReader(data))
	if err != nil {
		return stacker.Document{}, fmt.Errorf("stack of %q: %w", user, err)
	}
	return doc, nil
}

// Save replaces the document of user.
func (s *SQLite) Save(ctx context.Context, user string, doc stacker.Document) error {
	if err := checkUser(user); err != nil {
		return err
	}
	var b strings.Builder
	if err := stacker.EncodeDocument(&b, doc); err != nil {
		return fmt.Errorf("cannot encode stack of %q: %w", user, err)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO stacks (email, document, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		user, b.String(), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("cannot save stack of %q: %w", user, err)
	}
	return nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }
