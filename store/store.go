// Package store persists stack documents, one per user.
package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/etnz/stacker"
	"github.com/etnz/stacker/config"
)

var (
	// ErrUnknownBackend is returned by Open for an unsupported backend name.
	ErrUnknownBackend = errors.New("unknown storage backend")
	// ErrNoUser is returned when the user id is empty.
	ErrNoUser = errors.New("missing user")
)

// Store loads and saves documents.
//
// Load of a user without a document returns the empty document. Stores are
// safe for concurrent use.
type Store interface {
	Load(ctx context.Context, user string) (stacker.Document, error)
	Save(ctx context.Context, user string, doc stacker.Document) error
	Close() error
}

// Open opens the backend selected by cfg.Store.
func Open(cfg *config.Config) (Store, error) {
	switch strings.ToLower(cfg.Store) {
	case "", "file":
		return NewFile(cfg.Data)
	case "sqlite":
		path := cfg.Data
		if filepath.Ext(path) == "" {
			path = filepath.Join(path, "stacker.db")
		}
		return OpenSQLite(path)
	case "redis":
		return OpenRedis(cfg.RedisAddr)
	default:
		return nil, fmt.Errorf("%w %q, want file, sqlite or redis", ErrUnknownBackend, cfg.Store)
	}
}

func checkUser(user string) error {
	if strings.TrimSpace(user) == "" {
		return ErrNoUser
	}
	return nil
}
