package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sync"

	"github.com/etnz/stacker"
)

// File stores each document as a JSON file in a folder.
type File struct {
	dir string
	mu  sync.Mutex
}

// NewFile returns a store in dir, creating the folder if needed.
func NewFile(dir string) (*File, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create store folder %q: %w", dir, err)
	}
	return &File{dir: dir}, nil
}

func (f *File) path(user string) string {
	return filepath.Join(f.dir, url.PathEscape(user)+".json")
}

// Load reads the document of user.
func (f *File) Load(_ context.Context, user string) (stacker.Document, error) {
	if err := checkUser(user); err != nil {
		return stacker.Document{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(user))
	if errors.Is(err, fs.ErrNotExist) {
		return stacker.Document{}, nil
	}
	if err != nil {
		return stacker.Document{}, fmt.Errorf("cannot read stack of %q: %w", user, err)
	}
	doc, err := stacker.DecodeDocument(bytes.NewReader(data))
	if err != nil {
		return stacker.Document{}, fmt.Errorf("stack of %q: %w", user, err)
	}
	return doc, nil
}

// Save replaces the document of user.
func (f *File) Save(_ context.Context, user string, doc stacker.Document) error {
	if err := checkUser(user); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := stacker.EncodeDocument(&buf, doc); err != nil {
		return fmt.Errorf("cannot encode stack of %q: %w", user, err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// write aside then rename, a crash never leaves a truncated document.
	tmp, err := os.CreateTemp(f.dir, ".stack-*")
	if err != nil {
		return fmt.Errorf("cannot save stack of %q: %w", user, err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot save stack of %q: %w", user, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot save stack of %q: %w", user, err)
	}
	if err := os.Rename(tmp.Name(), f.path(user)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("cannot save stack of %q: %w", user, err)
	}
	return nil
}

// Close does nothing.
func (f *File) Close() error { return nil }
