package storage

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Storage keys used by the storefront stores
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
)

// Store is a small key/value persistence layer filling the role browser
// local storage plays for the storefront: one JSON document per key,
// scoped to a directory, surviving restarts. Writes are whole-document
// replacements; there is no cross-process locking, so concurrent
// writers outside this process follow last-write-wins.
type Store struct {
	fs     afero.Fs
	dir    string
	logger *zap.Logger
}

// New creates a storage layer rooted at dir on the given filesystem
func New(fs afero.Fs, dir string, logger *zap.Logger) *Store {
	return &Store{
		fs:     fs,
		dir:    dir,
		logger: logger,
	}
}

// Read returns the raw document stored under key, or nil if no document
// exists yet.
func (s *Store) Read(key string) ([]byte, error) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("Failed to read storage key",
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}
	return data, nil
}

// Write replaces the document stored under key
func (s *Store) Write(key string, data []byte) error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("Failed to create storage directory",
			zap.String("dir", s.dir),
			zap.Error(err),
		)
		return err
	}

	if err := afero.WriteFile(s.fs, s.path(key), data, 0o644); err != nil {
		s.logger.Error("Failed to write storage key",
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}
