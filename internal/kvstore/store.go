// Package kvstore provides the single local key-value store the game persists
// its progress, achievements and score history into.
package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Get when no value is stored under the key.
var ErrNotFound = errors.New("kvstore: key not found")

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Store defines the interface for reading and writing raw values by key.
// This allows for swapping the persistence layer and mocking it in tests.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Set overwrites the value stored under key.
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	// Close releases any resources held by the store.
	Close() error
}

// Open creates the store for the named backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	dir, err := ExpandHome(dataDir)
	if err != nil {
		return nil, err
	}

	switch backend {
	case BackendFile, "":
		return NewFileStore(filepath.Join(dir, "store"))
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "go-pairs.db"))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("kvstore: unknown backend %q", backend)
	}
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("kvstore: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
