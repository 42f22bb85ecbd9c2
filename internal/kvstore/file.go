package kvstore

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
)

var validKeyRe = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// FileStore is an implementation of Store that keeps one JSON file per key.
type FileStore struct {
	dir string
}

// NewFileStore creates a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("kvstore: cannot create directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (fs *FileStore) path(key string) (string, error) {
	if !validKeyRe.MatchString(key) {
		return "", fmt.Errorf("kvstore: invalid key %q", key)
	}
	return filepath.Join(fs.dir, key+".json"), nil
}

// Get reads the file backing key.
func (fs *FileStore) Get(key string) ([]byte, error) {
	p, err := fs.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	// If the file doesn't exist the key was never written.
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("kvstore: error reading %s: %w", p, err)
	}
	return data, nil
}

// Set writes value to a temporary file and renames it over the key's file,
// so a reader never sees a half-written value.
func (fs *FileStore) Set(key string, value []byte) error {
	p, err := fs.path(key)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fs.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("kvstore: error opening temp file for writing: %w", err)
	}
	tmpName := tmp.Name()

	writer := bufio.NewWriter(tmp)
	if _, err := writer.Write(value); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: error writing %s: %w", key, err)
	}
	if err := writer.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: error flushing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: error closing %s: %w", key, err)
	}

	if err := os.Rename(tmpName, p); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("kvstore: error replacing %s: %w", p, err)
	}
	return nil
}

// Delete removes the key's file.
func (fs *FileStore) Delete(key string) error {
	p, err := fs.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("kvstore: error removing %s: %w", p, err)
	}
	return nil
}

// Close is a no-op for the file store.
func (fs *FileStore) Close() error {
	return nil
}
