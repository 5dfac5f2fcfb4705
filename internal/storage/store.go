package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Store persists uploaded files under persona-scoped relative paths.
type Store interface {
	Save(relPath string, src io.Reader) (int64, error)
	Delete(relPath string) error
	DeletePrefix(prefix string) error
	Path(relPath string) string
}

// FSStore is a Store rooted at a directory on the local filesystem.
type FSStore struct {
	root string
}

// NewFSStore creates a store rooted at dir, creating it if needed.
func NewFSStore(dir string) (*FSStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	return &FSStore{root: dir}, nil
}

// resolve maps a relative path into the root, rejecting anything that
// would escape it.
func (s *FSStore) resolve(relPath string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(relPath))
	if clean == "." || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return "", fmt.Errorf("invalid storage path %q", relPath)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *FSStore) Save(relPath string, src io.Reader) (int64, error) {
	full, err := s.resolve(relPath)
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return 0, fmt.Errorf("creating storage directory: %w", err)
	}
	f, err := os.Create(full)
	if err != nil {
		return 0, fmt.Errorf("creating file: %w", err)
	}
	n, err := io.Copy(f, src)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(full)
		return 0, fmt.Errorf("writing file: %w", err)
	}
	return n, nil
}

func (s *FSStore) Delete(relPath string) error {
	full, err := s.resolve(relPath)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}

// DeletePrefix removes every file under the given relative directory.
func (s *FSStore) DeletePrefix(prefix string) error {
	full, err := s.resolve(prefix)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(full); err != nil {
		return fmt.Errorf("removing directory: %w", err)
	}
	return nil
}

// Path returns the absolute location of a stored file.
func (s *FSStore) Path(relPath string) string {
	full, err := s.resolve(relPath)
	if err != nil {
		return ""
	}
	return full
}
