package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalStore saves blobs under <dir>/items on the local disk. Saved files
// are served by the HTTP layer under /uploads.
type LocalStore struct {
	dir string
}

// NewLocalStore creates a local blob store rooted at dir
func NewLocalStore(dir string) (*LocalStore, error) {
	itemsDir := filepath.Join(dir, "items")
	if err := os.MkdirAll(itemsDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save writes the blob to disk and returns its path relative to the
// upload root, e.g. /uploads/items/<name>.
func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader) (string, error) {
	path := filepath.Join(s.dir, "items", name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return "/uploads/items/" + name, nil
}

// Remove deletes a saved blob from disk
func (s *LocalStore) Remove(ctx context.Context, name string) error {
	path := filepath.Join(s.dir, "items", name)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
