package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ImageStore persists todo image blobs. The row referencing a blob and the
// blob itself are never mutated transactionally; callers treat deletion as
// best-effort.
type ImageStore interface {
	// Save writes the blob and returns the stored path
	Save(r io.Reader, ext string) (string, error)

	// Delete removes a stored blob
	Delete(path string) error
}

// LocalImageStore keeps blobs on the local filesystem under a base directory.
type LocalImageStore struct {
	baseDir string
}

// NewLocalImageStore creates an ImageStore rooted at baseDir.
func NewLocalImageStore(baseDir string) *LocalImageStore {
	return &LocalImageStore{baseDir: baseDir}
}

// Save writes the blob under a random name and returns its path relative to
// the base directory.
func (s *LocalImageStore) Save(r io.Reader, ext string) (string, error) {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create image directory: %w", err)
	}

	name := uuid.NewString() + ext
	f, err := os.Create(filepath.Join(s.baseDir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create image file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write image file: %w", err)
	}

	return name, nil
}

// Delete removes a stored blob
func (s *LocalImageStore) Delete(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.baseDir, path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
