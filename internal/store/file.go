package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

const fileStoreName = "library.json"

// FileStore persists the document as a single JSON file. Fallback backend
// for contexts where SQLite is unavailable.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// OpenFile creates dataDir if needed and returns a file-backed store. The
// document file itself is created on first write.
func OpenFile(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FileStore{path: filepath.Join(dataDir, fileStoreName)}, nil
}

// ReadRaw returns the file contents, or ErrNoDocument if the file does not
// exist yet.
func (s *FileStore) ReadRaw(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, types.ErrNoDocument
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}

// WriteRaw replaces the file contents using the temp-file, fsync, rename
// pattern so a crash mid-write never leaves a truncated document behind.
func (s *FileStore) WriteRaw(ctx context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return WriteFileAtomic(s.path, data)
}

// Path returns the document file path.
func (s *FileStore) Path() string {
	return s.path
}

// Close is a no-op for the file store.
func (s *FileStore) Close() error {
	return nil
}

// WriteFileAtomic writes data to path via a temp file in the same directory,
// fsync, then rename. Shared with the backup writer.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".satchel-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
