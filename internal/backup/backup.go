// Package backup writes best-effort backup copies of the serialized library
// document. Backups land at a fixed, well-known path and each one overwrites
// the previous; failures are logged by the caller, never surfaced as
// blocking errors.
package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"

	"github.com/mesh-intelligence/satchel/internal/store"
)

// FileName is the fixed backup file name under the resolved backup
// directory.
const FileName = "satchel-backup.json"

// Writer persists backups into a single directory.
type Writer struct {
	dir string
}

// NewWriter returns a Writer targeting dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir}
}

// Path returns the full backup file path.
func (w *Writer) Path() string {
	return filepath.Join(w.dir, FileName)
}

// Write overwrites the backup file with data. Transient filesystem errors
// are retried a few times before giving up.
func (w *Writer) Write(ctx context.Context, data []byte) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}

	err := retry.Do(
		func() error { return store.WriteFileAtomic(w.Path(), data) },
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return fmt.Errorf("write backup: %w", err)
	}
	return nil
}
