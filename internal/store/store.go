// Package store implements the persistence port for the prompt library
// document: a raw read/write contract over one of two interchangeable
// backends. The SQLite backend is preferred; the plain-file backend is the
// fallback when SQLite cannot be opened. The backend is chosen once at Open
// and does not change mid-session.
//
// The store is shared, unsynchronized state between execution contexts: the
// CLI/serve controller and the bridge capture path both write whole documents
// through it with last-writer-wins semantics.
package store

import (
	"context"

	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Store is the persistence port. ReadRaw returns types.ErrNoDocument when
// nothing has been persisted yet; unparsable content is the caller's problem
// (the controller treats it as no document found).
type Store interface {
	// ReadRaw returns the serialized document, or ErrNoDocument.
	ReadRaw(ctx context.Context) ([]byte, error)

	// WriteRaw replaces the serialized document.
	WriteRaw(ctx context.Context, data []byte) error

	// Path returns the backing file path, for change watching.
	Path() string

	// Close releases backend resources. Idempotent.
	Close() error
}

// Open validates the config and opens the selected backend. With BackendAuto
// it probes SQLite first and falls back to the file store, logging the
// demotion; this mirrors the capability detection a privileged context does
// at startup.
func Open(cfg types.Config, log logger.Logger) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch cfg.Backend {
	case types.BackendSQLite:
		return OpenSQLite(cfg.DataDir)
	case types.BackendFile:
		return OpenFile(cfg.DataDir)
	default: // types.BackendAuto
		st, err := OpenSQLite(cfg.DataDir)
		if err == nil {
			return st, nil
		}
		log.Warn("sqlite store unavailable, falling back to file store",
			logger.Error(err))
		return OpenFile(cfg.DataDir)
	}
}
