package types

import "errors"

// Validation errors raised by library mutators. The controller catches these
// at its boundary and surfaces them as a dismissible last-error value; the
// document is left untouched.
var (
	ErrTitleRequired        = errors.New("prompt title is required")
	ErrContentRequired      = errors.New("prompt content is required")
	ErrCategoryRequired     = errors.New("category is required")
	ErrCategoryNameRequired = errors.New("category name is required")
	ErrCategoryNameTaken    = errors.New("category name already exists")
	ErrReservedCategory     = errors.New("the uncategorized category cannot be changed")
	ErrCategoryNotFound     = errors.New("category not found")
	ErrPromptNotFound       = errors.New("prompt not found")
)

// Parse and storage errors.
var (
	// ErrNoDocument is returned by a store when no document has been
	// persisted yet. Callers fall back to DefaultDocument.
	ErrNoDocument = errors.New("no document in store")

	// ErrInvalidDocument is returned when explicitly imported content is
	// not parseable JSON. Load-time corruption is never surfaced this way;
	// it silently resets to a fresh document instead.
	ErrInvalidDocument = errors.New("invalid document")
)

// Config validation errors.
var (
	ErrBackendEmpty   = errors.New("backend must not be empty")
	ErrBackendUnknown = errors.New("unknown backend")
	ErrDataDirEmpty   = errors.New("data directory must not be empty")
)
