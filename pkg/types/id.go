package types

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current instant. Controllers take a Clock so tests can
// drive time deterministically; production code passes time.Now.
type Clock func() time.Time

// NewID returns a new globally unique identifier (UUID v7, so ids sort
// roughly by creation time). Falls back to UUID v4 if v7 generation fails.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}
