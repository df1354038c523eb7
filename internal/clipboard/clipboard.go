// Package clipboard defines the external copy sink used when a prompt's
// content is copied out of the library.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// Sink receives prompt content copied out to an external consumer. A failed
// write must leave the caller free to skip any state mutation.
type Sink interface {
	Write(text string) error
}

// System writes to the OS clipboard.
type System struct{}

func (System) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	return nil
}
