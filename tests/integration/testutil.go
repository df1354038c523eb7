// Package integration exercises the full satchel stack in-process: real
// stores on disk, the library controller on top, and the bridge handlers
// over httptest. No mocks below the controller.
package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// backends lists the store configurations every lifecycle test runs against.
var backends = []string{types.BackendFile, types.BackendSQLite}

// openStore opens a store of the given backend in dataDir and registers
// cleanup.
func openStore(t *testing.T, backend, dataDir string) store.Store {
	t.Helper()
	st, err := store.Open(types.Config{Backend: backend, DataDir: dataDir}, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

// newController opens a loaded controller over st.
func newController(t *testing.T, st store.Store) *library.Controller {
	t.Helper()
	ctrl := library.New(st, logger.Nop(), library.Options{})
	require.NoError(t, ctrl.Load(context.Background()))
	return ctrl
}

// flush persists any pending mutation immediately.
func flush(t *testing.T, ctrl *library.Controller) {
	t.Helper()
	require.NoError(t, ctrl.Flush(context.Background()))
}
