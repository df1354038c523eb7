package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := OpenFile(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.ReadRaw(ctx)
	assert.ErrorIs(t, err, types.ErrNoDocument)

	require.NoError(t, st.WriteRaw(ctx, []byte(`{"version":1}`)))
	got, err := st.ReadRaw(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(got))

	// Overwrite replaces, never appends.
	require.NoError(t, st.WriteRaw(ctx, []byte(`{"version":1,"prompts":[]}`)))
	got, err = st.ReadRaw(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1,"prompts":[]}`, string(got))
}

func TestFileStoreCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")
	st, err := OpenFile(dataDir)
	require.NoError(t, err)
	defer st.Close()

	info, err := os.Stat(dataDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dataDir, fileStoreName), st.Path())
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dataDir := t.TempDir()
	st, err := OpenFile(dataDir)
	require.NoError(t, err)
	defer st.Close()

	require.NoError(t, st.WriteRaw(context.Background(), []byte("x")))

	entries, err := os.ReadDir(dataDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, fileStoreName, entries[0].Name())
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	st, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)
	defer st.Close()

	_, err = st.ReadRaw(ctx)
	assert.ErrorIs(t, err, types.ErrNoDocument)

	require.NoError(t, st.WriteRaw(ctx, []byte(`{"version":1}`)))
	got, err := st.ReadRaw(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, string(got))

	require.NoError(t, st.WriteRaw(ctx, []byte(`updated`)))
	got, err = st.ReadRaw(ctx)
	require.NoError(t, err)
	assert.Equal(t, `updated`, string(got))
}

func TestSQLiteStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dataDir := t.TempDir()

	st, err := OpenSQLite(dataDir)
	require.NoError(t, err)
	require.NoError(t, st.WriteRaw(ctx, []byte(`persisted`)))
	require.NoError(t, st.Close())

	st2, err := OpenSQLite(dataDir)
	require.NoError(t, err)
	defer st2.Close()

	got, err := st2.ReadRaw(ctx)
	require.NoError(t, err)
	assert.Equal(t, `persisted`, string(got))
}

func TestSQLiteStoreCloseIdempotent(t *testing.T) {
	st, err := OpenSQLite(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, st.Close())
	require.NoError(t, st.Close())

	_, err = st.ReadRaw(context.Background())
	assert.ErrorIs(t, err, types.ErrNoDocument)
}

func TestOpenBackendSelection(t *testing.T) {
	log := logger.Nop()

	t.Run("sqlite", func(t *testing.T) {
		st, err := Open(types.Config{Backend: types.BackendSQLite, DataDir: t.TempDir()}, log)
		require.NoError(t, err)
		defer st.Close()
		assert.IsType(t, &SQLiteStore{}, st)
	})

	t.Run("file", func(t *testing.T) {
		st, err := Open(types.Config{Backend: types.BackendFile, DataDir: t.TempDir()}, log)
		require.NoError(t, err)
		defer st.Close()
		assert.IsType(t, &FileStore{}, st)
	})

	t.Run("auto prefers sqlite", func(t *testing.T) {
		st, err := Open(types.Config{Backend: types.BackendAuto, DataDir: t.TempDir()}, log)
		require.NoError(t, err)
		defer st.Close()
		assert.IsType(t, &SQLiteStore{}, st)
	})

	t.Run("rejects invalid config", func(t *testing.T) {
		_, err := Open(types.Config{Backend: "redis", DataDir: t.TempDir()}, log)
		assert.ErrorIs(t, err, types.ErrBackendUnknown)

		_, err = Open(types.Config{Backend: types.BackendFile}, log)
		assert.ErrorIs(t, err, types.ErrDataDirEmpty)
	})
}

func TestWriteFileAtomic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")

	require.NoError(t, WriteFileAtomic(path, []byte("one")))
	require.NoError(t, WriteFileAtomic(path, []byte("two")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))
}
