// End-to-end library lifecycle against real on-disk stores.
package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

func TestLibraryLifecycle(t *testing.T) {
	for _, backend := range backends {
		t.Run(backend, func(t *testing.T) {
			dataDir := t.TempDir()
			st := openStore(t, backend, dataDir)
			ctrl := newController(t, st)

			// Fresh library: reserved category only.
			doc := ctrl.Document()
			require.Len(t, doc.Categories, 1)
			require.Empty(t, doc.Prompts)

			// Build a small library.
			workID, err := ctrl.CreateCategory("Work")
			require.NoError(t, err)

			standupID, err := ctrl.UpsertPrompt(library.PromptDraft{
				Title:      "Standup",
				CategoryID: workID,
				Content:    "Yesterday / Today / Blockers",
				Tags:       []string{"daily", "team"},
			})
			require.NoError(t, err)

			_, err = ctrl.UpsertPrompt(library.PromptDraft{
				Title:      "Scratch",
				CategoryID: types.UncategorizedID,
				Content:    "misc",
			})
			require.NoError(t, err)

			require.NoError(t, ctrl.SetFavorite(standupID, true))
			flush(t, ctrl)

			// Reopen the same store in a fresh session and verify everything
			// survived.
			ctrl2 := newController(t, st)
			doc = ctrl2.Document()
			assert.Len(t, doc.Categories, 2)
			assert.Len(t, doc.Prompts, 2)

			p, ok := doc.PromptByID(standupID)
			require.True(t, ok)
			assert.Equal(t, "Standup", p.Title)
			assert.Equal(t, workID, p.CategoryID)
			assert.Equal(t, []string{"daily", "team"}, p.Tags)
			assert.True(t, p.Favorite)
			assert.Nil(t, p.LastUsedAt)

			// Category delete reassigns prompts and persists.
			require.NoError(t, ctrl2.DeleteCategory(workID))
			flush(t, ctrl2)

			ctrl3 := newController(t, st)
			p, ok = ctrl3.Document().PromptByID(standupID)
			require.True(t, ok)
			assert.Equal(t, types.UncategorizedID, p.CategoryID)
		})
	}
}

func TestExportImportAcrossLibraries(t *testing.T) {
	// Two independent installations that both created a "work" category
	// under different ids, then one imports the other's export.
	srcStore := openStore(t, types.BackendFile, t.TempDir())
	src := newController(t, srcStore)

	srcWork, err := src.CreateCategory("work")
	require.NoError(t, err)
	srcPromptID, err := src.UpsertPrompt(library.PromptDraft{
		Title:      "Code review",
		CategoryID: srcWork,
		Content:    "Review this diff carefully.",
		Tags:       []string{"review"},
	})
	require.NoError(t, err)

	exported, err := src.Export()
	require.NoError(t, err)

	dstStore := openStore(t, types.BackendFile, t.TempDir())
	dst := newController(t, dstStore)
	dstWork, err := dst.CreateCategory("Work")
	require.NoError(t, err)
	_, err = dst.UpsertPrompt(library.PromptDraft{
		Title:      "Existing",
		CategoryID: dstWork,
		Content:    "already here",
	})
	require.NoError(t, err)

	require.NoError(t, dst.Import(exported))
	flush(t, dst)

	doc := dst.Document()
	// "work" folded into "Work" by name; no third category beyond reserved.
	assert.Len(t, doc.Categories, 2)
	_, ok := doc.CategoryByID(srcWork)
	assert.False(t, ok)

	p, ok := doc.PromptByID(srcPromptID)
	require.True(t, ok)
	assert.Equal(t, dstWork, p.CategoryID)
	assert.Len(t, doc.Prompts, 2)
}

func TestCorruptStoreRecovers(t *testing.T) {
	dataDir := t.TempDir()
	st := openStore(t, types.BackendFile, dataDir)

	require.NoError(t, st.WriteRaw(context.Background(), []byte("%% trashed %%")))

	ctrl := newController(t, st)
	doc := ctrl.Document()
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, types.UncategorizedID, doc.Categories[0].ID)
	assert.Empty(t, doc.Prompts)

	// The healed document replaced the corrupt bytes on disk.
	data, err := st.ReadRaw(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"version":1`)
}
