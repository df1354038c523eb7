package document

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

func docFromJSON(t *testing.T, data string) types.Document {
	t.Helper()
	return normalizeJSON(t, data)
}

func TestMergeEmptyIncomingIsIdentity(t *testing.T) {
	current := docFromJSON(t, `{
		"categories":[{"id":"c1","name":"Work"}],
		"prompts":[{"id":"p1","title":"Standup","categoryId":"c1","content":"x"}]
	}`)
	incoming := docFromJSON(t, `{}`)

	merged := Merge(current, incoming)
	assert.Equal(t, current, merged)
}

func TestMergeCurrentCategoryWinsOnIDCollision(t *testing.T) {
	current := docFromJSON(t, `{"categories":[{"id":"c1","name":"Work"}]}`)
	incoming := docFromJSON(t, `{"categories":[{"id":"c1","name":"Job Stuff"}]}`)

	merged := Merge(current, incoming)
	cat, ok := merged.CategoryByID("c1")
	require.True(t, ok)
	assert.Equal(t, "Work", cat.Name)
}

func TestMergeFoldsCategoryByName(t *testing.T) {
	// Two installations created "work"/"Work" under different ids; incoming
	// prompts filed under the foreign id land in the existing category.
	current := docFromJSON(t, `{"categories":[{"id":"c1","name":"Work"}]}`)
	incoming := docFromJSON(t, `{
		"categories":[{"id":"c9","name":"work"}],
		"prompts":[{"id":"p1","title":"Standup","categoryId":"c9","content":"x"}]
	}`)

	merged := Merge(current, incoming)

	_, ok := merged.CategoryByID("c9")
	assert.False(t, ok, "folded category must not be appended")

	p, ok := merged.PromptByID("p1")
	require.True(t, ok)
	assert.Equal(t, "c1", p.CategoryID)
}

func TestMergeAppendsUnknownCategory(t *testing.T) {
	current := docFromJSON(t, `{"categories":[{"id":"c1","name":"Work"}]}`)
	incoming := docFromJSON(t, `{"categories":[{"id":"c2","name":"Personal"}]}`)

	merged := Merge(current, incoming)
	cat, ok := merged.CategoryByID("c2")
	require.True(t, ok)
	assert.Equal(t, "Personal", cat.Name)
}

func TestMergeReservedCategoryMapsToItself(t *testing.T) {
	current := docFromJSON(t, `{}`)
	incoming := docFromJSON(t, `{
		"prompts":[{"id":"p1","title":"Loose","categoryId":"uncategorized","content":"x"}]
	}`)

	merged := Merge(current, incoming)
	require.Len(t, merged.Categories, 1)
	p, ok := merged.PromptByID("p1")
	require.True(t, ok)
	assert.Equal(t, types.UncategorizedID, p.CategoryID)
}

func TestMergePromptUpsertReplacesWholeRecord(t *testing.T) {
	current := docFromJSON(t, `{
		"prompts":[{"id":"p1","title":"Old","content":"old body","tags":["old"],"favorite":true}]
	}`)
	incoming := docFromJSON(t, `{
		"prompts":[{"id":"p1","title":"New","content":"new body","tags":["new"]}]
	}`)

	merged := Merge(current, incoming)
	require.Len(t, merged.Prompts, 1)
	p := merged.Prompts[0]
	assert.Equal(t, "New", p.Title)
	assert.Equal(t, "new body", p.Content)
	assert.Equal(t, []string{"new"}, p.Tags)
	// Whole-record replacement: the old favorite flag does not survive.
	assert.False(t, p.Favorite)
}

func TestMergeUnresolvedCategoryFallsBackToReserved(t *testing.T) {
	current := docFromJSON(t, `{}`)
	// A prompt referencing a category the incoming document never declares.
	incoming := current.Clone()
	incoming.Prompts = append(incoming.Prompts, types.Prompt{
		ID:         "p1",
		Title:      "Orphan",
		CategoryID: "ghost",
		CreatedAt:  testNow,
		UpdatedAt:  testNow,
		Tags:       []string{},
	})

	merged := Merge(current, incoming)
	p, ok := merged.PromptByID("p1")
	require.True(t, ok)
	assert.Equal(t, types.UncategorizedID, p.CategoryID)
}

func TestMergeResultNormalizesCleanly(t *testing.T) {
	current := docFromJSON(t, `{
		"categories":[{"id":"c1","name":"Work"}],
		"prompts":[{"id":"p1","title":"Standup","categoryId":"c1","content":"x"}]
	}`)
	incoming := docFromJSON(t, `{
		"categories":[{"id":"c2","name":"Personal"}],
		"prompts":[{"id":"p2","title":"Journal","categoryId":"c2","content":"y"}]
	}`)

	merged := Merge(current, incoming)
	again := NormalizeDocument(merged, testNow.Add(time.Hour))
	assert.Equal(t, merged, again)

	require.Len(t, merged.Prompts, 2)
	require.Len(t, merged.Categories, 3)
}
