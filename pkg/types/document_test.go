package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDocument(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	doc := DefaultDocument(now)

	assert.Equal(t, DocumentVersion, doc.Version)
	require.Len(t, doc.Categories, 1)
	assert.Equal(t, UncategorizedID, doc.Categories[0].ID)
	assert.Equal(t, UncategorizedName, doc.Categories[0].Name)
	assert.Equal(t, now, doc.Categories[0].CreatedAt)
	assert.Empty(t, doc.Prompts)
	assert.NotNil(t, doc.Prompts)
}

func TestCategoryLookups(t *testing.T) {
	doc := Document{
		Categories: []Category{
			{ID: "c1", Name: "Work"},
			{ID: "c2", Name: "Personal"},
		},
	}

	cat, ok := doc.CategoryByID("c2")
	require.True(t, ok)
	assert.Equal(t, "Personal", cat.Name)

	_, ok = doc.CategoryByID("missing")
	assert.False(t, ok)

	// Name lookup is case-insensitive.
	cat, ok = doc.CategoryByName("WORK")
	require.True(t, ok)
	assert.Equal(t, "c1", cat.ID)

	_, ok = doc.CategoryByName("Archive")
	assert.False(t, ok)
}

func TestPromptByID(t *testing.T) {
	doc := Document{Prompts: []Prompt{{ID: "p1", Title: "One"}}}

	p, ok := doc.PromptByID("p1")
	require.True(t, ok)
	assert.Equal(t, "One", p.Title)

	_, ok = doc.PromptByID("p2")
	assert.False(t, ok)
}

func TestCloneIsDeep(t *testing.T) {
	used := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	doc := Document{
		Version:    DocumentVersion,
		Categories: []Category{{ID: UncategorizedID, Name: UncategorizedName}},
		Prompts: []Prompt{{
			ID:         "p1",
			Title:      "Original",
			Tags:       []string{"a", "b"},
			LastUsedAt: &used,
		}},
	}

	clone := doc.Clone()
	clone.Categories[0].Name = "Renamed"
	clone.Prompts[0].Title = "Changed"
	clone.Prompts[0].Tags[0] = "mutated"
	*clone.Prompts[0].LastUsedAt = used.Add(time.Hour)

	assert.Equal(t, UncategorizedName, doc.Categories[0].Name)
	assert.Equal(t, "Original", doc.Prompts[0].Title)
	assert.Equal(t, "a", doc.Prompts[0].Tags[0])
	assert.Equal(t, used, *doc.Prompts[0].LastUsedAt)
}

func TestNewIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := NewID()
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"valid sqlite", Config{Backend: BackendSQLite, DataDir: "/tmp/x"}, nil},
		{"valid file", Config{Backend: BackendFile, DataDir: "/tmp/x"}, nil},
		{"valid auto", Config{Backend: BackendAuto, DataDir: "/tmp/x"}, nil},
		{"empty backend", Config{DataDir: "/tmp/x"}, ErrBackendEmpty},
		{"unknown backend", Config{Backend: "redis", DataDir: "/tmp/x"}, ErrBackendUnknown},
		{"empty data dir", Config{Backend: BackendFile}, ErrDataDirEmpty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}
