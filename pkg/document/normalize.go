package document

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Parse decodes raw JSON bytes into a loosely-typed value suitable for
// Normalize. It fails only on syntactically invalid JSON; every structural
// problem beyond that is the normalizer's job to repair.
func Parse(data []byte) (any, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidDocument, err)
	}
	return raw, nil
}

// Export serializes a canonical document pretty-printed, as produced by the
// export flow and accepted back by import.
func Export(doc types.Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}
	return append(data, '\n'), nil
}

// Normalize repairs any parsed-JSON value into a canonical document. It is
// total: missing fields, wrong types, and duplicate ids are repaired, never
// rejected. This is the trust boundary between storage/import content and
// the rest of the system. The now argument supplies timestamps for records
// that lack them.
func Normalize(raw any, now time.Time) types.Document {
	return NormalizeDocument(decode(raw), now)
}

// NormalizeDocument applies the canonical repair rules to an already-typed
// document. Mutators may build slightly malformed intermediates as long as
// they pass through here before being persisted or rendered. Idempotent:
// normalizing a canonical document returns it unchanged.
func NormalizeDocument(doc types.Document, now time.Time) types.Document {
	out := types.Document{
		Version:    types.DocumentVersion,
		Categories: make([]types.Category, 0, len(doc.Categories)+1),
		Prompts:    make([]types.Prompt, 0, len(doc.Prompts)),
	}

	// Categories: first occurrence of an id wins, blank ids are dropped.
	// The reserved category keeps its fixed label no matter what the input
	// claims, so a rename can never sneak in through storage or import.
	seen := make(map[string]bool, len(doc.Categories))
	for _, c := range doc.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true

		name := strings.TrimSpace(c.Name)
		switch {
		case id == types.UncategorizedID:
			name = types.UncategorizedName
		case name == "":
			name = types.DefaultCategoryName
		}

		created := c.CreatedAt
		if created.IsZero() {
			created = now
		}
		out.Categories = append(out.Categories, types.Category{
			ID:        id,
			Name:      name,
			CreatedAt: created,
		})
	}
	if !seen[types.UncategorizedID] {
		seen[types.UncategorizedID] = true
		out.Categories = append(out.Categories, types.Category{
			ID:        types.UncategorizedID,
			Name:      types.UncategorizedName,
			CreatedAt: now,
		})
	}

	seenPrompts := make(map[string]bool, len(doc.Prompts))
	for _, p := range doc.Prompts {
		id := strings.TrimSpace(p.ID)
		if id == "" {
			id = types.NewID()
		}
		if seenPrompts[id] {
			continue
		}
		seenPrompts[id] = true

		title := p.Title
		if strings.TrimSpace(title) == "" {
			title = types.DefaultPromptTitle
		}

		categoryID := p.CategoryID
		if !seen[categoryID] {
			categoryID = types.UncategorizedID
		}

		created := p.CreatedAt
		if created.IsZero() {
			created = now
		}
		updated := p.UpdatedAt
		if updated.IsZero() {
			updated = created
		}
		var lastUsed *time.Time
		if p.LastUsedAt != nil && !p.LastUsedAt.IsZero() {
			t := *p.LastUsedAt
			lastUsed = &t
		}

		out.Prompts = append(out.Prompts, types.Prompt{
			ID:         id,
			Title:      title,
			CategoryID: categoryID,
			Content:    p.Content,
			Tags:       types.NormalizeTags(p.Tags),
			Favorite:   p.Favorite,
			CreatedAt:  created,
			UpdatedAt:  updated,
			LastUsedAt: lastUsed,
		})
	}

	return out
}

// decode lowers a loosely-typed parsed-JSON value into the typed document
// shape, dropping anything that is not the expected type. Repair of the
// resulting values happens in NormalizeDocument.
func decode(raw any) types.Document {
	m, _ := raw.(map[string]any)
	var doc types.Document
	for _, item := range asSlice(m["categories"]) {
		cm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Categories = append(doc.Categories, types.Category{
			ID:        asString(cm["id"]),
			Name:      asString(cm["name"]),
			CreatedAt: asTime(cm["createdAt"]),
		})
	}
	for _, item := range asSlice(m["prompts"]) {
		pm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Prompts = append(doc.Prompts, types.Prompt{
			ID:         asString(pm["id"]),
			Title:      asString(pm["title"]),
			CategoryID: asString(pm["categoryId"]),
			Content:    asString(pm["content"]),
			Tags:       asStrings(pm["tags"]),
			Favorite:   asBool(pm["favorite"]),
			CreatedAt:  asTime(pm["createdAt"]),
			UpdatedAt:  asTime(pm["updatedAt"]),
			LastUsedAt: asTimePtr(pm["lastUsedAt"]),
		})
	}
	return doc
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asBool coerces to a strict boolean: only the JSON value true counts.
func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asStrings(v any) []string {
	items := asSlice(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// timeLayouts lists the accepted timestamp shapes, most specific first.
// Offset-less variants show up in hand-edited import files.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func asTime(v any) time.Time {
	s, ok := v.(string)
	if !ok {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func asTimePtr(v any) *time.Time {
	t := asTime(v)
	if t.IsZero() {
		return nil
	}
	return &t
}
