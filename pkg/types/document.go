package types

import "time"

// DocumentVersion is the only schema version in existence. The field is a
// forward-compat placeholder; there is no migration chain yet.
const DocumentVersion = 1

// UncategorizedID is the reserved category id. Exactly one category with this
// id exists in every canonical document; it cannot be renamed or deleted.
const UncategorizedID = "uncategorized"

// Display defaults applied by the normalizer.
const (
	UncategorizedName   = "Uncategorized"
	DefaultPromptTitle  = "Untitled prompt"
	DefaultCategoryName = "Unnamed category"
	CopySuffix          = " (copy)"
)

// Document is the single root persisted object holding all categories and
// prompts. Raw documents loaded from storage or import are untrusted and must
// pass through document.Normalize before being read or merged.
type Document struct {
	Version    int        `json:"version"`
	Categories []Category `json:"categories"`
	Prompts    []Prompt   `json:"prompts"`
}

// Category groups prompts. Names are unique case-insensitively within a
// document; CreatedAt is immutable after creation.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// Prompt is a stored text template. Content is opaque text. Tags carry set
// semantics; the stored ordering is a display convenience. LastUsedAt is set
// only when the content is copied out to an external consumer, never on edit.
type Prompt struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	CategoryID string     `json:"categoryId"`
	Content    string     `json:"content"`
	Tags       []string   `json:"tags"`
	Favorite   bool       `json:"favorite"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	LastUsedAt *time.Time `json:"lastUsedAt"`
}

// DefaultDocument returns the document created on first run: the reserved
// category and no prompts.
func DefaultDocument(now time.Time) Document {
	return Document{
		Version: DocumentVersion,
		Categories: []Category{
			{ID: UncategorizedID, Name: UncategorizedName, CreatedAt: now},
		},
		Prompts: []Prompt{},
	}
}

// CategoryByID returns the category with the given id, or false.
func (d Document) CategoryByID(id string) (Category, bool) {
	for _, c := range d.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryByName returns the first category whose name matches under the
// canonical case-insensitive comparison, or false.
func (d Document) CategoryByName(name string) (Category, bool) {
	for _, c := range d.Categories {
		if NameEqual(c.Name, name) {
			return c, true
		}
	}
	return Category{}, false
}

// PromptByID returns the prompt with the given id, or false.
func (d Document) PromptByID(id string) (Prompt, bool) {
	for _, p := range d.Prompts {
		if p.ID == id {
			return p, true
		}
	}
	return Prompt{}, false
}

// Clone returns a deep copy of the document. Controllers hand out clones so
// callers can never alias the in-memory canonical state.
func (d Document) Clone() Document {
	out := Document{
		Version:    d.Version,
		Categories: make([]Category, len(d.Categories)),
		Prompts:    make([]Prompt, len(d.Prompts)),
	}
	copy(out.Categories, d.Categories)
	for i, p := range d.Prompts {
		cp := p
		cp.Tags = append([]string(nil), p.Tags...)
		if p.LastUsedAt != nil {
			t := *p.LastUsedAt
			cp.LastUsedAt = &t
		}
		out.Prompts[i] = cp
	}
	return out
}
