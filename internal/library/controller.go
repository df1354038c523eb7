// Package library implements the reactive core of the prompt manager: a
// controller that owns the in-memory canonical document for its execution
// context, applies optimistic mutations, re-normalizes after every change,
// and schedules debounced persistence through the store port.
//
// Each execution context gets its own Controller talking to the shared
// store; controllers never share in-memory documents. Cross-context
// consistency is last-writer-wins (see the capture path in capture.go).
package library

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mesh-intelligence/satchel/internal/clipboard"
	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/document"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// Persistence and UI timing defaults.
const (
	DefaultDebounce = 400 * time.Millisecond
	DefaultToastTTL = 1800 * time.Millisecond
)

// Options configures a Controller. Zero values select production defaults.
type Options struct {
	Clock     types.Clock
	Debounce  time.Duration
	ToastTTL  time.Duration
	Clipboard clipboard.Sink
	NewTimer  TimerFactory
}

// PromptDraft is the input to UpsertPrompt. An empty ID means create.
type PromptDraft struct {
	ID         string
	Title      string
	CategoryID string
	Content    string
	Tags       []string
	Favorite   bool
}

// Controller owns the canonical in-memory document for one execution
// context. All methods are safe for concurrent use within that context.
type Controller struct {
	st    store.Store
	log   logger.Logger
	clock types.Clock
	clip  clipboard.Sink

	toastTTL time.Duration
	deb      *debouncer

	mu            sync.Mutex
	doc           types.Document
	loading       bool
	loaded        bool
	backupPending bool
	lastErr       string
	toast         string
	toastUntil    time.Time
}

// New creates a Controller over the given store. Call Load before using it.
func New(st store.Store, log logger.Logger, opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Debounce == 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.ToastTTL == 0 {
		opts.ToastTTL = DefaultToastTTL
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.System{}
	}

	c := &Controller{
		st:       st,
		log:      log,
		clock:    opts.Clock,
		clip:     opts.Clipboard,
		toastTTL: opts.ToastTTL,
	}
	c.deb = newDebouncer(opts.Debounce, opts.NewTimer, c.flushDeferred)
	return c
}

// Load reads the document from the store. A missing document creates and
// persists a fresh default; unparsable content silently resets to the same
// fresh default. A parsed document is normalized and written back, so every
// load self-heals the stored copy.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.loading = true
	defer func() { c.loading = false }()

	doc, err := c.readDocument(ctx)
	if err != nil {
		return err
	}
	c.doc = doc
	c.loaded = true
	return c.persistLocked(ctx)
}

// Reload refreshes the in-memory document from the store without writing
// back, so a reload triggered by another context's write never re-triggers
// the watcher. Pending local mutations keep their debounced flush.
func (c *Controller) Reload(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	doc, err := c.readDocument(ctx)
	if err != nil {
		return err
	}
	c.doc = doc
	c.loaded = true
	return nil
}

func (c *Controller) readDocument(ctx context.Context) (types.Document, error) {
	now := c.clock()

	data, err := c.st.ReadRaw(ctx)
	if errors.Is(err, types.ErrNoDocument) {
		return types.DefaultDocument(now), nil
	}
	if err != nil {
		return types.Document{}, fmt.Errorf("load document: %w", err)
	}

	raw, err := document.Parse(data)
	if err != nil {
		// Corrupt stored state resets to a fresh document rather than
		// blocking startup.
		c.log.Warn("stored document is corrupt, starting fresh", logger.Error(err))
		return types.DefaultDocument(now), nil
	}
	return document.Normalize(raw, now), nil
}

// Document returns a deep copy of the current canonical document.
func (c *Controller) Document() types.Document {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc.Clone()
}

// Loading reports whether a Load is in progress.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// UpsertPrompt creates or replaces a prompt. Title, category, and content
// must be non-blank; an unknown category id falls back to the reserved
// category. Returns the effective prompt id.
func (c *Controller) UpsertPrompt(draft PromptDraft) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	title := strings.TrimSpace(draft.Title)
	if title == "" {
		return "", c.fail(types.ErrTitleRequired)
	}
	if strings.TrimSpace(draft.Content) == "" {
		return "", c.fail(types.ErrContentRequired)
	}
	categoryID := strings.TrimSpace(draft.CategoryID)
	if categoryID == "" {
		return "", c.fail(types.ErrCategoryRequired)
	}
	if _, ok := c.doc.CategoryByID(categoryID); !ok {
		categoryID = types.UncategorizedID
	}

	now := c.clock()
	tags := types.NormalizeTags(draft.Tags)
	next := c.doc.Clone()

	id := draft.ID
	replaced := false
	for i, p := range next.Prompts {
		if p.ID != id || id == "" {
			continue
		}
		p.Title = title
		p.CategoryID = categoryID
		p.Content = draft.Content
		p.Tags = tags
		p.Favorite = draft.Favorite
		p.UpdatedAt = now
		next.Prompts[i] = p
		replaced = true
		break
	}
	if !replaced {
		if id == "" {
			id = types.NewID()
		}
		next.Prompts = append(next.Prompts, types.Prompt{
			ID:         id,
			Title:      title,
			CategoryID: categoryID,
			Content:    draft.Content,
			Tags:       tags,
			Favorite:   draft.Favorite,
			CreatedAt:  now,
			UpdatedAt:  now,
			LastUsedAt: nil,
		})
	}

	c.commit(next, "Prompt saved")
	return id, nil
}

// DeletePrompt removes a prompt. Idempotent: deleting an absent id is not an
// error and leaves the document untouched.
func (c *Controller) DeletePrompt(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.doc.Clone()
	kept := next.Prompts[:0]
	removed := false
	for _, p := range next.Prompts {
		if p.ID == id {
			removed = true
			continue
		}
		kept = append(kept, p)
	}
	if !removed {
		return nil
	}
	next.Prompts = kept
	c.commit(next, "Prompt deleted")
	return nil
}

// DuplicatePrompt clones a prompt under a new id with a copy marker in the
// title and fresh timestamps. Returns the new id.
func (c *Controller) DuplicatePrompt(id string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, ok := c.doc.PromptByID(id)
	if !ok {
		return "", c.fail(fmt.Errorf("%w: %s", types.ErrPromptNotFound, id))
	}

	now := c.clock()
	dup := src
	dup.ID = types.NewID()
	dup.Title = src.Title + types.CopySuffix
	dup.Tags = append([]string(nil), src.Tags...)
	dup.CreatedAt = now
	dup.UpdatedAt = now
	dup.LastUsedAt = nil

	next := c.doc.Clone()
	next.Prompts = append(next.Prompts, dup)
	c.commit(next, "Prompt duplicated")
	return dup.ID, nil
}

// CopyPrompt places the prompt's content on the external clipboard sink and
// marks the prompt used. A sink failure surfaces an error and mutates
// nothing. This is the only operation that updates LastUsedAt.
func (c *Controller) CopyPrompt(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	src, ok := c.doc.PromptByID(id)
	if !ok {
		return c.fail(fmt.Errorf("%w: %s", types.ErrPromptNotFound, id))
	}
	if err := c.clip.Write(src.Content); err != nil {
		return c.fail(fmt.Errorf("copy prompt: %w", err))
	}

	now := c.clock()
	next := c.doc.Clone()
	for i, p := range next.Prompts {
		if p.ID == id {
			used := now
			p.LastUsedAt = &used
			p.UpdatedAt = now
			next.Prompts[i] = p
			break
		}
	}
	c.commit(next, "Copied to clipboard")
	return nil
}

// SetFavorite toggles a prompt's favorite flag.
func (c *Controller) SetFavorite(id string, favorite bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.doc.PromptByID(id); !ok {
		return c.fail(fmt.Errorf("%w: %s", types.ErrPromptNotFound, id))
	}

	now := c.clock()
	next := c.doc.Clone()
	for i, p := range next.Prompts {
		if p.ID == id {
			p.Favorite = favorite
			p.UpdatedAt = now
			next.Prompts[i] = p
			break
		}
	}
	c.commit(next, "")
	return nil
}

// CreateCategory appends a category with a fresh id. Fails on a blank name
// or a case-insensitive collision. Returns the new id.
func (c *Controller) CreateCategory(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return "", c.fail(types.ErrCategoryNameRequired)
	}
	if _, ok := c.doc.CategoryByName(name); ok {
		return "", c.fail(fmt.Errorf("%w: %q", types.ErrCategoryNameTaken, name))
	}

	next := c.doc.Clone()
	cat := types.Category{ID: types.NewID(), Name: name, CreatedAt: c.clock()}
	next.Categories = append(next.Categories, cat)
	c.commit(next, "Category created")
	return cat.ID, nil
}

// RenameCategory changes a category's display name. The reserved category
// cannot be renamed.
func (c *Controller) RenameCategory(id, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == types.UncategorizedID {
		return c.fail(types.ErrReservedCategory)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return c.fail(types.ErrCategoryNameRequired)
	}
	if _, ok := c.doc.CategoryByID(id); !ok {
		return c.fail(fmt.Errorf("%w: %s", types.ErrCategoryNotFound, id))
	}
	for _, other := range c.doc.Categories {
		if other.ID != id && types.NameEqual(other.Name, name) {
			return c.fail(fmt.Errorf("%w: %q", types.ErrCategoryNameTaken, name))
		}
	}

	next := c.doc.Clone()
	for i, cat := range next.Categories {
		if cat.ID == id {
			cat.Name = name
			next.Categories[i] = cat
			break
		}
	}
	c.commit(next, "Category renamed")
	return nil
}

// DeleteCategory removes a category and reassigns its prompts to the
// reserved category, stamping UpdatedAt on each reassigned prompt. The
// reserved category cannot be deleted.
func (c *Controller) DeleteCategory(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id == types.UncategorizedID {
		return c.fail(types.ErrReservedCategory)
	}
	if _, ok := c.doc.CategoryByID(id); !ok {
		return c.fail(fmt.Errorf("%w: %s", types.ErrCategoryNotFound, id))
	}

	now := c.clock()
	next := c.doc.Clone()
	kept := next.Categories[:0]
	for _, cat := range next.Categories {
		if cat.ID != id {
			kept = append(kept, cat)
		}
	}
	next.Categories = kept
	for i, p := range next.Prompts {
		if p.CategoryID == id {
			p.CategoryID = types.UncategorizedID
			p.UpdatedAt = now
			next.Prompts[i] = p
		}
	}
	c.commit(next, "Category deleted")
	return nil
}

// Export returns the current canonical document pretty-printed. Pure read.
func (c *Controller) Export() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return document.Export(c.doc.Clone())
}

// Import parses raw bytes as a document, normalizes it, and merges it into
// the current document. Unlike load-time corruption, an unparsable import is
// surfaced as an error: the user explicitly chose the file and needs to know
// it failed.
func (c *Controller) Import(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	raw, err := document.Parse(data)
	if err != nil {
		return c.fail(err)
	}
	incoming := document.Normalize(raw, c.clock())
	merged := document.Merge(c.doc, incoming)
	c.commit(merged, "Import complete")
	return nil
}

// Flush cancels any pending debounced write and persists immediately.
func (c *Controller) Flush(ctx context.Context) error {
	c.deb.Cancel()
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.persistLocked(ctx)
}

// BackupPending reports whether a mutation has happened since the last
// explicit backup or dismissal.
func (c *Controller) BackupPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.backupPending
}

// ClearBackupPending resets the backup reminder, either because a backup was
// taken or because the user dismissed it.
func (c *Controller) ClearBackupPending() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backupPending = false
}

// LastError returns the most recent mutator failure, or "".
func (c *Controller) LastError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// ClearError dismisses the last error.
func (c *Controller) ClearError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastErr = ""
}

// Toast returns the current transient message. Toasts expire on read after
// their TTL, measured against the injected clock.
func (c *Controller) Toast() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.toast != "" && !c.clock().Before(c.toastUntil) {
		c.toast = ""
	}
	return c.toast
}

// commit installs a mutated document: re-normalize, mark backup pending,
// surface the toast, and arm the debounced flush. Caller holds c.mu.
func (c *Controller) commit(next types.Document, toast string) {
	now := c.clock()
	c.doc = document.NormalizeDocument(next, now)
	c.backupPending = true
	c.lastErr = ""
	if toast != "" {
		c.toast = toast
		c.toastUntil = now.Add(c.toastTTL)
	}
	c.deb.Arm()
}

// fail records a mutator error as the dismissible last-error value. The
// document is never touched on a failed mutation. Caller holds c.mu.
func (c *Controller) fail(err error) error {
	c.lastErr = err.Error()
	return err
}

// persistLocked serializes the current document and writes it through the
// store. Caller holds c.mu.
func (c *Controller) persistLocked(ctx context.Context) error {
	data, err := json.Marshal(c.doc)
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}
	if err := c.st.WriteRaw(ctx, data); err != nil {
		return fmt.Errorf("persist document: %w", err)
	}
	return nil
}

// flushDeferred is the debounce target. Failures are logged, never fatal;
// the next mutation re-arms the flush.
func (c *Controller) flushDeferred() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.persistLocked(context.Background()); err != nil {
		c.log.Error("deferred persist failed", logger.Error(err))
	}
}
