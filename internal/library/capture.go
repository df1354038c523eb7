package library

import (
	"context"

	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// CapturedPrompt is the payload the injected page widget submits. Tags is a
// comma-separated string; Source names the page the text was captured from
// and is recorded in the log only.
type CapturedPrompt struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Tags    string `json:"tags"`
	Source  string `json:"source"`
}

// SaveFromPage appends one captured prompt to the shared store. It runs a
// full read-modify-write cycle with a short-lived controller so the capture
// path goes through exactly the same validation and normalization as the
// main library; the captured prompt is always filed under the reserved
// category. The write is immediate, not debounced.
//
// A write from another context landing between this read and write is lost
// (last-writer-wins at record granularity, accepted for this tool).
func SaveFromPage(ctx context.Context, st store.Store, log logger.Logger, clock types.Clock, in CapturedPrompt) (string, error) {
	ctrl := New(st, log, Options{Clock: clock})
	if err := ctrl.Load(ctx); err != nil {
		return "", err
	}

	id, err := ctrl.UpsertPrompt(PromptDraft{
		Title:      in.Title,
		CategoryID: types.UncategorizedID,
		Content:    in.Content,
		Tags:       types.ParseTagList(in.Tags),
	})
	if err != nil {
		return "", err
	}
	if err := ctrl.Flush(ctx); err != nil {
		return "", err
	}

	log.Info("captured prompt from page",
		logger.String("id", id),
		logger.String("source", in.Source))
	return id, nil
}
