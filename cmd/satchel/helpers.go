// Shared helpers for satchel CLI commands.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mesh-intelligence/satchel/internal/library"
	"github.com/mesh-intelligence/satchel/internal/logger"
	"github.com/mesh-intelligence/satchel/internal/store"
	"github.com/mesh-intelligence/satchel/pkg/types"
)

// cliLogger returns a logger for CLI invocations. Commands report through
// stdout; the logger only carries warnings (store fallback, corrupt
// document) to stderr.
func cliLogger() logger.Logger {
	return logger.New("warn", true)
}

// openStore resolves the data directory and opens the configured store.
// The caller must defer st.Close().
func openStore(log logger.Logger) (store.Store, error) {
	dataDir, err := resolveDataDir()
	if err != nil {
		return nil, fmt.Errorf("resolve data dir: %w", err)
	}

	cfg := types.Config{
		Backend: resolveBackend(),
		DataDir: dataDir,
	}
	st, err := store.Open(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// withController opens the store, loads a controller, runs fn, and flushes
// any pending write before closing. This is the whole lifecycle of a
// short-lived CLI invocation.
func withController(fn func(ctx context.Context, ctrl *library.Controller) error) error {
	ctx := context.Background()
	log := cliLogger()

	st, err := openStore(log)
	if err != nil {
		return err
	}
	defer st.Close()

	ctrl := library.New(st, log, library.Options{})
	if err := ctrl.Load(ctx); err != nil {
		return err
	}

	if err := fn(ctx, ctrl); err != nil {
		return err
	}
	return ctrl.Flush(ctx)
}

// resolveCategoryID accepts a category id or display name and returns the
// category id. An empty value selects the reserved category.
func resolveCategoryID(doc types.Document, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return types.UncategorizedID, nil
	}
	if _, ok := doc.CategoryByID(s); ok {
		return s, nil
	}
	if cat, ok := doc.CategoryByName(s); ok {
		return cat.ID, nil
	}
	return "", fmt.Errorf("%w: %q", types.ErrCategoryNotFound, s)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// categoryName returns the display name for a category id, falling back to
// the id itself.
func categoryName(doc types.Document, id string) string {
	if cat, ok := doc.CategoryByID(id); ok {
		return cat.Name
	}
	return id
}
