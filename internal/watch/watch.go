// Package watch notifies a long-lived controller when another execution
// context writes the shared store, so read surfaces serve a fresh snapshot
// without polling.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mesh-intelligence/satchel/internal/logger"
)

// Store watches the directory containing path and invokes onChange after
// every write or rename touching the file. Watching the directory rather
// than the file survives the atomic temp-file/rename writes the stores use.
// Blocks until ctx is done.
func Store(ctx context.Context, path string, log logger.Logger, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return err
	}

	target := filepath.Clean(path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("store changed on disk", logger.String("path", target))
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("store watcher error", logger.Error(err))
		}
	}
}
