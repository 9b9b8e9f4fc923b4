// SPDX-License-Identifier: MIT

package alias

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/mytv-core/sourcekit/internal/log"
)

// Watch reloads the user override table whenever the alias file changes on
// disk. It blocks until ctx is cancelled. The parent directory is watched
// rather than the file itself so editors that replace-by-rename still
// trigger a reload.
func (r *Resolver) Watch(ctx context.Context) error {
	logger := log.WithComponent("alias")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() {
		if err := watcher.Close(); err != nil {
			logger.Debug().Err(err).Msg("close alias watcher")
		}
	}()

	if err := watcher.Add(filepath.Dir(r.userFile)); err != nil {
		return err
	}

	target := filepath.Clean(r.userFile)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Info().Str("path", r.userFile).Msg("alias file changed, reloading")
			r.Refresh()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("alias watcher error")
		}
	}
}
