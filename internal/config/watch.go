package config

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce absorbs the burst of events editors produce for one save.
const watchDebounce = 200 * time.Millisecond

// Watch reloads the config at path whenever the file changes and passes the
// result to fn. A file that fails to load is reported through err and the
// previous config stays in effect for the caller. Watch blocks until ctx is done.
//
// The parent directory is watched rather than the file, so atomic
// rename-on-save editors keep working.
func Watch(ctx context.Context, path string, fn func(cfg *Config, err error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating config watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	name := filepath.Clean(path)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			pending = time.After(watchDebounce)

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fn(nil, fmt.Errorf("config watcher: %w", err))

		case <-pending:
			pending = nil
			fn(LoadFrom(path))
		}
	}
}
