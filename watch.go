package astrotime

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads a Reloader's files when they change on disk.
type Watcher struct {
	watcher *fsnotify.Watcher
	reloads map[string]func() error
}

// Watch starts watching the directories of the configured files. Parent
// directories are watched so files replaced by rename are still seen.
func (r *Reloader) Watch() (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("new watcher: %w", err)
	}

	reg := r.registry()
	w := &Watcher{
		watcher: fw,
		reloads: make(map[string]func() error),
	}

	add := func(path string, reload func(string) error) error {
		if path == "" {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		if err := fw.Add(filepath.Dir(abs)); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		w.reloads[abs] = func() error { return reload(path) }
		return nil
	}

	err = add(r.LeapFile, func(path string) error {
		_, err := reg.ReloadLeapSecondsFromFile(path)
		return err
	})
	if err == nil {
		err = add(r.EopFile, func(path string) error {
			_, err := reg.ReloadEopFromFile(path)
			return err
		})
	}
	if err != nil {
		fw.Close()
		return nil, err
	}

	return w, nil
}

// Run handles file events until ctx is done. A failed reload is logged
// and the previous provider stays installed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			reload, ok := w.reloads[filepath.Clean(event.Name)]
			if !ok {
				continue
			}
			if err := reload(); err != nil {
				log.Warnw("reload on change", "path", event.Name, "error", err)
				continue
			}
			log.Infow("reloaded on change", "path", event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Errorw("watch", "error", err)
		}
	}
}
