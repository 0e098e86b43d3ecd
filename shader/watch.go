// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package shader

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports edits to a set of source files on disk.
//
// Editors often replace a file instead of writing it in place, so the parent
// directories are watched and events are filtered by name. Bursts of events
// coalesce into a single pending notification.
type Watcher struct {
	fw      *fsnotify.Watcher
	files   map[string]bool
	changes chan string
	done    chan struct{}
	wg      sync.WaitGroup
	once    sync.Once
	err     error
}

// Watch starts watching paths.
func Watch(paths ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("shader: watch: %w", err)
	}
	w := &Watcher{
		fw:      fw,
		files:   make(map[string]bool, len(paths)),
		changes: make(chan string, 1),
		done:    make(chan struct{}),
	}
	dirs := make(map[string]bool)
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			fw.Close()
			return nil, fmt.Errorf("shader: watch %s: %w", p, err)
		}
		w.files[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for d := range dirs {
		if err := fw.Add(d); err != nil {
			fw.Close()
			return nil, fmt.Errorf("shader: watch %s: %w", d, err)
		}
	}

	w.wg.Add(1)
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			name, err := filepath.Abs(ev.Name)
			if err != nil || !w.files[name] {
				continue
			}
			slogger().Debug("shader source changed", "path", name, "op", ev.Op.String())
			select {
			case w.changes <- name:
			default:
			}
		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			slogger().Warn("shader watch error", "err", err)
		}
	}
}

// Changes delivers the path of a changed file. At most one notification is
// pending at a time.
func (w *Watcher) Changes() <-chan string { return w.changes }

// Close stops watching. Later calls return the first call's result.
func (w *Watcher) Close() error {
	w.once.Do(func() {
		close(w.done)
		w.err = w.fw.Close()
		w.wg.Wait()
	})
	return w.err
}
