// watch.go: external-change detection for the active rolling file
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rolling

import (
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watcher reopens a rolling appender's active file if something
// outside the process removes or renames it, e.g. a rotation tool that
// moves it aside, or an operator running rm on a stuck disk. Without
// this the appender would keep writing to a dangling file descriptor
// whose directory entry no longer exists. Other events, including a
// truncation in place, are ignored.
type Watcher struct {
	w      *fsnotify.Watcher
	target func() string
	reopen func()
	done   chan struct{}
}

// NewWatcher watches directory and calls reopen whenever the path
// returned by target is removed or renamed. target is re-evaluated on
// every event since time-based policies rename their active file
// across rollover boundaries.
func NewWatcher(directory string, target func() string, reopen func()) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(directory); err != nil {
		_ = w.Close()
		return nil, err
	}
	watcher := &Watcher{w: w, target: target, reopen: reopen, done: make(chan struct{})}
	go watcher.loop()
	return watcher, nil
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.w.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) == filepath.Clean(w.target()) {
				w.reopen()
			}
		case _, ok := <-w.w.Errors:
			if !ok {
				return
			}
		case <-w.done:
			return
		}
	}
}

// Close stops the watch goroutine and releases the underlying
// fsnotify handle. Idempotent is not guaranteed; call once.
func (w *Watcher) Close() error {
	close(w.done)
	return w.w.Close()
}
