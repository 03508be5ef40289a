// time_policy.go: period-boundary rotation using a filename pattern
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rolling

import (
	"path/filepath"
	"sync"
	"time"
)

// TimePolicy recomputes the current file's path from filenamePattern
// each time a record's period-truncated timestamp crosses the current
// rollover boundary. The very first record after construction opens a
// file named after its own timestamp rather than a period boundary,
// so a freshly started process gets "a fresh file now" instead of
// waiting for the next boundary.
type TimePolicy struct {
	mu sync.Mutex

	directory string
	tokens    []token
	interval  Interval
	archive   bool

	h        handle
	archiver *Archiver
	watcher  *Watcher
	boundary time.Time
	started  bool

	watchExternal bool
}

// NewTimePolicy does not open any file until the first Write, since the
// first file name depends on the first record's own timestamp. When
// watchExternal is true, the directory watch (see SizePolicy) starts
// lazily on that first Write, once there is a path to watch.
func NewTimePolicy(directory, filenamePattern string, interval Interval, archive, truncate, autoFlush, watchExternal bool, archiver *Archiver) *TimePolicy {
	p := &TimePolicy{
		directory:     directory,
		tokens:        Compile(filenamePattern),
		interval:      interval,
		archive:       archive,
		archiver:      archiver,
		watchExternal: watchExternal,
	}
	p.h.truncate = truncate
	p.h.autoFlush = autoFlush
	return p
}

// activePath returns the live file's current path, for the external
// change watcher.
func (p *TimePolicy) activePath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.h.path
}

// forceReopen closes the live handle so the next Write reopens it.
func (p *TimePolicy) forceReopen() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.h.close()
}

func (p *TimePolicy) pathFor(t time.Time) string {
	return filepath.Join(p.directory, Render(p.tokens, t))
}

// Write appends data for a record stamped tsNano (unix nanoseconds).
func (p *TimePolicy) Write(tsNano int64, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	t := time.Unix(0, tsNano).UTC()

	if !p.started {
		if err := p.h.openAt(p.pathFor(t)); err != nil {
			return nil
		}
		p.boundary = Truncate(t, p.interval)
		p.started = true
		if p.watchExternal {
			if watcher, err := NewWatcher(p.directory, p.activePath, p.forceReopen); err == nil {
				p.watcher = watcher
			}
		}
		return p.h.write(data)
	}

	if p.h.retryBlocked() {
		return nil
	}

	if truncated := Truncate(t, p.interval); truncated.After(p.boundary) {
		if err := p.roll(truncated); err != nil {
			return nil
		}
	}

	if !p.h.isOpen() {
		if err := p.h.openAt(p.pathFor(t)); err != nil {
			return nil
		}
	}

	return p.h.write(data)
}

func (p *TimePolicy) roll(newBoundary time.Time) error {
	oldPath := p.h.path
	if err := p.h.close(); err != nil {
		p.h.armRetry()
		return err
	}
	if p.archive && oldPath != "" && p.archiver != nil {
		p.archiver.Enqueue(oldPath)
	}
	p.boundary = newBoundary
	return p.h.openAt(p.pathFor(newBoundary))
}

// Size returns the current file's byte length, for metrics export.
func (p *TimePolicy) Size() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.h.writtenBytes
}

func (p *TimePolicy) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.h.sync()
}

func (p *TimePolicy) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher != nil {
		_ = p.watcher.Close()
	}
	return p.h.close()
}
