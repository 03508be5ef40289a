// size_policy.go: size-triggered rotation with a numbered backup chain
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rolling

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// SizePolicy rolls the current file once the next write would exceed
// MaxBytes, either renaming through a numbered backup chain or, when
// archiving is enabled, handing the closed file to an Archiver under a
// unique name.
type SizePolicy struct {
	mu sync.Mutex

	directory  string
	basename   string
	extension  string
	maxBytes   int64
	maxBackups int
	archive    bool

	h        handle
	archiver *Archiver
	watcher  *Watcher
}

// NewSizePolicy opens the current file immediately. When watchExternal
// is true, the live file's directory is watched via fsnotify so an
// external removal or rename triggers a reopen on the next write
// instead of silently writing into a dangling descriptor.
func NewSizePolicy(directory, basename, extension string, maxBytes int64, maxBackups int, archive, truncate, autoFlush, watchExternal bool, archiver *Archiver) *SizePolicy {
	p := &SizePolicy{
		directory:  directory,
		basename:   basename,
		extension:  extension,
		maxBytes:   maxBytes,
		maxBackups: maxBackups,
		archive:    archive,
		archiver:   archiver,
	}
	p.h.truncate = truncate
	p.h.autoFlush = autoFlush
	_ = p.h.openAt(p.currentPath())
	if watchExternal {
		if watcher, err := NewWatcher(directory, p.activePath, p.forceReopen); err == nil {
			p.watcher = watcher
		}
	}
	return p
}

// activePath returns the live file's current path, for the external
// change watcher.
func (p *SizePolicy) activePath() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.h.path
}

// forceReopen closes the live handle so the next Write reopens it.
// Called from the watcher goroutine on external removal/rename.
func (p *SizePolicy) forceReopen() {
	p.mu.Lock()
	defer p.mu.Unlock()
	_ = p.h.close()
}

func (p *SizePolicy) currentPath() string {
	return filepath.Join(p.directory, p.basename+p.extension)
}

func (p *SizePolicy) backupPath(n int) string {
	return filepath.Join(p.directory, fmt.Sprintf("%s.%d%s", p.basename, n, p.extension))
}

// Write appends data, rolling first if it would push the file past
// MaxBytes. Filesystem failures are swallowed; the caller never blocks
// or errors on a broken disk, matching the retry discipline.
func (p *SizePolicy) Write(data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.h.retryBlocked() {
		return nil
	}
	if !p.h.isOpen() {
		if err := p.h.openAt(p.currentPath()); err != nil {
			return nil
		}
	}

	if p.h.writtenBytes+int64(len(data)) > p.maxBytes {
		if err := p.roll(); err != nil {
			return nil
		}
	}

	return p.h.write(data)
}

func (p *SizePolicy) roll() error {
	path := p.h.path
	if err := p.h.close(); err != nil {
		p.h.armRetry()
		return err
	}

	if p.archive {
		archived := filepath.Join(p.directory, fmt.Sprintf("%s.%d%s", p.basename, time.Now().UnixNano(), p.extension))
		if err := os.Rename(path, archived); err != nil {
			p.h.armRetry()
			return err
		}
		if p.archiver != nil {
			p.archiver.Enqueue(archived)
		}
	} else if err := p.rollBackups(); err != nil {
		p.h.armRetry()
		return err
	}

	return p.h.openAt(p.currentPath())
}

// rollBackups renames basename.(N-1).ext -> basename.N.ext downward to
// basename.ext -> basename.1.ext, dropping whatever would exceed
// MaxBackups.
func (p *SizePolicy) rollBackups() error {
	if p.maxBackups <= 0 {
		return os.Remove(p.currentPath())
	}
	if _, err := os.Stat(p.backupPath(p.maxBackups)); err == nil {
		_ = os.Remove(p.backupPath(p.maxBackups))
	}
	for i := p.maxBackups - 1; i >= 1; i-- {
		src := p.backupPath(i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, p.backupPath(i+1)); err != nil {
			return err
		}
	}
	return os.Rename(p.currentPath(), p.backupPath(1))
}

// Size returns the current file's byte length, for metrics export.
func (p *SizePolicy) Size() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.h.writtenBytes
}

func (p *SizePolicy) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.h.sync()
}

func (p *SizePolicy) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.watcher != nil {
		_ = p.watcher.Close()
	}
	return p.h.close()
}
