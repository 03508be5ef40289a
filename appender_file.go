// appender_file.go: single-file appender with a 100ms retry deadline
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"os"
	"path/filepath"
	"sync"
	"time"
)

const fileRetryBackoff = 100 * time.Millisecond

// FileAppender maintains a single open write handle. Every filesystem
// operation is wrapped: on failure the handle is closed and a retry
// deadline is armed, after which the next record attempts to reopen.
// Until the deadline elapses, records are dropped silently rather than
// blocking the producer on a broken filesystem.
type FileAppender struct {
	mu            sync.Mutex
	path          string
	autoFlush     bool
	file          *os.File
	retryDeadline time.Time
}

// NewFileAppender opens (or schedules the opening of) path. Parent
// directories are created on demand.
func NewFileAppender(path string, autoFlush bool) *FileAppender {
	a := &FileAppender{path: path, autoFlush: autoFlush}
	_ = a.open()
	return a
}

func (a *FileAppender) open() error {
	if err := os.MkdirAll(filepath.Dir(a.path), 0o755); err != nil {
		a.armRetry()
		return err
	}
	f, err := os.OpenFile(a.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		a.armRetry()
		return err
	}
	a.file = f
	return nil
}

func (a *FileAppender) armRetry() {
	a.file = nil
	a.retryDeadline = time.Now().Add(fileRetryBackoff)
}

func (a *FileAppender) Append(r *Record) error {
	if !r.HasLayout() {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.file == nil {
		if time.Now().Before(a.retryDeadline) {
			return nil
		}
		if err := a.open(); err != nil {
			return nil
		}
	}

	if _, err := a.file.Write(r.Raw); err != nil {
		_ = a.file.Close()
		a.armRetry()
		return nil
	}
	if a.autoFlush {
		if err := a.file.Sync(); err != nil {
			_ = a.file.Close()
			a.armRetry()
			return nil
		}
	}
	return nil
}

func (a *FileAppender) Flush() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file == nil {
		return nil
	}
	return a.file.Sync()
}

func (a *FileAppender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.file == nil {
		return nil
	}
	err := a.file.Close()
	a.file = nil
	return err
}
