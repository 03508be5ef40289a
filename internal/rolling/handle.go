// handle.go: shared open/write/retry state machine for rolling appenders
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rolling

import (
	"os"
	"path/filepath"
	"time"
)

const retryBackoff = 100 * time.Millisecond

// handle owns a single open *os.File plus the retry discipline shared
// by the size and time rotation policies: any filesystem failure
// closes the handle and arms a deadline before the next attempt.
type handle struct {
	path          string
	file          *os.File
	writtenBytes  int64
	retryDeadline time.Time
	truncate      bool
	autoFlush     bool
}

func (h *handle) isOpen() bool { return h.file != nil }

func (h *handle) retryBlocked() bool {
	return h.file == nil && time.Now().Before(h.retryDeadline)
}

func (h *handle) openAt(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		h.armRetry()
		return err
	}
	flags := os.O_CREATE | os.O_WRONLY
	if h.truncate {
		flags |= os.O_TRUNC
	} else {
		flags |= os.O_APPEND
	}
	f, err := os.OpenFile(path, flags, 0o600)
	if err != nil {
		h.armRetry()
		return err
	}
	h.file = f
	h.path = path
	h.writtenBytes = 0
	return nil
}

func (h *handle) armRetry() {
	h.file = nil
	h.retryDeadline = time.Now().Add(retryBackoff)
}

func (h *handle) write(p []byte) error {
	if _, err := h.file.Write(p); err != nil {
		_ = h.file.Close()
		h.armRetry()
		return err
	}
	h.writtenBytes += int64(len(p))
	if h.autoFlush {
		if err := h.file.Sync(); err != nil {
			_ = h.file.Close()
			h.armRetry()
			return err
		}
	}
	return nil
}

func (h *handle) close() error {
	if h.file == nil {
		return nil
	}
	err := h.file.Close()
	h.file = nil
	return err
}

func (h *handle) sync() error {
	if h.file == nil {
		return nil
	}
	return h.file.Sync()
}
