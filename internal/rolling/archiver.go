// archiver.go: background zip archiver for rotated backup files
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rolling

import (
	"archive/zip"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/flate"
)

// archiverQueueDepth bounds how many closed files can be waiting for
// the archiver goroutine. Enqueue never blocks the roll that produced
// them: once the queue is full, a new entry is dropped and reported to
// onFatal instead of stalling the caller, which may be holding the
// rolling policy's write lock.
const archiverQueueDepth = 64

// ErrArchiveQueueFull is passed to onFatal when Enqueue drops a path
// because the archiver goroutine has fallen behind.
var ErrArchiveQueueFull = errors.New("rolling: archive queue full, dropping backup")

// Archiver consumes a FIFO of absolute file paths, compresses each into
// a sibling .zip using DEFLATE, and removes the source. Any failure
// reports to onFatal and terminates the goroutine; entries still
// queued at that point are lost, matching a best-effort background
// archiver rather than a durable pipeline.
type Archiver struct {
	queue   chan string
	onFatal func(error)
}

// NewArchiver starts the archiver goroutine.
func NewArchiver(onFatal func(error)) *Archiver {
	a := &Archiver{
		queue:   make(chan string, archiverQueueDepth),
		onFatal: onFatal,
	}
	go a.run()
	return a
}

// Enqueue schedules path for archiving. If the queue is full the path
// is dropped and reported to onFatal rather than blocking the caller.
func (a *Archiver) Enqueue(path string) {
	select {
	case a.queue <- path:
	default:
		if a.onFatal != nil {
			a.onFatal(ErrArchiveQueueFull)
		}
	}
}

// Close stops accepting new entries; the goroutine drains what remains
// and then exits.
func (a *Archiver) Close() {
	close(a.queue)
}

func (a *Archiver) run() {
	for path := range a.queue {
		if err := archiveFile(path); err != nil {
			if a.onFatal != nil {
				a.onFatal(err)
			}
			return
		}
	}
}

func archiveFile(path string) error {
	out, err := os.Create(path + ".zip")
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	entry, err := zw.Create(filepath.Base(path))
	if err != nil {
		_ = zw.Close()
		return err
	}

	in, err := os.Open(path)
	if err != nil {
		_ = zw.Close()
		return err
	}
	_, copyErr := io.Copy(entry, in)
	_ = in.Close()
	if copyErr != nil {
		_ = zw.Close()
		return copyErr
	}

	if err := zw.Close(); err != nil {
		return err
	}
	return os.Remove(path)
}
