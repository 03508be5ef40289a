// size_policy_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rolling

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSizePolicyBackupChain reproduces the documented size-rollover
// scenario: max_bytes=10, max_backups=3, ten 11-byte records. The
// chain should settle at exactly four files (current plus three
// numbered backups); nothing beyond .3 should survive.
func TestSizePolicyBackupChain(t *testing.T) {
	dir := t.TempDir()
	p := NewSizePolicy(dir, "app", ".log", 10, 3, false, false, false, false, nil)
	defer p.Close()

	record := []byte("12345678901") // 11 bytes
	for i := 0; i < 10; i++ {
		require.NoError(t, p.Write(record))
	}

	for _, name := range []string{"app.log", "app.1.log", "app.2.log", "app.3.log"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, "expected %s to exist", name)
	}
	_, err := os.Stat(filepath.Join(dir, "app.4.log"))
	assert.True(t, os.IsNotExist(err), "app.4.log should not exist")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestSizePolicyNoBackupsRemovesOnRoll(t *testing.T) {
	dir := t.TempDir()
	p := NewSizePolicy(dir, "app", ".log", 10, 0, false, false, false, false, nil)
	defer p.Close()

	record := []byte("12345678901")
	require.NoError(t, p.Write(record))
	require.NoError(t, p.Write(record))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "with max_backups=0 only the live file should remain")
}

func TestSizePolicyArchivesInsteadOfNumbering(t *testing.T) {
	dir := t.TempDir()
	archiver := NewArchiver(nil)
	defer archiver.Close()

	p := NewSizePolicy(dir, "app", ".log", 10, 3, true, false, false, false, archiver)
	defer p.Close()

	record := []byte("12345678901")
	require.NoError(t, p.Write(record))
	require.NoError(t, p.Write(record))

	_, err := os.Stat(filepath.Join(dir, "app.1.log"))
	assert.True(t, os.IsNotExist(err), "numbered backups should not appear when archiving")
}

func TestSizePolicySizeReportsLiveFileLength(t *testing.T) {
	dir := t.TempDir()
	p := NewSizePolicy(dir, "app", ".log", 1024, 3, false, false, false, false, nil)
	defer p.Close()

	require.NoError(t, p.Write([]byte("hello")))
	assert.Equal(t, int64(5), p.Size())
}

func TestSizePolicyWatchExternalReopensOnRemoval(t *testing.T) {
	dir := t.TempDir()
	p := NewSizePolicy(dir, "app", ".log", 1024, 3, false, false, false, true, nil)
	defer p.Close()
	require.NotNil(t, p.watcher, "watcher should attach when watchExternal is true")

	require.NoError(t, p.Write([]byte("first")))
	require.NoError(t, os.Remove(filepath.Join(dir, "app.log")))

	// Give the watcher goroutine a moment to observe the removal and
	// force a reopen before the next write lands.
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		p.mu.Lock()
		reopened := !p.h.isOpen()
		p.mu.Unlock()
		if reopened {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	require.NoError(t, p.Write([]byte("second")))
	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}
