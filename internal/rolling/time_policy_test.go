// time_policy_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package rolling

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTimePolicySecondBoundaryProducesDistinctFiles reproduces the
// documented time-rollover scenario: a Second-granularity policy fed
// three records more than a second apart should produce three
// distinct files, one record each.
func TestTimePolicySecondBoundaryProducesDistinctFiles(t *testing.T) {
	dir := t.TempDir()
	p := NewTimePolicy(dir, "{UtcDateTime}.log", Second, false, false, false, false, nil)
	defer p.Close()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, offset := range []time.Duration{0, time.Second, 2 * time.Second} {
		ts := base.Add(offset).UnixNano()
		require.NoError(t, p.Write(ts, []byte("record")), "record %d", i)
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "three distinct second boundaries should yield three files")

	for _, e := range entries {
		info, err := e.Info()
		require.NoError(t, err)
		assert.Equal(t, int64(len("record")), info.Size())
	}
}

func TestTimePolicyFirstFileNamedByOwnTimestamp(t *testing.T) {
	dir := t.TempDir()
	p := NewTimePolicy(dir, "{UtcDateTime}.log", Hour, false, false, false, false, nil)
	defer p.Close()

	ts := time.Date(2026, 3, 4, 15, 30, 0, 0, time.UTC)
	require.NoError(t, p.Write(ts.UnixNano(), []byte("x")))

	_, err := os.Stat(p.pathFor(ts))
	assert.NoError(t, err, "the first file should be named after the first record's own timestamp")
}

func TestTimePolicySameBoundaryAppendsToSameFile(t *testing.T) {
	dir := t.TempDir()
	p := NewTimePolicy(dir, "{UtcDateTime}.log", Minute, false, false, false, false, nil)
	defer p.Close()

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, p.Write(base.UnixNano(), []byte("a")))
	require.NoError(t, p.Write(base.Add(30*time.Second).UnixNano(), []byte("b")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, int64(2), p.Size())
}

func TestTimePolicyWatchExternalAttachesAfterFirstWrite(t *testing.T) {
	dir := t.TempDir()
	p := NewTimePolicy(dir, "{UtcDateTime}.log", Hour, false, false, false, true, nil)
	defer p.Close()

	assert.Nil(t, p.watcher, "watcher has no path to watch before the first write")
	require.NoError(t, p.Write(time.Now().UnixNano(), []byte("x")))
	assert.NotNil(t, p.watcher, "watcher should attach once the first file is known")
}
