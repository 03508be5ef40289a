// pool.go: size-classed pooled byte buffers for layout output
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package bufferpool

import (
	"bytes"
	"sync"
	"sync/atomic"
)

// MaxRetainedCap is the largest buffer capacity either tier will hand
// back out. A buffer that grows past this (a pathological oversized
// message) has its backing array replaced on Put rather than kept
// around for the next caller.
const MaxRetainedCap = 1 << 20 // 1 MiB

// largeThreshold is the Get size hint, in bytes, above which a buffer
// is drawn from the large tier instead of the small one. Most records
// run through a short text or binary layout (a handful of placeholder
// substitutions around a short message); the large tier exists for
// the minority carrying a stack trace, a large attached buffer arg, or
// a long formatted message, so those don't force every small record to
// pay for a buffer sized for the rare case.
const largeThreshold = 1024

// smallSeedCap and largeSeedCap are the capacities each tier's buffers
// are freshly allocated with, chosen so the common case of each tier
// needs no growth: smallSeedCap covers a typical single-line text/hash
// record, largeSeedCap covers a record carrying a small stack trace or
// a multi-field binary payload without reallocating mid-write.
const (
	smallSeedCap = 256
	largeSeedCap = 4096
)

type tier struct {
	pool    sync.Pool
	seedCap int
	spawned int64
}

func newTier(seedCap int) *tier {
	t := &tier{seedCap: seedCap}
	t.pool.New = func() any {
		atomic.AddInt64(&t.spawned, 1)
		return bytes.NewBuffer(make([]byte, 0, seedCap))
	}
	return t
}

var (
	small = newTier(smallSeedCap)
	large = newTier(largeSeedCap)

	gets    int64
	puts    int64
	evicted int64
)

// Get removes a buffer from the pool sized for at least sizeHint bytes
// of eventual output, resetting it so the caller sees no prior
// content. sizeHint is advisory: a buffer drawn from either tier still
// grows past its seed capacity like any bytes.Buffer if the caller
// writes more than expected.
func Get(sizeHint int) *bytes.Buffer {
	atomic.AddInt64(&gets, 1)
	t := tierFor(sizeHint)
	b := t.pool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

func tierFor(sizeHint int) *tier {
	if sizeHint > largeThreshold {
		return large
	}
	return small
}

// Put returns b to the tier matching its current capacity. A buffer
// whose capacity has grown past MaxRetainedCap is replaced with a
// fresh, tier-seeded one instead of being retained, so one outsized
// record doesn't inflate either pool's steady-state memory; it is
// returned to the small tier in that case since a capacity this far
// past MaxRetainedCap no longer reflects a useful size hint either
// way.
func Put(b *bytes.Buffer) {
	if b == nil {
		return
	}
	atomic.AddInt64(&puts, 1)

	if b.Cap() > MaxRetainedCap {
		atomic.AddInt64(&evicted, 1)
		*b = *bytes.NewBuffer(make([]byte, 0, smallSeedCap))
		b.Reset()
		small.pool.Put(b)
		return
	}

	b.Reset()
	tierFor(b.Cap()).pool.Put(b)
}

// Stats is a point-in-time snapshot of pool activity, exported for
// metrics collection.
type Stats struct {
	Gets         int64
	Puts         int64
	Spawned      int64
	SpawnedLarge int64
	Evictions    int64
}

// GetStats returns the current counters. Safe for concurrent use.
func GetStats() Stats {
	return Stats{
		Gets:         atomic.LoadInt64(&gets),
		Puts:         atomic.LoadInt64(&puts),
		Spawned:      atomic.LoadInt64(&small.spawned),
		SpawnedLarge: atomic.LoadInt64(&large.spawned),
		Evictions:    atomic.LoadInt64(&evicted),
	}
}

// ResetStats zeroes the counters. Intended for test isolation between
// subtests that assert on pool behavior.
func ResetStats() {
	atomic.StoreInt64(&gets, 0)
	atomic.StoreInt64(&puts, 0)
	atomic.StoreInt64(&small.spawned, 0)
	atomic.StoreInt64(&large.spawned, 0)
	atomic.StoreInt64(&evicted, 0)
}
