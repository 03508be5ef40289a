// ring_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ring

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRejectsNonPowerOfTwoCapacity(t *testing.T) {
	_, err := NewBuilder[int](10).WithHandler(func(*int) {}).Build()
	require.Error(t, err)
}

func TestBuildRejectsMissingHandler(t *testing.T) {
	_, err := NewBuilder[int](16).Build()
	require.Error(t, err)
}

func TestBuildRejectsBatchSizeOutOfRange(t *testing.T) {
	_, err := NewBuilder[int](16).WithHandler(func(*int) {}).WithBatchSize(32).Build()
	require.Error(t, err)
}

// TestDiscardOnOverflow reproduces the documented async-discard
// scenario: capacity 64, no consumer draining, 1000 writes attempted.
// Exactly 64 should be accepted and the rest dropped; once the
// consumer is allowed to run, the 64 accepted values drain in
// submission order.
func TestDiscardOnOverflow(t *testing.T) {
	var mu sync.Mutex
	mu.Lock() // held until the test releases it, keeping the consumer parked

	var drained []int
	r, err := NewBuilder[int](64).
		WithOverflowPolicy(DropOnFull).
		WithHandler(func(v *int) {
			mu.Lock()
			defer mu.Unlock()
			drained = append(drained, *v)
		}).
		Build()
	require.NoError(t, err)

	accepted := 0
	rejected := 0
	for i := 0; i < 1000; i++ {
		i := i
		ok := r.Write(func(slot *int) { *slot = i })
		if ok {
			accepted++
		} else {
			rejected++
		}
	}

	assert.Equal(t, 64, accepted)
	assert.Equal(t, 936, rejected)
	assert.Equal(t, int64(936), r.Dropped())

	mu.Unlock()
	for r.ProcessBatch() > 0 {
	}

	require.Len(t, drained, 64)
	for i, v := range drained {
		assert.Equal(t, i, v, "drain order should match submission order")
	}
}

func TestRingCapacityOneMaintainsFIFO(t *testing.T) {
	var mu sync.Mutex
	var drained []int
	r, err := NewBuilder[int](1).
		WithHandler(func(v *int) {
			mu.Lock()
			defer mu.Unlock()
			drained = append(drained, *v)
		}).
		Build()
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		i := i
		r.Write(func(slot *int) { *slot = i })
		for r.ProcessBatch() > 0 {
		}
	}

	require.Len(t, drained, 5)
	for i, v := range drained {
		assert.Equal(t, i, v)
	}
}

func TestFlushWaitsForPendingWrites(t *testing.T) {
	var processed int64
	r, err := NewBuilder[int](64).
		WithHandler(func(*int) { atomic.AddInt64(&processed, 1) }).
		Build()
	require.NoError(t, err)

	go r.Loop()
	defer r.Close()

	for i := 0; i < 50; i++ {
		r.Write(func(slot *int) { *slot = i })
	}
	require.NoError(t, r.Flush())
	assert.Equal(t, int64(50), atomic.LoadInt64(&processed))
}

func TestCloseIsIdempotentAndRejectsFurtherWrites(t *testing.T) {
	r, err := NewBuilder[int](16).WithHandler(func(*int) {}).Build()
	require.NoError(t, err)

	r.Close()
	r.Close() // must not panic

	ok := r.Write(func(slot *int) { *slot = 1 })
	assert.False(t, ok, "write after Close should be rejected")
}

func TestBlockOnFullEventuallySucceeds(t *testing.T) {
	var mu sync.Mutex
	mu.Lock()
	var drained int64
	r, err := NewBuilder[int](2).
		WithOverflowPolicy(BlockOnFull).
		WithHandler(func(*int) {
			mu.Lock()
			defer mu.Unlock()
			atomic.AddInt64(&drained, 1)
		}).
		Build()
	require.NoError(t, err)

	r.Write(func(slot *int) { *slot = 1 })
	r.Write(func(slot *int) { *slot = 2 })

	done := make(chan struct{})
	go func() {
		r.Write(func(slot *int) { *slot = 3 }) // blocks until a slot frees
		close(done)
	}()

	mu.Unlock()
	go r.Loop()
	defer r.Close()

	<-done
}
