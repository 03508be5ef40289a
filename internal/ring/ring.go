// ring.go: bounded MPMC hand-off ring buffer for record dispatch
//
// A Vyukov-style multi-producer single-consumer ring: producers claim a
// sequence number by compare-and-swapping the writer cursor, write into
// their private slot, then publish it by storing the sequence into a
// per-slot availability marker. A failed claim (full ring, lost race)
// consumes no sequence, so every claimed slot is eventually published and
// the consumer never stalls behind a gap. The consumer only advances past
// sequences it finds contiguously published, so producers racing each
// other never corrupt the reader's view of the buffer.
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package ring

import (
	"fmt"
	"runtime"
	"time"

	"github.com/agilira/go-errors"
)

// Error codes returned by Builder.Build.
const (
	CodeInvalidCapacity errors.ErrorCode = "RING_INVALID_CAPACITY"
	CodeMissingHandler  errors.ErrorCode = "RING_MISSING_HANDLER"
	CodeInvalidBatch    errors.ErrorCode = "RING_INVALID_BATCH"
)

// HandlerFunc consumes one slot's contents on the reader side.
type HandlerFunc[T any] func(*T)

// OverflowPolicy controls what Write does when the ring is full.
type OverflowPolicy int

const (
	// DropOnFull discards the record and counts it as dropped.
	DropOnFull OverflowPolicy = iota
	// BlockOnFull spins the caller until a slot frees up.
	BlockOnFull
)

func (p OverflowPolicy) String() string {
	switch p {
	case DropOnFull:
		return "drop-on-full"
	case BlockOnFull:
		return "block-on-full"
	default:
		return "unknown"
	}
}

// Ring is a bounded, wait-free (DropOnFull) or blocking (BlockOnFull)
// multi-producer single-consumer queue of type T.
type Ring[T any] struct {
	buffer   []T
	capacity int64
	mask     int64

	writerCursor AtomicPaddedInt64
	readerCursor AtomicPaddedInt64

	available []AtomicPaddedInt64

	handler   HandlerFunc[T]
	batchSize int64
	policy    OverflowPolicy
	idle      IdleStrategy

	closed AtomicPaddedInt64

	processed AtomicPaddedInt64
	dropped   AtomicPaddedInt64

	_ [64]byte
}

// Builder configures and constructs a Ring.
type Builder[T any] struct {
	capacity  int64
	handler   HandlerFunc[T]
	batchSize int64
	policy    OverflowPolicy
	idle      IdleStrategy
}

// NewBuilder starts configuring a ring with the given capacity, which must
// be a power of two.
func NewBuilder[T any](capacity int64) *Builder[T] {
	return &Builder[T]{
		capacity:  capacity,
		batchSize: 64,
		policy:    DropOnFull,
	}
}

// WithHandler sets the per-slot consumer callback. Required.
func (b *Builder[T]) WithHandler(handler HandlerFunc[T]) *Builder[T] {
	b.handler = handler
	return b
}

// WithBatchSize sets the maximum number of slots drained per ProcessBatch call.
func (b *Builder[T]) WithBatchSize(n int64) *Builder[T] {
	b.batchSize = n
	return b
}

// WithOverflowPolicy sets drop-vs-block behavior for a full ring.
func (b *Builder[T]) WithOverflowPolicy(policy OverflowPolicy) *Builder[T] {
	b.policy = policy
	return b
}

// WithIdleStrategy sets the consumer's wait behavior when the ring is empty.
func (b *Builder[T]) WithIdleStrategy(idle IdleStrategy) *Builder[T] {
	b.idle = idle
	return b
}

// Build validates the configuration and allocates the ring.
func (b *Builder[T]) Build() (*Ring[T], error) {
	if b.capacity <= 0 || (b.capacity&(b.capacity-1)) != 0 {
		return nil, errors.New(CodeInvalidCapacity, "ring capacity must be a power of two")
	}
	if b.handler == nil {
		return nil, errors.New(CodeMissingHandler, "ring requires a handler")
	}
	if b.batchSize <= 0 || b.batchSize > b.capacity {
		return nil, errors.New(CodeInvalidBatch, "ring batch size must be in (0, capacity]")
	}

	idle := b.idle
	if idle == nil {
		idle = NewProgressiveIdleStrategy()
	}

	r := &Ring[T]{
		buffer:    make([]T, b.capacity),
		capacity:  b.capacity,
		mask:      b.capacity - 1,
		available: make([]AtomicPaddedInt64, b.capacity),
		handler:   b.handler,
		batchSize: b.batchSize,
		policy:    b.policy,
		idle:      idle,
	}
	for i := range r.available {
		r.available[i].Store(-1)
	}
	return r, nil
}

// Write publishes one record, built in place by fill, into the ring.
// It returns false if the record was dropped (full ring under DropOnFull,
// or the ring is closed).
func (r *Ring[T]) Write(fill func(*T)) bool {
	if r.closed.Load() != 0 {
		r.dropped.Add(1)
		return false
	}
	if r.policy == BlockOnFull {
		return r.writeBlocking(fill)
	}
	return r.writeDropping(fill)
}

func (r *Ring[T]) writeDropping(fill func(*T)) bool {
	for {
		seq := r.writerCursor.Load()
		if seq >= r.readerCursor.Load()+r.capacity {
			r.dropped.Add(1)
			return false
		}
		if !r.writerCursor.CompareAndSwap(seq, seq+1) {
			continue
		}
		slot := &r.buffer[seq&r.mask]
		fill(slot)
		r.available[seq&r.mask].Store(seq)
		return true
	}
}

func (r *Ring[T]) writeBlocking(fill func(*T)) bool {
	for {
		if r.closed.Load() != 0 {
			r.dropped.Add(1)
			return false
		}
		seq := r.writerCursor.Load()
		if seq < r.readerCursor.Load()+r.capacity {
			if !r.writerCursor.CompareAndSwap(seq, seq+1) {
				continue
			}
			slot := &r.buffer[seq&r.mask]
			fill(slot)
			r.available[seq&r.mask].Store(seq)
			return true
		}
		runtime.Gosched()
		time.Sleep(time.Microsecond)
	}
}

// ProcessBatch drains up to batchSize contiguously published slots,
// invoking the handler for each, and returns the number processed.
func (r *Ring[T]) ProcessBatch() int {
	current := r.readerCursor.Load()
	writerPos := r.writerCursor.Load()
	if current >= writerPos {
		return 0
	}

	maxProcess := min(r.batchSize, writerPos-current)
	available := current - 1
	for seq := current; seq < current+maxProcess; seq++ {
		if r.available[seq&r.mask].Load() == seq {
			available = seq
		} else {
			break
		}
	}
	if available < current {
		return 0
	}

	processed := int(available - current + 1)
	for seq := current; seq <= available; seq++ {
		idx := seq & r.mask
		r.handler(&r.buffer[idx])
		r.available[idx].Store(-1)
	}
	r.readerCursor.Store(available + 1)
	r.processed.Add(int64(processed))
	return processed
}

// Loop runs the consumer until Close is called, then drains whatever
// remains before returning.
func (r *Ring[T]) Loop() {
	for r.closed.Load() == 0 {
		if r.ProcessBatch() > 0 {
			r.idle.Reset()
		} else {
			r.idle.Idle()
		}
	}
	for r.ProcessBatch() > 0 {
	}
}

// Close marks the ring closed. Idempotent. After Close, Write always
// returns false.
func (r *Ring[T]) Close() {
	r.closed.Store(1)
}

// Flush blocks until every record accepted so far has been processed by
// the consumer, or returns an error after a policy-dependent timeout.
// The consumer loop must be running concurrently; otherwise Flush waits
// out the whole timeout (3s under DropOnFull, 5s under BlockOnFull) and
// returns the timeout error.
func (r *Ring[T]) Flush() error {
	targetPosition := r.writerCursor.Load()
	currentReader := r.readerCursor.Load()
	pending := targetPosition - currentReader
	if pending <= 0 {
		return nil
	}

	targetProcessed := r.processed.Load() + pending
	timeout := 5 * time.Second
	sleep := 100 * time.Microsecond
	if r.policy == DropOnFull {
		timeout = 3 * time.Second
		sleep = time.Millisecond
	}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if r.processed.Load() >= targetProcessed {
			return nil
		}
		runtime.Gosched()
		time.Sleep(sleep)
	}
	return fmt.Errorf("ring flush timeout: target=%d processed=%d", targetProcessed, r.processed.Load())
}

// Stats reports point-in-time counters, primarily for metrics export.
func (r *Ring[T]) Stats() map[string]int64 {
	writerPos := r.writerCursor.Load()
	readerPos := r.readerCursor.Load()
	return map[string]int64{
		"writer_position": writerPos,
		"reader_position": readerPos,
		"capacity":        r.capacity,
		"buffered":        writerPos - readerPos,
		"processed":       r.processed.Load(),
		"dropped":         r.dropped.Load(),
		"closed":          r.closed.Load(),
		"batch_size":      r.batchSize,
	}
}

// Depth returns the number of records currently buffered and awaiting
// processing. Safe to call concurrently; used by the metrics collector.
func (r *Ring[T]) Depth() int64 {
	return r.writerCursor.Load() - r.readerCursor.Load()
}

// Dropped returns the cumulative number of records rejected under
// DropOnFull.
func (r *Ring[T]) Dropped() int64 {
	return r.dropped.Load()
}

// Processed returns the cumulative number of records handed to the
// handler.
func (r *Ring[T]) Processed() int64 {
	return r.processed.Load()
}
