// processor_asyncwaitfree.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"sync/atomic"

	"github.com/agilira/cascade/internal/ring"
)

// AsyncWaitFreeProcessor hands each record to a bounded multi-producer
// ring buffer and returns immediately; a single dedicated consumer
// goroutine drains it and runs the base walk. Under OverflowPolicy
// DropOnFull a full ring drops the record and Process returns false;
// under BlockOnFull the producer spins
// until a slot frees up.
type AsyncWaitFreeProcessor struct {
	*Base
	r       *ring.Ring[Record]
	done    chan struct{}
	stopped atomic.Bool
}

// NewAsyncWaitFreeProcessor builds a wait-free async processor.
// Capacity must be a power of two.
func NewAsyncWaitFreeProcessor(capacity int64, policy ring.OverflowPolicy, layout Layout, filters []Filter, appenders []Appender, subProcessors []Processor) (*AsyncWaitFreeProcessor, error) {
	p := &AsyncWaitFreeProcessor{Base: NewBase(layout, filters, appenders, subProcessors)}

	rb, err := ring.NewBuilder[Record](capacity).
		WithOverflowPolicy(policy).
		WithHandler(func(rec *Record) {
			if rec.IsControl() {
				return
			}
			p.walk(rec)
		}).
		Build()
	if err != nil {
		return nil, newError(CodeInvalidConfig, "async-wait-free processor: "+err.Error())
	}
	p.r = rb
	return p, nil
}

func (p *AsyncWaitFreeProcessor) Process(r *Record) bool {
	return p.r.Write(func(slot *Record) {
		slot.Timestamp = r.Timestamp
		slot.Thread = r.Thread
		slot.Level = r.Level
		slot.Logger = r.Logger
		slot.Message = r.Message
		slot.Buffer = append(slot.Buffer[:0], r.Buffer...)
		slot.Raw = slot.Raw[:0]
	})
}

func (p *AsyncWaitFreeProcessor) Start() error {
	if err := p.Base.Start(); err != nil {
		return err
	}
	p.done = make(chan struct{})
	go func() {
		defer close(p.done)
		defer recoverProcessorPanic("async-wait-free")
		p.r.Loop()
	}()
	return nil
}

// Stop drains the ring, joins the consumer goroutine, then stops the
// subtree. Calling Stop again is a no-op.
func (p *AsyncWaitFreeProcessor) Stop() error {
	if p.stopped.Swap(true) {
		return nil
	}
	if err := p.Flush(); err != nil {
		handleFault(newError(CodeBufferOverflow, "async-wait-free flush on stop: "+err.Error()))
	}
	p.r.Close()
	if p.done != nil {
		<-p.done
	}
	return p.Base.Stop()
}

func (p *AsyncWaitFreeProcessor) Flush() error {
	if err := p.r.Flush(); err != nil {
		return err
	}
	return p.Base.Flush()
}

// RingStats exposes the underlying ring's point-in-time counters for
// metrics collection. Implements the ringStatter interface in metrics.go.
func (p *AsyncWaitFreeProcessor) RingStats() map[string]int64 {
	return p.r.Stats()
}
