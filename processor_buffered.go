// processor_buffered.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "sync"

// BufferedProcessor accumulates records until Threshold is reached,
// then drains the whole batch downstream in one pass. Flush drains
// unconditionally regardless of how many records are pending.
type BufferedProcessor struct {
	*Base
	mu        sync.Mutex
	threshold int
	pending   []*Record
}

// NewBufferedProcessor builds a processor that drains every threshold
// records.
func NewBufferedProcessor(threshold int, layout Layout, filters []Filter, appenders []Appender, subProcessors []Processor) *BufferedProcessor {
	return &BufferedProcessor{
		Base:      NewBase(layout, filters, appenders, subProcessors),
		threshold: threshold,
	}
}

func (p *BufferedProcessor) Process(r *Record) bool {
	p.mu.Lock()
	clone := r.Clone()
	p.pending = append(p.pending, clone)
	drain := len(p.pending) >= p.threshold
	var batch []*Record
	if drain {
		batch = p.pending
		p.pending = nil
	}
	p.mu.Unlock()

	for _, rec := range batch {
		p.walk(rec)
		PutRecord(rec)
	}
	return true
}

// Flush drains whatever is pending regardless of the threshold.
func (p *BufferedProcessor) Flush() error {
	p.mu.Lock()
	batch := p.pending
	p.pending = nil
	p.mu.Unlock()

	for _, rec := range batch {
		p.walk(rec)
		PutRecord(rec)
	}
	return p.Base.Flush()
}
