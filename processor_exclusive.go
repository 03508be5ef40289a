// processor_exclusive.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "sync"

// ExclusiveProcessor behaves exactly like SyncProcessor but its
// Process return value is meant to be consulted by a parent Base.walk
// loop to stop offering the record to peer sub-processors once one of
// them has claimed it (a "first handler wins" fan-out).
type ExclusiveProcessor struct {
	*Base
	mu sync.Mutex
}

func NewExclusiveProcessor(layout Layout, filters []Filter, appenders []Appender, subProcessors []Processor) *ExclusiveProcessor {
	return &ExclusiveProcessor{Base: NewBase(layout, filters, appenders, subProcessors)}
}

func (p *ExclusiveProcessor) Process(r *Record) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.walk(r)
}

func (p *ExclusiveProcessor) exclusive() bool { return true }
