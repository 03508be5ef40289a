// processor_sync.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "sync"

// SyncProcessor runs the base walk under a process-local mutex, giving
// every record a fully serialized view of the node's layout and
// appenders. Simplest variant; appropriate when the appenders
// themselves are the bottleneck and contention is acceptable.
type SyncProcessor struct {
	*Base
	mu sync.Mutex
}

// NewSyncProcessor builds a synchronous processor node.
func NewSyncProcessor(layout Layout, filters []Filter, appenders []Appender, subProcessors []Processor) *SyncProcessor {
	return &SyncProcessor{Base: NewBase(layout, filters, appenders, subProcessors)}
}

func (p *SyncProcessor) Process(r *Record) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.walk(r)
}
