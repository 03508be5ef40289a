// processor.go: the processor tree base walk
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// Processor is one node of a processor tree: an optional layout, an
// ordered list of filters, an ordered list of appenders, and an
// ordered list of sub-processors.
//
// A tree is a strict forest: each Processor has exactly one parent
// (or none, at the root). Wiring the same node under two parents is a
// caller error, not something the tree detects.
type Processor interface {
	// Process runs the base walk: filters, then layout, then
	// appenders, then sub-processors, in that order. Returns true if
	// the record was handled (used by the Exclusive variant to
	// short-circuit peers).
	Process(r *Record) bool
	// Start/Stop bring the node (and anything it owns, such as a
	// consumer goroutine) up or down. Trees are started bottom-up and
	// stopped top-down by the registry.
	Start() error
	Stop() error
	// Flush drains anything buffered downstream of this node.
	Flush() error
}

// Base implements the shared sequential walk; the Sync, AsyncWaitFree,
// AsyncWait, Buffered, and Exclusive variants embed it and override
// Process (and, where relevant, Start/Stop) to add their own
// concurrency discipline around the same four steps.
type Base struct {
	Layout        Layout
	Filters       []Filter
	Appenders     []Appender
	SubProcessors []Processor
}

// NewBase builds a processor node. Any of layout, filters, appenders,
// or subProcessors may be nil/empty.
func NewBase(layout Layout, filters []Filter, appenders []Appender, subProcessors []Processor) *Base {
	return &Base{Layout: layout, Filters: filters, Appenders: appenders, SubProcessors: subProcessors}
}

// walk runs the four-step base sequence. A nil or no-op Layout leaves
// r.Raw empty; that is a per-appender skip-marker (each Appender checks
// r.HasLayout() itself), not a reason for the walk to stop early, so
// appenders and sub-processors always run regardless of whether this
// node's own layout produced anything. Appender and sub-processor
// errors are routed to the fatality hook rather than propagated, since
// a broken sink must never stall or crash the logging call site.
func (b *Base) walk(r *Record) bool {
	for _, f := range b.Filters {
		if !f.Admit(r) {
			return false
		}
	}

	if b.Layout != nil {
		b.Layout.Layout(r)
	}

	for _, a := range b.Appenders {
		if err := a.Append(r); err != nil {
			handleFault(newError(CodeFileWrite, "appender: "+err.Error()))
		}
	}
	for _, sp := range b.SubProcessors {
		handled := sp.Process(r)
		if handled && isExclusive(sp) {
			break
		}
	}
	return true
}

// exclusiveProcessor is implemented by processor variants whose
// "handled" return value should prevent peer sub-processors at the
// same level from also seeing the record.
type exclusiveProcessor interface {
	exclusive() bool
}

func isExclusive(p Processor) bool {
	e, ok := p.(exclusiveProcessor)
	return ok && e.exclusive()
}

func (b *Base) Process(r *Record) bool { return b.walk(r) }

// BaseNode returns b itself, letting metrics.go walk a processor tree
// built from any of the Base-embedding variants without needing a type
// switch over every concrete type.
func (b *Base) BaseNode() *Base { return b }

func (b *Base) Start() error {
	for _, sp := range b.SubProcessors {
		if err := sp.Start(); err != nil {
			return err
		}
	}
	return nil
}

func (b *Base) Stop() error {
	for _, sp := range b.SubProcessors {
		if err := sp.Stop(); err != nil {
			return err
		}
	}
	for _, a := range b.Appenders {
		_ = a.Close()
	}
	return nil
}

func (b *Base) Flush() error {
	for _, a := range b.Appenders {
		if err := a.Flush(); err != nil {
			return err
		}
	}
	for _, sp := range b.SubProcessors {
		if err := sp.Flush(); err != nil {
			return err
		}
	}
	return nil
}
