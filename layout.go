// layout.go: the Layout contract shared by all deferred-formatting strategies
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// Layout runs on the consumer thread and populates Record.Raw from the
// record's other fields. A layout that leaves Raw empty causes every
// downstream appender to skip the record.
type Layout interface {
	Layout(r *Record)
}
