// filter.go: predicates over records
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// Filter is a pure predicate over a borrowed record. Returning true
// admits the record to the rest of the processor subtree; false drops
// it silently.
type Filter interface {
	Admit(r *Record) bool
}
