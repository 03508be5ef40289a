// layout_empty.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// EmptyLayout assigns the single terminator byte, enough to let an
// appender observe a "populated but content-free" record.
type EmptyLayout struct{}

func NewEmptyLayout() *EmptyLayout { return &EmptyLayout{} }

func (*EmptyLayout) Layout(r *Record) {
	r.Raw = append(r.Raw[:0], 0)
}
