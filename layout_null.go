// layout_null.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// NullLayout never populates Raw; every appender downstream skips the record.
type NullLayout struct{}

func NewNullLayout() *NullLayout { return &NullLayout{} }

func (*NullLayout) Layout(r *Record) {}
