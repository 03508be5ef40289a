// appender_null.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// NullAppender discards everything; useful as a benchmark baseline or
// as a disabled branch of a processor tree.
type NullAppender struct{}

func NewNullAppender() *NullAppender { return &NullAppender{} }

func (*NullAppender) Append(r *Record) error { return nil }
func (*NullAppender) Flush() error           { return nil }
func (*NullAppender) Close() error           { return nil }
