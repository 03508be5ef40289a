//go:build cascade_nodebug

// logger_nodebug.go: Debug entry point stub for release builds
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// Debug is a no-op under the cascade_nodebug tag; the empty body is
// inlined away so call sites cost nothing in release binaries.
func (l *Logger) Debug(template string, args ...interface{}) {}
