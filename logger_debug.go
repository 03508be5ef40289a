//go:build !cascade_nodebug

// logger_debug.go: Debug entry point, elided under the cascade_nodebug tag
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

// Debug logs at Debug level. Building with -tags cascade_nodebug
// replaces this with an empty body the compiler inlines away, removing
// debug logging from release binaries entirely.
func (l *Logger) Debug(template string, args ...interface{}) { l.log(Debug, template, args) }
