// logger.go: per-severity entry points
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"fmt"

	"github.com/agilira/cascade/internal/gid"
	"github.com/agilira/go-timecache"
)

// Logger is stateless apart from its name and the root Processor it is
// bound to. Every entry point builds a Record, stamps the current time
// and goroutine id, serializes its arguments, and hands the record to
// root.Process.
type Logger struct {
	name     string
	root     Processor
	registry *Registry
}

// NewLogger binds name to root directly, without going through a
// Registry. Registry.CreateLogger is the usual entry point; this
// constructor exists for standalone processor trees and tests.
func NewLogger(name string, root Processor) *Logger {
	return &Logger{name: name, root: root}
}

func now() int64 {
	n := timecache.CachedTimeNano()
	if n < 2 {
		return 2
	}
	return n
}

// writeArg type-switches a single argument onto an ArgWriter. Unknown
// types fall back to their string form via a String argument rather
// than being dropped.
func writeArg(w ArgWriter, v interface{}) {
	switch x := v.(type) {
	case bool:
		w.Bool(x)
	case int8:
		w.Int8(x)
	case uint8:
		w.Uint8(x)
	case int16:
		w.Int16(x)
	case uint16:
		w.Uint16(x)
	case int32:
		w.Int32(x)
	case uint32:
		w.Uint32(x)
	case int:
		w.Int64(int64(x))
	case int64:
		w.Int64(x)
	case uint:
		w.Uint64(uint64(x))
	case uint64:
		w.Uint64(x)
	case float32:
		w.Float32(x)
	case float64:
		w.Float64(x)
	case string:
		w.String(x)
	case fmt.Stringer:
		w.String(x.String())
	default:
		w.String(fmt.Sprint(x))
	}
}

func (l *Logger) log(level Level, template string, args []interface{}) {
	if l.root == nil {
		return
	}
	r := GetRecord()
	r.Timestamp = now()
	r.Thread = gid.Get()
	r.Level = level
	r.Logger = l.name
	r.Message = template

	if len(args) > 0 {
		w := NewArgWriter(r, 0)
		for _, a := range args {
			writeArg(w, a)
		}
	}

	l.root.Process(r)
	PutRecord(r)
}

func (l *Logger) Fatal(template string, args ...interface{}) { l.log(Fatal, template, args) }
func (l *Logger) Error(template string, args ...interface{}) { l.log(Error, template, args) }
func (l *Logger) Warn(template string, args ...interface{})  { l.log(Warn, template, args) }
func (l *Logger) Info(template string, args ...interface{})  { l.log(Info, template, args) }

// Flush drains the bound root processor.
func (l *Logger) Flush() error {
	if l.root == nil {
		return nil
	}
	return l.root.Flush()
}

// Update re-resolves root from the registry that created this Logger,
// used when configuration is swapped live underneath a long-lived
// Logger. A no-op for loggers built with NewLogger directly.
func (l *Logger) Update() {
	if l.registry == nil {
		return
	}
	l.root = l.registry.Root(l.name)
}
