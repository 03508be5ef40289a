// appender_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"bytes"
	"strings"
	"testing"
)

func TestNullAppenderDiscardsEverything(t *testing.T) {
	a := NewNullAppender()
	r := GetRecord()
	defer PutRecord(r)
	r.Raw = []byte("anything")
	if err := a.Append(r); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := a.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestOStreamAppenderWritesRawBytes(t *testing.T) {
	var buf bytes.Buffer
	a := NewOStreamAppender(&buf, false)

	r := GetRecord()
	defer PutRecord(r)
	r.Raw = []byte("plain line\n")
	if err := a.Append(r); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if buf.String() != "plain line\n" {
		t.Errorf("got %q", buf.String())
	}
}

func TestOStreamAppenderColorizesAndResets(t *testing.T) {
	var buf bytes.Buffer
	a := NewOStreamAppender(&buf, true)

	r := GetRecord()
	defer PutRecord(r)
	r.Level = Error
	r.Raw = []byte("boom")
	if err := a.Append(r); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got := buf.String()
	if !strings.HasPrefix(got, ansiReset+ansiRed) {
		t.Errorf("expected a reset then the error color before the record, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Errorf("expected the color reset at the end, got %q", got)
	}
	if !strings.Contains(got, "boom") {
		t.Errorf("expected the raw bytes in the middle, got %q", got)
	}
}

func TestOStreamAppenderNoneLevelAddsNoColor(t *testing.T) {
	var buf bytes.Buffer
	a := NewOStreamAppender(&buf, true)

	r := GetRecord()
	defer PutRecord(r)
	r.Level = None
	r.Raw = []byte("uncolored")
	if err := a.Append(r); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if buf.String() != "uncolored" {
		t.Errorf("got %q, want no ANSI wrapping for level None", buf.String())
	}
}

func TestMemoryAppenderResetClearsAccumulatedBytes(t *testing.T) {
	a := NewMemoryAppender()
	r := GetRecord()
	defer PutRecord(r)
	r.Raw = []byte("data")
	if err := a.Append(r); err != nil {
		t.Fatalf("Append: %v", err)
	}
	a.Reset()
	if a.String() != "" {
		t.Errorf("got %q, want empty after Reset", a.String())
	}
}
