// layout_text_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "testing"

func TestTextLayoutEndToEnd(t *testing.T) {
	pattern := "{UtcYear}-{UtcMonth}-{UtcDay}T{UtcHour}:{UtcMinute}:{UtcSecond}.{Millisecond}{UtcTimezone} - {Microsecond}.{Nanosecond} - [{Thread}] - {Level} - {Logger} - {Message} - {EndLine}"
	layout := NewTextLayout(pattern)

	r := GetRecord()
	defer PutRecord(r)
	r.Timestamp = 1468408953123456789
	r.Thread = 0x98ABCDEF
	r.Level = Warn
	r.Logger = "Test logger"
	r.Message = "Test message"

	layout.Layout(r)

	want := "2016-07-13T11:22:33.123Z - 456.789 - [0x98ABCDEF] - WARN  - Test logger - Test message - " + eol
	if got := string(r.Raw); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestTextLayoutNoPlaceholdersIsVerbatim(t *testing.T) {
	layout := NewTextLayout("no placeholders here")

	r := GetRecord()
	defer PutRecord(r)
	r.Timestamp = 1
	r.Level = Info
	r.Logger = "x"
	r.Message = "y"

	layout.Layout(r)
	if got := string(r.Raw); got != "no placeholders here" {
		t.Errorf("got %q, want verbatim template", got)
	}
}

func TestTextLayoutUnknownPlaceholderPassesThroughWithBraces(t *testing.T) {
	layout := NewTextLayout("{Logger} says {NotAPlaceholder}")

	r := GetRecord()
	defer PutRecord(r)
	r.Logger = "svc"

	layout.Layout(r)
	if got := string(r.Raw); got != "svc says {NotAPlaceholder}" {
		t.Errorf("got %q", got)
	}
}

func TestTextLayoutMessageWithArgsFormats(t *testing.T) {
	layout := NewTextLayout("{Message}")

	r := GetRecord()
	defer PutRecord(r)
	r.Message = "count={0}"
	w := NewArgWriter(r, 0)
	w.Int32(42)

	layout.Layout(r)
	if got := string(r.Raw); got != "count=42" {
		t.Errorf("got %q, want %q", got, "count=42")
	}
}
