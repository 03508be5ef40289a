// layout_binary_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"bytes"
	"testing"
)

func TestBinaryLayoutRoundTrip(t *testing.T) {
	appender := NewMemoryAppender()
	layout := NewBinaryLayout()

	r := GetRecord()
	r.Timestamp = 42
	r.Thread = 7
	r.Level = Info
	r.Logger = "L"
	r.Message = "M"
	r.Buffer = bytes.Repeat([]byte{0xAA}, 1024)

	layout.Layout(r)
	if err := appender.Append(r); err != nil {
		t.Fatalf("Append: %v", err)
	}
	PutRecord(r)

	dr, n, err := DecodeBinary(appender.Bytes())
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}
	if n != len(appender.Bytes()) {
		t.Errorf("consumed %d bytes, want %d", n, len(appender.Bytes()))
	}
	if dr.Timestamp != 42 || dr.Thread != 7 || dr.Level != Info {
		t.Errorf("got %+v", dr)
	}
	if dr.Logger != "L" || dr.Message != "M" {
		t.Errorf("got logger=%q message=%q", dr.Logger, dr.Message)
	}
	if !bytes.Equal(dr.Buffer, bytes.Repeat([]byte{0xAA}, 1024)) {
		t.Error("buffer mismatch after round trip")
	}
}

func TestBinaryLayoutTruncatesOversizeFields(t *testing.T) {
	layout := NewBinaryLayout()
	r := GetRecord()
	defer PutRecord(r)
	r.Logger = string(bytes.Repeat([]byte{'x'}, 300))

	layout.Layout(r)
	dr, _, err := DecodeBinary(r.Raw)
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}
	if len(dr.Logger) != 255 {
		t.Errorf("got logger len %d, want 255", len(dr.Logger))
	}
}

func TestDecodeBinaryRejectsTruncatedFrames(t *testing.T) {
	if _, _, err := DecodeBinary([]byte{1, 2}); err == nil {
		t.Error("expected error decoding a too-short frame")
	}
}

func TestBinlogAndDirectTextLayoutAgree(t *testing.T) {
	binary := NewBinaryLayout()
	text := NewTextLayout(DefaultTextPattern)

	r := GetRecord()
	r.Timestamp = 123456789
	r.Thread = 1
	r.Level = Error
	r.Logger = "svc"
	r.Message = "boom"
	binary.Layout(r)
	frame := append([]byte(nil), r.Raw...)
	PutRecord(r)

	dr, _, err := DecodeBinary(frame)
	if err != nil {
		t.Fatalf("DecodeBinary: %v", err)
	}

	replayed := GetRecord()
	defer PutRecord(replayed)
	replayed.Timestamp = dr.Timestamp
	replayed.Thread = dr.Thread
	replayed.Level = dr.Level
	replayed.Logger = dr.Logger
	replayed.Message = dr.Message
	replayed.Buffer = dr.Buffer
	text.Layout(replayed)

	direct := GetRecord()
	defer PutRecord(direct)
	direct.Timestamp = 123456789
	direct.Thread = 1
	direct.Level = Error
	direct.Logger = "svc"
	direct.Message = "boom"
	text.Layout(direct)

	if !bytes.Equal(replayed.Raw, direct.Raw) {
		t.Errorf("replayed %q != direct %q", replayed.Raw, direct.Raw)
	}
}
