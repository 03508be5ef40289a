// filter_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "testing"

func TestLevelFilterInclusiveRange(t *testing.T) {
	f := NewLevelFilter(Error, Info)
	cases := []struct {
		level Level
		want  bool
	}{
		{Fatal, false},
		{Error, true},
		{Warn, true},
		{Info, true},
		{Debug, false},
	}
	for _, c := range cases {
		r := &Record{Level: c.level}
		if got := f.Admit(r); got != c.want {
			t.Errorf("level %v: got %v, want %v", c.level, got, c.want)
		}
	}
}

func TestLevelFilterExcludingNegatesRange(t *testing.T) {
	f := NewLevelFilterExcluding(Error, Info)
	if f.Admit(&Record{Level: Warn}) {
		t.Error("Warn should be excluded")
	}
	if !f.Admit(&Record{Level: Debug}) {
		t.Error("Debug should be admitted")
	}
}

func TestLoggerFilterMatchesPattern(t *testing.T) {
	f, err := NewLoggerFilter(`^svc\.`)
	if err != nil {
		t.Fatalf("NewLoggerFilter: %v", err)
	}
	if !f.Admit(&Record{Logger: "svc.auth"}) {
		t.Error("svc.auth should match")
	}
	if f.Admit(&Record{Logger: "other.auth"}) {
		t.Error("other.auth should not match")
	}
}

func TestLoggerFilterRejectsInvalidPattern(t *testing.T) {
	if _, err := NewLoggerFilter("("); err == nil {
		t.Error("expected a compile error for an unbalanced pattern")
	}
}

func TestMessageFilterMatchesRawTemplate(t *testing.T) {
	f, err := NewMessageFilter(`timeout`)
	if err != nil {
		t.Fatalf("NewMessageFilter: %v", err)
	}
	if !f.Admit(&Record{Message: "request timeout after {0}ms"}) {
		t.Error("expected a match against the raw template")
	}
}

func TestSwitchFilterTogglesState(t *testing.T) {
	f := NewSwitchFilter(true)
	if !f.Admit(&Record{}) {
		t.Error("should admit while on")
	}
	f.Disable()
	if f.Admit(&Record{}) {
		t.Error("should reject once disabled")
	}
	if got := f.Toggle(); !got {
		t.Error("Toggle from off should return true")
	}
	if !f.Admit(&Record{}) {
		t.Error("should admit after toggling back on")
	}
}

func TestEmptyLayoutWritesTerminatorOnly(t *testing.T) {
	r := GetRecord()
	defer PutRecord(r)
	(&EmptyLayout{}).Layout(r)
	if len(r.Raw) != 1 || r.Raw[0] != 0 {
		t.Errorf("got %v, want a single zero byte", r.Raw)
	}
}

func TestNullLayoutLeavesRawEmpty(t *testing.T) {
	r := GetRecord()
	defer PutRecord(r)
	(&NullLayout{}).Layout(r)
	if len(r.Raw) != 0 {
		t.Errorf("got %v, want no bytes written", r.Raw)
	}
}
