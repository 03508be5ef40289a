// format_test.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "testing"

func argsFromRecord(build func(w ArgWriter)) []Arg {
	r := GetRecord()
	defer PutRecord(r)
	build(NewArgWriter(r, 0))
	return ParseArgs(r.Buffer)
}

func TestFormatImplicitIndex(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Int32(1); w.Int32(2) })
	got := Format("{} and {}", args)
	if got != "1 and 2" {
		t.Errorf("got %q", got)
	}
}

func TestFormatExplicitIndex(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.String("a"); w.String("b") })
	got := Format("{1} then {0}", args)
	if got != "b then a" {
		t.Errorf("got %q", got)
	}
}

func TestFormatHexWithAltForm(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Uint32(255) })
	got := Format("{:#x}", args)
	if got != "0xff" {
		t.Errorf("got %q", got)
	}
}

func TestFormatZeroPaddedWidth(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Int32(7) })
	got := Format("{:04d}", args)
	if got != "0007" {
		t.Errorf("got %q", got)
	}
}

func TestFormatFloatPrecision(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Float64(3.14159) })
	got := Format("{:.2f}", args)
	if got != "3.14" {
		t.Errorf("got %q", got)
	}
}

func TestFormatNestedWidthRef(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Int32(8); w.Int32(5) })
	got := Format("{1:{0}d}", args)
	if got != "       5" {
		t.Errorf("got %q", got)
	}
}

func TestFormatMalformedTemplateFallsBackToRaw(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Int32(1) })
	template := "unterminated {0"
	if got := Format(template, args); got != template {
		t.Errorf("got %q, want template returned unchanged", got)
	}
}

func TestFormatOutOfRangeIndexIsPlaceholder(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Int32(1) })
	got := Format("{5}", args)
	if got != "<?>" {
		t.Errorf("got %q, want <?>", got)
	}
}

func TestFormatEscapedBraces(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) {})
	got := Format("{{literal}}", args)
	if got != "{literal}" {
		t.Errorf("got %q", got)
	}
}

func TestFormatSignedPositive(t *testing.T) {
	args := argsFromRecord(func(w ArgWriter) { w.Int32(5) })
	got := Format("{:+d}", args)
	if got != "+5" {
		t.Errorf("got %q", got)
	}
}
