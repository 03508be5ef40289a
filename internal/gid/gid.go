// gid.go: best-effort goroutine identity
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

// Package gid extracts the runtime's internal goroutine id for use as
// the Thread field of a record. Go deliberately exposes no public API
// for this; parsing the "goroutine N [...]" header of a one-frame stack
// dump is the standard workaround, same technique net/http and several
// well-known debugging libraries use. It is not guaranteed stable
// across Go releases, so callers must treat the value as an opaque,
// process-local identifier rather than anything portable.
package gid

import (
	"bytes"
	"runtime"
	"strconv"
)

// Get returns the calling goroutine's runtime id, or 0 if the stack
// header could not be parsed (it never panics).
func Get() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	b := buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(b, []byte(prefix)) {
		return 0
	}
	b = b[len(prefix):]

	end := bytes.IndexByte(b, ' ')
	if end < 0 {
		return 0
	}
	id, err := strconv.ParseUint(string(b[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
