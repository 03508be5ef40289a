// hashdict.go: the .hashlog sidecar dictionary (hash -> original text)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
)

// HashDict accumulates the reverse mapping from FNV-1a hash to original
// text as a hash layout runs, and can persist/reload it as a .hashlog
// sidecar:
//
//	count: u32 LE
//	repeat count times:
//	  hash: u32 LE
//	  len:  u32 LE
//	  utf8: [u8; len]
type HashDict struct {
	mu      sync.Mutex
	entries map[uint32]string
}

// NewHashDict returns an empty dictionary.
func NewHashDict() *HashDict {
	return &HashDict{entries: make(map[uint32]string)}
}

// Record stores the original text for hash, first-write-wins (a
// collision keeps whichever text was seen first; the hash layout does
// not attempt to detect or resolve collisions, per design).
func (d *HashDict) Record(hash uint32, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.entries[hash]; !ok {
		d.entries[hash] = text
	}
}

// Lookup returns the original text for hash, if known.
func (d *HashDict) Lookup(hash uint32) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	s, ok := d.entries[hash]
	return s, ok
}

// WriteTo serializes the dictionary in .hashlog format.
func (d *HashDict) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	bw := bufio.NewWriter(w)
	var header [4]byte
	binary.LittleEndian.PutUint32(header[:], uint32(len(d.entries)))
	n, err := bw.Write(header[:])
	total := int64(n)
	if err != nil {
		return total, err
	}

	var lenBuf [8]byte
	for hash, text := range d.entries {
		binary.LittleEndian.PutUint32(lenBuf[0:], hash)
		binary.LittleEndian.PutUint32(lenBuf[4:], uint32(len(text)))
		n, err := bw.Write(lenBuf[:])
		total += int64(n)
		if err != nil {
			return total, err
		}
		n, err = bw.WriteString(text)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

// ReadHashDict reconstructs a dictionary previously written by WriteTo.
func ReadHashDict(r io.Reader) (*HashDict, error) {
	br := bufio.NewReader(r)
	var header [4]byte
	if _, err := io.ReadFull(br, header[:]); err != nil {
		return nil, fmt.Errorf("cascade: reading hashlog header: %w", err)
	}
	count := binary.LittleEndian.Uint32(header[:])

	d := NewHashDict()
	var lenBuf [8]byte
	for i := uint32(0); i < count; i++ {
		if _, err := io.ReadFull(br, lenBuf[:]); err != nil {
			return nil, fmt.Errorf("cascade: reading hashlog entry %d: %w", i, err)
		}
		hash := binary.LittleEndian.Uint32(lenBuf[0:])
		n := binary.LittleEndian.Uint32(lenBuf[4:])
		text := make([]byte, n)
		if _, err := io.ReadFull(br, text); err != nil {
			return nil, fmt.Errorf("cascade: reading hashlog entry %d text: %w", i, err)
		}
		d.entries[hash] = string(text)
	}
	return d, nil
}
