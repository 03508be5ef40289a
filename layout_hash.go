// layout_hash.go: fixed-size framing with FNV-1a hashed logger/message
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"encoding/binary"
	goerrors "errors"
)

// HashLayout uses the same frame as BinaryLayout but replaces the
// variable-length logger and message fields with their 32-bit FNV-1a
// hashes, producing a fixed, minimal record size. The original text is
// recovered out of band from a HashDict sidecar.
type HashLayout struct {
	dict *HashDict
}

// NewHashLayout builds a hash layout. dict may be nil if the caller only
// needs the compact on-the-wire framing and records the dictionary
// separately (e.g. via HashDict.Record at the call site).
func NewHashLayout(dict *HashDict) *HashLayout {
	return &HashLayout{dict: dict}
}

func (h *HashLayout) Layout(r *Record) {
	loggerHash := FNV1a(r.Logger)
	messageHash := FNV1a(r.Message)

	if h.dict != nil {
		h.dict.Record(loggerHash, r.Logger)
		h.dict.Record(messageHash, r.Message)
	}

	body := 8 + 8 + 1 + 4 + 4 + 4 + len(r.Buffer)
	out := make([]byte, 4+body+1)

	binary.LittleEndian.PutUint32(out[0:], uint32(body))
	binary.LittleEndian.PutUint64(out[4:], uint64(r.Timestamp))
	binary.LittleEndian.PutUint64(out[12:], r.Thread)
	out[20] = byte(r.Level)
	binary.LittleEndian.PutUint32(out[21:], loggerHash)
	binary.LittleEndian.PutUint32(out[25:], messageHash)
	binary.LittleEndian.PutUint32(out[29:], uint32(len(r.Buffer)))
	off := 33
	off += copy(out[off:], r.Buffer)
	out[off] = 0

	r.Raw = out
}

// DecodedHashRecord mirrors DecodedRecord but carries hashes in place of
// the original logger/message text.
type DecodedHashRecord struct {
	Timestamp   int64
	Thread      uint64
	Level       Level
	LoggerHash  uint32
	MessageHash uint32
	Buffer      []byte
}

// DecodeHash parses one hash-layout frame and returns the number of
// bytes consumed.
func DecodeHash(buf []byte) (DecodedHashRecord, int, error) {
	var dr DecodedHashRecord
	if len(buf) < 4 {
		return dr, 0, errShortHashFrame
	}
	body := int(binary.LittleEndian.Uint32(buf))
	total := 4 + body + 1
	if len(buf) < total {
		return dr, 0, errShortHashFrame
	}
	p := buf[4:]
	if len(p) < 29 {
		return dr, 0, errShortHashFrame
	}
	dr.Timestamp = int64(binary.LittleEndian.Uint64(p[0:]))
	dr.Thread = binary.LittleEndian.Uint64(p[8:])
	dr.Level = Level(p[16])
	dr.LoggerHash = binary.LittleEndian.Uint32(p[17:])
	dr.MessageHash = binary.LittleEndian.Uint32(p[21:])
	bufLen := int(binary.LittleEndian.Uint32(p[25:]))
	if 29+bufLen > len(p) {
		return dr, 0, errShortHashFrame
	}
	dr.Buffer = append([]byte(nil), p[29:29+bufLen]...)
	return dr, total, nil
}

var errShortHashFrame = goerrors.New("cascade: truncated hash frame")
