// layout_binary.go: bit-stable canonical on-disk record framing
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"encoding/binary"
	"fmt"
)

// BinaryLayout packs a record into the canonical on-disk framing
// consumed by cmd/binlog:
//
//	size: u32 LE        (bytes following, excluding size and trailing 0)
//	timestamp: u64 LE
//	thread: u64 LE
//	level: u8
//	logger_len: u8
//	logger_bytes
//	message_len: u16 LE
//	message_bytes
//	buffer_len: u32 LE
//	buffer_bytes
//	trailing: 0x00
type BinaryLayout struct{}

func NewBinaryLayout() *BinaryLayout { return &BinaryLayout{} }

func (*BinaryLayout) Layout(r *Record) {
	logger := r.Logger
	if len(logger) > 255 {
		logger = logger[:255]
	}
	message := r.Message
	if len(message) > 0xFFFF {
		message = message[:0xFFFF]
	}

	body := 8 + 8 + 1 + 1 + len(logger) + 2 + len(message) + 4 + len(r.Buffer)
	out := make([]byte, 4+body+1)

	binary.LittleEndian.PutUint32(out[0:], uint32(body))
	binary.LittleEndian.PutUint64(out[4:], uint64(r.Timestamp))
	binary.LittleEndian.PutUint64(out[12:], r.Thread)
	out[20] = byte(r.Level)
	out[21] = byte(len(logger))
	off := 22
	off += copy(out[off:], logger)
	binary.LittleEndian.PutUint16(out[off:], uint16(len(message)))
	off += 2
	off += copy(out[off:], message)
	binary.LittleEndian.PutUint32(out[off:], uint32(len(r.Buffer)))
	off += 4
	off += copy(out[off:], r.Buffer)
	out[off] = 0

	r.Raw = out
}

// DecodedRecord is the result of parsing a binary- or hash-layout frame
// back into its component fields, used by the replay CLIs and tests.
type DecodedRecord struct {
	Timestamp int64
	Thread    uint64
	Level     Level
	Logger    string
	Message   string
	Buffer    []byte
}

// DecodeBinary parses one binary-layout frame starting at the buffer's
// beginning and returns the decoded record plus the number of bytes
// consumed (4 + body + 1).
func DecodeBinary(buf []byte) (DecodedRecord, int, error) {
	var dr DecodedRecord
	if len(buf) < 4 {
		return dr, 0, fmt.Errorf("cascade: truncated binary frame header")
	}
	body := int(binary.LittleEndian.Uint32(buf))
	total := 4 + body + 1
	if len(buf) < total {
		return dr, 0, fmt.Errorf("cascade: truncated binary frame body")
	}
	p := buf[4:]
	if len(p) < 21 {
		return dr, 0, fmt.Errorf("cascade: truncated binary frame fixed fields")
	}
	dr.Timestamp = int64(binary.LittleEndian.Uint64(p[0:]))
	dr.Thread = binary.LittleEndian.Uint64(p[8:])
	dr.Level = Level(p[16])
	loggerLen := int(p[17])
	off := 18
	if off+loggerLen+2 > len(p) {
		return dr, 0, fmt.Errorf("cascade: truncated binary logger field")
	}
	dr.Logger = string(p[off : off+loggerLen])
	off += loggerLen
	msgLen := int(binary.LittleEndian.Uint16(p[off:]))
	off += 2
	if off+msgLen+4 > len(p) {
		return dr, 0, fmt.Errorf("cascade: truncated binary message field")
	}
	dr.Message = string(p[off : off+msgLen])
	off += msgLen
	bufLen := int(binary.LittleEndian.Uint32(p[off:]))
	off += 4
	if off+bufLen > len(p) {
		return dr, 0, fmt.Errorf("cascade: truncated binary buffer field")
	}
	dr.Buffer = append([]byte(nil), p[off:off+bufLen]...)

	return dr, total, nil
}
