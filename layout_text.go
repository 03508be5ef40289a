// layout_text.go: placeholder-pattern text layout with per-second calendar caching
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"bytes"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/agilira/cascade/internal/bufferpool"
)

type textTokenKind int

const (
	tokLiteral textTokenKind = iota
	tokUtcDateTime
	tokUtcDate
	tokUtcTime
	tokUtcYear
	tokUtcMonth
	tokUtcDay
	tokUtcHour
	tokUtcMinute
	tokUtcSecond
	tokUtcTimezone
	tokLocalDateTime
	tokLocalDate
	tokLocalTime
	tokLocalYear
	tokLocalMonth
	tokLocalDay
	tokLocalHour
	tokLocalMinute
	tokLocalSecond
	tokLocalTimezone
	tokMillisecond
	tokMicrosecond
	tokNanosecond
	tokThread
	tokLevel
	tokLogger
	tokMessage
	tokEndLine
)

// placeholderKinds maps the recognized, case-sensitive placeholder names
// to their token kind. Anything not in this table passes through
// unchanged, braces included.
var placeholderKinds = map[string]textTokenKind{
	"UtcDateTime":   tokUtcDateTime,
	"UtcDate":       tokUtcDate,
	"UtcTime":       tokUtcTime,
	"UtcYear":       tokUtcYear,
	"UtcMonth":      tokUtcMonth,
	"UtcDay":        tokUtcDay,
	"UtcHour":       tokUtcHour,
	"UtcMinute":     tokUtcMinute,
	"UtcSecond":     tokUtcSecond,
	"UtcTimezone":   tokUtcTimezone,
	"LocalDateTime": tokLocalDateTime,
	"LocalDate":     tokLocalDate,
	"LocalTime":     tokLocalTime,
	"LocalYear":     tokLocalYear,
	"LocalMonth":    tokLocalMonth,
	"LocalDay":      tokLocalDay,
	"LocalHour":     tokLocalHour,
	"LocalMinute":   tokLocalMinute,
	"LocalSecond":   tokLocalSecond,
	"LocalTimezone": tokLocalTimezone,
	"Millisecond":   tokMillisecond,
	"Microsecond":   tokMicrosecond,
	"Nanosecond":    tokNanosecond,
	"Thread":        tokThread,
	"Level":         tokLevel,
	"Logger":        tokLogger,
	"Message":       tokMessage,
	"EndLine":       tokEndLine,
}

type textToken struct {
	kind    textTokenKind
	literal string // valid when kind == tokLiteral
}

// compileTextPattern tokenizes a pattern once at construction time.
// Unknown placeholders, and any unterminated '{', pass through as
// literal text including their braces.
func compileTextPattern(pattern string) []textToken {
	var tokens []textToken
	var lit []byte

	flush := func() {
		if len(lit) > 0 {
			tokens = append(tokens, textToken{kind: tokLiteral, literal: string(lit)})
			lit = lit[:0]
		}
	}

	i := 0
	for i < len(pattern) {
		c := pattern[i]
		if c != '{' {
			lit = append(lit, c)
			i++
			continue
		}
		end := -1
		for j := i + 1; j < len(pattern); j++ {
			if pattern[j] == '}' {
				end = j
				break
			}
		}
		if end == -1 {
			lit = append(lit, c)
			i++
			continue
		}
		name := pattern[i+1 : end]
		if kind, ok := placeholderKinds[name]; ok {
			flush()
			tokens = append(tokens, textToken{kind: kind})
		} else {
			lit = append(lit, pattern[i:end+1]...)
		}
		i = end + 1
	}
	flush()
	return tokens
}

// secondCache memoizes the calendar decomposition of the last whole
// second seen, so records sharing a second avoid repeating
// time.Unix(...).UTC() (or .In(Local)) work. Not correctness-bearing:
// a per-instance lock is adequate, there is no need for a lock-free
// structure here.
type secondCache struct {
	mu  sync.Mutex
	sec int64
	set bool
	t   time.Time
}

func (c *secondCache) get(sec int64, local bool) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.set || c.sec != sec {
		if local {
			c.t = time.Unix(sec, 0).Local()
		} else {
			c.t = time.Unix(sec, 0).UTC()
		}
		c.sec = sec
		c.set = true
	}
	return c.t
}

// TextLayout renders a record through a compiled placeholder pattern.
// See compileTextPattern for the placeholder grammar.
type TextLayout struct {
	tokens     []textToken
	utcCache   secondCache
	localCache secondCache
}

// NewTextLayout compiles pattern into a TextLayout.
func NewTextLayout(pattern string) *TextLayout {
	return &TextLayout{tokens: compileTextPattern(pattern)}
}

func (tl *TextLayout) Layout(r *Record) {
	buf := bufferpool.Get(len(r.Message) + len(r.Buffer))
	defer bufferpool.Put(buf)

	sec := r.Timestamp / int64(time.Second)
	subNanos := r.Timestamp % int64(time.Second)
	ms := subNanos / int64(time.Millisecond)
	us := (subNanos / int64(time.Microsecond)) % 1000
	ns := subNanos % 1000

	for _, tok := range tl.tokens {
		switch tok.kind {
		case tokLiteral:
			buf.WriteString(tok.literal)
		case tokUtcDateTime:
			t := tl.utcCache.get(sec, false)
			writeDate(buf, t)
			buf.WriteByte('T')
			writeTime(buf, t)
		case tokUtcDate:
			writeDate(buf, tl.utcCache.get(sec, false))
		case tokUtcTime:
			writeTime(buf, tl.utcCache.get(sec, false))
		case tokUtcYear:
			writePad(buf, tl.utcCache.get(sec, false).Year(), 4)
		case tokUtcMonth:
			writePad(buf, int(tl.utcCache.get(sec, false).Month()), 2)
		case tokUtcDay:
			writePad(buf, tl.utcCache.get(sec, false).Day(), 2)
		case tokUtcHour:
			writePad(buf, tl.utcCache.get(sec, false).Hour(), 2)
		case tokUtcMinute:
			writePad(buf, tl.utcCache.get(sec, false).Minute(), 2)
		case tokUtcSecond:
			writePad(buf, tl.utcCache.get(sec, false).Second(), 2)
		case tokUtcTimezone:
			buf.WriteByte('Z')
		case tokLocalDateTime:
			t := tl.localCache.get(sec, true)
			writeDate(buf, t)
			buf.WriteByte('T')
			writeTime(buf, t)
		case tokLocalDate:
			writeDate(buf, tl.localCache.get(sec, true))
		case tokLocalTime:
			writeTime(buf, tl.localCache.get(sec, true))
		case tokLocalYear:
			writePad(buf, tl.localCache.get(sec, true).Year(), 4)
		case tokLocalMonth:
			writePad(buf, int(tl.localCache.get(sec, true).Month()), 2)
		case tokLocalDay:
			writePad(buf, tl.localCache.get(sec, true).Day(), 2)
		case tokLocalHour:
			writePad(buf, tl.localCache.get(sec, true).Hour(), 2)
		case tokLocalMinute:
			writePad(buf, tl.localCache.get(sec, true).Minute(), 2)
		case tokLocalSecond:
			writePad(buf, tl.localCache.get(sec, true).Second(), 2)
		case tokLocalTimezone:
			writeZoneOffset(buf, tl.localCache.get(sec, true))
		case tokMillisecond:
			writePad(buf, int(ms), 3)
		case tokMicrosecond:
			writePad(buf, int(us), 3)
		case tokNanosecond:
			writePad(buf, int(ns), 3)
		case tokThread:
			buf.WriteString("0x")
			buf.WriteString(strings.ToUpper(strconv.FormatUint(r.Thread, 16)))
		case tokLevel:
			name := r.Level.String()
			buf.WriteString(name)
			for i := len(name); i < 5; i++ {
				buf.WriteByte(' ')
			}
		case tokLogger:
			buf.WriteString(r.Logger)
		case tokMessage:
			if len(r.Buffer) == 0 {
				buf.WriteString(r.Message)
			} else {
				buf.WriteString(Format(r.Message, ParseArgs(r.Buffer)))
			}
		case tokEndLine:
			buf.WriteString(eol)
		}
	}

	r.Raw = append(r.Raw[:0], buf.Bytes()...)
}

func writeDate(buf *bytes.Buffer, t time.Time) {
	writePad(buf, t.Year(), 4)
	buf.WriteByte('-')
	writePad(buf, int(t.Month()), 2)
	buf.WriteByte('-')
	writePad(buf, t.Day(), 2)
}

func writeTime(buf *bytes.Buffer, t time.Time) {
	writePad(buf, t.Hour(), 2)
	buf.WriteByte(':')
	writePad(buf, t.Minute(), 2)
	buf.WriteByte(':')
	writePad(buf, t.Second(), 2)
}

func writePad(buf *bytes.Buffer, v, width int) {
	s := strconv.Itoa(v)
	for i := len(s); i < width; i++ {
		buf.WriteByte('0')
	}
	buf.WriteString(s)
}

func writeZoneOffset(buf *bytes.Buffer, t time.Time) {
	_, offset := t.Zone()
	if offset == 0 {
		buf.WriteByte('Z')
		return
	}
	sign := byte('+')
	if offset < 0 {
		sign = '-'
		offset = -offset
	}
	buf.WriteByte(sign)
	writePad(buf, offset/3600, 2)
	buf.WriteByte(':')
	writePad(buf, (offset%3600)/60, 2)
}
