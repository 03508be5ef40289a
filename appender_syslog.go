//go:build !windows

// appender_syslog.go: syslog appender with facility/priority mapping
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"log/syslog"
	"sync"
)

// SyslogAppender writes laid-out bytes through log/syslog, mapping the
// record's Level to a syslog.Priority combined with a fixed facility.
type SyslogAppender struct {
	mu     sync.Mutex
	w      *syslog.Writer
	tag    string
	closed bool
}

// NewSyslogAppender dials the local syslog daemon (network == "" dials
// the default unix socket) tagging every message with tag. A zero
// facility defaults to LOG_USER.
func NewSyslogAppender(network, raddr string, facility syslog.Priority, tag string) (*SyslogAppender, error) {
	if facility == 0 {
		facility = syslog.LOG_USER
	}
	w, err := syslog.Dial(network, raddr, facility|syslog.LOG_INFO, tag)
	if err != nil {
		return nil, newError(CodeSyslogPriority, "syslog dial: "+err.Error()).WithContext("cause", err)
	}
	return &SyslogAppender{w: w, tag: tag}, nil
}

func levelToSyslogFunc(w *syslog.Writer, level Level) func(string) error {
	switch level {
	case Fatal:
		return w.Crit
	case Error:
		return w.Err
	case Warn:
		return w.Warning
	case Info:
		return w.Info
	case Debug:
		return w.Debug
	default:
		return w.Notice
	}
}

func (a *SyslogAppender) Append(r *Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	if !r.HasLayout() {
		return nil
	}
	write := levelToSyslogFunc(a.w, r.Level)
	return write(string(r.Raw))
}

func (a *SyslogAppender) Flush() error { return nil }

func (a *SyslogAppender) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	return a.w.Close()
}
