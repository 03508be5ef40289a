// filter_logger.go
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "regexp"

// LoggerFilter admits records whose Logger name matches a compiled
// regular expression.
type LoggerFilter struct {
	pattern *regexp.Regexp
}

// NewLoggerFilter compiles pattern once; a compile error is returned
// immediately so construction-time mistakes never surface as a panic
// on the hot path.
func NewLoggerFilter(pattern string) (*LoggerFilter, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, newError(CodeInvalidPattern, "logger filter: "+err.Error())
	}
	return &LoggerFilter{pattern: re}, nil
}

func (f *LoggerFilter) Admit(r *Record) bool {
	return f.pattern.MatchString(r.Logger)
}
