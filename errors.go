// errors.go: structured error codes and the fatality hook
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import (
	"fmt"
	"os"
	"time"

	"github.com/agilira/go-errors"
)

// Error codes returned by constructors and raised on the fatality hook.
const (
	CodeInvalidConfig    errors.ErrorCode = "CASCADE_INVALID_CONFIG"
	CodeInvalidLevel     errors.ErrorCode = "CASCADE_INVALID_LEVEL"
	CodeInvalidPattern   errors.ErrorCode = "CASCADE_INVALID_PATTERN"
	CodeMissingProcessor errors.ErrorCode = "CASCADE_MISSING_PROCESSOR"
	CodeMissingAppender  errors.ErrorCode = "CASCADE_MISSING_APPENDER"
	CodeBufferOverflow   errors.ErrorCode = "CASCADE_BUFFER_OVERFLOW"
	CodeArgTruncated     errors.ErrorCode = "CASCADE_ARG_TRUNCATED"
	CodeFormatSyntax     errors.ErrorCode = "CASCADE_FORMAT_SYNTAX"
	CodeFileOpen         errors.ErrorCode = "CASCADE_FILE_OPEN"
	CodeFileWrite        errors.ErrorCode = "CASCADE_FILE_WRITE"
	CodeFileRotation     errors.ErrorCode = "CASCADE_FILE_ROTATION"
	CodeArchiveFailed    errors.ErrorCode = "CASCADE_ARCHIVE_FAILED"
	CodeSyslogPriority   errors.ErrorCode = "CASCADE_SYSLOG_PRIORITY"
	CodeRegistryNotFound errors.ErrorCode = "CASCADE_REGISTRY_NOT_FOUND"
	CodeProcessorPanic   errors.ErrorCode = "CASCADE_PROCESSOR_PANIC"
)

// ErrorHandler receives faults raised on background threads (the consumer
// loop, the archiver thread) that cannot propagate back to the caller that
// triggered them. This is the fatality hook described for the processor
// tree: there is no synchronous return path from a detached goroutine, so
// faults surface here instead.
type ErrorHandler func(err *errors.Error)

var defaultErrorHandler ErrorHandler = func(err *errors.Error) {
	fmt.Fprintf(os.Stderr, "[cascade] %s: %s\n", err.Code, err.Message)
	if err.Cause != nil {
		fmt.Fprintf(os.Stderr, "[cascade] caused by: %v\n", err.Cause)
	}
}

var currentErrorHandler = defaultErrorHandler

// SetErrorHandler installs a custom fatality hook. Passing nil restores
// the default, which writes to stderr.
func SetErrorHandler(handler ErrorHandler) {
	if handler == nil {
		currentErrorHandler = defaultErrorHandler
		return
	}
	currentErrorHandler = handler
}

func handleFault(err *errors.Error) {
	if err == nil {
		return
	}
	if err.Context == nil {
		err.Context = make(map[string]interface{})
	}
	err.Context["timestamp"] = time.Now().UTC()
	currentErrorHandler(err)
}

func newError(code errors.ErrorCode, message string) *errors.Error {
	return errors.New(code, message).WithContext("component", "cascade")
}

// recoverProcessorPanic turns a recovered panic in a processor's consumer
// goroutine into a fault delivered through the error handler, instead of
// crashing the process.
func recoverProcessorPanic(name string) {
	if r := recover(); r != nil {
		err := newError(CodeProcessorPanic, fmt.Sprintf("processor %q panicked: %v", name, r))
		handleFault(err)
	}
}
