// appender_rolling.go: rolling file appenders (size- and time-triggered)
//
// Copyright (c) 2025 AGILira
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0

package cascade

import "github.com/agilira/cascade/internal/rolling"

// RollInterval names the period a RollingFileAppender configured with
// time-based rotation rolls on.
type RollInterval int

const (
	RollSecond RollInterval = iota
	RollMinute
	RollHour
	RollDay
	RollMonth
	RollYear
)

func (iv RollInterval) toRolling() rolling.Interval {
	switch iv {
	case RollSecond:
		return rolling.Second
	case RollMinute:
		return rolling.Minute
	case RollHour:
		return rolling.Hour
	case RollDay:
		return rolling.Day
	case RollMonth:
		return rolling.Month
	case RollYear:
		return rolling.Year
	default:
		return rolling.Second
	}
}

func archiverFatalHook(err error) {
	handleFault(newError(CodeArchiveFailed, err.Error()))
}

// RollingFileAppender wraps either a size- or a time-triggered rotation
// policy behind the common Appender contract.
type RollingFileAppender struct {
	size     *rolling.SizePolicy
	time     *rolling.TimePolicy
	archiver *rolling.Archiver
}

// NewSizeRollingAppender rotates once the next write would exceed
// maxBytes, keeping at most maxBackups numbered backups (or archiving
// them when archive is true). When watchExternal is true, the target
// directory is watched so an external removal or rename of the live
// file triggers a reopen instead of writing into a dangling descriptor;
// a truncation in place does not trigger a reopen.
func NewSizeRollingAppender(directory, basename, extension string, maxBytes int64, maxBackups int, archive, truncate, autoFlush, watchExternal bool) (*RollingFileAppender, error) {
	if maxBytes <= 0 {
		return nil, newError(CodeInvalidConfig, "rolling appender: max bytes must be positive")
	}
	if maxBackups < 0 {
		return nil, newError(CodeInvalidConfig, "rolling appender: max backups must not be negative")
	}
	var archiver *rolling.Archiver
	if archive {
		archiver = rolling.NewArchiver(archiverFatalHook)
	}
	return &RollingFileAppender{
		size:     rolling.NewSizePolicy(directory, basename, extension, maxBytes, maxBackups, archive, truncate, autoFlush, watchExternal, archiver),
		archiver: archiver,
	}, nil
}

// NewTimeRollingAppender rotates whenever a record's period-truncated
// timestamp crosses the current boundary, naming files from
// filenamePattern (a date/time subset of the text layout grammar). See
// NewSizeRollingAppender for watchExternal.
func NewTimeRollingAppender(directory, filenamePattern string, interval RollInterval, archive, truncate, autoFlush, watchExternal bool) (*RollingFileAppender, error) {
	if filenamePattern == "" {
		return nil, newError(CodeInvalidPattern, "rolling appender: filename pattern must not be empty")
	}
	if interval < RollSecond || interval > RollYear {
		return nil, newError(CodeInvalidConfig, "rolling appender: unknown roll interval")
	}
	var archiver *rolling.Archiver
	if archive {
		archiver = rolling.NewArchiver(archiverFatalHook)
	}
	return &RollingFileAppender{
		time:     rolling.NewTimePolicy(directory, filenamePattern, interval.toRolling(), archive, truncate, autoFlush, watchExternal, archiver),
		archiver: archiver,
	}, nil
}

func (a *RollingFileAppender) Append(r *Record) error {
	if !r.HasLayout() {
		return nil
	}
	if a.size != nil {
		return a.size.Write(r.Raw)
	}
	return a.time.Write(r.Timestamp, r.Raw)
}

func (a *RollingFileAppender) Flush() error {
	if a.size != nil {
		return a.size.Flush()
	}
	return a.time.Flush()
}

// CurrentSize reports the live file's byte length, for metrics
// collection. Implements the sizedAppender interface in metrics.go.
func (a *RollingFileAppender) CurrentSize() int64 {
	if a.size != nil {
		return a.size.Size()
	}
	return a.time.Size()
}

func (a *RollingFileAppender) Close() error {
	var err error
	if a.size != nil {
		err = a.size.Close()
	} else {
		err = a.time.Close()
	}
	if a.archiver != nil {
		a.archiver.Close()
	}
	return err
}
