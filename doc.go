// Package cascade implements a high-throughput structured logging pipeline:
// zero-allocation record construction, a bounded wait-free hand-off to a
// consumer goroutine, deferred binary/hash/text-pattern formatting, and a
// rolling file appender with size- and time-based rotation plus background
// zip archiving.
//
// # Pipeline
//
// A Logger builds a Record from a logger name, level, message template, and
// typed arguments without allocating on the hot path, then hands it to a
// root Processor. Processor variants trade latency, ordering, and memory
// growth against each other: Sync serializes concurrent callers behind a
// mutex, AsyncWaitFree hands records to a bounded ring (dropping or
// spinning when it is full, per its overflow policy), AsyncWait uses an
// unbounded batched queue that never drops, and Buffered coalesces records
// up to a threshold before draining. Each processor formats the record
// through its Layout, hands the bytes to its appenders, and passes the
// record on to its child processors.
//
//	reg := cascade.NewRegistry()
//	reg.Register("", cascade.NewSyncProcessor(
//		cascade.NewTextLayout("{UtcDateTime}Z [{Level}] {Logger} - {Message}{EndLine}"),
//		nil,
//		[]cascade.Appender{cascade.NewFileAppender("app.log", true)},
//		nil,
//	))
//	reg.Start()
//	defer reg.Stop()
//
//	logger := reg.CreateLogger("svc")
//	logger.Info("request {} took {}ms", requestID, elapsed)
//
// # Layouts
//
// Binary and hash layouts are bit-stable, suitable for archival and
// cross-process replay via cmd/binlog and cmd/hashlog. The text-pattern
// layout expands placeholder tokens against a per-second cache shared by
// all records logged in the same wall-clock second.
//
// # Errors
//
// Constructors that validate configuration return *errors.Error values
// carrying one of the CodeXxx constants in errors.go. Faults raised on
// background goroutines (a panicking processor, a failed archive) have no
// synchronous caller to return to; they are instead delivered to the
// package-level ErrorHandler installed with SetErrorHandler.
package cascade
