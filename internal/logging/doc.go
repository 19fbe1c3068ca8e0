// Package logging provides structured logging for the papyru2 engine.
//
// This package wraps Go's log/slog to provide JSON-formatted logs with
// context propagation support. Every stage of a note's lifecycle (creation
// throttling, title commits, autosave flushes, atomic writes) is logged so
// that a misbehaving run can be reconstructed after the fact.
//
// # Features
//
//   - JSON-formatted structured logging via slog
//   - Configurable log levels (DEBUG, INFO, WARN, ERROR)
//   - Context propagation (component name, note path)
//   - Log rotation with configurable size limits
//   - Optional gzip compression for rotated logs
//   - Log reading and filtering utilities for the "logs" command
//
// # Thread Safety
//
// All types in this package are safe for concurrent use. The [Logger] type
// uses Go's slog internally which is designed for concurrent access. The
// [RotatingWriter] type uses a mutex to protect file operations during
// rotation. Child loggers created via With* methods share the underlying
// writer safely.
//
// # Basic Usage
//
// Create a logger for a log directory:
//
//	logger, err := logging.NewLogger("/path/to/logs", "INFO")
//	if err != nil {
//	    return err
//	}
//	defer logger.Close()
//
//	logger.Debug("detailed info", "key", "value")
//	logger.Info("note created", "path", path)
//	logger.Warn("creation throttled", "elapsed_ms", 312)
//	logger.Error("autosave failed", "error", err.Error())
//
// # Context Propagation
//
// Create child loggers with persistent context attributes:
//
//	dispatchLogger := logger.WithComponent("dispatch")
//	noteLogger := dispatchLogger.WithNote("/docs/2026/02/28/hello.txt")
//
//	// All logs from noteLogger include component and note_path
//	noteLogger.Info("autosave flushed", "bytes", 512)
//
// # Log Rotation
//
// The engine runs for the length of an editing session, so rotation keeps
// the log file bounded:
//
//	config := logging.RotationConfig{
//	    MaxSizeMB:  10,
//	    MaxBackups: 3,
//	    Compress:   true,
//	}
//
//	logger, err := logging.NewLoggerWithRotation("/path/to/logs", "INFO", config)
//
// Rotated files are named engine.log.1, engine.log.2, etc., where .1 is the
// most recent backup. When compression is enabled, rotated files become
// engine.log.1.gz, etc.
//
// # Testing
//
// For testing, use [NopLogger] to discard all log output:
//
//	func TestSomething(t *testing.T) {
//	    logger := logging.NopLogger()
//	    // Use logger in tests without creating files
//	}
//
// # Reading Logs Back
//
// The "logs" command reads the engine log for display:
//
//	entries, err := logging.ReadLogs("/path/to/logs")
//	filtered := logging.FilterLogs(entries, logging.LogFilter{Level: "WARN"})
//	logging.ExportLogEntries(filtered, "errors.json", "json")
package logging
