// Package log provides structured event capture for range-time.
//
// This package defines the Logger interface and Event types for recording
// range lifecycle events: range construction, iteration runs, and the ticks
// an iteration produces. It is separate from operational logging (slog) -
// event capture provides a complete machine-readable trace for debugging
// and offline analysis of tick generation.
//
// # Basic Usage
//
// Applications enable capture by attaching a Logger to a builder:
//
//	// For development: log to console via slog
//	b.Logger(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to binary file
//	fl, _ := log.NewFileLogger("/var/log/range-time/ticks.rtlog")
//	b.Logger(fl)
//
//	// Both: use MultiLogger
//	b.Logger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fl,
//	))
//
// # Event Types
//
// Events are captured per category:
//   - Build: a range was validated and constructed (BuildEvent)
//   - Iteration: an iteration run started or exhausted (IterEvent)
//   - Tick: one instant was produced (TickEvent)
//   - Error: a validation failure (ErrorEvent)
//
// Every iteration run carries a UUID trace ID so the ticks of concurrent
// runs can be told apart.
//
// # File Format
//
// Log files use CBOR encoding with the .rtlog extension. The rt-log CLI tool
// provides viewing, filtering, and export capabilities.
package log
