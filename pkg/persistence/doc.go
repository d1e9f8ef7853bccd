// Package persistence provides on-disk storage for saved range definitions.
//
// rt-explore lets a session save the ranges it builds under a name; this
// package handles the JSON serialization of those definitions so they
// survive across sessions. Event capture is handled separately by the log
// package's FileLogger.
package persistence
