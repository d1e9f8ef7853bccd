package log

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a range lifecycle event.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// TraceID uniquely identifies one iteration run (UUID).
	// Empty for build events, which happen before any run exists.
	TraceID string `cbor:"2,keyasint,omitempty"`

	// Category classifies the event type.
	Category Category `cbor:"3,keyasint"`

	// Type-specific payload (one of these will be set).
	Build *BuildEvent `cbor:"4,keyasint,omitempty"` // Range constructed
	Iter  *IterEvent  `cbor:"5,keyasint,omitempty"` // Run started/exhausted
	Tick  *TickEvent  `cbor:"6,keyasint,omitempty"` // Instant produced
	Error *ErrorEvent `cbor:"7,keyasint,omitempty"` // Validation failure
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryBuild indicates a range was validated and constructed.
	CategoryBuild Category = 0
	// CategoryIteration indicates an iteration run started or exhausted.
	CategoryIteration Category = 1
	// CategoryTick indicates one instant was produced.
	CategoryTick Category = 2
	// CategoryError indicates a validation failure.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryBuild:
		return "BUILD"
	case CategoryIteration:
		return "ITERATION"
	case CategoryTick:
		return "TICK"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// BuildEvent captures a successfully constructed range.
type BuildEvent struct {
	// Start is the first instant of the range.
	Start time.Time `cbor:"1,keyasint"`

	// End is the last admissible instant of the range (inclusive bound).
	End time.Time `cbor:"2,keyasint"`

	// Step is the human-readable step description, e.g. "2 minute(s)".
	Step string `cbor:"3,keyasint"`

	// StepNanos is the step duration in nanoseconds.
	StepNanos int64 `cbor:"4,keyasint"`

	// Count is the number of instants the range will produce.
	Count int64 `cbor:"5,keyasint"`
}

// IterEvent captures the start or exhaustion of an iteration run.
type IterEvent struct {
	// Phase distinguishes run start from exhaustion.
	Phase IterPhase `cbor:"1,keyasint"`

	// Produced is the number of instants emitted so far.
	// Zero at start; the final count at exhaustion.
	Produced uint64 `cbor:"2,keyasint,omitempty"`
}

// IterPhase distinguishes iteration run phases.
type IterPhase uint8

const (
	// PhaseStarted indicates a fresh cursor was created.
	PhaseStarted IterPhase = 0
	// PhaseExhausted indicates the cursor moved past the end.
	PhaseExhausted IterPhase = 1
)

// String returns the phase name.
func (p IterPhase) String() string {
	switch p {
	case PhaseStarted:
		return "STARTED"
	case PhaseExhausted:
		return "EXHAUSTED"
	default:
		return "UNKNOWN"
	}
}

// TickEvent captures one produced instant.
type TickEvent struct {
	// Seq is the zero-based position of the instant within its run.
	Seq uint64 `cbor:"1,keyasint"`

	// Instant is the produced timestamp.
	Instant time.Time `cbor:"2,keyasint"`
}

// ErrorEvent captures a validation failure.
type ErrorEvent struct {
	// Message is the error message.
	Message string `cbor:"1,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"2,keyasint,omitempty"`
}

// NewTraceID returns a fresh UUID string identifying one iteration run.
func NewTraceID() string {
	return uuid.NewString()
}
