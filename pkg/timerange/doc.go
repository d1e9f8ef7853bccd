// Package timerange builds and iterates fixed-step time ranges.
//
// A Range is an immutable descriptor of a closed interval [start, end]
// walked in fixed increments. Ranges are constructed through a Builder
// that validates its inputs before anything is produced:
//
//	st, err := step.Minutes(2)
//	if err != nil { ... }
//	r, err := timerange.New().
//		Start(start).
//		End(end).
//		Step(st).
//		Build()
//	if err != nil { ... }
//	for it := r.Iter(); ; {
//		t, ok := it.Next()
//		if !ok {
//			break
//		}
//		process(t)
//	}
//
// # Inclusive End
//
// Iteration starts at start and includes end when end lands exactly on a
// step boundary. A range whose start equals its end yields exactly one
// element. The number of elements is always Count() = span/step + 1,
// truncated.
//
// # Validation
//
// Build reports ErrMissingField when start, end, or step was never set,
// ErrInvalidRange when start is after end, and step.ErrInvalidStep when
// the step is unusable. All validation failures are ordinary error
// returns; nothing panics.
//
// # Iteration
//
// An Iterator is single-pass and not safe for concurrent use. Creating
// one is cheap: call Iter again to walk the same range from the start.
// All returns the same walk as an iter.Seq for use with range-over-func.
//
// # Event Capture
//
// A Builder may be given a log.Logger. The built Range then emits a
// build event, and every Iter run emits lifecycle and tick events tagged
// with a fresh trace ID. Without a logger the hot path stays free of any
// capture work.
package timerange
