package window

import (
	"fmt"
	"time"

	"github.com/0xb-s/range-time-go/pkg/timerange"
)

// Window is one contiguous [Start, End) bucket tiled from a range.
type Window struct {
	// Start is the inclusive lower bound.
	Start time.Time

	// End is the exclusive upper bound.
	End time.Time
}

// Duration returns the width of the window.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Contains reports whether t falls inside the half-open window.
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// String returns a human-readable description of the window.
func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)",
		w.Start.Format(time.RFC3339),
		w.End.Format(time.RFC3339))
}

// Count returns the number of windows Split produces for r: one per step,
// rounded up for a final partial window. A zero-span range has no windows.
func Count(r *timerange.Range) int64 {
	span := r.Span()
	if span == 0 {
		return 0
	}
	stepDur := r.Step().Duration()
	n := int64(span / stepDur)
	if span%stepDur != 0 {
		n++
	}
	return n
}

// Split tiles r into contiguous windows, each one step wide except for a
// final partial window clamped to the range's end. Consecutive windows
// share a boundary instant: each window's End is the next one's Start.
func Split(r *timerange.Range) []Window {
	n := Count(r)
	if n == 0 {
		return nil
	}

	out := make([]Window, 0, n)
	st := r.Step()
	end := r.End()

	cur := r.Start()
	for cur.Before(end) {
		next := st.Advance(cur)
		// Advance past end (or past the representable maximum) clamps
		// to the range's end.
		if next.After(end) || !next.After(cur) {
			next = end
		}
		out = append(out, Window{Start: cur, End: next})
		cur = next
	}
	return out
}
