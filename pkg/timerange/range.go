package timerange

import (
	"fmt"
	"time"

	"github.com/0xb-s/range-time-go/pkg/log"
	"github.com/0xb-s/range-time-go/pkg/step"
)

// Range is an immutable closed interval [start, end] walked in fixed
// increments. Construct Ranges with a Builder; the zero value is not
// usable.
//
// A Range carries no iteration state. It is safe for concurrent use, and
// any number of Iterators may walk it independently.
type Range struct {
	start  time.Time
	end    time.Time
	st     step.Step
	logger log.Logger
}

// Start returns the first instant of the range.
func (r *Range) Start() time.Time {
	return r.start
}

// End returns the last instant of the range.
func (r *Range) End() time.Time {
	return r.end
}

// Step returns the increment between produced instants.
func (r *Range) Step() step.Step {
	return r.st
}

// Span returns the distance between start and end.
func (r *Range) Span() time.Duration {
	return r.end.Sub(r.start)
}

// Count returns the number of instants iteration produces: one for the
// start plus one per whole step that fits in the span. End is counted
// exactly when it lands on a step boundary.
func (r *Range) Count() int64 {
	return int64(r.Span()/r.st.Duration()) + 1
}

// Covered returns the distance between the first and last produced
// instants. It equals Span only when end lands on a step boundary.
func (r *Range) Covered() time.Duration {
	return time.Duration(r.Count()-1) * r.st.Duration()
}

// Contains reports whether t falls inside the closed interval. It does
// not require t to land on a step boundary.
func (r *Range) Contains(t time.Time) bool {
	return !t.Before(r.start) && !t.After(r.end)
}

// Equal reports whether two ranges describe the same interval and step.
// Attached loggers are not part of range identity.
func (r *Range) Equal(other *Range) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.start.Equal(other.start) &&
		r.end.Equal(other.end) &&
		r.st.Equal(other.st)
}

// String returns a human-readable description of the range.
func (r *Range) String() string {
	return fmt.Sprintf("%s to %s every %s",
		r.start.Format(time.RFC3339),
		r.end.Format(time.RFC3339),
		r.st)
}
