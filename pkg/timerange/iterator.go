package timerange

import (
	"iter"
	"time"

	"github.com/0xb-s/range-time-go/pkg/log"
)

// Iterator walks a Range from start to end, one step at a time. It is
// single-pass: once exhausted it stays exhausted. Obtain a fresh Iterator
// from Range.Iter to walk the same range again.
//
// An Iterator is not safe for concurrent use.
type Iterator struct {
	r       *Range
	cursor  time.Time
	seq     uint64
	done    bool
	traceID string
}

// Iter returns a new Iterator positioned at the range's start. Creating
// an Iterator is cheap; no instants are computed up front.
//
// When the range carries a logger, each Iter run is tagged with a fresh
// trace ID and emits a start event.
func (r *Range) Iter() *Iterator {
	it := &Iterator{
		r:      r,
		cursor: r.start,
	}
	if r.logger != nil {
		it.traceID = log.NewTraceID()
		r.logger.Log(log.Event{
			Timestamp: time.Now(),
			TraceID:   it.traceID,
			Category:  log.CategoryIteration,
			Iter:      &log.IterEvent{Phase: log.PhaseStarted},
		})
	}
	return it
}

// Next returns the next instant of the range. The second return value is
// false once the range is exhausted; further calls keep returning false
// with a zero time.
//
// Produced instants keep the location of the range's start.
func (it *Iterator) Next() (time.Time, bool) {
	if it.done {
		return time.Time{}, false
	}
	if it.cursor.After(it.r.end) {
		it.exhaust()
		return time.Time{}, false
	}

	t := it.cursor
	if it.r.logger != nil {
		it.r.logger.Log(log.Event{
			Timestamp: time.Now(),
			TraceID:   it.traceID,
			Category:  log.CategoryTick,
			Tick:      &log.TickEvent{Seq: it.seq, Instant: t},
		})
	}
	it.seq++

	next := it.r.st.Advance(t)
	if next.After(t) {
		it.cursor = next
	} else {
		// Advance wrapped past the representable maximum; no further
		// instants exist.
		it.exhaust()
	}
	return t, true
}

// Produced returns how many instants Next has returned so far.
func (it *Iterator) Produced() uint64 {
	return it.seq
}

// exhaust marks the iterator done and emits the exhaustion event once.
func (it *Iterator) exhaust() {
	if it.done {
		return
	}
	it.done = true
	if it.r.logger != nil {
		it.r.logger.Log(log.Event{
			Timestamp: time.Now(),
			TraceID:   it.traceID,
			Category:  log.CategoryIteration,
			Iter:      &log.IterEvent{Phase: log.PhaseExhausted, Produced: it.seq},
		})
	}
}

// All returns the range's instants as a sequence for range-over-func:
//
//	for t := range r.All() {
//		process(t)
//	}
//
// Each call starts a fresh walk from the range's start.
func (r *Range) All() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		it := r.Iter()
		for {
			t, ok := it.Next()
			if !ok {
				return
			}
			if !yield(t) {
				return
			}
		}
	}
}
