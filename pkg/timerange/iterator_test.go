package timerange_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/0xb-s/range-time-go/pkg/log"
	"github.com/0xb-s/range-time-go/pkg/log/mocks"
	"github.com/0xb-s/range-time-go/pkg/step"
	"github.com/0xb-s/range-time-go/pkg/timerange"
)

// mustRange builds a range or fails the test.
func mustRange(t *testing.T, start, end time.Time, st step.Step) *timerange.Range {
	t.Helper()
	r, err := timerange.New().Start(start).End(end).Step(st).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return r
}

// collect drains an iterator into a slice.
func collect(r *timerange.Range) []time.Time {
	var out []time.Time
	it := r.Iter()
	for {
		tick, ok := it.Next()
		if !ok {
			return out
		}
		out = append(out, tick)
	}
}

func TestIteratorIncludesEndOnBoundary(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC)
	r := mustRange(t, start, end, mustStep(step.Minutes(2)))

	got := collect(r)

	want := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 2, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 4, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 6, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 8, 0, 0, time.UTC),
		time.Date(2024, 1, 1, 0, 10, 0, 0, time.UTC),
	}

	if len(got) != len(want) {
		t.Fatalf("got %d instants, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("instant %d: got %v, want %v", i, got[i], want[i])
		}
	}
	if !got[len(got)-1].Equal(end) {
		t.Errorf("last instant = %v, want end %v", got[len(got)-1], end)
	}
}

func TestIteratorStopsBeforeEndOffBoundary(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 9, 0, 0, time.UTC)
	r := mustRange(t, start, end, mustStep(step.Minutes(2)))

	got := collect(r)

	if len(got) != 5 {
		t.Fatalf("got %d instants, want 5", len(got))
	}
	last := time.Date(2024, 1, 1, 0, 8, 0, 0, time.UTC)
	if !got[4].Equal(last) {
		t.Errorf("last instant = %v, want %v", got[4], last)
	}
	for _, tick := range got {
		if tick.After(end) {
			t.Errorf("instant %v is past end %v", tick, end)
		}
	}
}

func TestIteratorDegenerateRange(t *testing.T) {
	at := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		st   step.Step
	}{
		{"seconds", mustStep(step.Seconds(30))},
		{"minutes", mustStep(step.Minutes(5))},
		{"hours", mustStep(step.Hours(1))},
		{"days", mustStep(step.Days(2))},
		{"custom", mustStep(step.Every(1500*time.Millisecond))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRange(t, at, at, tt.st)

			got := collect(r)

			if len(got) != 1 {
				t.Fatalf("got %d instants, want 1", len(got))
			}
			if !got[0].Equal(at) {
				t.Errorf("instant = %v, want %v", got[0], at)
			}
		})
	}
}

func TestIteratorExhaustionIsStable(t *testing.T) {
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, at, at.Add(time.Minute), mustStep(step.Minutes(1)))

	it := r.Iter()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
	}

	// Every call after exhaustion keeps reporting done
	for i := 0; i < 3; i++ {
		tick, ok := it.Next()
		if ok {
			t.Fatalf("Next() after exhaustion returned ok on call %d", i)
		}
		if !tick.IsZero() {
			t.Errorf("Next() after exhaustion returned %v, want zero time", tick)
		}
	}
}

func TestIteratorSinglePassButRecreatable(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, start, start.Add(30*time.Minute), mustStep(step.Minutes(10)))

	first := collect(r)
	second := collect(r)

	if len(first) != len(second) {
		t.Fatalf("walks differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Equal(second[i]) {
			t.Errorf("instant %d: first walk %v, second walk %v", i, first[i], second[i])
		}
	}
}

func TestIteratorProducedMatchesCount(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		st   step.Step
		want int64
	}{
		{
			name: "end on boundary",
			end:  base.Add(10 * time.Minute),
			st:   mustStep(step.Minutes(2)),
			want: 6,
		},
		{
			name: "end off boundary",
			end:  base.Add(9 * time.Minute),
			st:   mustStep(step.Minutes(2)),
			want: 5,
		},
		{
			name: "degenerate",
			end:  base,
			st:   mustStep(step.Seconds(30)),
			want: 1,
		},
		{
			name: "single step",
			end:  base.Add(time.Hour),
			st:   mustStep(step.Hours(1)),
			want: 2,
		},
		{
			name: "step larger than span",
			end:  base.Add(time.Minute),
			st:   mustStep(step.Days(1)),
			want: 1,
		},
		{
			name: "sub-second step",
			end:  base.Add(time.Second),
			st:   mustStep(step.Every(250*time.Millisecond)),
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRange(t, base, tt.end, tt.st)

			if got := r.Count(); got != tt.want {
				t.Errorf("Count() = %d, want %d", got, tt.want)
			}

			got := collect(r)
			if int64(len(got)) != tt.want {
				t.Errorf("produced %d instants, want %d", len(got), tt.want)
			}
		})
	}
}

func TestIteratorStrictlyIncreasing(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	st := mustStep(step.Minutes(7))
	r := mustRange(t, start, start.Add(3*time.Hour), st)

	got := collect(r)
	if len(got) < 2 {
		t.Fatalf("got %d instants, want at least 2", len(got))
	}

	for i := 1; i < len(got); i++ {
		diff := got[i].Sub(got[i-1])
		if diff != st.Duration() {
			t.Errorf("gap between instants %d and %d = %v, want %v", i-1, i, diff, st.Duration())
		}
		if !got[i].After(got[i-1]) {
			t.Errorf("instant %d (%v) is not after instant %d (%v)", i, got[i], i-1, got[i-1])
		}
	}
}

func TestIteratorPreservesLocation(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, zone)
	r := mustRange(t, start, start.Add(20*time.Minute), mustStep(step.Minutes(10)))

	for _, tick := range collect(r) {
		if tick.Location() != zone {
			t.Errorf("instant %v has location %v, want %v", tick, tick.Location(), zone)
		}
	}
}

func TestIteratorProduced(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, start, start.Add(4*time.Minute), mustStep(step.Minutes(2)))

	it := r.Iter()
	if got := it.Produced(); got != 0 {
		t.Errorf("Produced() before first Next = %d, want 0", got)
	}

	it.Next()
	it.Next()
	if got := it.Produced(); got != 2 {
		t.Errorf("Produced() after two Next = %d, want 2", got)
	}

	for _, ok := it.Next(); ok; _, ok = it.Next() {
	}
	if got := it.Produced(); got != 3 {
		t.Errorf("Produced() after exhaustion = %d, want 3", got)
	}
}

func TestAllWalksWholeRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, start, start.Add(10*time.Minute), mustStep(step.Minutes(2)))

	var got []time.Time
	for tick := range r.All() {
		got = append(got, tick)
	}

	want := collect(r)
	if len(got) != len(want) {
		t.Fatalf("All yielded %d instants, want %d", len(got), len(want))
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Errorf("instant %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAllStopsOnBreak(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	r := mustRange(t, start, start.Add(time.Hour), mustStep(step.Minutes(1)))

	var n int
	for range r.All() {
		n++
		if n == 3 {
			break
		}
	}

	if n != 3 {
		t.Errorf("walked %d instants before break, want 3", n)
	}
}

func TestIteratorEmitsTraceEvents(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(4 * time.Minute)
	st := mustStep(step.Minutes(2))

	logger := mocks.NewMockLogger(t)
	var captured []log.Event
	logger.EXPECT().Log(mock.Anything).Run(func(event log.Event) {
		captured = append(captured, event)
	})

	r, err := timerange.New().
		Start(start).
		End(end).
		Step(st).
		Logger(logger).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	captured = captured[:0] // drop the build event

	it := r.Iter()
	for _, ok := it.Next(); ok; _, ok = it.Next() {
	}

	// started + 3 ticks + exhausted
	if len(captured) != 5 {
		t.Fatalf("got %d events, want 5", len(captured))
	}

	first := captured[0]
	if first.Category != log.CategoryIteration || first.Iter == nil || first.Iter.Phase != log.PhaseStarted {
		t.Errorf("first event = %+v, want iteration STARTED", first)
	}
	if first.TraceID == "" {
		t.Error("started event has no trace ID")
	}

	for i, want := range []time.Time{start, start.Add(2 * time.Minute), end} {
		event := captured[1+i]
		if event.Category != log.CategoryTick || event.Tick == nil {
			t.Fatalf("event %d = %+v, want tick", 1+i, event)
		}
		if event.Tick.Seq != uint64(i) {
			t.Errorf("tick %d Seq = %d, want %d", i, event.Tick.Seq, i)
		}
		if !event.Tick.Instant.Equal(want) {
			t.Errorf("tick %d Instant = %v, want %v", i, event.Tick.Instant, want)
		}
		if event.TraceID != first.TraceID {
			t.Errorf("tick %d TraceID = %q, want %q", i, event.TraceID, first.TraceID)
		}
	}

	last := captured[4]
	if last.Category != log.CategoryIteration || last.Iter == nil || last.Iter.Phase != log.PhaseExhausted {
		t.Errorf("last event = %+v, want iteration EXHAUSTED", last)
	}
	if last.Iter != nil && last.Iter.Produced != 3 {
		t.Errorf("exhausted Produced = %d, want 3", last.Iter.Produced)
	}
	if last.TraceID != first.TraceID {
		t.Errorf("exhausted TraceID = %q, want %q", last.TraceID, first.TraceID)
	}
}

func TestIteratorRunsGetDistinctTraceIDs(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	logger := mocks.NewMockLogger(t)
	var captured []log.Event
	logger.EXPECT().Log(mock.Anything).Run(func(event log.Event) {
		captured = append(captured, event)
	})

	r, err := timerange.New().
		Start(start).
		End(start).
		Step(mustStep(step.Minutes(1))).
		Logger(logger).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	captured = captured[:0]

	r.Iter()
	r.Iter()

	if len(captured) != 2 {
		t.Fatalf("got %d events, want 2", len(captured))
	}
	if captured[0].TraceID == captured[1].TraceID {
		t.Errorf("both runs share trace ID %q, want distinct IDs", captured[0].TraceID)
	}
}
