package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/0xb-s/range-time-go/pkg/log"
)

// Stats holds aggregate statistics about a trace file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Traces           map[string]*TraceStats
	Builds           int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}
}

// TraceStats holds statistics for a single iteration run.
type TraceStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Ticks     int
	Produced  uint64
	Exhausted bool
}

// RunStats analyzes the trace file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Traces:           make(map[string]*TraceStats),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track per-run stats for events that carry a trace ID
		if event.TraceID != "" {
			trace, ok := stats.Traces[event.TraceID]
			if !ok {
				trace = &TraceStats{
					FirstSeen: event.Timestamp,
					LastSeen:  event.Timestamp,
				}
				stats.Traces[event.TraceID] = trace
			}
			trace.Events++
			if event.Timestamp.After(trace.LastSeen) {
				trace.LastSeen = event.Timestamp
			}
			if event.Tick != nil {
				trace.Ticks++
			}
			if event.Iter != nil && event.Iter.Phase == log.PhaseExhausted {
				trace.Exhausted = true
				trace.Produced = event.Iter.Produced
			}
		}

		if event.Build != nil {
			stats.Builds++
		}
		if event.Error != nil {
			stats.Errors++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Range-Time Trace Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryBuild, log.CategoryIteration, log.CategoryTick, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Builds
	fmt.Fprintf(w, "Ranges Built: %d\n", stats.Builds)

	// Iteration runs
	fmt.Fprintf(w, "Iteration Runs: %d\n", len(stats.Traces))
	if len(stats.Traces) > 0 {
		// Sort by first seen time
		type traceInfo struct {
			id    string
			stats *TraceStats
		}
		traces := make([]traceInfo, 0, len(stats.Traces))
		for id, ts := range stats.Traces {
			traces = append(traces, traceInfo{id, ts})
		}
		sort.Slice(traces, func(i, j int) bool {
			return traces[i].stats.FirstSeen.Before(traces[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, tr := range traces {
			duration := tr.stats.LastSeen.Sub(tr.stats.FirstSeen).Round(time.Millisecond)
			shortID := tr.id
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			status := "incomplete"
			if tr.stats.Exhausted {
				status = fmt.Sprintf("exhausted after %d", tr.stats.Produced)
			}
			fmt.Fprintf(w, "  [%s] %d ticks, %s, duration %s\n", shortID, tr.stats.Ticks, status, duration)
		}
	}

	// Errors
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
