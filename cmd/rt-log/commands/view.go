// Package commands implements the rt-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/0xb-s/range-time-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category *log.Category
	TraceID  string
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [trace:id] CATEGORY Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	trace := shortenTraceID(event.TraceID)

	// Determine event type label
	var typeLabel string
	switch {
	case event.Build != nil:
		typeLabel = "Build"
	case event.Iter != nil:
		typeLabel = event.Iter.Phase.String()
	case event.Tick != nil:
		typeLabel = fmt.Sprintf("Tick #%d", event.Tick.Seq)
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	if trace != "" {
		fmt.Fprintf(w, "%s [trace:%s] %s %s\n", ts, trace, event.Category.String(), typeLabel)
	} else {
		fmt.Fprintf(w, "%s %s %s\n", ts, event.Category.String(), typeLabel)
	}

	// Type-specific details
	switch {
	case event.Build != nil:
		formatBuildDetails(w, event.Build)
	case event.Iter != nil:
		formatIterDetails(w, event.Iter)
	case event.Tick != nil:
		formatTickDetails(w, event.Tick)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenTraceID returns the first 8 characters of the trace ID.
func shortenTraceID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatBuildDetails writes build-specific details.
func formatBuildDetails(w io.Writer, build *log.BuildEvent) {
	fmt.Fprintf(w, "  Range: %s to %s\n",
		build.Start.Format(time.RFC3339),
		build.End.Format(time.RFC3339))
	fmt.Fprintf(w, "  Step: %s\n", build.Step)
	fmt.Fprintf(w, "  Count: %d\n", build.Count)
}

// formatIterDetails writes iteration lifecycle details.
func formatIterDetails(w io.Writer, it *log.IterEvent) {
	if it.Phase == log.PhaseExhausted {
		fmt.Fprintf(w, "  Produced: %d\n", it.Produced)
	}
}

// formatTickDetails writes tick details.
func formatTickDetails(w io.Writer, tick *log.TickEvent) {
	fmt.Fprintf(w, "  Instant: %s\n", tick.Instant.Format(time.RFC3339Nano))
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, errEvent *log.ErrorEvent) {
	fmt.Fprintf(w, "  Message: %s\n", errEvent.Message)
	if errEvent.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", errEvent.Context)
	}
}

// filterEvents returns events matching the filter criteria.
func filterEvents(events []log.Event, filter ViewFilter) []log.Event {
	var result []log.Event
	for _, e := range events {
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		if filter.TraceID != "" && e.TraceID != filter.TraceID {
			continue
		}
		result = append(result, e)
	}
	return result
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "build":
		return log.CategoryBuild, nil
	case "iteration":
		return log.CategoryIteration, nil
	case "tick":
		return log.CategoryTick, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be build, iteration, tick, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Apply filter
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}
		if filter.TraceID != "" && event.TraceID != filter.TraceID {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}
