package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes range events to an slog.Logger.
// Useful for development when you want to watch tick generation in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	if event.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", event.TraceID))
	}

	// Add type-specific attributes
	switch {
	case event.Build != nil:
		attrs = append(attrs,
			slog.Time("start", event.Build.Start),
			slog.Time("end", event.Build.End),
			slog.String("step", event.Build.Step),
			slog.Int64("count", event.Build.Count),
		)
	case event.Iter != nil:
		attrs = append(attrs,
			slog.String("phase", event.Iter.Phase.String()),
			slog.Uint64("produced", event.Iter.Produced),
		)
	case event.Tick != nil:
		attrs = append(attrs,
			slog.Uint64("seq", event.Tick.Seq),
			slog.Time("instant", event.Tick.Instant),
		)
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "range-time", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
