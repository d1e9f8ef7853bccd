package timerange

import (
	"errors"
	"fmt"
	"time"

	"github.com/0xb-s/range-time-go/pkg/log"
	"github.com/0xb-s/range-time-go/pkg/step"
)

// Range construction errors.
var (
	// ErrMissingField indicates Build was called before start, end, or
	// step was set. The wrapped message names the field.
	ErrMissingField = errors.New("missing required field")

	// ErrInvalidRange indicates the start instant is after the end instant.
	ErrInvalidRange = errors.New("invalid range: start is after end")
)

// Builder assembles and validates a Range. The zero value is not usable;
// create Builders with New.
//
// Setters return the Builder for chaining. A Builder is reusable: Build
// does not consume it, and ranges built earlier are unaffected by later
// setter calls. Builders are not safe for concurrent use.
type Builder struct {
	start    time.Time
	end      time.Time
	st       step.Step
	hasStart bool
	hasEnd   bool
	hasStep  bool
	logger   log.Logger
}

// New creates an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Start sets the first instant of the range. Any instant is accepted here,
// including the zero time; validation happens in Build.
func (b *Builder) Start(t time.Time) *Builder {
	b.start = t
	b.hasStart = true
	return b
}

// End sets the last instant of the range.
func (b *Builder) End(t time.Time) *Builder {
	b.end = t
	b.hasEnd = true
	return b
}

// Step sets the increment between produced instants.
func (b *Builder) Step(s step.Step) *Builder {
	b.st = s
	b.hasStep = true
	return b
}

// Logger attaches an event logger to the built Range. Pass nil (the
// default) to disable capture entirely.
func (b *Builder) Logger(l log.Logger) *Builder {
	b.logger = l
	return b
}

// Build validates the accumulated fields and returns an immutable Range.
//
// It reports ErrMissingField when a field was never set, step.ErrInvalidStep
// when the step is unusable, and ErrInvalidRange when start is after end.
// Start equal to end is a valid degenerate range of one element.
func (b *Builder) Build() (*Range, error) {
	if err := b.validate(); err != nil {
		b.logError(err)
		return nil, err
	}

	r := &Range{
		start:  b.start,
		end:    b.end,
		st:     b.st,
		logger: b.logger,
	}

	if b.logger != nil {
		b.logger.Log(log.Event{
			Timestamp: time.Now(),
			Category:  log.CategoryBuild,
			Build: &log.BuildEvent{
				Start:     r.start,
				End:       r.end,
				Step:      r.st.String(),
				StepNanos: int64(r.st.Duration()),
				Count:     r.Count(),
			},
		})
	}

	return r, nil
}

// validate checks fields in a fixed order: presence first, then the step,
// then the interval.
func (b *Builder) validate() error {
	if !b.hasStart {
		return fmt.Errorf("%w: start", ErrMissingField)
	}
	if !b.hasEnd {
		return fmt.Errorf("%w: end", ErrMissingField)
	}
	if !b.hasStep {
		return fmt.Errorf("%w: step", ErrMissingField)
	}
	if err := b.st.Validate(); err != nil {
		return err
	}
	if b.start.After(b.end) {
		return ErrInvalidRange
	}
	return nil
}

// logError emits a build failure event when a logger is attached.
func (b *Builder) logError(err error) {
	if b.logger == nil {
		return
	}
	b.logger.Log(log.Event{
		Timestamp: time.Now(),
		Category:  log.CategoryError,
		Error: &log.ErrorEvent{
			Message: err.Error(),
			Context: "Build",
		},
	})
}
