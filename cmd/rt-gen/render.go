package main

import (
	"fmt"
	"io"
	"time"

	"github.com/0xb-s/range-time-go/pkg/log"
	"github.com/0xb-s/range-time-go/pkg/pacer"
	"github.com/0xb-s/range-time-go/pkg/schedule"
	"github.com/0xb-s/range-time-go/pkg/step"
	"github.com/0xb-s/range-time-go/pkg/timerange"
	"github.com/0xb-s/range-time-go/pkg/window"
)

// genOptions holds the parsed command-line options.
type genOptions struct {
	Start     string
	End       string
	Step      string
	Windows   string
	Schedule  string
	Trace     string
	CountOnly bool
	Pace      bool
}

func run(opts genOptions, w io.Writer) error {
	if opts.Pace && (opts.Schedule != "" || opts.Windows != "") {
		return fmt.Errorf("-pace applies only to a single -start/-end/-step range")
	}

	var logger log.Logger = log.NoopLogger{}
	if opts.Trace != "" {
		fl, err := log.NewFileLogger(opts.Trace)
		if err != nil {
			return fmt.Errorf("creating trace file: %w", err)
		}
		defer fl.Close()
		logger = fl
	}

	if opts.Schedule != "" {
		return renderSchedule(w, opts.Schedule, logger, opts.CountOnly)
	}

	// Window mode uses the window width as the range's step.
	stepSpec := opts.Step
	if opts.Windows != "" {
		stepSpec = opts.Windows
	}

	r, err := buildRange(opts.Start, opts.End, stepSpec, logger)
	if err != nil {
		return err
	}

	if opts.Windows != "" {
		renderWindows(w, r)
		return nil
	}

	if opts.Pace {
		return renderPaced(w, r)
	}

	renderTicks(w, r, opts.CountOnly)
	return nil
}

// buildRange assembles a range from RFC3339 bounds and a duration step.
func buildRange(startStr, endStr, stepStr string, logger log.Logger) (*timerange.Range, error) {
	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid -start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return nil, fmt.Errorf("invalid -end: %w", err)
	}
	d, err := time.ParseDuration(stepStr)
	if err != nil {
		return nil, fmt.Errorf("invalid step %q: %w", stepStr, err)
	}
	st, err := step.Every(d)
	if err != nil {
		return nil, err
	}

	return timerange.New().
		Start(start).
		End(end).
		Step(st).
		Logger(logger).
		Build()
}

// renderTicks prints the range header and every instant it produces.
func renderTicks(w io.Writer, r *timerange.Range, countOnly bool) {
	fmt.Fprintf(w, "Range: %s\n", r)
	fmt.Fprintf(w, "Count: %d\n", r.Count())
	if countOnly {
		return
	}

	fmt.Fprintln(w)
	seq := 0
	for t := range r.All() {
		fmt.Fprintf(w, "%6d  %s\n", seq, t.Format(time.RFC3339))
		seq++
	}
}

// renderWindows prints the range tiled into contiguous windows.
func renderWindows(w io.Writer, r *timerange.Range) {
	windows := window.Split(r)
	fmt.Fprintf(w, "Range: %s to %s\n",
		r.Start().Format(time.RFC3339),
		r.End().Format(time.RFC3339))
	fmt.Fprintf(w, "Windows: %d (width %s)\n", len(windows), r.Step())
	fmt.Fprintln(w)
	for i, win := range windows {
		fmt.Fprintf(w, "%6d  %s  %s\n", i, win, win.Duration())
	}
}

// renderPaced prints the range header, then each instant as the wall
// clock reaches it. Instants already past are skipped, not replayed.
func renderPaced(w io.Writer, r *timerange.Range) error {
	fmt.Fprintf(w, "Range: %s\n", r)
	fmt.Fprintf(w, "Count: %d\n\n", r.Count())

	done := make(chan uint64, 1)
	p := pacer.New(r)
	p.OnDone(func(fired uint64) {
		done <- fired
	})

	err := p.Start(func(seq uint64, instant time.Time) {
		fmt.Fprintf(w, "%6d  %s\n", seq, instant.Format(time.RFC3339Nano))
	})
	if err != nil {
		return err
	}

	fired := <-done
	if skipped := p.Skipped(); skipped > 0 {
		fmt.Fprintf(w, "\nFired %d instant(s), skipped %d already past\n", fired, skipped)
	} else {
		fmt.Fprintf(w, "\nFired %d instant(s)\n", fired)
	}
	return nil
}

// renderSchedule loads a schedule file and prints each named range.
func renderSchedule(w io.Writer, path string, logger log.Logger, countOnly bool) error {
	def, err := schedule.LoadScheduleDef(path)
	if err != nil {
		return err
	}
	ranges, err := def.Ranges(logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Schedule: %s (%d ranges)\n", def.Name, len(ranges))
	for _, nr := range ranges {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "== %s ==\n", nr.Name)
		renderTicks(w, nr.Range, countOnly)
	}
	return nil
}
