// Package interactive provides the interactive command-line interface
// for exploring time ranges.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"

	"github.com/0xb-s/range-time-go/pkg/log"
	"github.com/0xb-s/range-time-go/pkg/persistence"
	"github.com/0xb-s/range-time-go/pkg/schedule"
	"github.com/0xb-s/range-time-go/pkg/step"
	"github.com/0xb-s/range-time-go/pkg/timerange"
	"github.com/0xb-s/range-time-go/pkg/window"
)

// defaultTickLimit caps the instants listed by a bare ticks command.
const defaultTickLimit = 50

// Explorer handles interactive mode for rt-explore.
type Explorer struct {
	rl  *readline.Instance
	out io.Writer

	// Working range definition
	start    time.Time
	end      time.Time
	st       step.Step
	hasStart bool
	hasEnd   bool
	hasStep  bool

	// Built range, nil until build succeeds
	r *timerange.Range

	// Trace capture
	traceFile *log.FileLogger
	tracePath string

	// Saved range definitions
	store     *persistence.RangeSetStore
	set       *persistence.RangeSet
	statePath string
}

// New creates a new interactive explorer. When tracePath is non-empty,
// build and iteration events are captured to that file. When statePath
// is non-empty, ranges can be saved and reloaded by name across sessions.
func New(tracePath, statePath string) (*Explorer, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "rt> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	e := &Explorer{
		rl:  rl,
		out: rl.Stdout(),
	}

	if tracePath != "" {
		if err := e.openTrace(tracePath); err != nil {
			rl.Close()
			return nil, err
		}
	}

	if statePath != "" {
		store := persistence.NewRangeSetStore(statePath)
		set, err := store.Load()
		if err != nil {
			e.closeTrace()
			rl.Close()
			return nil, fmt.Errorf("failed to load saved ranges: %w", err)
		}
		if set == nil {
			set = &persistence.RangeSet{}
		}
		e.store = store
		e.set = set
		e.statePath = statePath
	}

	return e, nil
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (e *Explorer) Stdout() io.Writer {
	return e.rl.Stdout()
}

// Run starts the interactive command loop.
func (e *Explorer) Run(ctx context.Context, cancel context.CancelFunc) {
	defer e.rl.Close()
	defer e.closeTrace()

	e.printHelp()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := e.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(e.out, "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			e.printHelp()

		case "set", "s":
			e.cmdSet(args)

		case "show":
			e.cmdShow()

		case "build", "b":
			e.cmdBuild()

		case "ticks", "t":
			e.cmdTicks(args)

		case "count", "c":
			e.cmdCount()

		case "windows", "win":
			e.cmdWindows(args)

		case "contains":
			e.cmdContains(args)

		case "save":
			e.cmdSave(args)

		case "load", "l":
			e.cmdLoad(args)

		case "ranges":
			e.cmdRanges()

		case "forget":
			e.cmdForget(args)

		case "schedule":
			e.cmdSchedule(args)

		case "trace":
			e.cmdTrace(args)

		case "quit", "exit", "q":
			fmt.Fprintln(e.out, "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(e.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (e *Explorer) printHelp() {
	fmt.Fprintln(e.out, `
Range Explorer Commands:
  Definition:
    set start <rfc3339>  - Set the range start
    set end <rfc3339>    - Set the range end
    set step <spec>      - Set the step (15m, or: 2 minutes)
    show                 - Show the working definition
    build                - Build the range from the definition

  Walking:
    ticks [n]            - List instants (first 50 by default)
    count                - Print the instant count
    windows [width]      - Tile the range into windows
    contains <rfc3339>   - Check whether an instant is in range

  Saved Ranges:
    save <name>          - Save the built range under a name
    load <name>          - Rebuild a saved range
    ranges               - List saved ranges
    forget <name>        - Delete a saved range

  Schedules & Capture:
    schedule <path>      - Load a YAML schedule and summarize its ranges
    trace <path>|off     - Capture events to a CBOR trace file

  General:
    help                 - Show this help
    quit                 - Exit`)
}

// cmdSet handles the set command.
func (e *Explorer) cmdSet(args []string) {
	if len(args) < 2 {
		fmt.Fprintln(e.out, "Usage: set start|end|step <value>")
		fmt.Fprintln(e.out, "  set start 2026-03-14T00:00:00Z")
		fmt.Fprintln(e.out, "  set step 15m        (Go duration)")
		fmt.Fprintln(e.out, "  set step 2 minutes  (count and unit)")
		return
	}

	switch strings.ToLower(args[0]) {
	case "start":
		t, err := time.Parse(time.RFC3339, args[1])
		if err != nil {
			fmt.Fprintf(e.out, "Invalid start: %v\n", err)
			return
		}
		e.start = t
		e.hasStart = true
		e.r = nil
		fmt.Fprintf(e.out, "start = %s\n", t.Format(time.RFC3339))

	case "end":
		t, err := time.Parse(time.RFC3339, args[1])
		if err != nil {
			fmt.Fprintf(e.out, "Invalid end: %v\n", err)
			return
		}
		e.end = t
		e.hasEnd = true
		e.r = nil
		fmt.Fprintf(e.out, "end = %s\n", t.Format(time.RFC3339))

	case "step":
		st, err := parseStepSpec(args[1:])
		if err != nil {
			fmt.Fprintf(e.out, "Invalid step: %v\n", err)
			return
		}
		e.st = st
		e.hasStep = true
		e.r = nil
		fmt.Fprintf(e.out, "step = %s\n", st)

	default:
		fmt.Fprintf(e.out, "Unknown field: %s (want start, end, or step)\n", args[0])
	}
}

// cmdShow handles the show command.
func (e *Explorer) cmdShow() {
	fmt.Fprintln(e.out, "\nRange Definition")
	fmt.Fprintln(e.out, "-------------------------------------------")

	if e.hasStart {
		fmt.Fprintf(e.out, "  Start: %s\n", e.start.Format(time.RFC3339))
	} else {
		fmt.Fprintln(e.out, "  Start: (not set)")
	}
	if e.hasEnd {
		fmt.Fprintf(e.out, "  End:   %s\n", e.end.Format(time.RFC3339))
	} else {
		fmt.Fprintln(e.out, "  End:   (not set)")
	}
	if e.hasStep {
		fmt.Fprintf(e.out, "  Step:  %s\n", e.st)
	} else {
		fmt.Fprintln(e.out, "  Step:  (not set)")
	}

	if e.r != nil {
		fmt.Fprintf(e.out, "  Built: yes, %d instant(s), span %s\n", e.r.Count(), e.r.Span())
	} else {
		fmt.Fprintln(e.out, "  Built: no")
	}

	if e.traceFile != nil {
		fmt.Fprintf(e.out, "  Trace: %s\n", e.tracePath)
	}
	fmt.Fprintln(e.out)
}

// cmdBuild handles the build command.
func (e *Explorer) cmdBuild() {
	b := timerange.New()
	if e.hasStart {
		b.Start(e.start)
	}
	if e.hasEnd {
		b.End(e.end)
	}
	if e.hasStep {
		b.Step(e.st)
	}
	if e.traceFile != nil {
		b.Logger(e.traceFile)
	}

	r, err := b.Build()
	if err != nil {
		fmt.Fprintf(e.out, "Build failed: %v\n", err)
		return
	}

	e.r = r
	fmt.Fprintf(e.out, "Built: %s\n", r)
	fmt.Fprintf(e.out, "Count: %d\n", r.Count())
}

// cmdTicks handles the ticks command.
func (e *Explorer) cmdTicks(args []string) {
	if e.r == nil {
		fmt.Fprintln(e.out, "No range built (use 'build')")
		return
	}

	limit := int64(defaultTickLimit)
	if len(args) > 0 {
		n, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || n <= 0 {
			fmt.Fprintf(e.out, "Invalid limit: %s\n", args[0])
			return
		}
		limit = n
	}

	it := e.r.Iter()
	var shown int64
	for shown < limit {
		t, ok := it.Next()
		if !ok {
			break
		}
		fmt.Fprintf(e.out, "%6d  %s\n", shown, t.Format(time.RFC3339))
		shown++
	}

	if remaining := e.r.Count() - shown; remaining > 0 {
		fmt.Fprintf(e.out, "  ... %d more (ticks %d lists all)\n", remaining, e.r.Count())
	}
}

// cmdCount handles the count command.
func (e *Explorer) cmdCount() {
	if e.r == nil {
		fmt.Fprintln(e.out, "No range built (use 'build')")
		return
	}

	fmt.Fprintf(e.out, "Count: %d (span %s, covered %s)\n",
		e.r.Count(), e.r.Span(), e.r.Covered())
}

// cmdWindows handles the windows command. With no argument the range's own
// step is the window width.
func (e *Explorer) cmdWindows(args []string) {
	if e.r == nil {
		fmt.Fprintln(e.out, "No range built (use 'build')")
		return
	}

	width := e.r.Step()
	if len(args) > 0 {
		st, err := parseStepSpec(args)
		if err != nil {
			fmt.Fprintf(e.out, "Invalid width: %v\n", err)
			return
		}
		width = st
	}

	// Tiling needs a range whose step is the window width.
	tiled, err := timerange.New().
		Start(e.r.Start()).
		End(e.r.End()).
		Step(width).
		Build()
	if err != nil {
		fmt.Fprintf(e.out, "Tile failed: %v\n", err)
		return
	}

	wins := window.Split(tiled)
	fmt.Fprintf(e.out, "Windows: %d (width %s)\n", len(wins), width)
	for i, win := range wins {
		fmt.Fprintf(e.out, "%6d  %s  %s\n", i, win, win.Duration())
	}
}

// cmdContains handles the contains command.
func (e *Explorer) cmdContains(args []string) {
	if e.r == nil {
		fmt.Fprintln(e.out, "No range built (use 'build')")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(e.out, "Usage: contains <rfc3339>")
		return
	}

	t, err := time.Parse(time.RFC3339, args[0])
	if err != nil {
		fmt.Fprintf(e.out, "Invalid instant: %v\n", err)
		return
	}

	if e.r.Contains(t) {
		fmt.Fprintf(e.out, "%s is inside the range\n", t.Format(time.RFC3339))
	} else {
		fmt.Fprintf(e.out, "%s is outside the range\n", t.Format(time.RFC3339))
	}
}

// cmdSave handles the save command.
func (e *Explorer) cmdSave(args []string) {
	if e.store == nil {
		fmt.Fprintln(e.out, "Saved ranges disabled (start with -state)")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(e.out, "Usage: save <name>")
		return
	}
	if e.r == nil {
		fmt.Fprintln(e.out, "No range built (use 'build')")
		return
	}

	e.set.Put(persistence.RangeDef{
		Name:    args[0],
		Start:   e.r.Start(),
		End:     e.r.End(),
		Step:    e.r.Step().Duration(),
		SavedAt: time.Now(),
	})
	if err := e.store.Save(e.set); err != nil {
		fmt.Fprintf(e.out, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(e.out, "Saved %s: %s\n", args[0], e.r)
}

// cmdLoad handles the load command. The loaded definition replaces the
// working fields and is built immediately.
func (e *Explorer) cmdLoad(args []string) {
	if e.store == nil {
		fmt.Fprintln(e.out, "Saved ranges disabled (start with -state)")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(e.out, "Usage: load <name>")
		return
	}

	def, ok := e.set.Get(args[0])
	if !ok {
		fmt.Fprintf(e.out, "No saved range named %q (try 'ranges')\n", args[0])
		return
	}

	st, err := step.Every(def.Step)
	if err != nil {
		fmt.Fprintf(e.out, "Saved step unusable: %v\n", err)
		return
	}

	e.start = def.Start
	e.end = def.End
	e.st = st
	e.hasStart = true
	e.hasEnd = true
	e.hasStep = true
	e.r = nil
	e.cmdBuild()
}

// cmdRanges handles the ranges command.
func (e *Explorer) cmdRanges() {
	if e.store == nil {
		fmt.Fprintln(e.out, "Saved ranges disabled (start with -state)")
		return
	}
	if len(e.set.Ranges) == 0 {
		fmt.Fprintln(e.out, "No saved ranges")
		return
	}

	fmt.Fprintf(e.out, "\nSaved Ranges (%s)\n", e.statePath)
	fmt.Fprintln(e.out, "-------------------------------------------")
	for _, name := range e.set.Names() {
		def, _ := e.set.Get(name)
		fmt.Fprintf(e.out, "  %s: %s to %s every %s\n",
			name,
			def.Start.Format(time.RFC3339),
			def.End.Format(time.RFC3339),
			def.Step)
	}
	fmt.Fprintln(e.out)
}

// cmdForget handles the forget command.
func (e *Explorer) cmdForget(args []string) {
	if e.store == nil {
		fmt.Fprintln(e.out, "Saved ranges disabled (start with -state)")
		return
	}
	if len(args) < 1 {
		fmt.Fprintln(e.out, "Usage: forget <name>")
		return
	}

	if !e.set.Remove(args[0]) {
		fmt.Fprintf(e.out, "No saved range named %q\n", args[0])
		return
	}
	if err := e.store.Save(e.set); err != nil {
		fmt.Fprintf(e.out, "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(e.out, "Forgot %s\n", args[0])
}

// cmdSchedule handles the schedule command.
func (e *Explorer) cmdSchedule(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(e.out, "Usage: schedule <path>")
		return
	}

	def, err := schedule.LoadScheduleDef(args[0])
	if err != nil {
		fmt.Fprintf(e.out, "Load failed: %v\n", err)
		return
	}

	var logger log.Logger = log.NoopLogger{}
	if e.traceFile != nil {
		logger = e.traceFile
	}

	ranges, err := def.Ranges(logger)
	if err != nil {
		fmt.Fprintf(e.out, "Build failed: %v\n", err)
		return
	}

	fmt.Fprintf(e.out, "\nSchedule: %s (%d ranges)\n", def.Name, len(ranges))
	fmt.Fprintln(e.out, "-------------------------------------------")
	for _, nr := range ranges {
		fmt.Fprintf(e.out, "  %s: %s (%d instants)\n", nr.Name, nr.Range, nr.Range.Count())
	}
	fmt.Fprintln(e.out)
}

// cmdTrace handles the trace command.
func (e *Explorer) cmdTrace(args []string) {
	if len(args) < 1 {
		if e.traceFile != nil {
			fmt.Fprintf(e.out, "Tracing to %s\n", e.tracePath)
		} else {
			fmt.Fprintln(e.out, "Tracing off")
		}
		return
	}

	if args[0] == "off" {
		e.closeTrace()
		fmt.Fprintln(e.out, "Tracing off")
		return
	}

	e.closeTrace()
	if err := e.openTrace(args[0]); err != nil {
		fmt.Fprintf(e.out, "Trace failed: %v\n", err)
		return
	}
	fmt.Fprintf(e.out, "Tracing to %s (applies to ranges built from now on)\n", e.tracePath)
}

// openTrace opens a trace file for event capture.
func (e *Explorer) openTrace(path string) error {
	fl, err := log.NewFileLogger(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	e.traceFile = fl
	e.tracePath = path
	return nil
}

// closeTrace closes the active trace file, if any. Ranges built with the
// closed logger keep working; their events are silently dropped.
func (e *Explorer) closeTrace() {
	if e.traceFile == nil {
		return
	}
	_ = e.traceFile.Close()
	e.traceFile = nil
	e.tracePath = ""
}

// parseStepSpec parses a step given as a Go duration ("90s") or as a
// count and unit ("2 minutes").
func parseStepSpec(args []string) (step.Step, error) {
	if len(args) == 0 {
		return step.Step{}, fmt.Errorf("missing step value")
	}

	if len(args) == 1 {
		d, err := time.ParseDuration(args[0])
		if err != nil {
			return step.Step{}, fmt.Errorf("invalid duration %q (or give a count and unit, e.g. 2 minutes)", args[0])
		}
		return step.Every(d)
	}

	count, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return step.Step{}, fmt.Errorf("invalid count %q", args[0])
	}

	unit := strings.ToLower(args[1])
	if !strings.HasSuffix(unit, "s") {
		unit += "s"
	}

	def := schedule.RawStepDef{Count: count, Unit: unit}
	return def.Resolve()
}
