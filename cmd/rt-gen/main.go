// Command rt-gen lists the instants of a time range.
//
// It builds a range from command-line flags or from a YAML schedule file
// and prints every instant the range produces. With -windows it tiles the
// range into contiguous windows instead of listing single instants. With
// -pace it replays the range in real time, printing each instant as the
// wall clock reaches it. With -trace it records build and iteration
// events to a CBOR trace file for later inspection with rt-log.
//
// Usage:
//
//	rt-gen -start 2026-03-14T00:00:00Z -end 2026-03-14T00:10:00Z -step 2m
//	rt-gen -start 2026-03-14T00:00:00Z -end 2026-03-15T00:00:00Z -windows 6h
//	rt-gen -schedule schedule.yaml -trace run.rtlog
package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	start := flag.String("start", "", "Range start (RFC3339)")
	end := flag.String("end", "", "Range end (RFC3339)")
	step := flag.String("step", "", "Step between instants (Go duration, e.g. 2m)")
	windows := flag.String("windows", "", "Tile the range into windows of this width instead of listing instants")
	schedulePath := flag.String("schedule", "", "YAML schedule file with named ranges")
	tracePath := flag.String("trace", "", "Write CBOR trace events to this file")
	countOnly := flag.Bool("count-only", false, "Print the instant count without listing instants")
	pace := flag.Bool("pace", false, "Replay the range in real time, one line per instant as it arrives")
	flag.Parse()

	haveRange := *start != "" && *end != "" && (*step != "" || *windows != "")
	if *schedulePath == "" && !haveRange {
		fmt.Fprintln(os.Stderr, "Usage: rt-gen -start <rfc3339> -end <rfc3339> -step <duration> [-count-only] [-trace <path>]")
		fmt.Fprintln(os.Stderr, "       rt-gen -start <rfc3339> -end <rfc3339> -windows <duration> [-trace <path>]")
		fmt.Fprintln(os.Stderr, "       rt-gen -schedule <path> [-count-only] [-trace <path>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	opts := genOptions{
		Start:     *start,
		End:       *end,
		Step:      *step,
		Windows:   *windows,
		Schedule:  *schedulePath,
		Trace:     *tracePath,
		CountOnly: *countOnly,
		Pace:      *pace,
	}

	if err := run(opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
