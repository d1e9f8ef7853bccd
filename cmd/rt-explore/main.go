// Command rt-explore is an interactive shell for exploring time ranges.
//
// It keeps a working range definition that you refine with set commands,
// then build and walk:
//
//	rt> set start 2026-03-14T00:00:00Z
//	rt> set end 2026-03-14T01:00:00Z
//	rt> set step 15m
//	rt> build
//	rt> ticks
//
// With -trace, build and iteration events are recorded to a CBOR trace
// file for later inspection with rt-log. Built ranges can be saved under
// a name and reloaded in later sessions; -state names the JSON file that
// holds them.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/0xb-s/range-time-go/cmd/rt-explore/interactive"
)

func main() {
	tracePath := flag.String("trace", "", "Write CBOR trace events to this file")
	statePath := flag.String("state", "rt-ranges.json", "JSON file holding saved range definitions")
	flag.Parse()

	explorer, err := interactive.New(*tracePath, *statePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	explorer.Run(ctx, cancel)
}
