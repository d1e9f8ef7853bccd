package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/0xb-s/range-time-go/pkg/log"
)

// RunExport exports the trace file to the specified format.
func RunExport(path, format, output string) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}
	defer reader.Close()

	// Determine output writer
	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "jsonl":
		return exportJSONL(reader, w)
	case "csv":
		return exportCSV(reader, w)
	default:
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	// Write header
	header := []string{"timestamp", "trace_id", "category", "type", "seq", "instant", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Determine event type and detail columns
		eventType := "unknown"
		seq := ""
		instant := ""
		detail := ""
		switch {
		case event.Build != nil:
			eventType = "build"
			detail = fmt.Sprintf("%s to %s step %s count %d",
				event.Build.Start.UTC().Format("2006-01-02T15:04:05Z"),
				event.Build.End.UTC().Format("2006-01-02T15:04:05Z"),
				event.Build.Step,
				event.Build.Count)
		case event.Iter != nil:
			eventType = event.Iter.Phase.String()
			if event.Iter.Phase == log.PhaseExhausted {
				detail = fmt.Sprintf("produced %d", event.Iter.Produced)
			}
		case event.Tick != nil:
			eventType = "tick"
			seq = fmt.Sprintf("%d", event.Tick.Seq)
			instant = event.Tick.Instant.UTC().Format("2006-01-02T15:04:05.000000Z")
		case event.Error != nil:
			eventType = "error"
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.TraceID,
			event.Category.String(),
			eventType,
			seq,
			instant,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
