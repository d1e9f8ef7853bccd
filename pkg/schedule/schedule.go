// Package schedule loads named time-range definitions from YAML files.
//
// A schedule file names one or more ranges, each with an RFC3339 start and
// end and a step given either as a count of a fixed unit or as a Go
// duration string:
//
//	name: reporting
//	ranges:
//	  - name: quarter-hourly
//	    start: 2024-01-01T00:00:00Z
//	    end: 2024-01-02T00:00:00Z
//	    step: { count: 15, unit: minutes }
//	  - name: fine
//	    start: 2024-01-01T00:00:00Z
//	    end: 2024-01-01T01:00:00Z
//	    step: { every: 90s }
//
// Parsing is split from building: ParseScheduleDef/LoadScheduleDef decode
// and structurally check the YAML, and Ranges materializes the definitions
// into built timerange.Range values. The core range API stays text-free;
// all parsing of timestamps and units lives here.
package schedule

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/0xb-s/range-time-go/pkg/log"
	"github.com/0xb-s/range-time-go/pkg/step"
	"github.com/0xb-s/range-time-go/pkg/timerange"
)

// RawScheduleDef represents a schedule definition loaded from YAML.
type RawScheduleDef struct {
	Name      string        `yaml:"name"`
	RangeDefs []RawRangeDef `yaml:"ranges"`
}

// RawRangeDef represents a single named range definition.
type RawRangeDef struct {
	Name  string     `yaml:"name"`
	Start string     `yaml:"start"` // RFC3339
	End   string     `yaml:"end"`   // RFC3339
	Step  RawStepDef `yaml:"step"`
}

// RawStepDef represents a step definition, either count+unit or a Go
// duration string. Exactly one form must be used.
type RawStepDef struct {
	Count int64  `yaml:"count"`
	Unit  string `yaml:"unit"`  // "seconds", "minutes", "hours", "days"
	Every string `yaml:"every"` // e.g. "90s", "1h30m"
}

// NamedRange pairs a built range with its definition name.
type NamedRange struct {
	Name  string
	Range *timerange.Range
}

// ParseScheduleDef parses a schedule definition from YAML bytes.
func ParseScheduleDef(data []byte) (*RawScheduleDef, error) {
	var def RawScheduleDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("parsing schedule def: %w", err)
	}
	if def.Name == "" {
		return nil, fmt.Errorf("schedule definition missing name")
	}
	if len(def.RangeDefs) == 0 {
		return nil, fmt.Errorf("schedule %q defines no ranges", def.Name)
	}
	for i, rd := range def.RangeDefs {
		if rd.Name == "" {
			return nil, fmt.Errorf("schedule %q: range %d missing name", def.Name, i)
		}
	}
	return &def, nil
}

// LoadScheduleDef loads and parses a schedule definition from a file.
func LoadScheduleDef(path string) (*RawScheduleDef, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return ParseScheduleDef(data)
}

// Ranges materializes every definition into a built range. The logger is
// attached to each built range; pass nil to disable event capture.
//
// Validation failures from the range builder (missing fields, start after
// end, bad steps) come back wrapped with the offending range's name, so
// errors.Is still matches the underlying sentinel.
func (d *RawScheduleDef) Ranges(logger log.Logger) ([]NamedRange, error) {
	out := make([]NamedRange, 0, len(d.RangeDefs))
	for _, rd := range d.RangeDefs {
		r, err := rd.Build(logger)
		if err != nil {
			return nil, fmt.Errorf("schedule %q: %w", d.Name, err)
		}
		out = append(out, NamedRange{Name: rd.Name, Range: r})
	}
	return out, nil
}

// Build materializes one definition into a built range.
func (rd RawRangeDef) Build(logger log.Logger) (*timerange.Range, error) {
	start, err := time.Parse(time.RFC3339, rd.Start)
	if err != nil {
		return nil, fmt.Errorf("range %q: parsing start: %w", rd.Name, err)
	}
	end, err := time.Parse(time.RFC3339, rd.End)
	if err != nil {
		return nil, fmt.Errorf("range %q: parsing end: %w", rd.Name, err)
	}
	st, err := rd.Step.Resolve()
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", rd.Name, err)
	}

	r, err := timerange.New().
		Start(start).
		End(end).
		Step(st).
		Logger(logger).
		Build()
	if err != nil {
		return nil, fmt.Errorf("range %q: %w", rd.Name, err)
	}
	return r, nil
}

// Resolve converts the raw step definition into a step value.
func (sd RawStepDef) Resolve() (step.Step, error) {
	hasUnit := sd.Count != 0 || sd.Unit != ""
	hasEvery := sd.Every != ""

	switch {
	case hasUnit && hasEvery:
		return step.Step{}, fmt.Errorf("step: count/unit and every are mutually exclusive")
	case hasEvery:
		d, err := time.ParseDuration(sd.Every)
		if err != nil {
			return step.Step{}, fmt.Errorf("step: parsing every: %w", err)
		}
		return step.Every(d)
	case hasUnit:
		switch sd.Unit {
		case "seconds":
			return step.Seconds(sd.Count)
		case "minutes":
			return step.Minutes(sd.Count)
		case "hours":
			return step.Hours(sd.Count)
		case "days":
			return step.Days(sd.Count)
		default:
			return step.Step{}, fmt.Errorf("step: unknown unit %q (want seconds, minutes, hours, or days)", sd.Unit)
		}
	default:
		return step.Step{}, fmt.Errorf("step: missing definition")
	}
}
