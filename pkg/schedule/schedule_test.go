package schedule

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/0xb-s/range-time-go/pkg/step"
	"github.com/0xb-s/range-time-go/pkg/timerange"
)

func TestParseScheduleDef_Minimal(t *testing.T) {
	yaml := `
name: reporting
ranges:
  - name: quarter-hourly
    start: 2024-01-01T00:00:00Z
    end: 2024-01-02T00:00:00Z
    step: { count: 15, unit: minutes }
  - name: fine
    start: 2024-01-01T00:00:00Z
    end: 2024-01-01T01:00:00Z
    step: { every: 90s }
`

	def, err := ParseScheduleDef([]byte(yaml))
	if err != nil {
		t.Fatalf("ParseScheduleDef failed: %v", err)
	}

	if def.Name != "reporting" {
		t.Errorf("Name = %q, want %q", def.Name, "reporting")
	}
	if len(def.RangeDefs) != 2 {
		t.Fatalf("got %d ranges, want 2", len(def.RangeDefs))
	}

	first := def.RangeDefs[0]
	if first.Name != "quarter-hourly" {
		t.Errorf("ranges[0].Name = %q, want %q", first.Name, "quarter-hourly")
	}
	if first.Start != "2024-01-01T00:00:00Z" {
		t.Errorf("ranges[0].Start = %q, want %q", first.Start, "2024-01-01T00:00:00Z")
	}
	if first.Step.Count != 15 || first.Step.Unit != "minutes" {
		t.Errorf("ranges[0].Step = %+v, want count=15 unit=minutes", first.Step)
	}

	second := def.RangeDefs[1]
	if second.Step.Every != "90s" {
		t.Errorf("ranges[1].Step.Every = %q, want %q", second.Step.Every, "90s")
	}
}

func TestParseScheduleDef_MissingName(t *testing.T) {
	yaml := `
ranges:
  - name: r1
    start: 2024-01-01T00:00:00Z
    end: 2024-01-02T00:00:00Z
    step: { count: 1, unit: hours }
`

	_, err := ParseScheduleDef([]byte(yaml))
	if err == nil {
		t.Fatal("ParseScheduleDef succeeded, want error for missing name")
	}
	if !strings.Contains(err.Error(), "missing name") {
		t.Errorf("error = %q, want it to mention missing name", err)
	}
}

func TestParseScheduleDef_NoRanges(t *testing.T) {
	yaml := `name: empty`

	_, err := ParseScheduleDef([]byte(yaml))
	if err == nil {
		t.Fatal("ParseScheduleDef succeeded, want error for empty schedule")
	}
	if !strings.Contains(err.Error(), "no ranges") {
		t.Errorf("error = %q, want it to mention no ranges", err)
	}
}

func TestParseScheduleDef_RangeMissingName(t *testing.T) {
	yaml := `
name: reporting
ranges:
  - start: 2024-01-01T00:00:00Z
    end: 2024-01-02T00:00:00Z
    step: { count: 1, unit: hours }
`

	_, err := ParseScheduleDef([]byte(yaml))
	if err == nil {
		t.Fatal("ParseScheduleDef succeeded, want error for unnamed range")
	}
	if !strings.Contains(err.Error(), "range 0 missing name") {
		t.Errorf("error = %q, want it to name range 0", err)
	}
}

func TestParseScheduleDef_InvalidYAML(t *testing.T) {
	_, err := ParseScheduleDef([]byte("{not yaml"))
	if err == nil {
		t.Fatal("ParseScheduleDef succeeded, want YAML error")
	}
	if !strings.Contains(err.Error(), "parsing schedule def") {
		t.Errorf("error = %q, want parse context", err)
	}
}

func TestLoadScheduleDef(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sched.yaml")
	content := `
name: nightly
ranges:
  - name: hourly
    start: 2024-05-01T00:00:00Z
    end: 2024-05-01T06:00:00Z
    step: { count: 1, unit: hours }
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	def, err := LoadScheduleDef(path)
	if err != nil {
		t.Fatalf("LoadScheduleDef failed: %v", err)
	}
	if def.Name != "nightly" {
		t.Errorf("Name = %q, want %q", def.Name, "nightly")
	}
}

func TestLoadScheduleDef_MissingFile(t *testing.T) {
	_, err := LoadScheduleDef(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("LoadScheduleDef succeeded, want error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want os.ErrNotExist in chain", err)
	}
}

func TestRawStepDefResolve(t *testing.T) {
	tests := []struct {
		name    string
		def     RawStepDef
		want    time.Duration
		wantErr string
	}{
		{
			name: "seconds",
			def:  RawStepDef{Count: 30, Unit: "seconds"},
			want: 30 * time.Second,
		},
		{
			name: "minutes",
			def:  RawStepDef{Count: 15, Unit: "minutes"},
			want: 15 * time.Minute,
		},
		{
			name: "hours",
			def:  RawStepDef{Count: 6, Unit: "hours"},
			want: 6 * time.Hour,
		},
		{
			name: "days",
			def:  RawStepDef{Count: 2, Unit: "days"},
			want: 48 * time.Hour,
		},
		{
			name: "every duration string",
			def:  RawStepDef{Every: "1h30m"},
			want: 90 * time.Minute,
		},
		{
			name:    "unknown unit",
			def:     RawStepDef{Count: 1, Unit: "fortnights"},
			wantErr: "unknown unit",
		},
		{
			name:    "both forms",
			def:     RawStepDef{Count: 1, Unit: "hours", Every: "1h"},
			wantErr: "mutually exclusive",
		},
		{
			name:    "missing",
			def:     RawStepDef{},
			wantErr: "missing definition",
		},
		{
			name:    "bad every",
			def:     RawStepDef{Every: "soon"},
			wantErr: "parsing every",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := tt.def.Resolve()
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Resolve() succeeded with %v, want error containing %q", st, tt.wantErr)
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() failed: %v", err)
			}
			if st.Duration() != tt.want {
				t.Errorf("Duration() = %v, want %v", st.Duration(), tt.want)
			}
		})
	}
}

func TestRawStepDefResolve_InvalidMagnitude(t *testing.T) {
	_, err := RawStepDef{Count: -5, Unit: "minutes"}.Resolve()
	if !errors.Is(err, step.ErrInvalidStep) {
		t.Errorf("Resolve() error = %v, want step.ErrInvalidStep", err)
	}
}

func TestRangesBuildsAll(t *testing.T) {
	def := &RawScheduleDef{
		Name: "reporting",
		RangeDefs: []RawRangeDef{
			{
				Name:  "quarter-hourly",
				Start: "2024-01-01T00:00:00Z",
				End:   "2024-01-01T01:00:00Z",
				Step:  RawStepDef{Count: 15, Unit: "minutes"},
			},
			{
				Name:  "fine",
				Start: "2024-01-01T00:00:00Z",
				End:   "2024-01-01T00:03:00Z",
				Step:  RawStepDef{Every: "90s"},
			},
		},
	}

	ranges, err := def.Ranges(nil)
	if err != nil {
		t.Fatalf("Ranges failed: %v", err)
	}
	if len(ranges) != 2 {
		t.Fatalf("got %d ranges, want 2", len(ranges))
	}

	if ranges[0].Name != "quarter-hourly" {
		t.Errorf("ranges[0].Name = %q, want %q", ranges[0].Name, "quarter-hourly")
	}
	if got := ranges[0].Range.Count(); got != 5 {
		t.Errorf("quarter-hourly Count() = %d, want 5", got)
	}
	if got := ranges[1].Range.Count(); got != 3 {
		t.Errorf("fine Count() = %d, want 3", got)
	}
}

func TestRangesPropagatesBuilderSentinels(t *testing.T) {
	def := &RawScheduleDef{
		Name: "broken",
		RangeDefs: []RawRangeDef{
			{
				Name:  "backwards",
				Start: "2024-01-02T00:00:00Z",
				End:   "2024-01-01T00:00:00Z",
				Step:  RawStepDef{Count: 1, Unit: "hours"},
			},
		},
	}

	_, err := def.Ranges(nil)
	if err == nil {
		t.Fatal("Ranges succeeded, want error")
	}
	if !errors.Is(err, timerange.ErrInvalidRange) {
		t.Errorf("error = %v, want ErrInvalidRange in chain", err)
	}
	if !strings.Contains(err.Error(), `"backwards"`) {
		t.Errorf("error = %q, want it to name the range", err)
	}
	if !strings.Contains(err.Error(), `"broken"`) {
		t.Errorf("error = %q, want it to name the schedule", err)
	}
}

func TestBuildRejectsBadTimestamps(t *testing.T) {
	tests := []struct {
		name string
		def  RawRangeDef
		want string
	}{
		{
			name: "bad start",
			def: RawRangeDef{
				Name:  "r",
				Start: "yesterday",
				End:   "2024-01-01T00:00:00Z",
				Step:  RawStepDef{Count: 1, Unit: "hours"},
			},
			want: "parsing start",
		},
		{
			name: "bad end",
			def: RawRangeDef{
				Name:  "r",
				Start: "2024-01-01T00:00:00Z",
				End:   "2024-01-01",
				Step:  RawStepDef{Count: 1, Unit: "hours"},
			},
			want: "parsing end",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.def.Build(nil)
			if err == nil {
				t.Fatal("Build succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}
