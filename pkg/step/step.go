package step

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// Step errors.
var (
	// ErrInvalidStep indicates a non-positive magnitude or duration, or a
	// magnitude whose total duration overflows time.Duration.
	ErrInvalidStep = errors.New("invalid step")
)

// Unit identifies the time unit of a step.
type Unit uint8

const (
	// UnitNone is the zero value; a Step with UnitNone is invalid.
	UnitNone Unit = iota

	// UnitSecond steps by whole seconds.
	UnitSecond

	// UnitMinute steps by whole minutes.
	UnitMinute

	// UnitHour steps by whole hours.
	UnitHour

	// UnitDay steps by fixed 24-hour days.
	UnitDay

	// UnitCustom steps by an arbitrary fixed duration.
	UnitCustom
)

// String returns a human-readable unit name.
func (u Unit) String() string {
	switch u {
	case UnitSecond:
		return "second"
	case UnitMinute:
		return "minute"
	case UnitHour:
		return "hour"
	case UnitDay:
		return "day"
	case UnitCustom:
		return "custom"
	default:
		return "none"
	}
}

// base returns the duration of one unit, or 0 for units without a fixed base.
func (u Unit) base() time.Duration {
	switch u {
	case UnitSecond:
		return time.Second
	case UnitMinute:
		return time.Minute
	case UnitHour:
		return time.Hour
	case UnitDay:
		return 24 * time.Hour
	default:
		return 0
	}
}

// Step is a fixed-duration increment between produced instants.
// The zero value is invalid; construct Steps with Seconds, Minutes, Hours,
// Days, or Every.
type Step struct {
	unit Unit
	n    int64
	d    time.Duration
}

// Seconds returns a step of n seconds.
func Seconds(n int64) (Step, error) {
	return byUnit(UnitSecond, n)
}

// Minutes returns a step of n minutes.
func Minutes(n int64) (Step, error) {
	return byUnit(UnitMinute, n)
}

// Hours returns a step of n hours.
func Hours(n int64) (Step, error) {
	return byUnit(UnitHour, n)
}

// Days returns a step of n fixed 24-hour days.
func Days(n int64) (Step, error) {
	return byUnit(UnitDay, n)
}

// Every returns a step of an arbitrary fixed duration d.
func Every(d time.Duration) (Step, error) {
	if d <= 0 {
		return Step{}, fmt.Errorf("%w: duration %v is not positive", ErrInvalidStep, d)
	}
	return Step{unit: UnitCustom, n: 1, d: d}, nil
}

// byUnit builds a step of n units, rejecting non-positive and overflowing
// magnitudes.
func byUnit(unit Unit, n int64) (Step, error) {
	if n <= 0 {
		return Step{}, fmt.Errorf("%w: %d %s(s)", ErrInvalidStep, n, unit)
	}
	base := unit.base()
	if n > math.MaxInt64/int64(base) {
		return Step{}, fmt.Errorf("%w: %d %s(s) overflows duration", ErrInvalidStep, n, unit)
	}
	return Step{unit: unit, n: n, d: time.Duration(n) * base}, nil
}

// Unit returns the step's unit.
func (s Step) Unit() Unit {
	return s.unit
}

// Magnitude returns the number of units in the step. Custom steps report 1.
func (s Step) Magnitude() int64 {
	return s.n
}

// Duration returns the fixed duration represented by the step.
// The zero Step reports 0.
func (s Step) Duration() time.Duration {
	return s.d
}

// Seconds returns the total step size in whole seconds.
func (s Step) Seconds() int64 {
	return int64(s.d / time.Second)
}

// Advance returns t moved forward by one step. For any valid step the result
// is strictly after t.
func (s Step) Advance(t time.Time) time.Time {
	return t.Add(s.d)
}

// Validate re-checks the step invariants. It reports ErrInvalidStep for the
// zero Step and for any step whose duration is not positive.
func (s Step) Validate() error {
	if s.unit == UnitNone || s.d <= 0 {
		return ErrInvalidStep
	}
	return nil
}

// Equal reports whether two steps advance by the same duration.
func (s Step) Equal(other Step) bool {
	return s.d == other.d
}

// String returns a human-readable description, e.g. "2 minute(s)".
func (s Step) String() string {
	switch s.unit {
	case UnitSecond, UnitMinute, UnitHour, UnitDay:
		return fmt.Sprintf("%d %s(s)", s.n, s.unit)
	case UnitCustom:
		return s.d.String()
	default:
		return "invalid step"
	}
}
