// Package step defines the fixed-duration increments used to walk a time
// range.
//
// A Step pairs a unit (seconds, minutes, hours, days) with a positive
// magnitude, or wraps an arbitrary positive duration. Every Step maps to a
// fixed time.Duration: a day is always exactly 24 hours, independent of DST
// transitions or other calendar irregularities. Calendar-aware increments
// (such as "one month") are deliberately not representable.
//
// Steps are validated at construction. A magnitude of zero or below, or one
// whose total duration would overflow time.Duration, fails immediately with
// ErrInvalidStep rather than surfacing later during iteration.
package step
