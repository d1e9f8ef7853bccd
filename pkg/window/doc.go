// Package window tiles a time range into contiguous buckets.
//
// Where package timerange produces the instants of a range, this package
// produces the intervals between them: half-open [Start, End) windows one
// step wide, laid end to end across the range. The final window is clamped
// so it never extends past the range's end.
//
// Windows suit aggregation work (one bucket per reporting interval) where
// the closed-interval tick sequence suits sampling work.
package window
