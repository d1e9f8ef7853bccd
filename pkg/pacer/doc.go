// Package pacer replays time ranges against the wall clock.
//
// Where an Iterator hands out a range's instants as fast as the caller
// pulls them, a Pacer fires a callback when the wall clock actually
// reaches each instant. This drives scheduled work from a range
// definition without hand-written timer bookkeeping.
//
// # Catch-up
//
// Instants already in the past when Start is called are skipped, never
// replayed in a burst. The first callback fires at the first instant at
// or after the Start call; Skipped reports how many were passed over.
//
// # Lifecycle
//
// A Pacer runs at most once. Start arms it, Stop cancels it, and after
// the final instant (or Stop) it stays finished; create a new Pacer to
// replay the range again. Callbacks run outside the pacer's internal
// lock, so they may query the pacer freely.
package pacer
