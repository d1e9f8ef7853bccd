package pacer

import (
	"errors"
	"sync"
	"time"

	"github.com/0xb-s/range-time-go/pkg/timerange"
)

// Pacer errors.
var (
	// ErrAlreadyStarted indicates Start was called more than once.
	ErrAlreadyStarted = errors.New("pacer already started")

	// ErrRangeElapsed indicates every instant of the range was already
	// past when Start was called.
	ErrRangeElapsed = errors.New("range already elapsed")
)

// TickFunc is called when the wall clock reaches an instant. seq is the
// instant's position within the full range, counting from zero, so
// skipped instants leave a visible gap in the sequence numbers.
type TickFunc func(seq uint64, instant time.Time)

// DoneFunc is called once after the final instant has fired. fired is
// the number of tick callbacks delivered.
type DoneFunc func(fired uint64)

// Pacer fires a callback at each instant of a range in real time.
// Create one with New; the zero value is not usable.
type Pacer struct {
	mu      sync.Mutex
	r       *timerange.Range
	onTick  TickFunc
	onDone  DoneFunc
	timer   *time.Timer
	pending time.Time
	seq     uint64
	started bool
	running bool
	fired   uint64
	skipped uint64
}

// New creates a pacer for r. Nothing is scheduled until Start.
func New(r *timerange.Range) *Pacer {
	return &Pacer{r: r}
}

// OnDone registers fn to run after the final instant fires. Set it
// before Start; a stopped replay never reports done.
func (p *Pacer) OnDone(fn DoneFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onDone = fn
}

// Start arms the pacer: onTick fires at every range instant from the
// first one not yet past. Start reports ErrRangeElapsed when no such
// instant exists and ErrAlreadyStarted on reuse.
func (p *Pacer) Start(onTick TickFunc) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started {
		return ErrAlreadyStarted
	}

	// Fast-forward past instants the wall clock has already passed.
	now := time.Now()
	cursor := p.r.Start()
	var seq uint64
	for cursor.Before(now) {
		next := p.r.Step().Advance(cursor)
		if next.After(p.r.End()) || !next.After(cursor) {
			return ErrRangeElapsed
		}
		cursor = next
		seq++
	}

	p.started = true
	p.running = true
	p.onTick = onTick
	p.skipped = seq
	p.seq = seq
	p.pending = cursor
	p.timer = time.AfterFunc(time.Until(cursor), p.fire)
	return nil
}

// fire delivers the pending instant and schedules the next one.
func (p *Pacer) fire() {
	p.mu.Lock()

	if !p.running {
		// Stopped between the timer firing and acquiring the lock.
		p.mu.Unlock()
		return
	}

	onTick := p.onTick
	seq := p.seq
	instant := p.pending
	p.seq++
	p.fired++

	var onDone DoneFunc
	var fired uint64
	next := p.r.Step().Advance(instant)
	if next.After(p.r.End()) || !next.After(instant) {
		p.running = false
		p.timer = nil
		onDone = p.onDone
		fired = p.fired
	} else {
		p.pending = next
		p.timer = time.AfterFunc(time.Until(next), p.fire)
	}
	p.mu.Unlock()

	// Callbacks run outside the lock so they may call back into the
	// pacer.
	onTick(seq, instant)
	if onDone != nil {
		onDone(fired)
	}
}

// Stop cancels the replay. Instants not yet fired never fire and the
// done callback never runs. Stop is safe to call at any point.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.running = false
}

// Running reports whether instants remain to fire.
func (p *Pacer) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Next returns the instant scheduled to fire next. ok is false when the
// pacer is not running.
func (p *Pacer) Next() (instant time.Time, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return time.Time{}, false
	}
	return p.pending, true
}

// Fired returns how many instants have fired so far.
func (p *Pacer) Fired() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fired
}

// Skipped returns how many instants were already past at Start.
func (p *Pacer) Skipped() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.skipped
}
