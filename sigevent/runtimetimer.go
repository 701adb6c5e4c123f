package sigevent

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

var runtimeTimerIDs atomic.Int64

// runtimeTimer emulates a kernel timer with the Go runtime's timers. Expiry
// is measured on the monotonic clock, so wall-clock steps are not observed
// by ClockRealtime timers.
type runtimeTimer struct {
	n        *notification
	timer    *time.Timer
	due      time.Time
	mu       sync.Mutex
	interval time.Duration
	ident    TimerID
	gen      uint64
	overruns int
	deleted  bool
}

func createRuntimeTimer(clock Clock, n *notification) (*runtimeTimer, error) {
	switch clock {
	case ClockRealtime, ClockMonotonic:
	default:
		return nil, fmt.Errorf("%w: clock %s", ErrNotSupported, clock)
	}
	return &runtimeTimer{
		n:     n,
		ident: TimerID(runtimeTimerIDs.Add(1)),
	}, nil
}

func (t *runtimeTimer) id() TimerID {
	return t.ident
}

func (t *runtimeTimer) settime(value, interval time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	t.overruns = 0
	t.interval = interval
	t.due = time.Time{}

	if value <= 0 {
		return nil
	}

	t.due = time.Now().Add(value)
	gen := t.gen
	t.timer = time.AfterFunc(value, func() { t.expire(gen) })
	return nil
}

func (t *runtimeTimer) expire(gen uint64) {
	t.mu.Lock()
	if t.deleted || gen != t.gen {
		t.mu.Unlock()
		return
	}
	if t.interval > 0 {
		now := time.Now()
		missed := int(now.Sub(t.due) / t.interval)
		t.overruns = missed
		t.due = t.due.Add(time.Duration(missed+1) * t.interval)
		t.timer.Reset(t.due.Sub(now))
	} else {
		t.overruns = 0
		t.due = time.Time{}
		t.timer = nil
	}
	t.mu.Unlock()

	t.n.fire()
}

func (t *runtimeTimer) gettime() (value, interval time.Duration, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.due.IsZero() {
		value = max(time.Until(t.due), time.Nanosecond)
	}
	return value, t.interval, nil
}

func (t *runtimeTimer) overrun() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.overruns, nil
}

func (t *runtimeTimer) delete() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.deleted = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	return nil
}
