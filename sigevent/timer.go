package sigevent

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-sigevent/diag"
	"github.com/joeycumines/logiface"
)

// State is the lifecycle state of a [Timer].
//
//	StateUnarmed → StateArmed     [NewTimer]
//	StateArmed → StateDestroyed   [Close]
//
// Arming and disarming expiry with [Timer.Set] does not change state.
type State uint32

const (
	// StateUnarmed indicates no kernel timer exists yet.
	StateUnarmed State = iota
	// StateArmed indicates the kernel timer exists and may deliver.
	StateArmed
	// StateDestroyed indicates the kernel timer was deleted. It is terminal.
	StateDestroyed
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateUnarmed:
		return "Unarmed"
	case StateArmed:
		return "Armed"
	case StateDestroyed:
		return "Destroyed"
	default:
		return "Unknown"
	}
}

// Timer is a kernel timer that runs a closure on each expiration. It owns
// its kernel timer from [NewTimer] until [Timer.Close].
type Timer struct {
	event    *Event
	kernel   kernelTimer
	logger   *logiface.Logger[logiface.Event]
	sink     diag.Sink
	closeErr error
	// mu excludes kernel calls from deletion
	mu    sync.RWMutex
	state atomic.Uint32
	clock Clock
}

// NewTimer creates a kernel timer that calls fn on each expiration. By
// default the timer uses [NotifyThread] and [ClockRealtime], and is not set
// to expire: use [WithSchedule] or [Timer.Set].
//
// If the kernel timer cannot be created, the error is reported to the sink
// and returned as a [*TimerError], and no Timer exists.
func NewTimer(fn func(), opts ...Option) (*Timer, error) {
	if fn == nil {
		return nil, ErrNilFunc
	}
	cfg, err := resolveOptions(opts)
	if err != nil {
		return nil, err
	}

	t := &Timer{
		event:  NewEvent(fn, cfg.notify, cfg.attr),
		logger: cfg.logger,
		sink:   cfg.sink,
		clock:  cfg.clock,
	}

	n := &notification{
		desc:   t.Descriptor(),
		pool:   cfg.pool,
		logger: cfg.logger,
	}
	t.kernel, err = createKernelTimer(cfg.clock, n, cfg.sink)
	if err != nil {
		t.event.Close()
		err = &TimerError{Op: "timer_create", Clock: cfg.clock, Err: err}
		t.sink.Report(diag.Here(), err)
		return nil, err
	}
	t.state.Store(uint32(StateArmed))

	t.logger.Debug().
		Int(`timer`, int(t.kernel.id())).
		Str(`clock`, t.clock.String()).
		Str(`notify`, cfg.notify.String()).
		Log(`timer created`)

	if cfg.schedule {
		if err := t.Set(cfg.value, cfg.interval); err != nil {
			_ = t.Close()
			return nil, err
		}
	}

	return t, nil
}

// ID returns the kernel timer identifier.
func (t *Timer) ID() TimerID {
	return t.kernel.id()
}

// Token returns the identity token carried by the timer's notifications.
func (t *Timer) Token() Token {
	return t.event.Token()
}

// Descriptor returns the notification descriptor. It must not be modified.
func (t *Timer) Descriptor() *Descriptor {
	return t.event.Descriptor()
}

// Deliveries returns the number of times the closure has been entered.
func (t *Timer) Deliveries() uint64 {
	return t.event.Deliveries()
}

// Clock returns the clock the timer measures.
func (t *Timer) Clock() Clock {
	return t.clock
}

// State returns the current lifecycle state.
func (t *Timer) State() State {
	return State(t.state.Load())
}

// Set arms the timer to first expire after value, then every interval. A
// zero interval expires once. A zero value disarms the timer, which remains
// allocated.
func (t *Timer) Set(value, interval time.Duration) error {
	if value < 0 || interval < 0 {
		return &TimerError{Op: "timer_settime", ID: t.ID(), Err: errNegativeDuration}
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.State() != StateArmed {
		return ErrTimerClosed
	}
	if err := t.kernel.settime(value, interval); err != nil {
		return t.fail("timer_settime", err)
	}
	return nil
}

// Get returns the time until the next expiration, zero if disarmed, and the
// interval.
func (t *Timer) Get() (value, interval time.Duration, err error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.State() != StateArmed {
		return 0, 0, ErrTimerClosed
	}
	value, interval, err = t.kernel.gettime()
	if err != nil {
		return 0, 0, t.fail("timer_gettime", err)
	}
	return value, interval, nil
}

// Overrun returns the number of expirations that were coalesced into the
// most recent delivery.
func (t *Timer) Overrun() (int, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.State() != StateArmed {
		return 0, ErrTimerClosed
	}
	n, err := t.kernel.overrun()
	if err != nil {
		return 0, t.fail("timer_getoverrun", err)
	}
	return n, nil
}

// Close deletes the kernel timer, waits for deliveries in progress, then
// releases the closure. It may be called from within the timer's own
// closure. A deletion failure is reported to the sink and returned, but
// teardown still completes. Close is idempotent.
func (t *Timer) Close() error {
	t.mu.Lock()
	if t.State() == StateDestroyed {
		err := t.closeErr
		t.mu.Unlock()
		t.event.Close()
		return err
	}
	if err := t.kernel.delete(); err != nil {
		t.closeErr = t.fail("timer_delete", err)
	}
	t.state.Store(uint32(StateDestroyed))
	err := t.closeErr
	t.mu.Unlock()

	t.event.Close()

	t.logger.Debug().
		Int(`timer`, int(t.kernel.id())).
		Uint64(`deliveries`, t.Deliveries()).
		Log(`timer deleted`)

	return err
}

func (t *Timer) fail(op string, err error) error {
	err = &TimerError{Op: op, ID: t.kernel.id(), Clock: t.clock, Err: err}
	t.sink.Report(diag.Caller(1), err)
	return err
}
