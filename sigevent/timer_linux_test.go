package sigevent

import (
	"sync"
	"sync/atomic"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestSigevent_Layout(t *testing.T) {
	assert.Equal(t, uintptr(sigevMaxSize), unsafe.Sizeof(sigevent{}))
}

func TestTimer_Signal(t *testing.T) {
	free := signals.available()

	var calls atomic.Int64
	fired := make(chan struct{}, 1)
	tm, err := NewTimer(func() {
		calls.Add(1)
		select {
		case fired <- struct{}{}:
		default:
		}
	}, WithNotify(NotifySignal), WithClock(ClockMonotonic), WithSchedule(5*time.Millisecond, 5*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, free-1, signals.available())

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("signal timer did not fire")
	}

	value, interval, err := tm.Get()
	require.NoError(t, err)
	assert.LessOrEqual(t, value, 5*time.Millisecond)
	assert.Equal(t, 5*time.Millisecond, interval)

	n, err := tm.Overrun()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 0)

	require.NoError(t, tm.Close())
	after := calls.Load()
	assert.Equal(t, free, signals.available())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

func TestTimer_SignalCloseFromCallback(t *testing.T) {
	var (
		self atomic.Pointer[Timer]
		done = make(chan error, 1)
	)
	tm, err := NewTimer(func() {
		// single dispatch goroutine, so no other delivery can race this one
		if tm := self.Load(); tm != nil && tm.State() == StateArmed {
			done <- tm.Close()
		}
	}, WithNotify(NotifySignal), WithSchedule(time.Millisecond, time.Millisecond))
	require.NoError(t, err)
	self.Store(tm)

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Close from the signal goroutine did not return")
	}
}

func TestTimer_SignalExhausted(t *testing.T) {
	var timers []*Timer
	defer func() {
		for _, tm := range timers {
			_ = tm.Close()
		}
	}()
	for signals.available() > 0 {
		tm, err := NewTimer(func() {}, WithNotify(NotifySignal))
		require.NoError(t, err)
		timers = append(timers, tm)
	}

	sink := &recordingSink{}
	_, err := NewTimer(func() {}, WithNotify(NotifySignal), WithSink(sink))
	assert.ErrorIs(t, err, unix.EAGAIN)
	assert.Len(t, sink.reports(), 1)
}

func TestTimer_SignalCPUClock(t *testing.T) {
	tm, err := NewTimer(func() {}, WithNotify(NotifySignal), WithClock(ClockProcessCPUTime))
	require.NoError(t, err)
	require.NoError(t, tm.Set(time.Hour, 0))
	require.NoError(t, tm.Close())
}

func TestTimer_TimerfdRejectsCPUClock(t *testing.T) {
	before := events.len()
	tm, err := NewTimer(func() {}, WithClock(ClockProcessCPUTime), WithSink(&recordingSink{}))
	assert.Nil(t, tm)
	assert.ErrorIs(t, err, syscall.EINVAL)
	assert.Equal(t, before, events.len())
}

func TestTimer_TimerfdID(t *testing.T) {
	tm, err := NewTimer(func() {}, WithClock(ClockBoottime))
	require.NoError(t, err)

	// the id is the descriptor, which the kernel knows as a timerfd
	var spec unix.ItimerSpec
	require.NoError(t, unix.TimerfdGettime(int(tm.ID()), &spec))

	id := tm.ID()
	require.NoError(t, tm.Close())
	assert.ErrorIs(t, unix.TimerfdGettime(int(id), &spec), syscall.EBADF)
}

func TestTimer_SignalPeriodicWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("timing sensitive")
	}
	n := countPeriodic(t, WithNotify(NotifySignal), WithClock(ClockMonotonic))
	assert.GreaterOrEqual(t, n, int64(9))
	assert.LessOrEqual(t, n, int64(11))
}

func TestTimer_TimerfdPoolBacklog(t *testing.T) {
	release := make(chan struct{})
	var once sync.Once
	pool := NewPool(1)
	defer pool.Close()

	// the single worker stays blocked, while the timerfd keeps being read
	tm, err := NewTimer(func() { once.Do(func() { <-release }) },
		WithNotify(NotifyPool),
		WithPool(pool),
		WithSchedule(time.Millisecond, time.Millisecond))
	require.NoError(t, err)

	time.Sleep(20 * time.Millisecond)
	n, err := tm.Overrun()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, n, 0)
	assert.Positive(t, pool.Pending())

	close(release)
	require.NoError(t, tm.Close())
}
