// Package sigevent binds Go closures to asynchronous kernel notifications,
// most importantly timer expirations.
//
// # Architecture
//
// An [Event] owns a closure and a [Descriptor]: the record a kernel
// notification API reads to know how, and whom, to notify. The descriptor's
// Function is always [Trampoline], and its Value is the event's [Token]. When
// a notification arrives, the trampoline resolves the token back to the event
// and runs the closure.
//
// A [Timer] composes an Event with a kernel timer. The timer identifier is
// allocated by [NewTimer] and released by [Timer.Close], which deletes the
// kernel timer, waits for deliveries already in progress, and only then
// releases the closure.
//
// # Notification Mechanisms
//
//   - [NotifyThread] (default): each notification runs on a new goroutine.
//   - [NotifyPool]: notifications are queued to a [Pool] of workers.
//   - [NotifySignal]: the kernel raises a real-time signal, and the closure
//     runs on a single dedicated signal goroutine. Linux only.
//   - [NotifyNone]: nothing is delivered; observe the timer with
//     [Timer.Get] and [Timer.Overrun].
//
// # Platform Support
//
//   - Linux: POSIX timers (timer_create) for [NotifySignal], which accept
//     every clock including [ClockProcessCPUTime]. Other mechanisms use
//     timerfd, which accepts [ClockRealtime], [ClockMonotonic],
//     [ClockBoottime] and the alarm clocks, and fails with EINVAL for
//     CPU-time clocks.
//   - Elsewhere: Go runtime timers, with [ClockRealtime] and
//     [ClockMonotonic].
//
// # Usage
//
//	t, err := sigevent.NewTimer(func() {
//	    fmt.Println("tick")
//	}, sigevent.WithSchedule(50*time.Millisecond, 50*time.Millisecond))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer t.Close()
//
// # Known Limitations
//
// Signals raised for a deleted [NotifySignal] timer may still be queued when
// its signal number is handed to a new timer. Such a stale signal is
// delivered to the new timer. Signal numbers are reused in FIFO order to make
// this unlikely.
package sigevent
