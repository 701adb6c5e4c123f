package sigevent

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// not exported by x/sys/unix
const (
	sigevSignal  = 0
	sigevMaxSize = 64
)

// sigevent is struct sigevent as the kernel reads it.
type sigevent struct {
	value  uintptr
	signo  int32
	notify int32
	_      [sigevMaxSize - unsafe.Sizeof(uintptr(0)) - 8]byte
}

// real-time signals handed out to timers; below 40 is left to libc and
// other libraries
const (
	sigFirst syscall.Signal = 40
	sigLast  syscall.Signal = 63
)

var signals = newSignalTable(sigFirst, sigLast)

// signalTable owns a range of real-time signals, one per live timer, all
// handled by one dispatch goroutine.
type signalTable struct {
	bound   map[syscall.Signal]*notification
	ch      chan os.Signal
	free    []syscall.Signal
	mu      sync.Mutex
	started bool
}

func newSignalTable(first, last syscall.Signal) *signalTable {
	s := &signalTable{bound: make(map[syscall.Signal]*notification)}
	for sig := first; sig <= last; sig++ {
		s.free = append(s.free, sig)
	}
	return s
}

func (s *signalTable) acquire(n *notification) (syscall.Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.free) == 0 {
		return 0, unix.EAGAIN
	}
	if !s.started {
		s.ch = make(chan os.Signal, 64)
		go s.run()
		s.started = true
	}
	sig := s.free[0]
	s.free = s.free[1:]
	s.bound[sig] = n
	signal.Notify(s.ch, sig)
	return sig, nil
}

// release must only be called once the timer raising sig is deleted.
func (s *signalTable) release(sig syscall.Signal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bound, sig)
	// ignored, not reset: the default action terminates the process
	signal.Ignore(sig)
	s.free = append(s.free, sig)
}

func (s *signalTable) available() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.free)
}

func (s *signalTable) run() {
	for sig := range s.ch {
		num, ok := sig.(syscall.Signal)
		if !ok {
			continue
		}
		s.mu.Lock()
		n := s.bound[num]
		s.mu.Unlock()
		if n != nil {
			n.fire()
		}
	}
}

// posixTimer is a timer_create timer notifying with SIGEV_SIGNAL.
type posixTimer struct {
	sig   syscall.Signal
	timer int32
}

func createPosixTimer(clock Clock, n *notification) (*posixTimer, error) {
	sig, err := signals.acquire(n)
	if err != nil {
		return nil, err
	}
	sev := sigevent{
		value:  uintptr(n.desc.Value),
		signo:  int32(sig),
		notify: sigevSignal,
	}
	var timer int32
	_, _, errno := unix.Syscall(
		unix.SYS_TIMER_CREATE,
		uintptr(clock),
		uintptr(unsafe.Pointer(&sev)),
		uintptr(unsafe.Pointer(&timer)),
	)
	if errno != 0 {
		signals.release(sig)
		return nil, errno
	}
	return &posixTimer{sig: sig, timer: timer}, nil
}

func (t *posixTimer) id() TimerID {
	return TimerID(t.timer)
}

func (t *posixTimer) settime(value, interval time.Duration) error {
	spec := unix.ItimerSpec{
		Interval: unix.NsecToTimespec(int64(interval)),
		Value:    unix.NsecToTimespec(int64(value)),
	}
	_, _, errno := unix.Syscall6(
		unix.SYS_TIMER_SETTIME,
		uintptr(t.timer),
		0,
		uintptr(unsafe.Pointer(&spec)),
		0,
		0,
		0,
	)
	if errno != 0 {
		return errno
	}
	return nil
}

func (t *posixTimer) gettime() (value, interval time.Duration, err error) {
	var spec unix.ItimerSpec
	_, _, errno := unix.Syscall(
		unix.SYS_TIMER_GETTIME,
		uintptr(t.timer),
		uintptr(unsafe.Pointer(&spec)),
		0,
	)
	if errno != 0 {
		return 0, 0, errno
	}
	return toDuration(spec.Value.Unix()), toDuration(spec.Interval.Unix()), nil
}

func (t *posixTimer) overrun() (int, error) {
	r, _, errno := unix.Syscall(unix.SYS_TIMER_GETOVERRUN, uintptr(t.timer), 0, 0)
	if errno != 0 {
		return 0, errno
	}
	return int(r), nil
}

func (t *posixTimer) delete() error {
	_, _, errno := unix.Syscall(unix.SYS_TIMER_DELETE, uintptr(t.timer), 0, 0)
	if errno != 0 {
		return errno
	}
	signals.release(t.sig)
	return nil
}
