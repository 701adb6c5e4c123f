package sigevent

import (
	"encoding/binary"
	"errors"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-sigevent/diag"
	"github.com/joeycumines/go-sigevent/sys"
	"golang.org/x/sys/unix"
)

// timerfd is a kernel timer read by a per-timer notification goroutine,
// which blocks in poll(2) on the timer and an eventfd used to stop it.
type timerfd struct {
	n        *notification
	sink     diag.Sink
	done     chan struct{}
	overruns atomic.Int64
	fd       int
	wakeFd   int
}

func createTimerfd(clock Clock, n *notification, sink diag.Sink) (*timerfd, error) {
	fd, err := unix.TimerfdCreate(int(clock), unix.TFD_CLOEXEC|unix.TFD_NONBLOCK)
	if err != nil {
		return nil, err
	}
	wakeFd, err := unix.Eventfd(0, unix.EFD_CLOEXEC|unix.EFD_NONBLOCK)
	if err != nil {
		_ = sys.Close(fd)
		return nil, err
	}
	t := &timerfd{
		n:      n,
		sink:   sink,
		done:   make(chan struct{}),
		fd:     fd,
		wakeFd: wakeFd,
	}
	go t.run()
	return t, nil
}

func (t *timerfd) id() TimerID {
	return TimerID(t.fd)
}

func (t *timerfd) run() {
	defer close(t.done)

	pfds := []sys.PollFd{
		{Fd: int32(t.fd), Events: sys.POLLIN},
		{Fd: int32(t.wakeFd), Events: sys.POLLIN},
	}
	var buf [8]byte

	for {
		pfds[0].Revents, pfds[1].Revents = 0, 0
		if _, err := sys.Poll(pfds, -1); err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}
			t.sink.Report(diag.Here(), err)
			return
		}

		if pfds[1].Revents != 0 {
			return
		}
		if pfds[0].Revents&sys.POLLIN == 0 {
			continue
		}

		n, err := sys.Read(t.fd, buf[:])
		if err != nil {
			if errors.Is(err, unix.EAGAIN) {
				// re-armed or cancelled between poll and read
				continue
			}
			t.sink.Report(diag.Here(), err)
			return
		}
		if n != len(buf) {
			continue
		}

		expirations := binary.NativeEndian.Uint64(buf[:])
		if expirations == 0 {
			continue
		}
		t.overruns.Store(int64(expirations - 1))
		t.n.fire()
	}
}

func (t *timerfd) settime(value, interval time.Duration) error {
	spec := unix.ItimerSpec{
		Interval: unix.NsecToTimespec(int64(interval)),
		Value:    unix.NsecToTimespec(int64(value)),
	}
	return unix.TimerfdSettime(t.fd, 0, &spec, nil)
}

func (t *timerfd) gettime() (value, interval time.Duration, err error) {
	var spec unix.ItimerSpec
	if err = unix.TimerfdGettime(t.fd, &spec); err != nil {
		return 0, 0, err
	}
	return toDuration(spec.Value.Unix()), toDuration(spec.Interval.Unix()), nil
}

func (t *timerfd) overrun() (int, error) {
	return int(t.overruns.Load()), nil
}

func (t *timerfd) delete() error {
	var one [8]byte
	binary.NativeEndian.PutUint64(one[:], 1)
	if _, err := sys.Write(t.wakeFd, one[:]); err != nil {
		// the goroutine cannot be stopped, leave both descriptors open
		return err
	}
	<-t.done

	err := sys.Close(t.fd)
	if err2 := sys.Close(t.wakeFd); err == nil {
		err = err2
	}
	return err
}
