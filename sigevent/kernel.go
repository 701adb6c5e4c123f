package sigevent

import (
	"time"

	"github.com/joeycumines/logiface"
)

// TimerID identifies a kernel timer. Its meaning depends on the backend: a
// POSIX timer id, a timerfd descriptor, or a process-local sequence number.
type TimerID int

// kernelTimer is a created kernel timer. Nothing is delivered before the
// first settime.
type kernelTimer interface {
	id() TimerID
	settime(value, interval time.Duration) error
	gettime() (value, interval time.Duration, err error)
	overrun() (int, error)
	// delete stops the source and releases the id
	delete() error
}

// notification is what a backend fires, once per expiration.
type notification struct {
	desc   *Descriptor
	pool   *Pool
	logger *logiface.Logger[logiface.Event]
}

// fire dispatches the descriptor according to its mechanism. It must be
// called from the backend's notification goroutine.
func (n *notification) fire() {
	switch n.desc.Notify {
	case NotifyThread:
		go n.desc.Function(n.desc.Value)
	case NotifyPool:
		if err := n.pool.submit(n.desc.Function, n.desc.Value); err != nil {
			n.logger.Warning().
				Err(err).
				Uint64(`token`, uint64(n.desc.Value)).
				Log(`dropped notification`)
		}
	case NotifySignal:
		n.desc.Function(n.desc.Value)
	}
}

func toDuration(sec, nsec int64) time.Duration {
	return time.Duration(sec)*time.Second + time.Duration(nsec)
}
