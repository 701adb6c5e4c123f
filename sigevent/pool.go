package sigevent

import (
	"context"
	"runtime"
	"sync"

	"github.com/eapache/queue"
)

// Pool runs notifications on a bounded set of worker goroutines. Work beyond
// the number of idle workers waits, unbounded, in FIFO order.
type Pool struct {
	backlog *queue.Queue
	cond    sync.Cond
	done    chan struct{}
	mu      sync.Mutex
	workers int
	running int
	busy    int
	stopped bool
	// discard is set by Close, so that pending work is dropped
	discard bool
}

type poolTask struct {
	fn  func(Token)
	tok Token
}

// NewPool returns a pool of at most workers goroutines, which are started
// lazily. A non-positive workers uses GOMAXPROCS.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	x := &Pool{
		backlog: queue.New(),
		done:    make(chan struct{}),
		workers: workers,
	}
	x.cond.L = &x.mu
	return x
}

var defaultPool = sync.OnceValue(func() *Pool {
	return NewPool(0)
})

// DefaultPool returns the pool used by [NotifyPool] timers that were not
// given one. It is never closed.
func DefaultPool() *Pool {
	return defaultPool()
}

// Workers returns the maximum number of worker goroutines.
func (x *Pool) Workers() int {
	return x.workers
}

// Pending returns the number of queued tasks not yet started.
func (x *Pool) Pending() int {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.backlog.Length()
}

// submit queues fn(tok), returning [ErrPoolClosed] if the pool is stopped.
func (x *Pool) submit(fn func(Token), tok Token) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.stopped {
		return ErrPoolClosed
	}
	x.backlog.Add(poolTask{fn: fn, tok: tok})
	if x.running < x.workers && x.backlog.Length() > x.idle() {
		x.running++
		go x.worker()
	}
	x.cond.Signal()
	return nil
}

// idle must be called with mu held.
func (x *Pool) idle() int {
	return x.running - x.busy
}

func (x *Pool) worker() {
	x.mu.Lock()
	for {
		for x.backlog.Length() == 0 && !x.stopped {
			x.cond.Wait()
		}
		if x.backlog.Length() == 0 || x.discard {
			break
		}
		task := x.backlog.Remove().(poolTask)
		x.busy++
		x.mu.Unlock()

		task.fn(task.tok)

		x.mu.Lock()
		x.busy--
	}
	x.running--
	if x.running == 0 && x.stopped {
		x.closeDone()
	}
	x.mu.Unlock()
}

// closeDone must be called with mu held.
func (x *Pool) closeDone() {
	select {
	case <-x.done:
	default:
		close(x.done)
	}
}

func (x *Pool) stop(discard bool) {
	x.mu.Lock()
	x.stopped = true
	if discard {
		x.discard = true
		for x.backlog.Length() != 0 {
			x.backlog.Remove()
		}
	}
	if x.running == 0 {
		x.closeDone()
	}
	x.cond.Broadcast()
	x.mu.Unlock()
}

// Shutdown will immediately prevent further submissions, then wait for all
// running and queued tasks to complete. If ctx is canceled first, queued
// tasks are discarded, running tasks are waited for, and ctx.Err() is
// returned.
//
// This method is unsafe to call from within a task.
func (x *Pool) Shutdown(ctx context.Context) (err error) {
	x.stop(false)

	select {
	case <-ctx.Done():
		err = ctx.Err()
		x.stop(true)
		<-x.done
	case <-x.done:
	}

	return err
}

// Close immediately prevents further submissions, discards queued tasks, and
// blocks until running tasks return.
//
// This method is unsafe to call from within a task.
func (x *Pool) Close() error {
	x.stop(true)
	<-x.done
	return nil
}
