package sigevent

import (
	"context"
	"fmt"
	"runtime"
	"runtime/pprof"
	"sync"
	"sync/atomic"
)

// Mechanism selects how a notification is delivered.
type Mechanism int

const (
	// NotifyThread runs each notification on a new goroutine.
	NotifyThread Mechanism = iota
	// NotifyPool queues each notification to a [Pool].
	NotifyPool
	// NotifySignal has the kernel raise a real-time signal, handled on a
	// dedicated goroutine. Linux only.
	NotifySignal
	// NotifyNone delivers nothing.
	NotifyNone
)

func (m Mechanism) String() string {
	switch m {
	case NotifyThread:
		return "thread"
	case NotifyPool:
		return "pool"
	case NotifySignal:
		return "signal"
	case NotifyNone:
		return "none"
	default:
		return fmt.Sprintf("Mechanism(%d)", int(m))
	}
}

func (m Mechanism) valid() bool {
	return m >= NotifyThread && m <= NotifyNone
}

// Token is the opaque value carried through a kernel notification. It
// identifies exactly one [Event] for that event's lifetime, and is never
// reused.
type Token uintptr

// Attributes configure the goroutine a notification runs on. A nil
// *Attributes means defaults.
type Attributes struct {
	// Labels are attached with [pprof.Do] for the duration of each delivery.
	Labels map[string]string
	// LockOSThread wires each delivery to its own OS thread.
	LockOSThread bool
}

// Descriptor is what a notification source is given. Function is always
// [Trampoline] and Value the event's token.
type Descriptor struct {
	Function   func(Token)
	Attributes *Attributes
	Value      Token
	Notify     Mechanism
}

// Event binds a closure to a [Descriptor]. An Event must not be copied, and
// must remain registered for as long as a notification source may deliver
// its token.
type Event struct {
	_     noCopy
	fn    func()
	calls map[uint64]int
	desc  Descriptor
	cond  sync.Cond
	count atomic.Uint64
	mu    sync.Mutex
	// number of deliveries currently running the closure
	inflight int
	closed   bool
}

// NewEvent returns an event that runs fn on each notification of its token.
// Construction performs no system call and cannot fail. The caller must call
// [Event.Close] once the event is no longer reachable by any source.
func NewEvent(fn func(), notify Mechanism, attr *Attributes) *Event {
	e := &Event{
		fn:    fn,
		calls: make(map[uint64]int),
	}
	e.cond.L = &e.mu
	e.desc = Descriptor{
		Notify:     notify,
		Value:      events.register(e),
		Function:   Trampoline,
		Attributes: attr,
	}
	return e
}

// Token returns the identity token, which is stable for the event's lifetime.
func (e *Event) Token() Token {
	return e.desc.Value
}

// Descriptor returns the notification descriptor for this event. It must not
// be modified.
func (e *Event) Descriptor() *Descriptor {
	return &e.desc
}

// Deliveries returns the number of times the closure has been entered.
func (e *Event) Deliveries() uint64 {
	return e.count.Load()
}

// Close stops further deliveries, waits for those in progress, then releases
// the closure and the token. A delivery may call Close on its own event;
// it will not wait for itself. Close is idempotent.
func (e *Event) Close() {
	gid := getGoroutineID()

	e.mu.Lock()
	e.closed = true
	for e.inflight > e.calls[gid] {
		e.cond.Wait()
	}
	e.fn = nil
	e.mu.Unlock()

	events.release(e.desc.Value)
}

// Trampoline is the entry point for every notification. It resolves tok to
// its event and runs the closure on the calling goroutine. Unknown or
// released tokens are dropped.
func Trampoline(tok Token) {
	e := events.lookup(tok)
	if e == nil {
		getGlobalLogger().Debug().
			Uint64(`token`, uint64(tok)).
			Log(`dropped notification for unknown token`)
		return
	}
	e.deliver()
}

func (e *Event) deliver() {
	gid := getGoroutineID()

	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return
	}
	fn := e.fn
	e.inflight++
	e.calls[gid]++
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		e.inflight--
		if e.calls[gid]--; e.calls[gid] == 0 {
			delete(e.calls, gid)
		}
		e.cond.Broadcast()
		e.mu.Unlock()
	}()

	e.count.Add(1)

	attr := e.desc.Attributes
	if attr == nil {
		fn()
		return
	}
	if attr.LockOSThread {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
	}
	if len(attr.Labels) == 0 {
		fn()
		return
	}
	labels := make([]string, 0, len(attr.Labels)*2)
	for k, v := range attr.Labels {
		labels = append(labels, k, v)
	}
	pprof.Do(context.Background(), pprof.Labels(labels...), func(context.Context) {
		fn()
	})
}

var events = &registry{m: make(map[Token]*Event)}

// registry maps tokens to live events.
type registry struct {
	m    map[Token]*Event
	mu   sync.RWMutex
	next Token
}

func (r *registry) register(e *Event) Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	r.m[r.next] = e
	return r.next
}

func (r *registry) lookup(tok Token) *Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.m[tok]
}

func (r *registry) release(tok Token) {
	r.mu.Lock()
	delete(r.m, tok)
	r.mu.Unlock()
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.m)
}

// getGoroutineID returns the current goroutine's ID.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	var id uint64
	for i := len("goroutine "); i < n; i++ {
		if buf[i] >= '0' && buf[i] <= '9' {
			id = id*10 + uint64(buf[i]-'0')
		} else {
			break
		}
	}
	return id
}

type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
