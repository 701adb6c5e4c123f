// Example: Self-Closing Timer
//
// This example demonstrates a timer that deletes itself after three ticks,
// from inside its own callback, using the pool delivery mechanism.
//
// Run with: go run ./examples/02_self_closing/
package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-sigevent/sigevent"
)

func main() {
	pool := sigevent.NewPool(2)

	var (
		self  atomic.Pointer[sigevent.Timer]
		ticks atomic.Int64
		done  = make(chan struct{})
	)
	timer, err := sigevent.NewTimer(
		func() {
			n := ticks.Add(1)
			fmt.Printf("tick %d\n", n)
			if n == 3 {
				if err := self.Load().Close(); err != nil {
					fmt.Fprintf(os.Stderr, "close: %v\n", err)
				}
				close(done)
			}
		},
		sigevent.WithNotify(sigevent.NotifyPool),
		sigevent.WithPool(pool),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}
	self.Store(timer)

	// armed only once the callback can find the timer
	if err := timer.Set(50*time.Millisecond, 50*time.Millisecond); err != nil {
		fmt.Fprintf(os.Stderr, "set: %v\n", err)
		os.Exit(1)
	}

	<-done
	fmt.Printf("state: %s\n", timer.State())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := pool.Shutdown(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown: %v\n", err)
	}
}
