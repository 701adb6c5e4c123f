// Example: Periodic Timer
//
// This example demonstrates a periodic timer:
// - Routing failed system calls to a JSON logger
// - Arming at creation with WithSchedule
// - Inspecting the timer with Get and Overrun
// - Deleting the timer with Close
//
// Run with: go run ./examples/01_periodic/
package main

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/joeycumines/go-sigevent/diag"
	"github.com/joeycumines/go-sigevent/sigevent"
	"github.com/joeycumines/logiface"
)

func main() {
	logger := diag.NewLogger(os.Stderr, logiface.LevelDebug)
	diag.SetDefault(diag.NewLoggerSink(logger, diag.DefaultRates))

	var ticks atomic.Int64
	timer, err := sigevent.NewTimer(
		func() {
			fmt.Printf("tick %d\n", ticks.Add(1))
		},
		sigevent.WithClock(sigevent.ClockMonotonic),
		sigevent.WithSchedule(100*time.Millisecond, 100*time.Millisecond),
		sigevent.WithLogger(logger),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create: %v\n", err)
		os.Exit(1)
	}

	time.Sleep(550 * time.Millisecond)

	value, interval, err := timer.Get()
	if err == nil {
		fmt.Printf("next expiry in %s, every %s\n", value, interval)
	}
	if n, err := timer.Overrun(); err == nil {
		fmt.Printf("overrun: %d\n", n)
	}

	if err := timer.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close: %v\n", err)
	}
	fmt.Printf("total ticks: %d\n", ticks.Load())
}
