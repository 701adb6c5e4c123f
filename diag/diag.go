// Package diag is the process-wide sink for failed system calls.
//
// Callers hand it the location of the failing call and the error, and it
// produces a diagnostic, typically a structured log entry:
//
//	if err := sys.Close(fd); err != nil {
//	    diag.Report(diag.Here(), err)
//	}
//
// Nothing in this package retries or escalates.
package diag

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"syscall"
)

// Location identifies a call site.
type Location struct {
	File     string
	Function string
	Line     int
}

// String formats the location as file:line.
func (l Location) String() string {
	if l.File == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s:%d", filepath.Base(l.File), l.Line)
}

// Here returns the location of its caller.
func Here() Location {
	return Caller(1)
}

// Caller returns the location skip frames above its caller.
func Caller(skip int) Location {
	pc, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return Location{}
	}
	loc := Location{File: file, Line: line}
	if fn := runtime.FuncForPC(pc); fn != nil {
		loc.Function = fn.Name()
	}
	return loc
}

// Sink receives reports of failed operations.
type Sink interface {
	Report(loc Location, err error)
}

// SinkFunc adapts a function to [Sink].
type SinkFunc func(loc Location, err error)

func (f SinkFunc) Report(loc Location, err error) { f(loc, err) }

// Errno extracts the platform error code carried by err, if any.
func Errno(err error) (syscall.Errno, bool) {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno, true
	}
	return 0, false
}

var defaultSink struct {
	sync.RWMutex
	sink Sink
}

// SetDefault replaces the sink used by [Report]. A nil sink discards.
func SetDefault(sink Sink) {
	defaultSink.Lock()
	defer defaultSink.Unlock()
	defaultSink.sink = sink
}

// Default returns the sink used by [Report].
func Default() Sink {
	defaultSink.RLock()
	defer defaultSink.RUnlock()
	if defaultSink.sink != nil {
		return defaultSink.sink
	}
	return discard{}
}

// Report sends err to the default sink. Nil errors are ignored.
func Report(loc Location, err error) {
	if err == nil {
		return
	}
	Default().Report(loc, err)
}

type discard struct{}

func (discard) Report(Location, error) {}
