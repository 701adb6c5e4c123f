package sigevent

import (
	"errors"
	"fmt"

	"github.com/joeycumines/go-sigevent/sys"
)

// Standard errors.
var (
	ErrTimerClosed = errors.New("sigevent: timer closed")
	ErrNilFunc     = errors.New("sigevent: nil notification function")
	ErrPoolClosed  = errors.New("sigevent: pool closed")
	// ErrNotSupported wraps [sys.ErrNotSupported], so errors.Is matches
	// either.
	ErrNotSupported = fmt.Errorf("sigevent: %w", sys.ErrNotSupported)

	errNegativeDuration = errors.New("negative duration")
)

// TimerError reports a failed kernel timer operation. Op is the name of the
// call, e.g. "timer_create".
type TimerError struct {
	Err   error
	Op    string
	Clock Clock
	ID    TimerID
}

// Error implements the error interface.
func (e *TimerError) Error() string {
	if e.Op == "timer_create" {
		return fmt.Sprintf("sigevent: %s (clock %s): %v", e.Op, e.Clock, e.Err)
	}
	return fmt.Sprintf("sigevent: %s (timer %d): %v", e.Op, e.ID, e.Err)
}

// Unwrap returns the underlying cause, typically a [syscall.Errno].
func (e *TimerError) Unwrap() error {
	return e.Err
}
