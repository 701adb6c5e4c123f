package sigevent

import (
	"sync"

	"github.com/joeycumines/logiface"
)

var (
	// package-level logger, used where no Timer is in scope
	globalLogger struct {
		sync.RWMutex
		logger *logiface.Logger[logiface.Event]
	}
)

// SetLogger sets the package-level logger. Nil disables logging.
func SetLogger(logger *logiface.Logger[logiface.Event]) {
	globalLogger.Lock()
	defer globalLogger.Unlock()
	globalLogger.logger = logger
}

// getGlobalLogger may return nil, which logiface treats as disabled.
func getGlobalLogger() *logiface.Logger[logiface.Event] {
	globalLogger.RLock()
	defer globalLogger.RUnlock()
	return globalLogger.logger
}
