package diag

import (
	"io"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// NewLogger returns a JSON logger writing to w at the given level.
func NewLogger(w io.Writer, level logiface.Level) *logiface.Logger[logiface.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	).Logger()
}

// DefaultRates bounds reports per call site.
var DefaultRates = map[time.Duration]int{
	time.Second: 10,
	time.Minute: 60,
}

// LoggerSink logs each report at error level, rate limited per location.
// Reports over the limit are counted, and the count is attached to the next
// report from the same location that gets through.
type LoggerSink struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
	mu      sync.Mutex
	dropped map[Location]int
}

// NewLoggerSink returns a sink writing to logger. Empty rates disable rate
// limiting.
func NewLoggerSink(logger *logiface.Logger[logiface.Event], rates map[time.Duration]int) *LoggerSink {
	s := &LoggerSink{
		logger:  logger,
		dropped: make(map[Location]int),
	}
	if len(rates) != 0 {
		s.limiter = catrate.NewLimiter(rates)
	}
	return s
}

func (s *LoggerSink) Report(loc Location, err error) {
	_, ok := s.limiter.Allow(loc)

	s.mu.Lock()
	if !ok {
		s.dropped[loc]++
		s.mu.Unlock()
		return
	}
	suppressed := s.dropped[loc]
	delete(s.dropped, loc)
	s.mu.Unlock()

	b := s.logger.Err().
		Err(err).
		Str(`file`, loc.File).
		Int(`line`, loc.Line).
		Str(`func`, loc.Function)
	if errno, ok := Errno(err); ok {
		b = b.Int(`errno`, int(errno))
	}
	if suppressed != 0 {
		b = b.Int(`suppressed`, suppressed)
	}
	b.Log(`system call failed`)
}
