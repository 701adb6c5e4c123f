package sigevent

import "fmt"

// Clock selects the clock a timer measures. Values match the Linux clock ids.
type Clock int32

const (
	// ClockRealtime is settable wall-clock time.
	ClockRealtime Clock = 0
	// ClockMonotonic is time since an unspecified point, not settable, and
	// stopped while the system is suspended.
	ClockMonotonic Clock = 1
	// ClockProcessCPUTime is CPU time consumed by the process.
	ClockProcessCPUTime Clock = 2
	// ClockBoottime is like ClockMonotonic but includes suspend.
	ClockBoottime Clock = 7
	// ClockRealtimeAlarm is ClockRealtime that wakes a suspended system.
	ClockRealtimeAlarm Clock = 8
	// ClockBoottimeAlarm is ClockBoottime that wakes a suspended system.
	ClockBoottimeAlarm Clock = 9
)

func (c Clock) String() string {
	switch c {
	case ClockRealtime:
		return "realtime"
	case ClockMonotonic:
		return "monotonic"
	case ClockProcessCPUTime:
		return "process_cputime"
	case ClockBoottime:
		return "boottime"
	case ClockRealtimeAlarm:
		return "realtime_alarm"
	case ClockBoottimeAlarm:
		return "boottime_alarm"
	default:
		return fmt.Sprintf("Clock(%d)", int32(c))
	}
}
