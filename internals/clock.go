package internals

import "time"

// wallClockNowNs returns the current time in nanoseconds since the Unix
// epoch, matching the precision FileInfo timestamps are stored in.
func wallClockNowNs() int64 {
	return time.Now().UnixNano()
}
