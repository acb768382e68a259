package progress

import (
	"fmt"
	"time"
)

// FormatDuration renders d the way run telemetry is logged: milliseconds
// below a second, then seconds, minutes and hours with two decimals.
func FormatDuration(d time.Duration) string {
	secs := d.Seconds()
	switch {
	case secs < 1:
		return fmt.Sprintf("%.0f ms", secs*1000)
	case secs < 60:
		return fmt.Sprintf("%.2f secs", secs)
	case secs < 3600:
		return fmt.Sprintf("%.2f mins", secs/60)
	}
	return fmt.Sprintf("%.2f hours", secs/3600)
}

// Remaining extrapolates the time left from the average time per completed
// unit. It is zero until at least one unit is done.
func Remaining(elapsed time.Duration, done, total int) time.Duration {
	if done <= 0 || total <= done {
		return 0
	}
	return time.Duration(float64(elapsed) / float64(done) * float64(total-done))
}

// Average divides d evenly across n units.
func Average(d time.Duration, n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return d / time.Duration(n)
}
