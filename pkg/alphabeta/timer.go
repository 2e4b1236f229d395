package alphabeta

import (
	"time"
)

// Wall-clock budget, used by the Limiter and the Timeout condition
type timer struct {
	start    time.Time
	deadline time.Time // zero if there is no time limit
}

func newTimer() *timer {
	return &timer{start: time.Now()}
}

// Start counting from now, negative budget disables the deadline
func (t *timer) reset(budget time.Duration) {
	t.start = time.Now()
	if budget < 0 {
		t.deadline = time.Time{}
	} else {
		t.deadline = t.start.Add(budget)
	}
}

func (t *timer) isSet() bool {
	return !t.deadline.IsZero()
}

// Check if the deadline has passed
func (t *timer) expired() bool {
	return t.isSet() && !time.Now().Before(t.deadline)
}

func (t *timer) elapsed() time.Duration {
	return time.Since(t.start)
}

// Elapsed time in milliseconds, at least 1 (safe to divide by)
func (t *timer) deltatime() int {
	return max(int(t.elapsed().Milliseconds()), 1)
}

// Negative values map to a disabled budget
func msToDuration(ms int) time.Duration {
	if ms < 0 {
		return -1
	}
	return time.Duration(ms) * time.Millisecond
}
