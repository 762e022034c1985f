package mcts

import (
	"time"
)

// Search clock, optionally with a deadline
type searchClock struct {
	start    time.Time
	deadline time.Time
	bounded  bool
}

// Restart the clock, a negative movetime (ms) means no deadline
func (c *searchClock) restart(movetime int) {
	c.start = time.Now()
	c.bounded = movetime >= 0
	if c.bounded {
		c.deadline = c.start.Add(time.Duration(movetime) * time.Millisecond)
	}
}

func (c *searchClock) expired() bool {
	return c.bounded && !time.Now().Before(c.deadline)
}

// Elapsed milliseconds, at least 1
func (c *searchClock) elapsedMs() int {
	return max(int(time.Since(c.start).Milliseconds()), 1)
}
