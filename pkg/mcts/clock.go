package mcts

import "time"

// Wall clock of a single search, with an optional deadline
type searchClock struct {
	started  time.Time
	deadline time.Time
	bounded  bool
}

// Restart the clock, movetime in milliseconds, negative means no deadline
func (c *searchClock) restart(movetime int) {
	c.started = time.Now()
	c.bounded = movetime >= 0
	if c.bounded {
		c.deadline = c.started.Add(time.Duration(movetime) * time.Millisecond)
	}
}

func (c *searchClock) expired() bool {
	return c.bounded && !time.Now().Before(c.deadline)
}

// Milliseconds since restart, never 0 so rates can divide by it
func (c *searchClock) elapsedMs() uint32 {
	return uint32(max(time.Since(c.started).Milliseconds(), 1))
}
