package scheduler

import "sync/atomic"

// Counters aggregates per-file outcomes across tasks. Both values only grow.
type Counters struct {
	success atomic.Int64
	failure atomic.Int64
}

func (c *Counters) AddSuccess() {
	c.success.Add(1)
}

func (c *Counters) AddFailure() {
	c.failure.Add(1)
}

func (c *Counters) Snapshot() (succeeded, failed int) {
	return int(c.success.Load()), int(c.failure.Load())
}
