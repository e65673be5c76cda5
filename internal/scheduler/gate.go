package scheduler

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Gate is a counting permit pool bounding how many tasks are inside the
// download region at once. Waiters are admitted in FIFO order.
type Gate struct {
	sem      *semaphore.Weighted
	capacity int
	inFlight atomic.Int64
	peak     atomic.Int64
}

// Permit is one unit of admission. Release must run on every exit path,
// which is why callers defer it right after Acquire.
type Permit struct {
	gate *Gate
	once sync.Once
}

func NewGate(capacity int) *Gate {
	capacity = max(capacity, 1)
	return &Gate{
		sem:      semaphore.NewWeighted(int64(capacity)),
		capacity: capacity,
	}
}

// Acquire blocks until a permit is free or ctx is done.
func (g *Gate) Acquire(ctx context.Context) (*Permit, error) {
	if err := g.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	current := g.inFlight.Add(1)
	for {
		peak := g.peak.Load()
		if current <= peak || g.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	return &Permit{gate: g}, nil
}

// Release returns the permit to the pool. Calling it more than once is a no-op.
func (p *Permit) Release() {
	p.once.Do(func() {
		p.gate.inFlight.Add(-1)
		p.gate.sem.Release(1)
	})
}

func (g *Gate) Capacity() int {
	return g.capacity
}

// InFlight reports how many permits are currently held.
func (g *Gate) InFlight() int {
	return int(g.inFlight.Load())
}

// Peak reports the highest number of permits held at the same time.
func (g *Gate) Peak() int {
	return int(g.peak.Load())
}
