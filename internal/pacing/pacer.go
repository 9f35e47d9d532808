// Package pacing spaces out repeated calls to a target rate.
package pacing

import (
	"context"
	"math"
	"sync"
	"time"
)

// maxInterval is the longest spacing a Pacer will use.
const maxInterval = time.Duration(math.MaxInt64)

// Pacer hands out start times no closer together than 1/rate seconds.
// Unlike a token bucket it never lets a slow caller catch up with a burst:
// a call that arrives late starts at once and the schedule restarts from it.
//
// A nil *Pacer never waits.
type Pacer struct {
	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	next time.Time
}

// New returns a pacer for rate calls per second. A rate of zero or less
// returns nil, meaning unpaced. Rates so low that the spacing would not fit
// in a time.Duration are clamped to the longest one that does.
func New(rate float64) *Pacer {
	if rate <= 0 {
		return nil
	}
	interval := maxInterval
	if secs := float64(time.Second) / rate; secs < float64(math.MaxInt64) {
		interval = time.Duration(secs)
	}
	return &Pacer{
		interval: interval,
		now:      time.Now,
	}
}

// Interval is the minimum spacing between two starts.
func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}

// Next reserves the next start time. It may be in the past.
func (p *Pacer) Next() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	start := p.next
	if start.Before(now) {
		start = now
	}
	p.next = start.Add(p.interval)
	return start
}

// Wait blocks until the next reserved start time or until ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil {
		return ctx.Err()
	}
	d := time.Until(p.Next())
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
