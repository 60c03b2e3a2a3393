package ratelimit

import (
	"sync"
	"time"

	"github.com/amirhosseinghanipour/labcloud/internal/application/ports"
)

// SlidingWindow is an in-memory ports.RateGovernor for single-instance
// deployments: per identifier it keeps an ordered list of request timestamps
// and recomputes the valid count over a trailing interval, so bursts cannot
// hide at bucket boundaries. For multi-instance, back the port with a shared
// store instead.
type SlidingWindow struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	// maxWindow is the largest window Allow has seen; the sweeper must keep
	// at least that much history live.
	maxWindow time.Duration

	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

// sweepInterval is how often fully-expired identifiers are evicted.
const sweepInterval = 5 * time.Minute

// sweepFloor is the minimum trailing interval the sweeper considers live.
const sweepFloor = time.Minute

// NewSlidingWindow returns a governor with the background sweep running.
// Call Stop on shutdown.
func NewSlidingWindow() *SlidingWindow {
	g := &SlidingWindow{
		requests: make(map[string][]time.Time),
		now:      time.Now,
		stop:     make(chan struct{}),
	}
	go g.sweepLoop(sweepInterval)
	return g
}

// newSlidingWindowAt returns a governor with an injected clock and no sweep
// goroutine, for tests.
func newSlidingWindowAt(now func() time.Time) *SlidingWindow {
	return &SlidingWindow{
		requests: make(map[string][]time.Time),
		now:      now,
		stop:     make(chan struct{}),
	}
}

// Allow checks and records one request atomically per identifier: drop
// timestamps older than the window, deny if the survivors already fill it,
// otherwise append now. It never fails.
func (g *SlidingWindow) Allow(identifier string, maxRequests int, window time.Duration) ports.Decision {
	now := g.now()
	windowStart := now.Add(-window)

	g.mu.Lock()
	defer g.mu.Unlock()

	if window > g.maxWindow {
		g.maxWindow = window
	}

	times := g.requests[identifier]
	valid := times[:0]
	for _, t := range times {
		if t.After(windowStart) {
			valid = append(valid, t)
		}
	}

	if maxRequests > 0 && len(valid) >= maxRequests {
		g.requests[identifier] = valid
		reset := int(valid[0].Add(window).Sub(now).Seconds() + 0.999)
		if reset < 1 {
			reset = 1
		}
		return ports.Decision{Allowed: false, Remaining: 0, ResetSeconds: reset}
	}

	valid = append(valid, now)
	g.requests[identifier] = valid
	return ports.Decision{
		Allowed:      true,
		Remaining:    maxRequests - len(valid),
		ResetSeconds: int(window.Seconds()),
	}
}

// sweep drops identifiers whose entire window has elapsed, bounding the map.
// It runs on its own tick so the hot path stays O(one identifier's window).
func (g *SlidingWindow) sweep() {
	g.mu.Lock()
	defer g.mu.Unlock()

	keep := g.maxWindow
	if keep < sweepFloor {
		keep = sweepFloor
	}
	cutoff := g.now().Add(-keep)

	for id, times := range g.requests {
		valid := times[:0]
		for _, t := range times {
			if t.After(cutoff) {
				valid = append(valid, t)
			}
		}
		if len(valid) == 0 {
			delete(g.requests, id)
		} else {
			g.requests[id] = valid
		}
	}
}

func (g *SlidingWindow) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			g.sweep()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the background sweep.
func (g *SlidingWindow) Stop() {
	g.once.Do(func() { close(g.stop) })
}

var _ ports.RateGovernor = (*SlidingWindow)(nil)
