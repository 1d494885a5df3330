// Package schedule gates per-frame callbacks down to a fixed tick cadence.
//
// Hosts call Due once per rendered frame. Frames that arrive before the
// interval has elapsed are coalesced: they return false and nothing queues up.
package schedule

import "time"

// DefaultInterval is the tick period, about 10 Hz.
const DefaultInterval = 100 * time.Millisecond

type Gate struct {
	interval time.Duration
	last     time.Time
	armed    bool
}

func NewGate(interval time.Duration) *Gate {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Gate{interval: interval}
}

func (g *Gate) Interval() time.Duration {
	return g.interval
}

// Arm starts a new window at now. The first tick is due one interval later.
func (g *Gate) Arm(now time.Time) {
	g.last = now
	g.armed = true
}

// Disarm makes the next Due call re-arm instead of firing.
func (g *Gate) Disarm() {
	g.armed = false
}

// Due reports whether a tick should run for the frame at now. At most one
// tick fires per elapsed interval; a long stall yields a single tick, not a
// burst.
func (g *Gate) Due(now time.Time) bool {
	if !g.armed {
		g.Arm(now)
		return false
	}
	if now.Sub(g.last) < g.interval {
		return false
	}
	g.last = now
	return true
}
