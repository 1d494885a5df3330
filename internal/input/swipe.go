// Package input turns raw pointer movement into direction intents.
package input

import (
	"github.com/rs/zerolog/log"

	"wrapsnake/internal/engine"
)

// SwipeThreshold is how far a touch must travel before it counts as a swipe.
const SwipeThreshold = 20

// Swipe classifies a single pointer drag by its dominant axis.
type Swipe struct {
	Threshold int

	active bool
	x0, y0 int
}

func NewSwipe() *Swipe {
	return &Swipe{Threshold: SwipeThreshold}
}

func (s *Swipe) Begin(x, y int) {
	s.active = true
	s.x0, s.y0 = x, y
}

// Move reports a direction once the drag from the start point exceeds the
// threshold on either axis. Measurement then restarts from (x, y), so one
// long drag can turn several times.
func (s *Swipe) Move(x, y int) (engine.Direction, bool) {
	if !s.active {
		return engine.None, false
	}
	dx, dy := x-s.x0, y-s.y0
	if abs(dx) <= s.Threshold && abs(dy) <= s.Threshold {
		return engine.None, false
	}

	var d engine.Direction
	switch {
	case abs(dx) >= abs(dy) && dx > 0:
		d = engine.Right
	case abs(dx) >= abs(dy):
		d = engine.Left
	case dy > 0:
		d = engine.Down
	default:
		d = engine.Up
	}
	log.Debug().Int("dx", dx).Int("dy", dy).Stringer("dir", d).Msg("Swipe")
	s.x0, s.y0 = x, y
	return d, true
}

func (s *Swipe) End() {
	s.active = false
}

func (s *Swipe) Active() bool {
	return s.active
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
