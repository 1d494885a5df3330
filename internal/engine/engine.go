// Package engine holds the snake game state and its per-tick transition.
//
// The engine is not safe for concurrent use. It has no notion of time: the
// caller decides when a tick happens by calling Advance.
package engine

import (
	"fmt"
	"time"

	"golang.org/x/exp/rand"
)

// Rand is the subset of a random source used for food placement.
type Rand interface {
	Intn(n int) int
}

type Option func(*Engine)

// WithRand replaces the random source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSeed seeds the default random source.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewSource(seed)) }
}

type Engine struct {
	size    int
	snake   []Cell
	heading Direction
	pending Direction
	food    Cell
	hasFood bool
	score   int
	status  Status
	started bool
	rng     Rand
}

func New(opts ...Option) *Engine {
	e := &Engine{status: Over}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	return e
}

// Reset discards the current game and starts a new one on a boardSize x
// boardSize torus with a horizontal snake of initialLength cells centred on
// the board and heading right. On error the previous state is kept.
func (e *Engine) Reset(boardSize, initialLength int) error {
	if boardSize <= 0 {
		return fmt.Errorf("reset %d: %w", boardSize, ErrBoardSize)
	}
	if initialLength < MinLength || initialLength > boardSize || initialLength >= boardSize*boardSize {
		return fmt.Errorf("reset length %d on board %d: %w", initialLength, boardSize, ErrSnakeLength)
	}

	mid := boardSize / 2
	snake := make([]Cell, initialLength)
	for i := range snake {
		snake[i] = Cell{wrap(mid-i, boardSize), mid}
	}

	e.size = boardSize
	e.snake = snake
	e.heading = Right
	e.pending = Right
	e.score = 0
	e.status = Running
	e.started = true
	e.placeFood()
	return nil
}

// SetDirection queues d for the next Advance. Reversals of the current
// heading, non-unit directions and input after the game ended are ignored.
func (e *Engine) SetDirection(d Direction) bool {
	if e.status == Over || !d.Valid() || d == e.heading.Reverse() {
		return false
	}
	e.pending = d
	return true
}

// Advance performs one tick.
func (e *Engine) Advance() Outcome {
	if e.status == Over {
		return Idle
	}

	e.heading = e.pending
	head, step := e.snake[0], e.heading.Delta()
	next := Cell{wrap(head.X+step.X, e.size), wrap(head.Y+step.Y, e.size)}

	// The tail still counts: it is only vacated after this check.
	if e.occupied(next) {
		e.status = Over
		return Collided
	}

	e.snake = append(e.snake, Cell{})
	copy(e.snake[1:], e.snake)
	e.snake[0] = next

	if e.hasFood && next == e.food {
		e.score++
		e.placeFood()
		return Ate
	}

	e.snake = e.snake[:len(e.snake)-1]
	return Moved
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Board:   e.size,
		Heading: e.heading,
		Food:    e.food,
		HasFood: e.hasFood,
		Score:   e.score,
		Status:  e.status,
	}
	if e.snake != nil {
		s.Snake = make([]Cell, len(e.snake))
		copy(s.Snake, e.snake)
	}
	return s
}

func (e *Engine) Score() int { return e.score }

func (e *Engine) Status() Status { return e.status }

func (e *Engine) Heading() Direction { return e.heading }

func (e *Engine) Len() int { return len(e.snake) }

// Started reports whether Reset has succeeded at least once.
func (e *Engine) Started() bool { return e.started }

func (e *Engine) occupied(c Cell) bool {
	for _, s := range e.snake {
		if s == c {
			return true
		}
	}
	return false
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
