package engine

import "fmt"

// Cell is a board coordinate.
type Cell struct{ X, Y int }

func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Direction is one of the four unit steps on the board. The zero value is
// None and is never a valid heading.
type Direction int

const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

var deltas = [...]Cell{
	Up:    {0, -1},
	Down:  {0, 1},
	Left:  {-1, 0},
	Right: {1, 0},
}

// Delta is the unit vector of d, or (0,0) for an invalid direction.
func (d Direction) Delta() Cell {
	if !d.Valid() {
		return Cell{}
	}
	return deltas[d]
}

func (d Direction) Reverse() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	}
	return None
}

// Valid reports whether d is one of the four unit directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case None:
		return "none"
	}
	return fmt.Sprintf("dir(%d)", int(d))
}

type Status int

const (
	Running Status = iota
	Over
)

func (s Status) String() string {
	if s == Over {
		return "over"
	}
	return "running"
}

// Outcome is what a single Advance did.
type Outcome int

const (
	Idle Outcome = iota
	Moved
	Ate
	Collided
)

func (o Outcome) String() string {
	switch o {
	case Moved:
		return "moved"
	case Ate:
		return "ate"
	case Collided:
		return "collided"
	}
	return "idle"
}

// Snapshot is a read-only copy of the engine state.
type Snapshot struct {
	Board   int
	Snake   []Cell
	Heading Direction
	Food    Cell
	HasFood bool
	Score   int
	Status  Status
}

// Head is the first snake cell, or the zero Cell before the engine has been
// reset.
func (s Snapshot) Head() Cell {
	if len(s.Snake) == 0 {
		return Cell{}
	}
	return s.Snake[0]
}
