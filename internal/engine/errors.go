package engine

import "errors"

var (
	ErrBoardSize   = errors.New("board size must be positive")
	ErrSnakeLength = errors.New("initial snake length out of range")
)

// MinLength is the shortest snake Reset accepts.
const MinLength = 3
