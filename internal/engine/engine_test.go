package engine

import (
	"errors"
	"testing"
)

// seqRand replays a fixed sequence of draws, cycling when exhausted.
type seqRand struct {
	vals []int
	i    int
}

func (r *seqRand) Intn(n int) int {
	v := r.vals[r.i%len(r.vals)]
	r.i++
	return v % n
}

// place puts the engine into a running state with an explicit body.
func place(t *testing.T, e *Engine, size int, heading Direction, food Cell, body ...Cell) {
	t.Helper()
	if err := e.Reset(size, MinLength); err != nil {
		t.Fatalf("reset: %v", err)
	}
	e.snake = append([]Cell(nil), body...)
	e.heading, e.pending = heading, heading
	e.food, e.hasFood = food, true
}

func TestResetPlacesCentredSnake(t *testing.T) {
	e := New(WithSeed(1))
	if err := e.Reset(20, 3); err != nil {
		t.Fatalf("Reset returned %v", err)
	}

	s := e.Snapshot()
	want := []Cell{{10, 10}, {9, 10}, {8, 10}}
	if len(s.Snake) != len(want) {
		t.Fatalf("got snake %v, want %v", s.Snake, want)
	}
	for i := range want {
		if s.Snake[i] != want[i] {
			t.Errorf("snake[%d] = %v, want %v", i, s.Snake[i], want[i])
		}
	}
	if s.Heading != Right {
		t.Errorf("heading = %v, want right", s.Heading)
	}
	if s.Score != 0 || s.Status != Running {
		t.Errorf("got score %d status %v, want 0 running", s.Score, s.Status)
	}
	if !s.HasFood || onSnake(s.Food, s.Snake) {
		t.Errorf("food %v (present %v) must be placed off the snake", s.Food, s.HasFood)
	}
}

func TestResetRejectsBadConfiguration(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		length int
		err    error
	}{
		{"zero board", 0, 3, ErrBoardSize},
		{"negative board", -4, 3, ErrBoardSize},
		{"short snake", 20, 2, ErrSnakeLength},
		{"longer than a row", 5, 6, ErrSnakeLength},
		{"fills board", 3, 9, ErrSnakeLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithSeed(1))
			if err := e.Reset(10, 3); err != nil {
				t.Fatalf("initial reset: %v", err)
			}
			before := e.Snapshot()

			err := e.Reset(tt.size, tt.length)
			if !errors.Is(err, tt.err) {
				t.Fatalf("Reset(%d, %d) = %v, want %v", tt.size, tt.length, err, tt.err)
			}
			if after := e.Snapshot(); after.Board != before.Board || len(after.Snake) != len(before.Snake) {
				t.Errorf("failed reset changed state: %+v -> %+v", before, after)
			}
		})
	}
}

func TestResetWrapsLongSnakeOnSmallBoard(t *testing.T) {
	e := New(WithSeed(3))
	if err := e.Reset(4, 4); err != nil {
		t.Fatalf("Reset returned %v", err)
	}
	want := []Cell{{2, 2}, {1, 2}, {0, 2}, {3, 2}}
	got := e.Snapshot().Snake
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("snake[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestAdvanceMovesWithoutFood(t *testing.T) {
	e := New(WithRand(&seqRand{vals: []int{0}}))
	place(t, e, 20, Right, Cell{0, 0}, Cell{10, 10}, Cell{9, 10}, Cell{8, 10})

	if got := e.Advance(); got != Moved {
		t.Fatalf("Advance() = %v, want moved", got)
	}
	s := e.Snapshot()
	want := []Cell{{11, 10}, {10, 10}, {9, 10}}
	for i := range want {
		if s.Snake[i] != want[i] {
			t.Errorf("snake[%d] = %v, want %v", i, s.Snake[i], want[i])
		}
	}
	if len(s.Snake) != 3 || s.Score != 0 {
		t.Errorf("got length %d score %d, want 3 and 0", len(s.Snake), s.Score)
	}
}

func TestAdvanceWrapsEveryEdge(t *testing.T) {
	const n = 20
	tests := []struct {
		name    string
		heading Direction
		body    []Cell
		want    Cell
	}{
		{"right edge", Right, []Cell{{19, 10}, {18, 10}, {17, 10}}, Cell{0, 10}},
		{"left edge", Left, []Cell{{0, 10}, {1, 10}, {2, 10}}, Cell{19, 10}},
		{"bottom edge", Down, []Cell{{4, 19}, {4, 18}, {4, 17}}, Cell{4, 0}},
		{"top edge", Up, []Cell{{4, 0}, {4, 1}, {4, 2}}, Cell{4, 19}},
		{"corner right", Right, []Cell{{19, 19}, {18, 19}, {17, 19}}, Cell{0, 19}},
		{"corner up", Up, []Cell{{0, 0}, {0, 1}, {0, 2}}, Cell{0, 19}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithRand(&seqRand{vals: []int{7}}))
			place(t, e, n, tt.heading, Cell{10, 3}, tt.body...)

			if got := e.Advance(); got != Moved {
				t.Fatalf("Advance() = %v, want moved", got)
			}
			head := e.Snapshot().Head()
			if head != tt.want {
				t.Errorf("head = %v, want %v", head, tt.want)
			}
			if head.X < 0 || head.X >= n || head.Y < 0 || head.Y >= n {
				t.Errorf("head %v left the board", head)
			}
		})
	}
}

func TestAdvanceEatsFoodAndGrows(t *testing.T) {
	// Reset consumes the first pair; the first respawn draw (11,10) lands on
	// the new head and is rejected.
	e := New(WithRand(&seqRand{vals: []int{11, 10, 11, 10, 3, 4}}))
	place(t, e, 20, Right, Cell{11, 10}, Cell{10, 10}, Cell{9, 10}, Cell{8, 10})

	if got := e.Advance(); got != Ate {
		t.Fatalf("Advance() = %v, want ate", got)
	}
	s := e.Snapshot()
	want := []Cell{{11, 10}, {10, 10}, {9, 10}, {8, 10}}
	if len(s.Snake) != len(want) {
		t.Fatalf("got snake %v, want %v", s.Snake, want)
	}
	for i := range want {
		if s.Snake[i] != want[i] {
			t.Errorf("snake[%d] = %v, want %v", i, s.Snake[i], want[i])
		}
	}
	if s.Score != 1 {
		t.Errorf("score = %d, want 1", s.Score)
	}
	if s.Food != (Cell{3, 4}) {
		t.Errorf("food = %v, want (3,4)", s.Food)
	}
}

func TestWrapOntoFoodGrows(t *testing.T) {
	e := New(WithRand(&seqRand{vals: []int{5, 5}}))
	place(t, e, 20, Right, Cell{0, 10}, Cell{19, 10}, Cell{18, 10}, Cell{17, 10})

	if got := e.Advance(); got != Ate {
		t.Fatalf("Advance() = %v, want ate", got)
	}
	if s := e.Snapshot(); s.Head() != (Cell{0, 10}) || len(s.Snake) != 4 || s.Score != 1 {
		t.Errorf("got head %v length %d score %d, want (0,10) 4 1", s.Head(), len(s.Snake), s.Score)
	}
}

func TestLengthChangesOnlyOnFood(t *testing.T) {
	e := New(WithSeed(42))
	if err := e.Reset(12, 3); err != nil {
		t.Fatalf("Reset returned %v", err)
	}
	turns := []Direction{Down, Left, Up, Right}
	for tick := 0; tick < 500 && e.Status() == Running; tick++ {
		if tick%5 == 0 {
			e.SetDirection(turns[(tick/5)%len(turns)])
		}
		before := e.Snapshot()
		if onSnake(before.Food, before.Snake) {
			t.Fatalf("tick %d: food %v on snake before advance", tick, before.Food)
		}

		out := e.Advance()
		after := e.Snapshot()

		if out == Collided {
			break
		}
		ate := after.Head() == before.Food
		switch {
		case ate && len(after.Snake) != len(before.Snake)+1:
			t.Fatalf("tick %d: ate but length %d -> %d", tick, len(before.Snake), len(after.Snake))
		case !ate && len(after.Snake) != len(before.Snake):
			t.Fatalf("tick %d: did not eat but length %d -> %d", tick, len(before.Snake), len(after.Snake))
		case ate != (out == Ate):
			t.Fatalf("tick %d: outcome %v disagrees with head %v food %v", tick, out, after.Head(), before.Food)
		}
		if after.HasFood && onSnake(after.Food, after.Snake) {
			t.Fatalf("tick %d: food %v on snake after advance", tick, after.Food)
		}
		if dup := duplicate(after.Snake); dup != nil {
			t.Fatalf("tick %d: duplicate cell %v in %v", tick, *dup, after.Snake)
		}
	}
}

func TestSetDirection(t *testing.T) {
	tests := []struct {
		name    string
		heading Direction
		intent  Direction
		ok      bool
	}{
		{"reverse of right", Right, Left, false},
		{"reverse of up", Up, Down, false},
		{"perpendicular", Right, Up, true},
		{"other perpendicular", Down, Right, true},
		{"same", Down, Down, true},
		{"out of range", Right, Direction(9), false},
		{"none", Right, None, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(WithSeed(1))
			place(t, e, 20, tt.heading, Cell{0, 0}, Cell{5, 5}, Cell{4, 5}, Cell{3, 5})

			if got := e.SetDirection(tt.intent); got != tt.ok {
				t.Fatalf("SetDirection(%v) = %v, want %v", tt.intent, got, tt.ok)
			}
			e.Advance()
			want := tt.heading
			if tt.ok {
				want = tt.intent
			}
			if got := e.Heading(); got != want {
				t.Errorf("heading after tick = %v, want %v", got, want)
			}
		})
	}
}

func TestSetDirectionLastWriterWins(t *testing.T) {
	e := New(WithSeed(1))
	place(t, e, 20, Right, Cell{0, 0}, Cell{10, 10}, Cell{9, 10}, Cell{8, 10})

	e.SetDirection(Up)
	e.SetDirection(Down)
	// Left reverses the applied heading, not the pending one, so it is dropped.
	if e.SetDirection(Left) {
		t.Fatal("reversal of the current heading was accepted")
	}
	e.Advance()

	if got := e.Snapshot().Head(); got != (Cell{10, 11}) {
		t.Errorf("head = %v, want (10,11)", got)
	}
}

func TestSelfCollisionEndsGame(t *testing.T) {
	e := New(WithSeed(1))
	place(t, e, 20, Up, Cell{0, 0}, Cell{5, 5}, Cell{5, 6}, Cell{5, 7})

	if got := e.Advance(); got != Moved || e.Snapshot().Head() != (Cell{5, 4}) {
		t.Fatalf("Advance() = %v head %v, want moved to (5,4)", got, e.Snapshot().Head())
	}

	place(t, e, 20, Up, Cell{0, 0}, Cell{5, 5}, Cell{5, 6}, Cell{5, 7})
	e.heading, e.pending = Up, Down
	if got := e.Advance(); got != Collided {
		t.Fatalf("Advance() = %v, want collided", got)
	}
	if e.Status() != Over {
		t.Fatalf("status = %v, want over", e.Status())
	}

	before := e.Snapshot()
	for i := 0; i < 3; i++ {
		if got := e.Advance(); got != Idle {
			t.Errorf("Advance() after game over = %v, want idle", got)
		}
	}
	if e.SetDirection(Left) {
		t.Error("SetDirection accepted input after game over")
	}
	after := e.Snapshot()
	if after.Head() != before.Head() || after.Score != before.Score || len(after.Snake) != len(before.Snake) {
		t.Errorf("state changed after game over: %+v -> %+v", before, after)
	}

	if err := e.Reset(20, 3); err != nil {
		t.Fatalf("Reset returned %v", err)
	}
	if e.Status() != Running {
		t.Errorf("status after reset = %v, want running", e.Status())
	}
}

func TestCollisionWithTailCell(t *testing.T) {
	// A 2x2 loop: the head steps onto the tail that would be vacated this tick.
	e := New(WithSeed(1))
	place(t, e, 20, Up, Cell{9, 9}, Cell{1, 1}, Cell{2, 1}, Cell{2, 0}, Cell{1, 0})

	if got := e.Advance(); got != Collided {
		t.Fatalf("Advance() = %v, want collided", got)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	e := New(WithSeed(1))
	if err := e.Reset(20, 3); err != nil {
		t.Fatalf("Reset returned %v", err)
	}
	s := e.Snapshot()
	s.Snake[0] = Cell{0, 0}
	s.Score = 99

	if got := e.Snapshot(); got.Head() != (Cell{10, 10}) || got.Score != 0 {
		t.Errorf("mutating a snapshot changed the engine: %+v", got)
	}
}

func TestFoodFallsBackToFreeCells(t *testing.T) {
	// Every rejection draw hits the snake; the fallback must still find the
	// single free cell.
	e := New(WithRand(&seqRand{vals: []int{0}}))
	e.size = 2
	e.snake = []Cell{{0, 0}, {1, 0}, {1, 1}}
	e.placeFood()

	if !e.hasFood || e.food != (Cell{0, 1}) {
		t.Errorf("food = %v (present %v), want (0,1)", e.food, e.hasFood)
	}

	e.snake = append(e.snake, Cell{0, 1})
	e.placeFood()
	if e.hasFood {
		t.Errorf("full board still placed food at %v", e.food)
	}
}

func TestAdvanceBeforeReset(t *testing.T) {
	e := New()
	if got := e.Advance(); got != Idle {
		t.Errorf("Advance() before Reset = %v, want idle", got)
	}
	if e.Started() {
		t.Error("Started() = true before Reset")
	}
	if got := e.Snapshot().Head(); got != (Cell{}) {
		t.Errorf("Head() before Reset = %v, want the zero cell", got)
	}
}

func TestDirectionDeltaAndReverse(t *testing.T) {
	tests := []struct {
		dir     Direction
		delta   Cell
		reverse Direction
		valid   bool
	}{
		{Up, Cell{0, -1}, Down, true},
		{Down, Cell{0, 1}, Up, true},
		{Left, Cell{-1, 0}, Right, true},
		{Right, Cell{1, 0}, Left, true},
		{None, Cell{}, None, false},
		{Direction(-1), Cell{}, None, false},
		{Direction(9), Cell{}, None, false},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			if got := tt.dir.Delta(); got != tt.delta {
				t.Errorf("Delta() = %v, want %v", got, tt.delta)
			}
			if got := tt.dir.Reverse(); got != tt.reverse {
				t.Errorf("Reverse() = %v, want %v", got, tt.reverse)
			}
			if got := tt.dir.Valid(); got != tt.valid {
				t.Errorf("Valid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func onSnake(c Cell, snake []Cell) bool {
	for _, s := range snake {
		if s == c {
			return true
		}
	}
	return false
}

func duplicate(snake []Cell) *Cell {
	seen := make(map[Cell]bool, len(snake))
	for _, c := range snake {
		if seen[c] {
			return &c
		}
		seen[c] = true
	}
	return nil
}
