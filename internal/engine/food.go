package engine

// rejectionFactor bounds rejection sampling to rejectionFactor*N² draws.
const rejectionFactor = 4

// placeFood puts the food on a uniformly random free cell. It redraws while
// the candidate is on the snake; once the draw budget is spent it picks from
// the enumerated free cells instead. A full board leaves no food.
func (e *Engine) placeFood() {
	cells := e.size * e.size
	for i := 0; i < rejectionFactor*cells; i++ {
		f := Cell{e.rng.Intn(e.size), e.rng.Intn(e.size)}
		if !e.occupied(f) {
			e.food, e.hasFood = f, true
			return
		}
	}

	taken := make(map[Cell]struct{}, len(e.snake))
	for _, s := range e.snake {
		taken[s] = struct{}{}
	}
	free := make([]Cell, 0, cells-len(taken))
	for y := 0; y < e.size; y++ {
		for x := 0; x < e.size; x++ {
			c := Cell{x, y}
			if _, ok := taken[c]; !ok {
				free = append(free, c)
			}
		}
	}
	if len(free) == 0 {
		e.hasFood = false
		return
	}
	e.food, e.hasFood = free[e.rng.Intn(len(free))], true
}
