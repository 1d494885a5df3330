package window

import (
	"math"

	"wrapsnake/internal/engine"
)

type rect struct {
	x, y, w, h float64
}

func (r rect) contains(px, py int) bool {
	x, y := float64(px), float64(py)
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// cellRect is the on-screen square of c. inset shrinks it around its centre,
// 1 being a full cell.
func cellRect(c engine.Cell, cellSize int, inset, scale float64) rect {
	size := float64(cellSize) * inset * scale
	offset := float64(cellSize) * (1 - inset) / 2
	return rect{
		x: (float64(c.X*cellSize) + offset) * scale,
		y: (float64(c.Y*cellSize) + offset) * scale,
		w: size,
		h: size,
	}
}

// restartButton is centred horizontally a little below the board centre.
func restartButton(boardPx int, scale float64) rect {
	const w, h = 120.0, 32.0
	return rect{
		x: (float64(boardPx) - w) / 2 * scale,
		y: (float64(boardPx)/2 + 24) * scale,
		w: w * scale,
		h: h * scale,
	}
}

// fitScale is the largest scale at which a boardPx square fits the window.
func fitScale(outsideWidth, outsideHeight, boardPx int) float64 {
	sx := float64(outsideWidth) / float64(boardPx)
	sy := float64(outsideHeight) / float64(boardPx)
	return math.Min(sx, sy)
}
