package term

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"wrapsnake/internal/engine"
)

var (
	defStyle  = tcell.StyleDefault.Background(tcell.ColorReset).Foreground(tcell.ColorReset)
	boxStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlack)
	headStyle = tcell.StyleDefault.Foreground(tcell.ColorLightGreen).Background(tcell.ColorBlack)
	bodyStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen).Background(tcell.ColorBlack)
	foodStyle = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorBlack)
	overStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// cellWidth is how many terminal columns one board cell takes, which keeps
// the board roughly square in most fonts.
const cellWidth = 2

const (
	runeHead = '@'
	runeBody = tcell.RuneBlock
	runeFood = '#'
)

func drawText(s tcell.Screen, x, y int, style tcell.Style, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// drawBox draws a border whose inside is w by h terminal cells, with its top
// left corner at (x, y).
func drawBox(s tcell.Screen, x, y, w, h int, style tcell.Style) {
	x2, y2 := x+w+1, y+h+1
	for col := x + 1; col < x2; col++ {
		s.SetContent(col, y, tcell.RuneHLine, nil, style)
		s.SetContent(col, y2, tcell.RuneHLine, nil, style)
	}
	for row := y + 1; row < y2; row++ {
		s.SetContent(x, row, tcell.RuneVLine, nil, style)
		s.SetContent(x2, row, tcell.RuneVLine, nil, style)
	}
	s.SetContent(x, y, tcell.RuneULCorner, nil, style)
	s.SetContent(x2, y, tcell.RuneURCorner, nil, style)
	s.SetContent(x, y2, tcell.RuneLLCorner, nil, style)
	s.SetContent(x2, y2, tcell.RuneLRCorner, nil, style)
}

func drawCell(s tcell.Screen, c engine.Cell, r rune, style tcell.Style) {
	x, y := 1+c.X*cellWidth, 1+c.Y
	for i := 0; i < cellWidth; i++ {
		s.SetContent(x+i, y, r, nil, style)
	}
}

// drawGame renders the board at the top left of the screen with the score
// line underneath.
func drawGame(s tcell.Screen, snap engine.Snapshot, score int, over bool) {
	s.Clear()
	n := snap.Board
	drawBox(s, 0, 0, n*cellWidth, n, boxStyle)
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			drawCell(s, engine.Cell{X: x, Y: y}, ' ', boxStyle)
		}
	}

	if snap.HasFood {
		drawCell(s, snap.Food, runeFood, foodStyle)
	}
	for i := len(snap.Snake) - 1; i >= 0; i-- {
		if i == 0 {
			drawCell(s, snap.Snake[i], runeHead, headStyle)
		} else {
			drawCell(s, snap.Snake[i], runeBody, bodyStyle)
		}
	}

	drawText(s, 0, n+2, defStyle, fmt.Sprintf("Score: %d", score))
	if over {
		drawText(s, 0, n+3, overStyle, "Game over! r/enter: restart  q/esc: quit")
	}
}
