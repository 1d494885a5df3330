package window

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wrapsnake/internal/engine"
)

var key2Dir = map[ebiten.Key]engine.Direction{
	ebiten.KeyArrowUp:    engine.Up,
	ebiten.KeyW:          engine.Up,
	ebiten.KeyArrowDown:  engine.Down,
	ebiten.KeyS:          engine.Down,
	ebiten.KeyArrowLeft:  engine.Left,
	ebiten.KeyA:          engine.Left,
	ebiten.KeyArrowRight: engine.Right,
	ebiten.KeyD:          engine.Right,
}

// pressedDirections returns the directions whose keys went down this frame.
// The engine keeps only the last valid one.
func pressedDirections() []engine.Direction {
	var dirs []engine.Direction
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		if d, ok := key2Dir[k]; ok {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
