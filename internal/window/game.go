// Package window runs the game in a desktop or mobile window with ebiten.
package window

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wrapsnake/internal/engine"
	"wrapsnake/internal/input"
	"wrapsnake/internal/session"
)

const (
	windowW = 1280
	windowH = 720
)

var (
	bgColor     = color.RGBA{24, 24, 28, 255}
	gridColor   = color.RGBA{40, 40, 48, 255}
	headColor   = color.RGBA{80, 220, 120, 255}
	bodyColor   = color.RGBA{60, 180, 100, 255}
	foodColor   = color.RGBA{230, 70, 70, 255}
	buttonColor = color.RGBA{70, 70, 90, 255}
)

const lineHeight = 20.0

// noTouch marks that no touch is being tracked.
const noTouch = ebiten.TouchID(-1)

type Game struct {
	sess     *session.Session
	cellSize int
	board    int

	score int
	over  bool

	inTitle      bool
	isFullscreen bool
	scaleFactor  float64
	foodPulse    float64

	swipe   *input.Swipe
	touchID ebiten.TouchID
	dragged bool

	log zerolog.Logger
}

// New builds the window game. The session hooks are registered here, so the
// session must be created through the returned options.
func New(cellSize int) (*Game, []session.Option) {
	g := &Game{
		cellSize:    cellSize,
		inTitle:     true,
		scaleFactor: 1.0,
		swipe:       input.NewSwipe(),
		touchID:     noTouch,
		log:         log.Logger.With().Str("component", "window").Logger(),
	}
	opts := []session.Option{
		session.OnScore(func(score int) { g.score = score }),
		session.OnOver(func(snap engine.Snapshot) { g.over = true }),
	}
	return g, opts
}

// Attach binds the session built with New's options.
func (g *Game) Attach(sess *session.Session) {
	g.sess = sess
	g.board = sess.Config().BoardSize
}

func (g *Game) boardPx() int {
	return g.board * g.cellSize
}

func (g *Game) restart() {
	if err := g.sess.Restart(); err != nil {
		g.log.Err(err).Msg("Restart")
		return
	}
	g.over = false
	g.inTitle = false
	g.foodPulse = 0
}

func (g *Game) Update() error {
	// Toggle full-screen/maximized with F key
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.isFullscreen = !g.isFullscreen
		if g.isFullscreen {
			ebiten.MaximizeWindow()
		} else {
			ebiten.RestoreWindow()
			ebiten.SetWindowSize(windowW, windowH)
		}
	}

	// Exit full-screen/maximized with Esc key
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.isFullscreen {
		g.isFullscreen = false
		ebiten.RestoreWindow()
		ebiten.SetWindowSize(windowW, windowH)
	}

	tapX, tapY, tapped := g.updatePointer()

	if g.inTitle {
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) || tapped {
			g.restart()
		}
		return nil
	}

	if g.over {
		restart := inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR)
		if tapped && restartButton(g.boardPx(), g.scaleFactor).contains(tapX, tapY) {
			restart = true
		}
		if restart {
			g.restart()
		}
		return nil
	}

	for _, d := range pressedDirections() {
		g.sess.Steer(d)
	}

	g.foodPulse += 0.05
	g.sess.Frame()
	return nil
}

// updatePointer feeds touch and mouse drags to the swipe tracker and reports
// a tap: a press released without having turned into a swipe.
func (g *Game) updatePointer() (x, y int, tapped bool) {
	if g.touchID == noTouch {
		if ids := inpututil.AppendJustPressedTouchIDs(nil); len(ids) > 0 {
			g.touchID = ids[0]
			g.dragged = false
			g.swipe.Begin(ebiten.TouchPosition(g.touchID))
		}
	}
	if g.touchID != noTouch {
		if inpututil.IsTouchJustReleased(g.touchID) {
			x, y = inpututil.TouchPositionInPreviousTick(g.touchID)
			tapped = !g.dragged
			g.touchID = noTouch
			g.swipe.End()
			return x, y, tapped
		}
		g.steerSwipe(ebiten.TouchPosition(g.touchID))
		return 0, 0, false
	}

	cx, cy := ebiten.CursorPosition()
	return g.mouse(
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		cx, cy,
	)
}

// mouse applies one tick of left button state. A press and release can both
// land in the same tick, which is a click.
func (g *Game) mouse(justPressed, justReleased, pressed bool, x, y int) (int, int, bool) {
	if justPressed {
		g.dragged = false
		g.swipe.Begin(x, y)
	}
	if justReleased {
		tapped := g.swipe.Active() && !g.dragged
		g.swipe.End()
		return x, y, tapped
	}
	if pressed && !justPressed {
		g.steerSwipe(x, y)
	}
	return 0, 0, false
}

func (g *Game) steerSwipe(x, y int) {
	d, ok := g.swipe.Move(x, y)
	if !ok {
		return
	}
	g.dragged = true
	if g.sess != nil && !g.inTitle && !g.over {
		g.sess.Steer(d)
	}
}

func (g *Game) fillRect(screen *ebiten.Image, r rect, c color.Color) {
	ebitenutil.DrawRect(screen, r.x, r.y, r.w, r.h, c)
}

func (g *Game) drawCell(screen *ebiten.Image, cell engine.Cell, inset float64, c color.Color) {
	g.fillRect(screen, cellRect(cell, g.cellSize, inset, g.scaleFactor), c)
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(bgColor)

	boardPx := float64(g.boardPx())
	s := g.scaleFactor

	// Grid lines
	for i := 0; i < g.board; i++ {
		p := float64(i*g.cellSize) * s
		g.fillRect(screen, rect{p, 0, s, boardPx * s}, gridColor)
		g.fillRect(screen, rect{0, p, boardPx * s, s}, gridColor)
	}

	if g.inTitle {
		lines := []string{
			"Snake!",
			"Eat food to grow. The board wraps at every edge.",
			"Arrow Keys/WASD or swipe: Move, F: Maximize, Esc: Restore",
			"Press Enter or Space, or tap, to start!",
		}
		g.printCentered(screen, lines, (boardPx-float64(len(lines))*lineHeight)/2)
		return
	}

	snap := g.sess.Snapshot()

	if snap.HasFood {
		pulse := 0.9 + 0.1*math.Sin(g.foodPulse)
		g.drawCell(screen, snap.Food, pulse, foodColor)
	}
	for i, c := range snap.Snake {
		if i == 0 {
			g.drawCell(screen, c, 1.0, headColor)
		} else {
			g.drawCell(screen, c, 0.9, bodyColor)
		}
	}

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Score: %d", g.score), int(10*s), int(10*s))

	if g.over {
		g.printCentered(screen, []string{fmt.Sprintf("Game Over! Score: %d", g.score), "Enter/R or tap Restart"}, boardPx/2-40)
		btn := restartButton(g.boardPx(), s)
		g.fillRect(screen, btn, buttonColor)
		ebitenutil.DebugPrintAt(screen, "Restart", int(btn.x+btn.w/2-21), int(btn.y+btn.h/2-8))
	}
}

// printCentered prints lines horizontally centred starting at top, in
// unscaled board pixels.
func (g *Game) printCentered(screen *ebiten.Image, lines []string, top float64) {
	boardPx := float64(g.boardPx())
	for i, line := range lines {
		approxWidth := float64(len(line)) * 6
		x := (boardPx - approxWidth) / 2
		y := top + float64(i)*lineHeight
		ebitenutil.DebugPrintAt(screen, line, int(x*g.scaleFactor), int(y*g.scaleFactor))
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	g.isFullscreen = ebiten.IsWindowMaximized()
	g.scaleFactor = fitScale(outsideWidth, outsideHeight, g.boardPx())
	size := int(float64(g.boardPx()) * g.scaleFactor)
	return size, size
}

// Run opens the window and blocks until it is closed.
func Run(g *Game) error {
	ebiten.SetWindowSize(windowW, windowH)
	ebiten.SetWindowTitle("Snake")
	ebiten.SetWindowResizable(true)
	return ebiten.RunGame(g)
}
