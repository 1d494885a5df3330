// Package term runs the game inside a terminal with tcell.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wrapsnake/internal/engine"
	"wrapsnake/internal/session"
)

// FrameRate is how often the loop polls the session for a due tick.
const FrameRate = 16 * time.Millisecond

type action int

const (
	actNone action = iota
	actSteer
	actRestart
	actQuit
)

var key2Dir = map[tcell.Key]engine.Direction{
	tcell.KeyUp:    engine.Up,
	tcell.KeyDown:  engine.Down,
	tcell.KeyLeft:  engine.Left,
	tcell.KeyRight: engine.Right,
}

var rune2Dir = map[rune]engine.Direction{
	'w': engine.Up,
	's': engine.Down,
	'a': engine.Left,
	'd': engine.Right,
}

// keyAction maps a key press to what the loop should do with it.
func keyAction(k tcell.Key, r rune, over bool) (action, engine.Direction) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return actQuit, engine.None
	case tcell.KeyEnter:
		if over {
			return actRestart, engine.None
		}
		return actNone, engine.None
	case tcell.KeyRune:
		switch r {
		case 'q', 'Q':
			return actQuit, engine.None
		case 'r', 'R':
			if over {
				return actRestart, engine.None
			}
			return actNone, engine.None
		}
		if d, ok := rune2Dir[r]; ok {
			return actSteer, d
		}
		return actNone, engine.None
	}
	if d, ok := key2Dir[k]; ok {
		return actSteer, d
	}
	return actNone, engine.None
}

type UI struct {
	screen tcell.Screen
	sess   *session.Session
	frame  time.Duration

	score int
	over  bool

	log zerolog.Logger
}

// New builds the terminal UI on an initialised screen. The returned options
// must be passed to session.New so the UI sees score and game-over updates.
func New(screen tcell.Screen) (*UI, []session.Option) {
	u := &UI{
		screen: screen,
		frame:  FrameRate,
		log:    log.Logger.With().Str("component", "term").Logger(),
	}
	opts := []session.Option{
		session.OnScore(func(score int) { u.score = score }),
		session.OnOver(func(engine.Snapshot) { u.over = true }),
	}
	return u, opts
}

func (u *UI) Attach(sess *session.Session) {
	u.sess = sess
}

func (u *UI) draw() {
	drawGame(u.screen, u.sess.Snapshot(), u.score, u.over)
	u.screen.Show()
}

// Run drives the session until the player quits or ctx is done. It returns
// ctx.Err() in the latter case.
func (u *UI) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)

	eventCh := make(chan tcell.Event)
	go func() {
		for {
			ev := u.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventCh <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(u.frame)
	defer ticker.Stop()

	u.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if u.sess.Frame() {
				u.draw()
			}
		case ev := <-eventCh:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				u.screen.Sync()
				u.draw()
			case *tcell.EventKey:
				act, d := keyAction(ev.Key(), ev.Rune(), u.over)
				switch act {
				case actQuit:
					u.log.Info().Int("score", u.score).Msg("Quit")
					return nil
				case actRestart:
					if err := u.sess.Restart(); err != nil {
						u.log.Err(err).Msg("Restart")
						continue
					}
					u.over = false
					u.draw()
				case actSteer:
					u.sess.Steer(d)
				}
			}
		}
	}
}
