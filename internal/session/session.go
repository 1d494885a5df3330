// Package session drives one engine from host frames: it gates ticks to the
// configured cadence, forwards steering input and reports score changes and
// the end of the game to the host.
package session

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wrapsnake/internal/config"
	"wrapsnake/internal/engine"
	"wrapsnake/internal/schedule"
)

type Option func(*Session)

// OnScore is called with the new score on restart and whenever food is eaten.
func OnScore(fn func(score int)) Option {
	return func(s *Session) { s.onScore = fn }
}

// OnOver is called once when the snake collides with itself.
func OnOver(fn func(engine.Snapshot)) Option {
	return func(s *Session) { s.onOver = fn }
}

func WithClock(c schedule.Clock) Option {
	return func(s *Session) { s.clock = c }
}

func WithEngine(e *engine.Engine) Option {
	return func(s *Session) { s.engine = e }
}

func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

type Session struct {
	cfg    config.Config
	engine *engine.Engine
	gate   *schedule.Gate
	clock  schedule.Clock
	log    zerolog.Logger
	games  int

	onScore func(int)
	onOver  func(engine.Snapshot)
}

func New(cfg config.Config, opts ...Option) (*Session, error) {
	s := &Session{
		cfg:   cfg,
		gate:  schedule.NewGate(cfg.Tick),
		clock: schedule.SystemClock{},
		log:   log.Logger.With().Str("component", "session").Logger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		var eopts []engine.Option
		if cfg.Seed != 0 {
			eopts = append(eopts, engine.WithSeed(cfg.Seed))
		}
		s.engine = engine.New(eopts...)
	}

	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart throws the current game away and starts a fresh one.
func (s *Session) Restart() error {
	if err := s.engine.Reset(s.cfg.BoardSize, s.cfg.InitialLength); err != nil {
		return fmt.Errorf("restart: %w", err)
	}
	s.gate.Arm(s.clock.Now())
	s.games++
	s.log.Info().
		Int("game", s.games).
		Int("board", s.cfg.BoardSize).
		Int("length", s.cfg.InitialLength).
		Msg("New game")
	s.emitScore()
	return nil
}

// Steer queues a direction for the next tick.
func (s *Session) Steer(d engine.Direction) {
	if !s.engine.SetDirection(d) {
		s.log.Debug().
			Stringer("intent", d).
			Stringer("heading", s.engine.Heading()).
			Stringer("status", s.engine.Status()).
			Msg("Intent ignored")
	}
}

// Frame is called once per host frame. It advances the game when a tick is
// due and reports whether it did.
func (s *Session) Frame() bool {
	return s.FrameAt(s.clock.Now())
}

func (s *Session) FrameAt(now time.Time) bool {
	if s.engine.Status() == engine.Over {
		return false
	}
	if !s.gate.Due(now) {
		return false
	}

	switch out := s.engine.Advance(); out {
	case engine.Ate:
		s.log.Debug().Int("score", s.engine.Score()).Int("len", s.engine.Len()).Msg("Food eaten")
		s.emitScore()
	case engine.Collided:
		snap := s.engine.Snapshot()
		s.log.Info().Int("score", snap.Score).Int("len", len(snap.Snake)).Stringer("head", snap.Head()).Msg("Game over")
		s.gate.Disarm()
		if s.onOver != nil {
			s.onOver(snap)
		}
	}
	return true
}

func (s *Session) Snapshot() engine.Snapshot {
	return s.engine.Snapshot()
}

func (s *Session) Over() bool {
	return s.engine.Status() == engine.Over
}

func (s *Session) Config() config.Config {
	return s.cfg
}

func (s *Session) emitScore() {
	if s.onScore != nil {
		s.onScore(s.engine.Score())
	}
}
