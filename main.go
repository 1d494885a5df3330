package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"
	"github.com/i582/cfmt/cmd/cfmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"wrapsnake/internal/config"
	"wrapsnake/internal/session"
	"wrapsnake/internal/term"
	"wrapsnake/internal/window"
)

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if errors.Is(err, config.ErrUsage) {
		os.Exit(2)
	}
	if err != nil {
		fail("config:", err)
	}

	closeLog, err := setupLogging(cfg)
	if err != nil {
		fail("log:", err)
	}
	defer closeLog()

	switch cfg.Frontend {
	case config.FrontendTerm:
		err = runTerm(cfg)
	default:
		err = runWindow(cfg)
	}
	if err != nil {
		log.Err(err).Str("frontend", cfg.Frontend).Msg("Run")
		closeLog()
		fail(cfg.Frontend+":", err)
	}
}

// setupLogging points the global logger at stderr for the window frontend and
// at the -log file otherwise. The terminal frontend owns stderr, so without a
// file its logs are dropped.
func setupLogging(cfg config.Config) (func(), error) {
	zerolog.SetGlobalLevel(cfg.Level())

	var out io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, err
		}
		out = f
		closeFn = func() { f.Close() }
	case cfg.Frontend == config.FrontendTerm:
		out = io.Discard
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, NoColor: cfg.LogFile != ""})
	return closeFn, nil
}

func runWindow(cfg config.Config) error {
	g, opts := window.New(cfg.CellSize)
	sess, err := session.New(cfg, opts...)
	if err != nil {
		return err
	}
	g.Attach(sess)
	return window.Run(g)
}

func runTerm(cfg config.Config) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	ui, opts := term.New(s)
	sess, err := session.New(cfg, opts...)
	if err != nil {
		s.Fini()
		return err
	}
	ui.Attach(sess)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = ui.Run(ctx)
	s.Fini()
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	snap := sess.Snapshot()
	cfmt.Printf("{{Final score:}}::lightGreen|bold %d (length %d)\n", snap.Score, len(snap.Snake))
	return err
}

func fail(header string, err error) {
	cfmt.Printf("{{error:}}::lightRed|bold %s %v\n", header, err)
	os.Exit(1)
}
