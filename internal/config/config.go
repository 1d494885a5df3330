// Package config holds the runtime settings and their command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"wrapsnake/internal/engine"
)

const (
	FrontendWindow = "window"
	FrontendTerm   = "term"
)

// ErrUsage marks a command-line error the flag set has already printed
// together with the usage text.
var ErrUsage = errors.New("usage")

type Config struct {
	BoardSize     int
	InitialLength int
	Tick          time.Duration
	CellSize      int
	Seed          uint64 // 0 seeds from the clock
	Frontend      string
	LogFile       string
	LogLevel      string
}

func Default() Config {
	return Config{
		BoardSize:     20,
		InitialLength: 3,
		Tick:          100 * time.Millisecond,
		CellSize:      20,
		Frontend:      FrontendWindow,
		LogLevel:      "info",
	}
}

// Parse reads flags from args on top of the defaults and validates the
// result. Usage output goes to out.
func Parse(name string, args []string, out io.Writer) (Config, error) {
	cfg := Default()

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	fs.IntVar(&cfg.BoardSize, "size", cfg.BoardSize, "board width and height in cells")
	fs.IntVar(&cfg.InitialLength, "length", cfg.InitialLength, "initial snake length")
	fs.DurationVar(&cfg.Tick, "tick", cfg.Tick, "time between game ticks")
	fs.IntVar(&cfg.CellSize, "cell", cfg.CellSize, "cell size in pixels (window frontend)")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "food placement seed, 0 for random")
	fs.StringVar(&cfg.Frontend, "frontend", cfg.Frontend, "frontend to run: window or term")
	fs.StringVar(&cfg.LogFile, "log", cfg.LogFile, "write logs to this file")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, err
		}
		return cfg, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, cfg.Validate()
}

// Validate reports every problem with the configuration at once.
func (c Config) Validate() error {
	var merr *multierror.Error

	if c.BoardSize <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("size %d: %w", c.BoardSize, engine.ErrBoardSize))
	}
	if c.InitialLength < engine.MinLength ||
		(c.BoardSize > 0 && (c.InitialLength > c.BoardSize || c.InitialLength >= c.BoardSize*c.BoardSize)) {
		merr = multierror.Append(merr, fmt.Errorf("length %d on board %d: %w", c.InitialLength, c.BoardSize, engine.ErrSnakeLength))
	}
	if c.Tick <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("tick %v must be positive", c.Tick))
	}
	if c.CellSize <= 0 {
		merr = multierror.Append(merr, fmt.Errorf("cell size %d must be positive", c.CellSize))
	}
	if c.Frontend != FrontendWindow && c.Frontend != FrontendTerm {
		merr = multierror.Append(merr, fmt.Errorf("unknown frontend %q", c.Frontend))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		merr = multierror.Append(merr, fmt.Errorf("log level: %v", err))
	}

	return merr.ErrorOrNil()
}

func (c Config) Level() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return lvl
}
