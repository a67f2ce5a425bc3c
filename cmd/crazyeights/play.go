package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/mattn/go-isatty"

	"github.com/lox/crazyeights/internal/bot"
	"github.com/lox/crazyeights/internal/config"
	"github.com/lox/crazyeights/internal/console"
	"github.com/lox/crazyeights/internal/game"
	"github.com/lox/crazyeights/internal/randutil"
	"github.com/lox/crazyeights/internal/tournament"
)

type PlayCmd struct {
	Config   string `kong:"default='crazyeights.hcl',help='HCL config file (ignored when missing)'"`
	Players  int    `kong:"short='p',help='Number of players (2-7); asked for when unset'"`
	Humans   int    `kong:"default='1',help='Number of human players at the console'"`
	Seed     int64  `kong:"help='Seed for a reproducible tournament (0 for random)'"`
	Plain    bool   `kong:"help='Read plain lines from stdin instead of an interactive prompt'"`
	NoColor  bool   `kong:"help='Disable colour output'"`
	ShowAll  bool   `kong:"help='Show the table before every turn, not only before yours'"`
	MaxGames int    `kong:"help='Stop after N games (0 for unlimited)'"`
	LogFile  string `kong:"help='Write logs to this file'"`
	LogLevel string `kong:"help='Log level (debug|info|warn|error)'"`
}

func (c *PlayCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", c.Config, err)
	}

	logFile, err := os.OpenFile(cfg.Tournament.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() {
		if err := logFile.Close(); err != nil {
			log.Error("Failed to close log file", "error", err)
		}
	}()

	logger := log.NewWithOptions(logFile, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           cfg.Level(),
	})

	clock := quartz.NewReal()
	seed := cfg.Tournament.Seed
	if seed == 0 {
		seed = randutil.SeedFromClock(clock)
	}
	rng := randutil.New(seed)
	logger.Info("Starting tournament", "seed", seed, "config", c.Config)

	ui := console.New(os.Stdout, c.reader(), console.Options{
		NoColor:       c.NoColor,
		ShowAllStates: c.ShowAll,
	})
	ui.Welcome()

	botOpts := bot.Options{SeedOpponentEstimates: cfg.Tournament.SeedOpponentEstimates}
	players, err := c.players(cfg, ui, rng, tournament.SetupConfig{
		Players: c.Players,
		Humans:  c.Humans,
		Logger:  logger,
		Bot:     botOpts,
	})
	if quit(err) {
		return nil
	}
	if err != nil {
		return err
	}

	t, err := tournament.New(players, ui, rng,
		tournament.WithLogger(logger),
		tournament.WithClock(clock),
		tournament.WithMaxGames(cfg.Tournament.MaxGames))
	if err != nil {
		return err
	}

	_, err = t.Run(setupSignalHandler(logger))
	switch {
	case quit(err):
		ui.Announce("Goodbye.")
		return nil
	case errors.Is(err, tournament.ErrGameLimit):
		ui.Announce(fmt.Sprintf("Stopping after %d games.", t.Games()))
		return nil
	}
	return err
}

// applyFlags lets command line flags override the config file
func (c *PlayCmd) applyFlags(cfg *config.Config) {
	if c.Seed != 0 {
		cfg.Tournament.Seed = c.Seed
	}
	if c.LogLevel != "" {
		cfg.Tournament.LogLevel = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Tournament.LogFile = c.LogFile
	}
	if c.MaxGames != 0 {
		cfg.Tournament.MaxGames = c.MaxGames
	}
}

func (c *PlayCmd) reader() console.LineReader {
	if !c.Plain && isatty.IsTerminal(os.Stdin.Fd()) {
		return console.NewPromptReader(os.Stdin, os.Stdout, console.NewRenderer(os.Stdout, c.NoColor))
	}
	return console.NewScannerReader(os.Stdin, os.Stdout)
}

// players seats the players listed in the config file, or asks at the
// console when the file lists none
func (c *PlayCmd) players(cfg *config.Config, ui *console.UI, rng *rand.Rand, setup tournament.SetupConfig) ([]*game.Player, error) {
	if len(cfg.Players) == 0 {
		return tournament.Setup(ui, rng, setup)
	}

	seats := make([]tournament.Seat, len(cfg.Players))
	for i, p := range cfg.Players {
		seats[i] = tournament.Seat{Name: p.Name, Kind: p.PlayerKind()}
	}
	return tournament.NewPlayers(seats, ui, rng, setup)
}

// quit reports whether err means the player walked away
func quit(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, console.ErrInterrupted) || errors.Is(err, context.Canceled)
}
