package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/crazyeights/internal/bot"
	"github.com/lox/crazyeights/internal/randutil"
	"github.com/lox/crazyeights/internal/simulator"
)

var titleStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#7D56F4")).
	Padding(0, 1).
	Bold(true)

type SimulateCmd struct {
	Tournaments   int    `kong:"default='1000',help='Number of tournaments to simulate'"`
	Players       int    `kong:"short='p',default='4',help='Players per tournament (2-7)'"`
	Seed          int64  `kong:"help='RNG seed (0 for random)'"`
	Workers       int    `kong:"help='Tournaments run in parallel (0 for one per CPU)'"`
	SeedEstimates bool   `kong:"help='Start opponent hand estimates at the dealt hand size'"`
	RandomSeats   int    `kong:"help='Number of seats, counted from the last, played by a random bot'"`
	WriteStats    string `kong:"help='Write a JSON summary to this file'"`
	LogLevel      string `kong:"default='warn',enum='debug,info,warn,error',help='Log level for stderr'"`
}

func (c *SimulateCmd) Run() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return err
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	clock := quartz.NewReal()
	seed := c.Seed
	if seed == 0 {
		seed = randutil.SeedFromClock(clock)
	}

	fmt.Println(titleStyle.Render(" ♠ ♥ Crazy Eights simulation ♦ ♣ "))
	fmt.Printf("Simulating %d tournaments of %d players (seed %d)\n", c.Tournaments, c.Players, seed)

	sim := simulator.New(simulator.Config{
		Tournaments: c.Tournaments,
		Players:     c.Players,
		Seed:        seed,
		Workers:     c.Workers,
		RandomSeats: c.RandomSeats,
		Bot:         bot.Options{SeedOpponentEstimates: c.SeedEstimates},
		Clock:       clock,
		Logger:      logger,
	})

	start := clock.Now()
	stats, err := sim.Run(setupSignalHandler(logger))
	if err != nil {
		return err
	}

	simulator.PrintSummary(os.Stdout, stats, c.Players)
	if c.WriteStats != "" {
		if err := simulator.WriteReport(c.WriteStats, simulator.NewReport(stats, c.Players, seed)); err != nil {
			return fmt.Errorf("failed to write stats: %w", err)
		}
		logger.Info("Wrote stats", "file", c.WriteStats)
	}
	fmt.Printf("\nCompleted in %s\n", clock.Since(start).Round(time.Millisecond))
	return nil
}
