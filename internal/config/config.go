// Package config loads the optional HCL file that describes a tournament.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/lox/crazyeights/internal/game"
)

const (
	KindHuman = "human"
	KindBot   = "bot"

	DefaultLogLevel = "info"
	DefaultLogFile  = "crazyeights.log"
)

// Config represents the complete configuration file
type Config struct {
	Tournament TournamentSettings
	Players    []PlayerConfig
}

// TournamentSettings contains tournament-level configuration
type TournamentSettings struct {
	Seed                  int64  `hcl:"seed,optional"` // 0 seeds from the clock
	LogLevel              string `hcl:"log_level,optional"`
	LogFile               string `hcl:"log_file,optional"`
	SeedOpponentEstimates bool   `hcl:"seed_opponent_estimates,optional"`
	MaxGames              int    `hcl:"max_games,optional"`
}

// file is the on-disk shape; the tournament block is optional
type file struct {
	Tournament *TournamentSettings `hcl:"tournament,block"`
	Players    []PlayerConfig      `hcl:"player,block"`
}

// PlayerConfig defines one seat. Seats are filled in file order.
type PlayerConfig struct {
	Name string `hcl:"name,label"`
	Kind string `hcl:"kind,optional"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Tournament: TournamentSettings{
			LogLevel: DefaultLogLevel,
			LogFile:  DefaultLogFile,
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	cfg := Config{Players: raw.Players}
	if raw.Tournament != nil {
		cfg.Tournament = *raw.Tournament
	}

	if cfg.Tournament.LogLevel == "" {
		cfg.Tournament.LogLevel = DefaultLogLevel
	}
	if cfg.Tournament.LogFile == "" {
		cfg.Tournament.LogFile = DefaultLogFile
	}
	for i := range cfg.Players {
		if cfg.Players[i].Kind == "" {
			cfg.Players[i].Kind = KindBot
		}
		cfg.Players[i].Kind = strings.ToLower(cfg.Players[i].Kind)
	}

	return &cfg, nil
}

// Validate checks the configuration for values the game cannot use
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Tournament.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Tournament.LogLevel, err)
	}
	if c.Tournament.MaxGames < 0 {
		return fmt.Errorf("max_games must not be negative")
	}

	if len(c.Players) == 0 {
		return nil
	}
	if !game.ValidPlayerCount(len(c.Players)) {
		return fmt.Errorf("%w: %d players configured", game.ErrPlayerCount, len(c.Players))
	}

	seen := make(map[string]bool)
	for _, p := range c.Players {
		if strings.TrimSpace(p.Name) == "" {
			return fmt.Errorf("player names must not be empty")
		}
		if seen[p.Name] {
			return fmt.Errorf("player %s: duplicate name", p.Name)
		}
		seen[p.Name] = true

		if p.Kind != KindHuman && p.Kind != KindBot {
			return fmt.Errorf("player %s: invalid kind %s", p.Name, p.Kind)
		}
	}
	return nil
}

// Level returns the parsed log level, falling back to info
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.Tournament.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Humans counts the configured human seats
func (c *Config) Humans() int {
	n := 0
	for _, p := range c.Players {
		if p.Kind == KindHuman {
			n++
		}
	}
	return n
}

// PlayerKind maps a configured kind onto the game's player kinds
func (p PlayerConfig) PlayerKind() game.PlayerKind {
	if p.Kind == KindHuman {
		return game.Human
	}
	return game.Bot
}
