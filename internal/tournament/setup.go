package tournament

import (
	"fmt"
	"io"
	rand "math/rand/v2"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/crazyeights/internal/bot"
	"github.com/lox/crazyeights/internal/game"
)

// Seat describes one player before the tournament starts
type Seat struct {
	Name string // Bots without a name get one from the name pool
	Kind game.PlayerKind
}

// SetupConfig controls how players are created
type SetupConfig struct {
	Players int // Player count; asked for when outside [2,7]
	Humans  int // The first Humans seats are played at the console
	Logger  *log.Logger
	Bot     bot.Options
}

// NewPlayers creates players for seats with ids 1..n in seat order. Human
// seats are controlled through prompter.
func NewPlayers(seats []Seat, prompter game.Prompter, rng *rand.Rand, cfg SetupConfig) ([]*game.Player, error) {
	if !game.ValidPlayerCount(len(seats)) {
		return nil, fmt.Errorf("%w: got %d", game.ErrPlayerCount, len(seats))
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	pool := bot.NewNamePool(rng)
	for _, s := range seats {
		if s.Name != "" {
			pool.Reserve(s.Name)
		}
	}

	players := make([]*game.Player, len(seats))
	for i, s := range seats {
		id := game.PlayerID(i + 1)
		switch s.Kind {
		case game.Human:
			if prompter == nil {
				return nil, fmt.Errorf("seat %d is human but there is no console", i+1)
			}
			players[i] = game.NewPlayer(id, s.Name, game.Human, game.NewHumanController(prompter))
		default:
			name := s.Name
			if name == "" {
				name = pool.Next()
			}
			players[i] = game.NewPlayer(id, name, game.Bot, bot.New(name, logger, cfg.Bot))
		}
	}
	return players, nil
}

// Setup asks the presenter for the player count and the human players'
// names, then fills the remaining seats with bots. Out-of-range counts and
// empty names are asked for again.
func Setup(ui game.Presenter, rng *rand.Rand, cfg SetupConfig) ([]*game.Player, error) {
	n := cfg.Players
	for asked := false; !game.ValidPlayerCount(n); asked = true {
		if asked || n != 0 {
			ui.Announce(fmt.Sprintf("There can only be %d to %d players.", game.MinPlayers, game.MaxPlayers))
		}
		count, err := ui.RequestPlayerCount()
		if err != nil {
			return nil, fmt.Errorf("request player count: %w", err)
		}
		n = count
	}

	seats := make([]Seat, n)
	for i := range seats {
		if i >= cfg.Humans {
			seats[i] = Seat{Kind: game.Bot}
			continue
		}
		name, err := requestName(ui)
		if err != nil {
			return nil, err
		}
		seats[i] = Seat{Name: name, Kind: game.Human}
	}

	return NewPlayers(seats, ui, rng, cfg)
}

func requestName(ui game.Presenter) (string, error) {
	for {
		name, err := ui.RequestPlayerName()
		if err != nil {
			return "", fmt.Errorf("request player name: %w", err)
		}
		if name = strings.TrimSpace(name); name != "" {
			return name, nil
		}
	}
}
