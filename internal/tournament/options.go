package tournament

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/crazyeights/internal/game"
	"github.com/lox/crazyeights/internal/gameid"
)

// Option configures a Tournament during creation
type Option func(*config)

type config struct {
	logger   *log.Logger
	clock    quartz.Clock
	bus      game.EventBus
	ids      *gameid.Generator // Built from the clock and the tournament RNG when unset
	maxGames int               // 0 means no limit
}

func defaultConfig() *config {
	return &config{
		logger: log.NewWithOptions(io.Discard, log.Options{}),
		clock:  quartz.NewReal(),
		bus:    game.NewEventBus(),
	}
}

// WithLogger sets the logger passed down to every game
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithClock sets the clock used for timings, ids and event timestamps
func WithClock(clock quartz.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithEventBus publishes the events of every game on bus
func WithEventBus(bus game.EventBus) Option {
	return func(c *config) {
		if bus != nil {
			c.bus = bus
		}
	}
}

// WithIDs sets the identifier generator
func WithIDs(ids *gameid.Generator) Option {
	return func(c *config) {
		if ids != nil {
			c.ids = ids
		}
	}
}

// WithMaxGames aborts the tournament with ErrGameLimit after n games
func WithMaxGames(n int) Option {
	return func(c *config) {
		c.maxGames = n
	}
}
