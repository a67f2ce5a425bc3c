package game

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/crazyeights/internal/deck"
)

// Option configures a Game during creation.
type Option func(*config)

type config struct {
	deck        *deck.Collection // If provided, dealt as-is instead of a shuffled deck
	firstPlayer int              // Seat index, -1 picks at random
	gameID      string
	logger      *log.Logger
	bus         EventBus
	clock       quartz.Clock
	reporter    Reporter
}

func defaultConfig() *config {
	return &config{
		firstPlayer: -1,
		logger:      log.NewWithOptions(io.Discard, log.Options{}),
		clock:       quartz.NewReal(),
		reporter:    NopReporter{},
	}
}

// WithDeck deals from a pre-arranged 52-card deck instead of shuffling one.
// The top card goes to the discard pile, the rest become the draw pile and
// hands are dealt from that, so the first cards of d (bottom first) end up
// in the first player's hand.
func WithDeck(d *deck.Collection) Option {
	return func(c *config) {
		c.deck = d
	}
}

// WithFirstPlayer fixes the seat index of the player who moves first
func WithFirstPlayer(seat int) Option {
	return func(c *config) {
		c.firstPlayer = seat
	}
}

// WithGameID sets the identifier used in logs and events
func WithGameID(id string) Option {
	return func(c *config) {
		c.gameID = id
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithEventBus publishes game events on bus
func WithEventBus(bus EventBus) Option {
	return func(c *config) {
		c.bus = bus
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithReporter sends table state, turns and scores to r
func WithReporter(r Reporter) Option {
	return func(c *config) {
		if r != nil {
			c.reporter = r
		}
	}
}
