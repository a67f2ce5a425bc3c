package bot

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/lox/crazyeights/internal/deck"
	"github.com/lox/crazyeights/internal/game"
)

// Bot adapts an Engine to game.Controller and explains each decision
type Bot struct {
	name   string
	engine *Engine
	logger *log.Logger
}

// New creates a bot controller
func New(name string, logger *log.Logger, opts Options) *Bot {
	return &Bot{
		name:   name,
		engine: NewEngine(opts),
		logger: logger.WithPrefix("bot").With("player", name),
	}
}

// Engine exposes the underlying decision engine
func (b *Bot) Engine() *Engine {
	return b.engine
}

// Begin resets the engine for a new game
func (b *Bot) Begin(self game.PlayerID, opponents []game.PlayerID, handSize int) {
	b.engine.Begin(self, opponents, handSize)
}

// Observe forwards the history to the engine
func (b *Bot) Observe(history game.History) {
	b.engine.Observe(history)
}

// Decide draws, plays a card or plays a wild card and declares a suit
func (b *Bot) Decide(state game.TurnState) (game.Decision, error) {
	thinking := &ThinkingContext{}
	e := b.engine
	e.Observe(state.History)
	e.SetHand(state.Hand)

	if reason := e.wildReason(); reason != "" {
		thinking.AddThought("Holding a wild card and " + reason)
	}

	if e.ShouldDraw(state.TopCard, state.Declared) {
		thinking.AddThought(fmt.Sprintf("Nothing follows %s", describeTop(state.TopCard, state.Declared)))
		return b.decided(game.DrawDecision(thinking.GetThoughts()), state)
	}

	card, err := e.PlayCard()
	if err != nil {
		return game.Decision{}, fmt.Errorf("%s: %w", b.name, err)
	}

	if !card.IsWild() {
		thinking.AddThought(fmt.Sprintf("Shedding %s (%d points)", card, card.PointValue()))
		return b.decided(game.PlayDecision(card, thinking.GetThoughts()), state)
	}

	suit := e.DeclareSuit(card)
	thinking.AddThought(fmt.Sprintf("Declaring %s", suit))
	return b.decided(game.WildDecision(card, suit, thinking.GetThoughts()), state)
}

func (b *Bot) decided(d game.Decision, state game.TurnState) (game.Decision, error) {
	b.logger.Debug("Bot decision",
		"game", state.GameID,
		"hand", len(state.Hand),
		"draw", d.Draw,
		"card", d.Card,
		"suit", d.Suit,
		"drawPileEstimate", b.engine.DrawPileEstimate(),
		"reasoning", d.Reasoning)
	return d, nil
}

func describeTop(top deck.Card, declared deck.Suit) string {
	if declared != deck.NoSuit {
		return fmt.Sprintf("declared %s", declared)
	}
	return top.String()
}

// ThinkingContext accumulates thoughts while a decision is made
type ThinkingContext struct {
	thoughts []string
}

// AddThought adds a thought to the thinking process
func (tc *ThinkingContext) AddThought(thought string) {
	tc.thoughts = append(tc.thoughts, thought)
}

// GetThoughts returns the complete stream of thoughts
func (tc *ThinkingContext) GetThoughts() string {
	if len(tc.thoughts) == 0 {
		return "No clear reasoning available"
	}
	return strings.Join(tc.thoughts, ". ")
}
