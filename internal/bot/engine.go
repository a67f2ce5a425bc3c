package bot

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/lox/crazyeights/internal/deck"
	"github.com/lox/crazyeights/internal/game"
)

// ErrNoPlayableCard is returned by PlayCard when the hand holds nothing that
// can follow the top card
var ErrNoPlayableCard = errors.New("no playable card in hand")

// candidateWindow is how many cards from each ranking are compared
const candidateWindow = 3

// Options tune the heuristics
type Options struct {
	// SeedOpponentEstimates starts every opponent's estimated hand size at
	// the dealt hand size instead of zero.
	SeedOpponentEstimates bool
}

// Engine is the heuristic decision maker for one bot seat. It only knows
// its own hand and the public history; opponents' hand sizes and the size
// of the draw pile are estimated from the history. Every choice is a pure
// function of that state.
type Engine struct {
	opts      Options
	self      game.PlayerID
	opponents []game.PlayerID
	handSize  int

	hand      []deck.Card
	history   game.History
	processed int

	estimates map[game.PlayerID]int
	drawPile  int
}

// NewEngine creates an engine. Begin must be called before each game.
func NewEngine(opts Options) *Engine {
	return &Engine{
		opts:      opts,
		estimates: make(map[game.PlayerID]int),
	}
}

// Begin resets all per-game state
func (e *Engine) Begin(self game.PlayerID, opponents []game.PlayerID, handSize int) {
	e.self = self
	e.opponents = slices.Clone(opponents)
	e.handSize = handSize
	e.hand = nil
	e.history = nil
	e.processed = 0

	seed := 0
	if e.opts.SeedOpponentEstimates {
		seed = handSize
	}
	clear(e.estimates)
	for _, id := range opponents {
		e.estimates[id] = seed
	}
	e.drawPile = game.DeckSize - 1 - handSize*(len(opponents)+1)
}

// SetHand replaces the engine's view of its own hand
func (e *Engine) SetHand(hand []deck.Card) {
	e.hand = slices.Clone(hand)
}

// Hand returns the engine's view of its own hand
func (e *Engine) Hand() []deck.Card {
	return slices.Clone(e.hand)
}

// Observe records the latest history and folds every record not seen before
// into the estimates
func (e *Engine) Observe(history game.History) {
	if len(history) < e.processed {
		// A shorter history can only belong to a new game.
		e.Begin(e.self, e.opponents, e.handSize)
	}

	for _, turn := range history[e.processed:] {
		if turn.IsBootstrap() {
			continue
		}
		if turn.DrewCard {
			e.drawPile--
		}
		if turn.PlayerID == e.self {
			continue
		}
		estimate, ok := e.estimates[turn.PlayerID]
		if !ok {
			continue
		}
		if turn.DrewCard {
			e.estimates[turn.PlayerID] = estimate + 1
		} else {
			e.estimates[turn.PlayerID] = estimate - 1
		}
	}

	e.processed = len(history)
	e.history = history
}

// OpponentEstimate returns the estimated hand size of an opponent
func (e *Engine) OpponentEstimate(id game.PlayerID) int {
	return e.estimates[id]
}

// DrawPileEstimate returns the estimated number of cards left to draw
func (e *Engine) DrawPileEstimate() int {
	return e.drawPile
}

// ShouldDraw reports whether to draw rather than play
func (e *Engine) ShouldDraw(top deck.Card, declared deck.Suit) bool {
	if e.ShouldPlayWild() {
		return false
	}
	return len(game.PlayableCards(e.hand, top, declared)) == 0
}

// ShouldPlayWild reports whether a wild card should be played now, as a
// finishing or blocking move
func (e *Engine) ShouldPlayWild() bool {
	return e.wildReason() != ""
}

func (e *Engine) wildReason() string {
	if len(game.WildCards(e.hand)) == 0 {
		return ""
	}
	if len(e.hand) == 2 {
		return "two cards left"
	}
	if e.drawPile < 2 {
		return fmt.Sprintf("draw pile nearly empty (~%d)", e.drawPile)
	}
	for _, id := range e.opponents {
		if e.estimates[id] == 1 {
			return fmt.Sprintf("opponent %d looks down to one card", id)
		}
	}
	return ""
}

// PlayCard chooses the card to play on the current top of the discard pile.
// The hand is not modified.
func (e *Engine) PlayCard() (deck.Card, error) {
	if e.ShouldPlayWild() {
		return game.WildCards(e.hand)[0], nil
	}

	playable := game.PlayableCards(e.hand, e.history.TopCard(), e.history.ActiveSuit())
	if len(playable) == 0 {
		return deck.Card{}, ErrNoPlayableCard
	}

	byValue := rankByValue(playable)
	if len(playable) <= 2 {
		return byValue[0], nil
	}

	common := rankByCommonality(playable)[:candidateWindow]
	for _, card := range byValue[:candidateWindow] {
		if slices.Contains(common, card) {
			return card, nil
		}
	}
	return byValue[0], nil
}

// DeclareSuit chooses the suit to declare after playing the wild card played
func (e *Engine) DeclareSuit(played deck.Card) deck.Suit {
	ranked := e.rankSuits(played)

	for i := len(e.history) - 1; i >= 0 && i >= len(e.history)-candidateWindow; i-- {
		turn := e.history[i]
		if turn.IsBootstrap() || turn.PlayerID == e.self {
			continue
		}
		if turn.Declared != deck.NoSuit && e.estimates[turn.PlayerID] == 1 && turn.Declared == ranked[0] {
			return ranked[1]
		}
	}
	return ranked[0]
}

// rankSuits orders the suits by how many hand cards hold them, excluding one
// copy of played. Ties keep DeclarationOrder.
func (e *Engine) rankSuits(played deck.Card) []deck.Suit {
	counts := make(map[deck.Suit]int, len(deck.Suits))
	skipped := false
	for _, card := range e.hand {
		if card == played && !skipped {
			skipped = true
			continue
		}
		counts[card.Suit]++
	}

	ranked := slices.Clone(deck.DeclarationOrder)
	slices.SortStableFunc(ranked, func(a, b deck.Suit) int {
		return cmp.Compare(counts[b], counts[a])
	})
	return ranked
}

// rankByValue orders cards by point value, highest first
func rankByValue(cards []deck.Card) []deck.Card {
	ranked := slices.Clone(cards)
	slices.SortStableFunc(ranked, func(a, b deck.Card) int {
		return cmp.Compare(b.PointValue(), a.PointValue())
	})
	return ranked
}

// rankByCommonality orders cards by how well they connect to the other
// candidates: 2 points per identical card, 1 per card this one could follow
func rankByCommonality(cards []deck.Card) []deck.Card {
	scores := make([]int, len(cards))
	for i, c1 := range cards {
		for j, c2 := range cards {
			switch {
			case i == j:
			case c1 == c2:
				scores[i] += 2
			case game.CanPlay(c1, c2, deck.NoSuit):
				scores[i]++
			}
		}
	}

	idx := make([]int, len(cards))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, b int) int {
		return cmp.Compare(scores[b], scores[a])
	})

	ranked := make([]deck.Card, len(cards))
	for i, k := range idx {
		ranked[i] = cards[k]
	}
	return ranked
}
