package bot

import (
	rand "math/rand/v2"

	"github.com/lox/crazyeights/internal/deck"
	"github.com/lox/crazyeights/internal/game"
)

// RandBot plays a uniformly random legal card and only draws when it has
// nothing to play. It is a baseline opponent for simulations.
type RandBot struct {
	rng *rand.Rand
}

// NewRandBot creates a new RandBot instance
func NewRandBot(rng *rand.Rand) *RandBot {
	return &RandBot{rng: rng}
}

func (r *RandBot) Begin(game.PlayerID, []game.PlayerID, int) {}

func (r *RandBot) Observe(game.History) {}

func (r *RandBot) Decide(state game.TurnState) (game.Decision, error) {
	var legal []deck.Card
	for _, c := range state.Hand {
		if game.IsLegal(c, state.TopCard, state.Declared) {
			legal = append(legal, c)
		}
	}
	if len(legal) == 0 {
		return game.DrawDecision("rand-bot nothing to play"), nil
	}

	card := legal[r.rng.IntN(len(legal))]
	if card.IsWild() {
		suit := deck.Suits[r.rng.IntN(len(deck.Suits))]
		return game.WildDecision(card, suit, "rand-bot random wild"), nil
	}
	return game.PlayDecision(card, "rand-bot random card"), nil
}
