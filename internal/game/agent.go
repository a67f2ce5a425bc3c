package game

import "github.com/lox/crazyeights/internal/deck"

// TurnState is the read-only view handed to a controller on its turn. Only
// the acting player's hand is included.
type TurnState struct {
	GameID       string
	Self         PlayerID
	Hand         []deck.Card
	TopCard      deck.Card
	Declared     deck.Suit // NoSuit unless the top card is wild
	DrawPileSize int
	HandSizes    map[PlayerID]int
	History      History
}

// Playable returns the non-wild cards in hand that can be played now
func (s TurnState) Playable() []deck.Card {
	return PlayableCards(s.Hand, s.TopCard, s.Declared)
}

// Decision is a controller's answer for one turn: draw, or play Card (and
// declare Suit when Card is wild)
type Decision struct {
	Draw      bool
	Card      deck.Card
	Suit      deck.Suit
	Reasoning string // Human-readable explanation
}

// DrawDecision asks the game to draw a card
func DrawDecision(reasoning string) Decision {
	return Decision{Draw: true, Reasoning: reasoning}
}

// PlayDecision plays a non-wild card
func PlayDecision(card deck.Card, reasoning string) Decision {
	return Decision{Card: card, Reasoning: reasoning}
}

// WildDecision plays a wild card and declares the suit to follow
func WildDecision(card deck.Card, suit deck.Suit, reasoning string) Decision {
	return Decision{Card: card, Suit: suit, Reasoning: reasoning}
}

// Controller makes the decisions for one player, whether a bot or a human
// at the console. The game calls it synchronously and waits for the answer.
type Controller interface {
	// Begin is called after the deal of every game. Any per-game state
	// must be reset here.
	Begin(self PlayerID, opponents []PlayerID, handSize int)

	// Decide returns what to do this turn
	Decide(state TurnState) (Decision, error)

	// Observe receives the full history after every turn of every player
	Observe(history History)
}
