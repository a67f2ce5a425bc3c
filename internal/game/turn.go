package game

import "github.com/lox/crazyeights/internal/deck"

// PlayerID is a player's stable identity within a tournament
type PlayerID int

// NoPlayer marks the bootstrap history record that carries the first discard
const NoPlayer PlayerID = 0

// PlayerTurn records what one player did on their turn: either they drew a
// card or they played one. When the played card is wild, Declared holds the
// suit the next player must follow.
type PlayerTurn struct {
	PlayerID PlayerID
	DrewCard bool
	Played   deck.Card
	Declared deck.Suit
}

// IsBootstrap reports whether t is the synthetic record for the first discard
func (t PlayerTurn) IsBootstrap() bool {
	return t.PlayerID == NoPlayer
}

// IsPlay reports whether a card was placed on the discard pile
func (t PlayerTurn) IsPlay() bool {
	return !t.Played.IsZero()
}

// History is the ordered log of every turn taken in a game. It is only ever
// appended to by the game; everyone else gets a copy.
type History []PlayerTurn

// Clone returns an independent copy of h
func (h History) Clone() History {
	out := make(History, len(h))
	copy(out, h)
	return out
}

// Last returns the most recent record
func (h History) Last() (PlayerTurn, bool) {
	if len(h) == 0 {
		return PlayerTurn{}, false
	}
	return h[len(h)-1], true
}

// LastPlay returns the most recent record that placed a card, including the
// bootstrap record
func (h History) LastPlay() (PlayerTurn, bool) {
	for i := len(h) - 1; i >= 0; i-- {
		if h[i].IsPlay() {
			return h[i], true
		}
	}
	return PlayerTurn{}, false
}

// TopCard returns the card currently on top of the discard pile
func (h History) TopCard() deck.Card {
	t, _ := h.LastPlay()
	return t.Played
}

// ActiveSuit returns the suit declared by the last play when it was a wild
// card, or NoSuit. Draws in between do not clear a declaration.
func (h History) ActiveSuit() deck.Suit {
	t, ok := h.LastPlay()
	if !ok || !t.Played.IsWild() {
		return deck.NoSuit
	}
	return t.Declared
}
