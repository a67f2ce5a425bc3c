package game

import (
	"errors"
	"fmt"

	"github.com/lox/crazyeights/internal/deck"
)

var (
	// ErrPlayerCount is returned when a game or tournament is created with
	// fewer than MinPlayers or more than MaxPlayers players
	ErrPlayerCount = fmt.Errorf("player count must be between %d and %d", MinPlayers, MaxPlayers)

	// ErrWrongState is returned when an operation is called out of order
	ErrWrongState = errors.New("operation not allowed in current game state")

	// ErrContract marks a controller or caller breaking the engine's rules.
	// These are programming errors, not user mistakes.
	ErrContract = errors.New("contract violation")

	// ErrMissingSuit is returned when a wild card is played without a suit
	ErrMissingSuit = fmt.Errorf("%w: wild card played without declaring a suit", ErrContract)

	// ErrUnexpectedSuit is returned when a suit is declared for a non-wild card
	ErrUnexpectedSuit = fmt.Errorf("%w: suit declared for a non-wild card", ErrContract)

	// ErrConservation is returned when cards appear or vanish during a game
	ErrConservation = errors.New("card conservation violated")
)

// CheatingError is returned when a player plays a card they do not hold.
// It ends the tournament.
type CheatingError struct {
	PlayerID PlayerID
	Player   string
	Card     deck.Card
}

func (e *CheatingError) Error() string {
	return fmt.Sprintf("%s attempted to cheat: %s is not in their hand", e.Player, e.Card)
}

// IllegalPlayError is returned when a held card cannot follow the top card
type IllegalPlayError struct {
	PlayerID PlayerID
	Player   string
	Card     deck.Card
	Top      deck.Card
	Declared deck.Suit
}

func (e *IllegalPlayError) Error() string {
	if e.Declared != deck.NoSuit {
		return fmt.Sprintf("%s played %s but %s was declared", e.Player, e.Card, e.Declared)
	}
	return fmt.Sprintf("%s played %s which cannot follow %s", e.Player, e.Card, e.Top)
}

// IsFatal reports whether err must end the tournament
func IsFatal(err error) bool {
	var cheat *CheatingError
	var illegal *IllegalPlayError
	return errors.As(err, &cheat) || errors.As(err, &illegal)
}
