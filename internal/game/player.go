package game

import (
	"fmt"

	"github.com/lox/crazyeights/internal/deck"
)

// PlayerKind says who makes a player's decisions
type PlayerKind int

const (
	Bot PlayerKind = iota
	Human
)

// String returns the lower-case kind name used in configuration
func (k PlayerKind) String() string {
	if k == Human {
		return "human"
	}
	return "bot"
}

// Player is a seat in a tournament. ID and Name stay fixed across games;
// the hand is emptied before every deal.
type Player struct {
	ID         PlayerID
	Name       string
	Kind       PlayerKind
	Hand       *deck.Collection
	Controller Controller
}

// NewPlayer creates a player with an empty hand
func NewPlayer(id PlayerID, name string, kind PlayerKind, controller Controller) *Player {
	return &Player{
		ID:         id,
		Name:       name,
		Kind:       kind,
		Hand:       deck.NewCollection(fmt.Sprintf("%s_Hand", name)),
		Controller: controller,
	}
}

// IsHuman returns true for players controlled through the console
func (p *Player) IsHuman() bool {
	return p.Kind == Human
}

// ResetHand empties the player's hand before a new game
func (p *Player) ResetHand() {
	p.Hand.Clear()
}

func (p *Player) String() string {
	return p.Name
}

// opponentsOf returns the ids of every player except self, in seat order
func opponentsOf(players []*Player, self PlayerID) []PlayerID {
	ids := make([]PlayerID, 0, len(players)-1)
	for _, p := range players {
		if p.ID != self {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
