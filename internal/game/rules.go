package game

import "github.com/lox/crazyeights/internal/deck"

const (
	MinPlayers = 2
	MaxPlayers = 7
	DeckSize   = 52
)

// HandSize returns the number of cards dealt to each player
func HandSize(players int) int {
	if players == 2 {
		return 7
	}
	return 5
}

// ValidPlayerCount reports whether a game can be played with n players
func ValidPlayerCount(n int) bool {
	return n >= MinPlayers && n <= MaxPlayers
}

// CanPlay reports whether a non-wild card may follow top. Wild cards are
// never reported as playable here; use IsLegal for the full rule.
func CanPlay(card, top deck.Card, declared deck.Suit) bool {
	if card.IsWild() {
		return false
	}
	if declared != deck.NoSuit {
		return card.Suit == declared
	}
	return card.Suit == top.Suit || card.Rank == top.Rank
}

// IsLegal reports whether card may be played: wild cards always may
func IsLegal(card, top deck.Card, declared deck.Suit) bool {
	return card.IsWild() || CanPlay(card, top, declared)
}

// PlayableCards returns the non-wild cards of hand that can follow top, in
// hand order
func PlayableCards(hand []deck.Card, top deck.Card, declared deck.Suit) []deck.Card {
	var playable []deck.Card
	for _, c := range hand {
		if CanPlay(c, top, declared) {
			playable = append(playable, c)
		}
	}
	return playable
}

// WildCards returns the wild cards of hand, in hand order
func WildCards(hand []deck.Card) []deck.Card {
	var wilds []deck.Card
	for _, c := range hand {
		if c.IsWild() {
			wilds = append(wilds, c)
		}
	}
	return wilds
}
