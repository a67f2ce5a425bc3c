// Package game implements the rules and turn engine for a single game of
// Crazy Eights.
//
// The main type is Game, which owns the draw and discard piles and the
// history of every turn, and asks each player's Controller what to do.
//
// # Basic Usage
//
// Create and play a game between two bots:
//
//	players := []*game.Player{
//	    game.NewPlayer(1, "Liam", game.Bot, bot.NewController(...)),
//	    game.NewPlayer(2, "Emma", game.Bot, bot.NewController(...)),
//	}
//	g, err := game.New(players, randutil.New(42))
//	result, err := g.Play()
//
// # Deterministic Testing
//
// Pass a seeded *rand.Rand for a reproducible shuffle and first player, or
// take full control of the cards with WithDeck and WithFirstPlayer:
//
//	g, err := game.New(players, rng,
//	    game.WithDeck(riggedDeck),
//	    game.WithFirstPlayer(0))
//
// # Rules
//
// A card may be played when it matches the top card's suit or rank, or, when
// the top card is a wild eight, the declared suit. Eights may always be
// played. The game ends as soon as any hand or the draw pile is empty, and
// each player scores the value of the cards left in everyone else's hands.
package game
