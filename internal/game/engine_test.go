package game

import (
	"errors"
	"testing"

	"github.com/coder/quartz"
	"github.com/lox/crazyeights/internal/deck"
	"github.com/lox/crazyeights/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	aliceHand = []deck.Card{
		c(deck.Hearts, deck.Two), c(deck.Hearts, deck.Three), c(deck.Hearts, deck.Four),
		c(deck.Hearts, deck.Five), c(deck.Hearts, deck.Six), c(deck.Hearts, deck.Seven),
		c(deck.Hearts, deck.Nine),
	}
	bobHand = []deck.Card{
		c(deck.Clubs, deck.King), c(deck.Clubs, deck.Queen), c(deck.Clubs, deck.Jack),
		c(deck.Clubs, deck.Ten), c(deck.Clubs, deck.Nine), c(deck.Clubs, deck.Seven),
		c(deck.Clubs, deck.Six),
	}
	spadesDraw = []deck.Card{
		c(deck.Spades, deck.Two), c(deck.Spades, deck.Three), c(deck.Spades, deck.Four),
		c(deck.Spades, deck.Five), c(deck.Spades, deck.Six), c(deck.Spades, deck.Seven),
	}
)

func headsUp(t *testing.T, alice, bob Controller, discard deck.Card, opts ...Option) (*Game, []*Player) {
	t.Helper()
	players := []*Player{seat(1, "Alice", alice), seat(2, "Bob", bob)}
	opts = append([]Option{
		WithDeck(rigDeck([][]deck.Card{aliceHand, bobHand}, spadesDraw, discard)),
		WithFirstPlayer(0),
	}, opts...)
	g, err := New(players, randutil.New(1), opts...)
	require.NoError(t, err)
	return g, players
}

func TestDealFromRiggedDeck(t *testing.T) {
	g, players := headsUp(t, script(), script(), c(deck.Hearts, deck.Ten))
	require.NoError(t, g.Deal())

	assert.Equal(t, InProgress, g.State())
	assert.Equal(t, aliceHand, players[0].Hand.Cards())
	assert.Equal(t, bobHand, players[1].Hand.Cards())
	assert.Equal(t, c(deck.Hearts, deck.Ten), g.TopCard())
	assert.Equal(t, 52-1-14, g.DrawPileSize())
	assert.Equal(t, 1, g.DiscardPileSize())
	assert.Equal(t, DeckSize, g.CardCount())
	assert.Equal(t, players[0], g.CurrentPlayer())

	h := g.History()
	require.Len(t, h, 1)
	assert.True(t, h[0].IsBootstrap())
	assert.Equal(t, c(deck.Hearts, deck.Ten), h[0].Played)
}

func TestDealBeginsEveryController(t *testing.T) {
	alice, bob := script(), script()
	g, _ := headsUp(t, alice, bob, c(deck.Hearts, deck.Ten))
	require.NoError(t, g.Deal())

	assert.Equal(t, 1, alice.begun)
	assert.Equal(t, PlayerID(1), alice.self)
	assert.Equal(t, []PlayerID{2}, alice.opponents)
	assert.Equal(t, 7, alice.handSize)
	assert.Equal(t, []PlayerID{1}, bob.opponents)
	assert.Equal(t, 1, bob.observed)
	assert.Len(t, bob.lastSeen, 1)
}

func TestFullGameEndsOnEmptyHand(t *testing.T) {
	var plays []Decision
	for _, card := range aliceHand {
		plays = append(plays, PlayDecision(card, "follow hearts"))
	}
	var draws []Decision
	for range 6 {
		draws = append(draws, DrawDecision("no hearts"))
	}
	alice, bob := script(plays...), script(draws...)
	reporter := &countingReporter{}
	g, players := headsUp(t, alice, bob, c(deck.Hearts, deck.Ten), WithReporter(reporter))

	result, err := g.Play()
	require.NoError(t, err)

	// Alice empties her hand on turn 13; Bob never gets a seventh move.
	assert.Equal(t, 6, bob.index)
	assert.True(t, players[0].Hand.IsEmpty())
	assert.Equal(t, 13, players[1].Hand.Size())
	assert.Equal(t, EmptyHand, result.Reason)
	assert.Equal(t, 13, result.Turns)
	assert.Equal(t, PlayerID(1), result.FirstPlayer)

	bobTotal := 10 + 10 + 10 + 10 + 9 + 7 + 6 + 2 + 3 + 4 + 5 + 6 + 7
	assert.Equal(t, map[PlayerID]int{1: 0, 2: bobTotal}, result.HandTotals)
	assert.Equal(t, map[PlayerID]int{1: bobTotal, 2: 0}, result.Scores)
	assert.Equal(t, []PlayerID{1}, result.Winners)

	assert.Equal(t, Scored, g.State())
	assert.Len(t, g.History(), 14)
	assert.Equal(t, 31, g.DrawPileSize())
	assert.Equal(t, DeckSize, g.CardCount())
	assert.Equal(t, 14, alice.observed)
	assert.Equal(t, 14, bob.observed)

	assert.Equal(t, 13, reporter.states)
	assert.Len(t, reporter.turns, 13)
	assert.Equal(t, []ScoreKind{GameEnd}, reporter.kinds)
}

func TestGameEndsWhenDrawPileEmpties(t *testing.T) {
	var draws []Decision
	for range 40 {
		draws = append(draws, DrawDecision("drawing"))
	}
	alice, bob := script(draws...), script(draws...)
	g, players := headsUp(t, alice, bob, c(deck.Hearts, deck.Ten))

	result, err := g.Play()
	require.NoError(t, err)

	assert.Equal(t, EmptyDrawPile, result.Reason)
	assert.Equal(t, 37, result.Turns)
	assert.Equal(t, 19, alice.index)
	assert.Equal(t, 18, bob.index)
	assert.Equal(t, 0, g.DrawPileSize())

	aliceTotal := players[0].Hand.PointTotal()
	bobTotal := players[1].Hand.PointTotal()
	assert.Equal(t, bobTotal, result.Scores[1])
	assert.Equal(t, aliceTotal, result.Scores[2])
}

func TestWildDeclarationSurvivesDraws(t *testing.T) {
	hand := append([]deck.Card{c(deck.Hearts, deck.Eight)}, aliceHand[1:]...)
	players := []*Player{
		seat(1, "Alice", script(
			WildDecision(c(deck.Hearts, deck.Eight), deck.Spades, "switch to spades"),
			PlayDecision(c(deck.Hearts, deck.Three), "hearts"),
		)),
		seat(2, "Bob", script(DrawDecision("no spades"))),
	}
	g, err := New(players, randutil.New(1),
		WithDeck(rigDeck([][]deck.Card{hand, bobHand}, spadesDraw, c(deck.Clubs, deck.Four))),
		WithFirstPlayer(0))
	require.NoError(t, err)
	require.NoError(t, g.Deal())

	turn, err := g.Step()
	require.NoError(t, err)
	assert.Equal(t, deck.Spades, turn.Declared)
	assert.Equal(t, deck.Spades, g.ActiveSuit())

	_, err = g.Step()
	require.NoError(t, err)
	assert.Equal(t, deck.Spades, g.ActiveSuit())

	_, err = g.Step()
	var illegal *IllegalPlayError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, deck.Spades, illegal.Declared)
	assert.Equal(t, "Alice", illegal.Player)
	assert.True(t, IsFatal(err))
	assert.Len(t, g.History(), 3, "rejected play must not be recorded")
}

func TestCheatingIsRejected(t *testing.T) {
	notHeld := c(deck.Diamonds, deck.Five)
	g, players := headsUp(t, script(PlayDecision(notHeld, "sneaky")), script(), c(deck.Diamonds, deck.Ten))
	require.NoError(t, g.Deal())

	_, err := g.Step()
	var cheat *CheatingError
	require.ErrorAs(t, err, &cheat)
	assert.Equal(t, PlayerID(1), cheat.PlayerID)
	assert.Equal(t, notHeld, cheat.Card)
	assert.True(t, IsFatal(err))
	assert.Contains(t, err.Error(), "Alice attempted to cheat")

	assert.Len(t, g.History(), 1)
	assert.Equal(t, 7, players[0].Hand.Size())
	assert.Equal(t, DeckSize, g.CardCount())
}

func TestSuitDeclarationContract(t *testing.T) {
	t.Run("wild without suit", func(t *testing.T) {
		hand := append([]deck.Card{c(deck.Hearts, deck.Eight)}, aliceHand[1:]...)
		players := []*Player{
			seat(1, "Alice", script(PlayDecision(c(deck.Hearts, deck.Eight), "forgot"))),
			seat(2, "Bob", script()),
		}
		g, err := New(players, randutil.New(1),
			WithDeck(rigDeck([][]deck.Card{hand, bobHand}, nil, c(deck.Clubs, deck.Four))),
			WithFirstPlayer(0))
		require.NoError(t, err)
		require.NoError(t, g.Deal())

		_, err = g.Step()
		assert.ErrorIs(t, err, ErrMissingSuit)
		assert.ErrorIs(t, err, ErrContract)
		assert.False(t, IsFatal(err))
	})

	t.Run("suit with non-wild", func(t *testing.T) {
		bad := Decision{Card: aliceHand[0], Suit: deck.Clubs}
		g, _ := headsUp(t, script(bad), script(), c(deck.Hearts, deck.Ten))
		require.NoError(t, g.Deal())

		_, err := g.Step()
		assert.ErrorIs(t, err, ErrUnexpectedSuit)
	})
}

func TestControllerErrorIsWrapped(t *testing.T) {
	g, _ := headsUp(t, script(), script(), c(deck.Hearts, deck.Ten))
	require.NoError(t, g.Deal())

	_, err := g.Step()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Alice failed to decide")
	assert.False(t, IsFatal(err))
}

func TestOperationsOutOfOrder(t *testing.T) {
	g, _ := headsUp(t, script(), script(), c(deck.Hearts, deck.Ten))

	_, err := g.Step()
	assert.ErrorIs(t, err, ErrWrongState)
	_, err = g.Score()
	assert.ErrorIs(t, err, ErrWrongState)

	require.NoError(t, g.Deal())
	assert.ErrorIs(t, g.Deal(), ErrWrongState)
	_, err = g.Score()
	assert.ErrorIs(t, err, ErrWrongState, "cannot score a game in progress")
}

func TestNewValidatesPlayers(t *testing.T) {
	rng := randutil.New(1)

	_, err := New([]*Player{seat(1, "Solo", script())}, rng)
	assert.ErrorIs(t, err, ErrPlayerCount)

	var crowd []*Player
	for i := 1; i <= 8; i++ {
		crowd = append(crowd, seat(PlayerID(i), "P", script()))
	}
	_, err = New(crowd, rng)
	assert.ErrorIs(t, err, ErrPlayerCount)

	_, err = New([]*Player{seat(1, "A", script()), seat(1, "B", script())}, rng)
	assert.ErrorIs(t, err, ErrContract)

	_, err = New([]*Player{seat(NoPlayer, "A", script()), seat(2, "B", script())}, rng)
	assert.ErrorIs(t, err, ErrContract)

	_, err = New([]*Player{seat(1, "A", script()), seat(2, "B", script())}, rng, WithFirstPlayer(2))
	assert.ErrorIs(t, err, ErrContract)

	assert.Panics(t, func() {
		_, _ = New([]*Player{seat(1, "A", script()), seat(2, "B", script())}, nil)
	})
}

func TestInjectedDeckMustBeComplete(t *testing.T) {
	players := []*Player{seat(1, "A", script()), seat(2, "B", script())}
	g, err := New(players, randutil.New(1), WithDeck(deck.NewCollection("short", c(deck.Clubs, deck.Two))))
	require.NoError(t, err)
	assert.ErrorIs(t, g.Deal(), ErrContract)
}

func TestDealResetsHands(t *testing.T) {
	players := []*Player{seat(1, "A", &greedyController{}), seat(2, "B", &greedyController{})}
	players[0].Hand.Add(c(deck.Clubs, deck.Two))

	g, err := New(players, randutil.New(5))
	require.NoError(t, err)
	require.NoError(t, g.Deal())

	assert.Equal(t, 7, players[0].Hand.Size())
	assert.Equal(t, DeckSize, g.CardCount())
}

func TestRandomGamesConserveCards(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		n := int(seed%6) + 2
		players := make([]*Player, n)
		for i := range players {
			players[i] = seat(PlayerID(i+1), "P", &greedyController{})
		}

		g, err := New(players, randutil.New(seed))
		require.NoError(t, err)
		require.NoError(t, g.Deal())
		assert.Equal(t, DeckSize-1-n*HandSize(n), g.DrawPileSize())
		assert.False(t, g.TopCard().IsWild())

		for !g.IsOver() {
			_, err := g.Step()
			require.NoError(t, err, "seed %d", seed)
			require.Equal(t, DeckSize, g.CardCount(), "seed %d", seed)
		}

		result, err := g.Score()
		require.NoError(t, err)
		assert.NotEqual(t, NotEnded, result.Reason)

		sum := 0
		for _, total := range result.HandTotals {
			sum += total
		}
		for _, p := range players {
			assert.Equal(t, sum-result.HandTotals[p.ID], result.Scores[p.ID])
		}
		assert.NotEmpty(t, result.Winners)
	}
}

func TestSameSeedSameGame(t *testing.T) {
	run := func() History {
		players := []*Player{
			seat(1, "A", &greedyController{}),
			seat(2, "B", &greedyController{}),
			seat(3, "C", &greedyController{}),
		}
		g, err := New(players, randutil.New(77))
		require.NoError(t, err)
		_, err = g.Play()
		require.NoError(t, err)
		return g.History()
	}
	assert.Equal(t, run(), run())
}

func TestTurnStateShowsOnlyOwnHand(t *testing.T) {
	alice := &greedyController{}
	g, _ := headsUp(t, alice, script(DrawDecision("x")), c(deck.Hearts, deck.Ten))
	require.NoError(t, g.Deal())
	_, err := g.Step()
	require.NoError(t, err)

	require.Len(t, alice.states, 1)
	s := alice.states[0]
	assert.Equal(t, PlayerID(1), s.Self)
	assert.Equal(t, aliceHand, s.Hand)
	assert.Equal(t, map[PlayerID]int{1: 7, 2: 7}, s.HandSizes)
	assert.Equal(t, c(deck.Hearts, deck.Ten), s.TopCard)
	assert.Equal(t, deck.NoSuit, s.Declared)
	assert.Equal(t, 37, s.DrawPileSize)
}

func TestEventsArePublished(t *testing.T) {
	clock := quartz.NewMock(t)
	bus := NewEventBus()
	var events []GameEvent
	bus.Subscribe(SubscriberFunc(func(e GameEvent) { events = append(events, e) }))

	var plays []Decision
	for _, card := range aliceHand {
		plays = append(plays, PlayDecision(card, "follow hearts"))
	}
	bobScript := make([]Decision, 6)
	for i := range bobScript {
		bobScript[i] = DrawDecision("no hearts")
	}
	g, _ := headsUp(t, script(plays...), script(bobScript...), c(deck.Hearts, deck.Ten),
		WithEventBus(bus), WithClock(clock), WithGameID("game_test"))

	result, err := g.Play()
	require.NoError(t, err)

	require.Len(t, events, 15)
	start, ok := events[0].(GameStartEvent)
	require.True(t, ok)
	assert.Equal(t, "game_test", start.GameID)
	assert.Equal(t, []PlayerID{1, 2}, start.Players)
	assert.Equal(t, 7, start.HandSize)
	assert.Equal(t, clock.Now(), start.Timestamp())

	turn, ok := events[1].(TurnEvent)
	require.True(t, ok)
	assert.Equal(t, EventTypeTurn, turn.EventType())
	assert.Equal(t, "follow hearts", turn.Reasoning)
	assert.Equal(t, 6, turn.HandSize)

	end, ok := events[14].(GameEndEvent)
	require.True(t, ok)
	assert.Same(t, result, end.Result)
	assert.Equal(t, "game_test", g.ID())
}

func TestErrorsAreDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrConservation, ErrContract))
	assert.True(t, errors.Is(ErrMissingSuit, ErrContract))
}
