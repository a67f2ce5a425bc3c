package console

import (
	"bytes"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/lox/crazyeights/internal/deck"
	"github.com/lox/crazyeights/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestUI(input string, opts Options) (*UI, *bytes.Buffer) {
	out := &bytes.Buffer{}
	opts.NoColor = true
	return New(out, NewScannerReader(strings.NewReader(input), out), opts), out
}

func c(s deck.Suit, r deck.Rank) deck.Card { return deck.NewCard(s, r) }

func TestUIImplementsPresenter(t *testing.T) {
	var _ game.Presenter = (*UI)(nil)
}

func TestRequestPlayerCountReprompts(t *testing.T) {
	ui, out := newTestUI("three\n3\n", Options{})

	n, err := ui.RequestPlayerCount()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Contains(t, out.String(), "Enter total number of players: ")
	assert.Contains(t, out.String(), `"three" is not a number.`)
	assert.Contains(t, out.String(), "Re-enter a valid number of players: ")
}

func TestRequestPlayerCountEOF(t *testing.T) {
	ui, _ := newTestUI("", Options{})
	_, err := ui.RequestPlayerCount()
	assert.ErrorIs(t, err, io.EOF)
}

func TestRequestPlayedCardReprompts(t *testing.T) {
	ui, out := newTestUI("the big one\neight of spades please\n", Options{})

	card, err := ui.RequestPlayedCard()
	require.NoError(t, err)
	assert.Equal(t, c(deck.Spades, deck.Eight), card)
	assert.Contains(t, out.String(), "Please enter a valid card")
}

func TestRequestDeclaredSuitReprompts(t *testing.T) {
	ui, out := newTestUI("red\n hearts \n", Options{})

	suit, err := ui.RequestDeclaredSuit()
	require.NoError(t, err)
	assert.Equal(t, deck.Hearts, suit)
	assert.Contains(t, out.String(), "Please enter DIAMONDS, HEARTS, SPADES or CLUBS: ")
}

func TestRequestDraw(t *testing.T) {
	state := game.TurnState{
		Hand:    []deck.Card{c(deck.Hearts, deck.Two)},
		TopCard: c(deck.Hearts, deck.King),
	}

	ui, out := newTestUI("maybe\nP\n", Options{})
	draw, err := ui.RequestDraw(state)
	require.NoError(t, err)
	assert.False(t, draw)
	assert.Contains(t, out.String(), "Please answer draw or play.")

	ui, _ = newTestUI("draw\n", Options{})
	draw, err = ui.RequestDraw(state)
	require.NoError(t, err)
	assert.True(t, draw)
}

func TestRequestDrawWithNothingPlayable(t *testing.T) {
	ui, out := newTestUI("", Options{})
	draw, err := ui.RequestDraw(game.TurnState{
		Hand:    []deck.Card{c(deck.Clubs, deck.Two)},
		TopCard: c(deck.Hearts, deck.King),
	})
	require.NoError(t, err)
	assert.True(t, draw)
	assert.Contains(t, out.String(), "must draw")
	assert.NotContains(t, out.String(), "Draw or play?")
}

func TestRequestDrawOffersWildCards(t *testing.T) {
	ui, _ := newTestUI("p\n", Options{})
	draw, err := ui.RequestDraw(game.TurnState{
		Hand:    []deck.Card{c(deck.Clubs, deck.Eight)},
		TopCard: c(deck.Hearts, deck.King),
	})
	require.NoError(t, err)
	assert.False(t, draw)
}

func TestReportTurn(t *testing.T) {
	ui, out := newTestUI("", Options{})
	p := game.NewPlayer(1, "Ada", game.Bot, nil)
	p.Hand.Add(c(deck.Clubs, deck.Two))

	ui.ReportTurn(p, game.PlayerTurn{PlayerID: 1, DrewCard: true})
	ui.ReportTurn(p, game.PlayerTurn{PlayerID: 1, Played: c(deck.Spades, deck.Eight), Declared: deck.Hearts})
	ui.ReportTurn(p, game.PlayerTurn{PlayerID: 1, Played: c(deck.Spades, deck.King)})

	text := out.String()
	assert.Contains(t, text, "Ada drew a card.")
	assert.Contains(t, text, "Ada just played an EIGHT of SPADES.")
	assert.Contains(t, text, "HEARTS is the new suit.")
	assert.Contains(t, text, "Ada just played a KING of SPADES.")
	assert.Equal(t, 3, strings.Count(text, "Ada has 1 card left in their hand."))
}

func TestReportStateOnlyForHumans(t *testing.T) {
	human := game.NewPlayer(1, "Ada", game.Human, nil)
	human.Hand.Add(c(deck.Hearts, deck.Two))
	human.Hand.Add(c(deck.Clubs, deck.Three))
	robot := game.NewPlayer(2, "Bob", game.Bot, nil)

	view := game.StateView{
		GameID: "g1",
		Seats: []game.SeatView{
			{ID: 1, Name: "Ada", HandSize: 2},
			{ID: 2, Name: "Bob", HandSize: 5},
		},
		DrawPileSize: 30,
		TopCard:      c(deck.Spades, deck.Eight),
		Declared:     deck.Hearts,
	}

	ui, out := newTestUI("", Options{})
	view.Current = robot
	ui.ReportState(view)
	assert.Contains(t, out.String(), "Welcome to a new game of Crazy Eights!")
	assert.NotContains(t, out.String(), "Draw pile")

	out.Reset()
	view.Current = human
	ui.ReportState(view)
	text := out.String()
	assert.NotContains(t, text, "Welcome", "the banner is shown once per game")
	assert.Contains(t, text, "Draw pile: 30 cards left.")
	assert.Contains(t, text, "Bob has 5 cards left in their hand.")
	assert.Contains(t, text, "The current top card is: EIGHT of SPADES")
	assert.Contains(t, text, "The current suit is: HEARTS")
	assert.Contains(t, text, "Ada's hand: [TWO of HEARTS, THREE of CLUBS]")

	out.Reset()
	view.GameID = "g2"
	ui.ReportState(view)
	assert.Contains(t, out.String(), "Welcome to a new game of Crazy Eights!")
}

func TestReportStateShowAll(t *testing.T) {
	ui, out := newTestUI("", Options{ShowAllStates: true})
	ui.ReportState(game.StateView{
		GameID:       "g1",
		Current:      game.NewPlayer(2, "Bob", game.Bot, nil),
		DrawPileSize: 1,
		TopCard:      c(deck.Clubs, deck.Ace),
	})
	assert.Contains(t, out.String(), "Draw pile: 1 cards left.")
	assert.NotContains(t, out.String(), "The current suit")
	assert.NotContains(t, out.String(), "Bob's hand")
}

func TestReportScores(t *testing.T) {
	standings := []game.Standing{
		{ID: 1, Name: "Ada", Score: 120},
		{ID: 2, Name: "Bartholomew", Score: 40},
	}

	ui, out := newTestUI("", Options{})
	ui.ReportScores(standings, game.GameEnd)
	assert.Contains(t, out.String(), "Scores for the game:")
	assert.Contains(t, out.String(), "  Ada          120")
	assert.NotContains(t, out.String(), "winner")

	out.Reset()
	ui.ReportScores(standings, game.TournamentEnd)
	assert.Contains(t, out.String(), "Scores for the tournament:")
	assert.Contains(t, out.String(), "Ada is the winner!")
	assert.Contains(t, out.String(), "Thank you for playing Crazy Eights.")

	out.Reset()
	standings[1].Score = 120
	ui.ReportScores(standings, game.TournamentEnd)
	assert.Contains(t, out.String(), "Ada, Bartholomew are the winners!")
}

func TestReportCheating(t *testing.T) {
	ui, out := newTestUI("", Options{})
	ui.ReportCheating("Mallory")
	assert.Equal(t, "Mallory attempted to cheat!\n", out.String())
}

func TestScannerReaderTrimsCarriageReturn(t *testing.T) {
	out := &bytes.Buffer{}
	r := NewScannerReader(strings.NewReader("hello\r\n"), out)

	line, err := r.ReadLine("> ")
	require.NoError(t, err)
	assert.Equal(t, "hello", line)
	assert.Equal(t, "> \n", out.String())

	_, err = r.ReadLine("> ")
	assert.ErrorIs(t, err, io.EOF)
}

func TestPromptModel(t *testing.T) {
	m := newPromptModel("Name: ", newStyles(NewRenderer(io.Discard, true)))

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(" Ada ")})
	assert.Contains(t, model.View(), "Ada")

	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	final := model.(promptModel)
	assert.Equal(t, "Ada", final.value)
	assert.False(t, final.cancelled)
	assert.Empty(t, final.View())
}

func TestPromptModelCancel(t *testing.T) {
	var model tea.Model = newPromptModel("Name: ", newStyles(NewRenderer(io.Discard, true)))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.True(t, model.(promptModel).cancelled)
}
