package game

import (
	"errors"

	"github.com/lox/crazyeights/internal/deck"
)

func c(s deck.Suit, r deck.Rank) deck.Card { return deck.NewCard(s, r) }

// rigDeck builds a 52-card deck that deals hands[i] to seat i in order,
// leaves draw on top of the draw pile (first element drawn first) and turns
// up discard. Unused cards fill the bottom of the draw pile.
func rigDeck(hands [][]deck.Card, draw []deck.Card, discard deck.Card) *deck.Collection {
	used := map[deck.Card]bool{discard: true}
	var cards []deck.Card
	for _, h := range hands {
		for _, card := range h {
			used[card] = true
			cards = append(cards, card)
		}
	}
	for _, card := range draw {
		used[card] = true
		cards = append(cards, card)
	}
	for _, card := range deck.Deck() {
		if !used[card] {
			cards = append(cards, card)
		}
	}
	cards = append(cards, discard)
	return deck.NewCollection("rigged", cards...)
}

// scriptedController replays a fixed list of decisions
type scriptedController struct {
	decisions []Decision
	index     int
	begun     int
	observed  int
	lastSeen  History
	self      PlayerID
	opponents []PlayerID
	handSize  int
}

func script(decisions ...Decision) *scriptedController {
	return &scriptedController{decisions: decisions}
}

func (s *scriptedController) Begin(self PlayerID, opponents []PlayerID, handSize int) {
	s.begun++
	s.self = self
	s.opponents = opponents
	s.handSize = handSize
}

func (s *scriptedController) Decide(TurnState) (Decision, error) {
	if s.index >= len(s.decisions) {
		return Decision{}, errors.New("script exhausted")
	}
	d := s.decisions[s.index]
	s.index++
	return d, nil
}

func (s *scriptedController) Observe(h History) {
	s.observed++
	s.lastSeen = h
}

// greedyController plays the first legal non-wild card, then a wild card,
// and only draws when it has to
type greedyController struct {
	states []TurnState
}

func (g *greedyController) Begin(PlayerID, []PlayerID, int) {}
func (g *greedyController) Observe(History) {}

func (g *greedyController) Decide(s TurnState) (Decision, error) {
	g.states = append(g.states, s)
	if playable := s.Playable(); len(playable) > 0 {
		return PlayDecision(playable[0], "first playable"), nil
	}
	if wilds := WildCards(s.Hand); len(wilds) > 0 {
		return WildDecision(wilds[0], deck.Spades, "wild"), nil
	}
	return DrawDecision("nothing to play"), nil
}

func seat(id PlayerID, name string, ctrl Controller) *Player {
	return NewPlayer(id, name, Bot, ctrl)
}

// countingReporter records how often each report was made
type countingReporter struct {
	states int
	turns  []PlayerTurn
	scores [][]Standing
	kinds  []ScoreKind
}

func (r *countingReporter) ReportState(StateView) { r.states++ }

func (r *countingReporter) ReportTurn(_ *Player, turn PlayerTurn) {
	r.turns = append(r.turns, turn)
}

func (r *countingReporter) ReportScores(standings []Standing, kind ScoreKind) {
	r.scores = append(r.scores, standings)
	r.kinds = append(r.kinds, kind)
}
