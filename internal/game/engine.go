package game

import (
	"fmt"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/crazyeights/internal/deck"
)

// State is the lifecycle stage of a game
type State int

const (
	NotStarted State = iota
	Dealing
	InProgress
	Scored
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Dealing:
		return "dealing"
	case InProgress:
		return "in_progress"
	case Scored:
		return "scored"
	default:
		return "unknown"
	}
}

// EndReason says why a game stopped
type EndReason int

const (
	NotEnded EndReason = iota
	EmptyHand
	EmptyDrawPile
)

// String returns the string representation of the end reason
func (r EndReason) String() string {
	switch r {
	case EmptyHand:
		return "empty_hand"
	case EmptyDrawPile:
		return "empty_draw_pile"
	default:
		return "not_ended"
	}
}

// Result is the outcome of one scored game
type Result struct {
	GameID      string
	Scores      map[PlayerID]int // Points awarded: the value of everyone else's cards
	HandTotals  map[PlayerID]int // Value of the cards each player was left holding
	Winners     []PlayerID       // Players with the highest score this game
	Reason      EndReason
	Turns       int
	FirstPlayer PlayerID
}

// Game runs a single game of Crazy Eights between a fixed set of players.
// It owns the draw and discard piles and the history; the players slice is
// shared with the caller and not copied.
type Game struct {
	id          string
	players     []*Player
	rng         *rand.Rand
	cfg         *config
	logger      *log.Logger
	bus         EventBus
	clock       quartz.Clock
	reporter    Reporter
	state       State
	drawPile    *deck.Collection
	discardPile *deck.Collection
	history     History
	current     int
	first       int
	turns       int
	handSize    int
	reasons     map[PlayerID]string
}

// New creates a game for 2 to 7 players. The RNG drives the shuffle and the
// choice of first player; inject a seeded one for reproducible games.
func New(players []*Player, rng *rand.Rand, opts ...Option) (*Game, error) {
	if rng == nil {
		panic("rng is required for game creation")
	}
	if !ValidPlayerCount(len(players)) {
		return nil, fmt.Errorf("%w: got %d", ErrPlayerCount, len(players))
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.firstPlayer >= len(players) {
		return nil, fmt.Errorf("%w: first player seat %d out of range", ErrContract, cfg.firstPlayer)
	}

	seen := make(map[PlayerID]bool, len(players))
	for _, p := range players {
		if p.ID == NoPlayer || seen[p.ID] {
			return nil, fmt.Errorf("%w: player %q has missing or duplicate id %d", ErrContract, p.Name, p.ID)
		}
		seen[p.ID] = true
	}

	g := &Game{
		id:          cfg.gameID,
		players:     players,
		rng:         rng,
		cfg:         cfg,
		logger:      cfg.logger.WithPrefix("game"),
		bus:         cfg.bus,
		clock:       cfg.clock,
		reporter:    cfg.reporter,
		drawPile:    deck.NewCollection("DrawPile"),
		discardPile: deck.NewCollection("DiscardPile"),
		handSize:    HandSize(len(players)),
		reasons:     make(map[PlayerID]string),
	}
	if g.id != "" {
		g.logger = g.logger.With("game", g.id)
	}
	if g.bus == nil {
		g.bus = NewEventBus()
	}
	return g, nil
}

// Deal shuffles a fresh deck, turns up the first discard, deals every hand
// and tells each controller a new game has begun.
func (g *Game) Deal() error {
	if g.state != NotStarted {
		return fmt.Errorf("deal: %w (state %s)", ErrWrongState, g.state)
	}
	g.state = Dealing

	d := g.cfg.deck
	if d == nil {
		d = deck.NewShuffledDeck("deck", g.rng)
	} else if d.Size() != DeckSize {
		return fmt.Errorf("%w: injected deck has %d cards, want %d", ErrContract, d.Size(), DeckSize)
	}

	// The shuffle guarantees the first discard is not wild.
	if err := d.Deal(g.discardPile, 1); err != nil {
		return fmt.Errorf("deal discard: %w", err)
	}
	d.DealAll(g.drawPile)

	for _, p := range g.players {
		p.ResetHand()
		if err := g.drawPile.Deal(p.Hand, g.handSize); err != nil {
			return fmt.Errorf("deal hand to %s: %w", p.Name, err)
		}
	}

	top, _ := g.discardPile.Top()
	g.history = History{{PlayerID: NoPlayer, Played: top}}

	if g.cfg.firstPlayer >= 0 {
		g.first = g.cfg.firstPlayer
	} else {
		g.first = g.rng.IntN(len(g.players))
	}
	g.current = g.first

	for _, p := range g.players {
		p.Controller.Begin(p.ID, opponentsOf(g.players, p.ID), g.handSize)
	}
	g.broadcast()

	if err := g.checkConservation(); err != nil {
		return err
	}

	g.state = InProgress
	g.logger.Info("Game dealt",
		"players", len(g.players),
		"handSize", g.handSize,
		"topCard", top,
		"firstPlayer", g.players[g.first].Name)

	ids := make([]PlayerID, len(g.players))
	for i, p := range g.players {
		ids[i] = p.ID
	}
	g.bus.Publish(GameStartEvent{
		GameID:      g.id,
		Players:     ids,
		FirstPlayer: g.players[g.first].ID,
		TopCard:     top,
		HandSize:    g.handSize,
		timestamp:   g.clock.Now(),
	})
	return nil
}

// Step plays one full turn for the current player and returns the record
// appended to the history. Cheating and illegal plays are returned as
// *CheatingError and *IllegalPlayError and leave the game untouched.
func (g *Game) Step() (PlayerTurn, error) {
	if g.state != InProgress {
		return PlayerTurn{}, fmt.Errorf("step: %w (state %s)", ErrWrongState, g.state)
	}
	if g.IsOver() {
		return PlayerTurn{}, fmt.Errorf("step: %w (game is over)", ErrWrongState)
	}

	p := g.players[g.current]
	top := g.TopCard()
	declared := g.ActiveSuit()

	g.reporter.ReportState(g.view(p))

	decision, err := p.Controller.Decide(g.turnState(p))
	if err != nil {
		return PlayerTurn{}, fmt.Errorf("%s failed to decide: %w", p.Name, err)
	}

	turn := PlayerTurn{PlayerID: p.ID}
	if decision.Draw {
		card, err := g.drawPile.RemoveTop()
		if err != nil {
			return PlayerTurn{}, fmt.Errorf("draw for %s: %w", p.Name, err)
		}
		p.Hand.Add(card)
		turn.DrewCard = true
	} else {
		if err := g.validatePlay(p, decision, top, declared); err != nil {
			g.logger.Error("Rejected play", "player", p.Name, "card", decision.Card, "error", err)
			return PlayerTurn{}, err
		}
		p.Hand.Remove(decision.Card)
		g.discardPile.Add(decision.Card)
		turn.Played = decision.Card
		if decision.Card.IsWild() {
			turn.Declared = decision.Suit
		}
	}

	g.history = append(g.history, turn)
	g.turns++
	g.reasons[p.ID] = decision.Reasoning
	g.broadcast()

	if err := g.checkConservation(); err != nil {
		return PlayerTurn{}, err
	}

	g.logger.Debug("Player turn",
		"player", p.Name,
		"drew", turn.DrewCard,
		"played", turn.Played,
		"declared", turn.Declared,
		"handSize", p.Hand.Size(),
		"drawPile", g.drawPile.Size(),
		"reasoning", decision.Reasoning)

	g.bus.Publish(TurnEvent{
		GameID:       g.id,
		Player:       p,
		Turn:         turn,
		Reasoning:    decision.Reasoning,
		HandSize:     p.Hand.Size(),
		DrawPileSize: g.drawPile.Size(),
		timestamp:    g.clock.Now(),
	})
	g.reporter.ReportTurn(p, turn)

	if !g.IsOver() {
		g.current = (g.current + 1) % len(g.players)
	}
	return turn, nil
}

func (g *Game) validatePlay(p *Player, d Decision, top deck.Card, declared deck.Suit) error {
	if !p.Hand.Contains(d.Card) {
		return &CheatingError{PlayerID: p.ID, Player: p.Name, Card: d.Card}
	}
	if !IsLegal(d.Card, top, declared) {
		return &IllegalPlayError{PlayerID: p.ID, Player: p.Name, Card: d.Card, Top: top, Declared: declared}
	}
	if d.Card.IsWild() && !d.Suit.IsValid() {
		return fmt.Errorf("%s: %w", p.Name, ErrMissingSuit)
	}
	if !d.Card.IsWild() && d.Suit != deck.NoSuit {
		return fmt.Errorf("%s: %w", p.Name, ErrUnexpectedSuit)
	}
	return nil
}

// Play deals if needed, runs turns until the game ends and scores it
func (g *Game) Play() (*Result, error) {
	if g.state == NotStarted {
		if err := g.Deal(); err != nil {
			return nil, err
		}
	}
	for !g.IsOver() {
		if _, err := g.Step(); err != nil {
			return nil, err
		}
	}
	return g.Score()
}

// IsOver reports whether any hand or the draw pile is empty
func (g *Game) IsOver() bool {
	return g.endReason() != NotEnded
}

func (g *Game) endReason() EndReason {
	if g.state == NotStarted || g.state == Dealing {
		return NotEnded
	}
	for _, p := range g.players {
		if p.Hand.IsEmpty() {
			return EmptyHand
		}
	}
	if g.drawPile.IsEmpty() {
		return EmptyDrawPile
	}
	return NotEnded
}

// Score totals every hand and awards each player the value of the cards
// left in the other players' hands.
func (g *Game) Score() (*Result, error) {
	if g.state != InProgress || !g.IsOver() {
		return nil, fmt.Errorf("score: %w (state %s)", ErrWrongState, g.state)
	}

	result := &Result{
		GameID:      g.id,
		Scores:      make(map[PlayerID]int, len(g.players)),
		HandTotals:  make(map[PlayerID]int, len(g.players)),
		Reason:      g.endReason(),
		Turns:       g.turns,
		FirstPlayer: g.players[g.first].ID,
	}

	sum := 0
	for _, p := range g.players {
		total := p.Hand.PointTotal()
		result.HandTotals[p.ID] = total
		sum += total
	}

	standings := make([]Standing, len(g.players))
	for i, p := range g.players {
		result.Scores[p.ID] = sum - result.HandTotals[p.ID]
		standings[i] = Standing{ID: p.ID, Name: p.Name, Score: result.Scores[p.ID]}
	}
	for _, s := range Leaders(standings) {
		result.Winners = append(result.Winners, s.ID)
	}

	g.state = Scored
	g.logger.Info("Game scored",
		"reason", result.Reason,
		"turns", result.Turns,
		"winners", len(result.Winners))

	g.bus.Publish(GameEndEvent{GameID: g.id, Result: result, timestamp: g.clock.Now()})
	g.reporter.ReportScores(standings, GameEnd)
	return result, nil
}

// broadcast hands every controller its own copy of the history
func (g *Game) broadcast() {
	for _, p := range g.players {
		p.Controller.Observe(g.history.Clone())
	}
}

func (g *Game) checkConservation() error {
	if n := g.CardCount(); n != DeckSize {
		return fmt.Errorf("%w: %d cards in play, want %d", ErrConservation, n, DeckSize)
	}
	return nil
}

func (g *Game) turnState(p *Player) TurnState {
	sizes := make(map[PlayerID]int, len(g.players))
	for _, other := range g.players {
		sizes[other.ID] = other.Hand.Size()
	}
	return TurnState{
		GameID:       g.id,
		Self:         p.ID,
		Hand:         p.Hand.Cards(),
		TopCard:      g.TopCard(),
		Declared:     g.ActiveSuit(),
		DrawPileSize: g.drawPile.Size(),
		HandSizes:    sizes,
		History:      g.history.Clone(),
	}
}

func (g *Game) view(current *Player) StateView {
	seats := make([]SeatView, len(g.players))
	for i, p := range g.players {
		seats[i] = SeatView{ID: p.ID, Name: p.Name, HandSize: p.Hand.Size()}
	}
	return StateView{
		GameID:       g.id,
		Current:      current,
		Seats:        seats,
		DrawPileSize: g.drawPile.Size(),
		TopCard:      g.TopCard(),
		Declared:     g.ActiveSuit(),
	}
}

// ID returns the game identifier
func (g *Game) ID() string { return g.id }

// State returns the lifecycle stage
func (g *Game) State() State { return g.state }

// History returns a copy of the history so far
func (g *Game) History() History { return g.history.Clone() }

// Players returns the seated players in turn order
func (g *Game) Players() []*Player { return g.players }

// CurrentPlayer returns the player whose turn it is
func (g *Game) CurrentPlayer() *Player { return g.players[g.current] }

// TopCard returns the top of the discard pile
func (g *Game) TopCard() deck.Card {
	top, _ := g.discardPile.Top()
	return top
}

// ActiveSuit returns the suit declared with the wild card on top, or NoSuit
func (g *Game) ActiveSuit() deck.Suit { return g.history.ActiveSuit() }

// DrawPileSize returns the number of cards left to draw
func (g *Game) DrawPileSize() int { return g.drawPile.Size() }

// DiscardPileSize returns the number of discarded cards
func (g *Game) DiscardPileSize() int { return g.discardPile.Size() }

// CardCount returns the number of cards across the piles and every hand
func (g *Game) CardCount() int {
	n := g.drawPile.Size() + g.discardPile.Size()
	for _, p := range g.players {
		n += p.Hand.Size()
	}
	return n
}
