// Package console implements the human-facing side of a tournament: it
// reports what happens at the table and asks human players for their
// choices, re-prompting until the answer can be parsed.
package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lox/crazyeights/internal/deck"
	"github.com/lox/crazyeights/internal/game"
	"github.com/muesli/termenv"
)

// Options control what the console shows
type Options struct {
	NoColor bool
	// ShowAllStates prints the table before every turn, not only before a
	// human's turn
	ShowAllStates bool
}

// UI implements game.Presenter on a text terminal
type UI struct {
	out        io.Writer
	in         LineReader
	renderer   *lipgloss.Renderer
	styles     styles
	opts       Options
	lastGameID string
}

// New creates a console writing to out and reading answers from in
func New(out io.Writer, in LineReader, opts Options) *UI {
	r := NewRenderer(out, opts.NoColor)
	return &UI{
		out:      out,
		in:       in,
		renderer: r,
		styles:   newStyles(r),
		opts:     opts,
	}
}

// NewRenderer creates a lipgloss renderer for out, without colour when
// noColor is set
func NewRenderer(out io.Writer, noColor bool) *lipgloss.Renderer {
	if noColor {
		return lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	}
	return lipgloss.NewRenderer(out)
}

// Renderer returns the renderer the console draws with
func (u *UI) Renderer() *lipgloss.Renderer {
	return u.renderer
}

func (u *UI) println(s string) {
	fmt.Fprintln(u.out, s)
}

// Announce prints a line of information
func (u *UI) Announce(text string) {
	u.println(u.styles.Info.Render(text))
}

// Welcome prints the tournament banner
func (u *UI) Welcome() {
	u.println(u.styles.Header.Render(" Welcome to a new tournament of Crazy Eights! "))
}

// RequestPlayerCount asks for the number of players until a number is given
func (u *UI) RequestPlayerCount() (int, error) {
	prompt := "Enter total number of players: "
	for {
		line, err := u.in.ReadLine(prompt)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(line))
		if err == nil {
			return n, nil
		}
		u.println(u.styles.Error.Render(fmt.Sprintf("%q is not a number.", line)))
		prompt = "Re-enter a valid number of players: "
	}
}

// RequestPlayerName asks for a player's name
func (u *UI) RequestPlayerName() (string, error) {
	return u.in.ReadLine("Enter your player's name: ")
}

// RequestDraw asks a human whether to draw or play. A human with nothing
// legal to play draws without being asked.
func (u *UI) RequestDraw(state game.TurnState) (bool, error) {
	canPlay := len(state.Playable()) > 0 || len(game.WildCards(state.Hand)) > 0
	if !canPlay {
		u.println(u.styles.Warning.Render("You have nothing to play and must draw."))
		return true, nil
	}

	for {
		line, err := u.in.ReadLine("Draw or play? [d/p]: ")
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "d", "draw":
			return true, nil
		case "p", "play":
			return false, nil
		}
		u.println(u.styles.Error.Render("Please answer draw or play."))
	}
}

// RequestPlayedCard asks for a card until the text names exactly one card
func (u *UI) RequestPlayedCard() (deck.Card, error) {
	prompt := "Enter a card to play: "
	for {
		line, err := u.in.ReadLine(prompt)
		if err != nil {
			return deck.Card{}, err
		}
		card, err := deck.ParseCard(line)
		if err == nil {
			return card, nil
		}
		prompt = "Please enter a valid card (e.g. EIGHT of SPADES): "
	}
}

// RequestDeclaredSuit asks for a suit until a suit name is given
func (u *UI) RequestDeclaredSuit() (deck.Suit, error) {
	prompt := "Declare the new suit: "
	for {
		line, err := u.in.ReadLine(prompt)
		if err != nil {
			return deck.NoSuit, err
		}
		suit, err := deck.ParseSuit(line)
		if err == nil {
			return suit, nil
		}
		prompt = "Please enter DIAMONDS, HEARTS, SPADES or CLUBS: "
	}
}

// ReportState shows the table before a turn
func (u *UI) ReportState(view game.StateView) {
	if view.GameID != u.lastGameID || u.lastGameID == "" {
		u.lastGameID = view.GameID
		u.println("")
		u.println(u.styles.Header.Render(" Welcome to a new game of Crazy Eights! "))
	}

	if !u.opts.ShowAllStates && (view.Current == nil || !view.Current.IsHuman()) {
		return
	}

	u.println("")
	u.println(fmt.Sprintf("Draw pile: %d cards left.", view.DrawPileSize))
	for _, seat := range view.Seats {
		u.println(fmt.Sprintf("%s has %s left in their hand.", u.styles.Player.Render(seat.Name), cards(seat.HandSize)))
	}
	u.println("The current top card is: " + u.styles.card(view.TopCard))
	if view.Declared != deck.NoSuit {
		u.println("The current suit is: " + view.Declared.String())
	}

	if view.Current != nil && view.Current.IsHuman() {
		u.println(u.styles.Player.Render(view.Current.Name) + "'s hand: " + u.hand(view))
	}
}

func (u *UI) hand(view game.StateView) string {
	held := view.Current.Hand.Cards()
	parts := make([]string, len(held))
	for i, c := range held {
		s := u.styles.card(c)
		if game.IsLegal(c, view.TopCard, view.Declared) {
			s = u.styles.Playable.Render(s)
		}
		parts[i] = s
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ReportTurn describes what a player just did
func (u *UI) ReportTurn(player *game.Player, turn game.PlayerTurn) {
	name := u.styles.Player.Render(player.Name)
	switch {
	case turn.DrewCard:
		u.println(name + " drew a card.")
	case turn.IsPlay():
		u.println(fmt.Sprintf("%s just played %s %s.", name, article(turn.Played), u.styles.card(turn.Played)))
		if turn.Declared != deck.NoSuit {
			u.println(turn.Declared.String() + " is the new suit.")
		}
	}
	u.println(fmt.Sprintf("%s has %s left in their hand.", name, cards(player.Hand.Size())))
}

// ReportCheating announces that a player tried to play a card they do not hold
func (u *UI) ReportCheating(playerName string) {
	u.println(u.styles.Error.Render(playerName + " attempted to cheat!"))
}

// ReportScores prints a score table. The final tournament report also names
// the winners.
func (u *UI) ReportScores(standings []game.Standing, kind game.ScoreKind) {
	var title string
	switch kind {
	case game.GameEnd:
		title = "Scores for the game:"
	default:
		title = "Scores for the tournament:"
	}

	u.println("")
	u.println(u.styles.Success.Render(title))
	width := 0
	for _, s := range standings {
		width = max(width, len(s.Name))
	}
	for _, s := range standings {
		u.println(fmt.Sprintf("  %-*s %4d", width, s.Name, s.Score))
	}

	if kind != game.TournamentEnd {
		return
	}

	var names []string
	for _, s := range game.Leaders(standings) {
		names = append(names, s.Name)
	}
	if len(names) == 1 {
		u.println(u.styles.Success.Render(names[0] + " is the winner!"))
	} else {
		u.println(u.styles.Success.Render(strings.Join(names, ", ") + " are the winners!"))
	}
	u.println("Thank you for playing Crazy Eights.")
}

func article(c deck.Card) string {
	if c.Rank == deck.Ace || c.Rank == deck.Eight {
		return "an"
	}
	return "a"
}

func cards(n int) string {
	if n == 1 {
		return "1 card"
	}
	return fmt.Sprintf("%d cards", n)
}
