package deck

import "fmt"

// Suit represents a card suit
type Suit int

const (
	NoSuit Suit = iota
	Clubs
	Diamonds
	Hearts
	Spades
)

// Suits lists the four suits in enumeration order
var Suits = []Suit{Clubs, Diamonds, Hearts, Spades}

// DeclarationOrder is the order used to break ties when a bot ranks suits
// for a declaration. Changing it changes bot behaviour.
var DeclarationOrder = []Suit{Diamonds, Hearts, Spades, Clubs}

// String returns the upper-case name of a suit (e.g. "SPADES")
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "CLUBS"
	case Diamonds:
		return "DIAMONDS"
	case Hearts:
		return "HEARTS"
	case Spades:
		return "SPADES"
	default:
		return "NONE"
	}
}

// Symbol returns the glyph for a suit
func (s Suit) Symbol() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// IsValid reports whether s is one of the four real suits
func (s Suit) IsValid() bool {
	return s >= Clubs && s <= Spades
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Ace Rank = iota + 1
	Two
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
)

// WildRank can be played on anything and lets the player declare a suit.
const WildRank = Eight

// Ranks lists all thirteen ranks in enumeration order
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

var rankNames = [...]string{
	Ace:   "ACE",
	Two:   "TWO",
	Three: "THREE",
	Four:  "FOUR",
	Five:  "FIVE",
	Six:   "SIX",
	Seven: "SEVEN",
	Eight: "EIGHT",
	Nine:  "NINE",
	Ten:   "TEN",
	Jack:  "JACK",
	Queen: "QUEEN",
	King:  "KING",
}

// String returns the upper-case name of a rank (e.g. "EIGHT")
func (r Rank) String() string {
	if !r.IsValid() {
		return "NONE"
	}
	return rankNames[r]
}

// IsValid reports whether r is one of the thirteen real ranks
func (r Rank) IsValid() bool {
	return r >= Ace && r <= King
}

// PointValue returns the penalty value of a rank held at the end of a game
func (r Rank) PointValue() int {
	switch {
	case r == WildRank:
		return 50
	case r == Ace:
		return 15
	case r >= Jack && r <= King:
		return 10
	case r.IsValid():
		return int(r)
	default:
		return 0
	}
}

// Card represents a playing card
type Card struct {
	Suit Suit
	Rank Rank
}

// NewCard creates a new card
func NewCard(suit Suit, rank Rank) Card {
	return Card{Suit: suit, Rank: rank}
}

// String returns the textual form of a card (e.g. "EIGHT of SPADES").
// ParseCard accepts every string produced here.
func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns a compact form of the card (e.g. "8♠")
func (c Card) Short() string {
	switch c.Rank {
	case Ace:
		return "A" + c.Suit.Symbol()
	case Jack:
		return "J" + c.Suit.Symbol()
	case Queen:
		return "Q" + c.Suit.Symbol()
	case King:
		return "K" + c.Suit.Symbol()
	default:
		return fmt.Sprintf("%d%s", int(c.Rank), c.Suit.Symbol())
	}
}

// IsWild returns true if the card is of the wild rank
func (c Card) IsWild() bool {
	return c.Rank == WildRank
}

// IsZero reports whether c is the zero Card (no suit, no rank)
func (c Card) IsZero() bool {
	return c == Card{}
}

// IsRed returns true if the card is red
func (c Card) IsRed() bool {
	return c.Suit.IsRed()
}

// PointValue returns the card's value when it is left in a hand
func (c Card) PointValue() int {
	return c.Rank.PointValue()
}

var canonical = func() []Card {
	cards := make([]Card, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			cards = append(cards, NewCard(suit, rank))
		}
	}
	return cards
}()

// Deck returns a copy of the canonical 52-card deck, ordered by suit then rank
func Deck() []Card {
	cards := make([]Card, len(canonical))
	copy(cards, canonical)
	return cards
}

// PointTotal sums the point values of cards
func PointTotal(cards []Card) int {
	total := 0
	for _, c := range cards {
		total += c.PointValue()
	}
	return total
}
