package deck

import (
	"errors"
	"fmt"
	rand "math/rand/v2"
	"strings"
)

// ErrEmpty is returned when a collection has fewer cards than requested
var ErrEmpty = errors.New("not enough cards")

// Collection is an ordered pile of cards: the deck, the draw and discard
// piles and every player's hand. The top of the pile is the last element.
type Collection struct {
	label string
	cards []Card
}

// NewCollection creates a collection holding cards, the last one on top
func NewCollection(label string, cards ...Card) *Collection {
	c := &Collection{
		label: label,
		cards: make([]Card, 0, max(len(cards), 8)),
	}
	c.cards = append(c.cards, cards...)
	return c
}

// NewShuffledDeck creates a full 52-card deck and shuffles it. The top card
// of the returned deck is never wild.
func NewShuffledDeck(label string, rng *rand.Rand) *Collection {
	if rng == nil {
		panic("rng is required for deck creation")
	}
	c := NewCollection(label, canonical...)
	c.Shuffle(rng)
	return c
}

// Shuffle swaps every position with a uniformly random position, and
// repeats the whole pass until the top card is not wild.
func (c *Collection) Shuffle(rng *rand.Rand) {
	n := len(c.cards)
	if n == 0 {
		return
	}
	hasNonWild := false
	for _, card := range c.cards {
		if !card.IsWild() {
			hasNonWild = true
			break
		}
	}

	for {
		for i := 0; i < n; i++ {
			j := rng.IntN(n)
			c.cards[i], c.cards[j] = c.cards[j], c.cards[i]
		}
		if !hasNonWild || !c.cards[n-1].IsWild() {
			return
		}
	}
}

// Add puts a card on top of the collection
func (c *Collection) Add(card Card) {
	c.cards = append(c.cards, card)
}

// Top returns the top card without removing it
func (c *Collection) Top() (Card, error) {
	if len(c.cards) == 0 {
		return Card{}, fmt.Errorf("%s: %w", c.label, ErrEmpty)
	}
	return c.cards[len(c.cards)-1], nil
}

// RemoveTop removes and returns the top card
func (c *Collection) RemoveTop() (Card, error) {
	card, err := c.Top()
	if err != nil {
		return Card{}, err
	}
	c.cards = c.cards[:len(c.cards)-1]
	return card, nil
}

// RemoveAt removes and returns the card at index i (0 is the bottom)
func (c *Collection) RemoveAt(i int) (Card, error) {
	if i < 0 || i >= len(c.cards) {
		return Card{}, fmt.Errorf("%s: index %d out of range [0,%d)", c.label, i, len(c.cards))
	}
	card := c.cards[i]
	c.cards = append(c.cards[:i], c.cards[i+1:]...)
	return card, nil
}

// Remove removes the first occurrence of card, reporting whether it was present
func (c *Collection) Remove(card Card) bool {
	i := c.IndexOf(card)
	if i < 0 {
		return false
	}
	c.cards = append(c.cards[:i], c.cards[i+1:]...)
	return true
}

// IndexOf returns the position of the first occurrence of card, or -1
func (c *Collection) IndexOf(card Card) int {
	for i, held := range c.cards {
		if held == card {
			return i
		}
	}
	return -1
}

// Contains reports whether card is in the collection
func (c *Collection) Contains(card Card) bool {
	return c.IndexOf(card) >= 0
}

// Deal moves n cards one at a time from the top of c onto the top of
// target, so the moved block ends up reversed. Nothing moves when c holds
// fewer than n cards.
func (c *Collection) Deal(target *Collection, n int) error {
	if n < 0 {
		return fmt.Errorf("%s: cannot deal %d cards", c.label, n)
	}
	if n > len(c.cards) {
		return fmt.Errorf("%s: dealing %d of %d cards: %w", c.label, n, len(c.cards), ErrEmpty)
	}
	for i := 0; i < n; i++ {
		card := c.cards[len(c.cards)-1]
		c.cards = c.cards[:len(c.cards)-1]
		target.cards = append(target.cards, card)
	}
	return nil
}

// DealAll moves every remaining card onto target
func (c *Collection) DealAll(target *Collection) {
	// Cannot fail: n is exactly the number of cards held.
	_ = c.Deal(target, len(c.cards))
}

// Size returns the number of cards
func (c *Collection) Size() int {
	return len(c.cards)
}

// IsEmpty returns true if there are no cards left
func (c *Collection) IsEmpty() bool {
	return len(c.cards) == 0
}

// Label returns the collection's diagnostic label
func (c *Collection) Label() string {
	return c.label
}

// Cards returns a copy of the cards, bottom first
func (c *Collection) Cards() []Card {
	cards := make([]Card, len(c.cards))
	copy(cards, c.cards)
	return cards
}

// PointTotal sums the point values of the held cards
func (c *Collection) PointTotal() int {
	return PointTotal(c.cards)
}

// Clear removes every card
func (c *Collection) Clear() {
	c.cards = c.cards[:0]
}

// String lists the label and the cards
func (c *Collection) String() string {
	names := make([]string, len(c.cards))
	for i, card := range c.cards {
		names[i] = card.String()
	}
	return fmt.Sprintf("%s contains: [%s]", c.label, strings.Join(names, ", "))
}
