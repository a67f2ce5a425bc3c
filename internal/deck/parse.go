package deck

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrNoSuit is returned when text names no recognised suit
	ErrNoSuit = errors.New("no suit found")
	// ErrNoRank is returned when text names no recognised rank
	ErrNoRank = errors.New("no rank found")
	// ErrAmbiguous is returned when text names more than one suit or rank
	ErrAmbiguous = errors.New("more than one suit or rank")
)

var (
	suitsByName = map[string]Suit{}
	ranksByName = map[string]Rank{}
)

func init() {
	for _, s := range Suits {
		suitsByName[s.String()] = s
	}
	for _, r := range Ranks {
		ranksByName[r.String()] = r
	}
}

// ParseCard parses free text such as "eight of spades" or "SPADES EIGHT"
// into a Card. The text must contain exactly one suit name and exactly one
// rank name, case-insensitively, anywhere in the string. Other words are
// ignored.
func ParseCard(text string) (Card, error) {
	var (
		suit  Suit
		rank  Rank
		dupes bool
	)

	for _, token := range tokenize(text) {
		if s, ok := suitsByName[token]; ok {
			if suit != NoSuit && suit != s {
				dupes = true
			}
			suit = s
			continue
		}
		if r, ok := ranksByName[token]; ok {
			if rank != 0 && rank != r {
				dupes = true
			}
			rank = r
		}
	}

	switch {
	case dupes:
		return Card{}, fmt.Errorf("parse card %q: %w", text, ErrAmbiguous)
	case suit == NoSuit:
		return Card{}, fmt.Errorf("parse card %q: %w", text, ErrNoSuit)
	case rank == 0:
		return Card{}, fmt.Errorf("parse card %q: %w", text, ErrNoRank)
	}

	return NewCard(suit, rank), nil
}

// ParseSuit parses a suit name. Only an exact (case-insensitive) suit name
// is accepted.
func ParseSuit(text string) (Suit, error) {
	if s, ok := suitsByName[strings.ToUpper(strings.TrimSpace(text))]; ok {
		return s, nil
	}
	return NoSuit, fmt.Errorf("parse suit %q: %w", text, ErrNoSuit)
}

// tokenize splits text into upper-cased alphabetic words
func tokenize(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	for i, f := range fields {
		fields[i] = strings.ToUpper(f)
	}
	return fields
}
