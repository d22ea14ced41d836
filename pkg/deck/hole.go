package deck

import (
	"fmt"
)

// Hole is a player's two private cards
type Hole struct {
	Cards [2]*Card `json:"cards"`
}

// NewHole returns a Hole from exactly two distinct cards
func NewHole(a, b *Card) (*Hole, error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: a hole requires two cards", ErrInvalidCardFormat)
	}

	if a.Equal(b) {
		return nil, fmt.Errorf("%w: hole cards must be distinct (%s)", ErrInvalidCardFormat, CardToString(a))
	}

	return &Hole{Cards: [2]*Card{a, b}}, nil
}

// HoleFromString parses a two-card hole like "14h 14d"
func HoleFromString(s string) (*Hole, error) {
	cards, err := CardsFromString(s)
	if err != nil {
		return nil, err
	}

	if len(cards) != 2 {
		return nil, fmt.Errorf("%w: a hole requires exactly 2 cards, got %d", ErrInvalidCardFormat, len(cards))
	}

	return NewHole(cards[0], cards[1])
}

// Board is the set of community cards (0 to 5)
type Board struct {
	Cards []*Card `json:"cards"`
}

// BoardFromString parses a board of 0-5 space-separated cards
func BoardFromString(s string) (*Board, error) {
	cards, err := CardsFromString(s)
	if err != nil {
		return nil, err
	}

	if len(cards) > 5 {
		return nil, fmt.Errorf("%w: a board cannot have more than 5 cards, got %d", ErrInvalidCardFormat, len(cards))
	}

	return &Board{Cards: cards}, nil
}
