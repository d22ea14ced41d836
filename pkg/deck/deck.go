package deck

import (
	"pokerequity-server/internal/rng"
)

// Size is the number of cards in a standard deck
const Size = 52

// Deck represents the 52-card universe
type Deck struct {
	Cards []*Card `json:"cards"`
}

// New returns a new, unshuffled deck of 52 cards
func New() *Deck {
	d := &Deck{}
	d.buildDeck()
	return d
}

func (d *Deck) buildDeck() {
	cards := make([]*Card, 0, Size)
	for _, suit := range Suits {
		for rank := 2; rank <= Ace; rank++ {
			cards = append(cards, &Card{
				Rank: rank,
				Suit: suit,
			})
		}
	}

	d.Cards = cards
}

// Remaining returns the deck minus every known card
func (d *Deck) Remaining(known ...*Card) []*Card {
	seen := make(map[Card]bool, len(known))
	for _, card := range known {
		seen[*card] = true
	}

	remaining := make([]*Card, 0, len(d.Cards))
	for _, card := range d.Cards {
		if !seen[*card] {
			remaining = append(remaining, card)
		}
	}

	return remaining
}

// Shuffle performs a Fisher-Yates shuffle of the cards in place
func Shuffle(cards []*Card, r rng.Generator) {
	for j := len(cards) - 1; j > 0; j-- {
		i := r.Intn(j + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}
