package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCardFromString(t *testing.T) {
	a := assert.New(t)

	card, err := CardFromString("14s")
	a.NoError(err)
	a.Equal(Ace, card.Rank)
	a.Equal(Spades, card.Suit)

	card, err = CardFromString("as")
	a.NoError(err)
	a.Equal(Ace, card.Rank)
	a.Equal(Spades, card.Suit)

	card, err = CardFromString("10d")
	a.NoError(err)
	a.Equal(10, card.Rank)
	a.Equal(Diamonds, card.Suit)

	card, err = CardFromString("Jh")
	a.NoError(err)
	a.Equal(Jack, card.Rank)
	a.Equal(Hearts, card.Suit)

	card, err = CardFromString("2c")
	a.NoError(err)
	a.Equal(2, card.Rank)
	a.Equal(Clubs, card.Suit)

	for _, bad := range []string{"", "1s", "15s", "14x", "14", "s14", "14s 13s", "14ss"} {
		card, err = CardFromString(bad)
		a.Nil(card)
		a.ErrorIs(err, ErrInvalidCardFormat)
	}
}

func TestCardsFromString(t *testing.T) {
	a := assert.New(t)

	cards, err := CardsFromString("14s  13h 2d")
	a.NoError(err)
	a.Len(cards, 3)
	a.Equal("14s 13h 2d", CardsToString(cards))

	cards, err = CardsFromString("")
	a.NoError(err)
	a.Len(cards, 0)

	cards, err = CardsFromString("14s nope")
	a.Nil(cards)
	a.ErrorIs(err, ErrInvalidCardFormat)
}

func TestCard_String(t *testing.T) {
	a := assert.New(t)
	a.Equal("A♠", (&Card{Rank: Ace, Suit: Spades}).String())
	a.Equal("10♡", (&Card{Rank: 10, Suit: Hearts}).String())
	a.Equal("J♣", (&Card{Rank: Jack, Suit: Clubs}).String())
	a.Equal("Q♢", (&Card{Rank: Queen, Suit: Diamonds}).String())
}

func TestCard_Equal(t *testing.T) {
	a := assert.New(t)
	a.True((&Card{Rank: 5, Suit: Clubs}).Equal(&Card{Rank: 5, Suit: Clubs}))
	a.False((&Card{Rank: 5, Suit: Clubs}).Equal(&Card{Rank: 5, Suit: Spades}))
	a.False((&Card{Rank: 5, Suit: Clubs}).Equal(&Card{Rank: 6, Suit: Clubs}))
}

func TestCardToString(t *testing.T) {
	a := assert.New(t)
	a.Equal("14h", CardToString(&Card{Rank: Ace, Suit: Hearts}))
	a.Equal("2c", CardToString(&Card{Rank: 2, Suit: Clubs}))
	a.Equal("", CardToString(nil))
}
