package outs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/poker/hand"
)

func hole(t *testing.T, s string) *deck.Hole {
	t.Helper()
	h, err := deck.HoleFromString(s)
	assert.NoError(t, err)
	return h
}

func board(t *testing.T, s string) *deck.Board {
	t.Helper()
	b, err := deck.BoardFromString(s)
	assert.NoError(t, err)
	return b
}

func TestCalculator_Calculate_flushDraw(t *testing.T) {
	a := assert.New(t)

	// a bare flush draw against kings: the nine remaining hearts win
	result, err := New().Calculate(
		hole(t, "3h 5h"),
		hole(t, "13s 13d"),
		board(t, "2h 7h 8s 12c"),
	)
	a.NoError(err)
	a.Nil(result.Suppressed)
	a.Equal(44, result.TotalRiverCards)
	a.InDelta(9.0/44.0, result.BaselineWin, 1e-9)
	a.InDelta(float64(0), result.BaselineTie, 1e-9)

	a.Len(result.WinOuts, 9)
	a.Len(result.TieOuts, 0)
	for _, out := range result.WinOuts {
		a.Equal(deck.Hearts, out.Card.Suit)
		a.Equal(hand.Flush, out.Category)
	}
}

func TestCalculator_Calculate_tieOuts(t *testing.T) {
	a := assert.New(t)

	// a dead hand against aces on a one-liner board: every river that makes
	// the board play (a straight, flush, or straight flush) splits the pot
	result, err := New().Calculate(
		hole(t, "2s 3s"),
		hole(t, "14s 14h"),
		board(t, "5c 6c 7c 8c"),
	)
	a.NoError(err)
	a.Nil(result.Suppressed)
	a.InDelta(float64(0), result.BaselineWin, 1e-9)
	a.InDelta(15.0/44.0, result.BaselineTie, 1e-9)

	// nine clubs plus the three off-suit fours and three off-suit nines
	a.Len(result.WinOuts, 0)
	a.Len(result.TieOuts, 15)

	categories := make(map[string]hand.Category, len(result.TieOuts))
	for _, out := range result.TieOuts {
		categories[deck.CardToString(out.Card)] = out.Category
	}
	a.Equal(hand.Straight, categories["4h"])
	a.Equal(hand.StraightFlush, categories["4c"])
	a.Equal(hand.StraightFlush, categories["9c"])
	a.Equal(hand.Flush, categories["13c"])
}

func TestCalculator_Calculate_suppressedWhenFavored(t *testing.T) {
	a := assert.New(t)

	result, err := New().Calculate(
		hole(t, "14s 14h"),
		hole(t, "13s 13h"),
		board(t, "2c 7d 9h 10c"),
	)
	a.NoError(err)
	a.NotNil(result.Suppressed)
	a.Equal("hero is already favored", result.Suppressed.Reason)
	a.InDelta(42.0/44.0, result.Suppressed.BaselineWin, 1e-9)
	a.Len(result.WinOuts, 0)
	a.Len(result.TieOuts, 0)
	a.Equal(0, result.TotalRiverCards)
}

func TestCalculator_Calculate_suppressedWhenSplitting(t *testing.T) {
	a := assert.New(t)

	// board quads: every river of rank five or higher gives both players the
	// same kicker, a chopped board
	result, err := New().Calculate(
		hole(t, "2s 3s"),
		hole(t, "4d 5d"),
		board(t, "10c 10d 10h 10s"),
	)
	a.NoError(err)
	a.NotNil(result.Suppressed)
	a.Equal("hand is already likely to split", result.Suppressed.Reason)
	a.InDelta(35.0/44.0, result.Suppressed.BaselineTie, 1e-9)
	a.Len(result.WinOuts, 0)
	a.Len(result.TieOuts, 0)
}

func TestCalculator_Calculate_invalidInput(t *testing.T) {
	a := assert.New(t)
	c := New()

	_, err := c.Calculate(nil, hole(t, "13s 13d"), board(t, "2h 7h 8s 12c"))
	a.ErrorIs(err, ErrInvalidOutsInput)

	_, err = c.Calculate(hole(t, "14h 5h"), nil, board(t, "2h 7h 8s 12c"))
	a.ErrorIs(err, ErrInvalidOutsInput)

	_, err = c.Calculate(hole(t, "14h 5h"), hole(t, "13s 13d"), board(t, "2h 7h 8s"))
	a.ErrorIs(err, ErrInvalidOutsInput)

	_, err = c.Calculate(hole(t, "14h 5h"), hole(t, "13s 13d"), nil)
	a.ErrorIs(err, ErrInvalidOutsInput)
}
