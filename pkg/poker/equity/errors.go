package equity

import (
	"errors"
	"fmt"

	"pokerequity-server/pkg/deck"
)

// ErrTooFewPlayers is an error when fewer than two holes are supplied
var ErrTooFewPlayers = errors.New("at least 2 players required")

// ErrBoardTooLarge is an error when the board has more than five cards
var ErrBoardTooLarge = errors.New("board cannot have more than 5 cards")

// DuplicateCardError names a card appearing more than once across the
// holes, board, and dead cards
type DuplicateCardError struct {
	Card *deck.Card
}

func (e *DuplicateCardError) Error() string {
	return fmt.Sprintf("duplicate card: %s", deck.CardToString(e.Card))
}

// InsufficientDeckError is an error when the remaining deck cannot complete
// the board
type InsufficientDeckError struct {
	Need int
	Have int
}

func (e *InsufficientDeckError) Error() string {
	return fmt.Sprintf("not enough cards in deck: need %d, have %d", e.Need, e.Have)
}
