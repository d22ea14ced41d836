package equitycache

import (
	"fmt"
	"sort"
	"strings"

	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/poker/equity"
)

// Key derives the canonical scenario-identity string. It is invariant to card
// order within a hole, the order of the holes themselves, and card order
// within the board and dead cards. The computation mode (and iteration count
// for sampling) is appended since sampled results are not exact.
func Key(players []*deck.Hole, board *deck.Board, dead []*deck.Card, opts equity.Options) string {
	signatures := make([]string, len(players))
	for i, hole := range players {
		signatures[i] = HoleSignature(hole)
	}
	sort.Strings(signatures)

	var boardCards []*deck.Card
	if board != nil {
		boardCards = board.Cards
	}

	return fmt.Sprintf("equity:%s:%s:%s:%s",
		strings.Join(signatures, "|"),
		cardSetSignature(boardCards),
		cardSetSignature(dead),
		modeDiscriminator(opts))
}

// HoleSignature normalizes a hole: cards sorted rank descending, suit letter
// as the tiebreak
func HoleSignature(hole *deck.Hole) string {
	cards := []*deck.Card{hole.Cards[0], hole.Cards[1]}
	sortCanonical(cards)

	return deck.CardToString(cards[0]) + deck.CardToString(cards[1])
}

// CanonicalOrder returns the caller index at each canonical position, i.e.
// the permutation that sorts the holes by their signatures. Cached results
// are stored in canonical order and mapped back through this permutation.
func CanonicalOrder(players []*deck.Hole) []int {
	order := make([]int, len(players))
	for i := range order {
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return HoleSignature(players[order[a]]) < HoleSignature(players[order[b]])
	})

	return order
}

func cardSetSignature(cards []*deck.Card) string {
	sorted := make([]*deck.Card, len(cards))
	copy(sorted, cards)
	sortCanonical(sorted)

	var sb strings.Builder
	for _, card := range sorted {
		sb.WriteString(deck.CardToString(card))
	}

	return sb.String()
}

func sortCanonical(cards []*deck.Card) {
	sort.Slice(cards, func(i, j int) bool {
		if cards[i].Rank != cards[j].Rank {
			return cards[i].Rank > cards[j].Rank
		}

		return cards[i].Suit.Letter() < cards[j].Suit.Letter()
	})
}

func modeDiscriminator(opts equity.Options) string {
	switch opts.Mode {
	case equity.ModeExact:
		return "exact"
	case equity.ModeMC:
		iterations := opts.Iterations
		if iterations <= 0 {
			iterations = equity.DefaultIterations
		}

		return fmt.Sprintf("mc:%d", iterations)
	default:
		return "auto"
	}
}
