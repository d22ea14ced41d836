package hand

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"pokerequity-server/pkg/deck"
)

// ErrInvalidHandSize is an error when Evaluate7 is given anything other than 7 cards
var ErrInvalidHandSize = errors.New("evaluation requires exactly 7 cards")

// fiveCardSubsets holds the C(7,5)=21 index subsets of a 7-card hand
var fiveCardSubsets = buildFiveCardSubsets()

func buildFiveCardSubsets() [][5]int {
	subsets := make([][5]int, 0, 21)
	for i := 0; i < 7; i++ {
		for j := i + 1; j < 7; j++ {
			var subset [5]int
			n := 0
			for k := 0; k < 7; k++ {
				if k != i && k != j {
					subset[n] = k
					n++
				}
			}
			subsets = append(subsets, subset)
		}
	}

	return subsets
}

// Evaluator evaluates 7-card hands and memoizes results by a suit-isomorphism
// signature. Permuting suit labels consistently, or reordering the cards, does
// not change the outcome, so isomorphic hands share a memo entry.
type Evaluator struct {
	mu   sync.RWMutex
	memo map[string]Rank
}

// NewEvaluator returns a new Evaluator with an empty memo cache
func NewEvaluator() *Evaluator {
	return &Evaluator{
		memo: make(map[string]Rank),
	}
}

// Evaluate7 returns the best 5-card Rank from exactly 7 cards
func (e *Evaluator) Evaluate7(cards []*deck.Card) (Rank, error) {
	if len(cards) != 7 {
		return Rank{}, fmt.Errorf("%w (got %d)", ErrInvalidHandSize, len(cards))
	}

	sig := signature(cards)

	e.mu.RLock()
	rank, ok := e.memo[sig]
	e.mu.RUnlock()
	if ok {
		return rank, nil
	}

	best := evaluate5(cards[fiveCardSubsets[0][0]], cards[fiveCardSubsets[0][1]], cards[fiveCardSubsets[0][2]], cards[fiveCardSubsets[0][3]], cards[fiveCardSubsets[0][4]])
	for _, subset := range fiveCardSubsets[1:] {
		r := evaluate5(cards[subset[0]], cards[subset[1]], cards[subset[2]], cards[subset[3]], cards[subset[4]])
		if Compare(r, best) > 0 {
			best = r
		}
	}

	e.mu.Lock()
	e.memo[sig] = best
	e.mu.Unlock()

	return best, nil
}

// CacheSize returns the number of memoized hand signatures
func (e *Evaluator) CacheSize() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.memo)
}

// ClearCache drops all memoized results
func (e *Evaluator) ClearCache() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.memo = make(map[string]Rank)
}

// signature builds a key invariant under card reordering and consistent suit
// relabeling: the ranks held by each suit, each group sorted, then the groups
// themselves sorted so the suit labels drop out.
func signature(cards []*deck.Card) string {
	bySuit := make(map[deck.Suit][]int, 4)
	for _, card := range cards {
		bySuit[card.Suit] = append(bySuit[card.Suit], card.Rank)
	}

	groups := make([]string, 0, len(bySuit))
	for _, ranks := range bySuit {
		sort.Sort(sort.Reverse(sort.IntSlice(ranks)))

		var sb strings.Builder
		for i, r := range ranks {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteByte(byte('a' + r))
		}
		groups = append(groups, sb.String())
	}

	sort.Strings(groups)
	return strings.Join(groups, "|")
}

// evaluate5 classifies a 5-card hand
func evaluate5(c0, c1, c2, c3, c4 *deck.Card) Rank {
	cards := [5]*deck.Card{c0, c1, c2, c3, c4}

	var counts [15]int
	for _, card := range cards {
		counts[card.Rank]++
	}

	isFlush := true
	for _, card := range cards[1:] {
		if card.Suit != cards[0].Suit {
			isFlush = false
			break
		}
	}

	straightHigh := straightHighCard(&counts)
	isStraight := straightHigh > 0

	if isFlush && isStraight {
		if straightHigh == deck.Ace {
			return Rank{Category: RoyalFlush, Tiebreak: []int{}}
		}

		return Rank{Category: StraightFlush, Tiebreak: []int{straightHigh}}
	}

	var quad, trips int
	var pairs, singles []int
	for rank := deck.Ace; rank >= 2; rank-- {
		switch counts[rank] {
		case 4:
			quad = rank
		case 3:
			trips = rank
		case 2:
			pairs = append(pairs, rank)
		case 1:
			singles = append(singles, rank)
		}
	}

	switch {
	case quad > 0:
		return Rank{Category: FourOfAKind, Tiebreak: []int{quad, singles[0]}}
	case trips > 0 && len(pairs) > 0:
		return Rank{Category: FullHouse, Tiebreak: []int{trips, pairs[0]}}
	case isFlush:
		return Rank{Category: Flush, Tiebreak: descendingRanks(cards)}
	case isStraight:
		return Rank{Category: Straight, Tiebreak: []int{straightHigh}}
	case trips > 0:
		return Rank{Category: ThreeOfAKind, Tiebreak: append([]int{trips}, singles...)}
	case len(pairs) >= 2:
		return Rank{Category: TwoPair, Tiebreak: []int{pairs[0], pairs[1], singles[0]}}
	case len(pairs) == 1:
		return Rank{Category: OnePair, Tiebreak: append([]int{pairs[0]}, singles...)}
	}

	return Rank{Category: HighCard, Tiebreak: singles}
}

// straightHighCard returns the high card of a 5-card straight, 5 for the
// wheel (A-2-3-4-5), or 0 if the ranks do not form a straight
func straightHighCard(counts *[15]int) int {
	run := 0
	for rank := 2; rank <= deck.Ace; rank++ {
		if counts[rank] == 0 {
			run = 0
			continue
		}

		if counts[rank] > 1 {
			return 0
		}

		run++
		if run == 5 {
			return rank
		}
	}

	// the wheel: ace plays low under 2-3-4-5
	if counts[deck.Ace] == 1 && counts[2] == 1 && counts[3] == 1 && counts[4] == 1 && counts[5] == 1 {
		return 5
	}

	return 0
}

func descendingRanks(cards [5]*deck.Card) []int {
	ranks := make([]int, 5)
	for i, card := range cards {
		ranks[i] = card.Rank
	}

	sort.Sort(sort.Reverse(sort.IntSlice(ranks)))
	return ranks
}
