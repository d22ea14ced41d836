package equity

import (
	"pokerequity-server/pkg/deck"
)

// Accelerator is a substitutable backend for exhaustive preflop enumeration.
// Implementations must produce results equivalent to the engine's exact path
// within floating-point tolerance.
type Accelerator interface {
	Name() string
	PreflopEquity(players []*deck.Hole, remaining []*deck.Card) (*Result, error)
}

// DefaultAccelerator returns the pure-Go flat-array enumerator
func DefaultAccelerator() Accelerator {
	return flatEnumerator{}
}

// flatEnumerator enumerates preflop equity over flat byte-encoded cards with
// packed integer hand scores. It trades the evaluator's memoization for an
// allocation-free inner loop, which wins on the C(48,5)-scale workload.
type flatEnumerator struct{}

func (flatEnumerator) Name() string {
	return "flat-enumerator"
}

// encode packs a card into a byte: rank in the high bits, suit in the low two
func encode(card *deck.Card) uint8 {
	var suit uint8
	switch card.Suit {
	case deck.Diamonds:
		suit = 1
	case deck.Hearts:
		suit = 2
	case deck.Spades:
		suit = 3
	}

	return uint8(card.Rank)<<2 | suit
}

func (flatEnumerator) PreflopEquity(players []*deck.Hole, remaining []*deck.Card) (*Result, error) {
	if len(players) < 2 {
		return nil, ErrTooFewPlayers
	}

	if len(remaining) < 5 {
		return nil, &InsufficientDeckError{Need: 5, Have: len(remaining)}
	}

	holes := make([][2]uint8, len(players))
	for i, hole := range players {
		holes[i] = [2]uint8{encode(hole.Cards[0]), encode(hole.Cards[1])}
	}

	cards := make([]uint8, len(remaining))
	for i, card := range remaining {
		cards[i] = encode(card)
	}

	numPlayers := len(players)
	wins := make([]float64, numPlayers)
	ties := make([]float64, numPlayers)
	winners := make([]int, 0, numPlayers)

	var seven [7]uint8
	idxs := [5]int{0, 1, 2, 3, 4}
	n := len(cards)
	samples := 0

	for {
		for i, idx := range idxs {
			seven[2+i] = cards[idx]
		}

		winners = winners[:0]
		best := int32(-1)
		for p := range holes {
			seven[0], seven[1] = holes[p][0], holes[p][1]

			score := scoreSeven(&seven)
			if score > best {
				best = score
				winners = winners[:0]
				winners = append(winners, p)
			} else if score == best {
				winners = append(winners, p)
			}
		}

		credit(wins, ties, winners)
		samples++

		i := 4
		for i >= 0 && idxs[i] == n-5+i {
			i--
		}
		if i < 0 {
			break
		}

		idxs[i]++
		for j := i + 1; j < 5; j++ {
			idxs[j] = idxs[j-1] + 1
		}
	}

	return normalize(wins, ties, samples), nil
}

// scoreSeven returns the best packed score over the 21 five-card subsets
func scoreSeven(cards *[7]uint8) int32 {
	best := int32(-1)
	var five [5]uint8

	for _, subset := range scoreSubsets {
		for i, idx := range subset {
			five[i] = cards[idx]
		}

		if s := scoreFive(&five); s > best {
			best = s
		}
	}

	return best
}

// scoreFive packs a 5-card classification into a single comparable integer:
// the category followed by the five tiebreak slots in base 15, mirroring the
// rank ordering of hand.Compare
func scoreFive(cards *[5]uint8) int32 {
	var counts [15]int8
	suit := cards[0] & 3
	flush := true

	for _, c := range cards {
		counts[c>>2]++
		if c&3 != suit {
			flush = false
		}
	}

	high := flatStraightHigh(&counts)

	if flush && high > 0 {
		if high == deck.Ace {
			return pack(9, 0, 0, 0, 0, 0)
		}

		return pack(8, high, 0, 0, 0, 0)
	}

	var quad, trips int
	var pairs, singles [5]int
	numPairs, numSingles := 0, 0
	for rank := deck.Ace; rank >= 2; rank-- {
		switch counts[rank] {
		case 4:
			quad = rank
		case 3:
			trips = rank
		case 2:
			pairs[numPairs] = rank
			numPairs++
		case 1:
			singles[numSingles] = rank
			numSingles++
		}
	}

	switch {
	case quad > 0:
		return pack(7, quad, singles[0], 0, 0, 0)
	case trips > 0 && numPairs > 0:
		return pack(6, trips, pairs[0], 0, 0, 0)
	case flush:
		return pack(5, singles[0], singles[1], singles[2], singles[3], singles[4])
	case high > 0:
		return pack(4, high, 0, 0, 0, 0)
	case trips > 0:
		return pack(3, trips, singles[0], singles[1], 0, 0)
	case numPairs >= 2:
		return pack(2, pairs[0], pairs[1], singles[0], 0, 0)
	case numPairs == 1:
		return pack(1, pairs[0], singles[0], singles[1], singles[2], 0)
	}

	return pack(0, singles[0], singles[1], singles[2], singles[3], singles[4])
}

func flatStraightHigh(counts *[15]int8) int {
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

	if counts[deck.Ace] == 1 && counts[2] == 1 && counts[3] == 1 && counts[4] == 1 && counts[5] == 1 {
		return 5
	}

	return 0
}

func pack(category, t0, t1, t2, t3, t4 int) int32 {
	s := category
	s = s*15 + t0
	s = s*15 + t1
	s = s*15 + t2
	s = s*15 + t3
	s = s*15 + t4
	return int32(s)
}

// scoreSubsets holds the C(7,5)=21 index subsets of a 7-card hand
var scoreSubsets = buildScoreSubsets()

func buildScoreSubsets() [][5]int {
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
