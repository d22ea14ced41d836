package equity

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"pokerequity-server/internal/rng"
	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/poker/hand"
)

// Engine computes win/tie/lose equity for two or more holes against a
// partial or complete board
type Engine struct {
	evaluator *hand.Evaluator
	accel     Accelerator
}

// New returns an Engine backed by a fresh evaluator and the default
// preflop accelerator
func New() *Engine {
	return &Engine{
		evaluator: hand.NewEvaluator(),
		accel:     DefaultAccelerator(),
	}
}

// WithAccelerator swaps in a different preflop accelerator and returns the
// engine for chaining. Passing nil disables delegation.
func (e *Engine) WithAccelerator(accel Accelerator) *Engine {
	e.accel = accel
	return e
}

// Evaluator returns the engine's hand evaluator
func (e *Engine) Evaluator() *hand.Evaluator {
	return e.evaluator
}

// Compute validates the scenario and returns per-player equity.
// A 5-card board is a deterministic single showdown. An incomplete board is
// completed either by exhaustive enumeration or by Monte Carlo sampling,
// chosen per opts.
func (e *Engine) Compute(players []*deck.Hole, board *deck.Board, dead []*deck.Card, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	if board == nil {
		board = &deck.Board{}
	}

	if err := validate(players, board, dead); err != nil {
		return nil, err
	}

	if len(board.Cards) == 5 {
		return e.showdown(players, board.Cards)
	}

	missing := 5 - len(board.Cards)
	known := knownCards(players, board, dead)
	remaining := deck.New().Remaining(known...)
	if len(remaining) < missing {
		return nil, &InsufficientDeckError{Need: missing, Have: len(remaining)}
	}

	combos := combinations(len(remaining), missing)

	switch opts.Mode {
	case ModeExact:
		return e.enumerate(players, board.Cards, remaining, missing, combos, opts)
	case ModeMC:
		return e.sample(players, board.Cards, remaining, missing, opts)
	default:
		if combos <= opts.ExactMaxCombos {
			return e.enumerate(players, board.Cards, remaining, missing, combos, opts)
		}

		return e.sample(players, board.Cards, remaining, missing, opts)
	}
}

// Validate checks a scenario without computing it: at least two players, at
// most five board cards, no duplicate cards anywhere.
func Validate(players []*deck.Hole, board *deck.Board, dead []*deck.Card) error {
	if board == nil {
		board = &deck.Board{}
	}

	return validate(players, board, dead)
}

func validate(players []*deck.Hole, board *deck.Board, dead []*deck.Card) error {
	if len(players) < 2 {
		return ErrTooFewPlayers
	}

	if len(board.Cards) > 5 {
		return ErrBoardTooLarge
	}

	seen := make(map[deck.Card]bool)
	for _, card := range knownCards(players, board, dead) {
		if seen[*card] {
			return &DuplicateCardError{Card: card}
		}

		seen[*card] = true
	}

	return nil
}

func knownCards(players []*deck.Hole, board *deck.Board, dead []*deck.Card) []*deck.Card {
	known := make([]*deck.Card, 0, len(players)*2+len(board.Cards)+len(dead))
	for _, hole := range players {
		known = append(known, hole.Cards[0], hole.Cards[1])
	}

	known = append(known, board.Cards...)
	return append(known, dead...)
}

// showdown resolves a complete 5-card board: the tied maximum splits the pot
func (e *Engine) showdown(players []*deck.Hole, board []*deck.Card) (*Result, error) {
	winners, err := e.findWinners(players, board, make([]int, 0, len(players)))
	if err != nil {
		return nil, err
	}

	result := newResult(len(players))
	result.Samples = 1

	if len(winners) == 1 {
		result.Win[winners[0]] = 1
	} else {
		tie := 1 / float64(len(winners))
		for _, w := range winners {
			result.Tie[w] = tie
		}
	}

	for i := range players {
		result.Lose[i] = 1 - result.Win[i] - result.Tie[i]
	}

	return result, nil
}

// findWinners evaluates every player's best 7-card hand on the given board
// and returns the indices tied at the maximum. The winners slice is reused.
func (e *Engine) findWinners(players []*deck.Hole, board []*deck.Card, winners []int) ([]int, error) {
	seven := make([]*deck.Card, 7)
	copy(seven[2:], board)

	var best hand.Rank
	winners = winners[:0]

	for i, hole := range players {
		seven[0], seven[1] = hole.Cards[0], hole.Cards[1]

		rank, err := e.evaluator.Evaluate7(seven)
		if err != nil {
			return nil, err
		}

		if i == 0 {
			best = rank
			winners = append(winners, 0)
			continue
		}

		switch hand.Compare(rank, best) {
		case 1:
			best = rank
			winners = winners[:0]
			winners = append(winners, i)
		case 0:
			winners = append(winners, i)
		}
	}

	return winners, nil
}

// enumerate walks every combination of missing cards from the remaining deck.
// The preflop case above the exact-combo threshold goes to the accelerator,
// which has a tighter loop for the C(48,5)-scale workload.
func (e *Engine) enumerate(players []*deck.Hole, board, remaining []*deck.Card, missing int, combos int64, opts Options) (*Result, error) {
	if missing == 5 && e.accel != nil && combos > opts.ExactMaxCombos {
		logrus.WithFields(logrus.Fields{
			"accelerator": e.accel.Name(),
			"combos":      combos,
		}).Debug("delegating preflop enumeration")
		return e.accel.PreflopEquity(players, remaining)
	}

	numPlayers := len(players)
	wins := make([]float64, numPlayers)
	ties := make([]float64, numPlayers)

	complete := make([]*deck.Card, 5)
	copy(complete, board)

	winners := make([]int, 0, numPlayers)
	idxs := make([]int, missing)
	for i := range idxs {
		idxs[i] = i
	}

	n := len(remaining)
	samples := 0

	for {
		for i, idx := range idxs {
			complete[len(board)+i] = remaining[idx]
		}

		var err error
		winners, err = e.findWinners(players, complete, winners)
		if err != nil {
			return nil, err
		}

		credit(wins, ties, winners)
		samples++

		i := missing - 1
		for i >= 0 && idxs[i] == n-missing+i {
			i--
		}
		if i < 0 {
			break
		}

		idxs[i]++
		for j := i + 1; j < missing; j++ {
			idxs[j] = idxs[j-1] + 1
		}
	}

	return normalize(wins, ties, samples), nil
}

// sample runs opts.Iterations Monte Carlo trials, each drawing the missing
// cards from a freshly shuffled remaining deck
func (e *Engine) sample(players []*deck.Hole, board, remaining []*deck.Card, missing int, opts Options) (*Result, error) {
	// a seed gives a reproducible run; otherwise draw from crypto/rand
	var generator rng.Generator = rng.Crypto{}
	if opts.Seed != 0 {
		generator = rand.New(rand.NewSource(opts.Seed))
	}

	numPlayers := len(players)
	wins := make([]float64, numPlayers)
	ties := make([]float64, numPlayers)

	cards := make([]*deck.Card, len(remaining))
	copy(cards, remaining)

	complete := make([]*deck.Card, 5)
	copy(complete, board)

	winners := make([]int, 0, numPlayers)

	for trial := 0; trial < opts.Iterations; trial++ {
		deck.Shuffle(cards, generator)
		copy(complete[len(board):], cards[:missing])

		var err error
		winners, err = e.findWinners(players, complete, winners)
		if err != nil {
			return nil, err
		}

		credit(wins, ties, winners)
	}

	return normalize(wins, ties, opts.Iterations), nil
}

func credit(wins, ties []float64, winners []int) {
	if len(winners) == 1 {
		wins[winners[0]]++
		return
	}

	share := 1 / float64(len(winners))
	for _, w := range winners {
		ties[w] += share
	}
}

func normalize(wins, ties []float64, samples int) *Result {
	result := newResult(len(wins))
	result.Samples = samples

	total := float64(samples)
	for i := range wins {
		result.Win[i] = wins[i] / total
		result.Tie[i] = ties[i] / total
		result.Lose[i] = 1 - result.Win[i] - result.Tie[i]
	}

	return result
}

// combinations returns C(n, k). The inputs are bounded by the deck size, so
// int64 cannot overflow.
func combinations(n, k int) int64 {
	if k < 0 || k > n {
		return 0
	}

	result := int64(1)
	for i := 1; i <= k; i++ {
		result = result * int64(n-k+i) / int64(i)
	}

	return result
}
