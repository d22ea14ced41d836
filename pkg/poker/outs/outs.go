// Package outs analyzes a heads-up turn scenario and classifies every
// possible river card as a win-out or tie-out for the hero.
package outs

import (
	"errors"
	"fmt"

	"pokerequity-server/pkg/deck"
	"pokerequity-server/pkg/poker/equity"
	"pokerequity-server/pkg/poker/hand"
)

// ErrInvalidOutsInput is an error when the hero, villain, or board has the
// wrong number of cards
var ErrInvalidOutsInput = errors.New("invalid outs input")

// suppression thresholds: outs reporting is noise once the hero is roughly
// even or already favored
const (
	suppressTieAt = 0.50
	suppressWinAt = 0.45
)

// Out is a river card that improves the hero's outcome, tagged with the hand
// category the card completes
type Out struct {
	Card     *deck.Card    `json:"card"`
	Category hand.Category `json:"category"`
}

// Suppression explains why outs were not reported
type Suppression struct {
	Reason      string  `json:"reason"`
	BaselineWin float64 `json:"baseline_win"`
	BaselineTie float64 `json:"baseline_tie"`
}

// Result is the outcome of a turn-outs analysis. Either Suppressed is set and
// the out lists are empty, or the out lists and baselines are populated.
type Result struct {
	Suppressed      *Suppression `json:"suppressed,omitempty"`
	WinOuts         []Out        `json:"win_outs"`
	TieOuts         []Out        `json:"tie_outs"`
	BaselineWin     float64      `json:"baseline_win"`
	BaselineTie     float64      `json:"baseline_tie"`
	BaselineLose    float64      `json:"baseline_lose"`
	TotalRiverCards int          `json:"total_river_cards"`
}

// Calculator computes turn outs using an equity engine for the baseline and
// its evaluator for per-river classification
type Calculator struct {
	engine *equity.Engine
}

// New returns a Calculator backed by a fresh engine
func New() *Calculator {
	return NewWithEngine(equity.New())
}

// NewWithEngine returns a Calculator sharing the given engine's evaluator cache
func NewWithEngine(engine *equity.Engine) *Calculator {
	return &Calculator{engine: engine}
}

// Calculate runs the turn-outs analysis for hero versus villain on a 4-card
// board. The baseline comes from exact enumeration of the single river card.
func (c *Calculator) Calculate(hero, villain *deck.Hole, board *deck.Board) (*Result, error) {
	if hero == nil || villain == nil {
		return nil, fmt.Errorf("%w: hero and villain holes are required", ErrInvalidOutsInput)
	}

	if board == nil || len(board.Cards) != 4 {
		got := 0
		if board != nil {
			got = len(board.Cards)
		}
		return nil, fmt.Errorf("%w: board must have exactly 4 cards (turn), got %d", ErrInvalidOutsInput, got)
	}

	players := []*deck.Hole{hero, villain}
	baseline, err := c.engine.Compute(players, board, nil, equity.Options{Mode: equity.ModeExact})
	if err != nil {
		return nil, err
	}

	result := &Result{
		WinOuts:      []Out{},
		TieOuts:      []Out{},
		BaselineWin:  baseline.Win[0],
		BaselineTie:  baseline.Tie[0],
		BaselineLose: baseline.Lose[0],
	}

	if baseline.Tie[0] >= suppressTieAt {
		result.Suppressed = &Suppression{
			Reason:      "hand is already likely to split",
			BaselineWin: baseline.Win[0],
			BaselineTie: baseline.Tie[0],
		}
		return result, nil
	}

	if baseline.Win[0] >= suppressWinAt {
		result.Suppressed = &Suppression{
			Reason:      "hero is already favored",
			BaselineWin: baseline.Win[0],
			BaselineTie: baseline.Tie[0],
		}
		return result, nil
	}

	known := []*deck.Card{
		hero.Cards[0], hero.Cards[1],
		villain.Cards[0], villain.Cards[1],
	}
	known = append(known, board.Cards...)
	rivers := deck.New().Remaining(known...)
	result.TotalRiverCards = len(rivers)

	evaluator := c.engine.Evaluator()
	complete := make([]*deck.Card, 5)
	copy(complete, board.Cards)

	heroSeven := []*deck.Card{hero.Cards[0], hero.Cards[1], nil, nil, nil, nil, nil}
	villainSeven := []*deck.Card{villain.Cards[0], villain.Cards[1], nil, nil, nil, nil, nil}

	for _, river := range rivers {
		complete[4] = river
		copy(heroSeven[2:], complete)
		copy(villainSeven[2:], complete)

		heroRank, err := evaluator.Evaluate7(heroSeven)
		if err != nil {
			return nil, err
		}

		villainRank, err := evaluator.Evaluate7(villainSeven)
		if err != nil {
			return nil, err
		}

		switch hand.Compare(heroRank, villainRank) {
		case 1:
			result.WinOuts = append(result.WinOuts, Out{Card: river, Category: heroRank.Category})
		case 0:
			result.TieOuts = append(result.TieOuts, Out{Card: river, Category: heroRank.Category})
		}
	}

	return result, nil
}
