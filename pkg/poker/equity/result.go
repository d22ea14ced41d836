package equity

// Result holds per-player win/tie/lose fractions.
// For every player win+tie+lose == 1, and summed across players the win and
// tie fractions add to 1.
type Result struct {
	Win     []float64 `json:"win"`
	Tie     []float64 `json:"tie"`
	Lose    []float64 `json:"lose"`
	Samples int       `json:"samples"`
}

func newResult(numPlayers int) *Result {
	return &Result{
		Win:  make([]float64, numPlayers),
		Tie:  make([]float64, numPlayers),
		Lose: make([]float64, numPlayers),
	}
}
