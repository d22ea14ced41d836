package hand

// Rank is the evaluated strength of a 5-card hand: the category plus the
// ordered tiebreak vector used within the category
type Rank struct {
	Category Category `json:"category"`
	Tiebreak []int    `json:"tiebreak"`
}

// Compare returns -1, 0, or 1 if a is weaker than, equal to, or stronger
// than b. The comparison is a total order: category first, then the tiebreak
// vectors compared lexicographically with the shorter vector zero-padded.
func Compare(a, b Rank) int {
	if a.Category != b.Category {
		if a.Category > b.Category {
			return 1
		}

		return -1
	}

	n := len(a.Tiebreak)
	if len(b.Tiebreak) > n {
		n = len(b.Tiebreak)
	}

	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a.Tiebreak) {
			av = a.Tiebreak[i]
		}
		if i < len(b.Tiebreak) {
			bv = b.Tiebreak[i]
		}

		if av != bv {
			if av > bv {
				return 1
			}

			return -1
		}
	}

	return 0
}
