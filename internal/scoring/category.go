package scoring

import "github.com/calibrate-app/calibrate/internal/round"

// CategoryStats is accuracy and Brier score restricted to one category.
type CategoryStats struct {
	Category string
	Count    int
	Correct  int
	Brier    float64
}

// Accuracy returns Correct / Count.
func (c CategoryStats) Accuracy() float64 {
	if c.Count == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Count)
}

// CategoryBreakdown groups submissions by question category, in the order
// each category first appears. Uncategorized questions are reported under
// the empty string.
func CategoryBreakdown(subs []round.Submission) []CategoryStats {
	var order []string
	groups := make(map[string][]round.Submission)
	for _, s := range subs {
		cat := s.Question.Category
		if _, ok := groups[cat]; !ok {
			order = append(order, cat)
		}
		groups[cat] = append(groups[cat], s)
	}

	out := make([]CategoryStats, 0, len(order))
	for _, cat := range order {
		g := groups[cat]
		st := CategoryStats{Category: cat, Count: len(g)}
		for _, s := range g {
			if s.Correct {
				st.Correct++
			}
		}
		st.Brier, _ = BrierScore(g)
		out = append(out, st)
	}
	return out
}
