package question

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// SelectOptions controls how a round's question sequence is drawn from a bank.
type SelectOptions struct {
	// Count is the number of questions to draw. 0 means all that match.
	Count int

	// Category restricts the draw to one category (case-insensitive).
	// Empty means every category.
	Category string

	// Shuffle randomizes the order before truncating to Count.
	Shuffle bool

	// Seed makes the shuffle reproducible.
	Seed uint64
}

// Select returns a fresh question sequence for one round. The input slice is
// never modified.
func Select(questions []Question, opts SelectOptions) ([]Question, error) {
	if opts.Count < 0 {
		return nil, fmt.Errorf("question count must not be negative, got %d", opts.Count)
	}

	pool := make([]Question, 0, len(questions))
	for _, q := range questions {
		if opts.Category != "" && !strings.EqualFold(q.Category, opts.Category) {
			continue
		}
		pool = append(pool, q)
	}
	if len(pool) == 0 {
		if opts.Category != "" {
			return nil, fmt.Errorf("no questions in category %q", opts.Category)
		}
		return nil, ErrEmptyBank
	}

	if opts.Shuffle {
		rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
		rng.Shuffle(len(pool), func(i, j int) {
			pool[i], pool[j] = pool[j], pool[i]
		})
	}

	if opts.Count > 0 && opts.Count < len(pool) {
		pool = pool[:opts.Count]
	}
	return pool, nil
}
