// Package vocab computes characteristic vocabulary from token sequences.
package vocab

import (
	"sort"

	"github.com/verte-zerg/bibaboba/internal/model"
)

// FreqDist counts token occurrences and remembers the order in which tokens first appeared.
type FreqDist struct {
	counts map[string]int
	order  []string
	total  int
}

// NewFreqDist builds a distribution over tokens.
func NewFreqDist(tokens []string) *FreqDist {
	fd := &FreqDist{counts: make(map[string]int)}
	for _, tok := range tokens {
		fd.Add(tok)
	}
	return fd
}

// Add records one occurrence of token.
func (fd *FreqDist) Add(token string) {
	if _, ok := fd.counts[token]; !ok {
		fd.order = append(fd.order, token)
	}
	fd.counts[token]++
	fd.total++
}

// Count returns the number of occurrences of token, zero when absent.
func (fd *FreqDist) Count(token string) int {
	return fd.counts[token]
}

// Total returns the number of recorded occurrences.
func (fd *FreqDist) Total() int {
	return fd.total
}

// Distinct returns the number of distinct tokens.
func (fd *FreqDist) Distinct() int {
	return len(fd.order)
}

// MostCommon returns up to n tokens ordered by descending count.
// Equal counts keep first-appearance order. Quotient is left zero.
func (fd *FreqDist) MostCommon(n int) []model.RankedWord {
	if n <= 0 || len(fd.order) == 0 {
		return nil
	}
	items := make([]model.RankedWord, 0, len(fd.order))
	for _, tok := range fd.order {
		items = append(items, model.RankedWord{Word: tok, Count: fd.counts[tok]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}
