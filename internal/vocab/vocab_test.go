package vocab

import (
	"math"
	"testing"

	"github.com/verte-zerg/bibaboba/internal/model"
)

func TestDifferenceKeepsOrderAndDuplicates(t *testing.T) {
	a := []string{"x", "y", "x", "z", "x"}
	b := []string{"y", "y", "y", "z"}
	got := Difference(a, b, 3)
	expected := []string{"x", "x", "z", "x"}
	assertTokens(t, got, expected)
}

func TestDifferenceEmptyInputs(t *testing.T) {
	for _, threshold := range []int{-1, 0, 1, 3, 10} {
		if got := Difference(nil, []string{"a"}, threshold); len(got) != 0 {
			t.Fatalf("threshold %d: expected empty result for empty a, got %v", threshold, got)
		}
	}
	a := []string{"a", "b", "a"}
	for _, threshold := range []int{1, 3, 10} {
		assertTokens(t, Difference(a, nil, threshold), a)
	}
}

func TestDifferenceNonPositiveThreshold(t *testing.T) {
	a := []string{"a", "b"}
	for _, threshold := range []int{0, -5} {
		if got := Difference(a, nil, threshold); len(got) != 0 {
			t.Fatalf("threshold %d: expected empty result, got %v", threshold, got)
		}
	}
}

func TestDifferenceThresholdMonotonic(t *testing.T) {
	a := []string{"a", "b", "c", "d", "a", "b", "e"}
	b := []string{"a", "b", "b", "c", "c", "c", "d", "d", "d", "d"}
	prev := -1
	for threshold := 6; threshold >= 0; threshold-- {
		size := len(Difference(a, b, threshold))
		if prev >= 0 && size > prev {
			t.Fatalf("difference grew from %d to %d when threshold dropped to %d", prev, size, threshold)
		}
		prev = size
	}
	loose := NewFreqDist(Difference(a, b, 3))
	for _, tok := range Difference(a, b, 1) {
		if loose.Count(tok) == 0 {
			t.Fatalf("token %q at threshold 1 missing at threshold 3", tok)
		}
	}
}

func TestRankTieBreakByFirstAppearance(t *testing.T) {
	got := Rank([]string{"a", "b", "a", "b", "c"}, 3)
	expected := []model.RankedWord{
		{Word: "a", Count: 2, Quotient: 0.4},
		{Word: "b", Count: 2, Quotient: 0.4},
		{Word: "c", Count: 1, Quotient: 0.2},
	}
	assertRanked(t, got, expected)
}

func TestRankTieBreakIsNotLexical(t *testing.T) {
	got := Rank([]string{"zeta", "alpha", "zeta", "alpha", "beta"}, 2)
	if len(got) != 2 || got[0].Word != "zeta" || got[1].Word != "alpha" {
		t.Fatalf("unexpected order: %+v", got)
	}
}

func TestRankQuotientsSumToOne(t *testing.T) {
	diff := []string{"a", "b", "c", "a", "d", "e", "a", "b", "f"}
	for _, limit := range []int{1, 2, 3, 6, 100} {
		rows := Rank(diff, limit)
		if len(rows) > limit {
			t.Fatalf("limit %d: got %d rows", limit, len(rows))
		}
		sum := 0.0
		for _, row := range rows {
			sum += row.Quotient
		}
		if math.Abs(sum-1) > 1e-9 {
			t.Fatalf("limit %d: quotients sum to %f", limit, sum)
		}
	}
}

func TestRankLimitBeyondDistinct(t *testing.T) {
	rows := Rank([]string{"a", "b", "a"}, 10)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
}

func TestRankEmptyAndZeroLimit(t *testing.T) {
	if rows := Rank(nil, 5); len(rows) != 0 {
		t.Fatalf("expected no rows for empty input, got %+v", rows)
	}
	if rows := Rank([]string{"a"}, 0); len(rows) != 0 {
		t.Fatalf("expected no rows for zero limit, got %+v", rows)
	}
	if rows := RankOverTotal(nil, 5); len(rows) != 0 {
		t.Fatalf("expected no rows for empty input, got %+v", rows)
	}
}

func TestRankWindowAndTotalQuotientsDiffer(t *testing.T) {
	diff := []string{"pizza", "pizza", "is", "great"}
	window := Rank(diff, 2)
	total := RankOverTotal(diff, 2)
	assertRanked(t, window, []model.RankedWord{
		{Word: "pizza", Count: 2, Quotient: 2.0 / 3.0},
		{Word: "is", Count: 1, Quotient: 1.0 / 3.0},
	})
	assertRanked(t, total, []model.RankedWord{
		{Word: "pizza", Count: 2, Quotient: 0.5},
		{Word: "is", Count: 1, Quotient: 0.25},
	})
	full := Rank(diff, 10)
	fullTotal := RankOverTotal(diff, 10)
	assertRanked(t, full, fullTotal)
}

func TestFreqDistCounts(t *testing.T) {
	fd := NewFreqDist([]string{"i", "love", "pasta", "love"})
	if fd.Count("love") != 2 || fd.Count("pizza") != 0 {
		t.Fatalf("unexpected counts: love=%d pizza=%d", fd.Count("love"), fd.Count("pizza"))
	}
	if fd.Total() != 4 || fd.Distinct() != 3 {
		t.Fatalf("unexpected totals: total=%d distinct=%d", fd.Total(), fd.Distinct())
	}
}

func assertTokens(t *testing.T, got, expected []string) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Fatalf("expected %q at index %d, got %q", expected[i], i, got[i])
		}
	}
}

func assertRanked(t *testing.T, got, expected []model.RankedWord) {
	t.Helper()
	if len(got) != len(expected) {
		t.Fatalf("expected %d rows, got %d: %+v", len(expected), len(got), got)
	}
	for i := range expected {
		if got[i].Word != expected[i].Word || got[i].Count != expected[i].Count {
			t.Fatalf("row %d: expected %+v, got %+v", i, expected[i], got[i])
		}
		if math.Abs(got[i].Quotient-expected[i].Quotient) > 1e-9 {
			t.Fatalf("row %d: expected quotient %f, got %f", i, expected[i].Quotient, got[i].Quotient)
		}
	}
}
