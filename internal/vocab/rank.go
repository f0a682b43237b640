package vocab

import "github.com/verte-zerg/bibaboba/internal/model"

// Rank returns the top limit words of diff by count. Quotients are shares of the
// returned window, so they sum to 1 over the rows returned.
func Rank(diff []string, limit int) []model.RankedWord {
	top := NewFreqDist(diff).MostCommon(limit)
	sum := 0
	for _, row := range top {
		sum += row.Count
	}
	return withQuotients(top, sum)
}

// RankOverTotal is Rank with quotients computed against the whole difference set.
func RankOverTotal(diff []string, limit int) []model.RankedWord {
	fd := NewFreqDist(diff)
	return withQuotients(fd.MostCommon(limit), fd.Total())
}

func withQuotients(rows []model.RankedWord, denom int) []model.RankedWord {
	out := make([]model.RankedWord, 0, len(rows))
	for _, row := range rows {
		if denom > 0 {
			row.Quotient = float64(row.Count) / float64(denom)
		}
		out = append(out, row)
	}
	return out
}
