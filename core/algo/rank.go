package algo

import (
	"math"
	"slices"

	"github.com/huangsam/rvss/schema"
)

// RankResults sorts results by their highest score in descending order and
// returns the top 'limit' results. Failed results sort last and a limit of 0
// or less returns everything. The sort is stable so ties keep input order.
func RankResults(results []schema.ScoreResult, limit int) []schema.ScoreResult {
	slices.SortStableFunc(results, func(a, b schema.ScoreResult) int {
		ka, kb := rankKey(a), rankKey(b)
		switch {
		case ka > kb:
			return -1
		case ka < kb:
			return 1
		default:
			return 0
		}
	})
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}

func rankKey(r schema.ScoreResult) float64 {
	if r.Error != "" {
		return -2
	}
	if r.Custom != nil {
		return -1
	}
	return math.Max(r.Base, math.Max(r.Temporal, r.Environmental))
}
