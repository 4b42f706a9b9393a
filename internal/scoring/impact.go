package scoring

import (
	"math"
	"sort"
	"time"
)

// maxImpactScore is the upper clamp for a single repository score
const maxImpactScore = 50

// aggregateWeights are applied to the top six project scores, best first.
// Missing slots contribute zero; the divisor is deliberately not
// renormalized, so thin portfolios score lower unless the lead project
// is exceptional.
var aggregateWeights = []float64{0.5, 0.125, 0.125, 0.083, 0.083, 0.083}

// ImpactScore computes the bounded [0,50] score for a single repository.
//
//	popularity: log2(stars + forks*2 + 1) * 3
//	recency:    15 / 10 / 5 / 0 for pushes within 7 / 30 / 90 / more days
//	maturity:   +5 description (>20 chars), +3 homepage, +2 topics
func ImpactScore(repo Repository, now time.Time) int {
	popularity := math.Log2(float64(repo.Stars+repo.Forks*2+1)) * 3

	recency := 0.0
	if !repo.LastPushedAt.IsZero() {
		daysSincePush := now.Sub(repo.LastPushedAt).Hours() / 24
		switch {
		case daysSincePush < 7:
			recency = 15
		case daysSincePush < 30:
			recency = 10
		case daysSincePush < 90:
			recency = 5
		}
	}

	maturity := 0.0
	if len(repo.Description) > 20 {
		maturity += 5
	}
	if repo.Homepage != "" {
		maturity += 3
	}
	if len(repo.Topics) > 0 {
		maturity += 2
	}

	score := int(math.Round(popularity + recency + maturity))
	if score > maxImpactScore {
		score = maxImpactScore
	}
	return score
}

// AggregateImpact combines per-project scores into the headline Impact
// Score: sort descending, weight the top six, round the sum.
func AggregateImpact(scores []int) int {
	if len(scores) == 0 {
		return 0
	}

	sorted := make([]int, len(scores))
	copy(sorted, scores)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	total := 0.0
	for i, weight := range aggregateWeights {
		if i >= len(sorted) {
			break
		}
		total += float64(sorted[i]) * weight
	}

	return int(math.Round(total))
}
