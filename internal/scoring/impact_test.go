package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func daysAgo(days int) time.Time {
	return testNow.AddDate(0, 0, -days)
}

func TestImpactScore(t *testing.T) {
	testCases := []struct {
		name     string
		repo     Repository
		expected int
	}{
		{
			name: "Abandoned empty repository",
			repo: Repository{
				Stars:        0,
				Forks:        0,
				LastPushedAt: daysAgo(400),
			},
			expected: 0, // log2(1)*3 = 0, no recency, no maturity
		},
		{
			name: "Polished active repository",
			repo: Repository{
				Stars:        50,
				Forks:        10,
				Description:  "A 30-char description here.",
				Homepage:     "https://x.com",
				Topics:       []string{"a"},
				LastPushedAt: daysAgo(2),
			},
			expected: 43, // log2(71)*3 + 15 + 10 = 18.45 + 25
		},
		{
			name: "Recency tier within a week",
			repo: Repository{
				Stars:        0,
				Forks:        0,
				LastPushedAt: daysAgo(6),
			},
			expected: 15,
		},
		{
			name: "Recency tier within a month",
			repo: Repository{
				Stars:        0,
				Forks:        0,
				LastPushedAt: daysAgo(8),
			},
			expected: 10,
		},
		{
			name: "Recency tier within ninety days",
			repo: Repository{
				Stars:        0,
				Forks:        0,
				LastPushedAt: daysAgo(45),
			},
			expected: 5,
		},
		{
			name: "Never pushed",
			repo: Repository{
				Stars: 1,
				Forks: 0,
			},
			expected: 3, // log2(2)*3, recency unknown counts as stale
		},
		{
			name: "Maturity from homepage and topics only",
			repo: Repository{
				Stars:        0,
				Forks:        0,
				Description:  "short",
				Homepage:     "https://example.com",
				Topics:       []string{"cli", "go"},
				LastPushedAt: daysAgo(400),
			},
			expected: 5, // +3 homepage, +2 topics, description too short
		},
		{
			name: "Clamped at fifty",
			repo: Repository{
				Stars:        100000,
				Forks:        50000,
				Description:  "A long enough description for maturity",
				Homepage:     "https://example.com",
				Topics:       []string{"popular"},
				LastPushedAt: daysAgo(1),
			},
			expected: 50,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			score := ImpactScore(tc.repo, testNow)
			assert.Equal(t, tc.expected, score)
		})
	}
}

func TestImpactScoreBounds(t *testing.T) {
	repos := []Repository{
		{},
		{Stars: 1},
		{Stars: 1000000, Forks: 1000000, LastPushedAt: daysAgo(1)},
		{Description: "a perfectly reasonable description", Homepage: "https://x.dev", Topics: []string{"t"}},
	}

	for _, repo := range repos {
		score := ImpactScore(repo, testNow)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 50)
	}
}

func TestImpactScoreDeterminism(t *testing.T) {
	repo := Repository{
		Stars:        42,
		Forks:        7,
		Description:  "deterministic scoring test repository",
		Topics:       []string{"go"},
		LastPushedAt: daysAgo(10),
	}

	first := ImpactScore(repo, testNow)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ImpactScore(repo, testNow))
	}
}

func TestAggregateImpact(t *testing.T) {
	testCases := []struct {
		name     string
		scores   []int
		expected int
	}{
		{
			name:     "Empty portfolio",
			scores:   []int{},
			expected: 0,
		},
		{
			name:     "Single perfect project",
			scores:   []int{50},
			expected: 25, // 50 * 0.5, missing slots contribute zero
		},
		{
			name:     "Six perfect projects",
			scores:   []int{50, 50, 50, 50, 50, 50},
			expected: 50, // round(50 * 0.999)
		},
		{
			name:     "Only top six count",
			scores:   []int{50, 50, 50, 50, 50, 50, 1, 1, 1},
			expected: 50,
		},
		{
			name:     "Unsorted input is sorted first",
			scores:   []int{10, 50, 30},
			expected: 30, // 50*0.5 + 30*0.125 + 10*0.125 = 30.0
		},
		{
			name:     "Two projects",
			scores:   []int{40, 20},
			expected: 23, // 40*0.5 + 20*0.125 = 22.5
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, AggregateImpact(tc.scores))
		})
	}
}

func TestAggregateImpactMonotonicity(t *testing.T) {
	// Raising a single project's score without changing rank order
	// must never lower the aggregate.
	base := []int{40, 35, 30, 25, 20, 15}
	baseline := AggregateImpact(base)

	improved := []int{44, 35, 30, 25, 20, 15}
	assert.GreaterOrEqual(t, AggregateImpact(improved), baseline)

	improvedMiddle := []int{40, 35, 32, 25, 20, 15}
	assert.GreaterOrEqual(t, AggregateImpact(improvedMiddle), baseline)
}
