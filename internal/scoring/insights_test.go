package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeInsightsCaps(t *testing.T) {
	// A loaded portfolio fires far more rules than the caps allow.
	facts := &PortfolioFacts{
		RepoCount:              35,
		MaxStars:               150,
		PopularCount:           6,
		HighImpactCount:        4,
		LanguageSpecialization: 0.75,
		PrimaryLanguage:        "Go",
		PrimaryLanguageCount:   20,
		DistinctLanguages:      3,
		HasFrontendLang:        true,
		HasBackendLang:         true,
		VeryRecentCount:        4,
		RecentCount:            8,
		DocumentationRate:      0.85,
		MaturityRate:           0.9,
	}
	stats := Stats{ImpactScore: 45, Consistency: 95, RepoCount: 35}
	profile := ProfileCounters{PullRequests: 120, StreakDays: 60}

	insights := AnalyzeInsights(facts, stats, profile)

	assert.Len(t, insights.Strengths, 4)
	assert.LessOrEqual(t, len(insights.GrowthAreas), 3)
	assert.GreaterOrEqual(t, len(insights.GrowthAreas), 1)

	// With this many high-tier matches the cap must be filled by them.
	for _, insight := range insights.Strengths {
		assert.Equal(t, StrengthHigh, insight.Strength)
	}
}

func TestAnalyzeInsightsFallbacks(t *testing.T) {
	// An empty portfolio still produces one entry per list.
	facts := AnalyzePortfolio(nil, testNow)
	stats := Stats{}

	insights := AnalyzeInsights(facts, stats, ProfileCounters{})

	assert.Len(t, insights.Strengths, 1)
	assert.Equal(t, "Active GitHub presence", insights.Strengths[0].Text)
	assert.Equal(t, StrengthMedium, insights.Strengths[0].Strength)

	// The empty portfolio trips the consistency and repo-count growth
	// rules, so the growth list is real, not the fallback.
	assert.GreaterOrEqual(t, len(insights.GrowthAreas), 1)
	assert.LessOrEqual(t, len(insights.GrowthAreas), 3)
}

func TestGrowthFallback(t *testing.T) {
	// A portfolio healthy on every axis yields the growth fallback.
	facts := &PortfolioFacts{
		RepoCount:         10,
		PopularCount:      3,
		HighImpactCount:   2,
		DistinctLanguages: 3,
		RecentCount:       4,
		VeryRecentCount:   1,
		DocumentationRate: 0.8,
		MaturityRate:      0.9,
	}
	stats := Stats{ImpactScore: 35, Consistency: 80, RepoCount: 10}
	profile := ProfileCounters{PullRequests: 40, StreakDays: 20}

	insights := AnalyzeInsights(facts, stats, profile)

	assert.Len(t, insights.GrowthAreas, 1)
	assert.Equal(t, "Continue building and shipping projects", insights.GrowthAreas[0].Text)
}

func TestInsightsTierOrdering(t *testing.T) {
	// Medium consistency strength, high systems strength: high sorts first
	// even though the consistency rule is evaluated earlier.
	facts := &PortfolioFacts{
		RepoCount:      4,
		HasSystemsLang: true,
	}
	stats := Stats{Consistency: 75, RepoCount: 4}

	insights := AnalyzeInsights(facts, stats, ProfileCounters{})

	assert.GreaterOrEqual(t, len(insights.Strengths), 2)
	assert.Equal(t, "Systems programming expertise", insights.Strengths[0].Text)
	assert.Equal(t, StrengthHigh, insights.Strengths[0].Strength)
	assert.Equal(t, StrengthMedium, insights.Strengths[1].Strength)
}

func TestStreakStrengthText(t *testing.T) {
	facts := &PortfolioFacts{RepoCount: 1}
	stats := Stats{Consistency: 10, RepoCount: 1}
	profile := ProfileCounters{StreakDays: 45}

	insights := AnalyzeInsights(facts, stats, profile)

	assert.Contains(t, insightTexts(insights.Strengths), "Impressive 45-day contribution streak")
}

func TestGrowthRuleSelection(t *testing.T) {
	// Five undocumented, unstarred, stale repositories trip the high-tier
	// documentation, promotion and activity rules.
	facts := &PortfolioFacts{
		RepoCount:         5,
		DocumentationRate: 0.1,
		MaturityRate:      0.2,
		DistinctLanguages: 1,
	}
	stats := Stats{ImpactScore: 5, Consistency: 10, RepoCount: 5}

	insights := AnalyzeInsights(facts, stats, ProfileCounters{})

	assert.Len(t, insights.GrowthAreas, 3)
	for _, insight := range insights.GrowthAreas {
		assert.Equal(t, StrengthHigh, insight.Strength)
	}
	texts := insightTexts(insights.GrowthAreas)
	assert.Contains(t, texts, "Build a more consistent contribution habit")
	assert.Contains(t, texts, "Add README documentation to more projects")
	assert.Contains(t, texts, "Promote your work to attract stars and contributors")
}

func insightTexts(insights []Insight) []string {
	texts := make([]string, len(insights))
	for i, insight := range insights {
		texts[i] = insight.Text
	}
	return texts
}
