package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyPriorityOrder(t *testing.T) {
	// A portfolio satisfying several rules must resolve to the
	// highest-priority one.
	facts := &PortfolioFacts{
		TotalStars: 600,
		TotalForks: 0,
	}
	stats := Stats{ImpactScore: 46, Consistency: 82, RepoCount: 8}
	profile := ProfileCounters{PullRequests: 5, StreakDays: 0}

	badge := Classify(facts, stats, profile, 0)
	assert.Equal(t, "The Legend", badge.Title)
}

func TestClassifyRules(t *testing.T) {
	testCases := []struct {
		name          string
		facts         PortfolioFacts
		stats         Stats
		profile       ProfileCounters
		totalRepos    int
		expectedTitle string
	}{
		{
			name:          "Influencer on stars and forks",
			facts:         PortfolioFacts{TotalStars: 250, TotalForks: 60},
			stats:         Stats{ImpactScore: 10},
			expectedTitle: "The Influencer",
		},
		{
			name:          "Open source hero",
			facts:         PortfolioFacts{TotalStars: 120},
			stats:         Stats{ImpactScore: 10},
			profile:       ProfileCounters{PullRequests: 60},
			expectedTitle: "Open Source Hero",
		},
		{
			name:          "Streak master via streak",
			facts:         PortfolioFacts{},
			stats:         Stats{Consistency: 20},
			profile:       ProfileCounters{StreakDays: 120},
			expectedTitle: "The Streak Master",
		},
		{
			name:          "Streak master via consistency",
			facts:         PortfolioFacts{},
			stats:         Stats{Consistency: 90},
			expectedTitle: "The Streak Master",
		},
		{
			name:          "Machine on consistency alone",
			facts:         PortfolioFacts{},
			stats:         Stats{Consistency: 72},
			expectedTitle: "The Machine",
		},
		{
			name:          "Shipper on recent activity",
			facts:         PortfolioFacts{RecentCount: 6},
			stats:         Stats{ImpactScore: 27},
			expectedTitle: "The Shipper",
		},
		{
			name:          "Champion on raw impact",
			facts:         PortfolioFacts{},
			stats:         Stats{ImpactScore: 41},
			expectedTitle: "The Champion",
		},
		{
			name:          "Perfectionist on documentation",
			facts:         PortfolioFacts{DocumentationRate: 0.9},
			stats:         Stats{RepoCount: 6},
			expectedTitle: "The Perfectionist",
		},
		{
			name:          "Craftsperson",
			facts:         PortfolioFacts{DocumentationRate: 0.65},
			stats:         Stats{ImpactScore: 18},
			expectedTitle: "The Craftsperson",
		},
		{
			name:          "Collaborator on pull requests",
			facts:         PortfolioFacts{},
			profile:       ProfileCounters{PullRequests: 80},
			expectedTitle: "The Collaborator",
		},
		{
			name:          "Specialist on language focus",
			facts:         PortfolioFacts{LanguageSpecialization: 0.8, PrimaryLanguage: "Go"},
			stats:         Stats{RepoCount: 6},
			expectedTitle: "The Specialist",
		},
		{
			name:          "Polyglot on distinct languages",
			facts:         PortfolioFacts{DistinctLanguages: 7},
			stats:         Stats{RepoCount: 8},
			expectedTitle: "The Polyglot",
		},
		{
			name:          "Architect uses the all-repositories total",
			facts:         PortfolioFacts{},
			stats:         Stats{RepoCount: 6},
			totalRepos:    22,
			expectedTitle: "The Architect",
		},
		{
			name:          "Builder uses the all-repositories total",
			facts:         PortfolioFacts{},
			stats:         Stats{RepoCount: 6},
			totalRepos:    13,
			expectedTitle: "The Builder",
		},
		{
			name:          "Maintainer on visible repos and consistency",
			facts:         PortfolioFacts{},
			stats:         Stats{RepoCount: 11, Consistency: 55},
			expectedTitle: "The Maintainer",
		},
		{
			name:          "Automator on CI topics",
			facts:         PortfolioFacts{HasCITopics: true},
			stats:         Stats{ImpactScore: 22},
			expectedTitle: "The Automator",
		},
		{
			name:          "Contributor on pull requests",
			facts:         PortfolioFacts{},
			profile:       ProfileCounters{PullRequests: 35},
			expectedTitle: "The Contributor",
		},
		{
			name:          "Active builder",
			facts:         PortfolioFacts{},
			stats:         Stats{ImpactScore: 16},
			expectedTitle: "Active Builder",
		},
		{
			name:          "Full stack dev below the active-builder bar",
			facts:         PortfolioFacts{},
			stats:         Stats{RepoCount: 6, ImpactScore: 11},
			expectedTitle: "Full Stack Dev",
		},
		{
			name:          "Default developer",
			facts:         PortfolioFacts{},
			stats:         Stats{},
			expectedTitle: "Developer",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			badge := Classify(&tc.facts, tc.stats, tc.profile, tc.totalRepos)
			assert.Equal(t, tc.expectedTitle, badge.Title)
			assert.NotEmpty(t, badge.Icon)
			assert.NotEmpty(t, badge.Color)
		})
	}
}

func TestClassifyTotalRepoFallback(t *testing.T) {
	// Without a separate all-repositories figure, the size rules fall
	// back to the visible repo count.
	facts := &PortfolioFacts{}
	stats := Stats{RepoCount: 21}

	badge := Classify(facts, stats, ProfileCounters{}, 0)
	assert.Equal(t, "The Architect", badge.Title)
}

func TestClassifyRisingStarUnreachable(t *testing.T) {
	// Any impact score >= 20 is caught by the >= 15 row first.
	facts := &PortfolioFacts{}
	for score := 20; score <= 39; score++ {
		badge := Classify(facts, Stats{ImpactScore: score}, ProfileCounters{}, 0)
		assert.NotEqual(t, "Rising Star", badge.Title)
	}
}

func TestClassifyDeterminism(t *testing.T) {
	facts := &PortfolioFacts{TotalStars: 150, RecentCount: 3, DocumentationRate: 0.5}
	stats := Stats{ImpactScore: 28, Consistency: 64, RepoCount: 9}
	profile := ProfileCounters{PullRequests: 40, StreakDays: 12}

	first := Classify(facts, stats, profile, 0)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Classify(facts, stats, profile, 0))
	}
}
