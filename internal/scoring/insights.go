package scoring

import (
	"fmt"
	"sort"
)

const (
	maxStrengths   = 4
	maxGrowthAreas = 3
)

var strengthRank = map[Strength]int{
	StrengthHigh:   0,
	StrengthMedium: 1,
	StrengthLow:    2,
}

// AnalyzeInsights produces the capped strength and growth lists for a
// portfolio. Unlike the archetype classifier, every rule group below is
// evaluated and matches accumulate before sorting and capping.
func AnalyzeInsights(facts *PortfolioFacts, stats Stats, profile ProfileCounters) Insights {
	return Insights{
		Strengths:   strengths(facts, stats, profile),
		GrowthAreas: growthAreas(facts, stats, profile),
	}
}

func strengths(facts *PortfolioFacts, stats Stats, profile ProfileCounters) []Insight {
	var found []Insight
	add := func(strength Strength, text string) {
		found = append(found, Insight{Text: text, Strength: strength})
	}

	switch {
	case stats.Consistency >= 90:
		add(StrengthHigh, "Exceptional consistency with near-daily contributions")
	case stats.Consistency >= 70:
		add(StrengthMedium, "Strong commit consistency throughout the year")
	case profile.StreakDays >= 30:
		add(StrengthMedium, fmt.Sprintf("Impressive %d-day contribution streak", profile.StreakDays))
	}

	switch {
	case stats.ImpactScore >= 40:
		add(StrengthHigh, "Elite-tier impact across the portfolio")
	case stats.ImpactScore >= 30:
		add(StrengthHigh, "High-impact portfolio")
	case facts.HighImpactCount >= 3:
		add(StrengthMedium, fmt.Sprintf("%d projects with exceptional impact", facts.HighImpactCount))
	}

	switch {
	case facts.PopularCount >= 5:
		add(StrengthHigh, "Multiple popular projects with real adoption")
	case facts.PopularCount >= 2:
		add(StrengthMedium, "Work that attracts users and contributors")
	}

	switch {
	case facts.MaxStars >= 100:
		add(StrengthHigh, fmt.Sprintf("Popular project with %d+ stars", facts.MaxStars))
	case facts.MaxStars >= 50:
		add(StrengthMedium, fmt.Sprintf("Growing project with %d stars", facts.MaxStars))
	}

	switch {
	case facts.LanguageSpecialization >= 0.7 && facts.PrimaryLanguageCount >= 5:
		add(StrengthHigh, fmt.Sprintf("Deep %s specialization", facts.PrimaryLanguage))
	case facts.DistinctLanguages >= 5:
		add(StrengthMedium, "Polyglot developer comfortable across five or more languages")
	case facts.PrimaryLanguageCount >= 3:
		add(StrengthMedium, fmt.Sprintf("Strong %s expertise", facts.PrimaryLanguage))
	}

	switch {
	case facts.HasFrontendLang && facts.HasBackendLang:
		add(StrengthHigh, "Full-stack versatility across frontend and backend")
	case facts.HasSystemsLang:
		add(StrengthHigh, "Systems programming expertise")
	}

	switch {
	case facts.VeryRecentCount >= 3:
		add(StrengthMedium, "High velocity with multiple projects shipped this week")
	case facts.RecentCount >= 5:
		add(StrengthMedium, "Consistently shipping across the portfolio this month")
	}

	switch {
	case facts.DocumentationRate >= 0.8 && stats.RepoCount >= 5:
		add(StrengthHigh, "Exceptional documentation across the portfolio")
	case facts.MaturityRate >= 0.7:
		add(StrengthMedium, "Well-polished projects with descriptions and demos")
	}

	switch {
	case profile.PullRequests >= 100:
		add(StrengthHigh, "Prolific collaborator with 100+ pull requests")
	case profile.PullRequests >= 50:
		add(StrengthMedium, "Active collaborator with 50+ pull requests")
	}

	switch {
	case stats.RepoCount >= 30:
		add(StrengthMedium, "Extensive portfolio of 30+ repositories")
	case stats.RepoCount >= 15:
		add(StrengthMedium, "Diverse project portfolio")
	}

	if len(found) == 0 {
		found = append(found, Insight{Text: "Active GitHub presence", Strength: StrengthMedium})
	}

	return capInsights(found, maxStrengths)
}

func growthAreas(facts *PortfolioFacts, stats Stats, profile ProfileCounters) []Insight {
	var found []Insight
	add := func(strength Strength, text string) {
		found = append(found, Insight{Text: text, Strength: strength})
	}

	switch {
	case stats.Consistency < 40 && profile.StreakDays < 7:
		add(StrengthHigh, "Build a more consistent contribution habit")
	case stats.Consistency < 60:
		add(StrengthMedium, "Increase contribution frequency to strengthen the profile")
	}

	switch {
	case facts.DocumentationRate < 0.3 && stats.RepoCount >= 5:
		add(StrengthHigh, "Add README documentation to more projects")
	case facts.DocumentationRate < 0.5:
		add(StrengthMedium, "Improve documentation coverage across projects")
	}

	switch {
	case facts.PopularCount == 0 && stats.RepoCount >= 5:
		add(StrengthHigh, "Promote your work to attract stars and contributors")
	case profile.PullRequests < 10 && stats.RepoCount >= 10:
		add(StrengthMedium, "Contribute to other projects through pull requests")
	}

	if facts.MaturityRate < 0.4 && stats.RepoCount >= 5 {
		add(StrengthMedium, "Add descriptions, topics and homepages to projects")
	}

	switch {
	case stats.ImpactScore < 20 && stats.RepoCount >= 5:
		add(StrengthHigh, "Focus on fewer, higher-impact projects")
	case facts.HighImpactCount == 0 && stats.RepoCount >= 3:
		add(StrengthMedium, "Grow at least one project into a flagship")
	}

	switch {
	case facts.RecentCount == 0 && stats.RepoCount > 0:
		add(StrengthHigh, "Revive the portfolio with recent activity")
	case facts.VeryRecentCount == 0 && facts.RecentCount < 2:
		add(StrengthMedium, "Ship more frequently to keep the portfolio fresh")
	}

	switch {
	case facts.DistinctLanguages == 1 && stats.RepoCount >= 5:
		add(StrengthLow, "Experiment with a second language to broaden your range")
	case facts.DistinctLanguages >= 8 && facts.LanguageSpecialization < 0.3:
		add(StrengthMedium, "Focus the language spread toward a specialty")
	}

	if stats.RepoCount < 3 {
		add(StrengthMedium, "Build more public projects to showcase your skills")
	}

	if len(found) == 0 {
		found = append(found, Insight{Text: "Continue building and shipping projects", Strength: StrengthMedium})
	}

	return capInsights(found, maxGrowthAreas)
}

// capInsights orders by tier (high first) keeping the original evaluation
// order within a tier, then slices to the cap.
func capInsights(insights []Insight, limit int) []Insight {
	sort.SliceStable(insights, func(i, j int) bool {
		return strengthRank[insights[i].Strength] < strengthRank[insights[j].Strength]
	})
	if len(insights) > limit {
		insights = insights[:limit]
	}
	return insights
}
