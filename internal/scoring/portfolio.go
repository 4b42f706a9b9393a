package scoring

import (
	"sort"
	"strings"
	"time"
)

var ciTopics = map[string]bool{
	"ci":             true,
	"cd":             true,
	"automation":     true,
	"github-actions": true,
}

var frontendLanguages = map[string]bool{
	"TypeScript": true,
	"JavaScript": true,
	"Vue":        true,
	"Svelte":     true,
}

var backendLanguages = map[string]bool{
	"Go":     true,
	"Rust":   true,
	"Python": true,
	"Java":   true,
	"C#":     true,
	"Ruby":   true,
}

var systemsLanguages = map[string]bool{
	"C":    true,
	"C++":  true,
	"Rust": true,
	"Go":   true,
	"Zig":  true,
}

// PortfolioFacts is the aggregation computed once over a repository list
// and shared by the archetype classifier and the insight analyzer.
type PortfolioFacts struct {
	RepoCount int
	Scores    []int

	LanguageCounts         map[string]int
	DistinctLanguages      int
	PrimaryLanguage        string
	PrimaryLanguageCount   int
	LanguageSpecialization float64

	TotalStars int
	TotalForks int
	MaxStars   int

	RecentCount     int // pushed within 30 days
	VeryRecentCount int // pushed within 7 days

	DocumentedCount   int
	DocumentationRate float64
	MaturityRate      float64

	PopularCount    int // stars >= 10 or forks >= 5
	HighImpactCount int // impact score >= 30

	HasCITopics     bool
	HasFrontendLang bool
	HasBackendLang  bool
	HasSystemsLang  bool
}

// AnalyzePortfolio computes PortfolioFacts for a repository list. Recency
// buckets use a day-truncated now so results do not flip within a day.
func AnalyzePortfolio(repos []Repository, now time.Time) *PortfolioFacts {
	facts := &PortfolioFacts{
		RepoCount:      len(repos),
		Scores:         make([]int, 0, len(repos)),
		LanguageCounts: make(map[string]int),
	}

	today := truncateToDay(now)
	mature := 0

	for _, repo := range repos {
		score := ImpactScore(repo, now)
		facts.Scores = append(facts.Scores, score)
		if score >= 30 {
			facts.HighImpactCount++
		}

		if repo.Language != "" {
			facts.LanguageCounts[repo.Language]++
		}

		facts.TotalStars += repo.Stars
		facts.TotalForks += repo.Forks
		if repo.Stars > facts.MaxStars {
			facts.MaxStars = repo.Stars
		}
		if repo.Stars >= 10 || repo.Forks >= 5 {
			facts.PopularCount++
		}

		if !repo.LastPushedAt.IsZero() {
			daysSincePush := today.Sub(repo.LastPushedAt).Hours() / 24
			if daysSincePush < 30 {
				facts.RecentCount++
			}
			if daysSincePush < 7 {
				facts.VeryRecentCount++
			}
		}

		if repo.ReadmeLength > 500 {
			facts.DocumentedCount++
		}
		if len(repo.Description) > 20 || repo.Homepage != "" || len(repo.Topics) > 0 {
			mature++
		}

		for _, topic := range repo.Topics {
			if ciTopics[strings.ToLower(topic)] {
				facts.HasCITopics = true
			}
		}

		if frontendLanguages[repo.Language] {
			facts.HasFrontendLang = true
		}
		if backendLanguages[repo.Language] {
			facts.HasBackendLang = true
		}
		if systemsLanguages[repo.Language] {
			facts.HasSystemsLang = true
		}
	}

	facts.DistinctLanguages = len(facts.LanguageCounts)
	facts.PrimaryLanguage, facts.PrimaryLanguageCount = primaryLanguage(facts.LanguageCounts)

	if facts.RepoCount > 0 {
		facts.LanguageSpecialization = float64(facts.PrimaryLanguageCount) / float64(facts.RepoCount)
		facts.DocumentationRate = float64(facts.DocumentedCount) / float64(facts.RepoCount)
		facts.MaturityRate = float64(mature) / float64(facts.RepoCount)
	}

	return facts
}

// primaryLanguage picks the most common language; ties break on name so
// the result does not depend on input order.
func primaryLanguage(counts map[string]int) (string, int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})

	if len(names) == 0 {
		return "", 0
	}
	return names[0], counts[names[0]]
}
