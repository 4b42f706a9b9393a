package scoring

// classifyContext bundles the inputs the rule predicates read from.
// totalRepos counts every repository including hidden ones; the two
// portfolio-size rules use it, everything else reads stats.RepoCount
// (visible repositories only).
type classifyContext struct {
	facts      *PortfolioFacts
	stats      Stats
	profile    ProfileCounters
	totalRepos int
}

type archetypeRule struct {
	matches func(c *classifyContext) bool
	badge   Archetype
}

// archetypeRules is evaluated strictly top to bottom, first match wins.
// Reordering rows changes user-visible classifications.
var archetypeRules = []archetypeRule{
	{
		matches: func(c *classifyContext) bool {
			return c.stats.ImpactScore >= 45 && c.facts.TotalStars >= 500 && c.stats.Consistency >= 80
		},
		badge: Archetype{Title: "The Legend", Icon: "crown", Color: "amber"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.TotalStars >= 200 && c.facts.TotalForks >= 50
		},
		badge: Archetype{Title: "The Influencer", Icon: "megaphone", Color: "pink"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.TotalStars >= 100 && c.profile.PullRequests >= 50
		},
		badge: Archetype{Title: "Open Source Hero", Icon: "heart", Color: "red"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.profile.StreakDays >= 100 || c.stats.Consistency >= 85
		},
		badge: Archetype{Title: "The Streak Master", Icon: "flame", Color: "orange"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.stats.Consistency >= 70
		},
		badge: Archetype{Title: "The Machine", Icon: "cpu", Color: "slate"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.RecentCount >= 5 && c.stats.ImpactScore >= 25
		},
		badge: Archetype{Title: "The Shipper", Icon: "rocket", Color: "blue"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.stats.ImpactScore >= 40
		},
		badge: Archetype{Title: "The Champion", Icon: "trophy", Color: "yellow"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.DocumentationRate >= 0.8 && c.stats.RepoCount >= 5
		},
		badge: Archetype{Title: "The Perfectionist", Icon: "badge-check", Color: "emerald"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.DocumentationRate >= 0.6 && c.stats.ImpactScore >= 15
		},
		badge: Archetype{Title: "The Craftsperson", Icon: "hammer", Color: "amber"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.profile.PullRequests >= 75
		},
		badge: Archetype{Title: "The Collaborator", Icon: "users", Color: "sky"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.LanguageSpecialization >= 0.75 && c.stats.RepoCount >= 5 && c.facts.PrimaryLanguage != ""
		},
		badge: Archetype{Title: "The Specialist", Icon: "target", Color: "purple"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.DistinctLanguages >= 6
		},
		badge: Archetype{Title: "The Polyglot", Icon: "languages", Color: "violet"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.totalRepos >= 20
		},
		badge: Archetype{Title: "The Architect", Icon: "building", Color: "stone"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.totalRepos >= 12
		},
		badge: Archetype{Title: "The Builder", Icon: "blocks", Color: "orange"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.stats.RepoCount >= 10 && c.stats.Consistency >= 50
		},
		badge: Archetype{Title: "The Maintainer", Icon: "wrench", Color: "teal"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.facts.HasCITopics && c.stats.ImpactScore >= 20
		},
		badge: Archetype{Title: "The Automator", Icon: "bot", Color: "cyan"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.profile.PullRequests >= 30
		},
		badge: Archetype{Title: "The Contributor", Icon: "git-pull-request", Color: "green"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.stats.ImpactScore >= 15
		},
		badge: Archetype{Title: "Active Builder", Icon: "activity", Color: "lime"},
	},
	{
		// Subsumed by the row above (any score >= 20 already matched >= 15).
		// Kept in place so the table ordering stays stable for downstream
		// consumers; removing it is a product decision, not a cleanup.
		matches: func(c *classifyContext) bool {
			return c.stats.ImpactScore >= 20
		},
		badge: Archetype{Title: "Rising Star", Icon: "star", Color: "yellow"},
	},
	{
		matches: func(c *classifyContext) bool {
			return c.stats.RepoCount >= 5 && c.stats.ImpactScore >= 10
		},
		badge: Archetype{Title: "Full Stack Dev", Icon: "layers", Color: "indigo"},
	},
}

// defaultArchetype is returned when no rule matches
var defaultArchetype = Archetype{Title: "Developer", Icon: "code", Color: "gray"}

// Classify picks a single archetype for a portfolio. totalRepoCount is the
// all-repositories figure (hidden included); pass 0 to fall back to
// stats.RepoCount when the caller has no separate total.
func Classify(facts *PortfolioFacts, stats Stats, profile ProfileCounters, totalRepoCount int) Archetype {
	if totalRepoCount <= 0 {
		totalRepoCount = stats.RepoCount
	}

	ctx := &classifyContext{
		facts:      facts,
		stats:      stats,
		profile:    profile,
		totalRepos: totalRepoCount,
	}

	for _, rule := range archetypeRules {
		if rule.matches(ctx) {
			return rule.badge
		}
	}
	return defaultArchetype
}
