// Package scoring contains the deterministic analytics pipeline: per-repository
// impact scores, the weighted portfolio aggregate, contribution consistency,
// archetype classification and strength/growth insights. Everything in this
// package is a pure function of its inputs.
package scoring

import "time"

// Repository is the snapshot of a single GitHub repository used for scoring.
// Optional fields (description, homepage, language) are empty strings when
// absent; a zero LastPushedAt means the push date is unknown.
type Repository struct {
	Name         string
	Description  string
	Homepage     string
	Language     string
	Topics       []string
	Stars        int
	Forks        int
	LastPushedAt time.Time
	ReadmeLength int
}

// DayCount is one day of the contribution calendar
type DayCount struct {
	Date  string
	Count int
}

// Stats is the headline figure set derived from a user's portfolio
type Stats struct {
	ImpactScore        int `json:"impact_score"`
	TotalContributions int `json:"total_contributions"`
	Consistency        int `json:"consistency"`
	RepoCount          int `json:"repo_count"`
}

// ProfileCounters are the optional profile-level numbers fetched alongside
// the repository list. Zero values mean the counter was unavailable.
type ProfileCounters struct {
	PullRequests int
	StreakDays   int
}

// Archetype is a single classification chosen from the ordered rule table.
// Icon and Color are cosmetic tags for the presentation layer.
type Archetype struct {
	Title string `json:"title"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// Strength is the tier of an insight
type Strength string

const (
	StrengthHigh   Strength = "high"
	StrengthMedium Strength = "medium"
	StrengthLow    Strength = "low"
)

// Insight is a single presentation-ready observation about a portfolio
type Insight struct {
	Text     string   `json:"text"`
	Strength Strength `json:"strength"`
}

// Insights holds the capped, tier-ordered strength and growth lists
type Insights struct {
	Strengths   []Insight `json:"strengths"`
	GrowthAreas []Insight `json:"growth_areas"`
}
