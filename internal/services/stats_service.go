package services

import (
	"database/sql"
	"errors"
	"time"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/gitproof/gitproof/internal/scoring"
)

// UserReport bundles everything the dashboard, public profile and
// recruiter export render for a user. It is recomputed on demand, never
// persisted.
type UserReport struct {
	Stats     scoring.Stats     `json:"stats"`
	Archetype scoring.Archetype `json:"archetype"`
	Insights  scoring.Insights  `json:"insights"`
}

type StatsService struct {
	projectRepo *repositories.ProjectRepository
	profileRepo *repositories.ProfileDataRepository
}

func NewStatsService(
	projectRepo *repositories.ProjectRepository,
	profileRepo *repositories.ProfileDataRepository,
) *StatsService {
	return &StatsService{
		projectRepo: projectRepo,
		profileRepo: profileRepo,
	}
}

// BuildReport computes stats, archetype and insights for a user from the
// visible projects and the cached profile blob. The all-repositories
// count (hidden included) feeds the portfolio-size archetype rules.
func (s *StatsService) BuildReport(userID string) (*UserReport, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}

	visible, err := s.projectRepo.GetVisibleByUserID(userID)
	if err != nil {
		return nil, err
	}

	totalRepoCount, err := s.projectRepo.CountByUserID(userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetByUserID(userID)
	if err != nil && err != sql.ErrNoRows {
		return nil, err
	}

	return buildReport(visible, profile, totalRepoCount, time.Now()), nil
}

// buildReport is the pure assembly step, split out so tests can pin now
func buildReport(visible []*models.Project, profile *models.ProfileData, totalRepoCount int, now time.Time) *UserReport {
	repos := make([]scoring.Repository, len(visible))
	for i, project := range visible {
		repos[i] = toScoringRepository(project)
	}

	facts := scoring.AnalyzePortfolio(repos, now)

	stats := scoring.Stats{
		ImpactScore: scoring.AggregateImpact(facts.Scores),
		RepoCount:   len(visible),
	}

	counters := scoring.ProfileCounters{}
	if profile != nil {
		stats.TotalContributions = profile.TotalContributions
		stats.Consistency = scoring.Consistency(toScoringCalendar(profile.Heatmap))
		counters.PullRequests = profile.PullRequests
		counters.StreakDays = profile.CurrentStreak
	}

	return &UserReport{
		Stats:     stats,
		Archetype: scoring.Classify(facts, stats, counters, totalRepoCount),
		Insights:  scoring.AnalyzeInsights(facts, stats, counters),
	}
}
