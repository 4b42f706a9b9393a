package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/gitproof/gitproof/internal/scoring"
	"github.com/gitproof/gitproof/pkg/config"
	"github.com/gitproof/gitproof/pkg/logger"
	"github.com/google/go-github/v57/github"
)

// maxStoredStringLength caps description and homepage values before they
// reach the database
const maxStoredStringLength = 1000

// ErrRateLimited is returned when a sync is skipped because the GitHub
// API quota for the user has not reset yet
var ErrRateLimited = errors.New("GitHub API rate limit not reset yet")

type SyncService struct {
	projectRepo  *repositories.ProjectRepository
	profileRepo  *repositories.ProfileDataRepository
	fetchService *GitHubFetchService
	rateLimits   *RateLimitCache
}

func NewSyncService(
	projectRepo *repositories.ProjectRepository,
	profileRepo *repositories.ProfileDataRepository,
	fetchService *GitHubFetchService,
	rateLimits *RateLimitCache,
) *SyncService {
	return &SyncService{
		projectRepo:  projectRepo,
		profileRepo:  profileRepo,
		fetchService: fetchService,
		rateLimits:   rateLimits,
	}
}

// SyncUser refreshes a user's repository snapshots and cached profile
// data from GitHub. Within the staleness TTL the call is a no-op unless
// forced.
func (s *SyncService) SyncUser(ctx context.Context, user *models.User, force bool) error {
	limitKey := "github:" + user.ID.String()
	if s.rateLimits.IsBlocked(limitKey) {
		return ErrRateLimited
	}

	ttl := time.Duration(config.AppConfig.Sync.StaleAfterMinutes) * time.Minute
	cached, err := s.profileRepo.GetByUserID(user.ID.String())
	if err == nil && cached != nil && !cached.IsStale(ttl) && !force {
		logger.WithField("user", user.Username).Info("Profile data still fresh, skipping sync")
		return nil
	}

	repos, err := s.fetchService.FetchRepositories(ctx, user.GitHubAccessToken)
	if err != nil {
		s.recordRateLimit(limitKey, err)
		return fmt.Errorf("failed to fetch repositories: %w", err)
	}

	now := time.Now()
	keepIDs := make([]int64, 0, len(repos))
	for _, fetched := range repos {
		project := s.buildProject(user.ID.String(), fetched, now)
		if err := project.Validate(); err != nil {
			logger.WithError(err).WithField("repository", fetched.Name).Warnf("Skipping invalid repository")
			continue
		}
		if err := s.projectRepo.Upsert(project); err != nil {
			return fmt.Errorf("failed to upsert project %s: %w", project.Name, err)
		}
		keepIDs = append(keepIDs, fetched.GithubID)
	}

	if err := s.projectRepo.DeleteMissing(user.ID.String(), keepIDs); err != nil {
		return fmt.Errorf("failed to prune removed repositories: %w", err)
	}

	fetchedProfile, err := s.fetchService.FetchProfile(ctx, user.GitHubAccessToken, user.Username)
	if err != nil {
		s.recordRateLimit(limitKey, err)
		return fmt.Errorf("failed to fetch profile data: %w", err)
	}

	profile := models.NewProfileData(user.ID.String())
	if cached != nil {
		profile.ID = cached.ID
	}
	profile.TotalContributions = fetchedProfile.TotalContributions
	profile.PullRequests = fetchedProfile.PullRequests
	profile.Heatmap = fetchedProfile.Calendar
	profile.CurrentStreak = scoring.CurrentStreak(toScoringCalendar(fetchedProfile.Calendar))
	if profile.TotalContributions == 0 {
		// Fall back to summing the calendar when the API total is absent
		for _, day := range fetchedProfile.Calendar {
			profile.TotalContributions += day.Count
		}
	}

	if err := s.profileRepo.Upsert(profile); err != nil {
		return fmt.Errorf("failed to cache profile data: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"user":  user.Username,
		"repos": len(repos),
	}).Info("Sync completed")

	return nil
}

// buildProject maps a fetched repository onto a Project row, sanitizing
// strings and computing the impact score
func (s *SyncService) buildProject(userID string, fetched *FetchedRepository, now time.Time) *models.Project {
	project := models.NewProject(userID, fetched.GithubID, sanitizeString(fetched.Name, maxStoredStringLength), fetched.URL)
	project.Description = sanitizeOptional(fetched.Description)
	project.Homepage = sanitizeOptional(fetched.Homepage)
	project.Language = fetched.Language
	if fetched.Topics != nil {
		project.Topics = fetched.Topics
	}
	project.Stars = fetched.Stars
	project.Forks = fetched.Forks
	project.LastPushedAt = fetched.PushedAt
	project.ReadmeLength = fetched.ReadmeLength
	project.Private = fetched.Private
	project.ImpactScore = scoring.ImpactScore(toScoringRepository(project), now)
	return project
}

// recordRateLimit blocks future syncs until the reset reported by the API
func (s *SyncService) recordRateLimit(key string, err error) {
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) {
		s.rateLimits.Block(key, rateErr.Rate.Reset.Time)
		logger.WithField("reset", rateErr.Rate.Reset.Time).Warnf("GitHub rate limit hit")
	}
}

// toScoringRepository maps a stored project onto the scoring input type.
// This is the only place Project fields feed the score formula, so the
// live and cached paths cannot drift apart.
func toScoringRepository(project *models.Project) scoring.Repository {
	repo := scoring.Repository{
		Name:         project.Name,
		Topics:       project.Topics,
		Stars:        project.Stars,
		Forks:        project.Forks,
		ReadmeLength: project.ReadmeLength,
	}
	if project.Description != nil {
		repo.Description = *project.Description
	}
	if project.Homepage != nil {
		repo.Homepage = *project.Homepage
	}
	if project.Language != nil {
		repo.Language = *project.Language
	}
	if project.LastPushedAt != nil {
		repo.LastPushedAt = *project.LastPushedAt
	}
	return repo
}

func toScoringCalendar(heatmap []models.DayCount) []scoring.DayCount {
	calendar := make([]scoring.DayCount, len(heatmap))
	for i, day := range heatmap {
		calendar[i] = scoring.DayCount{Date: day.Date, Count: day.Count}
	}
	return calendar
}

// sanitizeString strips control characters and caps the length so API
// payloads cannot poison stored rows
func sanitizeString(value string, maxLength int) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, value)

	cleaned = strings.TrimSpace(cleaned)
	if len(cleaned) > maxLength {
		// Back up to a rune boundary so no rune is cut in half
		cut := maxLength
		for cut > 0 && !utf8.RuneStart(cleaned[cut]) {
			cut--
		}
		cleaned = cleaned[:cut]
	}
	return cleaned
}

func sanitizeOptional(value *string) *string {
	if value == nil {
		return nil
	}
	cleaned := sanitizeString(*value, maxStoredStringLength)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
