package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/pkg/config"
	"github.com/gitproof/gitproof/pkg/logger"
	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// FetchedRepository is the raw repository snapshot pulled from the
// GitHub API before sanitization and scoring
type FetchedRepository struct {
	GithubID     int64
	Name         string
	URL          string
	Description  *string
	Homepage     *string
	Language     *string
	Topics       []string
	Stars        int
	Forks        int
	PushedAt     *time.Time
	ReadmeLength int
	Private      bool
}

// FetchedProfile is the profile-level contribution data pulled from the
// GitHub GraphQL API
type FetchedProfile struct {
	TotalContributions int
	PullRequests       int
	Calendar           []models.DayCount
}

type GitHubFetchService struct {
	httpClient *http.Client
}

func NewGitHubFetchService() *GitHubFetchService {
	return &GitHubFetchService{
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// createGitHubClient creates a GitHub client with the provided token
func (s *GitHubFetchService) createGitHubClient(ctx context.Context, token string) *github.Client {
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = s.httpClient.Timeout
	return github.NewClient(tc)
}

// FetchRepositories fetches all repositories the user has access to,
// including the README length used by the documentation heuristics
func (s *GitHubFetchService) FetchRepositories(ctx context.Context, token string) ([]*FetchedRepository, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	client := s.createGitHubClient(ctx, token)

	opt := &github.RepositoryListOptions{
		Type:        "owner",
		Sort:        "updated",
		Direction:   "desc",
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var allRepos []*github.Repository
	for {
		repos, resp, err := client.Repositories.List(ctx, "", opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list repositories: %w", err)
		}
		allRepos = append(allRepos, repos...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	fetched := make([]*FetchedRepository, 0, len(allRepos))
	for _, repo := range allRepos {
		record := &FetchedRepository{
			GithubID:    repo.GetID(),
			Name:        repo.GetName(),
			URL:         repo.GetHTMLURL(),
			Description: repo.Description,
			Homepage:    repo.Homepage,
			Language:    repo.Language,
			Topics:      repo.Topics,
			Stars:       repo.GetStargazersCount(),
			Forks:       repo.GetForksCount(),
			Private:     repo.GetPrivate(),
		}
		if repo.PushedAt != nil {
			record.PushedAt = &repo.PushedAt.Time
		}

		readme, _, err := client.Repositories.GetReadme(ctx, repo.GetOwner().GetLogin(), repo.GetName(), nil)
		if err == nil && readme != nil {
			if content, err := readme.GetContent(); err == nil {
				record.ReadmeLength = len(content)
			}
		} else {
			// Missing READMEs are common and count as zero length
			logger.WithField("repository", repo.GetFullName()).Debug("No README found")
		}

		fetched = append(fetched, record)
	}

	return fetched, nil
}

// contributionsQuery fetches PR count and the trailing-year calendar in
// one round trip
const contributionsQuery = `
query($login: String!) {
  user(login: $login) {
    pullRequests { totalCount }
    contributionsCollection {
      contributionCalendar {
        totalContributions
        weeks {
          contributionDays {
            date
            contributionCount
          }
        }
      }
    }
  }
}`

type contributionsResponse struct {
	Data struct {
		User struct {
			PullRequests struct {
				TotalCount int `json:"totalCount"`
			} `json:"pullRequests"`
			ContributionsCollection struct {
				ContributionCalendar struct {
					TotalContributions int `json:"totalContributions"`
					Weeks              []struct {
						ContributionDays []struct {
							Date              string `json:"date"`
							ContributionCount int    `json:"contributionCount"`
						} `json:"contributionDays"`
					} `json:"weeks"`
				} `json:"contributionCalendar"`
			} `json:"contributionsCollection"`
		} `json:"user"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchProfile fetches contribution totals, PR count and the ~365-day
// calendar for a user from the GraphQL API
func (s *GitHubFetchService) FetchProfile(ctx context.Context, token, login string) (*FetchedProfile, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	payload, err := json.Marshal(map[string]interface{}{
		"query": contributionsQuery,
		"variables": map[string]string{
			"login": login,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, config.AppConfig.GitHub.GraphQLURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query contributions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub GraphQL API returned status: %d", resp.StatusCode)
	}

	var result contributionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode contributions response: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("GitHub GraphQL API error: %s", result.Errors[0].Message)
	}

	calendar := result.Data.User.ContributionsCollection.ContributionCalendar

	profile := &FetchedProfile{
		TotalContributions: calendar.TotalContributions,
		PullRequests:       result.Data.User.PullRequests.TotalCount,
	}
	for _, week := range calendar.Weeks {
		for _, day := range week.ContributionDays {
			profile.Calendar = append(profile.Calendar, models.DayCount{
				Date:  day.Date,
				Count: day.ContributionCount,
			})
		}
	}

	return profile, nil
}
