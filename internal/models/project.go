package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Project represents one synced GitHub repository belonging to a user.
// Rows are overwritten on every sync; ImpactScore is recomputed and
// stored alongside the snapshot, never incrementally updated.
type Project struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	GithubID     int64      `json:"github_id"`
	Name         string     `json:"name"`
	URL          string     `json:"url"`
	Description  *string    `json:"description"`
	Homepage     *string    `json:"homepage"`
	Language     *string    `json:"language"`
	Topics       []string   `json:"topics"`
	Stars        int        `json:"stars"`
	Forks        int        `json:"forks"`
	LastPushedAt *time.Time `json:"last_pushed_at"`
	ReadmeLength int        `json:"readme_length"`
	Private      bool       `json:"private"`
	Hidden       bool       `json:"hidden"`
	ImpactScore  int        `json:"impact_score"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// NewProject creates a new Project with a generated UUID
func NewProject(userID string, githubID int64, name, url string) *Project {
	return &Project{
		ID:       uuid.New().String(),
		UserID:   userID,
		GithubID: githubID,
		Name:     name,
		URL:      url,
		Topics:   []string{},
	}
}

// Validate validates the Project fields
func (p *Project) Validate() error {
	if p.UserID == "" {
		return errors.New("user ID is required")
	}
	if p.GithubID == 0 {
		return errors.New("GitHub repository ID is required")
	}
	if p.Name == "" {
		return errors.New("project name is required")
	}
	if p.Stars < 0 {
		return errors.New("stars cannot be negative")
	}
	if p.Forks < 0 {
		return errors.New("forks cannot be negative")
	}
	return nil
}
