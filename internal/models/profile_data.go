package models

import (
	"time"

	"github.com/google/uuid"
)

// DayCount is a single day of the contribution calendar
type DayCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ProfileData is the cached profile-level blob fetched alongside
// repositories: contribution totals, PR count, streak and the
// ~365-day contribution calendar.
type ProfileData struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	TotalContributions int        `json:"total_contributions"`
	PullRequests       int        `json:"pull_requests"`
	CurrentStreak      int        `json:"current_streak"`
	Heatmap            []DayCount `json:"heatmap"`
	FetchedAt          time.Time  `json:"fetched_at"`
}

// NewProfileData creates a new ProfileData with a generated UUID
func NewProfileData(userID string) *ProfileData {
	return &ProfileData{
		ID:        uuid.New().String(),
		UserID:    userID,
		Heatmap:   []DayCount{},
		FetchedAt: time.Now(),
	}
}

// IsStale reports whether the cached data is older than the given TTL
func (p *ProfileData) IsStale(ttl time.Duration) bool {
	return time.Since(p.FetchedAt) > ttl
}
