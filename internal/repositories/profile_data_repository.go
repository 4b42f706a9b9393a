package repositories

import (
	"database/sql"
	"encoding/json"

	"github.com/gitproof/gitproof/internal/models"
)

type ProfileDataRepository struct {
	db *sql.DB
}

func NewProfileDataRepository(db *sql.DB) *ProfileDataRepository {
	return &ProfileDataRepository{
		db: db,
	}
}

// Upsert inserts or replaces the cached profile blob for a user
func (r *ProfileDataRepository) Upsert(profile *models.ProfileData) error {
	heatmap, err := json.Marshal(profile.Heatmap)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO profile_data (id, user_id, total_contributions, pull_requests, current_streak, heatmap, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			total_contributions = excluded.total_contributions,
			pull_requests = excluded.pull_requests,
			current_streak = excluded.current_streak,
			heatmap = excluded.heatmap,
			fetched_at = excluded.fetched_at
	`

	_, err = r.db.Exec(query,
		profile.ID,
		profile.UserID,
		profile.TotalContributions,
		profile.PullRequests,
		profile.CurrentStreak,
		string(heatmap),
		profile.FetchedAt,
	)
	return err
}

// GetByUserID retrieves the cached profile blob for a user
func (r *ProfileDataRepository) GetByUserID(userID string) (*models.ProfileData, error) {
	query := `
		SELECT id, user_id, total_contributions, pull_requests, current_streak, heatmap, fetched_at
		FROM profile_data
		WHERE user_id = ?
	`

	profile := &models.ProfileData{}
	var heatmap string
	err := r.db.QueryRow(query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.TotalContributions,
		&profile.PullRequests,
		&profile.CurrentStreak,
		&heatmap,
		&profile.FetchedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(heatmap), &profile.Heatmap); err != nil {
		profile.Heatmap = []models.DayCount{}
	}

	return profile, nil
}
