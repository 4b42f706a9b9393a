package repositories

import (
	"database/sql"
	"encoding/json"

	"github.com/gitproof/gitproof/internal/models"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{
		db: db,
	}
}

// Upsert inserts a project or overwrites the snapshot fields of the
// existing row for the same user and GitHub repository. Hidden state is
// user-controlled and survives re-syncs.
func (r *ProjectRepository) Upsert(project *models.Project) error {
	topics, err := json.Marshal(project.Topics)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projects (id, user_id, github_id, name, url, description, homepage, language,
			topics, stars, forks, last_pushed_at, readme_length, private, impact_score)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, github_id) DO UPDATE SET
			name = excluded.name,
			url = excluded.url,
			description = excluded.description,
			homepage = excluded.homepage,
			language = excluded.language,
			topics = excluded.topics,
			stars = excluded.stars,
			forks = excluded.forks,
			last_pushed_at = excluded.last_pushed_at,
			readme_length = excluded.readme_length,
			private = excluded.private,
			impact_score = excluded.impact_score,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err = r.db.Exec(query,
		project.ID,
		project.UserID,
		project.GithubID,
		project.Name,
		project.URL,
		project.Description,
		project.Homepage,
		project.Language,
		string(topics),
		project.Stars,
		project.Forks,
		project.LastPushedAt,
		project.ReadmeLength,
		project.Private,
		project.ImpactScore,
	)
	return err
}

// GetByID retrieves a project by ID
func (r *ProjectRepository) GetByID(id string) (*models.Project, error) {
	query := selectProjects + ` WHERE id = ?`

	rows, err := r.db.Query(query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, sql.ErrNoRows
	}
	return scanProject(rows)
}

// GetByUserID retrieves all projects for a user, hidden ones included,
// best impact first
func (r *ProjectRepository) GetByUserID(userID string) ([]*models.Project, error) {
	query := selectProjects + ` WHERE user_id = ? ORDER BY impact_score DESC, name ASC`
	return r.queryProjects(query, userID)
}

// GetVisibleByUserID retrieves the visible (non-hidden) projects for a
// user, best impact first
func (r *ProjectRepository) GetVisibleByUserID(userID string) ([]*models.Project, error) {
	query := selectProjects + ` WHERE user_id = ? AND hidden = 0 ORDER BY impact_score DESC, name ASC`
	return r.queryProjects(query, userID)
}

// CountByUserID counts all projects for a user, hidden ones included
func (r *ProjectRepository) CountByUserID(userID string) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM projects WHERE user_id = ?`, userID).Scan(&count)
	return count, err
}

// SetHidden updates the hidden flag of a project
func (r *ProjectRepository) SetHidden(id string, hidden bool) error {
	query := `UPDATE projects SET hidden = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`

	result, err := r.db.Exec(query, hidden, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteMissing removes projects whose GitHub repository no longer
// exists in the latest sync
func (r *ProjectRepository) DeleteMissing(userID string, keepGithubIDs []int64) error {
	keep := make(map[int64]bool, len(keepGithubIDs))
	for _, id := range keepGithubIDs {
		keep[id] = true
	}

	rows, err := r.db.Query(`SELECT id, github_id FROM projects WHERE user_id = ?`, userID)
	if err != nil {
		return err
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var id string
		var githubID int64
		if err := rows.Scan(&id, &githubID); err != nil {
			return err
		}
		if !keep[githubID] {
			stale = append(stale, id)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, id := range stale {
		if _, err := r.db.Exec(`DELETE FROM projects WHERE id = ?`, id); err != nil {
			return err
		}
	}

	return nil
}

const selectProjects = `
	SELECT id, user_id, github_id, name, url, description, homepage, language,
		topics, stars, forks, last_pushed_at, readme_length, private, hidden,
		impact_score, created_at, updated_at
	FROM projects
`

func (r *ProjectRepository) queryProjects(query string, args ...interface{}) ([]*models.Project, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}

func scanProject(rows *sql.Rows) (*models.Project, error) {
	project := &models.Project{}
	var topics string

	err := rows.Scan(
		&project.ID,
		&project.UserID,
		&project.GithubID,
		&project.Name,
		&project.URL,
		&project.Description,
		&project.Homepage,
		&project.Language,
		&topics,
		&project.Stars,
		&project.Forks,
		&project.LastPushedAt,
		&project.ReadmeLength,
		&project.Private,
		&project.Hidden,
		&project.ImpactScore,
		&project.CreatedAt,
		&project.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(topics), &project.Topics); err != nil {
		project.Topics = []string{}
	}

	return project, nil
}
