package repositories

import (
	"database/sql"
	"sync"
	"time"

	"github.com/gitproof/gitproof/internal/models"
)

type JobRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewJobRepository(db *sql.DB) *JobRepository {
	return &JobRepository{
		db: db,
	}
}

// Create creates a new job
func (r *JobRepository) Create(job *models.Job) error {
	query := `
		INSERT INTO jobs (id, user_id, job_type, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		job.ID,
		job.UserID,
		job.JobType,
		job.Status,
		job.CreatedAt,
		job.UpdatedAt,
	)
	return err
}

// GetNextPendingJob retrieves the oldest pending job of the given type
// (FIFO), or nil when the queue is empty. This method is thread-safe and
// marks the job as in-progress so concurrent workers never claim the
// same job twice.
func (r *JobRepository) GetNextPendingJob(jobType models.JobType) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Use a transaction to ensure atomicity
	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	query := selectJobs + `
		WHERE status = ? AND job_type = ?
		ORDER BY created_at ASC
		LIMIT 1
	`

	job, err := r.scanJob(tx.QueryRow(query, models.JobStatusPending, jobType))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	// Mark the job as in-progress
	job.MarkStarted()
	updateQuery := `
		UPDATE jobs
		SET status = ?, started_at = ?, updated_at = ?
		WHERE id = ?
	`
	if _, err = tx.Exec(updateQuery, job.Status, job.StartedAt, time.Now(), job.ID); err != nil {
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		return nil, err
	}

	return job, nil
}

// HasPendingJob reports whether a user already has a pending or running
// job of the given type
func (r *JobRepository) HasPendingJob(userID string, jobType models.JobType) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM jobs
		WHERE user_id = ? AND job_type = ? AND status IN (?, ?)
	`

	var count int
	err := r.db.QueryRow(query, userID, jobType, models.JobStatusPending, models.JobStatusInProgress).Scan(&count)
	return count > 0, err
}

// Update updates a job
func (r *JobRepository) Update(job *models.Job) error {
	query := `
		UPDATE jobs
		SET status = ?, error_message = ?, worker_id = ?, started_at = ?, completed_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		job.Status,
		job.ErrorMessage,
		job.WorkerID,
		job.StartedAt,
		job.CompletedAt,
		job.ID,
	)
	return err
}

// GetByID retrieves a job by ID
func (r *JobRepository) GetByID(id string) (*models.Job, error) {
	query := selectJobs + ` WHERE id = ?`
	return r.scanJob(r.db.QueryRow(query, id))
}

const selectJobs = `
	SELECT id, user_id, job_type, status, error_message, worker_id, started_at, completed_at, created_at, updated_at
	FROM jobs
`

func (r *JobRepository) scanJob(row *sql.Row) (*models.Job, error) {
	job := &models.Job{}
	err := row.Scan(
		&job.ID,
		&job.UserID,
		&job.JobType,
		&job.Status,
		&job.ErrorMessage,
		&job.WorkerID,
		&job.StartedAt,
		&job.CompletedAt,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return job, nil
}
