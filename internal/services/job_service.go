package services

import (
	"errors"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/google/uuid"
)

type JobService struct {
	jobRepo *repositories.JobRepository
}

func NewJobService(jobRepo *repositories.JobRepository) *JobService {
	return &JobService{
		jobRepo: jobRepo,
	}
}

// EnqueueSync creates a sync job for a user unless one is already
// pending or running. Returns the job, or nil when deduplicated.
func (s *JobService) EnqueueSync(userID string) (*models.Job, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, errors.New("invalid user ID format")
	}

	pending, err := s.jobRepo.HasPendingJob(userID, models.JobTypeSync)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, nil
	}

	job := models.NewJob(userID, models.JobTypeSync)
	if err := s.jobRepo.Create(job); err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob retrieves a job by ID
func (s *JobService) GetJob(id string) (*models.Job, error) {
	if id == "" {
		return nil, errors.New("job ID is required")
	}
	return s.jobRepo.GetByID(id)
}
