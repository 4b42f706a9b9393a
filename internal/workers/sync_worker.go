package workers

import (
	"context"
	"errors"
	"time"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/gitproof/gitproof/internal/services"
	"github.com/gitproof/gitproof/pkg/logger"
)

// SyncWorker processes sync jobs: it pulls a user's repositories and
// profile data from GitHub and refreshes the stored snapshots.
type SyncWorker struct {
	*BaseWorker
	jobRepo     *repositories.JobRepository
	userRepo    *repositories.UserRepository
	syncService *services.SyncService
}

// NewSyncWorker creates a new sync worker
func NewSyncWorker(workerID string, jobRepo *repositories.JobRepository, userRepo *repositories.UserRepository, syncService *services.SyncService) *SyncWorker {
	return &SyncWorker{
		BaseWorker:  NewBaseWorker(workerID, models.JobTypeSync),
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		syncService: syncService,
	}
}

// Start begins the sync worker poll loop
func (w *SyncWorker) Start(ctx context.Context) error {
	w.Running = true
	logger.Infof("Sync worker %s started", w.WorkerID)

	for {
		select {
		case <-ctx.Done():
			logger.Infof("Sync worker %s stopping due to context cancellation", w.WorkerID)
			return ctx.Err()
		case <-w.StopChan:
			logger.Infof("Sync worker %s stopping", w.WorkerID)
			return nil
		default:
			job, err := w.jobRepo.GetNextPendingJob(models.JobTypeSync)
			if err != nil {
				logger.Errorf("Sync worker %s error getting job: %v", w.WorkerID, err)
				time.Sleep(5 * time.Second)
				continue
			}

			if job == nil {
				// No jobs available, sleep and try again
				time.Sleep(10 * time.Second)
				continue
			}

			w.processSyncJob(ctx, job)
		}
	}
}

// processSyncJob handles a single sync job
func (w *SyncWorker) processSyncJob(ctx context.Context, job *models.Job) {
	logger.Infof("Sync worker %s processing job %s", w.WorkerID, job.ID)

	// The job was already claimed as in-progress; record who took it
	job.WorkerID = &w.WorkerID
	if err := w.jobRepo.Update(job); err != nil {
		logger.Errorf("Sync worker %s error updating job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	user, err := w.userRepo.GetByID(job.UserID)
	if err != nil {
		w.failJob(job, err)
		return
	}

	if err := w.syncService.SyncUser(ctx, user, true); err != nil {
		if errors.Is(err, services.ErrRateLimited) {
			logger.Warnf("Sync worker %s: user %s is rate limited", w.WorkerID, user.Username)
		}
		w.failJob(job, err)
		return
	}

	job.MarkCompleted()
	if err := w.jobRepo.Update(job); err != nil {
		logger.Errorf("Sync worker %s error completing job %s: %v", w.WorkerID, job.ID, err)
		return
	}

	logger.Infof("Sync worker %s completed job %s", w.WorkerID, job.ID)
}

func (w *SyncWorker) failJob(job *models.Job, cause error) {
	job.MarkFailed()
	job.SetError(cause.Error())
	if err := w.jobRepo.Update(job); err != nil {
		logger.Errorf("Sync worker %s error failing job %s: %v", w.WorkerID, job.ID, err)
	}
}
