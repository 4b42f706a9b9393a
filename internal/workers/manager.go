package workers

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/gitproof/gitproof/internal/services"
	"github.com/gitproof/gitproof/pkg/logger"
)

// WorkerManager manages the pool of background workers
type WorkerManager struct {
	workers     []Worker
	jobRepo     *repositories.JobRepository
	userRepo    *repositories.UserRepository
	syncService *services.SyncService
	wg          sync.WaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
}

// NewWorkerManager creates a new worker manager
func NewWorkerManager(jobRepo *repositories.JobRepository, userRepo *repositories.UserRepository, syncService *services.SyncService) *WorkerManager {
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerManager{
		workers:     make([]Worker, 0),
		jobRepo:     jobRepo,
		userRepo:    userRepo,
		syncService: syncService,
		ctx:         ctx,
		cancel:      cancel,
	}
}

// StartAll starts all workers based on environment configuration
func (wm *WorkerManager) StartAll() error {
	syncWorkers := wm.getWorkerCount("SYNC_WORKERS", 2)

	logger.Infof("Starting workers - Sync: %d", syncWorkers)

	for i := 0; i < syncWorkers; i++ {
		worker := NewSyncWorker(fmt.Sprintf("sync-%d", i+1), wm.jobRepo, wm.userRepo, wm.syncService)
		wm.workers = append(wm.workers, worker)
		wm.startWorker(worker)
	}

	logger.Infof("Started %d total workers", len(wm.workers))
	return nil
}

// StopAll gracefully stops all workers
func (wm *WorkerManager) StopAll() error {
	logger.Info("Stopping all workers...")

	wm.cancel()

	for _, worker := range wm.workers {
		if err := worker.Stop(); err != nil {
			logger.Errorf("Error stopping worker %s: %v", worker.GetWorkerID(), err)
		}
	}

	wm.wg.Wait()

	logger.Info("All workers stopped")
	return nil
}

// getWorkerCount reads a worker count from the environment with fallback
func (wm *WorkerManager) getWorkerCount(envVar string, defaultValue int) int {
	if value := os.Getenv(envVar); value != "" {
		if count, err := strconv.Atoi(value); err == nil && count > 0 {
			return count
		}
		logger.Warnf("Invalid value for %s, using default: %d", envVar, defaultValue)
	}
	return defaultValue
}

// startWorker starts a single worker in a goroutine
func (wm *WorkerManager) startWorker(worker Worker) {
	wm.wg.Add(1)
	go func() {
		defer wm.wg.Done()
		if err := worker.Start(wm.ctx); err != nil && err != context.Canceled {
			logger.Errorf("Worker %s stopped with error: %v", worker.GetWorkerID(), err)
		}
	}()
}
