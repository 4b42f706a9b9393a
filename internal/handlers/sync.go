package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/middleware"
	"github.com/gitproof/gitproof/internal/services"
)

type SyncHandler struct {
	jobService *services.JobService
}

func NewSyncHandler(jobService *services.JobService) *SyncHandler {
	return &SyncHandler{
		jobService: jobService,
	}
}

// TriggerSync enqueues a sync job for the authenticated user. Repeated
// requests while a job is pending or running are deduplicated.
func (h *SyncHandler) TriggerSync(c *gin.Context) {
	session := middleware.GetSession(c)

	job, err := h.jobService.EnqueueSync(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to enqueue sync"})
		return
	}

	if job == nil {
		c.JSON(http.StatusOK, gin.H{"status": "already_queued"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "queued", "job_id": job.ID})
}

// SyncStatus returns the state of a previously enqueued sync job
func (h *SyncHandler) SyncStatus(c *gin.Context) {
	session := middleware.GetSession(c)

	job, err := h.jobService.GetJob(c.Param("id"))
	if err != nil || job == nil || job.UserID != session.UserID {
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}

	resp := gin.H{"status": job.Status}
	if job.ErrorMessage != nil {
		resp["error"] = *job.ErrorMessage
	}
	c.JSON(http.StatusOK, resp)
}
