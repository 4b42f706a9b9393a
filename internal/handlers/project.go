package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/middleware"
	"github.com/gitproof/gitproof/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

type updateVisibilityRequest struct {
	Hidden *bool `json:"hidden" binding:"required"`
}

// UpdateVisibility hides or unhides one of the user's projects. Hidden
// projects drop out of the stats and the public profile but still count
// toward the portfolio size.
func (h *ProjectHandler) UpdateVisibility(c *gin.Context) {
	session := middleware.GetSession(c)
	projectID := c.Param("id")

	var req updateVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hidden field is required"})
		return
	}

	project, err := h.projectService.SetVisibility(session.UserID, projectID, *req.Hidden)
	if err != nil {
		if errors.Is(err, services.ErrProjectNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"project": project})
}
