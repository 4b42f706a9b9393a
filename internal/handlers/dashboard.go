package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/middleware"
	"github.com/gitproof/gitproof/internal/services"
)

type DashboardHandler struct {
	statsService   *services.StatsService
	projectService *services.ProjectService
}

func NewDashboardHandler(statsService *services.StatsService, projectService *services.ProjectService) *DashboardHandler {
	return &DashboardHandler{
		statsService:   statsService,
		projectService: projectService,
	}
}

// Dashboard returns the authenticated user's full report, with all
// projects including hidden ones so visibility can be managed.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	session := middleware.GetSession(c)

	report, err := h.statsService.BuildReport(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	projects, err := h.projectService.GetUserProjects(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  session.Username,
		"stats":     report.Stats,
		"archetype": report.Archetype,
		"insights":  report.Insights,
		"projects":  projects,
	})
}
