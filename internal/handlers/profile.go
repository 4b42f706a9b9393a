package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/services"
)

type ProfileHandler struct {
	userService    *services.UserService
	statsService   *services.StatsService
	projectService *services.ProjectService
}

func NewProfileHandler(userService *services.UserService, statsService *services.StatsService, projectService *services.ProjectService) *ProfileHandler {
	return &ProfileHandler{
		userService:    userService,
		statsService:   statsService,
		projectService: projectService,
	}
}

// Profile returns the public profile for a username. Only visible
// projects are exposed; no authentication is required.
func (h *ProfileHandler) Profile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.userService.GetUserByUsername(username)
	if err != nil || user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}

	report, err := h.statsService.BuildReport(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build report"})
		return
	}

	projects, err := h.projectService.GetVisibleProjects(user.ID.String())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":        user.Username,
		"name":            user.Name,
		"profile_picture": user.ProfilePicture,
		"stats":           report.Stats,
		"archetype":       report.Archetype,
		"insights":        report.Insights,
		"projects":        projects,
	})
}
