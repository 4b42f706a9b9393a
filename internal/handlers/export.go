package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/middleware"
	"github.com/gitproof/gitproof/internal/services"
)

type ExportHandler struct {
	userService   *services.UserService
	exportService *services.ExportService
}

func NewExportHandler(userService *services.UserService, exportService *services.ExportService) *ExportHandler {
	return &ExportHandler{
		userService:   userService,
		exportService: exportService,
	}
}

// Export streams the recruiter XLSX report for the authenticated user
func (h *ExportHandler) Export(c *gin.Context) {
	session := middleware.GetSession(c)

	user, err := h.userService.GetUserByID(session.UserID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load user"})
		return
	}

	buf, err := h.exportService.ExportUserReport(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build export"})
		return
	}

	filename := fmt.Sprintf("gitproof-%s.xlsx", user.Username)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
