package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/middleware"
)

type HomeHandler struct{}

func NewHomeHandler() *HomeHandler {
	return &HomeHandler{}
}

// Home returns basic service information
func (h *HomeHandler) Home(c *gin.Context) {
	session := middleware.GetSession(c)

	data := gin.H{
		"service":       "gitproof",
		"description":   "GitHub portfolio scoring and insights",
		"authenticated": session != nil,
	}
	if session != nil {
		data["username"] = session.Username
	}

	c.JSON(http.StatusOK, data)
}

// Health is the health check endpoint
func (h *HomeHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
