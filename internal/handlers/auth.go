package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/middleware"
	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/services"
	"github.com/gitproof/gitproof/pkg/logger"
	"github.com/google/uuid"
)

type AuthHandler struct {
	userService   *services.UserService
	githubService *services.GitHubService
}

func NewAuthHandler(userService *services.UserService) *AuthHandler {
	return &AuthHandler{
		userService:   userService,
		githubService: services.NewGitHubService(),
	}
}

// GitHubLogin initiates GitHub OAuth flow
func (h *AuthHandler) GitHubLogin(c *gin.Context) {
	authURL := h.githubService.GetAuthURL()
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GitHubCallback handles GitHub OAuth callback
func (h *AuthHandler) GitHubCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.Redirect(http.StatusFound, "/?error=no_code")
		return
	}

	// Exchange code for token
	token, err := h.githubService.ExchangeCodeForToken(code)
	if err != nil {
		logger.WithError(err).Warnf("OAuth token exchange failed")
		c.Redirect(http.StatusFound, "/?error=token_exchange_failed")
		return
	}

	// Get user info from GitHub
	githubUser, err := h.githubService.GetUserInfo(token)
	if err != nil {
		logger.WithError(err).Warnf("OAuth user info fetch failed")
		c.Redirect(http.StatusFound, "/?error=user_info_failed")
		return
	}

	// Check if user exists in our database
	user, err := h.userService.GetUserByUsername(githubUser.Login)
	if err != nil || user == nil {
		// User doesn't exist, create new user
		user = &models.User{
			ID:                uuid.New(),
			Name:              githubUser.Name,
			Username:          githubUser.Login,
			Email:             githubUser.Email,
			ProfilePicture:    githubUser.AvatarURL,
			GitHubAccessToken: token.AccessToken,
		}

		if err := h.userService.CreateUser(user); err != nil {
			c.Redirect(http.StatusFound, "/?error=user_creation_failed")
			return
		}
	} else {
		// Update existing user's GitHub token
		user.GitHubAccessToken = token.AccessToken
		if err := h.userService.UpdateUser(user); err != nil {
			c.Redirect(http.StatusFound, "/?error=user_update_failed")
			return
		}
	}

	// Create session
	if err := middleware.SetSession(c, user.ID.String(), user.Username); err != nil {
		c.Redirect(http.StatusFound, "/?error=session_creation_failed")
		return
	}

	c.Redirect(http.StatusFound, "/api/dashboard")
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSession(c)
	c.Redirect(http.StatusFound, "/")
}
