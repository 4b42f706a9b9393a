package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gitproof/gitproof/internal/handlers"
	"github.com/gitproof/gitproof/internal/middleware"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/gitproof/gitproof/internal/services"
	"github.com/gitproof/gitproof/internal/workers"
	"github.com/gitproof/gitproof/pkg/config"
	"github.com/gitproof/gitproof/pkg/database"
	"github.com/gitproof/gitproof/pkg/logger"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logging
	logger.Init()

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize database
	if err := database.Init(); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize repositories
	userRepo := repositories.NewUserRepository(database.DB)
	projectRepo := repositories.NewProjectRepository(database.DB)
	profileRepo := repositories.NewProfileDataRepository(database.DB)
	jobRepo := repositories.NewJobRepository(database.DB)

	// Initialize services
	userService := services.NewUserService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	fetchService := services.NewGitHubFetchService()
	rateLimits := services.NewRateLimitCache()
	syncService := services.NewSyncService(projectRepo, profileRepo, fetchService, rateLimits)
	statsService := services.NewStatsService(projectRepo, profileRepo)
	exportService := services.NewExportService(projectRepo, statsService)
	jobService := services.NewJobService(jobRepo)

	// Initialize worker manager
	workerManager := workers.NewWorkerManager(jobRepo, userRepo, syncService)

	// Initialize router
	router := gin.Default()
	router.Use(middleware.SessionMiddleware())

	setupRoutes(router, userService, projectService, statsService, exportService, jobService)

	// Start workers
	if err := workerManager.StartAll(); err != nil {
		logger.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, userService *services.UserService, projectService *services.ProjectService, statsService *services.StatsService, exportService *services.ExportService, jobService *services.JobService) {
	// Initialize handlers
	homeHandler := handlers.NewHomeHandler()
	authHandler := handlers.NewAuthHandler(userService)
	dashboardHandler := handlers.NewDashboardHandler(statsService, projectService)
	projectHandler := handlers.NewProjectHandler(projectService)
	profileHandler := handlers.NewProfileHandler(userService, statsService, projectService)
	exportHandler := handlers.NewExportHandler(userService, exportService)
	syncHandler := handlers.NewSyncHandler(jobService)

	// Public routes
	router.GET("/", homeHandler.Home)
	router.GET("/health", homeHandler.Health)
	router.GET("/u/:username", profileHandler.Profile)

	// Auth routes
	router.GET("/auth/github", authHandler.GitHubLogin)
	router.GET("/auth/github/callback", authHandler.GitHubCallback)
	router.GET("/logout", authHandler.Logout)

	// Protected API routes
	api := router.Group("/api")
	api.Use(middleware.AuthRequired())
	{
		api.GET("/dashboard", dashboardHandler.Dashboard)
		api.POST("/sync", syncHandler.TriggerSync)
		api.GET("/sync/:id", syncHandler.SyncStatus)
		api.POST("/projects/:id/visibility", projectHandler.UpdateVisibility)
		api.GET("/export", exportHandler.Export)
	}
}
