package services

import (
	"database/sql"
	"errors"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/google/uuid"
)

var ErrProjectNotFound = errors.New("project not found")

type ProjectService struct {
	projectRepo *repositories.ProjectRepository
}

func NewProjectService(projectRepo *repositories.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// GetUserProjects retrieves all of a user's projects, hidden included
func (s *ProjectService) GetUserProjects(userID string) ([]*models.Project, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return s.projectRepo.GetByUserID(userID)
}

// GetVisibleProjects retrieves a user's visible projects, best first
func (s *ProjectService) GetVisibleProjects(userID string) ([]*models.Project, error) {
	if userID == "" {
		return nil, errors.New("user ID is required")
	}
	return s.projectRepo.GetVisibleByUserID(userID)
}

// SetVisibility hides or unhides a project. The project must belong to
// the given user; hiding another user's project is not allowed.
func (s *ProjectService) SetVisibility(userID, projectID string, hidden bool) (*models.Project, error) {
	if _, err := uuid.Parse(projectID); err != nil {
		return nil, ErrProjectNotFound
	}

	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	if project.UserID != userID {
		return nil, ErrProjectNotFound
	}

	if err := s.projectRepo.SetHidden(projectID, hidden); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}

	project.Hidden = hidden
	return project, nil
}
