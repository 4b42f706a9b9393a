package services

import (
	"errors"

	"github.com/gitproof/gitproof/internal/models"
	"github.com/gitproof/gitproof/internal/repositories"
	"github.com/google/uuid"
)

type UserService struct {
	userRepo *repositories.UserRepository
}

func NewUserService(userRepo *repositories.UserRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

// CreateUser creates a new user
func (s *UserService) CreateUser(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	return s.userRepo.Create(user)
}

// GetUserByID retrieves a user by ID
func (s *UserService) GetUserByID(id string) (*models.User, error) {
	if id == "" {
		return nil, errors.New("user ID is required")
	}

	// Validate UUID format
	if _, err := uuid.Parse(id); err != nil {
		return nil, errors.New("invalid user ID format")
	}

	return s.userRepo.GetByID(id)
}

// GetUserByUsername retrieves a user by username
func (s *UserService) GetUserByUsername(username string) (*models.User, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}
	return s.userRepo.GetByUsername(username)
}

// UpdateUser updates a user
func (s *UserService) UpdateUser(user *models.User) error {
	if err := user.Validate(); err != nil {
		return err
	}
	if user.ID == uuid.Nil {
		return errors.New("user ID is required")
	}
	return s.userRepo.Update(user)
}
