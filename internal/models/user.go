package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Username          string    `json:"username"`
	Email             string    `json:"email"`
	ProfilePicture    string    `json:"profile_picture"`
	GitHubAccessToken string    `json:"-"`
	CreatedAt         time.Time `json:"created_at"`
}

// ValidationError describes a single invalid field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var ErrUsernameRequired = &ValidationError{Field: "username", Message: "Username is required"}

func (u *User) Validate() error {
	if u.Username == "" {
		return ErrUsernameRequired
	}
	return nil
}
