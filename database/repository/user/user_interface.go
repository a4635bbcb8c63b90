package userRepo

import (
	"errors"

	"gighaat/models"
)

// ErrNotFound is returned when no user matches the given ID.
var ErrNotFound = errors.New("user not found")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// GetByID retrieves a user by its unique ID.
	GetByID(id string) (*models.User, error)
	// GetByEmail retrieves a user by email, or nil if none exists.
	GetByEmail(email string) (*models.User, error)
	// GetByPhone retrieves users matching a phone number.
	GetByPhone(phoneNumber string) ([]models.User, error)
	// Create inserts a new user record.
	Create(user *models.User) error
	// Update modifies an existing user record.
	Update(user *models.User) error
	// SetTokenHash stores the hash of the user's current session token.
	SetTokenHash(id, tokenHash string) error
	// GetByTokenHash retrieves the user holding the given session token hash.
	GetByTokenHash(tokenHash string) (*models.User, error)
	// SetVerified flips the freelancer's verified flag.
	SetVerified(id string, verified bool) error
}
