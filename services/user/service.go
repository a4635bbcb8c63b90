package user

import (
	"errors"
	"strings"
	"time"

	userRepo "gighaat/database/repository/user"
	"gighaat/models"
	"gighaat/pkg/apperrors"
	"gighaat/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// tokenTTL is how long a session token stays valid.
const tokenTTL = 7 * 24 * time.Hour

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Role        string `json:"role" binding:"required"`
	Gender      string `json:"gender"`
}

// UpdateProfileInput carries the fields a user may change on their own record.
type UpdateProfileInput struct {
	Name        string `json:"name" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
	Gender      string `json:"gender"`
}

// AuthResult is a logged-in session: the user plus their bearer token.
type AuthResult struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// UserService owns accounts and sessions. Login issues a JWT and stores its
// hash, so a later login from another device invalidates the previous session.
type UserService interface {
	// Register creates a client or freelancer account.
	Register(input RegisterInput) (*AuthResult, error)
	// Login checks credentials and issues a fresh session token.
	Login(email, password string) (*AuthResult, error)
	// GetProfile returns the user's own record.
	GetProfile(userID string) (*models.User, error)
	// UpdateProfile changes the user's display fields. Email, role, and
	// credentials are not editable through this path.
	UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error)
	// SearchByPhone finds freelancer accounts by phone number.
	SearchByPhone(phoneNumber string) ([]models.User, error)
}

// DefaultUserService is the production UserService.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a client or freelancer account. Admin accounts are not
// self-service; they are provisioned out of band.
func (s *DefaultUserService) Register(input RegisterInput) (*AuthResult, error) {
	role := strings.ToLower(input.Role)
	if role != models.RoleClient && role != models.RoleFreelancer {
		return nil, apperrors.Validation("role must be client or freelancer")
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.Repo.GetByEmail(email)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if existing != nil {
		return nil, apperrors.StateConflict("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	now := time.Now()
	u := &models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  input.PhoneNumber,
		Role:         role,
		Gender:       input.Gender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.Create(u); err != nil {
		return nil, apperrors.Internal(err)
	}

	result, err := s.issueSession(u)
	if err != nil {
		return nil, err
	}
	zap.L().Info("user registered", zap.String("userID", u.ID), zap.String("role", role))
	return result, nil
}

// Login checks credentials and issues a fresh session token.
func (s *DefaultUserService) Login(email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if u == nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.Unauthorized("invalid email or password")
	}

	result, err := s.issueSession(u)
	if err != nil {
		return nil, err
	}
	zap.L().Info("user logged in", zap.String("userID", u.ID))
	return result, nil
}

// GetProfile returns the user's own record.
func (s *DefaultUserService) GetProfile(userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}
	return u, nil
}

// UpdateProfile changes the user's display fields.
func (s *DefaultUserService) UpdateProfile(userID string, input UpdateProfileInput) (*models.User, error) {
	u, err := s.Repo.GetByID(userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrNotFound) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.Internal(err)
	}

	u.Name = input.Name
	u.PhoneNumber = input.PhoneNumber
	u.Gender = input.Gender
	if err := s.Repo.Update(u); err != nil {
		return nil, apperrors.Internal(err)
	}
	zap.L().Info("profile updated", zap.String("userID", userID))
	return u, nil
}

// SearchByPhone finds freelancer accounts by phone number.
func (s *DefaultUserService) SearchByPhone(phoneNumber string) ([]models.User, error) {
	if phoneNumber == "" {
		return nil, apperrors.Validation("phone number is required")
	}
	users, err := s.Repo.GetByPhone(phoneNumber)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	freelancers := users[:0]
	for _, u := range users {
		if u.Role == models.RoleFreelancer {
			freelancers = append(freelancers, u)
		}
	}
	return freelancers, nil
}

func (s *DefaultUserService) issueSession(u *models.User) (*AuthResult, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, tokenTTL)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if err := s.Repo.SetTokenHash(u.ID, utils.HashToken(token)); err != nil {
		return nil, apperrors.Internal(err)
	}
	return &AuthResult{User: u, Token: token}, nil
}
