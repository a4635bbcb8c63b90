package user

import (
	"testing"

	userRepo "gighaat/database/repository/user"
	"gighaat/models"
	"gighaat/pkg/apperrors"
	"gighaat/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registerInput() RegisterInput {
	return RegisterInput{
		Name:        "Ravi Kumar",
		Email:       "Ravi@Example.com",
		Password:    "s3cret-pass",
		PhoneNumber: "9876543210",
		Role:        "freelancer",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc := &DefaultUserService{Repo: userRepo.NewMemoryUserRepo()}

	result, err := svc.Register(registerInput())
	require.NoError(t, err)
	assert.Equal(t, models.RoleFreelancer, result.User.Role)
	assert.Equal(t, "ravi@example.com", result.User.Email)
	assert.NotEmpty(t, result.Token)
	assert.NotEqual(t, "s3cret-pass", result.User.PasswordHash)

	login, err := svc.Login("ravi@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, login.User.ID)

	_, err = svc.Login("ravi@example.com", "wrong-pass")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)

	_, err = svc.Login("nobody@example.com", "s3cret-pass")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
}

func TestRegisterRejectsBadRoleAndDuplicates(t *testing.T) {
	svc := &DefaultUserService{Repo: userRepo.NewMemoryUserRepo()}

	input := registerInput()
	input.Role = "admin"
	_, err := svc.Register(input)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	_, err = svc.Register(registerInput())
	require.NoError(t, err)

	_, err = svc.Register(registerInput())
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestLoginRotatesSessionToken(t *testing.T) {
	repo := userRepo.NewMemoryUserRepo()
	svc := &DefaultUserService{Repo: repo}

	first, err := svc.Register(registerInput())
	require.NoError(t, err)

	second, err := svc.Login("ravi@example.com", "s3cret-pass")
	require.NoError(t, err)

	// Only the newest token's hash is stored; the old session is dead.
	u, err := repo.GetByTokenHash(utils.HashToken(second.Token))
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.NotEqual(t, first.Token, second.Token)
	_, err = repo.GetByTokenHash(utils.HashToken(first.Token))
	assert.ErrorIs(t, err, userRepo.ErrNotFound)
}

func TestUpdateProfile(t *testing.T) {
	repo := userRepo.NewMemoryUserRepo()
	svc := &DefaultUserService{Repo: repo}

	result, err := svc.Register(registerInput())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(result.User.ID, UpdateProfileInput{
		Name:        "Ravi K",
		PhoneNumber: "9000000000",
		Gender:      "male",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi K", updated.Name)
	assert.Equal(t, "9000000000", updated.PhoneNumber)

	// Email, role, and credentials are untouched.
	u, err := repo.GetByID(result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "ravi@example.com", u.Email)
	assert.Equal(t, models.RoleFreelancer, u.Role)
	assert.Equal(t, result.User.PasswordHash, u.PasswordHash)

	// The session survives a profile update.
	_, err = repo.GetByTokenHash(utils.HashToken(result.Token))
	require.NoError(t, err)

	_, err = svc.UpdateProfile("nobody", UpdateProfileInput{Name: "X", PhoneNumber: "1"})
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestSearchByPhoneReturnsFreelancersOnly(t *testing.T) {
	repo := userRepo.NewMemoryUserRepo(
		&models.User{ID: "u1", PhoneNumber: "9876543210", Role: models.RoleFreelancer},
		&models.User{ID: "u2", PhoneNumber: "9876543210", Role: models.RoleClient},
	)
	svc := &DefaultUserService{Repo: repo}

	found, err := svc.SearchByPhone("9876543210")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "u1", found[0].ID)

	_, err = svc.SearchByPhone("")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
