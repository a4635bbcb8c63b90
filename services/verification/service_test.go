package verification

import (
	"testing"

	userRepo "gighaat/database/repository/user"
	verificationRepo "gighaat/database/repository/verification"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVerificationFixture(t *testing.T) (*DefaultVerificationService, *userRepo.MemoryUserRepo) {
	t.Helper()

	users := userRepo.NewMemoryUserRepo(
		&models.User{ID: "freelancer-1", Name: "Ravi", Role: models.RoleFreelancer},
	)
	return &DefaultVerificationService{
		Repo:  verificationRepo.NewMemoryVerificationRepo(),
		Users: users,
	}, users
}

func docsInput() SubmitInput {
	return SubmitInput{
		FullName:     "Ravi Kumar",
		DOB:          "1994-03-12",
		Gender:       "male",
		Address:      "12 MG Road, Bengaluru",
		AadhaarFront: "gighaat/documents/aadhaar-front",
		AadhaarBack:  "gighaat/documents/aadhaar-back",
		PanCard:      "gighaat/documents/pan",
		ProfilePhoto: "gighaat/photos/ravi",
	}
}

func TestSubmitAndApprove(t *testing.T) {
	svc, users := newVerificationFixture(t)

	v, err := svc.Submit("freelancer-1", docsInput())
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, v.Status)

	status, err := svc.StatusFor("freelancer-1")
	require.NoError(t, err)
	assert.True(t, status.Submitted)
	assert.Equal(t, models.VerificationPending, status.Status)

	approved, err := svc.Approve(v.ID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationApproved, approved.Status)

	u, err := users.GetByID("freelancer-1")
	require.NoError(t, err)
	assert.True(t, u.Verified)
}

func TestSubmitBlockedWhilePendingOrApproved(t *testing.T) {
	svc, _ := newVerificationFixture(t)

	v, err := svc.Submit("freelancer-1", docsInput())
	require.NoError(t, err)

	_, err = svc.Submit("freelancer-1", docsInput())
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)

	_, err = svc.Approve(v.ID, "admin-1")
	require.NoError(t, err)

	_, err = svc.Submit("freelancer-1", docsInput())
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestRejectAndResubmit(t *testing.T) {
	svc, users := newVerificationFixture(t)

	v, err := svc.Submit("freelancer-1", docsInput())
	require.NoError(t, err)

	_, err = svc.Reject(v.ID, "admin-1", "")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	rejected, err := svc.Reject(v.ID, "admin-1", "aadhaar photo unreadable")
	require.NoError(t, err)
	assert.Equal(t, models.VerificationRejected, rejected.Status)

	status, _ := svc.StatusFor("freelancer-1")
	assert.Equal(t, "aadhaar photo unreadable", status.RejectionReason)

	// Resubmission replaces the documents and returns the record to pending.
	input := docsInput()
	input.AadhaarFront = "gighaat/documents/aadhaar-front-v2"
	resubmitted, err := svc.Submit("freelancer-1", input)
	require.NoError(t, err)
	assert.Equal(t, models.VerificationPending, resubmitted.Status)
	assert.Equal(t, v.ID, resubmitted.ID)
	assert.Empty(t, resubmitted.RejectionReason)

	approved, err := svc.Approve(v.ID, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, "gighaat/documents/aadhaar-front-v2", approved.AadhaarFront)

	u, _ := users.GetByID("freelancer-1")
	assert.True(t, u.Verified)
}

func TestReviewOnlyOnce(t *testing.T) {
	svc, _ := newVerificationFixture(t)

	v, err := svc.Submit("freelancer-1", docsInput())
	require.NoError(t, err)
	_, err = svc.Approve(v.ID, "admin-1")
	require.NoError(t, err)

	_, err = svc.Approve(v.ID, "admin-2")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)

	_, err = svc.Reject(v.ID, "admin-2", "late")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestListByStatus(t *testing.T) {
	svc, _ := newVerificationFixture(t)
	_, err := svc.Submit("freelancer-1", docsInput())
	require.NoError(t, err)

	pending, err := svc.List(models.VerificationPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	approved, err := svc.List(models.VerificationApproved)
	require.NoError(t, err)
	assert.Empty(t, approved)

	_, err = svc.List("bogus")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)
}
