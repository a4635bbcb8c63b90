package job

import (
	"testing"
	"time"

	jobRepo "gighaat/database/repository/job"
	userRepo "gighaat/database/repository/user"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUsers() (*models.User, *models.User) {
	client := &models.User{ID: "client-1", Name: "Asha", Role: models.RoleClient}
	freelancer := &models.User{ID: "freelancer-1", Name: "Ravi", PhoneNumber: "9876543210", Role: models.RoleFreelancer}
	return client, freelancer
}

func newTestService() (*DefaultJobService, *jobRepo.MemoryJobRepo) {
	client, freelancer := testUsers()
	repo := jobRepo.NewMemoryJobRepo()
	return &DefaultJobService{
		Repo:  repo,
		Users: userRepo.NewMemoryUserRepo(client, freelancer),
	}, repo
}

func validInput() PostJobInput {
	return PostJobInput{
		Title:    "Fix kitchen sink",
		Category: "plumbing",
		Address:  "12 MG Road",
		Pincode:  "560001",
		Budget:   500,
	}
}

func addPendingOffer(t *testing.T, repo *jobRepo.MemoryJobRepo, jobID, freelancerID string, amount float64) models.Offer {
	t.Helper()
	o := models.Offer{
		ID:           uuid.New().String(),
		FreelancerID: freelancerID,
		Amount:       amount,
		Status:       models.OfferStatusPending,
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.AddOffer(jobID, o))
	return o
}

func TestPostJobValidation(t *testing.T) {
	svc, _ := newTestService()

	cases := []struct {
		name   string
		mutate func(*PostJobInput)
	}{
		{"budget below minimum", func(in *PostJobInput) { in.Budget = 9.99 }},
		{"pincode too short", func(in *PostJobInput) { in.Pincode = "5600" }},
		{"pincode not numeric", func(in *PostJobInput) { in.Pincode = "56000a" }},
		{"missing title", func(in *PostJobInput) { in.Title = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)
			_, err := svc.PostJob("client-1", input)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
		})
	}
}

func TestPostJobCreatesOpenJob(t *testing.T) {
	svc, _ := newTestService()

	j, err := svc.PostJob("client-1", validInput())
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusOpen, j.Status)
	assert.Equal(t, "Asha", j.ClientName)
	assert.Empty(t, j.Offers)
}

func TestAcceptOfferAssignsJob(t *testing.T) {
	svc, repo := newTestService()
	j, err := svc.PostJob("client-1", validInput())
	require.NoError(t, err)
	addPendingOffer(t, repo, j.ID, "freelancer-1", 450)

	updated, err := svc.AcceptOffer(j.ID, "client-1", "freelancer-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusAssigned, updated.Status)
	require.NotNil(t, updated.AssignedFreelancer)
	assert.Equal(t, "freelancer-1", updated.AssignedFreelancer.ID)
	require.NotNil(t, updated.AcceptedOffer())
	assert.InDelta(t, 450.0, updated.AcceptedOffer().Amount, 1e-9)
}

func TestAcceptOfferFailsForNonOwner(t *testing.T) {
	svc, repo := newTestService()
	j, _ := svc.PostJob("client-1", validInput())
	addPendingOffer(t, repo, j.ID, "freelancer-1", 450)

	_, err := svc.AcceptOffer(j.ID, "someone-else", "freelancer-1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestAcceptOfferOnlyOnce(t *testing.T) {
	svc, repo := newTestService()
	j, _ := svc.PostJob("client-1", validInput())
	addPendingOffer(t, repo, j.ID, "freelancer-1", 450)
	addPendingOffer(t, repo, j.ID, "freelancer-2", 480)

	_, err := svc.AcceptOffer(j.ID, "client-1", "freelancer-1")
	require.NoError(t, err)

	_, err = svc.AcceptOffer(j.ID, "client-1", "freelancer-2")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)

	final, err := svc.GetJob(j.ID)
	require.NoError(t, err)
	accepted := 0
	for _, o := range final.Offers {
		if o.Status == models.OfferStatusAccepted {
			accepted++
		}
	}
	assert.Equal(t, 1, accepted)
}

func TestPickupJobAssignsDirectly(t *testing.T) {
	svc, _ := newTestService()
	j, err := svc.PostJob("client-1", validInput())
	require.NoError(t, err)

	picked, err := svc.PickupJob(j.ID, "freelancer-1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusAssigned, picked.Status)
	require.NotNil(t, picked.AssignedFreelancer)
	assert.Equal(t, "freelancer-1", picked.AssignedFreelancer.ID)
	assert.Equal(t, "9876543210", picked.AssignedFreelancer.Phone)
	// No offer was placed, so payment falls back to the posted budget.
	assert.Nil(t, picked.AcceptedOffer())
}

func TestPickupJobOnlyWhileOpen(t *testing.T) {
	svc, _ := newTestService()
	j, err := svc.PostJob("client-1", validInput())
	require.NoError(t, err)

	_, err = svc.PickupJob(j.ID, "freelancer-1")
	require.NoError(t, err)

	_, err = svc.PickupJob(j.ID, "freelancer-1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestPickupOwnJobForbidden(t *testing.T) {
	svc, _ := newTestService()
	j, err := svc.PostJob("client-1", validInput())
	require.NoError(t, err)

	_, err = svc.PickupJob(j.ID, "client-1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestRejectOfferKeepsJobOpen(t *testing.T) {
	svc, repo := newTestService()
	j, _ := svc.PostJob("client-1", validInput())
	addPendingOffer(t, repo, j.ID, "freelancer-1", 450)

	require.NoError(t, svc.RejectOffer(j.ID, "client-1", "freelancer-1"))

	final, err := svc.GetJob(j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusOpen, final.Status)
	assert.Equal(t, models.OfferStatusRejected, final.Offers[0].Status)
}

func TestLifecycleTransitions(t *testing.T) {
	svc, repo := newTestService()
	j, _ := svc.PostJob("client-1", validInput())
	addPendingOffer(t, repo, j.ID, "freelancer-1", 450)
	_, err := svc.AcceptOffer(j.ID, "client-1", "freelancer-1")
	require.NoError(t, err)

	// Only the assigned freelancer may mark work done.
	err = svc.MarkWorkDone(j.ID, "freelancer-2")
	appErr, _ := apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	require.NoError(t, svc.MarkWorkDone(j.ID, "freelancer-1"))

	// Confirmation requires the job to be paid (completed) first.
	err = svc.ConfirmFullCompletion(j.ID, "freelancer-1")
	appErr, _ = apperrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)

	require.NoError(t, repo.UpdateStatus(j.ID, models.JobStatusWorkDone, models.JobStatusCompleted))
	require.NoError(t, svc.ConfirmFullCompletion(j.ID, "freelancer-1"))

	final, err := svc.GetJob(j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFullyCompleted, final.Status)
}

func TestClientConfirmWorkDone(t *testing.T) {
	svc, _ := newTestService()
	j, _ := svc.PostJob("client-1", validInput())
	_, err := svc.PickupJob(j.ID, "freelancer-1")
	require.NoError(t, err)

	err = svc.ConfirmWorkDone(j.ID, "someone-else")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)

	require.NoError(t, svc.ConfirmWorkDone(j.ID, "client-1"))

	final, err := svc.GetJob(j.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusWorkDone, final.Status)

	// Already work_done, a second report is a conflict.
	err = svc.ConfirmWorkDone(j.ID, "client-1")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestCancelOnlyWhileOpen(t *testing.T) {
	svc, repo := newTestService()
	j, _ := svc.PostJob("client-1", validInput())
	addPendingOffer(t, repo, j.ID, "freelancer-1", 450)
	_, err := svc.AcceptOffer(j.ID, "client-1", "freelancer-1")
	require.NoError(t, err)

	err = svc.CancelJob(j.ID, "client-1")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestUpdateAndDeleteOnlyWhileEditable(t *testing.T) {
	svc, repo := newTestService()
	j, _ := svc.PostJob("client-1", validInput())

	input := validInput()
	input.Budget = 750
	updated, err := svc.UpdateJob(j.ID, "client-1", input)
	require.NoError(t, err)
	assert.InDelta(t, 750.0, updated.Budget, 1e-9)

	addPendingOffer(t, repo, j.ID, "freelancer-1", 450)
	_, err = svc.AcceptOffer(j.ID, "client-1", "freelancer-1")
	require.NoError(t, err)

	_, err = svc.UpdateJob(j.ID, "client-1", input)
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)

	err = svc.DeleteJob(j.ID, "client-1")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestAvailableJobsListingCache(t *testing.T) {
	svc, repo := newTestService()
	svc.Cache = NewMemoryListingCache()

	first, err := svc.PostJob("client-1", validInput())
	require.NoError(t, err)

	listed, err := svc.AvailableJobs()
	require.NoError(t, err)
	require.Len(t, listed, 1)

	// A direct repo insert bypasses invalidation, so the cached copy is served.
	require.NoError(t, repo.Create(&models.Job{
		ID: uuid.New().String(), ClientID: "client-2", Title: "Paint fence", Status: models.JobStatusOpen,
	}))
	listed, err = svc.AvailableJobs()
	require.NoError(t, err)
	assert.Len(t, listed, 1)

	// A service-level mutation drops the cache, so the next read is fresh.
	_, err = svc.PostJob("client-1", validInput())
	require.NoError(t, err)
	listed, err = svc.AvailableJobs()
	require.NoError(t, err)
	assert.Len(t, listed, 3)

	// Assignment removes the job from the open listing immediately.
	_, err = svc.PickupJob(first.ID, "freelancer-1")
	require.NoError(t, err)
	listed, err = svc.AvailableJobs()
	require.NoError(t, err)
	assert.Len(t, listed, 2)
}

func TestJobListsSplitByState(t *testing.T) {
	svc, repo := newTestService()

	active, _ := svc.PostJob("client-1", validInput())
	done, _ := svc.PostJob("client-1", validInput())
	require.NoError(t, repo.UpdateStatus(done.ID, models.JobStatusOpen, models.JobStatusCancelled))

	mine, err := svc.MyJobs("client-1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, active.ID, mine[0].ID)

	history, err := svc.JobHistory("client-1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, done.ID, history[0].ID)
}
