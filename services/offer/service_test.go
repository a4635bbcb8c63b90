package offer

import (
	"context"
	"testing"
	"time"

	jobRepo "gighaat/database/repository/job"
	userRepo "gighaat/database/repository/user"
	"gighaat/models"
	"gighaat/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type offerFixture struct {
	svc   *DefaultOfferService
	jobs  *jobRepo.MemoryJobRepo
	clock *fakeClock
	jobID string
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newOfferFixture(t *testing.T) *offerFixture {
	t.Helper()

	jobs := jobRepo.NewMemoryJobRepo()
	users := userRepo.NewMemoryUserRepo(
		&models.User{ID: "client-1", Name: "Asha", Role: models.RoleClient},
		&models.User{ID: "freelancer-1", Name: "Ravi", Role: models.RoleFreelancer},
	)
	clock := &fakeClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	cooldowns := NewMemoryCooldownStore()
	cooldowns.Clock = clock.Now

	j := &models.Job{
		ID:       "job-1",
		ClientID: "client-1",
		Title:    "Paint fence",
		Budget:   300,
		Status:   models.JobStatusOpen,
	}
	require.NoError(t, jobs.Create(j))

	return &offerFixture{
		svc:   &DefaultOfferService{Jobs: jobs, Users: users, Cooldowns: cooldowns},
		jobs:  jobs,
		clock: clock,
		jobID: j.ID,
	}
}

func TestMakeOfferStoresPendingOffer(t *testing.T) {
	f := newOfferFixture(t)

	o, err := f.svc.MakeOffer(context.Background(), f.jobID, "freelancer-1", 250, "can start today")
	require.NoError(t, err)
	assert.Equal(t, models.OfferStatusPending, o.Status)
	assert.Equal(t, "Ravi", o.FreelancerName)

	j, err := f.jobs.GetByID(f.jobID)
	require.NoError(t, err)
	require.Len(t, j.Offers, 1)
	assert.Equal(t, o.ID, j.Offers[0].ID)
}

func TestMakeOfferCooldownBlocksResubmission(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	_, err := f.svc.MakeOffer(ctx, f.jobID, "freelancer-1", 250, "")
	require.NoError(t, err)

	// A rejected offer frees the pending-offer slot but the cooldown still holds.
	j, _ := f.jobs.GetByID(f.jobID)
	require.NoError(t, f.jobs.RejectOffer(f.jobID, j.Offers[0].ID))

	f.clock.Advance(2 * time.Minute)
	_, err = f.svc.MakeOffer(ctx, f.jobID, "freelancer-1", 240, "")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeCooldown, appErr.Code)
	assert.InDelta(t, (3 * time.Minute).Milliseconds(), appErr.RetryAfterMs, float64(time.Second.Milliseconds()))

	// Once the window elapses the freelancer may offer again.
	f.clock.Advance(3*time.Minute + time.Second)
	_, err = f.svc.MakeOffer(ctx, f.jobID, "freelancer-1", 240, "")
	require.NoError(t, err)
}

func TestMakeOfferRejectsDuplicatePending(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	_, err := f.svc.MakeOffer(ctx, f.jobID, "freelancer-1", 250, "")
	require.NoError(t, err)

	f.clock.Advance(OfferCooldown + time.Second)
	_, err = f.svc.MakeOffer(ctx, f.jobID, "freelancer-1", 240, "")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestMakeOfferValidation(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	_, err := f.svc.MakeOffer(ctx, f.jobID, "freelancer-1", 0, "")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeValidation, appErr.Code)

	_, err = f.svc.MakeOffer(ctx, "missing-job", "freelancer-1", 100, "")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)

	_, err = f.svc.MakeOffer(ctx, f.jobID, "client-1", 100, "")
	appErr, ok = apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeForbidden, appErr.Code)
}

func TestMakeOfferRequiresOpenJob(t *testing.T) {
	f := newOfferFixture(t)
	require.NoError(t, f.jobs.UpdateStatus(f.jobID, models.JobStatusOpen, models.JobStatusCancelled))

	_, err := f.svc.MakeOffer(context.Background(), f.jobID, "freelancer-1", 100, "")
	appErr, ok := apperrors.As(err)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeStateConflict, appErr.Code)
}

func TestCheckCooldown(t *testing.T) {
	f := newOfferFixture(t)
	ctx := context.Background()

	status, err := f.svc.CheckCooldown(ctx, f.jobID, "freelancer-1")
	require.NoError(t, err)
	assert.True(t, status.CanMakeOffer)
	assert.Zero(t, status.RemainingMs)

	_, err = f.svc.MakeOffer(ctx, f.jobID, "freelancer-1", 250, "")
	require.NoError(t, err)

	status, err = f.svc.CheckCooldown(ctx, f.jobID, "freelancer-1")
	require.NoError(t, err)
	assert.False(t, status.CanMakeOffer)
	assert.Greater(t, status.RemainingMs, int64(0))

	f.clock.Advance(OfferCooldown + time.Second)
	status, err = f.svc.CheckCooldown(ctx, f.jobID, "freelancer-1")
	require.NoError(t, err)
	assert.True(t, status.CanMakeOffer)
}
