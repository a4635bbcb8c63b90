package job

import (
	"fmt"
	"testing"
	"time"

	jobRepo "gighaat/database/repository/job"
	userRepo "gighaat/database/repository/user"
	"gighaat/models"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Each step of a generated sequence picks one of five freelancers and one of
// three actions (offer, accept, reject) from the step's integer code.
const propertyFreelancers = 5

func TestAcceptedOfferInvariantUnderRandomSequences(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	steps := gen.SliceOfN(30, gen.IntRange(0, 3*propertyFreelancers-1))

	properties.Property("at most one accepted offer, assignment consistent", prop.ForAll(
		func(seq []int) bool {
			client, _ := testUsers()
			repo := jobRepo.NewMemoryJobRepo()
			svc := &DefaultJobService{Repo: repo, Users: userRepo.NewMemoryUserRepo(client)}

			j, err := svc.PostJob("client-1", validInput())
			if err != nil {
				return false
			}

			for _, step := range seq {
				fid := fmt.Sprintf("freelancer-%d", step%propertyFreelancers)
				switch step / propertyFreelancers {
				case 0:
					_ = repo.AddOffer(j.ID, models.Offer{
						ID:           uuid.New().String(),
						FreelancerID: fid,
						Amount:       100,
						Status:       models.OfferStatusPending,
						CreatedAt:    time.Now(),
					})
				case 1:
					_, _ = svc.AcceptOffer(j.ID, "client-1", fid)
				case 2:
					_ = svc.RejectOffer(j.ID, "client-1", fid)
				}

				current, err := svc.GetJob(j.ID)
				if err != nil {
					return false
				}
				accepted := 0
				for _, o := range current.Offers {
					if o.Status == models.OfferStatusAccepted {
						accepted++
					}
				}
				if accepted > 1 {
					return false
				}
				if accepted == 1 && (current.Status != models.JobStatusAssigned ||
					current.AssignedFreelancer == nil) {
					return false
				}
				if accepted == 0 && current.Status != models.JobStatusOpen {
					return false
				}
			}
			return true
		}, steps))

	properties.TestingRun(t)
}
