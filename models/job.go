package models

import "time"

// Job status values. A job moves open -> assigned -> work_done -> completed ->
// fully_completed, or open -> cancelled.
const (
	JobStatusOpen           = "open"
	JobStatusAssigned       = "assigned"
	JobStatusWorkDone       = "work_done"
	JobStatusCompleted      = "completed"
	JobStatusFullyCompleted = "fully_completed"
	JobStatusCancelled      = "cancelled"
)

// Offer status values.
const (
	OfferStatusPending  = "pending"
	OfferStatusAccepted = "accepted"
	OfferStatusRejected = "rejected"
)

// Offer is a freelancer's bid on a job, embedded in the job document.
type Offer struct {
	ID             string    `bson:"id" json:"id"`
	FreelancerID   string    `bson:"freelancer_id" json:"freelancerId"`
	FreelancerName string    `bson:"freelancer_name" json:"freelancerName"`
	Amount         float64   `bson:"amount" json:"amount"`
	Message        string    `bson:"message,omitempty" json:"message,omitempty"`
	Status         string    `bson:"status" json:"status"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

// AssignedFreelancer carries the display fields of the freelancer whose offer
// was accepted.
type AssignedFreelancer struct {
	ID    string `bson:"id" json:"id"`
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone,omitempty" json:"phone,omitempty"`
}

// Job is a client-posted job. At most one embedded offer may ever hold status
// "accepted"; once one does, the job leaves "open" and the remaining pending
// offers are no longer actionable.
type Job struct {
	ID                 string              `bson:"id" json:"id"`
	ClientID           string              `bson:"client_id" json:"clientId"`
	ClientName         string              `bson:"client_name" json:"clientName"`
	Title              string              `bson:"title" json:"title"`
	Description        string              `bson:"description" json:"description"`
	Category           string              `bson:"category" json:"category"`
	Address            string              `bson:"address" json:"address"`
	Pincode            string              `bson:"pincode" json:"pincode"`
	Budget             float64             `bson:"budget" json:"budget"`
	GenderPreference   string              `bson:"gender_preference,omitempty" json:"genderPreference,omitempty"`
	Status             string              `bson:"status" json:"status"`
	Offers             []Offer             `bson:"offers" json:"offers"`
	AssignedFreelancer *AssignedFreelancer `bson:"assigned_freelancer,omitempty" json:"assignedFreelancer,omitempty"`
	CreatedAt          time.Time           `bson:"created_at" json:"createdAt"`
	UpdatedAt          time.Time           `bson:"updated_at" json:"updatedAt"`
	CompletedAt        *time.Time          `bson:"completed_at,omitempty" json:"completedAt,omitempty"`
}

// AcceptedOffer returns the accepted offer, if any.
func (j *Job) AcceptedOffer() *Offer {
	for i := range j.Offers {
		if j.Offers[i].Status == OfferStatusAccepted {
			return &j.Offers[i]
		}
	}
	return nil
}

// OfferByFreelancer returns the most recent offer made by the given
// freelancer, if any.
func (j *Job) OfferByFreelancer(freelancerID string) *Offer {
	for i := len(j.Offers) - 1; i >= 0; i-- {
		if j.Offers[i].FreelancerID == freelancerID {
			return &j.Offers[i]
		}
	}
	return nil
}

// Editable reports whether the owning client may still update or delete the job.
func (j *Job) Editable() bool {
	return j.Status == JobStatusOpen && j.AcceptedOffer() == nil
}
