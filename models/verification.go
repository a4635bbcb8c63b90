package models

import "time"

// FreelancerVerification status values.
const (
	VerificationPending  = "pending"
	VerificationApproved = "approved"
	VerificationRejected = "rejected"
)

// FreelancerVerification is a freelancer's identity-verification submission.
// One record exists per user; a rejected record is mutated back to pending on
// resubmission rather than duplicated.
type FreelancerVerification struct {
	ID              string     `bson:"id" json:"id"`
	UserID          string     `bson:"user_id" json:"userId"`
	FullName        string     `bson:"full_name" json:"fullName"`
	DOB             string     `bson:"dob" json:"dob"`
	Gender          string     `bson:"gender" json:"gender"`
	Address         string     `bson:"address" json:"address"`
	AadhaarFront    string     `bson:"aadhaar_front,omitempty" json:"aadhaarFront,omitempty"`
	AadhaarBack     string     `bson:"aadhaar_back,omitempty" json:"aadhaarBack,omitempty"`
	PanCard         string     `bson:"pan_card,omitempty" json:"panCard,omitempty"`
	ProfilePhoto    string     `bson:"profile_photo,omitempty" json:"profilePhoto,omitempty"`
	Status          string     `bson:"status" json:"status"`
	RejectionReason string     `bson:"rejection_reason,omitempty" json:"rejectionReason,omitempty"`
	ReviewedAt      *time.Time `bson:"reviewed_at,omitempty" json:"reviewedAt,omitempty"`
	ReviewedBy      string     `bson:"reviewed_by,omitempty" json:"reviewedBy,omitempty"`
	CreatedAt       time.Time  `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time  `bson:"updated_at" json:"updatedAt"`
}
