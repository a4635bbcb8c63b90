package verificationRepo

import (
	"context"
	"fmt"
	"time"

	"gighaat/database"
	"gighaat/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoVerificationRepo implements VerificationRepository using MongoDB.
type MongoVerificationRepo struct {
	coll *mongo.Collection
}

// NewMongoVerificationRepo creates a new instance of VerificationRepository using MongoDB.
func NewMongoVerificationRepo() VerificationRepository {
	coll := database.Collection("freelancerverifications")
	repo := &MongoVerificationRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoVerificationRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "user_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new verification record.
func (r *MongoVerificationRepo) Create(v *models.FreelancerVerification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	v.CreatedAt = now
	v.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, v); err != nil {
		return fmt.Errorf("failed to create verification: %w", err)
	}
	return nil
}

// GetByID retrieves a verification by its unique ID.
func (r *MongoVerificationRepo) GetByID(id string) (*models.FreelancerVerification, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByUserID retrieves the verification belonging to a user, or nil if the
// user has never submitted one.
func (r *MongoVerificationRepo) GetByUserID(userID string) (*models.FreelancerVerification, error) {
	v, err := r.findOne(bson.M{"user_id": userID})
	if err == ErrNotFound {
		return nil, nil
	}
	return v, err
}

func (r *MongoVerificationRepo) findOne(filter bson.M) (*models.FreelancerVerification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var v models.FreelancerVerification
	if err := r.coll.FindOne(ctx, filter).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch verification: %w", err)
	}
	return &v, nil
}

// GetByStatus retrieves all verifications in the given status ("" means all).
func (r *MongoVerificationRepo) GetByStatus(status string) ([]models.FreelancerVerification, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve verifications: %w", err)
	}
	defer cursor.Close(ctx)

	var verifications []models.FreelancerVerification
	for cursor.Next(ctx) {
		var v models.FreelancerVerification
		if err := cursor.Decode(&v); err != nil {
			return nil, fmt.Errorf("failed to decode verification: %w", err)
		}
		verifications = append(verifications, v)
	}
	return verifications, nil
}

// Review transitions a verification from pending to approved or rejected.
func (r *MongoVerificationRepo) Review(id, status, reviewedBy, rejectionReason string) (*models.FreelancerVerification, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{
		"status":      status,
		"reviewed_at": now,
		"reviewed_by": reviewedBy,
		"updated_at":  now,
	}
	if rejectionReason != "" {
		set["rejection_reason"] = rejectionReason
	}
	filter := bson.M{"id": id, "status": models.VerificationPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var v models.FreelancerVerification
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&v); err != nil {
		if err == mongo.ErrNoDocuments {
			if _, getErr := r.GetByID(id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to review verification %s: %w", id, err)
	}
	return &v, nil
}

// Resubmit replaces a rejected verification's details and returns it to pending.
func (r *MongoVerificationRepo) Resubmit(v *models.FreelancerVerification) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"user_id": v.UserID, "status": models.VerificationRejected}
	update := bson.M{
		"$set": bson.M{
			"full_name":     v.FullName,
			"dob":           v.DOB,
			"gender":        v.Gender,
			"address":       v.Address,
			"aadhaar_front": v.AadhaarFront,
			"aadhaar_back":  v.AadhaarBack,
			"pan_card":      v.PanCard,
			"profile_photo": v.ProfilePhoto,
			"status":        models.VerificationPending,
			"updated_at":    now,
		},
		"$unset": bson.M{"rejection_reason": "", "reviewed_at": "", "reviewed_by": ""},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to resubmit verification for user %s: %w", v.UserID, err)
	}
	if result.MatchedCount == 0 {
		return ErrAlreadyReviewed
	}
	return nil
}
