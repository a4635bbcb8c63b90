package withdrawalRepo

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

// MongoWithdrawalRepo implements WithdrawalRepository using MongoDB.
type MongoWithdrawalRepo struct {
	coll *mongo.Collection
}

// NewMongoWithdrawalRepo creates a new instance of WithdrawalRepository using MongoDB.
func NewMongoWithdrawalRepo() WithdrawalRepository {
	coll := database.Collection("withdrawal_requests")
	repo := &MongoWithdrawalRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWithdrawalRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "freelancer_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new withdrawal request.
func (r *MongoWithdrawalRepo) Create(req *models.WithdrawalRequest) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	req.RequestedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, req); err != nil {
		return fmt.Errorf("failed to create withdrawal request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by its unique ID.
func (r *MongoWithdrawalRepo) GetByID(id string) (*models.WithdrawalRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var req models.WithdrawalRequest
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch withdrawal request %s: %w", id, err)
	}
	return &req, nil
}

func (r *MongoWithdrawalRepo) findAll(filter bson.M) ([]models.WithdrawalRequest, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "requested_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve withdrawal requests: %w", err)
	}
	defer cursor.Close(ctx)

	var reqs []models.WithdrawalRequest
	for cursor.Next(ctx) {
		var w models.WithdrawalRequest
		if err := cursor.Decode(&w); err != nil {
			return nil, fmt.Errorf("failed to decode withdrawal request: %w", err)
		}
		reqs = append(reqs, w)
	}
	return reqs, nil
}

// GetByFreelancer retrieves a freelancer's requests, newest first.
func (r *MongoWithdrawalRepo) GetByFreelancer(freelancerID string) ([]models.WithdrawalRequest, error) {
	return r.findAll(bson.M{"freelancer_id": freelancerID})
}

// GetByStatus retrieves all requests in the given status ("" means all).
func (r *MongoWithdrawalRepo) GetByStatus(status string) ([]models.WithdrawalRequest, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.findAll(filter)
}

// Review transitions a request from pending to the given terminal status.
func (r *MongoWithdrawalRepo) Review(id, status, reviewedBy, rejectionReason string) (*models.WithdrawalRequest, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	set := bson.M{"status": status, "reviewed_at": now, "reviewed_by": reviewedBy}
	if rejectionReason != "" {
		set["rejection_reason"] = rejectionReason
	}
	filter := bson.M{"id": id, "status": models.WithdrawalPending}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var req models.WithdrawalRequest
	if err := r.coll.FindOneAndUpdate(ctx, filter, bson.M{"$set": set}, opts).Decode(&req); err != nil {
		if err == mongo.ErrNoDocuments {
			if _, getErr := r.GetByID(id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to review withdrawal request %s: %w", id, err)
	}
	return &req, nil
}
