package ledgerRepo

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

// MongoLedgerRepo implements LedgerRepository using MongoDB.
type MongoLedgerRepo struct {
	coll *mongo.Collection
}

// NewMongoLedgerRepo creates a new instance of LedgerRepository using MongoDB.
func NewMongoLedgerRepo() LedgerRepository {
	coll := database.Collection("commission_entries")
	repo := &MongoLedgerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoLedgerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "freelancer_id", Value: 1}, {Key: "status", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new commission entry.
func (r *MongoLedgerRepo) Create(entry *models.CommissionEntry) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	entry.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("failed to create commission entry: %w", err)
	}
	return nil
}

// GetByID retrieves an entry by its unique ID.
func (r *MongoLedgerRepo) GetByID(id string) (*models.CommissionEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var entry models.CommissionEntry
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch commission entry %s: %w", id, err)
	}
	return &entry, nil
}

// GetByFreelancer retrieves a freelancer's entries, newest first.
func (r *MongoLedgerRepo) GetByFreelancer(freelancerID, status string) ([]models.CommissionEntry, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"freelancer_id": freelancerID}
	if status != "" {
		filter["status"] = status
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve commission entries: %w", err)
	}
	defer cursor.Close(ctx)

	var entries []models.CommissionEntry
	for cursor.Next(ctx) {
		var e models.CommissionEntry
		if err := cursor.Decode(&e); err != nil {
			return nil, fmt.Errorf("failed to decode commission entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// MarkPaid transitions an entry from pending to paid exactly once.
func (r *MongoLedgerRepo) MarkPaid(id string) (*models.CommissionEntry, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"id": id, "status": models.CommissionPending}
	update := bson.M{"$set": bson.M{"status": models.CommissionPaid, "paid_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var entry models.CommissionEntry
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&entry); err != nil {
		if err == mongo.ErrNoDocuments {
			if _, getErr := r.GetByID(id); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadyPaid
		}
		return nil, fmt.Errorf("failed to mark commission entry %s paid: %w", id, err)
	}
	return &entry, nil
}
