package walletRepo

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

// MongoWalletRepo implements WalletRepository using MongoDB.
type MongoWalletRepo struct {
	coll *mongo.Collection
}

// NewMongoWalletRepo creates a new instance of WalletRepository using MongoDB.
func NewMongoWalletRepo() WalletRepository {
	coll := database.Collection("wallets")
	repo := &MongoWalletRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWalletRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "freelancer_id", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetOrCreate returns the freelancer's wallet, creating an empty one on first access.
func (r *MongoWalletRepo) GetOrCreate(freelancerID string) (*models.Wallet, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"freelancer_id": freelancerID}
	update := bson.M{"$setOnInsert": bson.M{
		"freelancer_id": freelancerID,
		"balance":       0.0,
		"transactions":  []models.WalletTransaction{},
		"updated_at":    time.Now(),
	}}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var wallet models.Wallet
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&wallet); err != nil {
		return nil, fmt.Errorf("failed to fetch wallet for freelancer %s: %w", freelancerID, err)
	}
	return &wallet, nil
}

// CreditForJob increases the balance and appends a credit transaction. The
// filter excludes wallets that already hold a transaction for the same job, so
// a retried payout settles exactly once.
func (r *MongoWalletRepo) CreditForJob(freelancerID string, txn models.WalletTransaction) error {
	if _, err := r.GetOrCreate(freelancerID); err != nil {
		return err
	}

	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"freelancer_id":       freelancerID,
		"transactions.job_id": bson.M{"$ne": txn.JobID},
	}
	update := bson.M{
		"$inc":  bson.M{"balance": txn.Amount},
		"$push": bson.M{"transactions": txn},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to credit wallet for freelancer %s: %w", freelancerID, err)
	}
	if result.MatchedCount == 0 {
		return ErrDuplicateCredit
	}
	return nil
}

// Debit decreases the balance and appends a debit transaction. The filter
// requires a sufficient balance so concurrent approvals cannot overdraw.
func (r *MongoWalletRepo) Debit(freelancerID string, txn models.WalletTransaction) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"freelancer_id": freelancerID,
		"balance":       bson.M{"$gte": txn.Amount},
	}
	update := bson.M{
		"$inc":  bson.M{"balance": -txn.Amount},
		"$push": bson.M{"transactions": txn},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to debit wallet for freelancer %s: %w", freelancerID, err)
	}
	if result.MatchedCount == 0 {
		return ErrInsufficientBalance
	}
	return nil
}
