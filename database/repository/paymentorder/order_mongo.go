package orderRepo

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

// MongoOrderRepo implements OrderRepository using MongoDB.
type MongoOrderRepo struct {
	coll *mongo.Collection
}

// NewMongoOrderRepo creates a new instance of OrderRepository using MongoDB.
func NewMongoOrderRepo() OrderRepository {
	coll := database.Collection("payment_orders")
	repo := &MongoOrderRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoOrderRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "order_id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "job_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: 1}}},
	}
	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new payment order.
func (r *MongoOrderRepo) Create(order *models.PaymentOrder) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	order.CreatedAt = time.Now()
	if _, err := r.coll.InsertOne(ctx, order); err != nil {
		return fmt.Errorf("failed to create payment order: %w", err)
	}
	return nil
}

// GetByOrderID retrieves an order by its unique ID.
func (r *MongoOrderRepo) GetByOrderID(orderID string) (*models.PaymentOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var order models.PaymentOrder
	if err := r.coll.FindOne(ctx, bson.M{"order_id": orderID}).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment order %s: %w", orderID, err)
	}
	return &order, nil
}

// GetLatestByJob retrieves the most recent order for a job.
func (r *MongoOrderRepo) GetLatestByJob(jobID string) (*models.PaymentOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: -1}})
	var order models.PaymentOrder
	if err := r.coll.FindOne(ctx, bson.M{"job_id": jobID}, opts).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch payment order for job %s: %w", jobID, err)
	}
	return &order, nil
}

// MarkPaid transitions the order from created to paid exactly once.
func (r *MongoOrderRepo) MarkPaid(orderID string) (*models.PaymentOrder, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"order_id": orderID, "status": models.PaymentOrderCreated}
	update := bson.M{"$set": bson.M{"status": models.PaymentOrderPaid, "paid_at": now}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var order models.PaymentOrder
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&order); err != nil {
		if err == mongo.ErrNoDocuments {
			if _, getErr := r.GetByOrderID(orderID); getErr != nil {
				return nil, getErr
			}
			return nil, ErrAlreadySettled
		}
		return nil, fmt.Errorf("failed to mark payment order %s paid: %w", orderID, err)
	}
	return &order, nil
}

// MarkFailed transitions the order from created to failed.
func (r *MongoOrderRepo) MarkFailed(orderID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"order_id": orderID, "status": models.PaymentOrderCreated}
	update := bson.M{"$set": bson.M{"status": models.PaymentOrderFailed}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to mark payment order %s failed: %w", orderID, err)
	}
	if result.MatchedCount == 0 {
		if _, getErr := r.GetByOrderID(orderID); getErr != nil {
			return getErr
		}
		return ErrAlreadySettled
	}
	return nil
}

// ListCreatedBefore returns orders still in the created state older than the cutoff.
func (r *MongoOrderRepo) ListCreatedBefore(cutoff time.Time) ([]models.PaymentOrder, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	filter := bson.M{"status": models.PaymentOrderCreated, "created_at": bson.M{"$lt": cutoff}}
	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list stale payment orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []models.PaymentOrder
	for cursor.Next(ctx) {
		var o models.PaymentOrder
		if err := cursor.Decode(&o); err != nil {
			return nil, fmt.Errorf("failed to decode payment order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, nil
}
