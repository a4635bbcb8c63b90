package jobRepo

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

// MongoJobRepo implements JobRepository using MongoDB.
type MongoJobRepo struct {
	coll *mongo.Collection
}

// NewMongoJobRepo creates a new instance of JobRepository using MongoDB.
func NewMongoJobRepo() JobRepository {
	coll := database.Collection("jobs")
	repo := &MongoJobRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (r *MongoJobRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_freelancer.id", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new job document.
func (r *MongoJobRepo) Create(job *models.Job) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	job.CreatedAt = now
	job.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, job); err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetByID retrieves a job by its unique ID.
func (r *MongoJobRepo) GetByID(id string) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var job models.Job
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch job with id %s: %w", id, err)
	}
	return &job, nil
}

func (r *MongoJobRepo) findAll(filter bson.M) ([]models.Job, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve jobs: %w", err)
	}
	defer cursor.Close(ctx)

	var jobs []models.Job
	for cursor.Next(ctx) {
		var j models.Job
		if err := cursor.Decode(&j); err != nil {
			return nil, fmt.Errorf("failed to decode job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, nil
}

// GetByClient retrieves all jobs posted by a client, newest first.
func (r *MongoJobRepo) GetByClient(clientID string) ([]models.Job, error) {
	return r.findAll(bson.M{"client_id": clientID})
}

// GetByStatus retrieves all jobs currently in the given status.
func (r *MongoJobRepo) GetByStatus(status string) ([]models.Job, error) {
	return r.findAll(bson.M{"status": status})
}

// GetAssignedTo retrieves jobs whose accepted offer belongs to the freelancer.
func (r *MongoJobRepo) GetAssignedTo(freelancerID string) ([]models.Job, error) {
	return r.findAll(bson.M{"assigned_freelancer.id": freelancerID})
}

// AddOffer appends an offer to a job that is still open.
func (r *MongoJobRepo) AddOffer(jobID string, offer models.Offer) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": jobID, "status": models.JobStatusOpen}
	update := bson.M{
		"$push": bson.M{"offers": offer},
		"$set":  bson.M{"updated_at": time.Now()},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to add offer to job %s: %w", jobID, err)
	}
	if result.MatchedCount == 0 {
		return r.conflictOrNotFound(jobID)
	}
	return nil
}

// AcceptOffer atomically accepts a pending offer on an open job. The filter
// pins both the job status and the offer status so only the first caller wins.
func (r *MongoJobRepo) AcceptOffer(jobID, offerID string, assigned models.AssignedFreelancer) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":     jobID,
		"status": models.JobStatusOpen,
		"offers": bson.M{"$elemMatch": bson.M{"id": offerID, "status": models.OfferStatusPending}},
	}
	update := bson.M{
		"$set": bson.M{
			"offers.$.status":     models.OfferStatusAccepted,
			"status":              models.JobStatusAssigned,
			"assigned_freelancer": assigned,
			"updated_at":          time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, r.conflictOrNotFound(jobID)
		}
		return nil, fmt.Errorf("failed to accept offer %s on job %s: %w", offerID, jobID, err)
	}
	return &job, nil
}

// Assign moves an open job straight to assigned with the given freelancer.
// The filter pins the open status so only the first caller wins.
func (r *MongoJobRepo) Assign(jobID string, assigned models.AssignedFreelancer) (*models.Job, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": jobID, "status": models.JobStatusOpen}
	update := bson.M{
		"$set": bson.M{
			"status":              models.JobStatusAssigned,
			"assigned_freelancer": assigned,
			"updated_at":          time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var job models.Job
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&job); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, r.conflictOrNotFound(jobID)
		}
		return nil, fmt.Errorf("failed to assign job %s: %w", jobID, err)
	}
	return &job, nil
}

// RejectOffer marks a pending offer rejected without touching the job status.
func (r *MongoJobRepo) RejectOffer(jobID, offerID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":     jobID,
		"offers": bson.M{"$elemMatch": bson.M{"id": offerID, "status": models.OfferStatusPending}},
	}
	update := bson.M{
		"$set": bson.M{
			"offers.$.status": models.OfferStatusRejected,
			"updated_at":      time.Now(),
		},
	}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to reject offer %s on job %s: %w", offerID, jobID, err)
	}
	if result.MatchedCount == 0 {
		return r.conflictOrNotFound(jobID)
	}
	return nil
}

// UpdateStatus transitions the job from one status to another.
func (r *MongoJobRepo) UpdateStatus(jobID, from, to string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"status": to, "updated_at": time.Now()}
	if to == models.JobStatusCompleted {
		set["completed_at"] = time.Now()
	}
	filter := bson.M{"id": jobID, "status": from}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update status of job %s: %w", jobID, err)
	}
	if result.MatchedCount == 0 {
		return r.conflictOrNotFound(jobID)
	}
	return nil
}

// ReplaceEditable replaces the job document while it is still editable.
func (r *MongoJobRepo) ReplaceEditable(job *models.Job) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	job.UpdatedAt = time.Now()
	filter := r.editableFilter(job.ID)
	result, err := r.coll.ReplaceOne(ctx, filter, job)
	if err != nil {
		return fmt.Errorf("failed to update job %s: %w", job.ID, err)
	}
	if result.MatchedCount == 0 {
		return r.conflictOrNotFound(job.ID)
	}
	return nil
}

// DeleteEditable removes the job while it is still editable.
func (r *MongoJobRepo) DeleteEditable(jobID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, r.editableFilter(jobID))
	if err != nil {
		return fmt.Errorf("failed to delete job %s: %w", jobID, err)
	}
	if result.DeletedCount == 0 {
		return r.conflictOrNotFound(jobID)
	}
	return nil
}

// editableFilter matches a job only while it is open with no accepted offer.
func (r *MongoJobRepo) editableFilter(jobID string) bson.M {
	return bson.M{
		"id":     jobID,
		"status": models.JobStatusOpen,
		"offers": bson.M{"$not": bson.M{"$elemMatch": bson.M{"status": models.OfferStatusAccepted}}},
	}
}

// conflictOrNotFound distinguishes a missing job from a failed state check.
func (r *MongoJobRepo) conflictOrNotFound(jobID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.coll.CountDocuments(ctx, bson.M{"id": jobID})
	if err == nil && count == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
