package mongo

import (
	"context"
	"errors"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scheduleCollectionName = "schedules"

// mongoScheduleRepository implements repository.ScheduleRepository using MongoDB.
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

// NewMongoScheduleRepository creates a new instance of mongoScheduleRepository.
func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// Create inserts a new schedule. The partial unique index on userId rejects a
// second active schedule for the same user.
func (r *mongoScheduleRepository) Create(ctx context.Context, schedule *domain.Schedule) (primitive.ObjectID, error) {
	schedule.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	schedule.CreatedAt = now
	schedule.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, schedule)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetActiveByUserID returns the user's active schedule, if any.
func (r *mongoScheduleRepository) GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Schedule, error) {
	var schedule domain.Schedule
	filter := bson.M{"userId": userID, "isActive": true}
	err := r.collection.FindOne(ctx, filter).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// Update replaces the mutable fields of an existing schedule.
func (r *mongoScheduleRepository) Update(ctx context.Context, schedule *domain.Schedule) error {
	update := bson.M{"$set": bson.M{
		"programIds": schedule.ProgramIDs,
		"restDays":   schedule.RestDays,
		"isActive":   schedule.IsActive,
		"updatedAt":  time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": schedule.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Deactivate clears the active flag on the user's active schedule. It is a
// no-op when the user has no active schedule.
func (r *mongoScheduleRepository) Deactivate(ctx context.Context, userID primitive.ObjectID) error {
	filter := bson.M{"userId": userID, "isActive": true}
	update := bson.M{"$set": bson.M{
		"isActive":  false,
		"updatedAt": time.Now().UTC(),
	}}
	_, err := r.collection.UpdateOne(ctx, filter, update)
	return err
}

// EnsureScheduleIndexes creates necessary indexes for the schedules
// collection. The partial unique index enforces the single-active-schedule
// invariant per user.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"isActive": true}),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
