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

const (
	sessionCollectionName  = "workout_sessions"
	feedbackCollectionName = "session_feedback"
)

// mongoSessionRepository implements repository.SessionRepository using MongoDB.
type mongoSessionRepository struct {
	sessions *mongo.Collection
	feedback *mongo.Collection
}

// NewMongoSessionRepository creates a new instance of mongoSessionRepository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		sessions: db.Collection(sessionCollectionName),
		feedback: db.Collection(feedbackCollectionName),
	}
}

// Create inserts a new workout session.
func (r *mongoSessionRepository) Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error) {
	session.ID = primitive.NewObjectID()
	session.Date = truncateToDay(session.Date)
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now

	result, err := r.sessions.InsertOne(ctx, session)
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

// GetByID retrieves a single workout session.
func (r *mongoSessionRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	err := r.sessions.FindOne(ctx, bson.M{"_id": id}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// GetByUserAndDate retrieves the user's session for one calendar day.
func (r *mongoSessionRepository) GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutSession, error) {
	var session domain.WorkoutSession
	filter := bson.M{"userId": userID, "date": truncateToDay(date)}
	err := r.sessions.FindOne(ctx, filter).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &session, nil
}

// Update replaces the mutable fields of an existing session.
func (r *mongoSessionRepository) Update(ctx context.Context, session *domain.WorkoutSession) error {
	update := bson.M{"$set": bson.M{
		"status":          session.Status,
		"durationMinutes": session.DurationMinutes,
		"notes":           session.Notes,
		"programId":       session.ProgramID,
		"updatedAt":       time.Now().UTC(),
	}}
	result, err := r.sessions.UpdateOne(ctx, bson.M{"_id": session.ID}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// CreateFeedback inserts post-workout feedback for a session. One feedback
// document per session, enforced by a unique index.
func (r *mongoSessionRepository) CreateFeedback(ctx context.Context, feedback *domain.SessionFeedback) (primitive.ObjectID, error) {
	feedback.ID = primitive.NewObjectID()
	feedback.CreatedAt = time.Now().UTC()

	result, err := r.feedback.InsertOne(ctx, feedback)
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

// GetFeedbackBySessionID retrieves feedback for a session.
func (r *mongoSessionRepository) GetFeedbackBySessionID(ctx context.Context, sessionID primitive.ObjectID) (*domain.SessionFeedback, error) {
	var feedback domain.SessionFeedback
	err := r.feedback.FindOne(ctx, bson.M{"sessionId": sessionID}).Decode(&feedback)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &feedback, nil
}

// truncateToDay normalizes a timestamp to midnight UTC so one session exists
// per user per calendar day.
func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// EnsureSessionIndexes creates necessary indexes for the workout sessions
// and feedback collections.
func EnsureSessionIndexes(ctx context.Context, sessions, feedback *mongo.Collection) {
	sessionIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = sessions.Indexes().CreateMany(ctx, sessionIndexes)

	feedbackIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, _ = feedback.Indexes().CreateMany(ctx, feedbackIndexes)
}
