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

const programCollectionName = "programs"

// mongoProgramRepository implements repository.ProgramRepository using MongoDB.
// Sections, exercises and sets are embedded in the program document, so a
// program is always read and written as a whole.
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new instance of mongoProgramRepository.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Create inserts a new program, assigning IDs to embedded sections and exercises.
func (r *mongoProgramRepository) Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error) {
	if program.Name == "" || program.TrainerID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("program name and trainer ID are required")
	}

	program.ID = primitive.NewObjectID()
	for i := range program.Sections {
		program.Sections[i].ID = primitive.NewObjectID()
		for j := range program.Sections[i].Exercises {
			program.Sections[i].Exercises[j].ID = primitive.NewObjectID()
		}
	}
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, program)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single program, deleted or not. Callers decide how to
// treat the deleted flag.
func (r *mongoProgramRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error) {
	var program domain.Program
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&program)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &program, nil
}

// GetPublished returns all non-deleted, non-draft programs in creation order.
func (r *mongoProgramRepository) GetPublished(ctx context.Context) ([]domain.Program, error) {
	filter := bson.M{"isDeleted": false, "isDraft": false}
	return r.find(ctx, filter)
}

// GetByIDs returns the non-deleted programs among ids, in creation order.
func (r *mongoProgramRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Program, error) {
	if len(ids) == 0 {
		return []domain.Program{}, nil
	}
	filter := bson.M{"_id": bson.M{"$in": ids}, "isDeleted": false}
	return r.find(ctx, filter)
}

// GetByTrainerID returns a trainer's programs, newest first; deleted programs
// are included only on request (used for trainer stats).
func (r *mongoProgramRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID, includeDeleted bool) ([]domain.Program, error) {
	filter := bson.M{"trainerId": trainerID}
	if !includeDeleted {
		filter["isDeleted"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []domain.Program
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	return programs, nil
}

func (r *mongoProgramRepository) find(ctx context.Context, filter bson.M) ([]domain.Program, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var programs []domain.Program
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	if programs == nil {
		programs = []domain.Program{}
	}
	return programs, nil
}

// Update replaces a program document in full.
func (r *mongoProgramRepository) Update(ctx context.Context, program *domain.Program) error {
	program.UpdatedAt = time.Now().UTC()
	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": program.ID}, program)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// MarkDeleted soft-deletes a program. The filter includes the trainer ID, so
// ownership is enforced at the database level.
func (r *mongoProgramRepository) MarkDeleted(ctx context.Context, id, trainerID primitive.ObjectID) error {
	filter := bson.M{"_id": id, "trainerId": trainerID}
	update := bson.M{"$set": bson.M{
		"isDeleted": true,
		"updatedAt": time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates necessary indexes for the programs collection.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "isDeleted", Value: 1}, {Key: "isDraft", Value: 1}, {Key: "createdAt", Value: 1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
