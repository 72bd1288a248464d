package repository

import (
	"context"
	"time"

	"fitiva/workout-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("duplicate key")
	ErrUpdateFailed = RepositoryError("update failed")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user data.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id primitive.ObjectID, passwordHash string) error
}

// ProfileRepository defines the interface for fitness profile data.
type ProfileRepository interface {
	Create(ctx context.Context, profile *domain.FitnessProfile) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessProfile, error)
	Update(ctx context.Context, profile *domain.FitnessProfile) error
}

// TrainerProfileRepository defines the interface for trainer profile data.
type TrainerProfileRepository interface {
	Create(ctx context.Context, profile *domain.TrainerProfile) (primitive.ObjectID, error)
	GetByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.TrainerProfile, error)
	Update(ctx context.Context, profile *domain.TrainerProfile) error
}

// ProgramRepository defines the interface for workout program data.
// Deletion is always soft: deleted programs stay in the store.
type ProgramRepository interface {
	Create(ctx context.Context, program *domain.Program) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Program, error)
	// GetPublished returns all non-deleted, non-draft programs in creation order.
	GetPublished(ctx context.Context) ([]domain.Program, error)
	// GetByIDs returns the non-deleted programs among ids, in creation order.
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Program, error)
	GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID, includeDeleted bool) ([]domain.Program, error)
	Update(ctx context.Context, program *domain.Program) error
	// MarkDeleted soft-deletes a program, enforcing trainer ownership in the filter.
	MarkDeleted(ctx context.Context, id, trainerID primitive.ObjectID) error
}

// ScheduleRepository defines the interface for user schedule data.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *domain.Schedule) (primitive.ObjectID, error)
	// GetActiveByUserID returns the user's single active schedule.
	GetActiveByUserID(ctx context.Context, userID primitive.ObjectID) (*domain.Schedule, error)
	Update(ctx context.Context, schedule *domain.Schedule) error
	// Deactivate clears the active flag on the user's active schedule.
	Deactivate(ctx context.Context, userID primitive.ObjectID) error
}

// TemplateRepository defines the interface for exercise template data.
type TemplateRepository interface {
	Create(ctx context.Context, template *domain.ExerciseTemplate) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.ExerciseTemplate, error)
	GetAll(ctx context.Context) ([]domain.ExerciseTemplate, error)
	GetByName(ctx context.Context, name string) (*domain.ExerciseTemplate, error)
	Update(ctx context.Context, template *domain.ExerciseTemplate) error
}

// SessionRepository defines the interface for workout session data.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.WorkoutSession) (primitive.ObjectID, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutSession, error)
	GetByUserAndDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutSession, error)
	Update(ctx context.Context, session *domain.WorkoutSession) error
	CreateFeedback(ctx context.Context, feedback *domain.SessionFeedback) (primitive.ObjectID, error)
	GetFeedbackBySessionID(ctx context.Context, sessionID primitive.ObjectID) (*domain.SessionFeedback, error)
}
