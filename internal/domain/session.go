package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionStatus tracks the lifecycle of a workout session.
type SessionStatus string

const (
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// WorkoutSession records a user training on a given date.
type WorkoutSession struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID  `bson:"userId" json:"userId"`
	ProgramID       *primitive.ObjectID `bson:"programId,omitempty" json:"programId,omitempty"`
	Date            time.Time           `bson:"date" json:"date"`
	Status          SessionStatus       `bson:"status" json:"status"`
	DurationMinutes *int                `bson:"durationMinutes,omitempty" json:"duration_minutes,omitempty"`
	Notes           string              `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// IsCompleted reports whether the session was marked completed.
func (s *WorkoutSession) IsCompleted() bool {
	return s.Status == SessionCompleted
}

// SessionFeedback is post-workout feedback attached to a completed session.
type SessionFeedback struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	SessionID primitive.ObjectID `bson:"sessionId" json:"sessionId"`
	// DifficultyRating is a 1 (very easy) to 5 (very hard) scale.
	DifficultyRating int `bson:"difficultyRating" json:"difficulty_rating"`
	// FatigueLevel is an optional 1-5 scale.
	FatigueLevel *int      `bson:"fatigueLevel,omitempty" json:"fatigue_level,omitempty"`
	PainReported bool      `bson:"painReported" json:"pain_reported"`
	Notes        string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
}
