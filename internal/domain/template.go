package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExerciseType distinguishes rep-based from time-based exercises.
type ExerciseType string

const (
	ExerciseTypeReps ExerciseType = "reps"
	ExerciseTypeTime ExerciseType = "time"
)

// ExerciseTemplate is a reusable exercise definition trainers pick from when
// authoring program sections. Seeded defaults have no owning trainer.
type ExerciseTemplate struct {
	ID           primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	TrainerID    *primitive.ObjectID `bson:"trainerId,omitempty" json:"trainerId,omitempty"`
	Name         string              `bson:"name" json:"name"`
	Description  string              `bson:"description,omitempty" json:"description,omitempty"`
	MuscleGroups []string            `bson:"muscleGroups" json:"muscle_groups"`
	ExerciseType ExerciseType        `bson:"exerciseType" json:"exercise_type"`
	// DefaultRecommendations is free text, e.g. "3 sets of 8-15 reps".
	DefaultRecommendations string `bson:"defaultRecommendations,omitempty" json:"default_recommendations,omitempty"`
	// MediaObjectKey is the S3 key of the demo video/image. The file itself
	// lives in object storage; clients get presigned URLs.
	MediaObjectKey   string    `bson:"mediaObjectKey,omitempty" json:"-"`
	MediaContentType string    `bson:"mediaContentType,omitempty" json:"-"`
	CreatedAt        time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time `bson:"updatedAt" json:"updatedAt"`
}
