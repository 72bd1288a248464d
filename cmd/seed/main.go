package main

import (
	"context"
	"errors"
	"time"

	"fitiva/workout-app/internal/config"
	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository"
	"fitiva/workout-app/internal/repository/mongo"

	"github.com/sirupsen/logrus"
)

// defaultTemplates is the built-in exercise catalog. Seeding is idempotent:
// templates are matched by name and never overwritten.
var defaultTemplates = []domain.ExerciseTemplate{
	// Chest
	{
		Name:                   "Push-ups",
		Description:            "Start in a plank position with hands shoulder-width apart. Lower your body until chest nearly touches the floor, then push back up.",
		MuscleGroups:           []string{"chest", "triceps"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 8-15 reps",
	},
	{
		Name:                   "Bench Press",
		Description:            "Lie on bench, lower barbell/dumbbell to chest, press up to starting position.",
		MuscleGroups:           []string{"chest", "triceps", "shoulders"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "4 sets of 6-10 reps",
	},
	// Back
	{
		Name:                   "Pull-ups",
		Description:            "Hang from bar with overhand grip, pull body up until chin is over bar.",
		MuscleGroups:           []string{"back", "biceps"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 5-12 reps",
	},
	{
		Name:                   "Barbell Row",
		Description:            "Bend at hips with barbell, pull weight to lower chest, lower with control.",
		MuscleGroups:           []string{"back", "biceps"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "4 sets of 8-12 reps",
	},
	// Legs
	{
		Name:                   "Squats",
		Description:            "Stand with feet shoulder-width apart, lower hips back and down, drive through heels to stand.",
		MuscleGroups:           []string{"quads/hamstrings"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "4 sets of 8-12 reps",
	},
	{
		Name:                   "Lunges",
		Description:            "Step forward, lower back knee toward ground, push back to start.",
		MuscleGroups:           []string{"quads/hamstrings"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 10-15 reps per leg",
	},
	// Shoulders
	{
		Name:                   "Overhead Press",
		Description:            "Press weight from shoulders overhead, lower with control.",
		MuscleGroups:           []string{"shoulders", "triceps"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "4 sets of 8-12 reps",
	},
	{
		Name:                   "Lateral Raises",
		Description:            "Raise dumbbells to sides until arms parallel to floor.",
		MuscleGroups:           []string{"shoulders"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 12-15 reps",
	},
	// Arms
	{
		Name:                   "Bicep Curls",
		Description:            "Curl weight toward shoulders, keeping elbows stationary.",
		MuscleGroups:           []string{"biceps"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 10-15 reps",
	},
	{
		Name:                   "Tricep Dips",
		Description:            "Lower body by bending elbows, push back up.",
		MuscleGroups:           []string{"triceps"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 8-12 reps",
	},
	// Core
	{
		Name:                   "Plank",
		Description:            "Hold body in straight line from head to heels, engaging core.",
		MuscleGroups:           []string{"core"},
		ExerciseType:           domain.ExerciseTypeTime,
		DefaultRecommendations: "3 sets of 30-60 seconds",
	},
	{
		Name:                   "Crunches",
		Description:            "Lie on back, lift shoulders off ground using abs.",
		MuscleGroups:           []string{"core"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 15-25 reps",
	},
	// Cardio
	{
		Name:                   "Running",
		Description:            "Maintain steady pace with proper form.",
		MuscleGroups:           []string{"quads/hamstrings", "full body"},
		ExerciseType:           domain.ExerciseTypeTime,
		DefaultRecommendations: "20-30 minutes",
	},
	{
		Name:                   "Jumping Jacks",
		Description:            "Jump while spreading legs and raising arms overhead.",
		MuscleGroups:           []string{"full body"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 20-30 reps",
	},
	{
		Name:                   "Burpees",
		Description:            "Drop to plank, do push-up, jump feet to hands, jump up.",
		MuscleGroups:           []string{"full body"},
		ExerciseType:           domain.ExerciseTypeReps,
		DefaultRecommendations: "3 sets of 10-15 reps",
	},
}

func main() {
	logrus.Info("seeding default exercise templates")

	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.WithError(err).Fatal("could not load config")
	}

	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to MongoDB")
	}
	defer func() {
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
	defer cancel()

	mongo.EnsureTemplateIndexes(ctx, appDB.Collection("exercise_templates"))
	templateRepo := mongo.NewMongoTemplateRepository(appDB)

	created := 0
	for i := range defaultTemplates {
		template := defaultTemplates[i]

		_, err := templateRepo.GetByName(ctx, template.Name)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrNotFound) {
			logrus.WithError(err).WithField("name", template.Name).Fatal("failed to check template")
		}

		if _, err := templateRepo.Create(ctx, &template); err != nil {
			// A concurrent seed run may have inserted it first.
			if errors.Is(err, repository.ErrDuplicate) {
				continue
			}
			logrus.WithError(err).WithField("name", template.Name).Fatal("failed to create template")
		}
		created++
	}

	logrus.WithField("created", created).Info("seeding complete")
}
