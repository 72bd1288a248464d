package service

import (
	"context"
	"testing"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intPtr(v int) *int { return &v }

func seedProgram(t *testing.T, repo *memory.ProgramRepository, name string, focuses []domain.FocusTag, opts ...func(*domain.Program)) domain.Program {
	t.Helper()
	program := domain.Program{
		TrainerID:     primitive.NewObjectID(),
		Name:          name,
		Focuses:       focuses,
		Difficulty:    domain.DifficultyBeginner,
		SessionLength: 45,
	}
	for _, opt := range opts {
		opt(&program)
	}
	_, err := repo.Create(context.Background(), &program)
	require.NoError(t, err)
	return program
}

func seedFocusProfile(t *testing.T, repo *memory.ProfileRepository, userID primitive.ObjectID, focuses []domain.FocusTag) {
	t.Helper()
	_, err := repo.Create(context.Background(), &domain.FitnessProfile{
		UserID:           userID,
		ExperienceLevel:  domain.ExperienceBeginner,
		TrainingLocation: domain.LocationHome,
		Focuses:          focuses,
	})
	require.NoError(t, err)
}

func TestRecommendMatchesOnFocusIntersection(t *testing.T) {
	profileRepo := memory.NewProfileRepository()
	programRepo := memory.NewProgramRepository()
	svc := NewRecommendationService(profileRepo, programRepo)

	userID := primitive.NewObjectID()
	seedFocusProfile(t, profileRepo, userID, []domain.FocusTag{domain.FocusStrength})

	strength := seedProgram(t, programRepo, "Pure Strength", []domain.FocusTag{domain.FocusStrength})
	mixed := seedProgram(t, programRepo, "Strength & Cardio", []domain.FocusTag{domain.FocusStrength, domain.FocusCardio})
	seedProgram(t, programRepo, "Yoga Flow", []domain.FocusTag{domain.FocusFlexibility})

	result, err := svc.Recommend(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, []domain.FocusTag{domain.FocusStrength}, result.UserFocuses)
	assert.Equal(t, 2, result.TotalRecommendations)
	require.Len(t, result.Programs, 2)
	assert.Equal(t, strength.ID, result.Programs[0].ID, "creation order preserved")
	assert.Equal(t, mixed.ID, result.Programs[1].ID)
	assert.Empty(t, result.Message)
}

func TestRecommendMissingProfileYieldsGuidance(t *testing.T) {
	profileRepo := memory.NewProfileRepository()
	programRepo := memory.NewProgramRepository()
	svc := NewRecommendationService(profileRepo, programRepo)

	seedProgram(t, programRepo, "Anything", []domain.FocusTag{domain.FocusCardio})

	result, err := svc.Recommend(context.Background(), primitive.NewObjectID())
	require.NoError(t, err, "missing profile is not an error")

	assert.Zero(t, result.TotalRecommendations)
	assert.Empty(t, result.Programs)
	assert.Equal(t, IncompleteProfileMessage, result.Message)
}

func TestRecommendEmptyFocusesYieldsGuidance(t *testing.T) {
	profileRepo := memory.NewProfileRepository()
	programRepo := memory.NewProgramRepository()
	svc := NewRecommendationService(profileRepo, programRepo)

	userID := primitive.NewObjectID()
	seedFocusProfile(t, profileRepo, userID, nil)
	seedProgram(t, programRepo, "Anything", []domain.FocusTag{domain.FocusCardio})

	result, err := svc.Recommend(context.Background(), userID)
	require.NoError(t, err)
	assert.Equal(t, IncompleteProfileMessage, result.Message)
	assert.Empty(t, result.Programs)
}

func TestRecommendNoMatches(t *testing.T) {
	profileRepo := memory.NewProfileRepository()
	programRepo := memory.NewProgramRepository()
	svc := NewRecommendationService(profileRepo, programRepo)

	userID := primitive.NewObjectID()
	seedFocusProfile(t, profileRepo, userID, []domain.FocusTag{domain.FocusBalance})
	seedProgram(t, programRepo, "Heavy Lifting", []domain.FocusTag{domain.FocusStrength})

	result, err := svc.Recommend(context.Background(), userID)
	require.NoError(t, err)

	assert.Zero(t, result.TotalRecommendations)
	assert.Empty(t, result.Programs)
	assert.Empty(t, result.Message, "a complete profile with no matches carries no guidance message")
}

func TestRecommendExcludesDraftsAndDeleted(t *testing.T) {
	profileRepo := memory.NewProfileRepository()
	programRepo := memory.NewProgramRepository()
	svc := NewRecommendationService(profileRepo, programRepo)

	userID := primitive.NewObjectID()
	seedFocusProfile(t, profileRepo, userID, []domain.FocusTag{domain.FocusCardio})

	seedProgram(t, programRepo, "Draft", []domain.FocusTag{domain.FocusCardio}, func(p *domain.Program) { p.IsDraft = true })
	deleted := seedProgram(t, programRepo, "Deleted", []domain.FocusTag{domain.FocusCardio})
	require.NoError(t, programRepo.MarkDeleted(context.Background(), deleted.ID, deleted.TrainerID))
	published := seedProgram(t, programRepo, "Published", []domain.FocusTag{domain.FocusCardio})

	result, err := svc.Recommend(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, result.Programs, 1)
	assert.Equal(t, published.ID, result.Programs[0].ID)
}

func TestIntersectFocuses(t *testing.T) {
	got := domain.IntersectFocuses(
		[]domain.FocusTag{domain.FocusCardio, domain.FocusStrength},
		[]domain.FocusTag{domain.FocusStrength, domain.FocusBalance},
	)
	assert.Equal(t, []domain.FocusTag{domain.FocusStrength}, got)

	assert.Empty(t, domain.IntersectFocuses(
		[]domain.FocusTag{domain.FocusCardio},
		[]domain.FocusTag{domain.FocusFlexibility},
	))
}
