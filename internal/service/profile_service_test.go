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

type profileFixture struct {
	svc                ProfileService
	userRepo           *memory.UserRepository
	profileRepo        *memory.ProfileRepository
	trainerProfileRepo *memory.TrainerProfileRepository
}

func newProfileFixture() *profileFixture {
	userRepo := memory.NewUserRepository()
	profileRepo := memory.NewProfileRepository()
	trainerProfileRepo := memory.NewTrainerProfileRepository()
	return &profileFixture{
		svc:                NewProfileService(userRepo, profileRepo, trainerProfileRepo),
		userRepo:           userRepo,
		profileRepo:        profileRepo,
		trainerProfileRepo: trainerProfileRepo,
	}
}

func (f *profileFixture) seedUser(t *testing.T, username string, role domain.Role) primitive.ObjectID {
	t.Helper()
	id, err := f.userRepo.Create(context.Background(), &domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		FirstName:    "Test",
		Role:         role,
	})
	require.NoError(t, err)
	return id
}

func validProfileInput() ProfileInput {
	return ProfileInput{
		Age:              intPtr(30),
		ExperienceLevel:  domain.ExperienceBeginner,
		TrainingLocation: domain.LocationHome,
		Focuses:          []domain.FocusTag{domain.FocusStrength, domain.FocusCardio},
	}
}

func TestCreateProfileOncePerUser(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, "alice", domain.RoleTrainee)

	profile, err := f.svc.CreateProfile(context.Background(), userID, validProfileInput())
	require.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)

	_, err = f.svc.CreateProfile(context.Background(), userID, validProfileInput())
	assert.ErrorIs(t, err, ErrProfileAlreadyExists)
}

func TestProfileValidation(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, "alice", domain.RoleTrainee)

	tests := []struct {
		name   string
		mutate func(*ProfileInput)
	}{
		{"too young", func(in *ProfileInput) { in.Age = intPtr(12) }},
		{"implausible age", func(in *ProfileInput) { in.Age = intPtr(121) }},
		{"bad experience level", func(in *ProfileInput) { in.ExperienceLevel = "expert" }},
		{"bad training location", func(in *ProfileInput) { in.TrainingLocation = "park" }},
		{"unknown focus", func(in *ProfileInput) { in.Focuses = []domain.FocusTag{"mixed"} }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validProfileInput()
			tc.mutate(&input)
			_, err := f.svc.CreateProfile(context.Background(), userID, input)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestUpdateProfileReplacesFields(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, "alice", domain.RoleTrainee)

	_, err := f.svc.CreateProfile(context.Background(), userID, validProfileInput())
	require.NoError(t, err)

	updated := validProfileInput()
	updated.Focuses = []domain.FocusTag{domain.FocusBalance}
	updated.TrainingLocation = domain.LocationGym

	profile, err := f.svc.UpdateProfile(context.Background(), userID, updated)
	require.NoError(t, err)
	assert.Equal(t, []domain.FocusTag{domain.FocusBalance}, profile.Focuses)
	assert.Equal(t, domain.LocationGym, profile.TrainingLocation)
}

func TestUpdateProfileRequiresExisting(t *testing.T) {
	f := newProfileFixture()
	userID := f.seedUser(t, "alice", domain.RoleTrainee)

	_, err := f.svc.UpdateProfile(context.Background(), userID, validProfileInput())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestPublicProfileHidesEmailFromOthers(t *testing.T) {
	f := newProfileFixture()
	ownerID := f.seedUser(t, "alice", domain.RoleTrainee)
	viewerID := f.seedUser(t, "bob", domain.RoleTrainee)

	_, err := f.svc.CreateProfile(context.Background(), ownerID, validProfileInput())
	require.NoError(t, err)

	asOther, err := f.svc.GetPublicProfile(context.Background(), viewerID, ownerID)
	require.NoError(t, err)
	assert.Empty(t, asOther.Email)
	assert.False(t, asOther.IsOwner)
	require.NotNil(t, asOther.FitnessProfile)

	asOwner, err := f.svc.GetPublicProfile(context.Background(), ownerID, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", asOwner.Email)
	assert.True(t, asOwner.IsOwner)
}

func TestPublicProfileIncludesTrainerProfile(t *testing.T) {
	f := newProfileFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)
	viewerID := f.seedUser(t, "bob", domain.RoleTrainee)

	_, err := f.trainerProfileRepo.Create(context.Background(), &domain.TrainerProfile{
		UserID:            trainerID,
		Bio:               "Strength specialist",
		YearsOfExperience: 7,
		SpecialtyStrength: true,
	})
	require.NoError(t, err)

	profile, err := f.svc.GetPublicProfile(context.Background(), viewerID, trainerID)
	require.NoError(t, err)
	assert.True(t, profile.IsTrainer)
	require.NotNil(t, profile.TrainerProfile)
	assert.Equal(t, "Strength specialist", profile.TrainerProfile.Bio)
}

func TestUpdateTrainerProfile(t *testing.T) {
	f := newProfileFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)
	traineeID := f.seedUser(t, "alice", domain.RoleTrainee)

	_, err := f.trainerProfileRepo.Create(context.Background(), &domain.TrainerProfile{UserID: trainerID})
	require.NoError(t, err)

	updated, err := f.svc.UpdateTrainerProfile(context.Background(), trainerID, domain.TrainerProfile{
		Bio:               "New bio",
		YearsOfExperience: 10,
		SpecialtyCardio:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "New bio", updated.Bio)
	assert.True(t, updated.SpecialtyCardio)

	_, err = f.svc.UpdateTrainerProfile(context.Background(), traineeID, domain.TrainerProfile{})
	assert.ErrorIs(t, err, ErrNotATrainer)

	_, err = f.svc.UpdateTrainerProfile(context.Background(), trainerID, domain.TrainerProfile{YearsOfExperience: 51})
	assert.ErrorIs(t, err, ErrValidationFailed)
}
