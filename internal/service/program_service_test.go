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

type programFixture struct {
	svc         ProgramService
	userRepo    *memory.UserRepository
	programRepo *memory.ProgramRepository
}

func newProgramFixture() *programFixture {
	userRepo := memory.NewUserRepository()
	programRepo := memory.NewProgramRepository()
	return &programFixture{
		svc:         NewProgramService(userRepo, programRepo),
		userRepo:    userRepo,
		programRepo: programRepo,
	}
}

func (f *programFixture) seedUser(t *testing.T, username string, role domain.Role) primitive.ObjectID {
	t.Helper()
	user := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
		Role:         role,
	}
	id, err := f.userRepo.Create(context.Background(), &user)
	require.NoError(t, err)
	return id
}

func validProgramInput() ProgramInput {
	return ProgramInput{
		Name:          "Beginner Strength",
		Description:   "Three days a week of compound lifts.",
		Focuses:       []domain.FocusTag{domain.FocusStrength},
		Difficulty:    domain.DifficultyBeginner,
		SessionLength: 45,
		Sections: []domain.Section{
			{
				Format: "Monday",
				Type:   "Full Body",
				Order:  1,
				Exercises: []domain.Exercise{
					{
						Name:  "Squats",
						Order: 1,
						Sets: []domain.ExerciseSet{
							{SetNumber: 1, Reps: intPtr(10), Rest: 90},
							{SetNumber: 2, Reps: intPtr(8), Rest: 90},
						},
					},
				},
			},
			{Format: "Sunday", IsRestDay: true, Order: 2},
		},
	}
}

func TestCreateProgramNested(t *testing.T) {
	f := newProgramFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)

	program, err := f.svc.CreateProgram(context.Background(), trainerID, validProgramInput())
	require.NoError(t, err)

	assert.Equal(t, trainerID, program.TrainerID)
	require.Len(t, program.Sections, 2)
	assert.False(t, program.Sections[0].ID.IsZero(), "embedded sections get IDs on create")
	require.Len(t, program.Sections[0].Exercises, 1)
	assert.False(t, program.Sections[0].Exercises[0].ID.IsZero())
	assert.Len(t, program.Sections[0].Exercises[0].Sets, 2)
	assert.Equal(t, 1, program.WeeklyFrequency())
}

func TestCreateProgramTraineeForbidden(t *testing.T) {
	f := newProgramFixture()
	traineeID := f.seedUser(t, "alice", domain.RoleTrainee)

	_, err := f.svc.CreateProgram(context.Background(), traineeID, validProgramInput())
	assert.ErrorIs(t, err, ErrTrainersOnly)
}

func TestCreateProgramValidation(t *testing.T) {
	f := newProgramFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)

	tests := []struct {
		name   string
		mutate func(*ProgramInput)
	}{
		{"missing name", func(in *ProgramInput) { in.Name = "" }},
		{"no focuses", func(in *ProgramInput) { in.Focuses = nil }},
		{"unknown focus", func(in *ProgramInput) { in.Focuses = []domain.FocusTag{"mixed"} }},
		{"bad difficulty", func(in *ProgramInput) { in.Difficulty = "expert" }},
		{"zero session length", func(in *ProgramInput) { in.SessionLength = 0 }},
		{"non-weekday section format", func(in *ProgramInput) { in.Sections[0].Format = "Day 1" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			input := validProgramInput()
			tc.mutate(&input)
			_, err := f.svc.CreateProgram(context.Background(), trainerID, input)
			assert.ErrorIs(t, err, ErrValidationFailed)
		})
	}
}

func TestCreateProgramRejectsRestDayWithExercises(t *testing.T) {
	f := newProgramFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)

	input := validProgramInput()
	input.Sections[1].Exercises = []domain.Exercise{{Name: "Squats", Order: 1}}

	_, err := f.svc.CreateProgram(context.Background(), trainerID, input)
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestGetProgramHidesDeleted(t *testing.T) {
	f := newProgramFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)

	program, err := f.svc.CreateProgram(context.Background(), trainerID, validProgramInput())
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteProgram(context.Background(), trainerID, program.ID))

	_, err = f.svc.GetProgramByID(context.Background(), program.ID)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestListPublishedExcludesDrafts(t *testing.T) {
	f := newProgramFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)

	draft := validProgramInput()
	draft.Name = "Draft Program"
	draft.IsDraft = true
	_, err := f.svc.CreateProgram(context.Background(), trainerID, draft)
	require.NoError(t, err)

	published, err := f.svc.CreateProgram(context.Background(), trainerID, validProgramInput())
	require.NoError(t, err)

	programs, err := f.svc.ListPublished(context.Background())
	require.NoError(t, err)
	require.Len(t, programs, 1)
	assert.Equal(t, published.ID, programs[0].ID)
}

func TestDeleteProgramOwnership(t *testing.T) {
	f := newProgramFixture()
	owner := f.seedUser(t, "coach", domain.RoleTrainer)
	other := f.seedUser(t, "rival", domain.RoleTrainer)

	program, err := f.svc.CreateProgram(context.Background(), owner, validProgramInput())
	require.NoError(t, err)

	err = f.svc.DeleteProgram(context.Background(), other, program.ID)
	assert.ErrorIs(t, err, ErrProgramAccessDenied)

	err = f.svc.DeleteProgram(context.Background(), owner, primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrProgramNotFound)

	assert.NoError(t, f.svc.DeleteProgram(context.Background(), owner, program.ID))
}

func TestGetTrainerPrograms(t *testing.T) {
	f := newProgramFixture()
	trainerID := f.seedUser(t, "coach", domain.RoleTrainer)

	first, err := f.svc.CreateProgram(context.Background(), trainerID, validProgramInput())
	require.NoError(t, err)
	require.NoError(t, f.svc.DeleteProgram(context.Background(), trainerID, first.ID))

	second := validProgramInput()
	second.Name = "Second Program"
	_, err = f.svc.CreateProgram(context.Background(), trainerID, second)
	require.NoError(t, err)

	visible, err := f.svc.GetTrainerPrograms(context.Background(), trainerID, false)
	require.NoError(t, err)
	assert.Equal(t, 1, visible.TotalCount)

	all, err := f.svc.GetTrainerPrograms(context.Background(), trainerID, true)
	require.NoError(t, err)
	assert.Equal(t, 2, all.TotalCount)
}
