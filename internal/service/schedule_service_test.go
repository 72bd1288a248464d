package service

import (
	"context"
	"testing"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Monday 2026-01-05.
var fixedNow = time.Date(2026, 1, 5, 9, 30, 0, 0, time.UTC)

type scheduleFixture struct {
	svc          *scheduleService
	scheduleRepo *memory.ScheduleRepository
	programRepo  *memory.ProgramRepository
	sessionRepo  *memory.SessionRepository
}

func newScheduleFixture(t *testing.T) *scheduleFixture {
	t.Helper()
	f := &scheduleFixture{
		scheduleRepo: memory.NewScheduleRepository(),
		programRepo:  memory.NewProgramRepository(),
		sessionRepo:  memory.NewSessionRepository(),
	}
	f.svc = NewScheduleService(f.scheduleRepo, f.programRepo, f.sessionRepo).(*scheduleService)
	f.svc.now = func() time.Time { return fixedNow }
	return f
}

func (f *scheduleFixture) seedProgram(t *testing.T, name string, sections ...domain.Section) domain.Program {
	t.Helper()
	program := domain.Program{
		TrainerID:     primitive.NewObjectID(),
		Name:          name,
		Focuses:       []domain.FocusTag{domain.FocusStrength},
		Difficulty:    domain.DifficultyIntermediate,
		SessionLength: 60,
		Sections:      sections,
	}
	_, err := f.programRepo.Create(context.Background(), &program)
	require.NoError(t, err)
	return program
}

func mondaySection(exercises int) domain.Section {
	section := domain.Section{Format: "Monday", Type: "Upper Body"}
	for i := 0; i < exercises; i++ {
		section.Exercises = append(section.Exercises, domain.Exercise{
			Name:  "exercise",
			Order: i + 1,
			Sets:  []domain.ExerciseSet{{SetNumber: 1, Reps: intPtr(12), Rest: 90}},
		})
	}
	return section
}

func TestGenerateCreatesScheduleStartingToday(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength Base", mondaySection(4))
	userID := primitive.NewObjectID()

	schedule, err := f.svc.Generate(context.Background(), userID, program.ID, []string{"Sunday"})
	require.NoError(t, err)

	assert.True(t, schedule.IsActive)
	assert.Equal(t, []primitive.ObjectID{program.ID}, schedule.ProgramIDs)
	assert.Equal(t, []string{"sunday"}, schedule.RestDays, "rest days are normalized")
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), schedule.StartDate, "start date truncated to midnight")
}

func TestGenerateExtendsExistingSchedule(t *testing.T) {
	f := newScheduleFixture(t)
	p1 := f.seedProgram(t, "Strength", mondaySection(4))
	p2 := f.seedProgram(t, "Cardio", mondaySection(2))
	userID := primitive.NewObjectID()

	first, err := f.svc.Generate(context.Background(), userID, p1.ID, []string{"sunday"})
	require.NoError(t, err)

	second, err := f.svc.Generate(context.Background(), userID, p2.ID, []string{"saturday"})
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID, "no parallel schedule is created")
	assert.Equal(t, []primitive.ObjectID{p1.ID, p2.ID}, second.ProgramIDs)
	assert.Equal(t, []string{"saturday"}, second.RestDays, "rest days reflect the latest call")
}

func TestGenerateIsIdempotentPerProgram(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength", mondaySection(4))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, program.ID, nil)
	require.NoError(t, err)
	schedule, err := f.svc.Generate(context.Background(), userID, program.ID, nil)
	require.NoError(t, err)

	assert.Equal(t, []primitive.ObjectID{program.ID}, schedule.ProgramIDs)
}

func TestGenerateRejectsInvalidRestDay(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength", mondaySection(4))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, program.ID, []string{"monday", "restday"})
	require.ErrorIs(t, err, ErrInvalidRestDay)

	view, err := f.svc.ActiveSchedule(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, view, "nothing persisted on validation failure")
}

func TestGenerateUnknownOrDeletedProgram(t *testing.T) {
	f := newScheduleFixture(t)
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, primitive.NewObjectID(), nil)
	assert.ErrorIs(t, err, ErrProgramNotFound)

	deleted := f.seedProgram(t, "Gone", mondaySection(1))
	require.NoError(t, f.programRepo.MarkDeleted(context.Background(), deleted.ID, deleted.TrainerID))
	_, err = f.svc.Generate(context.Background(), userID, deleted.ID, nil)
	assert.ErrorIs(t, err, ErrProgramNotFound)
}

func TestActiveScheduleExpandsCalendar(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength", mondaySection(4))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, program.ID, []string{"sunday"})
	require.NoError(t, err)

	view, err := f.svc.ActiveSchedule(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, view)
	require.Len(t, view.CalendarEvents, domain.PlanningHorizonDays)

	first := view.CalendarEvents[0]
	assert.Equal(t, "monday", first.DayName)
	require.Len(t, first.Entries, 1)
	assert.Equal(t, program.ID, first.Entries[0].ProgramID)
	assert.Equal(t, 4, first.Entries[0].ExerciseCount)
}

func TestActiveScheduleNoneIsNil(t *testing.T) {
	f := newScheduleFixture(t)
	view, err := f.svc.ActiveSchedule(context.Background(), primitive.NewObjectID())
	require.NoError(t, err)
	assert.Nil(t, view)
}

func TestWorkoutForDateReturnsFullPayload(t *testing.T) {
	f := newScheduleFixture(t)
	p1 := f.seedProgram(t, "Push Day", mondaySection(4))
	p2 := f.seedProgram(t, "Sprints", mondaySection(2))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, p1.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.Generate(context.Background(), userID, p2.ID, nil)
	require.NoError(t, err)

	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.WorkoutForDate(context.Background(), userID, monday)
	require.NoError(t, err)

	assert.False(t, result.IsRestDay)
	require.Len(t, result.Workouts, 2)
	assert.Equal(t, p1.ID, result.Workouts[0].ProgramID)
	assert.Len(t, result.Workouts[0].Exercises, 4)
	require.NotEmpty(t, result.Workouts[0].Exercises[0].Sets)
	assert.Equal(t, 12, *result.Workouts[0].Exercises[0].Sets[0].Reps)
	assert.Len(t, result.Workouts[1].Exercises, 2)
}

func TestWorkoutForDateRestDay(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength", mondaySection(4))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, program.ID, []string{"monday"})
	require.NoError(t, err)

	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	result, err := f.svc.WorkoutForDate(context.Background(), userID, monday)
	require.NoError(t, err)

	assert.True(t, result.IsRestDay)
	assert.Equal(t, RestDayMessage, result.Message)
	assert.Empty(t, result.Workouts)
}

func TestWorkoutForDateAttachesSessionStatus(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength", mondaySection(4))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, program.ID, nil)
	require.NoError(t, err)

	monday := time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)
	_, err = f.sessionRepo.Create(context.Background(), &domain.WorkoutSession{
		UserID: userID,
		Date:   monday,
		Status: domain.SessionCompleted,
	})
	require.NoError(t, err)

	result, err := f.svc.WorkoutForDate(context.Background(), userID, monday)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, result.SessionStatus)
}

func TestWorkoutForDateNoSchedule(t *testing.T) {
	f := newScheduleFixture(t)
	_, err := f.svc.WorkoutForDate(context.Background(), primitive.NewObjectID(), fixedNow)
	assert.ErrorIs(t, err, ErrScheduleNotFound)
}

func TestRemoveProgramIsIdempotent(t *testing.T) {
	f := newScheduleFixture(t)
	p1 := f.seedProgram(t, "Strength", mondaySection(4))
	p2 := f.seedProgram(t, "Cardio", mondaySection(2))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, p1.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.Generate(context.Background(), userID, p2.ID, nil)
	require.NoError(t, err)

	require.NoError(t, f.svc.RemoveProgram(context.Background(), userID, p1.ID))
	require.NoError(t, f.svc.RemoveProgram(context.Background(), userID, p1.ID), "second removal is a no-op")
	require.NoError(t, f.svc.RemoveProgram(context.Background(), userID, primitive.NewObjectID()), "unknown program is a no-op")

	view, err := f.svc.ActiveSchedule(context.Background(), userID)
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.Equal(t, []primitive.ObjectID{p2.ID}, view.Schedule.ProgramIDs)
}

func TestRemoveLastProgramDeactivates(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength", mondaySection(4))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, program.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.RemoveProgram(context.Background(), userID, program.ID))

	view, err := f.svc.ActiveSchedule(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, view, "emptying the program set deactivates the schedule")
}

func TestRemoveProgramWithoutSchedule(t *testing.T) {
	f := newScheduleFixture(t)
	assert.NoError(t, f.svc.RemoveProgram(context.Background(), primitive.NewObjectID(), primitive.NewObjectID()))
}

func TestDeactivateClearsSchedule(t *testing.T) {
	f := newScheduleFixture(t)
	program := f.seedProgram(t, "Strength", mondaySection(4))
	userID := primitive.NewObjectID()

	_, err := f.svc.Generate(context.Background(), userID, program.ID, nil)
	require.NoError(t, err)
	require.NoError(t, f.svc.Deactivate(context.Background(), userID))

	view, err := f.svc.ActiveSchedule(context.Background(), userID)
	require.NoError(t, err)
	assert.Nil(t, view)

	// A fresh generate after deactivation starts a new schedule.
	schedule, err := f.svc.Generate(context.Background(), userID, program.ID, nil)
	require.NoError(t, err)
	assert.True(t, schedule.IsActive)
}

func TestDeactivateWithoutScheduleIsNoOp(t *testing.T) {
	f := newScheduleFixture(t)
	assert.NoError(t, f.svc.Deactivate(context.Background(), primitive.NewObjectID()))
}
