package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/observability"
	"fitiva/workout-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrProgramNotFound  = errors.New("program not found")
	ErrScheduleNotFound = errors.New("no active schedule")
	ErrInvalidRestDay   = errors.New("invalid rest day name")
)

// RestDayMessage is attached to single-day lookups that fall on a rest day.
const RestDayMessage = "Rest day. Recovery is part of the program."

// ScheduleView is the active schedule together with its expanded calendar.
type ScheduleView struct {
	Schedule       *domain.Schedule       `json:"schedule"`
	CalendarEvents []domain.CalendarEvent `json:"calendar_events"`
}

// DayWorkout is one program's full workout payload for a single date.
type DayWorkout struct {
	ProgramID   primitive.ObjectID `json:"program_id"`
	ProgramName string             `json:"program_name"`
	SectionID   primitive.ObjectID `json:"section_id"`
	SectionType string             `json:"section_type,omitempty"`
	Focuses     []domain.FocusTag  `json:"focus"`
	Exercises   []domain.Exercise  `json:"exercises"`
}

// DayWorkoutResult is the single-day lookup response: rest-day flag plus the
// full exercise/set payload of every contributing program.
type DayWorkoutResult struct {
	Date          time.Time            `json:"date"`
	DayName       string               `json:"day_name"`
	IsRestDay     bool                 `json:"is_rest_day"`
	Message       string               `json:"message,omitempty"`
	Workouts      []DayWorkout         `json:"workouts"`
	SessionStatus domain.SessionStatus `json:"session_status,omitempty"`
}

// ScheduleService manages the per-user active schedule and its calendar
// expansion.
type ScheduleService interface {
	Generate(ctx context.Context, userID, programID primitive.ObjectID, restDays []string) (*domain.Schedule, error)
	ActiveSchedule(ctx context.Context, userID primitive.ObjectID) (*ScheduleView, error)
	WorkoutForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DayWorkoutResult, error)
	RemoveProgram(ctx context.Context, userID, programID primitive.ObjectID) error
	Deactivate(ctx context.Context, userID primitive.ObjectID) error
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	programRepo  repository.ProgramRepository
	sessionRepo  repository.SessionRepository
	now          func() time.Time
}

// NewScheduleService creates a new instance of scheduleService.
func NewScheduleService(
	scheduleRepo repository.ScheduleRepository,
	programRepo repository.ProgramRepository,
	sessionRepo repository.SessionRepository,
) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		programRepo:  programRepo,
		sessionRepo:  sessionRepo,
		now:          time.Now,
	}
}

// validateRestDays normalizes rest day names and rejects unknown weekdays.
// Nothing is persisted when validation fails.
func validateRestDays(restDays []string) ([]string, error) {
	normalized := make([]string, 0, len(restDays))
	seen := make(map[string]bool, len(restDays))
	for _, d := range restDays {
		name := domain.NormalizeWeekday(d)
		if !domain.IsValidWeekday(name) {
			return nil, fmt.Errorf("%w: %q", ErrInvalidRestDay, d)
		}
		if !seen[name] {
			seen[name] = true
			normalized = append(normalized, name)
		}
	}
	return normalized, nil
}

// Generate creates the user's active schedule, or extends it with another
// program when one already exists. Adding a program twice is idempotent. The
// rest-day configuration always reflects the latest generate call.
func (s *scheduleService) Generate(ctx context.Context, userID, programID primitive.ObjectID, restDays []string) (*domain.Schedule, error) {
	normalizedRestDays, err := validateRestDays(restDays)
	if err != nil {
		return nil, err
	}

	program, err := s.programRepo.GetByID(ctx, programID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProgramNotFound
		}
		return nil, err
	}
	if program.IsDeleted {
		return nil, ErrProgramNotFound
	}

	schedule, err := s.scheduleRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		// No active schedule: create one starting today.
		today := s.today()
		schedule = &domain.Schedule{
			UserID:     userID,
			ProgramIDs: []primitive.ObjectID{programID},
			StartDate:  today,
			RestDays:   normalizedRestDays,
			IsActive:   true,
		}
		if _, err := s.scheduleRepo.Create(ctx, schedule); err != nil {
			return nil, err
		}
		observability.SchedulesGenerated.WithLabelValues("created").Inc()
		return schedule, nil
	}

	// Active schedule exists: add the program to it rather than creating a
	// parallel schedule.
	if !schedule.HasProgram(programID) {
		schedule.ProgramIDs = append(schedule.ProgramIDs, programID)
	}
	schedule.RestDays = normalizedRestDays
	if err := s.scheduleRepo.Update(ctx, schedule); err != nil {
		return nil, err
	}
	observability.SchedulesGenerated.WithLabelValues("extended").Inc()
	return schedule, nil
}

// ActiveSchedule returns the user's active schedule with its 28-day calendar
// expansion, or nil when the user has none. The calendar is recomputed on
// every read so it always reflects the current authored program content.
func (s *scheduleService) ActiveSchedule(ctx context.Context, userID primitive.ObjectID) (*ScheduleView, error) {
	schedule, err := s.scheduleRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	programs, err := s.programRepo.GetByIDs(ctx, schedule.ProgramIDs)
	if err != nil {
		return nil, err
	}

	return &ScheduleView{
		Schedule:       schedule,
		CalendarEvents: domain.ExpandSchedule(schedule, programs),
	}, nil
}

// WorkoutForDate derives the workout for a single date, including the full
// exercise/set payload of every contributing program section and the status
// of any workout session recorded for that day.
func (s *scheduleService) WorkoutForDate(ctx context.Context, userID primitive.ObjectID, date time.Time) (*DayWorkoutResult, error) {
	schedule, err := s.scheduleRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrScheduleNotFound
		}
		return nil, err
	}

	programs, err := s.programRepo.GetByIDs(ctx, schedule.ProgramIDs)
	if err != nil {
		return nil, err
	}

	dayName := domain.WeekdayName(date)
	result := &DayWorkoutResult{
		Date:     date,
		DayName:  dayName,
		Workouts: []DayWorkout{},
	}

	if schedule.IsRestDayName(dayName) {
		result.IsRestDay = true
		result.Message = RestDayMessage
	} else {
		for i := range programs {
			p := &programs[i]
			section := p.SectionForWeekday(dayName)
			if section == nil {
				continue
			}
			result.Workouts = append(result.Workouts, DayWorkout{
				ProgramID:   p.ID,
				ProgramName: p.Name,
				SectionID:   section.ID,
				SectionType: section.Type,
				Focuses:     p.Focuses,
				Exercises:   section.Exercises,
			})
		}
		if len(result.Workouts) == 0 {
			result.IsRestDay = true
			result.Message = RestDayMessage
		}
	}

	session, err := s.sessionRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if session != nil {
		result.SessionStatus = session.Status
	}

	return result, nil
}

// RemoveProgram removes a program from the user's active schedule. Removing a
// program the schedule does not reference is a no-op success, as is calling
// with no active schedule. Emptying the program set deactivates the schedule.
func (s *scheduleService) RemoveProgram(ctx context.Context, userID, programID primitive.ObjectID) error {
	schedule, err := s.scheduleRepo.GetActiveByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	if !schedule.HasProgram(programID) {
		return nil
	}

	remaining := make([]primitive.ObjectID, 0, len(schedule.ProgramIDs)-1)
	for _, id := range schedule.ProgramIDs {
		if id != programID {
			remaining = append(remaining, id)
		}
	}
	schedule.ProgramIDs = remaining

	if len(remaining) == 0 {
		schedule.IsActive = false
		observability.SchedulesDeactivated.Inc()
	}
	return s.scheduleRepo.Update(ctx, schedule)
}

// Deactivate unconditionally clears the user's active schedule, discarding
// all program associations.
func (s *scheduleService) Deactivate(ctx context.Context, userID primitive.ObjectID) error {
	if err := s.scheduleRepo.Deactivate(ctx, userID); err != nil {
		return err
	}
	observability.SchedulesDeactivated.Inc()
	return nil
}

// today returns the current date truncated to midnight UTC.
func (s *scheduleService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
