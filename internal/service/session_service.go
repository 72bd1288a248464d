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
	ErrSessionNotFound      = errors.New("workout session not found")
	ErrFeedbackAlreadyGiven = errors.New("feedback already submitted for this session")
)

// FeedbackInput carries post-workout feedback fields.
type FeedbackInput struct {
	DifficultyRating int
	FatigueLevel     *int
	PainReported     bool
	Notes            string
}

// SessionService tracks workout sessions and post-workout feedback.
type SessionService interface {
	// StartSession marks a session in progress for the date. Starting an
	// already-started session returns the existing one.
	StartSession(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutSession, error)
	// CompleteSession marks the date's session completed, creating it when
	// the user completes a workout without an explicit start.
	CompleteSession(ctx context.Context, userID primitive.ObjectID, date time.Time, durationMinutes *int, notes string) (*domain.WorkoutSession, error)
	SubmitFeedback(ctx context.Context, userID, sessionID primitive.ObjectID, input FeedbackInput) (*domain.SessionFeedback, error)
}

type sessionService struct {
	sessionRepo repository.SessionRepository
}

// NewSessionService creates a new instance of sessionService.
func NewSessionService(sessionRepo repository.SessionRepository) SessionService {
	return &sessionService{sessionRepo: sessionRepo}
}

func (s *sessionService) StartSession(ctx context.Context, userID primitive.ObjectID, date time.Time) (*domain.WorkoutSession, error) {
	existing, err := s.sessionRepo.GetByUserAndDate(ctx, userID, date)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	session := &domain.WorkoutSession{
		UserID: userID,
		Date:   date,
		Status: domain.SessionInProgress,
	}
	if _, err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *sessionService) CompleteSession(ctx context.Context, userID primitive.ObjectID, date time.Time, durationMinutes *int, notes string) (*domain.WorkoutSession, error) {
	if durationMinutes != nil && *durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration_minutes must be positive", ErrValidationFailed)
	}

	session, err := s.sessionRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		session = &domain.WorkoutSession{
			UserID: userID,
			Date:   date,
			Status: domain.SessionInProgress,
		}
		if _, err := s.sessionRepo.Create(ctx, session); err != nil {
			return nil, err
		}
	}

	session.Status = domain.SessionCompleted
	session.DurationMinutes = durationMinutes
	if notes != "" {
		session.Notes = notes
	}
	if err := s.sessionRepo.Update(ctx, session); err != nil {
		return nil, err
	}

	observability.SessionsCompleted.Inc()
	return session, nil
}

// SubmitFeedback attaches post-workout feedback to one of the user's own
// sessions. One feedback entry per session.
func (s *sessionService) SubmitFeedback(ctx context.Context, userID, sessionID primitive.ObjectID, input FeedbackInput) (*domain.SessionFeedback, error) {
	if input.DifficultyRating < 1 || input.DifficultyRating > 5 {
		return nil, fmt.Errorf("%w: difficulty_rating must be between 1 and 5", ErrValidationFailed)
	}
	if input.FatigueLevel != nil && (*input.FatigueLevel < 1 || *input.FatigueLevel > 5) {
		return nil, fmt.Errorf("%w: fatigue_level must be between 1 and 5", ErrValidationFailed)
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != userID {
		return nil, ErrSessionNotFound
	}

	feedback := &domain.SessionFeedback{
		SessionID:        sessionID,
		DifficultyRating: input.DifficultyRating,
		FatigueLevel:     input.FatigueLevel,
		PainReported:     input.PainReported,
		Notes:            input.Notes,
	}
	if _, err := s.sessionRepo.CreateFeedback(ctx, feedback); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrFeedbackAlreadyGiven
		}
		return nil, err
	}
	return feedback, nil
}
