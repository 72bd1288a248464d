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

var sessionDate = time.Date(2026, 1, 12, 0, 0, 0, 0, time.UTC)

func TestStartSessionIdempotent(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewSessionService(sessionRepo)
	userID := primitive.NewObjectID()

	first, err := svc.StartSession(context.Background(), userID, sessionDate)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionInProgress, first.Status)

	second, err := svc.StartSession(context.Background(), userID, sessionDate)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "starting twice returns the existing session")
}

func TestCompleteSessionAfterStart(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewSessionService(sessionRepo)
	userID := primitive.NewObjectID()

	started, err := svc.StartSession(context.Background(), userID, sessionDate)
	require.NoError(t, err)

	completed, err := svc.CompleteSession(context.Background(), userID, sessionDate, intPtr(50), "felt strong")
	require.NoError(t, err)
	assert.Equal(t, started.ID, completed.ID)
	assert.Equal(t, domain.SessionCompleted, completed.Status)
	require.NotNil(t, completed.DurationMinutes)
	assert.Equal(t, 50, *completed.DurationMinutes)
	assert.Equal(t, "felt strong", completed.Notes)
}

func TestCompleteSessionWithoutStart(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewSessionService(sessionRepo)
	userID := primitive.NewObjectID()

	completed, err := svc.CompleteSession(context.Background(), userID, sessionDate, nil, "")
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, completed.Status)
}

func TestCompleteSessionRejectsNonPositiveDuration(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewSessionService(sessionRepo)

	_, err := svc.CompleteSession(context.Background(), primitive.NewObjectID(), sessionDate, intPtr(0), "")
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestSubmitFeedbackOncePerSession(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewSessionService(sessionRepo)
	userID := primitive.NewObjectID()

	session, err := svc.StartSession(context.Background(), userID, sessionDate)
	require.NoError(t, err)

	feedback, err := svc.SubmitFeedback(context.Background(), userID, session.ID, FeedbackInput{
		DifficultyRating: 4,
		FatigueLevel:     intPtr(3),
		Notes:            "tough but doable",
	})
	require.NoError(t, err)
	assert.Equal(t, session.ID, feedback.SessionID)

	_, err = svc.SubmitFeedback(context.Background(), userID, session.ID, FeedbackInput{DifficultyRating: 2})
	assert.ErrorIs(t, err, ErrFeedbackAlreadyGiven)
}

func TestSubmitFeedbackValidation(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewSessionService(sessionRepo)
	userID := primitive.NewObjectID()

	session, err := svc.StartSession(context.Background(), userID, sessionDate)
	require.NoError(t, err)

	_, err = svc.SubmitFeedback(context.Background(), userID, session.ID, FeedbackInput{DifficultyRating: 0})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.SubmitFeedback(context.Background(), userID, session.ID, FeedbackInput{DifficultyRating: 6})
	assert.ErrorIs(t, err, ErrValidationFailed)

	_, err = svc.SubmitFeedback(context.Background(), userID, session.ID, FeedbackInput{DifficultyRating: 3, FatigueLevel: intPtr(9)})
	assert.ErrorIs(t, err, ErrValidationFailed)
}

func TestSubmitFeedbackOwnership(t *testing.T) {
	sessionRepo := memory.NewSessionRepository()
	svc := NewSessionService(sessionRepo)
	ownerID := primitive.NewObjectID()

	session, err := svc.StartSession(context.Background(), ownerID, sessionDate)
	require.NoError(t, err)

	// Another user's session is indistinguishable from a missing one.
	_, err = svc.SubmitFeedback(context.Background(), primitive.NewObjectID(), session.ID, FeedbackInput{DifficultyRating: 3})
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.SubmitFeedback(context.Background(), ownerID, primitive.NewObjectID(), FeedbackInput{DifficultyRating: 3})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
