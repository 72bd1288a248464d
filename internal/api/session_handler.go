package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitiva/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// SessionHandler holds the session service dependency.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request/Response Structs ---

type CompleteSessionRequest struct {
	DurationMinutes *int   `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

type FeedbackRequest struct {
	DifficultyRating int    `json:"difficulty_rating" binding:"required"`
	FatigueLevel     *int   `json:"fatigue_level"`
	PainReported     bool   `json:"pain_reported"`
	Notes            string `json:"notes"`
}

// --- Handler Methods ---

// StartSession godoc
// @Summary Start a workout session for a date
// @Description Idempotent: starting an already-started session returns the
// existing one.
// @Tags Sessions
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 201 {object} domain.WorkoutSession
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/sessions/start/{date}/ [post]
func (h *SessionHandler) StartSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	session, err := h.sessionService.StartSession(c.Request.Context(), userID, date)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to start session")
		return
	}
	c.JSON(http.StatusCreated, session)
}

// CompleteSession godoc
// @Summary Complete a workout session for a date
// @Description Marks the session completed, creating it first when the user
// never explicitly started one.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Param session body CompleteSessionRequest false "Duration and notes"
// @Success 200 {object} domain.WorkoutSession
// @Failure 400 {object} gin.H "Invalid date or duration"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/sessions/complete/{date}/ [post]
func (h *SessionHandler) CompleteSession(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	var req CompleteSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
			return
		}
	}

	session, err := h.sessionService.CompleteSession(c.Request.Context(), userID, date, req.DurationMinutes, req.Notes)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to complete session")
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// SubmitFeedback godoc
// @Summary Submit feedback for one of your sessions
// @Description One feedback entry per session.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param feedback body FeedbackRequest true "Feedback fields"
// @Success 201 {object} domain.SessionFeedback
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Session not found"
// @Failure 409 {object} gin.H "Feedback already submitted"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/sessions/{id}/feedback/ [post]
func (h *SessionHandler) SubmitFeedback(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	sessionID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	feedback, err := h.sessionService.SubmitFeedback(c.Request.Context(), userID, sessionID, service.FeedbackInput{
		DifficultyRating: req.DifficultyRating,
		FatigueLevel:     req.FatigueLevel,
		PainReported:     req.PainReported,
		Notes:            req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrFeedbackAlreadyGiven):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to submit feedback")
		}
		return
	}
	c.JSON(http.StatusCreated, feedback)
}
