package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitiva/workout-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ScheduleHandler holds the schedule service dependency.
type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

// NewScheduleHandler creates a new ScheduleHandler.
func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// --- Request/Response Structs ---

type GenerateScheduleRequest struct {
	ProgramID string   `json:"program_id" binding:"required"`
	RestDays  []string `json:"rest_days"`
}

// --- Handler Methods ---

// Generate godoc
// @Summary Generate or extend the active schedule
// @Description Creates a 28-day schedule from the chosen program, or adds the
// program to the existing active schedule. Rest days always reflect the latest
// call.
// @Tags Schedule
// @Accept json
// @Produce json
// @Param schedule body GenerateScheduleRequest true "Program and rest days"
// @Success 201 {object} domain.Schedule
// @Failure 400 {object} gin.H "Invalid input or rest day name"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/schedule/generate/ [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	programID, err := primitive.ObjectIDFromHex(req.ProgramID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid program_id format")
		return
	}

	schedule, err := h.scheduleService.Generate(c.Request.Context(), userID, programID, req.RestDays)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRestDay):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to generate schedule")
		}
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// Active godoc
// @Summary Get the active schedule with its 28-day calendar
// @Description Returns the schedule and its expanded calendar events. With no
// active schedule the response carries a null schedule rather than an error.
// @Tags Schedule
// @Produce json
// @Success 200 {object} service.ScheduleView
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/schedule/active/ [get]
func (h *ScheduleHandler) Active(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	view, err := h.scheduleService.ActiveSchedule(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load schedule")
		return
	}
	if view == nil {
		c.JSON(http.StatusOK, gin.H{"schedule": nil, "message": "no active schedule"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// WorkoutForDate godoc
// @Summary Get the full workout for a single date
// @Description Returns the exercise/set payload of every program contributing
// to the date, or a rest-day marker.
// @Tags Schedule
// @Produce json
// @Param date path string true "Date (YYYY-MM-DD)"
// @Success 200 {object} service.DayWorkoutResult
// @Failure 400 {object} gin.H "Invalid date"
// @Failure 404 {object} gin.H "No active schedule"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/schedule/workout/{date}/ [get]
func (h *ScheduleHandler) WorkoutForDate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	date, ok := parseDateParam(c, "date")
	if !ok {
		return
	}

	result, err := h.scheduleService.WorkoutForDate(c.Request.Context(), userID, date)
	if err != nil {
		if errors.Is(err, service.ErrScheduleNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load workout")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}

// RemoveProgram godoc
// @Summary Remove a program from the active schedule
// @Description Removing an absent program or having no active schedule is a
// no-op success. Removing the last program deactivates the schedule.
// @Tags Schedule
// @Produce json
// @Param program_id path string true "Program ID"
// @Success 200 {object} gin.H "Program removed"
// @Failure 400 {object} gin.H "Invalid program ID"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/schedule/remove-program/{program_id}/ [delete]
func (h *ScheduleHandler) RemoveProgram(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	programID, ok := parseObjectIDParam(c, "program_id")
	if !ok {
		return
	}

	if err := h.scheduleService.RemoveProgram(c.Request.Context(), userID, programID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to remove program")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "program removed from schedule"})
}

// Deactivate godoc
// @Summary Deactivate the active schedule
// @Description Clears the schedule and all its program associations. Safe to
// call with no active schedule.
// @Tags Schedule
// @Produce json
// @Success 200 {object} gin.H "Schedule deactivated"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/schedule/deactivate/ [delete]
func (h *ScheduleHandler) Deactivate(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	if err := h.scheduleService.Deactivate(c.Request.Context(), userID); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to deactivate schedule")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "schedule deactivated"})
}
