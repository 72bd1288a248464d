package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProgramHandler holds the program service dependency.
type ProgramHandler struct {
	programService service.ProgramService
}

// NewProgramHandler creates a new ProgramHandler.
func NewProgramHandler(programService service.ProgramService) *ProgramHandler {
	return &ProgramHandler{programService: programService}
}

// --- Request/Response Structs ---

type SetRequest struct {
	SetNumber int  `json:"set_number" binding:"required,min=1"`
	Reps      *int `json:"reps"`
	Time      *int `json:"time"`
	Rest      int  `json:"rest"`
}

type ExerciseRequest struct {
	Name  string       `json:"name" binding:"required"`
	Order int          `json:"order"`
	Sets  []SetRequest `json:"sets" binding:"dive"`
}

type SectionRequest struct {
	Format    string            `json:"format" binding:"required"`
	Type      string            `json:"type"`
	IsRestDay bool              `json:"is_rest_day"`
	Order     int               `json:"order"`
	Exercises []ExerciseRequest `json:"exercises" binding:"dive"`
}

// ProgramRequest is the nested authoring payload: a program with its sections,
// exercises and sets created in one request.
type ProgramRequest struct {
	Name          string            `json:"name" binding:"required"`
	Description   string            `json:"description"`
	Focuses       []domain.FocusTag `json:"focus" binding:"required,min=1"`
	Difficulty    domain.Difficulty `json:"difficulty" binding:"required"`
	SessionLength int               `json:"session_length" binding:"required,min=1"`
	IsDraft       bool              `json:"is_draft"`
	Sections      []SectionRequest  `json:"sections" binding:"dive"`
}

// ProgramResponse decorates a program with its derived weekly frequency.
type ProgramResponse struct {
	domain.Program
	WeeklyFrequency int `json:"weekly_frequency"`
}

func (r ProgramRequest) toInput() service.ProgramInput {
	sections := make([]domain.Section, 0, len(r.Sections))
	for _, sec := range r.Sections {
		exercises := make([]domain.Exercise, 0, len(sec.Exercises))
		for _, ex := range sec.Exercises {
			sets := make([]domain.ExerciseSet, 0, len(ex.Sets))
			for _, set := range ex.Sets {
				sets = append(sets, domain.ExerciseSet{
					SetNumber: set.SetNumber,
					Reps:      set.Reps,
					Time:      set.Time,
					Rest:      set.Rest,
				})
			}
			exercises = append(exercises, domain.Exercise{
				Name:  ex.Name,
				Order: ex.Order,
				Sets:  sets,
			})
		}
		sections = append(sections, domain.Section{
			Format:    sec.Format,
			Type:      sec.Type,
			IsRestDay: sec.IsRestDay,
			Order:     sec.Order,
			Exercises: exercises,
		})
	}
	return service.ProgramInput{
		Name:          r.Name,
		Description:   r.Description,
		Focuses:       r.Focuses,
		Difficulty:    r.Difficulty,
		SessionLength: r.SessionLength,
		Sections:      sections,
		IsDraft:       r.IsDraft,
	}
}

func toProgramResponse(p *domain.Program) ProgramResponse {
	return ProgramResponse{Program: *p, WeeklyFrequency: p.WeeklyFrequency()}
}

func toProgramResponses(programs []domain.Program) []ProgramResponse {
	out := make([]ProgramResponse, 0, len(programs))
	for i := range programs {
		out = append(out, toProgramResponse(&programs[i]))
	}
	return out
}

// --- Handler Methods ---

// CreateProgram godoc
// @Summary Create a workout program (trainers only)
// @Description Creates a program with its nested sections, exercises and sets
// in a single request.
// @Tags Programs
// @Accept json
// @Produce json
// @Param program body ProgramRequest true "Program details"
// @Success 201 {object} ProgramResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Trainers only"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/programs/ [post]
func (h *ProgramHandler) CreateProgram(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	program, err := h.programService.CreateProgram(c.Request.Context(), trainerID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTrainersOnly):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create program")
		}
		return
	}
	c.JSON(http.StatusCreated, toProgramResponse(program))
}

// ListPrograms godoc
// @Summary List browsable published programs
// @Tags Programs
// @Produce json
// @Success 200 {array} ProgramResponse
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/programs/ [get]
func (h *ProgramHandler) ListPrograms(c *gin.Context) {
	programs, err := h.programService.ListPublished(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load programs")
		return
	}
	c.JSON(http.StatusOK, toProgramResponses(programs))
}

// GetProgram godoc
// @Summary Get a single program
// @Tags Programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} ProgramResponse
// @Failure 400 {object} gin.H "Invalid program ID"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/programs/{id}/ [get]
func (h *ProgramHandler) GetProgram(c *gin.Context) {
	programID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	program, err := h.programService.GetProgramByID(c.Request.Context(), programID)
	if err != nil {
		if errors.Is(err, service.ErrProgramNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load program")
		}
		return
	}
	c.JSON(http.StatusOK, toProgramResponse(program))
}

// DeleteProgram godoc
// @Summary Soft-delete a program (authoring trainer only)
// @Tags Programs
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} gin.H "Program deleted"
// @Failure 400 {object} gin.H "Invalid program ID"
// @Failure 403 {object} gin.H "Not the program author"
// @Failure 404 {object} gin.H "Program not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/programs/{id}/ [delete]
func (h *ProgramHandler) DeleteProgram(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	programID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.programService.DeleteProgram(c.Request.Context(), trainerID, programID); err != nil {
		switch {
		case errors.Is(err, service.ErrProgramAccessDenied):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrProgramNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to delete program")
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "program deleted"})
}

// GetUserPrograms godoc
// @Summary List a trainer's programs
// @Description Soft-deleted programs are included only when the include_deleted
// query flag is set and the requester is the trainer themselves.
// @Tags Programs
// @Produce json
// @Param id path string true "Trainer user ID"
// @Param include_deleted query bool false "Include soft-deleted programs"
// @Success 200 {object} service.TrainerPrograms
// @Failure 400 {object} gin.H "Invalid user ID"
// @Failure 404 {object} gin.H "User not found or not a trainer"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/users/{id}/programs/ [get]
func (h *ProgramHandler) GetUserPrograms(c *gin.Context) {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	// Only the owner may see their own deleted programs.
	includeDeleted := c.Query("include_deleted") == "true" && viewerID == userID

	result, err := h.programService.GetTrainerPrograms(c.Request.Context(), userID, includeDeleted)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load programs")
		}
		return
	}
	c.JSON(http.StatusOK, result)
}
