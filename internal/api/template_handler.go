package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// TemplateHandler holds the template service dependency.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- Request/Response Structs ---

type TemplateRequest struct {
	Name                   string              `json:"name" binding:"required"`
	Description            string              `json:"description"`
	MuscleGroups           []string            `json:"muscle_groups"`
	ExerciseType           domain.ExerciseType `json:"exercise_type" binding:"required,oneof=reps time"`
	DefaultRecommendations string              `json:"default_recommendations"`
}

type MediaUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// --- Handler Methods ---

// CreateTemplate godoc
// @Summary Create an exercise template (trainers only)
// @Tags Templates
// @Accept json
// @Produce json
// @Param template body TemplateRequest true "Template fields"
// @Success 201 {object} domain.ExerciseTemplate
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Template name already exists"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/templates/ [post]
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req TemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), trainerID, service.TemplateInput{
		Name:                   req.Name,
		Description:            req.Description,
		MuscleGroups:           req.MuscleGroups,
		ExerciseType:           req.ExerciseType,
		DefaultRecommendations: req.DefaultRecommendations,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create template")
		}
		return
	}
	c.JSON(http.StatusCreated, template)
}

// ListTemplates godoc
// @Summary List all exercise templates
// @Description Includes seeded defaults and trainer-created templates, with
// presigned media URLs where demo media exists.
// @Tags Templates
// @Produce json
// @Success 200 {array} service.TemplateView
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/templates/ [get]
func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	templates, err := h.templateService.ListTemplates(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}

// GetTemplate godoc
// @Summary Get a single exercise template
// @Tags Templates
// @Produce json
// @Param id path string true "Template ID"
// @Success 200 {object} service.TemplateView
// @Failure 400 {object} gin.H "Invalid template ID"
// @Failure 404 {object} gin.H "Template not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/templates/{id}/ [get]
func (h *TemplateHandler) GetTemplate(c *gin.Context) {
	templateID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	template, err := h.templateService.GetTemplateByID(c.Request.Context(), templateID)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load template")
		}
		return
	}
	c.JSON(http.StatusOK, template)
}

// RequestMediaUpload godoc
// @Summary Get a presigned upload URL for template demo media
// @Description Only the trainer who created the template may attach media.
// @Tags Templates
// @Accept json
// @Produce json
// @Param id path string true "Template ID"
// @Param upload body MediaUploadRequest true "Content type of the upload"
// @Success 200 {object} service.MediaUpload
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Template not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/templates/{id}/media-upload-url/ [post]
func (h *TemplateHandler) RequestMediaUpload(c *gin.Context) {
	trainerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	templateID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	var req MediaUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	upload, err := h.templateService.RequestMediaUpload(c.Request.Context(), trainerID, templateID, req.ContentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create upload URL")
		}
		return
	}
	c.JSON(http.StatusOK, upload)
}
