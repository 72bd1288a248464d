package api

import (
	"errors"
	"fmt"
	"net/http"

	"fitiva/workout-app/internal/domain"
	"fitiva/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- Request/Response Structs ---

type ProfileRequest struct {
	Age              *int                    `json:"age"`
	ExperienceLevel  domain.ExperienceLevel  `json:"experience_level" binding:"required"`
	TrainingLocation domain.TrainingLocation `json:"training_location" binding:"required"`
	FitnessFocus     []domain.FocusTag       `json:"fitness_focus"`
}

type TrainerProfileRequest struct {
	Bio                     string `json:"bio"`
	YearsOfExperience       int    `json:"years_of_experience"`
	SpecialtyStrength       bool   `json:"specialty_strength"`
	SpecialtyCardio         bool   `json:"specialty_cardio"`
	SpecialtyFlexibility    bool   `json:"specialty_flexibility"`
	SpecialtySports         bool   `json:"specialty_sports"`
	SpecialtyRehabilitation bool   `json:"specialty_rehabilitation"`
	Certifications          string `json:"certifications"`
}

func (r ProfileRequest) toInput() service.ProfileInput {
	return service.ProfileInput{
		Age:              r.Age,
		ExperienceLevel:  r.ExperienceLevel,
		TrainingLocation: r.TrainingLocation,
		Focuses:          r.FitnessFocus,
	}
}

// --- Handler Methods ---

// CreateProfile godoc
// @Summary Create the authenticated user's fitness profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile fields"
// @Success 201 {object} domain.FitnessProfile
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 409 {object} gin.H "Profile already exists"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/profile/create/ [post]
func (h *ProfileHandler) CreateProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.CreateProfile(c.Request.Context(), userID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileAlreadyExists):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to create profile")
		}
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// GetMyProfile godoc
// @Summary Get the authenticated user's fitness profile
// @Tags Profiles
// @Produce json
// @Success 200 {object} domain.FitnessProfile
// @Failure 404 {object} gin.H "Profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/profile/me/ [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrProfileNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile godoc
// @Summary Update the authenticated user's fitness profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body ProfileRequest true "Profile fields"
// @Success 200 {object} domain.FitnessProfile
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 404 {object} gin.H "Profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/profile/me/ [put]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProfileNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetUserProfile godoc
// @Summary Get another user's public profile
// @Description Email is included only when viewing your own profile.
// @Tags Profiles
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} service.PublicProfile
// @Failure 400 {object} gin.H "Invalid user ID"
// @Failure 404 {object} gin.H "User not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/users/{id}/profile/ [get]
func (h *ProfileHandler) GetUserProfile(c *gin.Context) {
	viewerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}
	userID, ok := parseObjectIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.GetPublicProfile(c.Request.Context(), viewerID, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to load profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateTrainerProfile godoc
// @Summary Update the authenticated trainer's extended profile
// @Tags Profiles
// @Accept json
// @Produce json
// @Param profile body TrainerProfileRequest true "Trainer profile fields"
// @Success 200 {object} domain.TrainerProfile
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 403 {object} gin.H "Not a trainer"
// @Failure 404 {object} gin.H "Trainer profile not found"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/trainer/profile/ [put]
func (h *ProfileHandler) UpdateTrainerProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	var req TrainerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateTrainerProfile(c.Request.Context(), userID, domain.TrainerProfile{
		Bio:                     req.Bio,
		YearsOfExperience:       req.YearsOfExperience,
		SpecialtyStrength:       req.SpecialtyStrength,
		SpecialtyCardio:         req.SpecialtyCardio,
		SpecialtyFlexibility:    req.SpecialtyFlexibility,
		SpecialtySports:         req.SpecialtySports,
		SpecialtyRehabilitation: req.SpecialtyRehabilitation,
		Certifications:          req.Certifications,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotATrainer):
			abortWithError(c, http.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrProfileNotFound), errors.Is(err, service.ErrUserNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Failed to update trainer profile")
		}
		return
	}
	c.JSON(http.StatusOK, profile)
}
