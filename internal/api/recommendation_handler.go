package api

import (
	"net/http"

	"fitiva/workout-app/internal/service"

	"github.com/gin-gonic/gin"
)

// RecommendationHandler holds the recommendation service dependency.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// Recommend godoc
// @Summary Get workout programs matching the user's fitness focuses
// @Description Returns published programs whose focus tags overlap the user's
// profile focuses. A missing or focus-less profile yields an empty result with
// a guidance message, not an error.
// @Tags Recommendations
// @Produce json
// @Success 200 {object} service.RecommendationResult
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /api/recommendations/ [get]
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
		return
	}

	result, err := h.recommendationService.Recommend(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to compute recommendations")
		return
	}
	c.JSON(http.StatusOK, result)
}
