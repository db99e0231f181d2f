package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/localloop/backend/internal/application/recommendation"
)

// RecommendationHandler handles personalized event feed requests
type RecommendationHandler struct {
	BaseHandler
	service *recommendation.Service
}

// NewRecommendationHandler creates a new recommendation handler
func NewRecommendationHandler(service *recommendation.Service) *RecommendationHandler {
	return &RecommendationHandler{service: service}
}

// Recommended godoc
// @ID           getRecommendedEvents
// @Summary      Get recommended events
// @Description  Return published events matching the user's stored preferences, ordered by distance
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} ListAPIResponse[recommendation.RecommendedEvent]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /events/recommended [get]
func (h *RecommendationHandler) Recommended(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	results, err := h.service.Recommend(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessList(c, results, len(results))
}
