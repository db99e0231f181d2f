package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/localloop/backend/internal/application/preference"
)

// PreferenceHandler handles user preference HTTP requests
type PreferenceHandler struct {
	BaseHandler
	service *preference.Service
}

// NewPreferenceHandler creates a new preference handler
func NewPreferenceHandler(service *preference.Service) *PreferenceHandler {
	return &PreferenceHandler{service: service}
}

// Get godoc
// @ID           getUserPreferences
// @Summary      Get preferences
// @Description  Return the authenticated user's recommendation preferences
// @Tags         user
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[preference.PreferenceResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /user/preferences [get]
func (h *PreferenceHandler) Get(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.service.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Update godoc
// @ID           updateUserPreferences
// @Summary      Update preferences
// @Description  Replace the authenticated user's recommendation preferences
// @Tags         user
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body preference.UpdatePreferenceRequest true "Preferences"
// @Success      200 {object} APIResponse[preference.PreferenceResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /user/preferences [put]
func (h *PreferenceHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req preference.UpdatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.service.Update(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}
