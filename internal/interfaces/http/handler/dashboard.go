package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/localloop/backend/internal/application/catalog"
)

// DashboardHandler handles organizer dashboard HTTP requests
type DashboardHandler struct {
	BaseHandler
	service *catalog.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *catalog.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Overview godoc
// @ID           getOrganizerDashboard
// @Summary      Organizer dashboard
// @Description  Aggregate stats and per-event revenue for the authenticated organizer
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[catalog.DashboardResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /organizer/dashboard [get]
func (h *DashboardHandler) Overview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	result, err := h.service.Overview(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Attendees godoc
// @ID           getOrganizerAttendees
// @Summary      Recent attendees
// @Description  Most recent registrations across the organizer's events
// @Tags         organizer
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Maximum rows" default(20)
// @Success      200 {object} ListAPIResponse[catalog.AttendeeResponse]
// @Failure      401 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Router       /organizer/attendees [get]
func (h *DashboardHandler) Attendees(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit <= 0 {
		h.BadRequest(c, "Invalid limit parameter")
		return
	}

	attendees, err := h.service.RecentAttendees(c.Request.Context(), userID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessList(c, attendees, len(attendees))
}
