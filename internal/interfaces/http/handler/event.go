package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/localloop/backend/internal/application/catalog"
	"github.com/localloop/backend/internal/domain/shared"
	"github.com/localloop/backend/internal/infrastructure/telemetry"
)

// EventHandler handles event catalog HTTP requests
type EventHandler struct {
	BaseHandler
	eventService *catalog.EventService
	metrics      *telemetry.CatalogMetrics
}

// EventHandlerOption configures an EventHandler
type EventHandlerOption func(*EventHandler)

// WithCatalogMetrics attaches business metric instruments to the handler
func WithCatalogMetrics(metrics *telemetry.CatalogMetrics) EventHandlerOption {
	return func(h *EventHandler) {
		h.metrics = metrics
	}
}

// NewEventHandler creates a new event handler
func NewEventHandler(eventService *catalog.EventService, opts ...EventHandlerOption) *EventHandler {
	h := &EventHandler{eventService: eventService}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// List godoc
// @ID           listEvents
// @Summary      List events
// @Description  List published events with optional category, search and price filters
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Param        category query string false "Category filter"
// @Param        search query string false "Title search"
// @Param        min_price query int false "Minimum price in paise"
// @Param        max_price query int false "Maximum price in paise"
// @Success      200 {object} ListAPIResponse[catalog.EventResponse]
// @Failure      401 {object} ErrorResponse
// @Router       /events [get]
func (h *EventHandler) List(c *gin.Context) {
	var filter catalog.EventListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, "Invalid query parameters")
		return
	}

	events, total, err := h.eventService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, events, total, filter.Page, filter.PageSize)
}

// GetByID godoc
// @ID           getEvent
// @Summary      Get event details
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200 {object} APIResponse[catalog.EventResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) GetByID(c *gin.Context) {
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := h.eventService.GetByID(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// Create godoc
// @ID           createEvent
// @Summary      Create an event
// @Description  Publish a new event hosted by the authenticated user
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body catalog.CreateEventRequest true "Event details"
// @Success      201 {object} APIResponse[catalog.EventResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req catalog.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordEventCreated(c.Request.Context(), event.Category)
	}
	h.Created(c, event)
}

// Update godoc
// @ID           updateEvent
// @Summary      Update an event
// @Description  Update a draft or published event owned by the authenticated organizer
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        request body catalog.UpdateEventRequest true "Fields to update"
// @Success      200 {object} APIResponse[catalog.EventResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	event, err := h.eventService.Update(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

// Cancel godoc
// @ID           cancelEvent
// @Summary      Cancel an event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200 {object} APIResponse[catalog.EventResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /events/{id}/cancel [post]
func (h *EventHandler) Cancel(c *gin.Context) {
	h.transition(c, h.eventService.Cancel)
}

// Complete godoc
// @ID           completeEvent
// @Summary      Mark an event completed
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200 {object} APIResponse[catalog.EventResponse]
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /events/{id}/complete [post]
func (h *EventHandler) Complete(c *gin.Context) {
	h.transition(c, h.eventService.Complete)
}

// Join godoc
// @ID           joinEvent
// @Summary      Join an event
// @Description  Register the authenticated user as an attendee
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        request body catalog.JoinEventRequest false "Registration details"
// @Success      201 {object} APIResponse[catalog.AttendeeResponse]
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /events/{id}/join [post]
func (h *EventHandler) Join(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	req := catalog.JoinEventRequest{PaymentStatus: "free"}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BadRequest(c, "Invalid request body")
			return
		}
	}

	attendee, err := h.eventService.Join(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.recordRegistration(c, err)
		h.HandleError(c, err)
		return
	}

	h.recordRegistration(c, nil)
	h.Created(c, attendee)
}

// Leave godoc
// @ID           leaveEvent
// @Summary      Leave an event
// @Description  Remove the authenticated user's registration
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      204 "No Content"
// @Failure      404 {object} ErrorResponse
// @Router       /events/{id}/leave [delete]
func (h *EventHandler) Leave(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.eventService.Leave(c.Request.Context(), userID, eventID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Attendees godoc
// @ID           listEventAttendees
// @Summary      List event attendees
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200 {object} ListAPIResponse[catalog.AttendeeResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /events/{id}/attendees [get]
func (h *EventHandler) Attendees(c *gin.Context) {
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	attendees, err := h.eventService.Attendees(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessList(c, attendees, len(attendees))
}

// CreateReview godoc
// @ID           createEventReview
// @Summary      Review an event
// @Description  Leave a rating and comment on a completed event the user attended
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Param        request body catalog.CreateReviewRequest true "Review"
// @Success      201 {object} APIResponse[catalog.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /events/{id}/reviews [post]
func (h *EventHandler) CreateReview(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req catalog.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	review, err := h.eventService.AddReview(c.Request.Context(), userID, eventID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordReview(c.Request.Context())
	}
	h.Created(c, review)
}

// ListReviews godoc
// @ID           listEventReviews
// @Summary      List event reviews
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Event ID"
// @Success      200 {object} ListAPIResponse[catalog.ReviewResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /events/{id}/reviews [get]
func (h *EventHandler) ListReviews(c *gin.Context) {
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.eventService.Reviews(c.Request.Context(), eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessList(c, reviews, len(reviews))
}

type transitionFunc func(ctx context.Context, userID, eventID uuid.UUID) (*catalog.EventResponse, error)

func (h *EventHandler) transition(c *gin.Context, fn transitionFunc) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	eventID, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	event, err := fn(c.Request.Context(), userID, eventID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, event)
}

func (h *EventHandler) recordRegistration(c *gin.Context, err error) {
	if h.metrics == nil {
		return
	}

	outcome := "joined"
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		switch domainErr.Code {
		case shared.ErrEventFull.Code:
			outcome = "full"
		case shared.ErrAlreadyExists.Code:
			outcome = "duplicate"
		default:
			return
		}
	} else if err != nil {
		return
	}

	h.metrics.RecordRegistration(c.Request.Context(), outcome)
}
