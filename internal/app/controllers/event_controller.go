package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/app/services"
	"github.com/yigit/eventsphere/internal/middleware"
)

// EventController handles event related operations
type EventController struct {
	eventService services.EventService
}

// NewEventController creates a new EventController
func NewEventController(eventService services.EventService) *EventController {
	return &EventController{
		eventService: eventService,
	}
}

// ListEvents godoc
// @Summary List events
// @Description Returns a page of events with attendee counts, newest first
// @Tags events
// @Produce json
// @Param startDate query string false "Only events at or after this date"
// @Param endDate query string false "Only events at or before this date"
// @Param limit query int false "Page size (1-10, default 10)"
// @Param offset query int false "Rows to skip (default 0)"
// @Success 200 {object} dto.APIResponse "Events retrieved successfully"
// @Failure 400 {object} dto.APIResponse "Invalid filter or pagination parameters"
// @Router /events [get]
func (c *EventController) ListEvents(ctx *gin.Context) {
	filters, err := parseEventListFilters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.eventService.ListEvents(ctx.Request.Context(), filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// ListEventsByOrganizer godoc
// @Summary List events organized by a user
// @Tags events
// @Produce json
// @Param userId path int true "Organizer ID"
// @Success 200 {object} dto.APIResponse "Events retrieved successfully"
// @Router /users/{userId}/events [get]
func (c *EventController) ListEventsByOrganizer(ctx *gin.Context) {
	userID, err := parseIDParam(ctx, "userId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filters, err := parseEventListFilters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.eventService.ListEventsOrganizedBy(ctx.Request.Context(), userID, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetEvent godoc
// @Summary Get an event
// @Description Returns the event with its attendee counts and attendees
// @Tags events
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Router /events/{id} [get]
func (c *EventController) GetEvent(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	event, err := c.eventService.GetEventDetail(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEventRequest true "Event data"
// @Success 201 {object} dto.APIResponse{data=models.Event} "Event created successfully"
// @Failure 400 {object} dto.APIResponse "Invalid request"
// @Failure 401 {object} dto.APIResponse "Unauthorized"
// @Router /events [post]
func (c *EventController) CreateEvent(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.CreateEvent(ctx.Request.Context(), &req, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(event))
}

// UpdateEvent godoc
// @Summary Update an event
// @Description Only the organizer may update an event. Absent fields are kept.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Param request body dto.UpdateEventRequest true "Fields to change"
// @Success 200 {object} dto.APIResponse{data=models.Event} "Event updated successfully"
// @Failure 403 {object} dto.APIResponse "Not the organizer"
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Router /events/{id} [patch]
func (c *EventController) UpdateEvent(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateEventRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	event, err := c.eventService.UpdateEvent(ctx.Request.Context(), id, req.ToPatch(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(event))
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Only the organizer may delete an event. Its attendees are removed with it.
// @Tags events
// @Security BearerAuth
// @Param id path int true "Event ID"
// @Success 204 "Event deleted"
// @Failure 403 {object} dto.APIResponse "Not the organizer"
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Router /events/{id} [delete]
func (c *EventController) DeleteEvent(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.eventService.DeleteEvent(ctx.Request.Context(), id, userID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
