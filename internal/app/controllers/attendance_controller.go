package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/app/services"
	"github.com/yigit/eventsphere/internal/middleware"
)

// AttendanceController handles event attendance
type AttendanceController struct {
	attendeeService services.AttendeeService
	eventService    services.EventService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendeeService services.AttendeeService, eventService services.EventService) *AttendanceController {
	return &AttendanceController{
		attendeeService: attendeeService,
		eventService:    eventService,
	}
}

// ListEventAttendees godoc
// @Summary List the answers given to an event
// @Tags attendance
// @Produce json
// @Param id path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Attendee}
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Router /events/{id}/attendees [get]
func (c *AttendanceController) ListEventAttendees(ctx *gin.Context) {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	attendees, err := c.attendeeService.ListEventAttendees(ctx.Request.Context(), eventID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendees))
}

// ListMyAttendedEvents godoc
// @Summary List the events the current user answered
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse
// @Router /me/events-attendance [get]
func (c *AttendanceController) ListMyAttendedEvents(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	filters, err := parseEventListFilters(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	result, err := c.eventService.ListEventsAttendedBy(ctx.Request.Context(), userID, filters)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetMyAttendance godoc
// @Summary Get the current user's answer to an event
// @Tags attendance
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} dto.APIResponse{data=models.Attendee}
// @Failure 404 {object} dto.APIResponse "No answer recorded"
// @Router /me/events-attendance/{eventId} [get]
func (c *AttendanceController) GetMyAttendance(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	attendee, err := c.attendeeService.GetAttendance(ctx.Request.Context(), eventID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendee))
}

// PutMyAttendance godoc
// @Summary Record the current user's answer to an event
// @Description Creates the answer or replaces the previous one
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body dto.AttendanceRequest true "Answer"
// @Success 200 {object} dto.APIResponse{data=models.Attendee}
// @Failure 400 {object} dto.APIResponse "Invalid answer"
// @Failure 404 {object} dto.APIResponse "Event not found"
// @Router /me/events-attendance/{eventId} [put]
func (c *AttendanceController) PutMyAttendance(ctx *gin.Context) {
	userID, err := middleware.CurrentUserID(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	eventID, err := parseIDParam(ctx, "eventId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.AttendanceRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	attendee, err := c.attendeeService.CreateOrUpdateAttendee(ctx.Request.Context(), eventID, userID, req.Answer)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(attendee))
}
