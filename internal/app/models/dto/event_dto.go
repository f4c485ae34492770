package dto

import "github.com/yigit/eventsphere/internal/app/models"

// CreateEventRequest represents event creation data
type CreateEventRequest struct {
	Name        string `json:"name" binding:"required,min=5,max=255" example:"Go meetup"`
	Description string `json:"description" binding:"required,min=5,max=255" example:"Monthly talks"`
	When        string `json:"when" binding:"required" example:"2025-05-01T18:00:00Z"`
	Address     string `json:"address" binding:"required,min=5,max=255" example:"Main street 1"`
}

// UpdateEventRequest represents a partial event update; absent fields are kept
type UpdateEventRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=5,max=255"`
	Description *string `json:"description" binding:"omitempty,min=5,max=255"`
	When        *string `json:"when" binding:"omitempty"`
	Address     *string `json:"address" binding:"omitempty,min=5,max=255"`
}

// ToPatch converts the request into a model patch
func (r UpdateEventRequest) ToPatch() models.EventPatch {
	return models.EventPatch{
		Name:        r.Name,
		Description: r.Description,
		When:        r.When,
		Address:     r.Address,
	}
}

// EventListQuery represents the date filters of event listings
type EventListQuery struct {
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// AttendanceRequest represents the current user's answer to an event
type AttendanceRequest struct {
	Answer models.AttendeeAnswer `json:"answer" binding:"required,attendee_answer" example:"Accepted"`
}
