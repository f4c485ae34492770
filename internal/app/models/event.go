package models

import "time"

// Event defines the event model based on the 'events' table
type Event struct {
	ID          int64     `json:"id" db:"id" example:"1"`
	Name        string    `json:"name" db:"name" example:"Go meetup"`
	Description string    `json:"description" db:"description"`
	When        time.Time `json:"when" db:"when" example:"2025-05-01T18:00:00Z"`
	Address     string    `json:"address" db:"address"`
	OrganizerID *int64    `json:"organizerId" db:"organizer_id"` // NULL once the organizer is deleted

	// Derived per query; only set by listings that project them
	AttendeeCount    *int64 `json:"attendeeCount,omitempty"`
	AttendeeAccepted *int64 `json:"attendeeAccepted,omitempty"`
	AttendeeMaybe    *int64 `json:"attendeeMaybe,omitempty"`
	AttendeeRejected *int64 `json:"attendeeRejected,omitempty"`

	Attendees []Attendee `json:"attendees,omitempty"`
}

// IsOrganizedBy reports whether userID organizes the event
func (e *Event) IsOrganizedBy(userID int64) bool {
	return e.OrganizerID != nil && *e.OrganizerID == userID
}

// EventListFilters holds the raw listing criteria supplied by a caller.
// Dates are ISO-8601 strings and are parsed by the repository.
type EventListFilters struct {
	StartDate        string
	EndDate          string
	OrganizerID      *int64
	AttendedByUserID *int64
	Limit            *uint64
	Offset           *uint64
}

// EventPatch carries the optional fields of an event update
type EventPatch struct {
	Name        *string
	Description *string
	When        *string
	Address     *string
}
