package models

// Attendee defines a user's answer to an event, based on the 'attendees' table
type Attendee struct {
	ID      int64          `json:"id" db:"id"`
	EventID int64          `json:"eventId" db:"event_id"`
	UserID  int64          `json:"userId" db:"user_id"`
	Answer  AttendeeAnswer `json:"answer" db:"answer" example:"Accepted"`
}
