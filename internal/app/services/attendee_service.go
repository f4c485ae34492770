package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
)

// AttendeeService defines the interface for attendance operations
type AttendeeService interface {
	ListEventAttendees(ctx context.Context, eventID int64) ([]models.Attendee, error)
	GetAttendance(ctx context.Context, eventID, userID int64) (*models.Attendee, error)
	CreateOrUpdateAttendee(ctx context.Context, eventID, userID int64, answer models.AttendeeAnswer) (*models.Attendee, error)
}

// attendeeServiceImpl implements the AttendeeService interface
type attendeeServiceImpl struct {
	eventRepo    EventStore
	attendeeRepo AttendeeStore
	logger       zerolog.Logger
}

// NewAttendeeService creates a new attendee service instance
func NewAttendeeService(eventRepo EventStore, attendeeRepo AttendeeStore, logger zerolog.Logger) AttendeeService {
	return &attendeeServiceImpl{
		eventRepo:    eventRepo,
		attendeeRepo: attendeeRepo,
		logger:       logger,
	}
}

// ListEventAttendees returns every answer given to the event
func (s *attendeeServiceImpl) ListEventAttendees(ctx context.Context, eventID int64) ([]models.Attendee, error) {
	if _, err := s.eventRepo.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	attendees, err := s.attendeeRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving event attendees: %w", err)
	}
	return attendees, nil
}

// GetAttendance returns the user's answer to the event
func (s *attendeeServiceImpl) GetAttendance(ctx context.Context, eventID, userID int64) (*models.Attendee, error) {
	return s.attendeeRepo.FindByEventAndUser(ctx, eventID, userID)
}

// CreateOrUpdateAttendee records the user's answer, replacing any previous one
func (s *attendeeServiceImpl) CreateOrUpdateAttendee(ctx context.Context, eventID, userID int64, answer models.AttendeeAnswer) (*models.Attendee, error) {
	if answer == "" {
		answer = models.AnswerAccepted
	}
	if !answer.Valid() {
		return nil, apperrors.ErrInvalidAttendeeAnswer
	}

	if _, err := s.eventRepo.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	attendee, err := s.attendeeRepo.Upsert(ctx, eventID, userID, answer)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("eventID", eventID).Int64("userID", userID).Str("answer", string(answer)).Msg("Attendance recorded")
	return attendee, nil
}
