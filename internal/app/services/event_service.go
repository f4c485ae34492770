package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	appauth "github.com/yigit/eventsphere/internal/app/auth"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/helpers"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
)

// EventService defines the interface for event-related operations
type EventService interface {
	ListEvents(ctx context.Context, filters models.EventListFilters) (*pagination.Result[models.Event], error)
	ListEventsOrganizedBy(ctx context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error)
	ListEventsAttendedBy(ctx context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error)
	GetEventDetail(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, req *dto.CreateEventRequest, userID int64) (*models.Event, error)
	UpdateEvent(ctx context.Context, id int64, patch models.EventPatch, userID int64) (*models.Event, error)
	DeleteEvent(ctx context.Context, id, userID int64) error
}

// eventServiceImpl implements the EventService interface
type eventServiceImpl struct {
	eventRepo    EventStore
	attendeeRepo AttendeeStore
	authzService *appauth.AuthorizationService
	logger       zerolog.Logger
}

// NewEventService creates a new event service instance
func NewEventService(eventRepo EventStore, attendeeRepo AttendeeStore, authzService *appauth.AuthorizationService, logger zerolog.Logger) EventService {
	return &eventServiceImpl{
		eventRepo:    eventRepo,
		attendeeRepo: attendeeRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// ListEvents returns a page of events with attendee counts
func (s *eventServiceImpl) ListEvents(ctx context.Context, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	return s.eventRepo.ListEvents(ctx, filters)
}

// ListEventsOrganizedBy returns a page of the user's events with attendee counts
func (s *eventServiceImpl) ListEventsOrganizedBy(ctx context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	if userID <= 0 {
		return nil, apperrors.NewValidationError("invalid user ID")
	}
	filters.OrganizerID = &userID
	return s.eventRepo.ListEvents(ctx, filters)
}

// ListEventsAttendedBy returns a page of events the user answered
func (s *eventServiceImpl) ListEventsAttendedBy(ctx context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	if userID <= 0 {
		return nil, apperrors.NewValidationError("invalid user ID")
	}
	return s.eventRepo.ListEventsAttendedBy(ctx, userID, filters)
}

// GetEventDetail returns an event with its attendee counts and attendees
func (s *eventServiceImpl) GetEventDetail(ctx context.Context, id int64) (*models.Event, error) {
	event, err := s.eventRepo.GetEventWithCounts(ctx, id)
	if err != nil {
		return nil, err
	}

	attendees, err := s.attendeeRepo.ListByEventID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error retrieving event attendees: %w", err)
	}
	event.Attendees = attendees

	return event, nil
}

// CreateEvent creates an event organized by userID
func (s *eventServiceImpl) CreateEvent(ctx context.Context, req *dto.CreateEventRequest, userID int64) (*models.Event, error) {
	when, err := helpers.ParseDateTime(req.When)
	if err != nil {
		return nil, err
	}

	event := &models.Event{
		Name:        req.Name,
		Description: req.Description,
		When:        when,
		Address:     req.Address,
		OrganizerID: &userID,
	}

	id, err := s.eventRepo.CreateEvent(ctx, event)
	if err != nil {
		return nil, err
	}
	event.ID = id

	s.logger.Info().Int64("eventID", id).Int64("organizerID", userID).Msg("Event created")
	return event, nil
}

// UpdateEvent merges patch into the event if userID organizes it
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, id int64, patch models.EventPatch, userID int64) (*models.Event, error) {
	event, err := s.authzService.ValidateEventOrganizer(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := applyEventPatch(event, patch); err != nil {
		return nil, err
	}

	updated, err := s.eventRepo.UpdateEvent(ctx, event, userID)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, s.resolveLostWrite(ctx, id, userID)
	}

	return event, nil
}

// DeleteEvent deletes the event if userID organizes it
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, id, userID int64) error {
	if _, err := s.authzService.ValidateEventOrganizer(ctx, id, userID); err != nil {
		return err
	}

	deleted, err := s.eventRepo.DeleteEvent(ctx, id, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return s.resolveLostWrite(ctx, id, userID)
	}

	s.logger.Info().Int64("eventID", id).Int64("organizerID", userID).Msg("Event deleted")
	return nil
}

// resolveLostWrite explains why a conditional write matched no row:
// the event was deleted or changed hands after the ownership check.
func (s *eventServiceImpl) resolveLostWrite(ctx context.Context, id, userID int64) error {
	_, err := s.authzService.ValidateEventOrganizer(ctx, id, userID)
	if err == nil || errors.Is(err, apperrors.ErrPermissionDenied) {
		return apperrors.ErrNotEventOrganizer
	}
	return err
}

func applyEventPatch(event *models.Event, patch models.EventPatch) error {
	if patch.Name != nil {
		event.Name = *patch.Name
	}
	if patch.Description != nil {
		event.Description = *patch.Description
	}
	if patch.Address != nil {
		event.Address = *patch.Address
	}
	if patch.When != nil {
		when, err := helpers.ParseDateTime(*patch.When)
		if err != nil {
			return err
		}
		event.When = when
	}
	return nil
}
