package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/logger"
)

type contextKey struct{ name string }

var (
	userIDKey   = contextKey{"userID"}
	usernameKey = contextKey{"username"}
)

// WithUser returns a copy of ctx carrying the authenticated user
func WithUser(ctx context.Context, userID int64, username string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, usernameKey, username)
}

// UserIDFromContext returns the authenticated user's ID, if any
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok && id > 0
}

// UsernameFromContext returns the authenticated user's username, if any
func UsernameFromContext(ctx context.Context) (string, bool) {
	name, ok := ctx.Value(usernameKey).(string)
	return name, ok && name != ""
}

// RequireUserID returns the authenticated user's ID or ErrUnauthenticated
func RequireUserID(ctx context.Context) (int64, error) {
	id, ok := UserIDFromContext(ctx)
	if !ok {
		return 0, apperrors.ErrUnauthenticated
	}
	return id, nil
}

// EventFinder loads events for ownership checks
type EventFinder interface {
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
}

// AuthorizationService handles authorization operations
type AuthorizationService struct {
	events EventFinder
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(events EventFinder) *AuthorizationService {
	return &AuthorizationService{events: events}
}

// CanModifyEvent checks if the user organizes the event
func (s *AuthorizationService) CanModifyEvent(ctx context.Context, eventID, userID int64) (*models.Event, bool, error) {
	event, err := s.events.GetEventByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) {
			return nil, false, err
		}
		logger.Error().Err(err).Int64("eventID", eventID).Msg("Error getting event in CanModifyEvent")
		return nil, false, fmt.Errorf("failed to check event ownership: %w", err)
	}
	return event, event.IsOrganizedBy(userID), nil
}

// ValidateEventOrganizer returns the event if the user organizes it, ErrNotEventOrganizer otherwise
func (s *AuthorizationService) ValidateEventOrganizer(ctx context.Context, eventID, userID int64) (*models.Event, error) {
	event, canModify, err := s.CanModifyEvent(ctx, eventID, userID)
	if err != nil {
		return nil, err
	}
	if !canModify {
		logger.Warn().Int64("eventID", eventID).Int64("userID", userID).Msg("User is not the organizer of the event")
		return nil, apperrors.ErrNotEventOrganizer
	}
	return event, nil
}
