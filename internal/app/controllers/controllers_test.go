package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/middleware"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
	"github.com/yigit/eventsphere/internal/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := validation.RegisterGinRules(); err != nil {
		panic(err)
	}
}

// asUser authenticates every request as userID; 0 leaves the request anonymous
func asUser(userID int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID > 0 {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	}
}

func doRequest(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// envelope mirrors dto.APIResponse with a raw data payload
type envelope struct {
	Data  json.RawMessage  `json:"data"`
	Error *dto.ErrorDetail `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data any) *dto.ErrorDetail {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	if data != nil && env.Data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env.Error
}

type stubEventService struct {
	lastFilters models.EventListFilters
	lastUserID  int64
	lastPatch   models.EventPatch
	events      map[int64]*models.Event
}

func newStubEventService() *stubEventService {
	organizer := int64(1)
	return &stubEventService{events: map[int64]*models.Event{
		1: {ID: 1, Name: "Go meetup", OrganizerID: &organizer},
	}}
}

func (s *stubEventService) page() *pagination.Result[models.Event] {
	data := []models.Event{}
	for _, e := range s.events {
		data = append(data, *e)
	}
	return &pagination.Result[models.Event]{Total: int64(len(data)), Data: data}
}

func (s *stubEventService) ListEvents(_ context.Context, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	s.lastFilters = filters
	return s.page(), nil
}

func (s *stubEventService) ListEventsOrganizedBy(_ context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	s.lastUserID, s.lastFilters = userID, filters
	return s.page(), nil
}

func (s *stubEventService) ListEventsAttendedBy(_ context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	s.lastUserID, s.lastFilters = userID, filters
	return pagination.Empty[models.Event](), nil
}

func (s *stubEventService) GetEventDetail(_ context.Context, id int64) (*models.Event, error) {
	if e, ok := s.events[id]; ok {
		return e, nil
	}
	return nil, apperrors.ErrEventNotFound
}

func (s *stubEventService) CreateEvent(_ context.Context, req *dto.CreateEventRequest, userID int64) (*models.Event, error) {
	e := &models.Event{ID: int64(len(s.events) + 1), Name: req.Name, Description: req.Description, Address: req.Address, OrganizerID: &userID}
	s.events[e.ID] = e
	return e, nil
}

func (s *stubEventService) UpdateEvent(_ context.Context, id int64, patch models.EventPatch, userID int64) (*models.Event, error) {
	s.lastPatch = patch
	e, ok := s.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	if !e.IsOrganizedBy(userID) {
		return nil, apperrors.ErrNotEventOrganizer
	}
	if patch.Name != nil {
		e.Name = *patch.Name
	}
	return e, nil
}

func (s *stubEventService) DeleteEvent(_ context.Context, id, userID int64) error {
	e, ok := s.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	if !e.IsOrganizedBy(userID) {
		return apperrors.ErrNotEventOrganizer
	}
	delete(s.events, id)
	return nil
}

type stubAttendeeService struct {
	answers map[[2]int64]*models.Attendee
}

func (s *stubAttendeeService) ListEventAttendees(_ context.Context, eventID int64) ([]models.Attendee, error) {
	out := []models.Attendee{}
	for key, a := range s.answers {
		if key[0] == eventID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *stubAttendeeService) GetAttendance(_ context.Context, eventID, userID int64) (*models.Attendee, error) {
	if a, ok := s.answers[[2]int64{eventID, userID}]; ok {
		return a, nil
	}
	return nil, apperrors.ErrAttendeeNotFound
}

func (s *stubAttendeeService) CreateOrUpdateAttendee(_ context.Context, eventID, userID int64, answer models.AttendeeAnswer) (*models.Attendee, error) {
	key := [2]int64{eventID, userID}
	a, ok := s.answers[key]
	if !ok {
		a = &models.Attendee{ID: int64(len(s.answers) + 1), EventID: eventID, UserID: userID}
		s.answers[key] = a
	}
	a.Answer = answer
	return a, nil
}

func rawData(t *testing.T, w *httptest.ResponseRecorder) json.RawMessage {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env.Data
}

func doAuthorized(router http.Handler, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
