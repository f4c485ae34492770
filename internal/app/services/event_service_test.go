package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appauth "github.com/yigit/eventsphere/internal/app/auth"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
)

type eventFixture struct {
	db        *memoryDB
	events    EventService
	attendees AttendeeService
}

func newEventFixture() *eventFixture {
	mem := newMemoryDB()
	eventRepo := fakeEventStore{db: mem}
	attendeeRepo := fakeAttendeeStore{db: mem}
	authz := appauth.NewAuthorizationService(eventRepo)
	return &eventFixture{
		db:        mem,
		events:    NewEventService(eventRepo, attendeeRepo, authz, zerolog.Nop()),
		attendees: NewAttendeeService(eventRepo, attendeeRepo, zerolog.Nop()),
	}
}

func (f *eventFixture) createEvent(t *testing.T, name string, organizerID int64) *models.Event {
	t.Helper()
	event, err := f.events.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Name:        name,
		Description: "description",
		When:        "2025-05-01T18:00:00Z",
		Address:     "Main street 1",
	}, organizerID)
	require.NoError(t, err)
	return event
}

func u64(v uint64) *uint64 { return &v }

func TestCreateEventSetsOrganizer(t *testing.T) {
	f := newEventFixture()

	event := f.createEvent(t, "Go meetup", 1)

	assert.NotZero(t, event.ID)
	require.NotNil(t, event.OrganizerID)
	assert.Equal(t, int64(1), *event.OrganizerID)
	assert.Equal(t, time.Date(2025, 5, 1, 18, 0, 0, 0, time.UTC), event.When.UTC())
}

func TestCreateEventRejectsBadDate(t *testing.T) {
	f := newEventFixture()

	_, err := f.events.CreateEvent(context.Background(), &dto.CreateEventRequest{
		Name: "Go meetup", Description: "description", When: "next tuesday", Address: "Main street 1",
	}, 1)

	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Empty(t, f.db.events)
}

func TestListEventsNewestFirst(t *testing.T) {
	f := newEventFixture()
	a := f.createEvent(t, "Event A", 1)
	b := f.createEvent(t, "Event B", 1)

	result, err := f.events.ListEventsOrganizedBy(context.Background(), 1, models.EventListFilters{})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Data, 2)
	assert.Equal(t, b.ID, result.Data[0].ID)
	assert.Equal(t, a.ID, result.Data[1].ID)
}

func TestListEventsOffsetPastEnd(t *testing.T) {
	f := newEventFixture()
	f.createEvent(t, "Event A", 1)
	f.createEvent(t, "Event B", 2)

	result, err := f.events.ListEvents(context.Background(), models.EventListFilters{Limit: u64(10), Offset: u64(1000)})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
}

func TestEventDetailCountsAnswers(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()
	event := f.createEvent(t, "Go meetup", 1)

	for userID, answer := range map[int64]models.AttendeeAnswer{
		10: models.AnswerAccepted,
		11: models.AnswerAccepted,
		12: models.AnswerMaybe,
	} {
		_, err := f.attendees.CreateOrUpdateAttendee(ctx, event.ID, userID, answer)
		require.NoError(t, err)
	}

	detail, err := f.events.GetEventDetail(ctx, event.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), *detail.AttendeeCount)
	assert.Equal(t, int64(2), *detail.AttendeeAccepted)
	assert.Equal(t, int64(1), *detail.AttendeeMaybe)
	assert.Equal(t, int64(0), *detail.AttendeeRejected)
	assert.Len(t, detail.Attendees, 3)
}

func TestGetEventDetailNotFound(t *testing.T) {
	f := newEventFixture()

	_, err := f.events.GetEventDetail(context.Background(), 42)

	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestUpdateEvent(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()
	event := f.createEvent(t, "Go meetup", 1)

	t.Run("organizer merges fields", func(t *testing.T) {
		name := "Go meetup #2"
		when := "2025-06-01"
		updated, err := f.events.UpdateEvent(ctx, event.ID, models.EventPatch{Name: &name, When: &when}, 1)
		require.NoError(t, err)

		assert.Equal(t, name, updated.Name)
		assert.Equal(t, "description", updated.Description)
		assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), updated.When.UTC())
		assert.Equal(t, name, f.db.events[event.ID].Name)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		name := "Hijacked"
		_, err := f.events.UpdateEvent(ctx, event.ID, models.EventPatch{Name: &name}, 2)

		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
		assert.NotEqual(t, name, f.db.events[event.ID].Name)
	})

	t.Run("missing event", func(t *testing.T) {
		_, err := f.events.UpdateEvent(ctx, 999, models.EventPatch{}, 1)
		assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	})
}

func TestDeleteEvent(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()
	event := f.createEvent(t, "Go meetup", 1)
	_, err := f.attendees.CreateOrUpdateAttendee(ctx, event.ID, 5, models.AnswerAccepted)
	require.NoError(t, err)

	err = f.events.DeleteEvent(ctx, event.ID, 2)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.Contains(t, f.db.events, event.ID)

	require.NoError(t, f.events.DeleteEvent(ctx, event.ID, 1))
	assert.NotContains(t, f.db.events, event.ID)
	assert.Empty(t, f.db.attendees)

	err = f.events.DeleteEvent(ctx, event.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

func TestListEventsAttendedBy(t *testing.T) {
	f := newEventFixture()
	ctx := context.Background()
	a := f.createEvent(t, "Event A", 1)
	f.createEvent(t, "Event B", 1)
	_, err := f.attendees.CreateOrUpdateAttendee(ctx, a.ID, 7, models.AnswerMaybe)
	require.NoError(t, err)

	result, err := f.events.ListEventsAttendedBy(ctx, 7, models.EventListFilters{})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Data, 1)
	assert.Equal(t, a.ID, result.Data[0].ID)
	assert.Nil(t, result.Data[0].AttendeeCount)
}
