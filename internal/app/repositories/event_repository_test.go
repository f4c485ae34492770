package repositories

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
)

var (
	eventRowColumns      = []string{"id", "name", "description", "when", "address", "organizer_id"}
	eventCountRowColumns = append(append([]string{}, eventRowColumns...),
		"attendee_count", "attendee_accepted", "attendee_maybe", "attendee_rejected")
	eventWhen = time.Date(2024, 3, 1, 18, 0, 0, 0, time.UTC)
)

const attendeeCountColumnsSQL = "(SELECT COUNT(*) FROM attendees WHERE attendees.event_id = e.id) AS attendee_count, " +
	"(SELECT COUNT(*) FROM attendees WHERE attendees.event_id = e.id AND attendees.answer = $1) AS attendee_accepted, " +
	"(SELECT COUNT(*) FROM attendees WHERE attendees.event_id = e.id AND attendees.answer = $2) AS attendee_maybe, " +
	"(SELECT COUNT(*) FROM attendees WHERE attendees.event_id = e.id AND attendees.answer = $3) AS attendee_rejected"

func uint64Ptr(v uint64) *uint64 { return &v }

func TestEventRepository_ListEvents(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewEventRepository(mock)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM (SELECT 1 FROM events e WHERE (e.organizer_id = $1) ORDER BY e.id DESC) AS paginated")).
		WithArgs(int64(7)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta(attendeeCountColumnsSQL + " FROM events e WHERE (e.organizer_id = $4) ORDER BY e.id DESC LIMIT 10")).
		WithArgs("Accepted", "Maybe", "Rejected", int64(7)).
		WillReturnRows(pgxmock.NewRows(eventCountRowColumns).
			AddRow(int64(2), "Event B", "second", eventWhen, "Street 2", int64(7), int64(0), int64(0), int64(0), int64(0)).
			AddRow(int64(1), "Event A", "first", eventWhen, "Street 1", int64(7), int64(3), int64(2), int64(1), int64(0)))

	result, err := repo.ListEvents(context.Background(), models.EventListFilters{
		OrganizerID: int64Ptr(7),
		Limit:       uint64Ptr(10),
		Offset:      uint64Ptr(0),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	require.Len(t, result.Data, 2)
	assert.Equal(t, "Event B", result.Data[0].Name)

	eventA := result.Data[1]
	assert.Equal(t, int64(3), *eventA.AttendeeCount)
	assert.Equal(t, int64(2), *eventA.AttendeeAccepted)
	assert.Equal(t, int64(1), *eventA.AttendeeMaybe)
	assert.Equal(t, int64(0), *eventA.AttendeeRejected)
	assert.Equal(t, int64(7), *eventA.OrganizerID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListEvents_InvalidDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewEventRepository(mock).ListEvents(context.Background(), models.EventListFilters{StartDate: "soon"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_ListEventsAttendedBy(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM (SELECT 1 " +
		"FROM events e LEFT JOIN attendees a ON a.event_id = e.id WHERE (a.user_id = $1) ORDER BY e.id DESC) AS paginated")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN attendees a ON a.event_id = e.id WHERE (a.user_id = $1) ORDER BY e.id DESC LIMIT 10")).
		WithArgs(int64(5)).
		WillReturnRows(pgxmock.NewRows(eventRowColumns).
			AddRow(int64(4), "Workshop", "hands on", eventWhen, "Lab", int64(0)))

	result, err := NewEventRepository(mock).ListEventsAttendedBy(context.Background(), 5, models.EventListFilters{Limit: uint64Ptr(10)})
	require.NoError(t, err)

	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Data, 1)
	assert.Nil(t, result.Data[0].OrganizerID)
	assert.Nil(t, result.Data[0].AttendeeCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_GetEventWithCounts_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM events e WHERE e.id = $4")).
		WithArgs("Accepted", "Maybe", "Rejected", int64(99)).
		WillReturnRows(pgxmock.NewRows(eventCountRowColumns))

	_, err = NewEventRepository(mock).GetEventWithCounts(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_CreateEvent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	event := &models.Event{Name: "Meetup", Description: "talks", When: eventWhen, Address: "Hall", OrganizerID: int64Ptr(3)}

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO events (name,description,"when",address,organizer_id) VALUES ($1,$2,$3,$4,$5) RETURNING id`)).
		WithArgs("Meetup", "talks", eventWhen, "Hall", int64Ptr(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(11)))

	id, err := NewEventRepository(mock).CreateEvent(context.Background(), event)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_UpdateEvent_IsConditionalOnOrganizer(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	event := &models.Event{ID: 5, Name: "Renamed", Description: "d", When: eventWhen, Address: "a"}

	mock.ExpectExec(regexp.QuoteMeta(`UPDATE events SET "when" = $1, address = $2, description = $3, name = $4 WHERE id = $5 AND organizer_id = $6`)).
		WithArgs(eventWhen, "a", "d", "Renamed", int64(5), int64(3)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	updated, err := NewEventRepository(mock).UpdateEvent(context.Background(), event, 3)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEventRepository_DeleteEvent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM events WHERE id = $1 AND organizer_id = $2")).
		WithArgs(int64(5), int64(3)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	deleted, err := NewEventRepository(mock).DeleteEvent(context.Background(), 5, 3)
	require.NoError(t, err)
	assert.True(t, deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
