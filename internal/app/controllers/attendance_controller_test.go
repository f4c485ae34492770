package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/eventsphere/internal/app/models"
)

func newAttendanceRouter(userID int64) (*gin.Engine, *stubEventService) {
	events := newStubEventService()
	c := NewAttendanceController(&stubAttendeeService{answers: map[[2]int64]*models.Attendee{}}, events)
	r := gin.New()
	r.Use(asUser(userID))
	r.GET("/events/:id/attendees", c.ListEventAttendees)
	r.GET("/me/events-attendance", c.ListMyAttendedEvents)
	r.GET("/me/events-attendance/:eventId", c.GetMyAttendance)
	r.PUT("/me/events-attendance/:eventId", c.PutMyAttendance)
	return r, events
}

func TestPutMyAttendance(t *testing.T) {
	router, _ := newAttendanceRouter(5)

	w := doRequest(router, http.MethodGet, "/me/events-attendance/1", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doRequest(router, http.MethodPut, "/me/events-attendance/1", `{"answer":"Perhaps"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, "/me/events-attendance/1", `{"answer":"Maybe"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var first models.Attendee
	assert.Nil(t, decode(t, w, &first))
	assert.Equal(t, models.AnswerMaybe, first.Answer)
	assert.Equal(t, int64(5), first.UserID)

	w = doRequest(router, http.MethodPut, "/me/events-attendance/1", `{"answer":"Rejected"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var second models.Attendee
	assert.Nil(t, decode(t, w, &second))
	assert.Equal(t, first.ID, second.ID)

	w = doRequest(router, http.MethodGet, "/events/1/attendees", "")
	require.Equal(t, http.StatusOK, w.Code)
	var attendees []models.Attendee
	assert.Nil(t, decode(t, w, &attendees))
	require.Len(t, attendees, 1)
	assert.Equal(t, models.AnswerRejected, attendees[0].Answer)
}

func TestAttendanceRequiresUser(t *testing.T) {
	router, _ := newAttendanceRouter(0)

	w := doRequest(router, http.MethodPut, "/me/events-attendance/1", `{"answer":"Maybe"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doRequest(router, http.MethodGet, "/me/events-attendance", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListMyAttendedEvents(t *testing.T) {
	router, events := newAttendanceRouter(5)

	w := doRequest(router, http.MethodGet, "/me/events-attendance?limit=3", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"total":0,"data":[]}`, string(rawData(t, w)))
	assert.Equal(t, int64(5), events.lastUserID)
	assert.Equal(t, uint64(3), *events.lastFilters.Limit)
}
