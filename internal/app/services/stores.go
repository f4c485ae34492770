package services

import (
	"context"

	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
)

// The store interfaces below are satisfied by the repositories package.

// EventStore persists events
type EventStore interface {
	ListEvents(ctx context.Context, filters models.EventListFilters) (*pagination.Result[models.Event], error)
	ListEventsAttendedBy(ctx context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error)
	GetEventByID(ctx context.Context, id int64) (*models.Event, error)
	GetEventWithCounts(ctx context.Context, id int64) (*models.Event, error)
	CreateEvent(ctx context.Context, event *models.Event) (int64, error)
	UpdateEvent(ctx context.Context, event *models.Event, organizerID int64) (bool, error)
	DeleteEvent(ctx context.Context, id, organizerID int64) (bool, error)
}

// AttendeeStore persists attendee answers
type AttendeeStore interface {
	ListByEventID(ctx context.Context, eventID int64) ([]models.Attendee, error)
	FindByEventAndUser(ctx context.Context, eventID, userID int64) (*models.Attendee, error)
	Upsert(ctx context.Context, eventID, userID int64, answer models.AttendeeAnswer) (*models.Attendee, error)
}

// UserStore persists users
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (int64, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)
}

// TeacherStore persists teachers
type TeacherStore interface {
	ListTeachers(ctx context.Context, opts pagination.Options) (*pagination.Result[models.Teacher], error)
	ListTeachersByIDs(ctx context.Context, ids []int64) ([]models.Teacher, error)
	GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error)
	CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error)
	UpdateTeacher(ctx context.Context, teacher *models.Teacher) error
	DeleteTeacher(ctx context.Context, id int64) error
	SubjectsByTeacherIDs(ctx context.Context, teacherIDs []int64) (map[int64][]models.Subject, error)
}

// SubjectStore persists subjects and their teacher links
type SubjectStore interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	CreateSubject(ctx context.Context, name string, teacherIDs []int64) (int64, error)
	AddTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) error
	RemoveTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) error
	TeachersBySubjectIDs(ctx context.Context, subjectIDs []int64) (map[int64][]models.Teacher, error)
}
