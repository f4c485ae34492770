package services

import (
	"context"
	"sort"
	"sync"

	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
)

// memoryDB backs every fake store so relations stay consistent across them
type memoryDB struct {
	mu        sync.Mutex
	nextID    int64
	events    map[int64]models.Event
	attendees map[int64]models.Attendee
	users     map[int64]models.User
	teachers  map[int64]models.Teacher
	subjects  map[int64]models.Subject
	links     map[[2]int64]bool // subject_id, teacher_id

	teacherSubjectLookups int
}

func newMemoryDB() *memoryDB {
	return &memoryDB{
		events:    map[int64]models.Event{},
		attendees: map[int64]models.Attendee{},
		users:     map[int64]models.User{},
		teachers:  map[int64]models.Teacher{},
		subjects:  map[int64]models.Subject{},
		links:     map[[2]int64]bool{},
	}
}

func (m *memoryDB) id() int64 {
	m.nextID++
	return m.nextID
}

func window[T any](all []T, opts pagination.Options) *pagination.Result[T] {
	total := int64(len(all))
	offset := uint64(0)
	if opts.Offset != nil {
		offset = *opts.Offset
	}
	if offset >= uint64(len(all)) {
		return &pagination.Result[T]{Total: total, Data: []T{}}
	}
	end := uint64(len(all))
	if opts.Limit != nil && offset+*opts.Limit < end {
		end = offset + *opts.Limit
	}
	return &pagination.Result[T]{Total: total, Data: all[offset:end]}
}

type fakeEventStore struct{ db *memoryDB }

func (f fakeEventStore) withCounts(e models.Event) models.Event {
	var total, accepted, maybe, rejected int64
	for _, a := range f.db.attendees {
		if a.EventID != e.ID {
			continue
		}
		total++
		switch a.Answer {
		case models.AnswerAccepted:
			accepted++
		case models.AnswerMaybe:
			maybe++
		case models.AnswerRejected:
			rejected++
		}
	}
	e.AttendeeCount, e.AttendeeAccepted, e.AttendeeMaybe, e.AttendeeRejected = &total, &accepted, &maybe, &rejected
	return e
}

func (f fakeEventStore) matching(filters models.EventListFilters, counts bool) []models.Event {
	var out []models.Event
	for _, e := range f.db.events {
		if filters.OrganizerID != nil && !e.IsOrganizedBy(*filters.OrganizerID) {
			continue
		}
		if filters.AttendedByUserID != nil {
			attended := false
			for _, a := range f.db.attendees {
				if a.EventID == e.ID && a.UserID == *filters.AttendedByUserID {
					attended = true
				}
			}
			if !attended {
				continue
			}
		}
		if counts {
			e = f.withCounts(e)
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out
}

func (f fakeEventStore) ListEvents(_ context.Context, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	return window(f.matching(filters, true), pagination.Options{Limit: filters.Limit, Offset: filters.Offset}), nil
}

func (f fakeEventStore) ListEventsAttendedBy(_ context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	filters.AttendedByUserID = &userID
	return window(f.matching(filters, false), pagination.Options{Limit: filters.Limit, Offset: filters.Offset}), nil
}

func (f fakeEventStore) GetEventByID(_ context.Context, id int64) (*models.Event, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	e, ok := f.db.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return &e, nil
}

func (f fakeEventStore) GetEventWithCounts(_ context.Context, id int64) (*models.Event, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	e, ok := f.db.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	e = f.withCounts(e)
	return &e, nil
}

func (f fakeEventStore) CreateEvent(_ context.Context, event *models.Event) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	e := *event
	e.ID = f.db.id()
	f.db.events[e.ID] = e
	return e.ID, nil
}

func (f fakeEventStore) UpdateEvent(_ context.Context, event *models.Event, organizerID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored, ok := f.db.events[event.ID]
	if !ok || !stored.IsOrganizedBy(organizerID) {
		return false, nil
	}
	e := *event
	e.OrganizerID = stored.OrganizerID
	f.db.events[e.ID] = e
	return true, nil
}

func (f fakeEventStore) DeleteEvent(_ context.Context, id, organizerID int64) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	stored, ok := f.db.events[id]
	if !ok || !stored.IsOrganizedBy(organizerID) {
		return false, nil
	}
	delete(f.db.events, id)
	for aid, a := range f.db.attendees {
		if a.EventID == id {
			delete(f.db.attendees, aid)
		}
	}
	return true, nil
}

type fakeAttendeeStore struct{ db *memoryDB }

func (f fakeAttendeeStore) ListByEventID(_ context.Context, eventID int64) ([]models.Attendee, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Attendee{}
	for _, a := range f.db.attendees {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeAttendeeStore) find(eventID, userID int64) (models.Attendee, bool) {
	for _, a := range f.db.attendees {
		if a.EventID == eventID && a.UserID == userID {
			return a, true
		}
	}
	return models.Attendee{}, false
}

func (f fakeAttendeeStore) FindByEventAndUser(_ context.Context, eventID, userID int64) (*models.Attendee, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	a, ok := f.find(eventID, userID)
	if !ok {
		return nil, apperrors.ErrAttendeeNotFound
	}
	return &a, nil
}

func (f fakeAttendeeStore) Upsert(_ context.Context, eventID, userID int64, answer models.AttendeeAnswer) (*models.Attendee, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	a, ok := f.find(eventID, userID)
	if !ok {
		a = models.Attendee{ID: f.db.id(), EventID: eventID, UserID: userID}
	}
	a.Answer = answer
	f.db.attendees[a.ID] = a
	return &a, nil
}

type fakeUserStore struct{ db *memoryDB }

func (f fakeUserStore) CreateUser(_ context.Context, user *models.User) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.Username == user.Username || u.Email == user.Email {
			return 0, apperrors.ErrUsernameOrEmailTaken
		}
	}
	u := *user
	u.ID = f.db.id()
	f.db.users[u.ID] = u
	return u.ID, nil
}

func (f fakeUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	u, ok := f.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return &u, nil
}

func (f fakeUserStore) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f fakeUserStore) UsernameOrEmailExists(_ context.Context, username, email string) (bool, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, u := range f.db.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type fakeTeacherStore struct{ db *memoryDB }

func (f fakeTeacherStore) ListTeachers(_ context.Context, opts pagination.Options) (*pagination.Result[models.Teacher], error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	all := make([]models.Teacher, 0, len(f.db.teachers))
	for _, t := range f.db.teachers {
		all = append(all, t)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })
	return window(all, opts), nil
}

func (f fakeTeacherStore) ListTeachersByIDs(_ context.Context, ids []int64) ([]models.Teacher, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Teacher{}
	for _, id := range ids {
		if t, ok := f.db.teachers[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f fakeTeacherStore) GetTeacherByID(_ context.Context, id int64) (*models.Teacher, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t, ok := f.db.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return &t, nil
}

func (f fakeTeacherStore) CreateTeacher(_ context.Context, teacher *models.Teacher) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	t := *teacher
	t.ID = f.db.id()
	t.Subjects = nil
	f.db.teachers[t.ID] = t
	return t.ID, nil
}

func (f fakeTeacherStore) UpdateTeacher(_ context.Context, teacher *models.Teacher) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.teachers[teacher.ID]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	t := *teacher
	t.Subjects = nil
	f.db.teachers[t.ID] = t
	return nil
}

func (f fakeTeacherStore) DeleteTeacher(_ context.Context, id int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	if _, ok := f.db.teachers[id]; !ok {
		return apperrors.ErrTeacherNotFound
	}
	delete(f.db.teachers, id)
	for link := range f.db.links {
		if link[1] == id {
			delete(f.db.links, link)
		}
	}
	return nil
}

func (f fakeTeacherStore) SubjectsByTeacherIDs(_ context.Context, teacherIDs []int64) (map[int64][]models.Subject, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	f.db.teacherSubjectLookups++
	out := map[int64][]models.Subject{}
	for _, tid := range teacherIDs {
		for link := range f.db.links {
			if link[1] == tid {
				out[tid] = append(out[tid], f.db.subjects[link[0]])
			}
		}
		sort.Slice(out[tid], func(i, j int) bool { return out[tid][i].ID < out[tid][j].ID })
	}
	return out, nil
}

type fakeSubjectStore struct{ db *memoryDB }

func (f fakeSubjectStore) ListSubjects(_ context.Context) ([]models.Subject, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := []models.Subject{}
	for _, s := range f.db.subjects {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f fakeSubjectStore) GetSubjectByID(_ context.Context, id int64) (*models.Subject, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	s, ok := f.db.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return &s, nil
}

func (f fakeSubjectStore) CreateSubject(_ context.Context, name string, teacherIDs []int64) (int64, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, s := range f.db.subjects {
		if s.Name == name {
			return 0, apperrors.NewConflictError("subject already exists")
		}
	}
	s := models.Subject{ID: f.db.id(), Name: name}
	f.db.subjects[s.ID] = s
	for _, tid := range teacherIDs {
		f.db.links[[2]int64{s.ID, tid}] = true
	}
	return s.ID, nil
}

func (f fakeSubjectStore) AddTeachers(_ context.Context, subjectID int64, teacherIDs []int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, tid := range teacherIDs {
		f.db.links[[2]int64{subjectID, tid}] = true
	}
	return nil
}

func (f fakeSubjectStore) RemoveTeachers(_ context.Context, subjectID int64, teacherIDs []int64) error {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	for _, tid := range teacherIDs {
		delete(f.db.links, [2]int64{subjectID, tid})
	}
	return nil
}

func (f fakeSubjectStore) TeachersBySubjectIDs(_ context.Context, subjectIDs []int64) (map[int64][]models.Teacher, error) {
	f.db.mu.Lock()
	defer f.db.mu.Unlock()
	out := map[int64][]models.Teacher{}
	for _, sid := range subjectIDs {
		for link := range f.db.links {
			if link[0] == sid {
				out[sid] = append(out[sid], f.db.teachers[link[1]])
			}
		}
		sort.Slice(out[sid], func(i, j int) bool { return out[sid][i].ID < out[sid][j].ID })
	}
	return out, nil
}
