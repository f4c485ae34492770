package repositories

import (
	"github.com/Masterminds/squirrel"
	"github.com/yigit/eventsphere/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	EventRepository    *EventRepository
	AttendeeRepository *AttendeeRepository
	UserRepository     *UserRepository
	TeacherRepository  *TeacherRepository
	SubjectRepository  *SubjectRepository
}

// NewRepositories initializes all repositories
func NewRepositories(conn db.DBTX) *Repositories {
	return &Repositories{
		EventRepository:    NewEventRepository(conn),
		AttendeeRepository: NewAttendeeRepository(conn),
		UserRepository:     NewUserRepository(conn),
		TeacherRepository:  NewTeacherRepository(conn),
		SubjectRepository:  NewSubjectRepository(conn),
	}
}

func newStatementBuilder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// applyConditions adds conds to base unless the set is empty
func applyConditions(base squirrel.SelectBuilder, conds squirrel.And) squirrel.SelectBuilder {
	if len(conds) == 0 {
		return base
	}
	return base.Where(conds)
}
