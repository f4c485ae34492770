package graphql

import (
	"context"
	"errors"
	"fmt"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"
	appauth "github.com/yigit/eventsphere/internal/app/auth"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/app/services"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
)

// DefaultTeacherPageSize is the page size of the teachers query when no limit is given
const DefaultTeacherPageSize = 5

// ProfileFinder loads the user behind an authenticated request
type ProfileFinder interface {
	Profile(ctx context.Context, userID int64) (*models.User, error)
}

// Resolver holds the services the schema resolves against
type Resolver struct {
	teachers services.TeacherService
	subjects services.SubjectService
	profiles ProfileFinder
	logger   zerolog.Logger
}

// NewResolver creates a new resolver
func NewResolver(teachers services.TeacherService, subjects services.SubjectService, profiles ProfileFinder, logger zerolog.Logger) *Resolver {
	return &Resolver{
		teachers: teachers,
		subjects: subjects,
		profiles: profiles,
		logger:   logger,
	}
}

// Teachers resolves the paginated teachers query
func (r *Resolver) Teachers(p graphql.ResolveParams) (interface{}, error) {
	limit, _ := p.Args["limit"].(int)
	offset, _ := p.Args["offset"].(int)
	if limit < 0 || offset < 0 {
		return nil, r.resolveError(apperrors.NewValidationError("limit and offset must not be negative"))
	}

	result, err := r.teachers.ListTeachers(p.Context, pagination.NewOptions(uint64(limit), uint64(offset)))
	if err != nil {
		return nil, r.resolveError(err)
	}
	return result, nil
}

// Teacher resolves a single teacher by ID
func (r *Resolver) Teacher(p graphql.ResolveParams) (interface{}, error) {
	teacher, err := r.teachers.GetTeacher(p.Context, intArg(p.Args, "id"))
	if err != nil {
		return nil, r.resolveError(err)
	}
	return teacher, nil
}

// Subjects resolves the list of all subjects
func (r *Resolver) Subjects(p graphql.ResolveParams) (interface{}, error) {
	subjects, err := r.subjects.ListSubjects(p.Context)
	if err != nil {
		return nil, r.resolveError(err)
	}
	return subjects, nil
}

// Subject resolves a single subject by ID
func (r *Resolver) Subject(p graphql.ResolveParams) (interface{}, error) {
	subject, err := r.subjects.GetSubject(p.Context, intArg(p.Args, "id"))
	if err != nil {
		return nil, r.resolveError(err)
	}
	return subject, nil
}

// Me resolves the authenticated user
func (r *Resolver) Me(p graphql.ResolveParams) (interface{}, error) {
	userID, err := appauth.RequireUserID(p.Context)
	if err != nil {
		return nil, r.resolveError(err)
	}

	user, err := r.profiles.Profile(p.Context, userID)
	if err != nil {
		return nil, r.resolveError(err)
	}
	return user, nil
}

// TeacherAdd creates a teacher. Requires authentication.
func (r *Resolver) TeacherAdd(p graphql.ResolveParams) (interface{}, error) {
	if _, err := appauth.RequireUserID(p.Context); err != nil {
		return nil, r.resolveError(err)
	}

	input, _ := p.Args["input"].(map[string]interface{})
	addInput := dto.TeacherAddInput{
		Name: stringField(input, "name"),
		Age:  int(intArg(input, "age")),
	}
	if g := genderField(input, "gender"); g != nil {
		addInput.Gender = *g
	}

	teacher, err := r.teachers.AddTeacher(p.Context, addInput)
	if err != nil {
		return nil, r.resolveError(err)
	}
	return teacher, nil
}

// TeacherEdit merges the given fields into an existing teacher
func (r *Resolver) TeacherEdit(p graphql.ResolveParams) (interface{}, error) {
	input, _ := p.Args["input"].(map[string]interface{})

	var editInput dto.TeacherEditInput
	if name, ok := input["name"].(string); ok {
		editInput.Name = &name
	}
	if age, ok := input["age"].(int); ok {
		editInput.Age = &age
	}
	editInput.Gender = genderField(input, "gender")

	teacher, err := r.teachers.UpdateTeacher(p.Context, intArg(p.Args, "id"), editInput)
	if err != nil {
		return nil, r.resolveError(err)
	}
	return teacher, nil
}

// TeacherDelete removes a teacher and echoes its ID
func (r *Resolver) TeacherDelete(p graphql.ResolveParams) (interface{}, error) {
	id, err := r.teachers.DeleteTeacher(p.Context, intArg(p.Args, "id"))
	if err != nil {
		return nil, r.resolveError(err)
	}
	return dto.EntityWithID{ID: id}, nil
}

// SubjectAdd creates a subject, optionally linked to teachers. Requires authentication.
func (r *Resolver) SubjectAdd(p graphql.ResolveParams) (interface{}, error) {
	if _, err := appauth.RequireUserID(p.Context); err != nil {
		return nil, r.resolveError(err)
	}

	input, _ := p.Args["input"].(map[string]interface{})
	subject, err := r.subjects.AddSubject(p.Context, dto.SubjectAddInput{
		Name:       stringField(input, "name"),
		TeacherIDs: intListArg(input, "teacherIds"),
	})
	if err != nil {
		return nil, r.resolveError(err)
	}
	return subject, nil
}

// SubjectAssignTeachers links teachers to a subject
func (r *Resolver) SubjectAssignTeachers(p graphql.ResolveParams) (interface{}, error) {
	if _, err := appauth.RequireUserID(p.Context); err != nil {
		return nil, r.resolveError(err)
	}

	subject, err := r.subjects.AssignTeachers(p.Context, intArg(p.Args, "subjectId"), intListArg(p.Args, "teacherIds"))
	if err != nil {
		return nil, r.resolveError(err)
	}
	return subject, nil
}

// SubjectRemoveTeachers unlinks teachers from a subject
func (r *Resolver) SubjectRemoveTeachers(p graphql.ResolveParams) (interface{}, error) {
	if _, err := appauth.RequireUserID(p.Context); err != nil {
		return nil, r.resolveError(err)
	}

	subject, err := r.subjects.RemoveTeachers(p.Context, intArg(p.Args, "subjectId"), intListArg(p.Args, "teacherIds"))
	if err != nil {
		return nil, r.resolveError(err)
	}
	return subject, nil
}

// TeacherSubjects resolves Teacher.subjects, loading them when the parent came without relations
func (r *Resolver) TeacherSubjects(p graphql.ResolveParams) (interface{}, error) {
	var teacher *models.Teacher
	switch src := p.Source.(type) {
	case models.Teacher:
		teacher = &src
	case *models.Teacher:
		teacher = src
	default:
		return nil, fmt.Errorf("unexpected teacher source %T", p.Source)
	}

	if teacher.Subjects != nil {
		return teacher.Subjects, nil
	}
	loaded, err := r.teachers.GetTeacher(p.Context, teacher.ID)
	if err != nil {
		return nil, r.resolveError(err)
	}
	return loaded.Subjects, nil
}

// SubjectTeachers resolves Subject.teachers, loading them when the parent came without relations
func (r *Resolver) SubjectTeachers(p graphql.ResolveParams) (interface{}, error) {
	var subject *models.Subject
	switch src := p.Source.(type) {
	case models.Subject:
		subject = &src
	case *models.Subject:
		subject = src
	default:
		return nil, fmt.Errorf("unexpected subject source %T", p.Source)
	}

	if subject.Teachers != nil {
		return subject.Teachers, nil
	}
	loaded, err := r.subjects.GetSubject(p.Context, subject.ID)
	if err != nil {
		return nil, r.resolveError(err)
	}
	return loaded.Teachers, nil
}

// resolveError tags err with a machine readable code in the error extensions.
// Unexpected errors are logged and replaced by a generic message.
func (r *Resolver) resolveError(err error) error {
	code := errorCode(err)
	if code == codeInternal {
		r.logger.Error().Err(err).Msg("GraphQL resolver failed")
		return &resolverError{code: code, err: errors.New("internal server error")}
	}
	return &resolverError{code: code, err: err}
}

const (
	codeNotFound        = "NOT_FOUND"
	codeForbidden       = "FORBIDDEN"
	codeUnauthenticated = "UNAUTHENTICATED"
	codeBadUserInput    = "BAD_USER_INPUT"
	codeConflict        = "CONFLICT"
	codeInternal        = "INTERNAL_SERVER_ERROR"
)

func errorCode(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return codeNotFound
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return codeForbidden
	case apperrors.Is(err, apperrors.ErrUnauthenticated, apperrors.ErrInvalidCredentials,
		apperrors.ErrTokenInvalid, apperrors.ErrTokenExpired, apperrors.ErrTokenNotFound):
		return codeUnauthenticated
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return codeBadUserInput
	case errors.Is(err, apperrors.ErrConflict):
		return codeConflict
	default:
		return codeInternal
	}
}

// resolverError carries an error code into the GraphQL response extensions
type resolverError struct {
	code string
	err  error
}

func (e *resolverError) Error() string { return e.err.Error() }

func (e *resolverError) Unwrap() error { return e.err }

// Extensions implements gqlerrors.ExtendedError
func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.code}
}

func intArg(args map[string]interface{}, key string) int64 {
	return toInt64(args[key])
}

func intListArg(args map[string]interface{}, key string) []int64 {
	raw, _ := args[key].([]interface{})
	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		ids = append(ids, toInt64(item))
	}
	return ids
}

func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int:
		return int64(n)
	case int64:
		return n
	case float64:
		return int64(n)
	}
	return 0
}

func stringField(input map[string]interface{}, key string) string {
	s, _ := input[key].(string)
	return s
}

func genderField(input map[string]interface{}, key string) *models.Gender {
	switch v := input[key].(type) {
	case models.Gender:
		return &v
	case string:
		g := models.Gender(v)
		return &g
	}
	return nil
}
