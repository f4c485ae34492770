package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/helpers"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
	"github.com/yigit/eventsphere/internal/pkg/validation"
)

// TeacherService defines the interface for teacher operations
type TeacherService interface {
	ListTeachers(ctx context.Context, opts pagination.Options) (*pagination.Result[models.Teacher], error)
	GetTeacher(ctx context.Context, id int64) (*models.Teacher, error)
	AddTeacher(ctx context.Context, input dto.TeacherAddInput) (*models.Teacher, error)
	UpdateTeacher(ctx context.Context, id int64, input dto.TeacherEditInput) (*models.Teacher, error)
	DeleteTeacher(ctx context.Context, id int64) (int64, error)
}

// SubjectService defines the interface for subject operations
type SubjectService interface {
	ListSubjects(ctx context.Context) ([]models.Subject, error)
	GetSubject(ctx context.Context, id int64) (*models.Subject, error)
	AddSubject(ctx context.Context, input dto.SubjectAddInput) (*models.Subject, error)
	AssignTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) (*models.Subject, error)
	RemoveTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) (*models.Subject, error)
}

// validateInput runs the shared validator and reports failures as validation errors
func validateInput(input any) error {
	if err := validation.Struct(input); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrValidationFailed, err)
	}
	return nil
}

// teacherServiceImpl implements the TeacherService interface
type teacherServiceImpl struct {
	teacherRepo TeacherStore
	logger      zerolog.Logger
}

// NewTeacherService creates a new teacher service instance
func NewTeacherService(teacherRepo TeacherStore, logger zerolog.Logger) TeacherService {
	return &teacherServiceImpl{
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// ListTeachers returns a page of teachers with their subjects
func (s *teacherServiceImpl) ListTeachers(ctx context.Context, opts pagination.Options) (*pagination.Result[models.Teacher], error) {
	result, err := s.teacherRepo.ListTeachers(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := s.attachSubjects(ctx, result.Data); err != nil {
		return nil, err
	}
	return result, nil
}

// GetTeacher returns a teacher with its subjects
func (s *teacherServiceImpl) GetTeacher(ctx context.Context, id int64) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetTeacherByID(ctx, id)
	if err != nil {
		return nil, err
	}
	teachers := []models.Teacher{*teacher}
	if err := s.attachSubjects(ctx, teachers); err != nil {
		return nil, err
	}
	return &teachers[0], nil
}

// AddTeacher validates and stores a new teacher
func (s *teacherServiceImpl) AddTeacher(ctx context.Context, input dto.TeacherAddInput) (*models.Teacher, error) {
	if input.Gender == "" {
		input.Gender = models.GenderOther
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	teacher := &models.Teacher{Name: input.Name, Age: input.Age, Gender: input.Gender}
	id, err := s.teacherRepo.CreateTeacher(ctx, teacher)
	if err != nil {
		return nil, err
	}
	teacher.ID = id
	teacher.Subjects = []models.Subject{}

	s.logger.Info().Int64("teacherID", id).Msg("Teacher added")
	return teacher, nil
}

// UpdateTeacher merges input into an existing teacher
func (s *teacherServiceImpl) UpdateTeacher(ctx context.Context, id int64, input dto.TeacherEditInput) (*models.Teacher, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetTeacherByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		teacher.Name = *input.Name
	}
	if input.Age != nil {
		teacher.Age = *input.Age
	}
	if input.Gender != nil {
		teacher.Gender = *input.Gender
	}

	if err := s.teacherRepo.UpdateTeacher(ctx, teacher); err != nil {
		return nil, err
	}

	teachers := []models.Teacher{*teacher}
	if err := s.attachSubjects(ctx, teachers); err != nil {
		return nil, err
	}
	return &teachers[0], nil
}

// DeleteTeacher removes a teacher and returns its ID
func (s *teacherServiceImpl) DeleteTeacher(ctx context.Context, id int64) (int64, error) {
	if err := s.teacherRepo.DeleteTeacher(ctx, id); err != nil {
		return 0, err
	}
	s.logger.Info().Int64("teacherID", id).Msg("Teacher deleted")
	return id, nil
}

func (s *teacherServiceImpl) attachSubjects(ctx context.Context, teachers []models.Teacher) error {
	ids := make([]int64, len(teachers))
	for i := range teachers {
		ids[i] = teachers[i].ID
	}

	subjects, err := s.teacherRepo.SubjectsByTeacherIDs(ctx, ids)
	if err != nil {
		return err
	}

	for i := range teachers {
		teachers[i].Subjects = subjects[teachers[i].ID]
		if teachers[i].Subjects == nil {
			teachers[i].Subjects = []models.Subject{}
		}
	}
	return nil
}

// subjectServiceImpl implements the SubjectService interface
type subjectServiceImpl struct {
	subjectRepo SubjectStore
	teacherRepo TeacherStore
	logger      zerolog.Logger
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(subjectRepo SubjectStore, teacherRepo TeacherStore, logger zerolog.Logger) SubjectService {
	return &subjectServiceImpl{
		subjectRepo: subjectRepo,
		teacherRepo: teacherRepo,
		logger:      logger,
	}
}

// ListSubjects returns every subject with its teachers
func (s *subjectServiceImpl) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.subjectRepo.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.attachTeachers(ctx, subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// GetSubject returns a subject with its teachers
func (s *subjectServiceImpl) GetSubject(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetSubjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	subjects := []models.Subject{*subject}
	if err := s.attachTeachers(ctx, subjects); err != nil {
		return nil, err
	}
	return &subjects[0], nil
}

// AddSubject stores a subject and links the given teachers
func (s *subjectServiceImpl) AddSubject(ctx context.Context, input dto.SubjectAddInput) (*models.Subject, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	teacherIDs := helpers.UniqueIDs(input.TeacherIDs)
	if err := s.ensureTeachersExist(ctx, teacherIDs); err != nil {
		return nil, err
	}

	id, err := s.subjectRepo.CreateSubject(ctx, input.Name, teacherIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("subjectID", id).Int("teachers", len(teacherIDs)).Msg("Subject added")
	return s.GetSubject(ctx, id)
}

// AssignTeachers links teachers to a subject
func (s *subjectServiceImpl) AssignTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) (*models.Subject, error) {
	if _, err := s.subjectRepo.GetSubjectByID(ctx, subjectID); err != nil {
		return nil, err
	}

	teacherIDs = helpers.UniqueIDs(teacherIDs)
	if err := s.ensureTeachersExist(ctx, teacherIDs); err != nil {
		return nil, err
	}
	if err := s.subjectRepo.AddTeachers(ctx, subjectID, teacherIDs); err != nil {
		return nil, err
	}

	return s.GetSubject(ctx, subjectID)
}

// RemoveTeachers unlinks teachers from a subject
func (s *subjectServiceImpl) RemoveTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) (*models.Subject, error) {
	if _, err := s.subjectRepo.GetSubjectByID(ctx, subjectID); err != nil {
		return nil, err
	}

	if err := s.subjectRepo.RemoveTeachers(ctx, subjectID, helpers.UniqueIDs(teacherIDs)); err != nil {
		return nil, err
	}

	return s.GetSubject(ctx, subjectID)
}

func (s *subjectServiceImpl) ensureTeachersExist(ctx context.Context, teacherIDs []int64) error {
	if len(teacherIDs) == 0 {
		return nil
	}

	teachers, err := s.teacherRepo.ListTeachersByIDs(ctx, teacherIDs)
	if err != nil {
		return err
	}
	if len(teachers) != len(teacherIDs) {
		found := make(map[int64]bool, len(teachers))
		for _, t := range teachers {
			found[t.ID] = true
		}
		for _, id := range teacherIDs {
			if !found[id] {
				return apperrors.NewResourceNotFoundError(fmt.Sprintf("teacher %d not found", id))
			}
		}
	}
	return nil
}

func (s *subjectServiceImpl) attachTeachers(ctx context.Context, subjects []models.Subject) error {
	ids := make([]int64, len(subjects))
	for i := range subjects {
		ids[i] = subjects[i].ID
	}

	teachers, err := s.subjectRepo.TeachersBySubjectIDs(ctx, ids)
	if err != nil {
		return err
	}

	// Teachers come back with their own subjects so nested selections need no
	// per-teacher lookups.
	var teacherIDs []int64
	for _, id := range ids {
		for _, t := range teachers[id] {
			teacherIDs = append(teacherIDs, t.ID)
		}
	}
	subjectsByTeacher, err := s.teacherRepo.SubjectsByTeacherIDs(ctx, helpers.UniqueIDs(teacherIDs))
	if err != nil {
		return err
	}

	for i := range subjects {
		linked := teachers[subjects[i].ID]
		if linked == nil {
			linked = []models.Teacher{}
		}
		for j := range linked {
			linked[j].Subjects = subjectsByTeacher[linked[j].ID]
			if linked[j].Subjects == nil {
				linked[j].Subjects = []models.Subject{}
			}
		}
		subjects[i].Teachers = linked
	}
	return nil
}
