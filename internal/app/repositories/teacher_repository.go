package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/db"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/logger"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
)

var teacherColumns = []string{"t.id", "t.name", "t.age", "t.gender"}

// TeacherRepository handles teacher database operations
type TeacherRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new TeacherRepository
func NewTeacherRepository(conn db.DBTX) *TeacherRepository {
	return &TeacherRepository{
		db: conn,
		sb: newStatementBuilder(),
	}
}

func scanTeacher(row pgx.Row) (models.Teacher, error) {
	var teacher models.Teacher
	var age int32
	var gender string
	if err := row.Scan(&teacher.ID, &teacher.Name, &age, &gender); err != nil {
		return models.Teacher{}, err
	}
	teacher.Age = int(age)
	teacher.Gender = models.Gender(gender)
	return teacher, nil
}

// ListTeachers returns a page of teachers, newest first
func (r *TeacherRepository) ListTeachers(ctx context.Context, opts pagination.Options) (*pagination.Result[models.Teacher], error) {
	base := r.sb.Select(teacherColumns...).From("teachers t").OrderBy("t.id DESC")

	result, err := pagination.Paginate(ctx, r.db, base, opts, scanTeacher)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers: %w", err)
	}
	return result, nil
}

// ListTeachersByIDs returns the teachers with the given IDs ordered by ID
func (r *TeacherRepository) ListTeachersByIDs(ctx context.Context, ids []int64) ([]models.Teacher, error) {
	if len(ids) == 0 {
		return []models.Teacher{}, nil
	}

	q := r.sb.Select(teacherColumns...).
		From("teachers t").
		Where(squirrel.Eq{"t.id": ids}).
		OrderBy("t.id ASC")

	teachers, err := pagination.Collect(ctx, r.db, q, scanTeacher)
	if err != nil {
		return nil, fmt.Errorf("error listing teachers by id: %w", err)
	}
	return teachers, nil
}

// GetTeacherByID retrieves a teacher by ID
func (r *TeacherRepository) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	sql, args, err := r.sb.Select(teacherColumns...).
		From("teachers t").
		Where(squirrel.Eq{"t.id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get teacher SQL")
		return nil, fmt.Errorf("failed to build get teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error scanning teacher row")
		return nil, fmt.Errorf("error getting teacher by ID: %w", err)
	}

	return &teacher, nil
}

// CreateTeacher inserts a teacher and returns its ID
func (r *TeacherRepository) CreateTeacher(ctx context.Context, teacher *models.Teacher) (int64, error) {
	sql, args, err := r.sb.Insert("teachers").
		Columns("name", "age", "gender").
		Values(teacher.Name, teacher.Age, string(teacher.Gender)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create teacher SQL")
		return 0, fmt.Errorf("failed to build create teacher query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create teacher query")
		return 0, fmt.Errorf("error creating teacher: %w", err)
	}

	return id, nil
}

// UpdateTeacher writes every field of the teacher
func (r *TeacherRepository) UpdateTeacher(ctx context.Context, teacher *models.Teacher) error {
	sql, args, err := r.sb.Update("teachers").
		SetMap(map[string]any{
			"name":   teacher.Name,
			"age":    teacher.Age,
			"gender": string(teacher.Gender),
		}).
		Where(squirrel.Eq{"id": teacher.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update teacher SQL")
		return fmt.Errorf("failed to build update teacher query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", teacher.ID).Msg("Error executing update teacher query")
		return fmt.Errorf("error updating teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// DeleteTeacher removes a teacher. Subject links cascade.
func (r *TeacherRepository) DeleteTeacher(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("teachers").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete teacher SQL")
		return fmt.Errorf("failed to build delete teacher query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("teacherID", id).Msg("Error executing delete teacher query")
		return fmt.Errorf("error deleting teacher: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// SubjectsByTeacherIDs loads the subjects of several teachers in one query
func (r *TeacherRepository) SubjectsByTeacherIDs(ctx context.Context, teacherIDs []int64) (map[int64][]models.Subject, error) {
	subjects := make(map[int64][]models.Subject, len(teacherIDs))
	if len(teacherIDs) == 0 {
		return subjects, nil
	}

	sql, args, err := r.sb.Select("st.teacher_id", "s.id", "s.name").
		From("subject_teachers st").
		Join("subjects s ON s.id = st.subject_id").
		Where(squirrel.Eq{"st.teacher_id": teacherIDs}).
		OrderBy("s.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building subjects by teacher SQL")
		return nil, fmt.Errorf("failed to build subjects by teacher query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing subjects by teacher query")
		return nil, fmt.Errorf("error querying teacher subjects: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var teacherID int64
		var subject models.Subject
		if err := rows.Scan(&teacherID, &subject.ID, &subject.Name); err != nil {
			logger.Error().Err(err).Msg("Error scanning teacher subject row")
			return nil, fmt.Errorf("error scanning teacher subject row: %w", err)
		}
		subjects[teacherID] = append(subjects[teacherID], subject)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating teacher subject rows")
		return nil, fmt.Errorf("error iterating teacher subject rows: %w", err)
	}

	return subjects, nil
}
