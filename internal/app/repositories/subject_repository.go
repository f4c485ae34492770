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
	"github.com/yigit/eventsphere/internal/pkg/dberrors"
	"github.com/yigit/eventsphere/internal/pkg/logger"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
)

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(conn db.DBTX) *SubjectRepository {
	return &SubjectRepository{
		db: conn,
		sb: newStatementBuilder(),
	}
}

func scanSubject(row pgx.Row) (models.Subject, error) {
	var subject models.Subject
	err := row.Scan(&subject.ID, &subject.Name)
	return subject, err
}

// ListSubjects returns every subject ordered by ID
func (r *SubjectRepository) ListSubjects(ctx context.Context) ([]models.Subject, error) {
	q := r.sb.Select("id", "name").From("subjects").OrderBy("id ASC")

	subjects, err := pagination.Collect(ctx, r.db, q, scanSubject)
	if err != nil {
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	return subjects, nil
}

// GetSubjectByID retrieves a subject by ID
func (r *SubjectRepository) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.sb.Select("id", "name").
		From("subjects").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get subject SQL")
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	subject, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("subjectID", id).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error getting subject by ID: %w", err)
	}

	return &subject, nil
}

// CreateSubject inserts a subject together with its teacher links in one
// transaction and returns the subject ID
func (r *SubjectRepository) CreateSubject(ctx context.Context, name string, teacherIDs []int64) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(tx pgx.Tx) error {
		txRepo := NewSubjectRepository(tx)

		var err error
		id, err = txRepo.insertSubject(ctx, name)
		if err != nil {
			return err
		}
		return txRepo.AddTeachers(ctx, id, teacherIDs)
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SubjectRepository) insertSubject(ctx context.Context, name string) (int64, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name").
		Values(name).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create subject SQL")
		return 0, fmt.Errorf("failed to build create subject query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.NewConflictError(fmt.Sprintf("subject %q already exists", name))
		}
		logger.Error().Err(err).Msg("Error executing create subject query")
		return 0, fmt.Errorf("error creating subject: %w", err)
	}

	return id, nil
}

// EnsureSubject inserts the subject unless one with the same name exists
func (r *SubjectRepository) EnsureSubject(ctx context.Context, name string) (bool, error) {
	sql, args, err := r.sb.Insert("subjects").
		Columns("name").
		Values(name).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building ensure subject SQL")
		return false, fmt.Errorf("failed to build ensure subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("name", name).Msg("Error executing ensure subject query")
		return false, fmt.Errorf("error ensuring subject: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// AddTeachers links teachers to a subject. Existing links are left untouched.
func (r *SubjectRepository) AddTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) error {
	if len(teacherIDs) == 0 {
		return nil
	}

	insert := r.sb.Insert("subject_teachers").Columns("subject_id", "teacher_id")
	for _, teacherID := range teacherIDs {
		insert = insert.Values(subjectID, teacherID)
	}

	sql, args, err := insert.Suffix("ON CONFLICT (subject_id, teacher_id) DO NOTHING").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building add subject teachers SQL")
		return fmt.Errorf("failed to build add subject teachers query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewResourceNotFoundError("subject or teacher not found")
		}
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error executing add subject teachers query")
		return fmt.Errorf("error adding subject teachers: %w", err)
	}

	return nil
}

// RemoveTeachers unlinks teachers from a subject
func (r *SubjectRepository) RemoveTeachers(ctx context.Context, subjectID int64, teacherIDs []int64) error {
	if len(teacherIDs) == 0 {
		return nil
	}

	sql, args, err := r.sb.Delete("subject_teachers").
		Where(squirrel.Eq{"subject_id": subjectID, "teacher_id": teacherIDs}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building remove subject teachers SQL")
		return fmt.Errorf("failed to build remove subject teachers query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("subjectID", subjectID).Msg("Error executing remove subject teachers query")
		return fmt.Errorf("error removing subject teachers: %w", err)
	}

	return nil
}

// TeachersBySubjectIDs loads the teachers of several subjects in one query
func (r *SubjectRepository) TeachersBySubjectIDs(ctx context.Context, subjectIDs []int64) (map[int64][]models.Teacher, error) {
	teachers := make(map[int64][]models.Teacher, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return teachers, nil
	}

	sql, args, err := r.sb.Select("st.subject_id", "t.id", "t.name", "t.age", "t.gender").
		From("subject_teachers st").
		Join("teachers t ON t.id = st.teacher_id").
		Where(squirrel.Eq{"st.subject_id": subjectIDs}).
		OrderBy("t.id ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building teachers by subject SQL")
		return nil, fmt.Errorf("failed to build teachers by subject query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing teachers by subject query")
		return nil, fmt.Errorf("error querying subject teachers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var subjectID int64
		var age int32
		var gender string
		var teacher models.Teacher
		if err := rows.Scan(&subjectID, &teacher.ID, &teacher.Name, &age, &gender); err != nil {
			logger.Error().Err(err).Msg("Error scanning subject teacher row")
			return nil, fmt.Errorf("error scanning subject teacher row: %w", err)
		}
		teacher.Age = int(age)
		teacher.Gender = models.Gender(gender)
		teachers[subjectID] = append(teachers[subjectID], teacher)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating subject teacher rows")
		return nil, fmt.Errorf("error iterating subject teacher rows: %w", err)
	}

	return teachers, nil
}
