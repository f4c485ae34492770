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

var attendeeColumns = []string{"id", "event_id", "user_id", "answer"}

// AttendeeRepository handles attendee database operations
type AttendeeRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewAttendeeRepository creates a new AttendeeRepository
func NewAttendeeRepository(conn db.DBTX) *AttendeeRepository {
	return &AttendeeRepository{
		db: conn,
		sb: newStatementBuilder(),
	}
}

func scanAttendee(row pgx.Row) (models.Attendee, error) {
	var attendee models.Attendee
	var answer string
	if err := row.Scan(&attendee.ID, &attendee.EventID, &attendee.UserID, &answer); err != nil {
		return models.Attendee{}, err
	}
	attendee.Answer = models.AttendeeAnswer(answer)
	return attendee, nil
}

// ListByEventID returns every attendee of an event in insertion order
func (r *AttendeeRepository) ListByEventID(ctx context.Context, eventID int64) ([]models.Attendee, error) {
	q := r.sb.Select(attendeeColumns...).
		From("attendees").
		Where(squirrel.Eq{"event_id": eventID}).
		OrderBy("id ASC")

	attendees, err := pagination.Collect(ctx, r.db, q, scanAttendee)
	if err != nil {
		return nil, fmt.Errorf("error listing attendees: %w", err)
	}
	return attendees, nil
}

// FindByEventAndUser returns the user's answer to an event
func (r *AttendeeRepository) FindByEventAndUser(ctx context.Context, eventID, userID int64) (*models.Attendee, error) {
	sql, args, err := r.sb.Select(attendeeColumns...).
		From("attendees").
		Where(squirrel.Eq{"event_id": eventID, "user_id": userID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building find attendee SQL")
		return nil, fmt.Errorf("failed to build find attendee query: %w", err)
	}

	attendee, err := scanAttendee(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendeeNotFound
		}
		logger.Error().Err(err).Int64("eventID", eventID).Int64("userID", userID).Msg("Error scanning attendee row")
		return nil, fmt.Errorf("error finding attendee: %w", err)
	}

	return &attendee, nil
}

// Upsert records the user's answer to an event, inserting the attendee on the first
// answer and overwriting the answer afterwards. The unique (event_id, user_id) index
// arbitrates concurrent first answers, so exactly one row survives.
func (r *AttendeeRepository) Upsert(ctx context.Context, eventID, userID int64, answer models.AttendeeAnswer) (*models.Attendee, error) {
	sql, args, err := r.sb.Insert("attendees").
		Columns("event_id", "user_id", "answer").
		Values(eventID, userID, string(answer)).
		Suffix("ON CONFLICT (event_id, user_id) DO UPDATE SET answer = EXCLUDED.answer RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building upsert attendee SQL")
		return nil, fmt.Errorf("failed to build upsert attendee query: %w", err)
	}

	attendee := &models.Attendee{EventID: eventID, UserID: userID, Answer: answer}
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&attendee.ID); err != nil {
		if dberrors.IsForeignKeyViolation(err) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Int64("eventID", eventID).Int64("userID", userID).Msg("Error executing upsert attendee query")
		return nil, fmt.Errorf("error saving attendee: %w", err)
	}

	return attendee, nil
}
