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
	"github.com/yigit/eventsphere/internal/pkg/helpers"
	"github.com/yigit/eventsphere/internal/pkg/logger"
	"github.com/yigit/eventsphere/internal/pkg/pagination"
	"github.com/yigit/eventsphere/internal/pkg/query"
)

// organizer_id is read through COALESCE so a deleted organizer scans as 0
var eventColumns = []string{"e.id", "e.name", "e.description", `e."when"`, "e.address", "COALESCE(e.organizer_id, 0)"}

func attendeeRelationCounts() []query.RelationCount {
	count := func(alias string, answer *models.AttendeeAnswer) query.RelationCount {
		rc := query.RelationCount{Alias: alias, Table: "attendees", ForeignKey: "event_id", ParentKey: "e.id"}
		if answer != nil {
			rc.Where = squirrel.Eq{"attendees.answer": string(*answer)}
		}
		return rc
	}
	accepted, maybe, rejected := models.AnswerAccepted, models.AnswerMaybe, models.AnswerRejected

	return []query.RelationCount{
		count("attendee_count", nil),
		count("attendee_accepted", &accepted),
		count("attendee_maybe", &maybe),
		count("attendee_rejected", &rejected),
	}
}

// EventRepository handles event database operations
type EventRepository struct {
	db db.DBTX
	sb squirrel.StatementBuilderType
}

// NewEventRepository creates a new EventRepository
func NewEventRepository(conn db.DBTX) *EventRepository {
	return &EventRepository{
		db: conn,
		sb: newStatementBuilder(),
	}
}

func (r *EventRepository) baseQuery() squirrel.SelectBuilder {
	return r.sb.Select(eventColumns...).From("events e")
}

func (r *EventRepository) baseQueryWithCounts() squirrel.SelectBuilder {
	return query.WithRelationCounts(r.baseQuery(), attendeeRelationCounts()...)
}

func scanEvent(row pgx.Row) (models.Event, error) {
	var event models.Event
	var organizerID int64
	if err := row.Scan(&event.ID, &event.Name, &event.Description, &event.When, &event.Address, &organizerID); err != nil {
		return models.Event{}, err
	}
	event.OrganizerID = helpers.NullableID(organizerID)
	return event, nil
}

func scanEventWithCounts(row pgx.Row) (models.Event, error) {
	var event models.Event
	var organizerID, total, accepted, maybe, rejected int64
	err := row.Scan(&event.ID, &event.Name, &event.Description, &event.When, &event.Address, &organizerID,
		&total, &accepted, &maybe, &rejected)
	if err != nil {
		return models.Event{}, err
	}
	event.OrganizerID = helpers.NullableID(organizerID)
	event.AttendeeCount = &total
	event.AttendeeAccepted = &accepted
	event.AttendeeMaybe = &maybe
	event.AttendeeRejected = &rejected
	return event, nil
}

func windowOf(filters models.EventListFilters) pagination.Options {
	return pagination.Options{Limit: filters.Limit, Offset: filters.Offset}
}

// ListEvents returns a page of events with attendee counts, newest first
func (r *EventRepository) ListEvents(ctx context.Context, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	conds, err := buildEventFilters(filters)
	if err != nil {
		return nil, err
	}

	base := applyConditions(r.baseQueryWithCounts(), conds).OrderBy("e.id DESC")

	result, err := pagination.Paginate(ctx, r.db, base, windowOf(filters), scanEventWithCounts)
	if err != nil {
		return nil, fmt.Errorf("error listing events: %w", err)
	}
	return result, nil
}

// ListEventsAttendedBy returns a page of events the user answered, newest first
func (r *EventRepository) ListEventsAttendedBy(ctx context.Context, userID int64, filters models.EventListFilters) (*pagination.Result[models.Event], error) {
	filters.AttendedByUserID = &userID
	conds, err := buildEventFilters(filters)
	if err != nil {
		return nil, err
	}

	base := applyConditions(r.baseQuery().LeftJoin("attendees a ON a.event_id = e.id"), conds).OrderBy("e.id DESC")

	result, err := pagination.Paginate(ctx, r.db, base, windowOf(filters), scanEvent)
	if err != nil {
		return nil, fmt.Errorf("error listing events attended by user: %w", err)
	}
	return result, nil
}

// GetEventByID retrieves an event by ID without derived counts
func (r *EventRepository) GetEventByID(ctx context.Context, id int64) (*models.Event, error) {
	return r.getEvent(ctx, r.baseQuery(), id, scanEvent)
}

// GetEventWithCounts retrieves an event by ID with its attendee counts
func (r *EventRepository) GetEventWithCounts(ctx context.Context, id int64) (*models.Event, error) {
	return r.getEvent(ctx, r.baseQueryWithCounts(), id, scanEventWithCounts)
}

func (r *EventRepository) getEvent(ctx context.Context, base squirrel.SelectBuilder, id int64, scan pagination.RowScanner[models.Event]) (*models.Event, error) {
	sql, args, err := base.Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get event SQL")
		return nil, fmt.Errorf("failed to build get event query: %w", err)
	}

	event, err := scan(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEventNotFound
		}
		logger.Error().Err(err).Int64("eventID", id).Msg("Error scanning event row")
		return nil, fmt.Errorf("error getting event by ID: %w", err)
	}

	return &event, nil
}

// CreateEvent inserts an event and returns its ID
func (r *EventRepository) CreateEvent(ctx context.Context, event *models.Event) (int64, error) {
	sql, args, err := r.sb.Insert("events").
		Columns("name", "description", `"when"`, "address", "organizer_id").
		Values(event.Name, event.Description, event.When, event.Address, event.OrganizerID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create event SQL")
		return 0, fmt.Errorf("failed to build create event query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create event query")
		return 0, fmt.Errorf("error creating event: %w", err)
	}

	return id, nil
}

// UpdateEvent writes the event's fields if organizerID still organizes it.
// It reports whether a row was updated.
func (r *EventRepository) UpdateEvent(ctx context.Context, event *models.Event, organizerID int64) (bool, error) {
	sql, args, err := r.sb.Update("events").
		SetMap(map[string]any{
			"name":        event.Name,
			"description": event.Description,
			`"when"`:      event.When,
			"address":     event.Address,
		}).
		Where(squirrel.Eq{"id": event.ID, "organizer_id": organizerID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update event SQL")
		return false, fmt.Errorf("failed to build update event query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", event.ID).Msg("Error executing update event query")
		return false, fmt.Errorf("error updating event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// DeleteEvent removes the event if organizerID organizes it. Attendees cascade.
// It reports whether a row was deleted.
func (r *EventRepository) DeleteEvent(ctx context.Context, id, organizerID int64) (bool, error) {
	sql, args, err := r.sb.Delete("events").
		Where(squirrel.Eq{"id": id, "organizer_id": organizerID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete event SQL")
		return false, fmt.Errorf("failed to build delete event query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("eventID", id).Msg("Error executing delete event query")
		return false, fmt.Errorf("error deleting event: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}
