package repositories

import (
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/pkg/helpers"
)

// buildEventFilters turns listing criteria into predicates over `events e` and,
// for attendance filtering, `attendees a`. Absent criteria add nothing.
func buildEventFilters(filters models.EventListFilters) (squirrel.And, error) {
	conds := squirrel.And{}

	// Both bounds are inclusive; a reversed range simply matches nothing
	if filters.StartDate != "" {
		start, err := helpers.ParseDateTime(filters.StartDate)
		if err != nil {
			return nil, fmt.Errorf("startDate: %w", err)
		}
		conds = append(conds, squirrel.GtOrEq{`e."when"`: start})
	}

	if filters.EndDate != "" {
		end, err := helpers.ParseDateTime(filters.EndDate)
		if err != nil {
			return nil, fmt.Errorf("endDate: %w", err)
		}
		conds = append(conds, squirrel.LtOrEq{`e."when"`: end})
	}

	if filters.OrganizerID != nil {
		conds = append(conds, squirrel.Eq{"e.organizer_id": *filters.OrganizerID})
	}

	if filters.AttendedByUserID != nil {
		conds = append(conds, squirrel.Eq{"a.user_id": *filters.AttendedByUserID})
	}

	return conds, nil
}
