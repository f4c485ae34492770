package helpers

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
)

const (
	DefaultEventPageSize uint64 = 10
	MaxEventPageSize     uint64 = 10
)

// PageParams holds the raw limit/offset window requested by a client
type PageParams struct {
	Limit  uint64
	Offset uint64
}

// ParsePaginationParams reads the limit and offset query parameters.
// Missing values fall back to defaultLimit and 0; a limit outside 1..maxLimit or a
// negative or non-numeric value is a validation error.
func ParsePaginationParams(c *gin.Context, defaultLimit, maxLimit uint64) (PageParams, error) {
	params := PageParams{Limit: defaultLimit}

	if raw, ok := c.GetQuery("limit"); ok {
		limit, err := parseUint("limit", raw)
		if err != nil {
			return PageParams{}, err
		}
		if limit < 1 || limit > maxLimit {
			return PageParams{}, apperrors.NewValidationError(fmt.Sprintf("limit must be between 1 and %d", maxLimit))
		}
		params.Limit = limit
	}

	if raw, ok := c.GetQuery("offset"); ok {
		offset, err := parseUint("offset", raw)
		if err != nil {
			return PageParams{}, err
		}
		params.Offset = offset
	}

	return params, nil
}

func parseUint(name, raw string) (uint64, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be a non-negative integer", name))
	}
	return value, nil
}
