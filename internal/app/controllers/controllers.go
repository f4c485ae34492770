// Package controllers handles HTTP request handling
package controllers

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yigit/eventsphere/internal/app/models"
	"github.com/yigit/eventsphere/internal/app/models/dto"
	"github.com/yigit/eventsphere/internal/pkg/apperrors"
	"github.com/yigit/eventsphere/internal/pkg/helpers"
)

// parseIDParam parses an ID parameter from the request path
func parseIDParam(ctx *gin.Context, paramName string) (int64, error) {
	idStr := ctx.Param(paramName)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError(fmt.Sprintf("%s must be a positive integer", paramName))
	}
	return id, nil
}

// parseEventListFilters reads the date filters and the page window of an event listing
func parseEventListFilters(ctx *gin.Context) (models.EventListFilters, error) {
	var query dto.EventListQuery
	if err := ctx.ShouldBindQuery(&query); err != nil {
		return models.EventListFilters{}, apperrors.NewValidationError(err.Error())
	}

	page, err := helpers.ParsePaginationParams(ctx, helpers.DefaultEventPageSize, helpers.MaxEventPageSize)
	if err != nil {
		return models.EventListFilters{}, err
	}

	return models.EventListFilters{
		StartDate: query.StartDate,
		EndDate:   query.EndDate,
		Limit:     &page.Limit,
		Offset:    &page.Offset,
	}, nil
}
