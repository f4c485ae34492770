// Package pagination runs a filtered, ordered select as a {total, data} window.
package pagination

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/eventsphere/internal/pkg/logger"
)

// Querier is the read side of db.DBTX
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RowScanner materialises one row of the page query
type RowScanner[T any] func(row pgx.Row) (T, error)

// Options is the requested window. A nil Limit loads every row after Offset.
type Options struct {
	Limit  *uint64
	Offset *uint64
}

// NewOptions builds a window with both bounds set
func NewOptions(limit, offset uint64) Options {
	return Options{Limit: &limit, Offset: &offset}
}

// Result is one page of T together with the size of the whole matching set
type Result[T any] struct {
	Total int64 `json:"total"`
	Data  []T   `json:"data"`
}

// Empty returns a result with no rows
func Empty[T any]() *Result[T] {
	return &Result[T]{Total: 0, Data: []T{}}
}

var sb = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Count returns the number of rows base matches, ignoring any window. The
// projection of base is replaced so computed columns are not evaluated per row.
// Callers must not pass grouped or DISTINCT selects.
func Count(ctx context.Context, db Querier, base squirrel.SelectBuilder) (int64, error) {
	matched := base.RemoveLimit().RemoveOffset().RemoveColumns().Column("1")
	countQuery := sb.Select("COUNT(*)").FromSelect(matched, "paginated")

	sqlStr, args, err := countQuery.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count query")
		return 0, fmt.Errorf("failed to build count query: %w", err)
	}

	var total int64
	if err := db.QueryRow(ctx, sqlStr, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Str("sql", sqlStr).Msg("Error executing count query")
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}

	return total, nil
}

// Paginate counts the rows matched by base and loads the requested window of them,
// keeping the ordering of base. The page query is skipped when the window is empty.
func Paginate[T any](ctx context.Context, db Querier, base squirrel.SelectBuilder, opts Options, scan RowScanner[T]) (*Result[T], error) {
	total, err := Count(ctx, db, base)
	if err != nil {
		return nil, err
	}

	result := &Result[T]{Total: total, Data: []T{}}
	if total == 0 {
		return result, nil
	}
	if opts.Offset != nil && *opts.Offset >= uint64(total) {
		return result, nil
	}
	if opts.Limit != nil && *opts.Limit == 0 {
		return result, nil
	}

	pageQuery := base
	if opts.Offset != nil && *opts.Offset > 0 {
		pageQuery = pageQuery.Offset(*opts.Offset)
	}
	if opts.Limit != nil {
		pageQuery = pageQuery.Limit(*opts.Limit)
	}

	data, err := Collect(ctx, db, pageQuery, scan)
	if err != nil {
		return nil, err
	}
	result.Data = data

	return result, nil
}

// Collect runs query and scans every row. The returned slice is never nil.
func Collect[T any](ctx context.Context, db Querier, query squirrel.SelectBuilder, scan RowScanner[T]) ([]T, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building select query")
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := db.Query(ctx, sqlStr, args...)
	if err != nil {
		logger.Error().Err(err).Str("sql", sqlStr).Msg("Error executing select query")
		return nil, fmt.Errorf("failed to query rows: %w", err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning row")
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating rows")
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return items, nil
}
