package pagination

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int64
	Name string
}

func scanItem(row pgx.Row) (item, error) {
	var it item
	err := row.Scan(&it.ID, &it.Name)
	return it, err
}

func baseQuery() squirrel.SelectBuilder {
	return sb.Select("id", "name").
		From("events").
		Where(squirrel.Eq{"organizer_id": int64(3)}).
		OrderBy("id DESC")
}

const (
	countSQL = "SELECT COUNT(*) FROM (SELECT 1 FROM events WHERE organizer_id = $1 ORDER BY id DESC) AS paginated"
	pageSQL  = "SELECT id, name FROM events WHERE organizer_id = $1 ORDER BY id DESC"
)

func TestPaginate_WindowAndTotal(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
	mock.ExpectQuery(regexp.QuoteMeta(pageSQL + " LIMIT 2 OFFSET 1")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(4), "fourth").
			AddRow(int64(3), "third"))

	result, err := Paginate(context.Background(), mock, baseQuery(), NewOptions(2, 1), scanItem)
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, []item{{4, "fourth"}, {3, "third"}}, result.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_NoLimitLoadsRemainingRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery(regexp.QuoteMeta(pageSQL) + "$").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(2), "B").
			AddRow(int64(1), "A"))

	result, err := Paginate(context.Background(), mock, baseQuery(), Options{}, scanItem)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	assert.Len(t, result.Data, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_OffsetBeyondTotalSkipsPageQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	result, err := Paginate(context.Background(), mock, baseQuery(), NewOptions(10, 1000), scanItem)
	require.NoError(t, err)

	assert.Equal(t, int64(2), result.Total)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_EmptySetSerialisesEmptyArray(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(0)))

	result, err := Paginate(context.Background(), mock, baseQuery(), NewOptions(10, 0), scanItem)
	require.NoError(t, err)

	body, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":0,"data":[]}`, string(body))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_ZeroLimitReturnsNoRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))

	result, err := Paginate(context.Background(), mock, baseQuery(), NewOptions(0, 0), scanItem)
	require.NoError(t, err)

	assert.Equal(t, int64(4), result.Total)
	assert.Empty(t, result.Data)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaginate_CountFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dbErr := errors.New("connection reset")
	mock.ExpectQuery(regexp.QuoteMeta(countSQL)).
		WithArgs(int64(3)).
		WillReturnError(dbErr)

	_, err = Paginate(context.Background(), mock, baseQuery(), NewOptions(10, 0), scanItem)
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_IgnoresWindowOnBase(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(regexp.QuoteMeta(countSQL) + "$").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(7)))

	total, err := Count(context.Background(), mock, baseQuery().Limit(1).Offset(2))
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_SkipsComputedColumns(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	base := baseQuery().Column(squirrel.Expr("(SELECT COUNT(*) FROM attendees a WHERE a.event_id = id AND a.answer = ?) AS accepted", "Accepted"))

	mock.ExpectQuery(regexp.QuoteMeta(countSQL) + "$").
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))

	total, err := Count(context.Background(), mock, base)
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}
