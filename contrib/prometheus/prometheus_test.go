package prometheus

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/syssam/sqldata/dialect"
	dsql "github.com/syssam/sqldata/dialect/sql"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func statsDriver(t *testing.T) (*dsql.StatsDriver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return dsql.NewStatsDriver(dsql.OpenDB(dialect.Postgres, db)), mock
}

func TestCollector(t *testing.T) {
	drv, mock := statsDriver(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT 2").WillReturnRows(sqlmock.NewRows([]string{"2"}).AddRow(2))
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT boom").WillReturnError(errors.New("boom"))

	rows := &dsql.Rows{}
	require.NoError(t, drv.Query(ctx, "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, drv.Query(ctx, "SELECT 2", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, drv.Exec(ctx, "UPDATE users", []any{}, nil))
	require.Error(t, drv.Query(ctx, "SELECT boom", []any{}, rows))
	require.NoError(t, mock.ExpectationsWereMet())

	c := NewCollector(drv)
	expected := `
# HELP sqldata_queries_total Total number of queries executed.
# TYPE sqldata_queries_total counter
sqldata_queries_total{dialect="postgres"} 3
# HELP sqldata_execs_total Total number of statements executed.
# TYPE sqldata_execs_total counter
sqldata_execs_total{dialect="postgres"} 1
# HELP sqldata_query_errors_total Total number of failed queries and statements.
# TYPE sqldata_query_errors_total counter
sqldata_query_errors_total{dialect="postgres"} 1
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"sqldata_queries_total", "sqldata_execs_total", "sqldata_query_errors_total"))

	assert.Equal(t, 14, testutil.CollectAndCount(c))

	problems, err := testutil.CollectAndLint(c)
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestCollectorNamespace(t *testing.T) {
	drv, _ := statsDriver(t)
	c := NewCollector(drv, WithNamespace("myapp"))
	expected := `
# HELP myapp_pool_max_open_connections Maximum number of open connections.
# TYPE myapp_pool_max_open_connections gauge
myapp_pool_max_open_connections{dialect="postgres"} 0
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected),
		"myapp_pool_max_open_connections"))
}

func TestCollectorRegisters(t *testing.T) {
	drv, _ := statsDriver(t)
	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(NewCollector(drv)))

	// A second collector for the same driver clashes on descriptors.
	assert.Error(t, reg.Register(NewCollector(drv)))
}
