package sql

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/syssam/sqldata/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatsDriverCounters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db))

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectQuery("SELECT boom").WillReturnError(errors.New("relation does not exist"))
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())
	require.Error(t, drv.Query(context.Background(), "SELECT boom", []any{}, &Rows{}))
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))
	require.NoError(t, mock.ExpectationsWereMet())

	s := drv.QueryStats().Stats()
	assert.Equal(t, int64(2), s.TotalQueries, "failed queries count toward the total")
	assert.Equal(t, int64(1), s.TotalExecs)
	assert.Equal(t, int64(1), s.Errors)
	assert.Greater(t, s.TotalDuration, time.Duration(0))
	assert.Equal(t, s.TotalDuration/3, s.AvgDuration())
	assert.Contains(t, s.String(), "queries=2 execs=1 total=")

	drv.QueryStats().Reset()
	s = drv.QueryStats().Stats()
	assert.Zero(t, s.TotalQueries)
	assert.Zero(t, s.TotalExecs)
	assert.Zero(t, s.TotalDuration)
	assert.Zero(t, s.Errors)
	assert.Zero(t, s.AvgDuration(), "no division by zero before the first statement")
}

func TestStatsDriverTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db))

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT id FROM users").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("UPDATE users").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	tx, err := drv.Tx(context.Background())
	require.NoError(t, err)
	rows := &Rows{}
	require.NoError(t, tx.Query(context.Background(), "SELECT id FROM users", []any{}, rows))
	require.NoError(t, tx.Exec(context.Background(), "UPDATE users SET active = true", []any{}, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())

	s := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), s.TotalQueries, "transaction statements count as well")
	assert.Equal(t, int64(1), s.TotalExecs)
}

func TestStatsDriverSlowHook(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var (
		mu   sync.Mutex
		seen []string
	)
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db),
		WithSlowThreshold(0),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, elapsed time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			seen = append(seen, query)
			assert.Greater(t, elapsed, time.Duration(0))
		}),
	)

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("INSERT INTO users").WillReturnResult(sqlmock.NewResult(1, 1))

	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO users DEFAULT VALUES", []any{}, nil))

	assert.Equal(t, []string{"SELECT 1", "INSERT INTO users DEFAULT VALUES"}, seen)
	assert.Equal(t, int64(2), drv.QueryStats().Stats().SlowQueries)

	// Raising the threshold stops the hook without restarting the driver.
	drv.SetSlowThreshold(time.Hour)
	assert.Equal(t, time.Hour, drv.SlowThreshold())
	mock.ExpectQuery("SELECT 2").WillReturnRows(sqlmock.NewRows([]string{"2"}).AddRow(2))
	require.NoError(t, drv.Query(context.Background(), "SELECT 2", []any{}, &Rows{}))
	assert.Len(t, seen, 2)
	assert.Equal(t, int64(2), drv.QueryStats().Stats().SlowQueries)
}

func TestStatsDriverDefaults(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	drv := NewStatsDriver(OpenDB(dialect.Postgres, db))
	assert.Equal(t, 100*time.Millisecond, drv.SlowThreshold())
	assert.Equal(t, dialect.Postgres, drv.Dialect())
	assert.Same(t, db, drv.DB())
}

func TestWithSlowQueryLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db),
		WithSlowThreshold(0),
		WithSlowQueryLog(log),
	)

	mock.ExpectQuery("SELECT pg_sleep").WillReturnRows(sqlmock.NewRows([]string{"pg_sleep"}).AddRow(""))
	rows := &Rows{}
	require.NoError(t, drv.Query(context.Background(), "SELECT pg_sleep(1)", []any{}, rows))
	require.NoError(t, rows.Close())

	out := buf.String()
	assert.Contains(t, out, "slow statement")
	assert.Contains(t, out, "pg_sleep")
	assert.Contains(t, out, "level=WARN")
}
