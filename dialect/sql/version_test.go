package sql

import (
	"context"
	"regexp"
	"testing"

	"github.com/syssam/sqldata/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		dialect string
		raw     string
		want    Version
		wantErr bool
	}{
		{
			dialect: dialect.Postgres,
			raw:     "PostgreSQL 16.2 (Debian 16.2-1.pgdg120+2) on x86_64-pc-linux-gnu",
			want:    Version{Major: 16, Minor: 2, Flavor: "PostgreSQL"},
		},
		{
			dialect: dialect.Postgres,
			raw:     "CockroachDB CCL v23.1.11 (x86_64-pc-linux-gnu)",
			want:    Version{Major: 23, Minor: 1, Patch: 11, Flavor: "CockroachDB"},
		},
		{
			dialect: dialect.MySQL,
			raw:     "8.0.36",
			want:    Version{Major: 8, Minor: 0, Patch: 36, Flavor: "MySQL"},
		},
		{
			dialect: dialect.MySQL,
			raw:     "10.11.6-MariaDB-1:10.11.6+maria~ubu2204",
			want:    Version{Major: 10, Minor: 11, Patch: 6, Flavor: "MariaDB"},
		},
		{
			dialect: dialect.SQLite,
			raw:     "3.45.1",
			want:    Version{Major: 3, Minor: 45, Patch: 1, Flavor: "SQLite"},
		},
		{
			dialect: dialect.MSSQL,
			raw:     "15.0.2000.5",
			want:    Version{Major: 15, Minor: 0, Patch: 2000, Flavor: "SQL Server"},
		},
		{
			dialect: dialect.Postgres,
			raw:     "devel",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			v, err := ParseVersion(tt.dialect, tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.want.Raw = tt.raw
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestVersionCompare(t *testing.T) {
	v := Version{Major: 10, Minor: 4, Patch: 2}
	assert.Equal(t, 0, v.Compare(Version{Major: 10, Minor: 4, Patch: 2, Flavor: "MariaDB"}), "flavor is not ordered")
	assert.Equal(t, -1, v.Compare(Version{Major: 10, Minor: 5}))
	assert.Equal(t, 1, v.Compare(Version{Major: 9, Minor: 9, Patch: 9}))
	assert.True(t, v.AtLeast(10, 4))
	assert.True(t, v.AtLeast(9, 6))
	assert.False(t, v.AtLeast(10, 5))
	assert.Equal(t, "10.4.2", v.String())
}

func TestServerVersion(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT VERSION()")).
		WillReturnRows(sqlmock.NewRows([]string{"version()"}).AddRow("8.0.36"))
	drv := OpenDB(dialect.MySQL, db)
	v, err := ServerVersion(context.Background(), drv)
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 8, Minor: 0, Patch: 36, Flavor: "MySQL", Raw: "8.0.36"}, v)
	require.NoError(t, mock.ExpectationsWereMet())

	_, err = ServerVersion(context.Background(), OpenDB("oracle", db))
	assert.EqualError(t, err, `dialect/sql: unknown dialect "oracle"`)
}
