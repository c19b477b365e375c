package dialect_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/sqldata/dialect"
)

func TestKnown(t *testing.T) {
	for _, name := range []string{dialect.Postgres, dialect.MySQL, dialect.SQLite, dialect.MSSQL} {
		assert.Truef(t, dialect.Known(name), "dialect %s", name)
	}
	assert.False(t, dialect.Known("oracle"))
	assert.False(t, dialect.Known(""))
}

type closedDriver struct {
	dialect.Driver
	closed bool
}

func (d *closedDriver) Close() error {
	d.closed = true
	return nil
}

func TestNopTx(t *testing.T) {
	d := &closedDriver{}
	tx := dialect.NopTx(d)
	require.NoError(t, tx.Commit())
	require.NoError(t, tx.Rollback())
	// The driver stays usable after the no-op transaction ends.
	assert.False(t, d.closed)
}
