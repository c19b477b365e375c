package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/sqldata/dialect"
)

// ExecQuerier wraps the standard ExecContext and QueryContext methods
// shared by *sql.DB, *sql.Conn and *sql.Tx.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn adapts an ExecQuerier to the dialect.ExecQuerier interface.
type Conn struct {
	ExecQuerier
	dialect string
}

// Exec runs a statement that returns no rows. v must be nil or a
// *sql.Result to capture the driver result.
func (c Conn) Exec(ctx context.Context, query string, args, v any) (rerr error) {
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: exec args must be []any, got %T", args)
	}
	ex, release, err := c.sessionConn(ctx)
	if err != nil {
		return fmt.Errorf("dialect/sql: exec: session vars: %w", err)
	}
	if release != nil {
		defer func() { rerr = errors.Join(rerr, release()) }()
	}
	switch v := v.(type) {
	case nil:
		if _, err := ex.ExecContext(ctx, query, argv...); err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
	case *sql.Result:
		res, err := ex.ExecContext(ctx, query, argv...)
		if err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
		*v = res
	default:
		return fmt.Errorf("dialect/sql: exec result must be *sql.Result, got %T", v)
	}
	return nil
}

// Query runs a statement that returns rows and hands them to v, which
// must be a *Rows. Closing the rows releases any connection pinned for
// session variables.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: query result must be *Rows, got %T", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: query args must be []any, got %T", args)
	}
	ex, release, err := c.sessionConn(ctx)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: session vars: %w", err)
	}
	rows, err := ex.QueryContext(ctx, query, argv...)
	if err != nil {
		if release != nil {
			err = errors.Join(err, release())
		}
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*vr = Rows{rows}
	if release != nil {
		vr.ColumnScanner = closingRows{rows, release}
	}
	return nil
}

// Driver is the dialect.Driver implementation for SQL databases.
type Driver struct {
	Conn
	dialect string
}

// NewDriver wraps c as a dialect.Driver for the named dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open opens a database/sql connection pool for the named dialect and
// returns it as a dialect.Driver. The dialect doubles as the
// database/sql driver name.
func Open(dialect, source string) (*Driver, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(dialect, db), nil
}

// OpenDB wraps an existing *sql.DB as a dialect.Driver.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db, dialect})
}

// DB returns the underlying *sql.DB.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect returns the base dialect name. Instrumented drivers register
// under extended names such as "postgres-traced"; the prefix maps back
// to the base dialect.
func (d Driver) Dialect() string {
	for _, base := range []string{dialect.Postgres, dialect.MySQL, dialect.SQLite, dialect.MSSQL} {
		if strings.HasPrefix(d.dialect, base) {
			return base
		}
	}
	return d.dialect
}

// Tx starts a transaction with default options.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with the given options.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (dialect.Tx, error) {
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Conn: Conn{tx, d.dialect},
		Tx:   tx,
	}, nil
}

// Close closes the connection pool.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx is the dialect.Tx implementation for SQL databases.
type Tx struct {
	Conn
	driver.Tx
}

var _ dialect.Driver = (*Driver)(nil)

type (
	// Rows wraps sql.Rows scanning behind the ColumnScanner interface,
	// which lets Query attach a release hook to its Close.
	Rows struct{ ColumnScanner }
	// Result is an alias to sql.Result.
	Result = sql.Result
	// NullBool is an alias to sql.NullBool.
	NullBool = sql.NullBool
	// NullInt64 is an alias to sql.NullInt64.
	NullInt64 = sql.NullInt64
	// NullString is an alias to sql.NullString.
	NullString = sql.NullString
	// NullFloat64 is an alias to sql.NullFloat64.
	NullFloat64 = sql.NullFloat64
	// NullTime is an alias to sql.NullTime.
	NullTime = sql.NullTime
	// TxOptions holds the transaction options passed to DB.BeginTx.
	TxOptions = sql.TxOptions
)

// NullScanner wraps another sql.Scanner and records whether the scanned
// value was NULL, leaving the wrapped scanner untouched when it was.
type NullScanner struct {
	S     sql.Scanner
	Valid bool // Valid is true if the scanned value is not NULL.
}

// Scan implements the sql.Scanner interface.
func (n *NullScanner) Scan(value any) error {
	n.Valid = value != nil
	if n.Valid {
		return n.S.Scan(value)
	}
	return nil
}

// ColumnScanner is the subset of sql.Rows methods used to scan result
// sets.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}

// closingRows runs a release hook after closing the underlying rows.
type closingRows struct {
	ColumnScanner
	release func() error
}

// Close closes the rows, then releases the pinned connection.
func (r closingRows) Close() error {
	err := r.ColumnScanner.Close()
	return errors.Join(err, r.release())
}
