package dialect

import (
	"context"
)

// Dialect names. Each constant matches the name the corresponding
// database/sql driver registers under.
const (
	// MySQL covers MySQL and MariaDB.
	MySQL = "mysql"
	// SQLite is the file-based SQLite engine.
	SQLite = "sqlite"
	// Postgres is the PostgreSQL engine.
	Postgres = "postgres"
	// MSSQL is the Microsoft SQL Server engine.
	MSSQL = "mssql"
)

// Known reports whether name is one of the supported dialects.
func Known(name string) bool {
	switch name {
	case MySQL, SQLite, Postgres, MSSQL:
		return true
	}
	return false
}

// ExecQuerier wraps the 2 database operations.
type ExecQuerier interface {
	// Exec executes a query that does not return records. For example, in SQL, INSERT or UPDATE.
	// It scans the result into the pointer v. For SQL drivers, it is dialect/sql.Result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all database operations.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	// The provided context is used until the transaction is committed or rolled back.
	Tx(context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx wraps transactional operations.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// NopTx returns a Tx with a no-op Commit / Rollback.
func NopTx(d Driver) Tx {
	return nopTx{d}
}

type nopTx struct {
	Driver
}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }
