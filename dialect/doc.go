// Package dialect names the supported database engines and defines the
// driver-side interfaces the rest of sqldata is written against.
//
// A dialect constant is both the engine's name throughout the library
// and the database/sql driver name it opens with, so the process must
// link a driver registered under that name: lib/pq for Postgres,
// go-sql-driver/mysql for MySQL, modernc.org/sqlite for SQLite, and
// any driver registering as "mssql" for SQL Server. MariaDB speaks the
// mysql dialect and CockroachDB the postgres one; the sql subpackage's
// ServerVersion reports which flavor is actually connected.
//
// Driver is the execution interface: Exec and Query with untyped
// arguments and results, plus transactions via Tx. The dialect/sql
// subpackage provides the database/sql-backed implementation along
// with statement builders, the schema subpackage DDL migrations, and
// sqljson JSON document predicates.
//
// NopTx wraps a Driver in a no-op transaction for code paths that
// always run in one.
package dialect
